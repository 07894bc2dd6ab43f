package utils

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
)

var (
	ErrFileTooLarge     = errors.New("file size exceeds maximum allowed size")
	ErrInvalidImageType = errors.New("invalid file type. Only jpg, jpeg, png, webp allowed")
)

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

func ValidateImageFile(fileHeader *multipart.FileHeader, maxSize int64) error {
	if fileHeader.Size > maxSize {
		return ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		return ErrInvalidImageType
	}
	return nil
}

// ReadImageFile validates and reads an uploaded image into memory.
func ReadImageFile(fileHeader *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if err := ValidateImageFile(fileHeader, maxSize); err != nil {
		return nil, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
