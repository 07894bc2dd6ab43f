package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"storefront/catalog"
	"storefront/models"
	"storefront/tryon"
)

const maxReferenceImageSize = 20 << 20

// ImageUploader stores a generated image and returns its public URL.
type ImageUploader interface {
	UploadBytes(ctx context.Context, data []byte, folder string) (string, error)
}

type TryOnService struct {
	index     *catalog.Index
	generator tryon.Generator
	uploader  ImageUploader
	client    *http.Client
}

// NewTryOnService wires the generator. uploader may be nil, in which case
// the composite is returned inline.
func NewTryOnService(index *catalog.Index, generator tryon.Generator, uploader ImageUploader) *TryOnService {
	return &TryOnService{
		index:     index,
		generator: generator,
		uploader:  uploader,
		client:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (s *TryOnService) Generate(ctx context.Context, productID string, selfie, fullBody []byte) (*models.TryOnResponse, error) {
	p, ok := s.index.GetByID(productID)
	if !ok {
		return nil, ErrProductNotFound
	}

	selfieImg, err := tryon.PrepareImage(selfie)
	if err != nil {
		return nil, fmt.Errorf("%w: selfie: %v", ErrInvalidImage, err)
	}
	fullBodyImg, err := tryon.PrepareImage(fullBody)
	if err != nil {
		return nil, fmt.Errorf("%w: full body photo: %v", ErrInvalidImage, err)
	}

	reference, err := s.fetchImage(ctx, p.Images[0])
	if err != nil {
		return nil, fmt.Errorf("%w: product image: %v", tryon.ErrGeneration, err)
	}

	result, err := s.generator.Generate(ctx, tryon.Request{
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductImage: reference,
		Selfie:       selfieImg,
		FullBody:     fullBodyImg,
	})
	if err != nil {
		return nil, err
	}

	resp := &models.TryOnResponse{ProductID: p.ID, MimeType: result.Image.MimeType}
	if s.uploader != nil {
		url, err := s.uploader.UploadBytes(ctx, result.Image.Data, "try-on")
		if err == nil {
			resp.ImageURL = url
			return resp, nil
		}
		log.Printf("Try-on upload failed, returning inline: %v", err)
	}
	resp.ImageData = base64.StdEncoding.EncodeToString(result.Image.Data)
	return resp, nil
}

func (s *TryOnService) fetchImage(ctx context.Context, url string) (tryon.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return tryon.Image{}, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return tryon.Image{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tryon.Image{}, fmt.Errorf("image endpoint returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxReferenceImageSize))
	if err != nil {
		return tryon.Image{}, fmt.Errorf("failed to read image data: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return tryon.Image{MimeType: mimeType, Data: data}, nil
}
