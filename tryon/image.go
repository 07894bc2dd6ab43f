package tryon

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// MaxImageSide bounds the longer side of photos sent to the service.
const MaxImageSide = 1024

// PrepareImage decodes an uploaded photo, applies its EXIF orientation,
// shrinks it to fit MaxImageSide and re-encodes it as JPEG.
func PrepareImage(data []byte) (Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return Image{}, fmt.Errorf("failed to decode image: %w", err)
	}

	img = fit(img)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return Image{}, fmt.Errorf("failed to encode image: %w", err)
	}
	return Image{MimeType: "image/jpeg", Data: buf.Bytes()}, nil
}

func fit(img image.Image) image.Image {
	b := img.Bounds()
	if b.Dx() <= MaxImageSide && b.Dy() <= MaxImageSide {
		return img
	}
	return imaging.Fit(img, MaxImageSide, MaxImageSide, imaging.Lanczos)
}
