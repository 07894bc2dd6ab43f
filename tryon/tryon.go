// Package tryon is the boundary to the virtual try-on image service.
//
// A request carries the product identity, its reference image and two user
// photos (a close-up selfie and a full-body shot). The service answers with
// one composite image or fails with ErrCapacityExceeded or ErrGeneration.
// There are no partial results and no retries; a retry is a new call.
package tryon

import (
	"context"
	"errors"
)

var (
	ErrCapacityExceeded = errors.New("try-on service is at capacity")
	ErrGeneration       = errors.New("try-on generation failed")
)

type Image struct {
	MimeType string
	Data     []byte
}

type Request struct {
	ProductID    string
	ProductName  string
	ProductImage Image
	Selfie       Image
	FullBody     Image
}

type Result struct {
	Image Image
}

type Generator interface {
	Generate(ctx context.Context, req Request) (*Result, error)
}
