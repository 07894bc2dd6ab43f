package tryon

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const promptTemplate = `Virtual try-on request: the first image is a product photo of a "%s", followed by a close-up selfie and a full-body photo of a person. ` +
	`Render a high-fidelity image of the person wearing the exact %s. ` +
	`Maintain the person's facial features and body proportions. ` +
	`The result should look like a professional fashion photography asset.`

// maxResponseSize caps the generation response body: one base64 image plus
// the JSON envelope.
var maxResponseSize int64 = 32 << 20

type wireImage struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generateRequest struct {
	ProductID   string      `json:"product_id"`
	Prompt      string      `json:"prompt"`
	AspectRatio string      `json:"aspect_ratio"`
	Images      []wireImage `json:"images"`
}

type generateResponse struct {
	Image *wireImage `json:"image"`
	Error string     `json:"error,omitempty"`
}

// HTTPGenerator calls an image generation endpoint over JSON.
type HTTPGenerator struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func NewHTTPGenerator(endpoint, apiKey string, timeout time.Duration) *HTTPGenerator {
	return &HTTPGenerator{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGenerator) Generate(ctx context.Context, req Request) (*Result, error) {
	body, err := json.Marshal(generateRequest{
		ProductID:   req.ProductID,
		Prompt:      fmt.Sprintf(promptTemplate, req.ProductName, req.ProductName),
		AspectRatio: "3:4",
		Images: []wireImage{
			encodeImage(req.ProductImage),
			encodeImage(req.Selfie),
			encodeImage(req.FullBody),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode try-on request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build try-on request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if g.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrCapacityExceeded
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrGeneration, err)
	}
	if int64(len(raw)) > maxResponseSize {
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrGeneration, maxResponseSize)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: service returned status %d", ErrGeneration, resp.StatusCode)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrGeneration, err)
	}
	if out.Image == nil || out.Image.Data == "" || out.Image.MimeType == "" {
		if out.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrGeneration, out.Error)
		}
		return nil, fmt.Errorf("%w: no image data in response", ErrGeneration)
	}

	data, err := base64.StdEncoding.DecodeString(out.Image.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid image encoding: %v", ErrGeneration, err)
	}

	return &Result{Image: Image{MimeType: out.Image.MimeType, Data: data}}, nil
}

func encodeImage(img Image) wireImage {
	return wireImage{
		MimeType: img.MimeType,
		Data:     base64.StdEncoding.EncodeToString(img.Data),
	}
}
