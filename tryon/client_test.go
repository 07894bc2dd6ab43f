package tryon

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() Request {
	img := Image{MimeType: "image/jpeg", Data: []byte("jpeg-bytes")}
	return Request{
		ProductID:    "6",
		ProductName:  "High Neck Tee",
		ProductImage: img,
		Selfie:       img,
		FullBody:     img,
	}
}

func TestHTTPGenerator_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var body generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "6", body.ProductID)
		assert.Len(t, body.Images, 3)
		assert.Contains(t, body.Prompt, "High Neck Tee")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(generateResponse{Image: &wireImage{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString([]byte("composite")),
		}})
	}))
	defer srv.Close()

	g := NewHTTPGenerator(srv.URL, "key", 5*time.Second)
	res, err := g.Generate(context.Background(), sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.Image.MimeType)
	assert.Equal(t, []byte("composite"), res.Image.Data)
}

func TestHTTPGenerator_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPGenerator(srv.URL, "", time.Second).Generate(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestHTTPGenerator_GenericFailures(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"no image": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":"no candidates"}`))
		},
		"malformed": func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			_, err := NewHTTPGenerator(srv.URL, "", time.Second).Generate(context.Background(), sampleRequest())
			assert.ErrorIs(t, err, ErrGeneration)
			assert.NotErrorIs(t, err, ErrCapacityExceeded)
		})
	}
}

func TestHTTPGenerator_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHTTPGenerator(srv.URL, "", time.Second).Generate(ctx, sampleRequest())
	assert.ErrorIs(t, err, ErrGeneration)
}

func TestHTTPGenerator_OversizedResponse(t *testing.T) {
	prev := maxResponseSize
	maxResponseSize = 64
	defer func() { maxResponseSize = prev }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(generateResponse{Image: &wireImage{
			MimeType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(make([]byte, 1024)),
		}})
	}))
	defer srv.Close()

	_, err := NewHTTPGenerator(srv.URL, "", time.Second).Generate(context.Background(), sampleRequest())
	require.ErrorIs(t, err, ErrGeneration)
	assert.Contains(t, err.Error(), "response exceeds 64 bytes")
}
