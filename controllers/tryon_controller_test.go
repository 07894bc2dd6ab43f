package controllers

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/catalog"
	"storefront/models"
	"storefront/services"
	"storefront/tryon"
)

type stubGenerator struct {
	err error
}

func (g stubGenerator) Generate(ctx context.Context, req tryon.Request) (*tryon.Result, error) {
	if g.err != nil {
		return nil, g.err
	}
	return &tryon.Result{Image: tryon.Image{MimeType: "image/png", Data: []byte("composite")}}, nil
}

func tryOnRouter(t *testing.T, gen tryon.Generator) *gin.Engine {
	t.Helper()
	ref := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("reference"))
	}))
	t.Cleanup(ref.Close)

	idx, err := catalog.NewIndex([]models.Product{{
		ID:     "6",
		Name:   "High Neck Tee",
		Price:  59,
		Sizes:  []string{"S"},
		Images: []string{ref.URL + "/tee.jpg"},
	}}, nil)
	require.NoError(t, err)

	ctrl := NewTryOnController(services.NewTryOnService(idx, gen, nil), 1<<20)
	r := gin.New()
	r.POST("/try-on", ctrl.TryOn)
	return r
}

type upload struct {
	field, filename string
	data            []byte
}

func pngPhoto(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, imaging.New(30, 40, color.White)))
	return buf.Bytes()
}

func postTryOn(t *testing.T, r http.Handler, productID string, files ...upload) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if productID != "" {
		require.NoError(t, mw.WriteField("product_id", productID))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/try-on", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTryOnController_Success(t *testing.T) {
	r := tryOnRouter(t, stubGenerator{})
	photo := pngPhoto(t)

	w := postTryOn(t, r, "6",
		upload{"selfie", "me.png", photo},
		upload{"full_body", "body.png", photo},
	)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.TryOnResponse
	decode(t, w, &resp)
	assert.Equal(t, "6", resp.ProductID)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.Empty(t, resp.ImageURL)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("composite")), resp.ImageData)
}

func TestTryOnController_Errors(t *testing.T) {
	photo := pngPhoto(t)
	both := []upload{{"selfie", "me.png", photo}, {"full_body", "body.png", photo}}

	cases := []struct {
		name      string
		gen       tryon.Generator
		productID string
		files     []upload
		status    int
	}{
		{"missing product", stubGenerator{}, "", both, http.StatusBadRequest},
		{"missing full body", stubGenerator{}, "6", both[:1], http.StatusBadRequest},
		{"unknown product", stubGenerator{}, "999", both, http.StatusNotFound},
		{"wrong extension", stubGenerator{}, "6", []upload{{"selfie", "me.gif", photo}, both[1]}, http.StatusBadRequest},
		{"too large", stubGenerator{}, "6", []upload{{"selfie", "me.png", make([]byte, 2<<20)}, both[1]}, http.StatusBadRequest},
		{"not an image", stubGenerator{}, "6", []upload{{"selfie", "me.png", []byte("nope")}, both[1]}, http.StatusBadRequest},
		{"capacity", stubGenerator{err: tryon.ErrCapacityExceeded}, "6", both, http.StatusTooManyRequests},
		{"generation", stubGenerator{err: fmt.Errorf("%w: no image", tryon.ErrGeneration)}, "6", both, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := postTryOn(t, tryOnRouter(t, tc.gen), tc.productID, tc.files...)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}
