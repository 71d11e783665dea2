package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 9), G: 60, B: uint8(y * 9), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHealth(t *testing.T) {
	h := Handler(Options{})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestExtractReturnsRecord(t *testing.T) {
	body, contentType := multipartBody(t, "photo.png", encodePNG(t, 30, 20))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	Handler(Options{}).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var rec struct {
		Format string  `json:"format"`
		Width  int     `json:"width"`
		Height int     `json:"height"`
		Gps    *string `json:"gps"`
		Hashes *struct {
			Average string `json:"average"`
		} `json:"hashes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "PNG", rec.Format)
	assert.Equal(t, 30, rec.Width)
	assert.Equal(t, 20, rec.Height)
	assert.Nil(t, rec.Gps, "absent GPS serializes as explicit null")
	require.NotNil(t, rec.Hashes)
	assert.Len(t, rec.Hashes.Average, 16)
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	body, contentType := multipartBody(t, "anim.gif", []byte("GIF89a..."))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	Handler(Options{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"unsupported file type"}`, rr.Body.String())
}

func TestExtractRejectsUndecodableContent(t *testing.T) {
	body, contentType := multipartBody(t, "broken.jpg", []byte("not jpeg bytes"))
	req := httptest.NewRequest(http.MethodPost, "/extract", body)
	req.Header.Set("Content-Type", contentType)

	rr := httptest.NewRecorder()
	Handler(Options{}).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestExtractMethodGuard(t *testing.T) {
	rr := httptest.NewRecorder()
	Handler(Options{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/extract", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestExtractMissingFileField(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("other", "value"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/extract", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rr := httptest.NewRecorder()
	Handler(Options{}).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
