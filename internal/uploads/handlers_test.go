package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewDiskStorage(dir)
	require.NoError(t, err)

	r := gin.New()
	NewImageHandler(storage, zap.NewNop()).RegisterRoutes(r)
	r.Static(PublicPath, storage.Dir())
	return r, dir
}

func multipartRequest(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/products/upload-image", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImageHandler_Upload(t *testing.T) {
	// Arrange
	r, dir := setupRouter(t)
	content := pngBytes("fake image data")

	// Act
	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "file", "coffee.png", "image/png", content))

	// Assert
	require.Equal(t, http.StatusCreated, w.Code)
	var resp ImageUploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasSuffix(resp.Image, ".png"))
	assert.Equal(t, PublicPath+"/"+resp.Image, resp.URL)

	stored, err := os.ReadFile(filepath.Join(dir, resp.Image))
	require.NoError(t, err)
	assert.Equal(t, content, stored)

	// o arquivo fica disponível como estático
	get := httptest.NewRecorder()
	r.ServeHTTP(get, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, get.Code)
	assert.Equal(t, content, get.Body.Bytes())
}

// pngBytes devolve um conteúdo novo começando pela assinatura PNG
func pngBytes(data string) []byte {
	return append([]byte("\x89PNG\r\n\x1a\n"), data...)
}

func TestImageHandler_DetectsTypeFromContent(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
		expectedExt string
	}{
		{"png sent as octet-stream", "coffee", "application/octet-stream", pngBytes("\x00\x00"), ".png"},
		{"gif sent as jpeg", "cake.jpg", "image/jpeg", []byte("GIF89a\x01\x00\x01\x00"), ".gif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := setupRouter(t)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, "file", tt.filename, tt.contentType, tt.content))

			require.Equal(t, http.StatusCreated, w.Code)
			var resp ImageUploadResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, strings.HasSuffix(resp.Image, tt.expectedExt))
		})
	}
}

func TestImageHandler_RejectsContentThatIsNotAnImage(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		content     []byte
	}{
		{"html labelled as png", "coffee.png", "image/png", []byte("<html><script>alert(1)</script></html>")},
		{"svg", "logo.svg", "image/svg+xml", []byte(`<svg xmlns="http://www.w3.org/2000/svg"><script>alert(1)</script></svg>`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, dir := setupRouter(t)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, "file", tt.filename, tt.contentType, tt.content))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "file is not a valid image")
			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestImageHandler_RejectsNonImage(t *testing.T) {
	r, dir := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "file", "notes.txt", "text/plain", []byte("hello")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "file is not a valid image")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImageHandler_MissingFile(t *testing.T) {
	r, _ := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "picture", "coffee.png", "image/png", []byte("x")))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no image was uploaded")
}
