package uploads

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/apperr"
	"github.com/matheusmosca/store-backend/internal/httpx"
)

const (
	// MaxImageSize limita o tamanho das imagens de produto
	MaxImageSize = 5 << 20
	PublicPath   = "/uploads"

	sniffLen = 512
)

// imageExtensions são os tipos aceitos, detectados pelo conteúdo do arquivo
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// ImageUploadResponse devolve o nome gravado (para o campo image do produto) e a URL pública
type ImageUploadResponse struct {
	Image string `json:"image"`
	URL   string `json:"url"`
}

// ImageHandler recebe as imagens de produto
type ImageHandler struct {
	storage Storage
	logger  *zap.Logger
}

// NewImageHandler cria uma nova instância de ImageHandler
func NewImageHandler(storage Storage, logger *zap.Logger) *ImageHandler {
	return &ImageHandler{storage: storage, logger: logger}
}

// RegisterRoutes registra POST /products/upload-image
func (h *ImageHandler) RegisterRoutes(r gin.IRouter) {
	r.POST("/products/upload-image", h.Upload)
}

// Upload recebe o arquivo no campo multipart "file"
func (h *ImageHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpx.RespondError(c, h.logger, apperr.Validation("no image was uploaded"))
		return
	}
	if fileHeader.Size > MaxImageSize {
		httpx.RespondError(c, h.logger, apperr.Validation("image is too large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	defer file.Close()

	// O Content-Type enviado pelo cliente é ignorado
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		httpx.RespondError(c, h.logger, err)
		return
	}
	head = head[:n]

	ext, ok := imageExtensions[http.DetectContentType(head)]
	if !ok {
		httpx.RespondError(c, h.logger, apperr.Validation("file is not a valid image"))
		return
	}

	name := uuid.New().String() + ext
	content := io.MultiReader(bytes.NewReader(head), file)
	if err := h.storage.Save(c.Request.Context(), name, content); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	h.logger.Info("✅ [UPLOAD IMAGE] Success",
		zap.String("file", name),
		zap.String("original", filepath.Base(fileHeader.Filename)),
		zap.Int64("size", fileHeader.Size),
	)
	c.JSON(http.StatusCreated, ImageUploadResponse{Image: name, URL: PublicPath + "/" + name})
}
