package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/httpx"
	"github.com/matheusmosca/store-backend/internal/validation"
)

var categoryMessages = validation.Messages{
	"Name.required": "category name is required",
	"Name.max":      "category name is too long",
}

var productMessages = validation.Messages{
	"Name.required":       "product name is required",
	"Name.min":            "product name is required",
	"Name.max":            "product name is too long",
	"Image.min":           "image is required",
	"Image.max":           "image name is too long",
	"Price.required":      "product price is required",
	"Price.gte":           "invalid price",
	"Price.money":         "price must have at most 2 decimal places",
	"Inventory.required":  "product inventory is required",
	"Inventory.gte":       "invalid inventory",
	"CategoryID.required": "category is required",
	"CategoryID.gt":       "invalid category",
}

// CategoryService é o que o handler de categorias precisa dos use cases
type CategoryService interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	FindOne(ctx context.Context, id uint, withProducts bool) (*Category, error)
	Update(ctx context.Context, id uint, req UpdateCategoryRequest) (*Category, error)
	Remove(ctx context.Context, id uint) error
}

// ProductService é o que o handler de produtos precisa dos use cases
type ProductService interface {
	Create(ctx context.Context, req CreateProductRequest) (*Product, error)
	FindAll(ctx context.Context, filter ProductFilter) (*ProductPage, error)
	FindOne(ctx context.Context, id uint) (*Product, error)
	Update(ctx context.Context, id uint, req UpdateProductRequest) (*Product, error)
	Remove(ctx context.Context, id uint) error
}

// CategoryHandler contém os handlers HTTP de categorias
type CategoryHandler struct {
	service CategoryService
	logger  *zap.Logger
}

// NewCategoryHandler cria uma nova instância de CategoryHandler
func NewCategoryHandler(service CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{service: service, logger: logger}
}

// RegisterRoutes registra as rotas de /categories
func (h *CategoryHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/categories")
	g.POST("", h.Create)
	g.GET("", h.FindAll)
	g.GET("/:id", h.FindOne)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Remove)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	if err := validation.Struct(req, categoryMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	category, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) FindAll(c *gin.Context) {
	categories, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// FindOne responde GET /categories/:id; ?products=true inclui os produtos
func (h *CategoryHandler) FindOne(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	category, err := h.service.FindOne(c.Request.Context(), id, c.Query("products") == "true")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	var req UpdateCategoryRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	if err := validation.Struct(req, categoryMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	category, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Remove(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// ProductHandler contém os handlers HTTP de produtos
type ProductHandler struct {
	service ProductService
	logger  *zap.Logger
}

// NewProductHandler cria uma nova instância de ProductHandler
func NewProductHandler(service ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// RegisterRoutes registra as rotas de /products. O upload de imagem é
// registrado pelo pacote uploads no mesmo grupo.
func (h *ProductHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/products")
	g.POST("", h.Create)
	g.GET("", h.FindAll)
	g.GET("/:id", h.FindOne)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Remove)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	if err := validation.Struct(req, productMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	product, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// FindAll responde GET /products?category_id=&take=&skip=
func (h *ProductHandler) FindAll(c *gin.Context) {
	filter, err := ParseProductFilter(c.Query("category_id"), c.Query("take"), c.Query("skip"))
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	page, err := h.service.FindAll(c.Request.Context(), filter)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *ProductHandler) FindOne(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	product, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	var req UpdateProductRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	if err := validation.Struct(req, productMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	product, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Remove(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	if err := h.service.Remove(c.Request.Context(), id); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
