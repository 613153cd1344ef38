package coupons

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/httpx"
	"github.com/matheusmosca/store-backend/internal/validation"
)

var couponMessages = validation.Messages{
	"Name.required":           "coupon name is required",
	"Name.min":                "coupon name is required",
	"Name.max":                "coupon name must be at most 30 characters",
	"Name.alnumspace":         "coupon name must contain only letters, digits and spaces",
	"Porcentaje.required":     "discount percentage is required",
	"Porcentaje.min":          "the minimum discount is 1",
	"Porcentaje.max":          "the maximum discount is 100",
	"ExpirationDate.required": "expiration date is required",
	"ExpirationDate.min":      "expiration date is required",
	"CouponName.required":     "coupon name is required",
}

// Service é o que o handler de cupons precisa do use case
type Service interface {
	Create(ctx context.Context, req CreateCouponRequest) (*Coupon, error)
	FindAll(ctx context.Context) ([]Coupon, error)
	FindOne(ctx context.Context, id uint) (*Coupon, error)
	Update(ctx context.Context, id uint, req UpdateCouponRequest) (*Coupon, error)
	Remove(ctx context.Context, id uint) (*RemoveCouponResponse, error)
	ApplyCoupon(ctx context.Context, name string) (*ApplyCouponResponse, error)
}

// CouponHandler contém os handlers HTTP de cupons
type CouponHandler struct {
	service Service
	logger  *zap.Logger
}

// NewCouponHandler cria uma nova instância de CouponHandler
func NewCouponHandler(service Service, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{service: service, logger: logger}
}

// RegisterRoutes registra as rotas de /coupons
func (h *CouponHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/coupons")
	g.POST("", h.Create)
	g.GET("", h.FindAll)
	g.GET("/:id", h.FindOne)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Remove)
	g.POST("/apply-coupon", h.Apply)
}

func (h *CouponHandler) Create(c *gin.Context) {
	var req CreateCouponRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	req.Normalize()
	if err := validation.Struct(req, couponMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	coupon, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) FindAll(c *gin.Context) {
	coupons, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *CouponHandler) FindOne(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	coupon, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) Update(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	var req UpdateCouponRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	req.Normalize()
	if err := validation.Struct(req, couponMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	coupon, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) Remove(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	resp, err := h.service.Remove(c.Request.Context(), id)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Apply responde POST /coupons/apply-coupon
func (h *CouponHandler) Apply(c *gin.Context) {
	var req ApplyCouponRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	req.CouponName = NormalizeName(req.CouponName)
	if err := validation.Struct(req, couponMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	resp, err := h.service.ApplyCoupon(c.Request.Context(), req.CouponName)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
