package transactions

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/httpx"
	"github.com/matheusmosca/store-backend/internal/validation"
)

var transactionMessages = validation.Messages{
	"Total.required":     "total is required",
	"Coupon.max":         "invalid coupon",
	"Contents.required":  "the sale must have at least one item",
	"Contents.min":       "the sale must have at least one item",
	"ProductID.required": "invalid product ID",
	"Quantity.required":  "quantity must be greater than zero",
	"Quantity.gt":        "quantity must be greater than zero",
	"Price.required":     "price is required",
	"Price.gte":          "invalid price",
	"Price.money":        "price must have at most 2 decimal places",
}

// Service é o que o handler de vendas precisa do use case
type Service interface {
	Create(ctx context.Context, req CreateTransactionRequest) (*MessageResponse, error)
	FindAll(ctx context.Context, transactionDate string) ([]Transaction, error)
	FindOne(ctx context.Context, id uint) (*Transaction, error)
	Remove(ctx context.Context, id uint) (*MessageResponse, error)
}

// TransactionHandler contém os handlers HTTP de vendas
type TransactionHandler struct {
	service Service
	logger  *zap.Logger
}

// NewTransactionHandler cria uma nova instância de TransactionHandler
func NewTransactionHandler(service Service, logger *zap.Logger) *TransactionHandler {
	return &TransactionHandler{service: service, logger: logger}
}

// RegisterRoutes registra as rotas de /transactions
func (h *TransactionHandler) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/transactions")
	g.POST("", h.Create)
	g.GET("", h.FindAll)
	g.GET("/:id", h.FindOne)
	g.DELETE("/:id", h.Remove)
}

func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := httpx.BindJSON(c, &req); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	if err := validation.Struct(req, transactionMessages); err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// FindAll responde GET /transactions?transactionDate=YYYY-MM-DD
func (h *TransactionHandler) FindAll(c *gin.Context) {
	transactions, err := h.service.FindAll(c.Request.Context(), c.Query("transactionDate"))
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (h *TransactionHandler) FindOne(c *gin.Context) {
	id, err := httpx.ParseID(c, "id")
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}

	transaction, err := h.service.FindOne(c.Request.Context(), id)
	if err != nil {
		httpx.RespondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (h *TransactionHandler) Remove(c *gin.Context) {
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
