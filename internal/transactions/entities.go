package transactions

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matheusmosca/store-backend/internal/catalog"
)

var ErrNotFound = errors.New("not found")

// Transaction representa uma venda.
// Total já vem com o desconto do cupom aplicado.
type Transaction struct {
	ID              uint                  `gorm:"primaryKey" json:"id"`
	Total           decimal.Decimal       `gorm:"type:decimal(12,2);not null" json:"total"`
	Coupon          *string               `gorm:"size:30" json:"coupon"`
	Discount        decimal.NullDecimal   `gorm:"type:decimal(12,2)" json:"discount"`
	TransactionDate time.Time             `gorm:"not null;index" json:"transactionDate"`
	Contents        []TransactionContents `gorm:"foreignKey:TransactionID" json:"contents"`
}

// TransactionContents é um item da venda. Price é o preço cobrado no
// momento da venda, independente de alterações futuras no produto.
type TransactionContents struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ProductID     uint            `gorm:"not null;index" json:"productId"`
	Product       catalog.Product `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
	TransactionID uint            `gorm:"not null;index" json:"-"`
}

func (TransactionContents) TableName() string {
	return "transaction_contents"
}

// CreateTransactionRequest representa a requisição para registrar uma venda.
// Total é exigido mas ignorado: o total gravado é sempre recalculado.
type CreateTransactionRequest struct {
	Total    *decimal.Decimal     `json:"total" validate:"required"`
	Coupon   *string              `json:"coupon" validate:"omitempty,max=30"`
	Contents []ContentLineRequest `json:"contents" validate:"required,min=1,dive"`
}

// ContentLineRequest é um item da venda
type ContentLineRequest struct {
	ProductID uint             `json:"productId" validate:"required"`
	Quantity  int              `json:"quantity" validate:"required,gt=0"`
	Price     *decimal.Decimal `json:"price" validate:"required,gte=0,money"`
}

// MessageResponse é a resposta das operações que só confirmam a execução
type MessageResponse struct {
	Message string `json:"message"`
}
