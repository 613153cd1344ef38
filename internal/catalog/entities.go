package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

const DefaultProductImage = "default.svg"

// Category representa uma categoria de produtos
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:60;not null;uniqueIndex" json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// Product representa um produto vendido pela loja.
// Inventory nunca fica negativo: a checagem é feita sob lock antes de cada baixa.
type Product struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Name       string          `gorm:"size:60;not null;uniqueIndex" json:"name"`
	Image      string          `gorm:"size:120;not null;default:default.svg" json:"image"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Inventory  int             `gorm:"not null;check:chk_products_inventory,inventory >= 0" json:"inventory"`
	CategoryID uint            `gorm:"not null;index" json:"categoryId"`
	Category   *Category       `json:"category,omitempty"`
}

// ProductFilter são os parâmetros de listagem de produtos
type ProductFilter struct {
	CategoryID *uint
	Take       int
	Skip       int
}

const (
	DefaultTake = 10
	MaxTake     = 100
)

// ProductPage é o resultado paginado da listagem de produtos
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
}

// CreateCategoryRequest representa a requisição para criar ou renomear uma categoria
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=60"`
}

type UpdateCategoryRequest = CreateCategoryRequest

// CreateProductRequest representa a requisição para criar um produto
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,max=60"`
	Image      string           `json:"image" validate:"omitempty,max=120"`
	Price      *decimal.Decimal `json:"price" validate:"required,gte=0,money"`
	Inventory  *int             `json:"inventory" validate:"required,gte=0"`
	CategoryID uint             `json:"categoryId" validate:"required"`
}

// UpdateProductRequest representa a atualização parcial de um produto
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=60"`
	Image      *string          `json:"image" validate:"omitempty,min=1,max=120"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,gte=0,money"`
	Inventory  *int             `json:"inventory" validate:"omitempty,gte=0"`
	CategoryID *uint            `json:"categoryId" validate:"omitempty,gt=0"`
}
