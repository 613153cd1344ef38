package coupons

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("not found")

// Coupon representa um cupom de desconto percentual.
// ExpirationDate guarda apenas o dia; o cupom vale até o fim desse dia.
type Coupon struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"size:30;not null;uniqueIndex" json:"name"`
	Porcentaje     int       `gorm:"not null" json:"porcentaje"`
	ExpirationDate time.Time `gorm:"type:date;not null" json:"expirationDate"`
}

// NormalizeName aplica a forma canônica dos nomes de cupom (sem espaços nas pontas, maiúsculo)
func NormalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// CreateCouponRequest representa a requisição para criar um cupom
type CreateCouponRequest struct {
	Name           string `json:"name" validate:"required,max=30,alnumspace"`
	Porcentaje     *int   `json:"porcentaje" validate:"required,min=1,max=100"`
	ExpirationDate string `json:"expirationDate" validate:"required"`
}

func (r *CreateCouponRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
}

// UpdateCouponRequest representa a atualização parcial de um cupom
type UpdateCouponRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=1,max=30,alnumspace"`
	Porcentaje     *int    `json:"porcentaje" validate:"omitempty,min=1,max=100"`
	ExpirationDate *string `json:"expirationDate" validate:"omitempty,min=1"`
}

func (r *UpdateCouponRequest) Normalize() {
	if r.Name != nil {
		name := NormalizeName(*r.Name)
		r.Name = &name
	}
}

// ApplyCouponRequest representa a requisição para validar um cupom pelo nome
type ApplyCouponRequest struct {
	CouponName string `json:"coupon_name" validate:"required"`
}

// ApplyCouponResponse é o cupom aplicado com a mensagem de confirmação
type ApplyCouponResponse struct {
	Message string `json:"message"`
	Coupon
}

// RemoveCouponResponse confirma a remoção devolvendo o cupom removido
type RemoveCouponResponse struct {
	Message string  `json:"message"`
	Coupon  *Coupon `json:"coupon"`
}
