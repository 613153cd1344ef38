package coupons

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository define a interface para operações de banco de dados de cupons
type Repository interface {
	Create(ctx context.Context, coupon *Coupon) error
	List(ctx context.Context) ([]Coupon, error)
	Get(ctx context.Context, id uint) (*Coupon, error)
	FindByName(ctx context.Context, name string) (*Coupon, error)
	Update(ctx context.Context, coupon *Coupon) error
	Delete(ctx context.Context, id uint) error
}

// GormRepository implementa Repository usando GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository cria uma nova instância de GormRepository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, coupon *Coupon) error {
	if err := r.db.WithContext(ctx).Create(coupon).Error; err != nil {
		return fmt.Errorf("failed to create coupon: %w", err)
	}
	return nil
}

func (r *GormRepository) List(ctx context.Context) ([]Coupon, error) {
	var coupons []Coupon
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&coupons).Error; err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	return coupons, nil
}

func (r *GormRepository) Get(ctx context.Context, id uint) (*Coupon, error) {
	var coupon Coupon
	if err := r.db.WithContext(ctx).First(&coupon, id).Error; err != nil {
		return nil, notFound(err, "failed to get coupon")
	}
	return &coupon, nil
}

// FindByName faz a busca exata pelo nome, sem normalizar
func (r *GormRepository) FindByName(ctx context.Context, name string) (*Coupon, error) {
	var coupon Coupon
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&coupon).Error; err != nil {
		return nil, notFound(err, "failed to find coupon by name")
	}
	return &coupon, nil
}

func (r *GormRepository) Update(ctx context.Context, coupon *Coupon) error {
	err := r.db.WithContext(ctx).
		Model(&Coupon{ID: coupon.ID}).
		Select("name", "porcentaje", "expiration_date").
		Updates(coupon).Error
	if err != nil {
		return fmt.Errorf("failed to update coupon: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&Coupon{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
