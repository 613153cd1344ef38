package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matheusmosca/store-backend/internal/database"
)

// Repository define a interface para operações de banco de dados do catálogo
type Repository interface {
	CreateCategory(ctx context.Context, category *Category) error
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id uint, withProducts bool) (*Category, error)
	FindCategoryByName(ctx context.Context, name string) (*Category, error)
	UpdateCategory(ctx context.Context, category *Category) error
	DeleteCategory(ctx context.Context, id uint) error

	CreateProduct(ctx context.Context, product *Product) error
	ListProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	FindProductByName(ctx context.Context, name string) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product, columns ...string) error
	DeleteProduct(ctx context.Context, id uint) error

	GetProductForUpdate(ctx context.Context, tx database.Tx, id uint) (*Product, error)
	UpdateInventory(ctx context.Context, tx database.Tx, id uint, inventory int) error
}

// GormRepository implementa Repository usando GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository cria uma nova instância de GormRepository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateCategory(ctx context.Context, category *Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (r *GormRepository) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetCategory busca a categoria; com withProducts carrega os produtos ordenados por id
func (r *GormRepository) GetCategory(ctx context.Context, id uint, withProducts bool) (*Category, error) {
	query := r.db.WithContext(ctx)
	if withProducts {
		query = query.Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("products.id ASC")
		})
	}

	var category Category
	if err := query.First(&category, id).Error; err != nil {
		return nil, notFound(err, "failed to get category")
	}
	return &category, nil
}

func (r *GormRepository) FindCategoryByName(ctx context.Context, name string) (*Category, error) {
	var category Category
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&category).Error; err != nil {
		return nil, notFound(err, "failed to find category by name")
	}
	return &category, nil
}

func (r *GormRepository) UpdateCategory(ctx context.Context, category *Category) error {
	err := r.db.WithContext(ctx).Model(&Category{ID: category.ID}).Update("name", category.Name).Error
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteCategory(ctx context.Context, id uint) error {
	return r.delete(ctx, &Category{}, id, "category")
}

func (r *GormRepository) CreateProduct(ctx context.Context, product *Product) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// ListProducts lista os produtos (mais novos primeiro) com a categoria e o total sem paginação
func (r *GormRepository) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, int64, error) {
	byCategory := func(db *gorm.DB) *gorm.DB {
		if filter.CategoryID != nil {
			return db.Where("category_id = ?", *filter.CategoryID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&Product{}).Scopes(byCategory).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []Product
	err := r.db.WithContext(ctx).
		Scopes(byCategory).
		Preload("Category").
		Order("id DESC").
		Limit(filter.Take).
		Offset(filter.Skip).
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	return products, total, nil
}

func (r *GormRepository) GetProduct(ctx context.Context, id uint) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, notFound(err, "failed to get product")
	}
	return &product, nil
}

func (r *GormRepository) FindProductByName(ctx context.Context, name string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&product).Error; err != nil {
		return nil, notFound(err, "failed to find product by name")
	}
	return &product, nil
}

// UpdateProduct grava apenas as colunas informadas. Sem colunas não faz nada.
func (r *GormRepository) UpdateProduct(ctx context.Context, product *Product, columns ...string) error {
	if len(columns) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).
		Model(&Product{ID: product.ID}).
		Select(columns).
		Updates(product).Error
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	return nil
}

func (r *GormRepository) DeleteProduct(ctx context.Context, id uint) error {
	return r.delete(ctx, &Product{}, id, "product")
}

// GetProductForUpdate obtém o produto com lock pessimista (FOR UPDATE).
// O lock dura até o Commit ou Rollback de tx.
func (r *GormRepository) GetProductForUpdate(ctx context.Context, tx database.Tx, id uint) (*Product, error) {
	var product Product
	err := database.Conn(ctx, r.db, tx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, id).Error
	if err != nil {
		return nil, notFound(err, "failed to get product with lock")
	}
	return &product, nil
}

// UpdateInventory grava o novo estoque do produto dentro de tx
func (r *GormRepository) UpdateInventory(ctx context.Context, tx database.Tx, id uint, inventory int) error {
	result := database.Conn(ctx, r.db, tx).
		Model(&Product{}).
		Where("id = ?", id).
		Update("inventory", inventory)
	if result.Error != nil {
		return fmt.Errorf("failed to update inventory: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) delete(ctx context.Context, model any, id uint, name string) error {
	result := r.db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s: %w", name, result.Error)
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
