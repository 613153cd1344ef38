package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matheusmosca/store-backend/internal/apperr"
)

const (
	msgCategoryNotFound  = "category does not exist"
	msgCategoryDuplicate = "a category with this name already exists"
	msgProductNotFound   = "product not found"
	msgProductDuplicate  = "a product with this name already exists"
	msgCategoryInUse     = "category has products with registered sales"
	msgProductInUse      = "product has registered sales"
)

// CategoryUseCase contém a lógica de negócio das categorias
type CategoryUseCase struct {
	repository Repository
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewCategoryUseCase cria uma nova instância de CategoryUseCase
func NewCategoryUseCase(repository Repository, tracer trace.Tracer, logger *zap.Logger) *CategoryUseCase {
	return &CategoryUseCase{
		repository: repository,
		tracer:     tracer,
		logger:     logger,
	}
}

func (uc *CategoryUseCase) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.create_category")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	if err := uc.ensureCategoryNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	category := &Category{Name: name}
	if err := uc.repository.CreateCategory(ctx, category); err != nil {
		return nil, duplicate(err, msgCategoryDuplicate)
	}

	uc.logger.Info("✅ [CREATE CATEGORY] Success", zap.Uint("category_id", category.ID))
	return category, nil
}

func (uc *CategoryUseCase) FindAll(ctx context.Context) ([]Category, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.list_categories")
	defer span.End()

	return uc.repository.ListCategories(ctx)
}

// FindOne busca a categoria; com withProducts inclui os produtos
func (uc *CategoryUseCase) FindOne(ctx context.Context, id uint, withProducts bool) (*Category, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.get_category")
	defer span.End()
	span.SetAttributes(attribute.Int("category_id", int(id)), attribute.Bool("with_products", withProducts))

	category, err := uc.repository.GetCategory(ctx, id, withProducts)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgCategoryNotFound)
	}
	return category, err
}

func (uc *CategoryUseCase) Update(ctx context.Context, id uint, req UpdateCategoryRequest) (*Category, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.update_category")
	defer span.End()

	category, err := uc.FindOne(ctx, id, false)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := uc.ensureCategoryNameFree(ctx, name, id); err != nil {
		return nil, err
	}

	category.Name = name
	if err := uc.repository.UpdateCategory(ctx, category); err != nil {
		return nil, duplicate(err, msgCategoryDuplicate)
	}
	return category, nil
}

func (uc *CategoryUseCase) Remove(ctx context.Context, id uint) error {
	ctx, span := uc.tracer.Start(ctx, "catalog.delete_category")
	defer span.End()

	err := uc.repository.DeleteCategory(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(msgCategoryNotFound)
	}
	if err != nil {
		return referenced(err, msgCategoryInUse)
	}

	uc.logger.Info("🗑️ [DELETE CATEGORY] Success", zap.Uint("category_id", id))
	return nil
}

func (uc *CategoryUseCase) ensureCategoryNameFree(ctx context.Context, name string, selfID uint) error {
	if name == "" {
		return apperr.Validation("category name is required")
	}

	existing, err := uc.repository.FindCategoryByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperr.Validation(msgCategoryDuplicate)
	}
	return nil
}

// ProductUseCase contém a lógica de negócio dos produtos
type ProductUseCase struct {
	repository Repository
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(repository Repository, tracer trace.Tracer, logger *zap.Logger) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
		tracer:     tracer,
		logger:     logger,
	}
}

// Create cadastra um produto. O nome precisa ser único e a categoria existir.
func (uc *ProductUseCase) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.create_product")
	defer span.End()

	name := strings.TrimSpace(req.Name)
	if err := uc.ensureProductNameFree(ctx, name, 0); err != nil {
		return nil, err
	}
	if err := uc.ensureCategoryExists(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	product := &Product{
		Name:       name,
		Image:      req.Image,
		Price:      *req.Price,
		Inventory:  *req.Inventory,
		CategoryID: req.CategoryID,
	}
	if product.Image == "" {
		product.Image = DefaultProductImage
	}

	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, duplicate(err, msgProductDuplicate)
	}

	uc.logger.Info("✅ [CREATE PRODUCT] Success",
		zap.Uint("product_id", product.ID),
		zap.Uint("category_id", product.CategoryID),
		zap.Int("inventory", product.Inventory),
	)
	return product, nil
}

func (uc *ProductUseCase) FindAll(ctx context.Context, filter ProductFilter) (*ProductPage, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.list_products")
	defer span.End()
	span.SetAttributes(attribute.Int("take", filter.Take), attribute.Int("skip", filter.Skip))

	products, total, err := uc.repository.ListProducts(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []Product{}
	}
	return &ProductPage{Products: products, Total: total}, nil
}

func (uc *ProductUseCase) FindOne(ctx context.Context, id uint) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.get_product")
	defer span.End()
	span.SetAttributes(attribute.Int("product_id", int(id)))

	product, err := uc.repository.GetProduct(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgProductNotFound)
	}
	return product, err
}

// Update aplica a atualização parcial, revalidando nome e categoria quando mudam
func (uc *ProductUseCase) Update(ctx context.Context, id uint, req UpdateProductRequest) (*Product, error) {
	ctx, span := uc.tracer.Start(ctx, "catalog.update_product")
	defer span.End()

	product, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	// Grava só as colunas presentes na requisição: o estoque lido acima não tem lock
	var columns []string
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name != product.Name {
			if err := uc.ensureProductNameFree(ctx, name, id); err != nil {
				return nil, err
			}
		}
		product.Name = name
		columns = append(columns, "name")
	}
	if req.CategoryID != nil {
		if *req.CategoryID != product.CategoryID {
			if err := uc.ensureCategoryExists(ctx, *req.CategoryID); err != nil {
				return nil, err
			}
		}
		product.CategoryID = *req.CategoryID
		product.Category = nil
		columns = append(columns, "category_id")
	}
	if req.Image != nil {
		product.Image = *req.Image
		columns = append(columns, "image")
	}
	if req.Price != nil {
		product.Price = *req.Price
		columns = append(columns, "price")
	}
	if req.Inventory != nil {
		product.Inventory = *req.Inventory
		columns = append(columns, "inventory")
	}

	if err := uc.repository.UpdateProduct(ctx, product, columns...); err != nil {
		return nil, duplicate(err, msgProductDuplicate)
	}

	return uc.FindOne(ctx, id)
}

func (uc *ProductUseCase) Remove(ctx context.Context, id uint) error {
	ctx, span := uc.tracer.Start(ctx, "catalog.delete_product")
	defer span.End()

	err := uc.repository.DeleteProduct(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(msgProductNotFound)
	}
	if err != nil {
		return referenced(err, msgProductInUse)
	}

	uc.logger.Info("🗑️ [DELETE PRODUCT] Success", zap.Uint("product_id", id))
	return nil
}

func (uc *ProductUseCase) ensureProductNameFree(ctx context.Context, name string, selfID uint) error {
	if name == "" {
		return apperr.Validation("product name is required")
	}

	existing, err := uc.repository.FindProductByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperr.Validation(msgProductDuplicate)
	}
	return nil
}

func (uc *ProductUseCase) ensureCategoryExists(ctx context.Context, id uint) error {
	_, err := uc.repository.GetCategory(ctx, id, false)
	if errors.Is(err, ErrNotFound) {
		return apperr.NotFound(msgCategoryNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check category: %w", err)
	}
	return nil
}

// duplicate converte a violação de unicidade do banco (corrida entre a
// checagem e o insert) em conflito
func duplicate(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msg)
	}
	return err
}

// referenced converte a violação de chave estrangeira (produto com vendas
// registradas) em conflito
func referenced(err error, msg string) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperr.Conflict(msg)
	}
	return err
}
