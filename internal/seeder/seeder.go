package seeder

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matheusmosca/store-backend/internal/catalog"
	"github.com/matheusmosca/store-backend/internal/coupons"
	"github.com/matheusmosca/store-backend/internal/transactions"
)

// Models são as tabelas da aplicação, na ordem em que devem ser criadas
var Models = []any{
	&catalog.Category{},
	&catalog.Product{},
	&coupons.Coupon{},
	&transactions.Transaction{},
	&transactions.TransactionContents{},
}

// Migrate cria ou atualiza o schema
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Seeder popula o banco com o catálogo inicial
type Seeder struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New cria uma nova instância de Seeder
func New(db *gorm.DB, logger *zap.Logger) *Seeder {
	return &Seeder{db: db, logger: logger}
}

// Reset apaga todas as tabelas e recria o schema
func (s *Seeder) Reset(ctx context.Context) error {
	migrator := s.db.WithContext(ctx).Migrator()
	for i := len(Models) - 1; i >= 0; i-- {
		if err := migrator.DropTable(Models[i]); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}

	s.logger.Info("🧹 [SEED] Tables dropped")
	return Migrate(ctx, s.db)
}

// Seed grava as categorias e os produtos iniciais numa única transação
func (s *Seeder) Seed(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := make([]catalog.Category, len(seedCategories))
		for i, name := range seedCategories {
			categories[i] = catalog.Category{Name: name}
		}
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to seed categories: %w", err)
		}

		products := make([]catalog.Product, len(seedProducts))
		for i, p := range seedProducts {
			price, err := decimal.NewFromString(p.Price)
			if err != nil {
				return fmt.Errorf("invalid seed price for %s: %w", p.Name, err)
			}
			products[i] = catalog.Product{
				Name:       p.Name,
				Image:      p.Image,
				Price:      price,
				Inventory:  p.Inventory,
				CategoryID: categories[p.Category].ID,
			}
		}
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}

		s.logger.Info("🌱 [SEED] Success",
			zap.Int("categories", len(categories)),
			zap.Int("products", len(products)),
		)
		return nil
	})
}
