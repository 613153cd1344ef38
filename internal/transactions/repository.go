package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/matheusmosca/store-backend/internal/database"
)

// DateRange limita a listagem a um intervalo fechado de datas
type DateRange struct {
	From time.Time
	To   time.Time
}

// Repository define a interface para operações de banco de dados de vendas
type Repository interface {
	BeginTx(ctx context.Context) (database.Tx, error)
	Create(ctx context.Context, tx database.Tx, transaction *Transaction) error
	List(ctx context.Context, period *DateRange) ([]Transaction, error)
	Get(ctx context.Context, tx database.Tx, id uint) (*Transaction, error)
	DeleteContent(ctx context.Context, tx database.Tx, id uint) error
	Delete(ctx context.Context, tx database.Tx, id uint) error
}

// GormRepository implementa Repository usando GORM
type GormRepository struct {
	db *gorm.DB
}

// NewRepository cria uma nova instância de GormRepository
func NewRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// BeginTx inicia uma nova transação
func (r *GormRepository) BeginTx(ctx context.Context) (database.Tx, error) {
	return database.Begin(ctx, r.db)
}

// Create grava a venda e depois os itens, explicitamente e nessa ordem.
// O produto de cada item não é tocado aqui; o estoque já foi baixado pelo catálogo.
func (r *GormRepository) Create(ctx context.Context, tx database.Tx, transaction *Transaction) error {
	conn := database.Conn(ctx, r.db, tx)

	contents := transaction.Contents
	if err := conn.Omit(clause.Associations).Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	for i := range contents {
		contents[i].TransactionID = transaction.ID
	}
	if len(contents) > 0 {
		if err := conn.Omit(clause.Associations).Create(&contents).Error; err != nil {
			return fmt.Errorf("failed to create transaction contents: %w", err)
		}
	}
	transaction.Contents = contents

	return nil
}

// List lista as vendas com seus itens e produtos; period nil lista todas
func (r *GormRepository) List(ctx context.Context, period *DateRange) ([]Transaction, error) {
	query := r.db.WithContext(ctx).Preload("Contents.Product").Order("id ASC")
	if period != nil {
		query = query.Where("transaction_date BETWEEN ? AND ?", period.From, period.To)
	}

	var transactions []Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (r *GormRepository) Get(ctx context.Context, tx database.Tx, id uint) (*Transaction, error) {
	var transaction Transaction
	err := database.Conn(ctx, r.db, tx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("transaction_contents.id ASC")
		}).
		Preload("Contents.Product").
		First(&transaction, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

func (r *GormRepository) DeleteContent(ctx context.Context, tx database.Tx, id uint) error {
	result := database.Conn(ctx, r.db, tx).Delete(&TransactionContents{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction content: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, tx database.Tx, id uint) error {
	result := database.Conn(ctx, r.db, tx).Delete(&Transaction{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete transaction: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
