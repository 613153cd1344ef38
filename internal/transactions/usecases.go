package transactions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/matheusmosca/store-backend/internal/apperr"
	"github.com/matheusmosca/store-backend/internal/catalog"
	"github.com/matheusmosca/store-backend/internal/coupons"
	"github.com/matheusmosca/store-backend/internal/database"
	"github.com/matheusmosca/store-backend/internal/dates"
)

const (
	msgTransactionStored   = "sale stored successfully"
	msgTransactionDeleted  = "transaction deleted successfully"
	msgTransactionNotFound = "transaction not found"
	msgInvalidDate         = "invalid date"
)

var hundred = decimal.NewFromInt(100)

// ProductStore é a parte do catálogo usada pelo fluxo de vendas
type ProductStore interface {
	GetProductForUpdate(ctx context.Context, tx database.Tx, id uint) (*catalog.Product, error)
	UpdateInventory(ctx context.Context, tx database.Tx, id uint, inventory int) error
}

// CouponApplier valida um cupom pelo nome
type CouponApplier interface {
	ApplyCoupon(ctx context.Context, name string) (*coupons.ApplyCouponResponse, error)
}

// TransactionUseCase contém a lógica de negócio das vendas
type TransactionUseCase struct {
	repository Repository
	products   ProductStore
	coupons    CouponApplier
	location   *time.Location
	now        func() time.Time
	tracer     trace.Tracer
	logger     *zap.Logger

	transactionsCreated metric.Int64Counter
	transactionsRemoved metric.Int64Counter
	unitsSold           metric.Int64Counter
	unitsRestocked      metric.Int64Counter
}

// NewTransactionUseCase cria uma nova instância de TransactionUseCase
func NewTransactionUseCase(
	repository Repository,
	products ProductStore,
	coupons CouponApplier,
	location *time.Location,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *zap.Logger,
) (*TransactionUseCase, error) {
	uc := &TransactionUseCase{
		repository: repository,
		products:   products,
		coupons:    coupons,
		location:   location,
		now:        time.Now,
		tracer:     tracer,
		logger:     logger,
	}

	var err error
	if uc.transactionsCreated, err = meter.Int64Counter("store.transactions.created",
		metric.WithDescription("Sales committed")); err != nil {
		return nil, err
	}
	if uc.transactionsRemoved, err = meter.Int64Counter("store.transactions.removed",
		metric.WithDescription("Sales deleted with inventory restored")); err != nil {
		return nil, err
	}
	if uc.unitsSold, err = meter.Int64Counter("store.inventory.units_sold",
		metric.WithDescription("Units taken from inventory by committed sales")); err != nil {
		return nil, err
	}
	if uc.unitsRestocked, err = meter.Int64Counter("store.inventory.units_restocked",
		metric.WithDescription("Units returned to inventory by deleted sales")); err != nil {
		return nil, err
	}

	return uc, nil
}

// Create registra a venda: recalcula o total, aplica o cupom e baixa o
// estoque de cada item. Ou tudo é gravado, ou nada é.
func (uc *TransactionUseCase) Create(ctx context.Context, req CreateTransactionRequest) (*MessageResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "transactions.create")
	defer span.End()
	span.SetAttributes(attribute.Int("lines", len(req.Contents)))

	// 1. Recalcula o total a partir dos itens (o total enviado pelo cliente é ignorado)
	total := decimal.Zero
	for _, line := range req.Contents {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	transaction := &Transaction{TransactionDate: uc.now().UTC()}

	// 2. Aplica o cupom antes de abrir a transação, é só leitura
	if req.Coupon != nil {
		if name := coupons.NormalizeName(*req.Coupon); name != "" {
			applied, err := uc.coupons.ApplyCoupon(ctx, name)
			if err != nil {
				uc.fail(span, "coupon", err)
				return nil, err
			}

			discount := decimal.NewFromInt(int64(applied.Porcentaje)).Div(hundred).Mul(total).Round(2)
			couponName := applied.Name
			transaction.Coupon = &couponName
			transaction.Discount = decimal.NewNullDecimal(discount)
			total = total.Sub(discount)
			span.SetAttributes(attribute.String("coupon", couponName))
		}
	}
	transaction.Total = total

	// 3. Inicia a transação
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 4. Para cada item, na ordem recebida: lock pessimista, checa e baixa o estoque.
	// Produtos repetidos enxergam a baixa feita pelo item anterior.
	unitsSold := 0
	for _, line := range req.Contents {
		product, err := uc.products.GetProductForUpdate(ctx, tx, line.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			err = apperr.NotFound(fmt.Sprintf("product with ID %d does not exist", line.ProductID))
		}
		if err != nil {
			uc.fail(span, "lock product", err)
			return nil, err
		}

		if line.Quantity > product.Inventory {
			err := apperr.Validation(fmt.Sprintf("product %s exceeds the available quantity", product.Name))
			uc.fail(span, "inventory", err)
			return nil, err
		}

		if err := uc.products.UpdateInventory(ctx, tx, product.ID, product.Inventory-line.Quantity); err != nil {
			uc.fail(span, "update inventory", err)
			return nil, err
		}

		transaction.Contents = append(transaction.Contents, TransactionContents{
			Quantity:  line.Quantity,
			Price:     *line.Price,
			ProductID: product.ID,
		})
		unitsSold += line.Quantity
	}

	// 5. Grava a venda e os itens
	if err := uc.repository.Create(ctx, tx, transaction); err != nil {
		uc.fail(span, "persist", err)
		return nil, err
	}

	// 6. Commit da transação
	if err := tx.Commit(); err != nil {
		uc.fail(span, "commit", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	uc.transactionsCreated.Add(ctx, 1)
	uc.unitsSold.Add(ctx, int64(unitsSold))
	uc.logger.Info("✅ [CREATE TRANSACTION] Success",
		zap.Uint("transaction_id", transaction.ID),
		zap.String("total", transaction.Total.StringFixed(2)),
		zap.Int("units", unitsSold),
	)

	return &MessageResponse{Message: msgTransactionStored}, nil
}

// FindAll lista as vendas. transactionDate vazio lista todas; senão filtra
// pelo dia do calendário (no fuso da loja) da data informada.
func (uc *TransactionUseCase) FindAll(ctx context.Context, transactionDate string) ([]Transaction, error) {
	ctx, span := uc.tracer.Start(ctx, "transactions.list")
	defer span.End()

	var period *DateRange
	if transactionDate != "" {
		day, err := dates.Parse(transactionDate, uc.location)
		if err != nil {
			return nil, apperr.Validation(msgInvalidDate)
		}
		period = &DateRange{
			From: dates.StartOfDay(day, uc.location).UTC(),
			To:   dates.EndOfDay(day, uc.location).UTC(),
		}
		span.SetAttributes(attribute.String("transaction_date", transactionDate))
	}

	transactions, err := uc.repository.List(ctx, period)
	if err != nil {
		return nil, err
	}
	if transactions == nil {
		transactions = []Transaction{}
	}
	return transactions, nil
}

func (uc *TransactionUseCase) FindOne(ctx context.Context, id uint) (*Transaction, error) {
	ctx, span := uc.tracer.Start(ctx, "transactions.get")
	defer span.End()
	span.SetAttributes(attribute.Int("transaction_id", int(id)))

	transaction, err := uc.repository.Get(ctx, nil, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgTransactionNotFound)
	}
	return transaction, err
}

// Remove apaga a venda devolvendo ao estoque a quantidade de cada item,
// tudo numa única transação.
func (uc *TransactionUseCase) Remove(ctx context.Context, id uint) (*MessageResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "transactions.remove")
	defer span.End()
	span.SetAttributes(attribute.Int("transaction_id", int(id)))

	// 1. Inicia a transação
	tx, err := uc.repository.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// 2. Carrega a venda com os itens
	transaction, err := uc.repository.Get(ctx, tx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgTransactionNotFound)
	}
	if err != nil {
		return nil, err
	}

	// 3. Devolve o estoque de cada item e apaga o item
	unitsRestocked := 0
	for _, content := range transaction.Contents {
		product, err := uc.products.GetProductForUpdate(ctx, tx, content.ProductID)
		if errors.Is(err, catalog.ErrNotFound) {
			err = apperr.NotFound(fmt.Sprintf("product with ID %d does not exist", content.ProductID))
		}
		if err != nil {
			uc.fail(span, "lock product", err)
			return nil, err
		}

		if err := uc.products.UpdateInventory(ctx, tx, product.ID, product.Inventory+content.Quantity); err != nil {
			uc.fail(span, "restock", err)
			return nil, err
		}
		if err := uc.repository.DeleteContent(ctx, tx, content.ID); err != nil {
			uc.fail(span, "delete content", err)
			return nil, err
		}
		unitsRestocked += content.Quantity
	}

	// 4. Apaga a venda
	if err := uc.repository.Delete(ctx, tx, id); err != nil {
		uc.fail(span, "delete", err)
		return nil, err
	}

	// 5. Commit da transação
	if err := tx.Commit(); err != nil {
		uc.fail(span, "commit", err)
		return nil, fmt.Errorf("failed to commit transaction removal: %w", err)
	}

	uc.transactionsRemoved.Add(ctx, 1)
	uc.unitsRestocked.Add(ctx, int64(unitsRestocked))
	uc.logger.Info("♻️ [REMOVE TRANSACTION] Success",
		zap.Uint("transaction_id", id),
		zap.Int("units_restocked", unitsRestocked),
	)

	return &MessageResponse{Message: msgTransactionDeleted}, nil
}

func (uc *TransactionUseCase) fail(span trace.Span, step string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	uc.logger.Info("❌ [TRANSACTION] FAILED", zap.String("step", step), zap.Error(err))
}
