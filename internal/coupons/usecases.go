package coupons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/matheusmosca/store-backend/internal/apperr"
	"github.com/matheusmosca/store-backend/internal/dates"
)

const (
	msgCouponNotFound  = "coupon not found"
	msgCouponDuplicate = "a coupon with this name already exists"
	msgCouponExpired   = "coupon has expired"
	msgCouponApplied   = "coupon applied successfully"
	msgInvalidDate     = "invalid expiration date"
)

// CouponUseCase contém a lógica de negócio dos cupons
type CouponUseCase struct {
	repository Repository
	location   *time.Location
	now        func() time.Time
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewCouponUseCase cria uma nova instância de CouponUseCase.
// location define em que fuso o "fim do dia" de expiração é calculado.
func NewCouponUseCase(repository Repository, location *time.Location, tracer trace.Tracer, logger *zap.Logger) *CouponUseCase {
	return &CouponUseCase{
		repository: repository,
		location:   location,
		now:        time.Now,
		tracer:     tracer,
		logger:     logger,
	}
}

// Create cadastra o cupom com nome único e expiração truncada ao dia
func (uc *CouponUseCase) Create(ctx context.Context, req CreateCouponRequest) (*Coupon, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.create")
	defer span.End()

	name := NormalizeName(req.Name)
	if err := uc.ensureNameFree(ctx, name, 0); err != nil {
		return nil, err
	}

	expiration, err := uc.parseExpiration(req.ExpirationDate)
	if err != nil {
		return nil, err
	}

	coupon := &Coupon{
		Name:           name,
		Porcentaje:     *req.Porcentaje,
		ExpirationDate: expiration,
	}
	if err := uc.repository.Create(ctx, coupon); err != nil {
		return nil, duplicate(err)
	}

	uc.logger.Info("✅ [CREATE COUPON] Success",
		zap.String("coupon", coupon.Name),
		zap.Int("porcentaje", coupon.Porcentaje),
		zap.Time("expiration_date", coupon.ExpirationDate),
	)
	return coupon, nil
}

func (uc *CouponUseCase) FindAll(ctx context.Context) ([]Coupon, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.list")
	defer span.End()

	return uc.repository.List(ctx)
}

func (uc *CouponUseCase) FindOne(ctx context.Context, id uint) (*Coupon, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.get")
	defer span.End()

	coupon, err := uc.repository.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgCouponNotFound)
	}
	return coupon, err
}

func (uc *CouponUseCase) Update(ctx context.Context, id uint, req UpdateCouponRequest) (*Coupon, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.update")
	defer span.End()

	coupon, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := NormalizeName(*req.Name)
		if err := uc.ensureNameFree(ctx, name, id); err != nil {
			return nil, err
		}
		coupon.Name = name
	}
	if req.Porcentaje != nil {
		coupon.Porcentaje = *req.Porcentaje
	}
	if req.ExpirationDate != nil {
		expiration, err := uc.parseExpiration(*req.ExpirationDate)
		if err != nil {
			return nil, err
		}
		coupon.ExpirationDate = expiration
	}

	if err := uc.repository.Update(ctx, coupon); err != nil {
		return nil, duplicate(err)
	}
	return coupon, nil
}

func (uc *CouponUseCase) Remove(ctx context.Context, id uint) (*RemoveCouponResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.delete")
	defer span.End()

	coupon, err := uc.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	err = uc.repository.Delete(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(msgCouponNotFound)
	}
	if err != nil {
		return nil, err
	}

	uc.logger.Info("🗑️ [DELETE COUPON] Success", zap.String("coupon", coupon.Name))
	return &RemoveCouponResponse{
		Message: fmt.Sprintf("coupon %s deleted", coupon.Name),
		Coupon:  coupon,
	}, nil
}

// ApplyCoupon busca o cupom pelo nome exato e verifica a validade.
// O cupom vale até 23:59:59.999 do dia de expiração (inclusive).
func (uc *CouponUseCase) ApplyCoupon(ctx context.Context, name string) (*ApplyCouponResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "coupons.apply")
	defer span.End()
	span.SetAttributes(attribute.String("coupon", name))

	coupon, err := uc.repository.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil, apperr.NotFound(fmt.Sprintf("coupon %s does not exist", name))
	}
	if err != nil {
		return nil, err
	}

	validUntil := dates.EndOfCalendarDate(coupon.ExpirationDate, uc.location)
	if uc.now().After(validUntil) {
		uc.logger.Info("❌ [APPLY COUPON] Expired", zap.String("coupon", name), zap.Time("valid_until", validUntil))
		return nil, apperr.Unprocessable(msgCouponExpired)
	}

	return &ApplyCouponResponse{Message: msgCouponApplied, Coupon: *coupon}, nil
}

func (uc *CouponUseCase) parseExpiration(value string) (time.Time, error) {
	t, err := dates.Parse(value, uc.location)
	if err != nil {
		return time.Time{}, apperr.Validation(msgInvalidDate)
	}
	return dates.CalendarDate(t, uc.location), nil
}

func (uc *CouponUseCase) ensureNameFree(ctx context.Context, name string, selfID uint) error {
	existing, err := uc.repository.FindByName(ctx, name)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return apperr.Validation(msgCouponDuplicate)
	}
	return nil
}

func duplicate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Conflict(msgCouponDuplicate)
	}
	return err
}
