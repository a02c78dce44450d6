package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acruxa/storefront/internal/core/card"
	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

// PaymentMethodService stores saved cards as brand plus last four digits.
// The full number is validated and then discarded.
type PaymentMethodService struct {
	methods port.PaymentMethodRepository
}

func NewPaymentMethodService(methods port.PaymentMethodRepository) *PaymentMethodService {
	return &PaymentMethodService{methods: methods}
}

type NewPaymentMethod struct {
	CardNumber  string
	HolderName  string
	ExpiryMonth int
	ExpiryYear  int
	IsDefault   bool
}

func (s *PaymentMethodService) List(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	methods, err := s.methods.ListPaymentMethods(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

func (s *PaymentMethodService) Create(ctx context.Context, userID string, in NewPaymentMethod) (*domain.PaymentMethod, error) {
	if !card.Valid(in.CardNumber) {
		return nil, ErrInvalidCard
	}
	if in.ExpiryMonth < 1 || in.ExpiryMonth > 12 {
		return nil, fmt.Errorf("%w: expiry month out of range", ErrValidation)
	}
	if in.HolderName == "" {
		return nil, fmt.Errorf("%w: holder name required", ErrValidation)
	}

	now := time.Now()
	pm := domain.PaymentMethod{
		ID:           uuid.New().String(),
		UserID:       userID,
		HolderName:   in.HolderName,
		CardBrand:    string(card.BrandOf(in.CardNumber)),
		CardLastFour: card.LastFour(in.CardNumber),
		ExpiryMonth:  in.ExpiryMonth,
		ExpiryYear:   in.ExpiryYear,
		IsDefault:    in.IsDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.methods.InsertPaymentMethod(ctx, pm); err != nil {
		return nil, fmt.Errorf("insert payment method: %w", err)
	}
	return &pm, nil
}

func (s *PaymentMethodService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.methods.DeletePaymentMethod(ctx, id, userID); err != nil {
		return fmt.Errorf("delete payment method: %w", err)
	}
	return nil
}

func (s *PaymentMethodService) SetDefault(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.methods.SetDefaultPaymentMethod(ctx, id, userID); err != nil {
		return fmt.Errorf("set default payment method: %w", err)
	}
	return nil
}

func (s *PaymentMethodService) Get(ctx context.Context, userID, id string) (*domain.PaymentMethod, error) {
	return s.owned(ctx, userID, id)
}

func (s *PaymentMethodService) owned(ctx context.Context, userID, id string) (*domain.PaymentMethod, error) {
	pm, err := s.methods.GetPaymentMethod(ctx, id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get payment method: %w", err)
	}
	if pm.UserID != userID {
		return nil, ErrNotFound
	}
	return pm, nil
}
