package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acruxa/storefront/internal/core/domain"
	"github.com/acruxa/storefront/internal/port"
)

// AddressService manages a user's address book. At most one address per user
// is the default; the repository clears the others transactionally.
type AddressService struct {
	addresses port.AddressRepository
}

func NewAddressService(addresses port.AddressRepository) *AddressService {
	return &AddressService{addresses: addresses}
}

func (s *AddressService) List(ctx context.Context, userID string) ([]domain.Address, error) {
	addresses, err := s.addresses.ListAddresses(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	return addresses, nil
}

func (s *AddressService) Create(ctx context.Context, userID string, a domain.Address) (*domain.Address, error) {
	if a.FullName == "" || a.Line1 == "" || a.City == "" {
		return nil, fmt.Errorf("%w: full name, address line and city are required", ErrValidation)
	}

	now := time.Now()
	a.ID = uuid.New().String()
	a.UserID = userID
	a.CreatedAt = now
	a.UpdatedAt = now

	if err := s.addresses.InsertAddress(ctx, a); err != nil {
		return nil, fmt.Errorf("insert address: %w", err)
	}
	return &a, nil
}

func (s *AddressService) Update(ctx context.Context, userID string, a domain.Address) error {
	if _, err := s.owned(ctx, userID, a.ID); err != nil {
		return err
	}

	a.UserID = userID
	a.UpdatedAt = time.Now()
	if err := s.addresses.UpdateAddress(ctx, a); err != nil {
		return fmt.Errorf("update address: %w", err)
	}
	return nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.addresses.DeleteAddress(ctx, id, userID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

func (s *AddressService) SetDefault(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.addresses.SetDefaultAddress(ctx, id, userID); err != nil {
		return fmt.Errorf("set default address: %w", err)
	}
	return nil
}

func (s *AddressService) Get(ctx context.Context, userID, id string) (*domain.Address, error) {
	return s.owned(ctx, userID, id)
}

func (s *AddressService) owned(ctx context.Context, userID, id string) (*domain.Address, error) {
	a, err := s.addresses.GetAddress(ctx, id)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}
	if a.UserID != userID {
		return nil, ErrNotFound
	}
	return a, nil
}
