package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/internal/repository"
	customError "github.com/bluimports/opsdesk/pkg/errors"
)

// SupplierService handles the supplier register.
type SupplierService struct {
	supplierRepo repository.SupplierRepository
	now          func() time.Time
}

func NewSupplierService(supplierRepo repository.SupplierRepository) *SupplierService {
	return &SupplierService{
		supplierRepo: supplierRepo,
		now:          time.Now,
	}
}

func (s *SupplierService) Create(ctx context.Context, request *domain.UpsertSupplierRequest) (*domain.Supplier, error) {
	now := s.now()
	supplier := &domain.Supplier{
		ID:        uuid.New(),
		Name:      request.Name,
		Contact:   request.Contact,
		Phone:     request.Phone,
		Notes:     request.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return supplier, nil
}

func (s *SupplierService) Get(ctx context.Context, id uuid.UUID) (*domain.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapSupplierNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return supplier, nil
}

func (s *SupplierService) List(ctx context.Context) ([]*domain.Supplier, error) {
	suppliers, err := s.supplierRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return suppliers, nil
}

func (s *SupplierService) Update(ctx context.Context, id uuid.UUID, request *domain.UpsertSupplierRequest) (*domain.Supplier, error) {
	supplier, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier.Name = request.Name
	supplier.Contact = request.Contact
	supplier.Phone = request.Phone
	supplier.Notes = request.Notes
	supplier.UpdatedAt = s.now()

	if err := s.supplierRepo.Update(ctx, supplier); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return supplier, nil
}

func (s *SupplierService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.supplierRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}
