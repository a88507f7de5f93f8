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

// ClientService handles the client register.
type ClientService struct {
	clientRepo repository.ClientRepository
	now        func() time.Time
}

func NewClientService(clientRepo repository.ClientRepository) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		now:        time.Now,
	}
}

func (s *ClientService) Create(ctx context.Context, request *domain.UpsertClientRequest) (*domain.Client, error) {
	now := s.now()
	client := &domain.Client{
		ID:        uuid.New(),
		Name:      request.Name,
		Email:     request.Email,
		Phone:     request.Phone,
		Document:  request.Document,
		Notes:     request.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.clientRepo.Create(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return client, nil
}

func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (*domain.Client, error) {
	client, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(id.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return client, nil
}

func (s *ClientService) List(ctx context.Context) ([]*domain.Client, error) {
	clients, err := s.clientRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return clients, nil
}

func (s *ClientService) Update(ctx context.Context, id uuid.UUID, request *domain.UpsertClientRequest) (*domain.Client, error) {
	client, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	client.Name = request.Name
	client.Email = request.Email
	client.Phone = request.Phone
	client.Document = request.Document
	client.Notes = request.Notes
	client.UpdatedAt = s.now()

	if err := s.clientRepo.Update(ctx, client); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return client, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}
	return nil
}
