package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/bluimports/opsdesk/internal/domain"
)

// OrderRepository defines the interface for order aggregate persistence.
// Mutating operations write the whole affected record set in one transaction
// so a reconciliation result is never half-persisted.
type OrderRepository interface {
	// Create persists a new order with its installment schedule and the
	// initial history entry
	Create(ctx context.Context, order *domain.Order) error

	// GetByID loads the full aggregate: order, installments, history
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)

	// List returns all orders without installments or history
	List(ctx context.Context) ([]*domain.Order, error)

	// Delete removes an order and its dependent rows
	Delete(ctx context.Context, id uuid.UUID) error

	// ApplyReconciliation persists the outcome of a payment: the payment
	// record, the mutated installments, and the re-derived contract status
	ApplyReconciliation(ctx context.Context, order *domain.Order, payment *domain.Payment) error

	// AppendStatusEvent persists a fulfillment transition: the history row
	// plus the order's new current status
	AppendStatusEvent(ctx context.Context, order *domain.Order, event *domain.StatusEvent) error

	// ListOpenFinanced returns financed orders whose contract is not yet
	// fully paid or cancelled, with installments loaded (for the sweep)
	ListOpenFinanced(ctx context.Context) ([]*domain.Order, error)

	// SaveInstallmentStatuses persists installment status changes and the
	// order's contract status after a sweep
	SaveInstallmentStatuses(ctx context.Context, order *domain.Order) error
}

// PaymentRepository defines the interface for payment record reads
type PaymentRepository interface {
	// GetByOrderID retrieves all payments for an order, oldest first
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.Payment, error)
}

// ClientRepository defines the interface for client data operations
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Update(ctx context.Context, client *domain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *domain.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Supplier, error)
	List(ctx context.Context) ([]*domain.Supplier, error)
	Update(ctx context.Context, supplier *domain.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
