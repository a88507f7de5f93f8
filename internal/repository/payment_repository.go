package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bluimports/opsdesk/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT id, order_id, amount, method, date, notes, created_at
		FROM payments
		WHERE order_id = $1
		ORDER BY date, created_at
	`

	var payments []*domain.Payment
	if err := r.db.SelectContext(ctx, &payments, query, orderID); err != nil {
		return nil, err
	}

	return payments, nil
}
