package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bluimports/opsdesk/internal/domain"
)

type orderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) OrderRepository {
	return &orderRepository{db: db}
}

const orderColumns = `id, client_id, supplier_id, product_name, product_value, selling_price, purchase_cost,
		payment_method, down_payment, installment_count, annual_rate, financed_amount,
		total_with_interest, installment_value, contract_status, fulfillment_status,
		order_date, created_at, updated_at`

func (r *orderRepository) Create(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`
	_, err = tx.ExecContext(ctx, query,
		order.ID,
		order.ClientID,
		order.SupplierID,
		order.ProductName,
		order.ProductValue,
		order.SellingPrice,
		order.PurchaseCost,
		order.PaymentMethod,
		order.DownPayment,
		order.InstallmentCount,
		order.AnnualRate,
		order.FinancedAmount,
		order.TotalWithInterest,
		order.InstallmentValue,
		order.ContractStatus,
		order.FulfillmentStatus,
		order.OrderDate,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err = insertInstallments(ctx, tx, order.Installments); err != nil {
		return err
	}

	for _, event := range order.History {
		if err = insertStatusEvent(ctx, tx, event); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var order domain.Order
	if err := r.db.GetContext(ctx, &order, query, id); err != nil {
		return nil, err
	}

	installments, err := r.installmentsByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Installments = installments

	history, err := r.historyByOrderID(ctx, id)
	if err != nil {
		return nil, err
	}
	order.History = history

	return &order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY order_date DESC, created_at DESC`

	var orders []*domain.Order
	if err := r.db.SelectContext(ctx, &orders, query); err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, query := range []string{
		`DELETE FROM payments WHERE order_id = $1`,
		`DELETE FROM installments WHERE order_id = $1`,
		`DELETE FROM status_history WHERE order_id = $1`,
		`DELETE FROM orders WHERE id = $1`,
	} {
		if _, err = tx.ExecContext(ctx, query, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *orderRepository) ApplyReconciliation(ctx context.Context, order *domain.Order, payment *domain.Payment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO payments (id, order_id, amount, method, date, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, query,
		payment.ID,
		payment.OrderID,
		payment.Amount,
		payment.Method,
		payment.Date,
		payment.Notes,
		payment.CreatedAt,
	)
	if err != nil {
		return err
	}

	if err = updateInstallments(ctx, tx, order.Installments); err != nil {
		return err
	}

	if err = updateContractStatus(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) AppendStatusEvent(ctx context.Context, order *domain.Order, event *domain.StatusEvent) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = insertStatusEvent(ctx, tx, event); err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET fulfillment_status = $2, contract_status = $3, updated_at = $4
		WHERE id = $1
	`
	if _, err = tx.ExecContext(ctx, query, order.ID, order.FulfillmentStatus, order.ContractStatus, time.Now()); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) ListOpenFinanced(ctx context.Context) ([]*domain.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE payment_method = $1 AND contract_status IN ($2, $3)
		ORDER BY order_date
	`

	var orders []*domain.Order
	err := r.db.SelectContext(ctx, &orders, query,
		domain.PaymentMethodFinanced, domain.ContractStatusEmDia, domain.ContractStatusAtrasado)
	if err != nil {
		return nil, err
	}

	for _, order := range orders {
		installments, err := r.installmentsByOrderID(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Installments = installments
	}

	return orders, nil
}

func (r *orderRepository) SaveInstallmentStatuses(ctx context.Context, order *domain.Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err = updateInstallments(ctx, tx, order.Installments); err != nil {
		return err
	}

	if err = updateContractStatus(ctx, tx, order); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *orderRepository) installmentsByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.Installment, error) {
	query := `
		SELECT id, order_id, number, due_date, amount, amount_paid, status,
			payment_date, payment_method_used, notes, created_at
		FROM installments
		WHERE order_id = $1
		ORDER BY number
	`

	var installments []*domain.Installment
	if err := r.db.SelectContext(ctx, &installments, query, orderID); err != nil {
		return nil, err
	}

	return installments, nil
}

func (r *orderRepository) historyByOrderID(ctx context.Context, orderID uuid.UUID) ([]*domain.StatusEvent, error) {
	query := `
		SELECT id, order_id, status, timestamp, note
		FROM status_history
		WHERE order_id = $1
		ORDER BY timestamp, id
	`

	var history []*domain.StatusEvent
	if err := r.db.SelectContext(ctx, &history, query, orderID); err != nil {
		return nil, err
	}

	return history, nil
}

func insertInstallments(ctx context.Context, tx *sqlx.Tx, installments []*domain.Installment) error {
	query := `
		INSERT INTO installments (id, order_id, number, due_date, amount, amount_paid, status,
			payment_date, payment_method_used, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	for _, inst := range installments {
		_, err := tx.ExecContext(ctx, query,
			inst.ID,
			inst.OrderID,
			inst.Number,
			inst.DueDate,
			inst.Amount,
			inst.AmountPaid,
			inst.Status,
			inst.PaymentDate,
			inst.PaymentMethodUsed,
			inst.Notes,
			inst.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func updateInstallments(ctx context.Context, tx *sqlx.Tx, installments []*domain.Installment) error {
	query := `
		UPDATE installments
		SET amount_paid = $2, status = $3, payment_date = $4, payment_method_used = $5, notes = $6
		WHERE id = $1
	`

	for _, inst := range installments {
		_, err := tx.ExecContext(ctx, query,
			inst.ID,
			inst.AmountPaid,
			inst.Status,
			inst.PaymentDate,
			inst.PaymentMethodUsed,
			inst.Notes,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

func insertStatusEvent(ctx context.Context, tx *sqlx.Tx, event *domain.StatusEvent) error {
	query := `
		INSERT INTO status_history (order_id, status, timestamp, note)
		VALUES ($1, $2, $3, $4)
	`
	_, err := tx.ExecContext(ctx, query, event.OrderID, event.Status, event.Timestamp, event.Note)
	return err
}

func updateContractStatus(ctx context.Context, tx *sqlx.Tx, order *domain.Order) error {
	query := `
		UPDATE orders
		SET contract_status = $2, updated_at = $3
		WHERE id = $1
	`
	_, err := tx.ExecContext(ctx, query, order.ID, order.ContractStatus, time.Now())
	return err
}
