package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at order creation.
const (
	PaymentMethodCash     = "cash"
	PaymentMethodCard     = "card"
	PaymentMethodFinanced = "financed"
)

// Order is the aggregate root: commercial terms, the financing contract when
// the order is store-financed, and the fulfillment audit trail.
type Order struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	ClientID      uuid.UUID       `json:"client_id" db:"client_id"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty" db:"supplier_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	ProductValue  decimal.Decimal `json:"product_value" db:"product_value"`
	SellingPrice  decimal.Decimal `json:"selling_price" db:"selling_price"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost" db:"purchase_cost"`
	PaymentMethod string          `json:"payment_method" db:"payment_method"`

	// Financing terms, zero-valued unless PaymentMethod is financed.
	DownPayment       decimal.Decimal `json:"down_payment" db:"down_payment"`
	InstallmentCount  int             `json:"installment_count" db:"installment_count"`
	AnnualRate        decimal.Decimal `json:"annual_rate" db:"annual_rate"`
	FinancedAmount    decimal.Decimal `json:"financed_amount" db:"financed_amount"`
	TotalWithInterest decimal.Decimal `json:"total_with_interest" db:"total_with_interest"`
	InstallmentValue  decimal.Decimal `json:"installment_value" db:"installment_value"`

	ContractStatus    ContractStatus `json:"contract_status,omitempty" db:"contract_status"`
	FulfillmentStatus OrderStatus    `json:"fulfillment_status" db:"fulfillment_status"`

	Installments []*Installment `json:"installments,omitempty"`
	History      []*StatusEvent `json:"history"`

	OrderDate time.Time `json:"order_date" db:"order_date"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// IsFinanced reports whether the order carries a BluFacilita contract.
func (o *Order) IsFinanced() bool {
	return o.PaymentMethod == PaymentMethodFinanced
}

// IsCancelled reports whether fulfillment terminated in cancellation.
func (o *Order) IsCancelled() bool {
	return o.FulfillmentStatus == OrderStatusCancelled
}

// DTOs for requests and responses

type CreateOrderRequest struct {
	ClientID      uuid.UUID       `json:"client_id" validate:"required"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	ProductName   string          `json:"product_name" validate:"required"`
	ProductValue  decimal.Decimal `json:"product_value" validate:"decimal_gt=0"`
	SellingPrice  decimal.Decimal `json:"selling_price" validate:"decimal_gte=0"`
	PurchaseCost  decimal.Decimal `json:"purchase_cost" validate:"decimal_gte=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash card financed"`

	DownPayment      decimal.Decimal  `json:"down_payment" validate:"decimal_gte=0"`
	InstallmentCount int              `json:"installment_count" validate:"gte=0"`
	AnnualRate       *decimal.Decimal `json:"annual_rate,omitempty"`

	OrderDate *time.Time `json:"order_date,omitempty"`
}

type CreateOrderResponse struct {
	Order *Order `json:"order"`
}

type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"decimal_gt=0"`
	Method string          `json:"method" validate:"required"`
	Date   *time.Time      `json:"date,omitempty"`
	Notes  string          `json:"notes,omitempty"`
}

type RegisterPaymentResponse struct {
	Payment        *Payment        `json:"payment"`
	Remainder      decimal.Decimal `json:"remainder"`
	ContractStatus ContractStatus  `json:"contract_status"`
}

type TransitionStatusRequest struct {
	Status       OrderStatus `json:"status" validate:"required"`
	Note         string      `json:"note,omitempty"`
	DeliveryDate *time.Time  `json:"delivery_date,omitempty"`
}

type ContractSummaryResponse struct {
	OrderID           uuid.UUID       `json:"order_id"`
	ContractStatus    ContractStatus  `json:"contract_status"`
	TotalWithInterest decimal.Decimal `json:"total_with_interest"`
	TotalPaid         decimal.Decimal `json:"total_paid"`
	Outstanding       decimal.Decimal `json:"outstanding"`
}
