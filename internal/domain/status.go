package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// Fulfillment statuses, in canonical pipeline order. Cancelled sits outside
// the pipeline.
const (
	OrderStatusCreated          OrderStatus = "created"
	OrderStatusPaymentConfirmed OrderStatus = "payment_confirmed"
	OrderStatusPurchaseComplete OrderStatus = "purchase_completed"
	OrderStatusInTransit        OrderStatus = "in_transit_to_office"
	OrderStatusArrivedAtOffice  OrderStatus = "arrived_at_office"
	OrderStatusAwaitingPickup   OrderStatus = "awaiting_pickup"
	OrderStatusShipped          OrderStatus = "shipped"
	OrderStatusDelivered        OrderStatus = "delivered"
	OrderStatusCancelled        OrderStatus = "cancelled"
)

// CanonicalStatusOrder is the pipeline sequence used for timeline rendering.
var CanonicalStatusOrder = []OrderStatus{
	OrderStatusCreated,
	OrderStatusPaymentConfirmed,
	OrderStatusPurchaseComplete,
	OrderStatusInTransit,
	OrderStatusArrivedAtOffice,
	OrderStatusAwaitingPickup,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Valid reports whether s is a known fulfillment status.
func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	for _, c := range CanonicalStatusOrder {
		if s == c {
			return true
		}
	}
	return false
}

type ContractStatus string

// Contract statuses label the repayment health of a financed order. The names
// follow the BluFacilita program's own vocabulary.
const (
	ContractStatusEmDia             ContractStatus = "em_dia"
	ContractStatusAtrasado          ContractStatus = "atrasado"
	ContractStatusPagoIntegralmente ContractStatus = "pago_integralmente"
	ContractStatusCancelado         ContractStatus = "cancelado"
)

// StatusEvent is one entry in the order's append-only audit history.
type StatusEvent struct {
	ID        int64       `json:"-" db:"id"`
	OrderID   uuid.UUID   `json:"-" db:"order_id"`
	Status    OrderStatus `json:"status" db:"status"`
	Timestamp time.Time   `json:"timestamp" db:"timestamp"`
	Note      string      `json:"note,omitempty" db:"note"`
}
