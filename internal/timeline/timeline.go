// Package timeline manages the order's fulfillment status: recording
// transitions into the append-only history and projecting a display-ready
// milestone sequence out of it.
package timeline

import (
	"time"

	"github.com/bluimports/opsdesk/internal/domain"
	customError "github.com/bluimports/opsdesk/pkg/errors"
)

// Milestone is one display row of the order timeline: a canonical status
// paired with its most recent history entry, or marked as not yet reached.
type Milestone struct {
	Status    domain.OrderStatus `json:"status"`
	Reached   bool               `json:"reached"`
	Timestamp *time.Time         `json:"timestamp,omitempty"`
	Note      string             `json:"note,omitempty"`
}

// Transition records a fulfillment status change: it appends an audit entry
// and moves the order to the new status. The contract is deliberately
// permissive, any requested transition is recorded; callers wanting a fenced
// pipeline can gate on IsCanonicalNext first. A delivery may carry an
// explicit date overriding the clock.
func Transition(order *domain.Order, newStatus domain.OrderStatus, note string, explicitDate *time.Time, now time.Time) error {
	if !newStatus.Valid() {
		return customError.WrapUnknownOrderStatus(string(newStatus))
	}

	at := now
	if newStatus == domain.OrderStatusDelivered && explicitDate != nil {
		at = *explicitDate
	}

	order.History = append(order.History, &domain.StatusEvent{
		OrderID:   order.ID,
		Status:    newStatus,
		Timestamp: at,
		Note:      note,
	})
	order.FulfillmentStatus = newStatus
	return nil
}

// IsCanonicalNext reports whether next immediately follows current in the
// canonical pipeline, or is a cancellation of a freshly created order. This
// is advisory policy for callers; Transition itself does not enforce it.
func IsCanonicalNext(current, next domain.OrderStatus) bool {
	if next == domain.OrderStatusCancelled {
		return current == domain.OrderStatusCreated
	}
	for i, s := range domain.CanonicalStatusOrder {
		if s == current {
			return i+1 < len(domain.CanonicalStatusOrder) && domain.CanonicalStatusOrder[i+1] == next
		}
	}
	return false
}

// Render projects the display timeline for an order. Statuses are emitted in
// canonical pipeline order; each is paired with its latest matching history
// entry when one exists and rendered as not-yet-reached otherwise. Cancelled
// orders collapse to {created, cancelled}. Render never mutates history.
func Render(order *domain.Order) []Milestone {
	if order.IsCancelled() {
		return []Milestone{
			milestoneFor(order, domain.OrderStatusCreated),
			milestoneFor(order, domain.OrderStatusCancelled),
		}
	}

	milestones := make([]Milestone, 0, len(domain.CanonicalStatusOrder))
	for _, status := range domain.CanonicalStatusOrder {
		milestones = append(milestones, milestoneFor(order, status))
	}
	return milestones
}

// milestoneFor pairs a status with its most recent history entry. The status
// also counts as reached when it is the order's current status even without
// an audit entry, which happens for legacy records imported before history
// tracking existed.
func milestoneFor(order *domain.Order, status domain.OrderStatus) Milestone {
	var latest *domain.StatusEvent
	for _, event := range order.History {
		if event.Status != status {
			continue
		}
		if latest == nil || event.Timestamp.After(latest.Timestamp) {
			latest = event
		}
	}

	if latest != nil {
		ts := latest.Timestamp
		return Milestone{Status: status, Reached: true, Timestamp: &ts, Note: latest.Note}
	}
	if order.FulfillmentStatus == status {
		return Milestone{Status: status, Reached: true}
	}
	return Milestone{Status: status, Reached: false}
}
