package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/bluimports/opsdesk/internal/config"
	"github.com/bluimports/opsdesk/internal/domain"
	"github.com/bluimports/opsdesk/internal/finance"
	"github.com/bluimports/opsdesk/internal/repository"
	"github.com/bluimports/opsdesk/internal/timeline"
	customError "github.com/bluimports/opsdesk/pkg/errors"
)

const contractCacheTTL = time.Hour

// OrderService orchestrates the order lifecycle: amortization and schedule
// generation at creation, payment reconciliation, contract status derivation,
// and fulfillment transitions. The clock is injected so status derivation is
// deterministic under test.
type OrderService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	clientRepo  repository.ClientRepository
	cache       *redis.Client
	config      *config.Config
	now         func() time.Time
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	clientRepo repository.ClientRepository,
	cache *redis.Client,
	config *config.Config,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		clientRepo:  clientRepo,
		cache:       cache,
		config:      config,
		now:         time.Now,
	}
}

// CreateOrder creates a new order. For financed orders it computes the
// BluFacilita terms and materializes the installment schedule in the same
// write; the schedule is never regenerated afterwards.
func (s *OrderService) CreateOrder(ctx context.Context, request *domain.CreateOrderRequest) (*domain.Order, error) {
	if _, err := s.clientRepo.GetByID(ctx, request.ClientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapClientNotFound(request.ClientID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}

	now := s.now()
	orderDate := now
	if request.OrderDate != nil {
		orderDate = *request.OrderDate
	}

	order := &domain.Order{
		ID:                uuid.New(),
		ClientID:          request.ClientID,
		SupplierID:        request.SupplierID,
		ProductName:       request.ProductName,
		ProductValue:      request.ProductValue,
		SellingPrice:      request.SellingPrice,
		PurchaseCost:      request.PurchaseCost,
		PaymentMethod:     request.PaymentMethod,
		DownPayment:       request.DownPayment,
		FulfillmentStatus: domain.OrderStatusCreated,
		OrderDate:         orderDate,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if request.PaymentMethod == domain.PaymentMethodFinanced {
		if err := s.applyFinancingTerms(order, request); err != nil {
			return nil, err
		}
	}

	order.History = []*domain.StatusEvent{{
		OrderID:   order.ID,
		Status:    domain.OrderStatusCreated,
		Timestamp: now,
	}}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	log.WithFields(log.Fields{
		"component": "order-service",
		"order_id":  order.ID,
		"financed":  order.IsFinanced(),
	}).Info("order created")

	return order, nil
}

func (s *OrderService) applyFinancingTerms(order *domain.Order, request *domain.CreateOrderRequest) error {
	if request.InstallmentCount < 1 {
		return customError.WrapInvalidInput("financed orders need at least 1 installment")
	}
	if limit := s.config.Financing.MaxInstallments; request.InstallmentCount > limit {
		return customError.WrapInvalidInput(fmt.Sprintf("installment count exceeds the program maximum of %d", limit))
	}

	rate := s.config.DefaultAnnualRate()
	if request.AnnualRate != nil {
		rate = *request.AnnualRate
	}

	terms, err := finance.ComputeAmortization(request.ProductValue, request.DownPayment, request.InstallmentCount, rate)
	if err != nil {
		return err
	}

	order.InstallmentCount = request.InstallmentCount
	order.AnnualRate = rate
	order.FinancedAmount = terms.FinancedAmount
	order.TotalWithInterest = terms.TotalWithInterest
	order.InstallmentValue = terms.InstallmentValue

	if terms.FinancedAmount.IsZero() {
		// Down payment covered the full value: nothing to schedule.
		order.InstallmentCount = 0
		order.ContractStatus = domain.ContractStatusPagoIntegralmente
		return nil
	}

	installments, err := finance.GenerateSchedule(order.ID, request.InstallmentCount, terms.InstallmentValue, order.OrderDate)
	if err != nil {
		return err
	}
	for _, inst := range installments {
		inst.CreatedAt = order.CreatedAt
	}
	order.Installments = installments
	order.ContractStatus = finance.ResolveContractStatus(installments, s.now(), false)

	return nil
}

// RegisterPayment applies a received payment against the order's outstanding
// installments, re-derives the contract status, and persists payment record,
// installment mutations, and status in one transaction. An unabsorbed
// remainder is reported back, not treated as a failure.
func (s *OrderService) RegisterPayment(ctx context.Context, orderID uuid.UUID, request *domain.RegisterPaymentRequest) (*domain.RegisterPaymentResponse, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.IsFinanced() {
		return nil, customError.WrapNotFinanced(orderID.String())
	}
	if len(order.Installments) == 0 {
		return nil, customError.WrapNoInstallments(orderID.String())
	}

	now := s.now()
	paidAt := now
	if request.Date != nil {
		paidAt = *request.Date
	}

	remainder, err := finance.ApplyPayment(order.Installments, request.Amount, paidAt, request.Method)
	if err != nil {
		return nil, err
	}

	order.ContractStatus = finance.ResolveContractStatus(order.Installments, now, order.IsCancelled())

	payment := &domain.Payment{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Amount:    request.Amount,
		Method:    request.Method,
		Date:      paidAt,
		Notes:     request.Notes,
		CreatedAt: now,
	}

	if err := s.orderRepo.ApplyReconciliation(ctx, order, payment); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateContractCache(ctx, order.ID)

	if remainder.GreaterThan(decimal.Zero) {
		warn := customError.WrapOverpayment(order.ID.String(), remainder.String())
		log.WithFields(log.Fields{
			"component": "order-service",
			"order_id":  order.ID,
			"remainder": remainder.String(),
		}).Warn(warn.Message)
	}

	return &domain.RegisterPaymentResponse{
		Payment:        payment,
		Remainder:      remainder,
		ContractStatus: order.ContractStatus,
	}, nil
}

// GetOrder loads the full aggregate. Installment statuses and the contract
// status are projected against the current date on the way out; the stored
// values are only rewritten by payments and the overdue sweep.
func (s *OrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.IsFinanced() {
		today := s.now()
		for _, inst := range order.Installments {
			inst.Status = finance.EffectiveStatus(inst, today)
		}
		order.ContractStatus = finance.ResolveContractStatus(order.Installments, today, order.IsCancelled())
	}

	return order, nil
}

// ListOrders returns all orders, without installments or history.
func (s *OrderService) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return orders, nil
}

// DeleteOrder removes an order and everything hanging off it.
func (s *OrderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if _, err := s.getOrder(ctx, orderID); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		return customError.WrapDatabaseError(err)
	}
	s.invalidateContractCache(ctx, orderID)
	return nil
}

// GetPayments returns the immutable payment records for an order.
func (s *OrderService) GetPayments(ctx context.Context, orderID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.getOrder(ctx, orderID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return payments, nil
}

// TransitionStatus records a fulfillment transition and appends it to the
// audit history. Cancelling a financed order flips its contract to cancelado.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID uuid.UUID, request *domain.TransitionStatusRequest) (*domain.Order, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := timeline.Transition(order, request.Status, request.Note, request.DeliveryDate, now); err != nil {
		return nil, err
	}

	if order.IsFinanced() {
		order.ContractStatus = finance.ResolveContractStatus(order.Installments, now, order.IsCancelled())
	}

	event := order.History[len(order.History)-1]
	if err := s.orderRepo.AppendStatusEvent(ctx, order, event); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateContractCache(ctx, order.ID)

	log.WithFields(log.Fields{
		"component": "order-service",
		"order_id":  order.ID,
		"status":    request.Status,
	}).Info("fulfillment status changed")

	return order, nil
}

// GetTimeline projects the display milestones for an order.
func (s *OrderService) GetTimeline(ctx context.Context, orderID uuid.UUID) ([]timeline.Milestone, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return timeline.Render(order), nil
}

// ContractSummary returns the financing health and running totals for a
// financed order. The summary status is cached per order and invalidated on
// every payment and transition.
func (s *OrderService) ContractSummary(ctx context.Context, orderID uuid.UUID) (*domain.ContractSummaryResponse, error) {
	order, err := s.getOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsFinanced() {
		return nil, customError.WrapNotFinanced(orderID.String())
	}

	status := s.cachedContractStatus(ctx, order)

	return &domain.ContractSummaryResponse{
		OrderID:           order.ID,
		ContractStatus:    status,
		TotalWithInterest: order.TotalWithInterest,
		TotalPaid:         finance.TotalPaid(order.Installments),
		Outstanding:       finance.TotalOutstanding(order.Installments),
	}, nil
}

// SweepOverdue materializes the overdue status on every date-overdue
// installment of open financed orders and re-derives their contract status.
// Returns how many orders were touched.
func (s *OrderService) SweepOverdue(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.ListOpenFinanced(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	today := s.now()
	touched := 0
	for _, order := range orders {
		changed := finance.SweepOverdue(order.Installments, today)
		status := finance.ResolveContractStatus(order.Installments, today, order.IsCancelled())
		if changed == 0 && status == order.ContractStatus {
			continue
		}

		order.ContractStatus = status
		if err := s.orderRepo.SaveInstallmentStatuses(ctx, order); err != nil {
			return touched, customError.WrapDatabaseError(err)
		}
		s.invalidateContractCache(ctx, order.ID)
		touched++

		log.WithFields(log.Fields{
			"component": "overdue-sweep",
			"order_id":  order.ID,
			"marked":    changed,
			"contract":  status,
		}).Info("order swept")
	}

	return touched, nil
}

func (s *OrderService) getOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapOrderNotFound(orderID.String())
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return order, nil
}

func contractCacheKey(orderID uuid.UUID) string {
	return fmt.Sprintf("contract:%s", orderID)
}

// cachedContractStatus reads the contract status cache, falling back to (and
// repopulating from) a fresh derivation. Cache errors are logged, never fatal.
func (s *OrderService) cachedContractStatus(ctx context.Context, order *domain.Order) domain.ContractStatus {
	fresh := finance.ResolveContractStatus(order.Installments, s.now(), order.IsCancelled())
	if s.cache == nil {
		return fresh
	}

	key := contractCacheKey(order.ID)
	cached, err := s.cache.Get(ctx, key).Result()
	if err == nil && cached == string(fresh) {
		return domain.ContractStatus(cached)
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		log.WithField("component", "order-service").WithError(err).Warn(customError.WrapCacheError(err).Message)
	}

	if err := s.cache.Set(ctx, key, string(fresh), contractCacheTTL).Err(); err != nil {
		log.WithField("component", "order-service").WithError(err).Warn(customError.WrapCacheError(err).Message)
	}
	return fresh
}

func (s *OrderService) invalidateContractCache(ctx context.Context, orderID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, contractCacheKey(orderID)).Err(); err != nil {
		log.WithField("component", "order-service").WithError(err).Warn(customError.WrapCacheError(err).Message)
	}
}
