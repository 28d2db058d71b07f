package services

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/infra/payment"
	rabbit "storefront/internal/infra/rabbitmq"
	"storefront/internal/repository"
)

// LineItem is one purchase line as submitted at checkout. The price is the
// client's view of the unit price at purchase time; the total is never taken
// from the client.
type LineItem struct {
	ProductID uint
	Quantity  int
	Price     float64
}

// OrderService is the authoritative record-keeper for orders and their totals.
type OrderService struct {
	repo      repository.OrderRepository
	gateway   payment.Gateway
	publisher rabbit.PublisherInterface
	currency  string
	logger    *zap.Logger
}

func NewOrderService(r repository.OrderRepository, g payment.Gateway, pub rabbit.PublisherInterface, currency string, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:      r,
		gateway:   g,
		publisher: pub,
		currency:  currency,
		logger:    logger,
	}
}

// CreateOrder validates the submitted lines, computes the total server-side,
// persists the order, and sizes a payment intent to the total — all inside one
// transaction. If the gateway call fails nothing is persisted, so no order is
// ever left without a payment path. Returns the order and the intent's client
// secret for the client-side confirmation step.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, items []LineItem, address domain.ShippingAddress, paymentMethod string) (*domain.Order, string, error) {
	if len(items) == 0 {
		return nil, "", domain.NewValidationError("order must contain at least one item")
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, "", domain.NewValidationError("item %d: quantity must be at least 1", it.ProductID)
		}
		if it.Price < 0 {
			return nil, "", domain.NewValidationError("item %d: price must not be negative", it.ProductID)
		}
	}

	total := computeTotal(items)

	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			PriceAtPurchase: it.Price,
		})
	}

	order := &domain.Order{
		UserID:          userID,
		Items:           orderItems,
		TotalAmount:     total,
		ShippingAddress: address,
		PaymentStatus:   domain.PaymentPending,
		OrderStatus:     domain.OrderProcessing,
		PaymentMethod:   paymentMethod,
	}

	var clientSecret string
	err := s.repo.Transaction(ctx, func(tx repository.OrderRepository) error {
		if err := tx.Create(ctx, order); err != nil {
			return fmt.Errorf("persist order: %w", err)
		}

		intent, err := s.gateway.CreateIntent(ctx, MinorUnits(total), s.currency)
		if err != nil {
			return err
		}

		order.PaymentRef = intent.ID
		clientSecret = intent.ClientSecret
		return tx.Save(ctx, order)
	})
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.Uint("user_id", userID),
		zap.Float64("total", total),
		zap.String("payment_ref", order.PaymentRef))

	go s.publishEvent(context.Background(), "order.created", map[string]any{
		"orderId":     order.ID,
		"userId":      order.UserID,
		"totalAmount": order.TotalAmount,
		"paymentRef":  order.PaymentRef,
	})

	return order, clientSecret, nil
}

// GetOrder fetches an order owned by userID. Orders belonging to other users
// read as not found.
func (s *OrderService) GetOrder(ctx context.Context, id, userID uint) (*domain.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil || o.UserID != userID {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	return s.repo.FindByUser(ctx, userID)
}

// MarkPaymentStatus applies a confirmed gateway callback to the order carrying
// paymentRef. Re-delivered callbacks for an already-settled status are no-ops;
// anything trying to move a terminal status elsewhere is rejected.
func (s *OrderService) MarkPaymentStatus(ctx context.Context, paymentRef string, status domain.PaymentStatus) (*domain.Order, error) {
	if status != domain.PaymentCompleted && status != domain.PaymentFailed {
		return nil, domain.NewValidationError("unsupported payment status %q", status)
	}

	order, err := s.repo.FindByPaymentRef(ctx, paymentRef)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}

	if order.PaymentStatus == status {
		return order, nil
	}
	if !order.CanTransitionPayment(status) {
		return nil, domain.NewValidationError("payment status %q is final", order.PaymentStatus)
	}

	if err := s.repo.UpdatePaymentStatus(ctx, order.ID, status); err != nil {
		return nil, err
	}
	order.PaymentStatus = status

	s.logger.Info("payment status updated",
		zap.Uint("order_id", order.ID),
		zap.String("payment_ref", paymentRef),
		zap.String("status", string(status)))

	go s.publishEvent(context.Background(), "payment.status_updated", map[string]any{
		"orderId":       order.ID,
		"paymentRef":    paymentRef,
		"paymentStatus": status,
	})

	return order, nil
}

func (s *OrderService) publishEvent(ctx context.Context, routingKey string, data map[string]any) {
	if err := s.publisher.Publish(ctx, routingKey, data); err != nil {
		s.logger.Warn("failed to publish event", zap.String("event", routingKey), zap.Error(err))
	}
}

func computeTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	// Keep the stored total exact to the cent.
	return math.Round(total*100) / 100
}

// MinorUnits converts a major-unit amount to the processor's minor currency
// unit (cents) without rounding drift.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
