package repository

import (
	"context"

	"storefront/internal/domain"
)

type OrderRepository interface {
	// Transaction runs fn against a repository bound to a single transaction.
	// Any error from fn rolls the whole transaction back.
	Transaction(ctx context.Context, fn func(OrderRepository) error) error

	Create(ctx context.Context, order *domain.Order) error
	Save(ctx context.Context, order *domain.Order) error
	FindByID(ctx context.Context, id uint) (*domain.Order, error)
	FindByUser(ctx context.Context, userID uint) ([]domain.Order, error)
	FindByPaymentRef(ctx context.Context, ref string) (*domain.Order, error)
	UpdatePaymentStatus(ctx context.Context, id uint, status domain.PaymentStatus) error
}
