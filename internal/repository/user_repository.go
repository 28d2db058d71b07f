package repository

import (
	"context"

	"storefront/internal/domain"
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}
