package repository

import (
	"context"

	"storefront/internal/domain"
)

// ProductFilter narrows and pages a catalog listing. Zero-valued fields impose
// no constraint.
type ProductFilter struct {
	Category string
	Search   string
	Sort     string
	Page     int
	PageSize int
}

func (f ProductFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Save(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	FindFiltered(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
	CountFiltered(ctx context.Context, filter ProductFilter) (int64, error)
}
