package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// Columns callers may sort a listing by. Anything else falls back to id.
var sortableColumns = map[string]bool{
	"id":         true,
	"name":       true,
	"price":      true,
	"created_at": true,
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) Save(ctx context.Context, product *domain.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Product{}, id).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindFiltered(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	var out []domain.Product
	q := applyFilter(r.db.WithContext(ctx), filter)

	sort := filter.Sort
	if !sortableColumns[sort] {
		sort = "id"
	}
	// Secondary sort by id keeps ordering stable across pages.
	if sort != "id" {
		q = q.Order(sort + " ASC")
	}
	q = q.Order("id ASC")

	err := q.Limit(filter.PageSize).Offset(filter.Offset()).Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *productRepo) CountFiltered(ctx context.Context, filter repository.ProductFilter) (int64, error) {
	var count int64
	err := applyFilter(r.db.WithContext(ctx).Model(&domain.Product{}), filter).Count(&count).Error
	return count, err
}

func applyFilter(q *gorm.DB, filter repository.ProductFilter) *gorm.DB {
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", pattern, pattern)
	}
	return q
}
