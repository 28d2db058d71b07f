package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

const (
	defaultPageSize = 10
	productCacheTTL = time.Minute
)

// ProductPage is one page of a filtered catalog listing.
type ProductPage struct {
	Products    []domain.Product
	TotalPages  int
	CurrentPage int
}

type CatalogService struct {
	repo        repository.ProductRepository
	redisClient *redis.Client
	logger      *zap.Logger
}

func NewCatalogService(r repository.ProductRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: r, logger: logger}
}

func (s *CatalogService) SetRedisClient(client *redis.Client) {
	s.redisClient = client
}

// List returns the page of products matching the filter. A page beyond the
// last one yields an empty listing, not an error.
func (s *CatalogService) List(ctx context.Context, filter repository.ProductFilter) (*ProductPage, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultPageSize
	}

	var (
		products []domain.Product
		count    int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.FindFiltered(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.CountFiltered(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totalPages := int((count + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	if products == nil {
		products = []domain.Product{}
	}

	return &ProductPage{
		Products:    products,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

// GetProduct serves single-product reads through a short-lived cache.
func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	cacheKey := productCacheKey(id)

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var p domain.Product
			if err := json.Unmarshal([]byte(cached), &p); err == nil {
				return &p, nil
			}
		}
	}

	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}

	if s.redisClient != nil {
		if data, err := json.Marshal(p); err == nil {
			s.redisClient.Set(ctx, cacheKey, data, productCacheTTL)
		}
	}

	return p, nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.logger.Info("product created", zap.Uint("product_id", p.ID), zap.String("name", p.Name))
	return nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, p *domain.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	existing, err := s.repo.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrProductNotFound
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return err
	}
	s.invalidate(ctx, p.ID)
	return nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrProductNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context, id uint) {
	if s.redisClient != nil {
		s.redisClient.Del(ctx, productCacheKey(id))
	}
}

func validateProduct(p *domain.Product) error {
	if p.Name == "" {
		return domain.NewValidationError("product name is required")
	}
	if p.Price < 0 {
		return domain.NewValidationError("product price must not be negative")
	}
	if p.Stock < 0 {
		return domain.NewValidationError("product stock must not be negative")
	}
	return nil
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}
