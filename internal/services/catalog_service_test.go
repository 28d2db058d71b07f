package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/mocks"
	"storefront/internal/repository"
)

func TestCatalogService_List_Pagination(t *testing.T) {
	tests := []struct {
		name          string
		count         int64
		pageSize      int
		expectedPages int
	}{
		{name: "no matches", count: 0, pageSize: 10, expectedPages: 0},
		{name: "single match", count: 1, pageSize: 10, expectedPages: 1},
		{name: "exactly one page", count: 10, pageSize: 10, expectedPages: 1},
		{name: "one over a page", count: 11, pageSize: 10, expectedPages: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductRepository)
			filter := repository.ProductFilter{Page: 1, PageSize: tt.pageSize}
			mockRepo.On("FindFiltered", mock.Anything, filter).Return([]domain.Product{}, nil)
			mockRepo.On("CountFiltered", mock.Anything, filter).Return(tt.count, nil)

			service := NewCatalogService(mockRepo, zap.NewNop())
			page, err := service.List(context.Background(), filter)

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedPages, page.TotalPages)
			assert.Equal(t, 1, page.CurrentPage)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestCatalogService_List_PageBeyondRange(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	filter := repository.ProductFilter{Page: 99, PageSize: 10}
	mockRepo.On("FindFiltered", mock.Anything, filter).Return([]domain.Product{}, nil)
	mockRepo.On("CountFiltered", mock.Anything, filter).Return(int64(3), nil)

	service := NewCatalogService(mockRepo, zap.NewNop())
	page, err := service.List(context.Background(), filter)

	assert.NoError(t, err)
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Products)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 99, page.CurrentPage)
}

func TestCatalogService_List_NormalizesPaging(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	// Out-of-range paging inputs are clamped before reaching the repository.
	normalized := repository.ProductFilter{Search: "lamp", Page: 1, PageSize: 10}
	mockRepo.On("FindFiltered", mock.Anything, normalized).Return([]domain.Product{{ID: 1, Name: "Lamp"}}, nil)
	mockRepo.On("CountFiltered", mock.Anything, normalized).Return(int64(1), nil)

	service := NewCatalogService(mockRepo, zap.NewNop())
	page, err := service.List(context.Background(), repository.ProductFilter{Search: "lamp", Page: 0, PageSize: 0})

	assert.NoError(t, err)
	assert.Len(t, page.Products, 1)
	mockRepo.AssertExpectations(t)
}

func TestCatalogService_GetProduct(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(&domain.Product{ID: 1, Name: "Lamp", Price: 25}, nil)
	mockRepo.On("FindByID", mock.Anything, uint(2)).Return(nil, nil)

	service := NewCatalogService(mockRepo, zap.NewNop())

	p, err := service.GetProduct(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, "Lamp", p.Name)

	_, err = service.GetProduct(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCatalogService_CreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name          string
		product       *domain.Product
		expectedError string
	}{
		{name: "missing name", product: &domain.Product{Price: 10}, expectedError: "name is required"},
		{name: "negative price", product: &domain.Product{Name: "Lamp", Price: -1}, expectedError: "price must not be negative"},
		{name: "negative stock", product: &domain.Product{Name: "Lamp", Price: 1, Stock: -2}, expectedError: "stock must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(mocks.MockProductRepository)
			service := NewCatalogService(mockRepo, zap.NewNop())

			err := service.CreateProduct(context.Background(), tt.product)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	mockRepo := new(mocks.MockProductRepository)
	mockRepo.On("FindByID", mock.Anything, uint(5)).Return(nil, nil)

	service := NewCatalogService(mockRepo, zap.NewNop())
	err := service.UpdateProduct(context.Background(), &domain.Product{ID: 5, Name: "Lamp", Price: 10})

	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
