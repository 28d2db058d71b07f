package http

import "storefront/internal/domain"

type OrderItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

type CreateOrderResponse struct {
	Order        *domain.Order `json:"order"`
	ClientSecret string        `json:"clientSecret"`
}

type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Stock       int      `json:"stock"`
}

type ListProductsResponse struct {
	Products    []domain.Product `json:"products"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
}

// WebhookRequest mirrors the processor's event envelope; only the intent id
// and event type matter here.
type WebhookRequest struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"object"`
	} `json:"data"`
}
