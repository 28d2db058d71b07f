package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/internal/checkout"
	"storefront/internal/domain"
)

// OrderClient places orders against the storefront API on behalf of a
// checkout flow running outside the server process.
type OrderClient struct {
	baseURL     string
	bearerToken string
	httpClient  *http.Client
}

func NewOrderClient(baseURL, bearerToken string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		baseURL:     baseURL,
		bearerToken: bearerToken,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

func (c *OrderClient) PlaceOrder(ctx context.Context, req checkout.PlaceOrderRequest) (*checkout.PlacedOrder, error) {
	type itemPayload struct {
		ProductID uint    `json:"productId"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	}
	payload := struct {
		Items           []itemPayload          `json:"items"`
		ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
		PaymentMethod   string                 `json:"paymentMethod"`
	}{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	for _, it := range req.Items {
		payload.Items = append(payload.Items, itemPayload{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			Price:     it.UnitPrice,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.bearerToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
	case http.StatusBadRequest:
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return nil, domain.NewValidationError("%s", e.Error)
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized
	default:
		return nil, fmt.Errorf("order service returned status %d", resp.StatusCode)
	}

	var result struct {
		Order        *domain.Order `json:"order"`
		ClientSecret string        `json:"clientSecret"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &checkout.PlacedOrder{Order: result.Order, ClientSecret: result.ClientSecret}, nil
}

var _ checkout.OrderPlacer = (*OrderClient)(nil)
