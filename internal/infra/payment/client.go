package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
)

// Client wraps a Stripe-style payment-intent API. It never retries on its own:
// an ambiguous outcome (timeout after the remote may have processed the charge)
// is surfaced to the caller as-is to avoid double charging. The intent id is
// the only idempotency handle and passes through unchanged.
type Client struct {
	baseURL    string
	secretKey  string
	httpClient *http.Client
}

func NewClient(baseURL, secretKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amountMinorUnits, 10))
	form.Set("currency", currency)

	resp, err := c.post(ctx, "/v1/payment_intents", form)
	if err != nil {
		return nil, classifyTransport(err, domain.GatewayUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeFailure(resp)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, &domain.GatewayError{Kind: domain.GatewayUnavailable, Reason: "malformed intent response"}
	}
	if intent.ID == "" || intent.ClientSecret == "" {
		return nil, &domain.GatewayError{Kind: domain.GatewayUnavailable, Reason: "incomplete intent response"}
	}
	return &intent, nil
}

func (c *Client) Confirm(ctx context.Context, clientSecret, paymentMethodToken string) error {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("client_secret", clientSecret)
	form.Set("payment_method", paymentMethodToken)

	// A transport failure here is ambiguous: the remote may already have
	// processed the charge.
	resp, err := c.post(ctx, "/v1/payment_intents/"+intentID+"/confirm", form)
	if err != nil {
		return classifyTransport(err, domain.GatewayAmbiguous)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeFailure(resp)
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return &domain.GatewayError{Kind: domain.GatewayAmbiguous, Reason: "malformed confirmation response"}
	}
	if result.Status != "succeeded" {
		return &domain.GatewayError{Kind: domain.GatewayDeclined, Reason: "confirmation status " + result.Status}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	return c.httpClient.Do(req)
}

func decodeFailure(resp *http.Response) error {
	var body apiError
	_ = json.NewDecoder(resp.Body).Decode(&body)

	reason := body.Error.Code
	if reason == "" {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusPaymentRequired || body.Error.Code == "card_declined":
		return &domain.GatewayError{Kind: domain.GatewayDeclined, Reason: reason}
	case resp.StatusCode >= 500:
		return &domain.GatewayError{Kind: domain.GatewayUnavailable, Reason: reason}
	default:
		return &domain.GatewayError{Kind: domain.GatewayUnavailable, Reason: reason}
	}
}

// classifyTransport maps request errors to the gateway taxonomy. Timeouts are
// always ambiguous; other transport errors take the caller's default kind.
func classifyTransport(err error, fallback domain.GatewayErrorKind) error {
	var ne net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
		return &domain.GatewayError{Kind: domain.GatewayAmbiguous, Reason: "request timed out"}
	}
	return &domain.GatewayError{Kind: fallback, Reason: err.Error()}
}

// intentIDFromSecret extracts the intent id from a "<id>_secret_<nonce>"
// client secret.
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || id == "" {
		return "", domain.NewValidationError("malformed client secret")
	}
	return id, nil
}
