package payment

import "context"

// Intent is the processor's handle for an authorized-but-unconfirmed charge.
type Intent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

// Gateway is the port the order ledger and checkout flow talk to. Amounts are
// in the processor's minor currency unit (cents for usd).
type Gateway interface {
	CreateIntent(ctx context.Context, amountMinorUnits int64, currency string) (*Intent, error)
	Confirm(ctx context.Context, clientSecret, paymentMethodToken string) error
}

var _ Gateway = (*Client)(nil)
