package domain

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Fulfillment statuses
	OrderProcessing OrderStatus = "processing" // placed, awaiting fulfillment
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"

	// Payment statuses
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

// OrderItem is a snapshot of a product line at purchase time. PriceAtPurchase is
// frozen when the order is created and never re-read from the live catalog.
type OrderItem struct {
	ID              uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID         uint    `json:"-" gorm:"index;not null"`
	ProductID       uint    `json:"productId" gorm:"not null"`
	Quantity        int     `json:"quantity" gorm:"not null"`
	PriceAtPurchase float64 `json:"priceAtPurchase" gorm:"not null"`
}

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID          uint            `json:"userId" gorm:"index;not null"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalAmount     float64         `json:"totalAmount" gorm:"not null"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:VARCHAR(20);default:'pending'"`
	OrderStatus     OrderStatus     `json:"orderStatus" gorm:"type:VARCHAR(20);default:'processing'"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentRef      string          `json:"paymentRef" gorm:"index"`
	TrackingNumber  string          `json:"trackingNumber"`
	CreatedAt       time.Time       `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

// CanTransitionPayment reports whether the payment status may move to target.
// Only pending orders transition; completed and failed are terminal for the attempt.
func (o *Order) CanTransitionPayment(target PaymentStatus) bool {
	if o.PaymentStatus != PaymentPending {
		return false
	}
	return target == PaymentCompleted || target == PaymentFailed
}
