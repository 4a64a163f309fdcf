package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusConfirmed  OrderStatus = "Confirmed"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusReturned   OrderStatus = "Returned"
)

// StatusSequence is the fixed progression offered by the admin UI.
// The backend accepts any status write; the sequence only drives the
// single "next step" suggestion.
var StatusSequence = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
}

// Next returns the status immediately following s in StatusSequence.
// The second return is false when s is the last element or not part of
// the sequence, in which case no transition is suggested.
func (s OrderStatus) Next() (OrderStatus, bool) {
	for i, status := range StatusSequence {
		if status == s {
			if i == len(StatusSequence)-1 {
				return "", false
			}
			return StatusSequence[i+1], true
		}
	}
	return "", false
}

func (s OrderStatus) Valid() bool {
	for _, status := range StatusSequence {
		if status == s {
			return true
		}
	}
	return false
}

type Checkout struct {
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Whatsapp      string `json:"whatsapp"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Pincode       string `json:"pincode"`
	PaymentMethod string `json:"paymentMethod"`
}

type OrderItem struct {
	ID              uint              `json:"id"`
	OrderID         string            `json:"orderId"`
	ProductID       int               `json:"productId"`
	ProductName     string            `json:"productName"`
	Quantity        int               `json:"quantity"`
	SelectedOptions map[string]string `json:"selectedOptions,omitempty"`
	TotalPrice      float64           `json:"totalPrice"`
}

type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"userid"`
	Status     OrderStatus `json:"status"`
	TotalPrice float64     `json:"totalprice"`
	Checkout   Checkout    `json:"checkoutdata"`
	Items      []OrderItem `json:"cartitems"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
