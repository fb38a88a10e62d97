package entity

import (
	"time"
)

const (
	OrderStatusPending = "Pending"

	DefaultPaymentMethod = "Cash on Delivery"
)

type Order struct {
	ID              int64      `json:"id" firestore:"id"`
	UserID          int64      `json:"user_id" firestore:"userId"`
	Items           []CartLine `json:"items" firestore:"items"`
	Total           float64    `json:"total" firestore:"total"`
	CustomerName    string     `json:"customer_name" firestore:"customerName"`
	CustomerEmail   string     `json:"customer_email" firestore:"customerEmail"`
	ShippingAddress string     `json:"shipping_address" firestore:"shippingAddress"`
	PaymentMethod   string     `json:"payment_method" firestore:"paymentMethod"`
	Status          string     `json:"status" firestore:"status"`
	CreatedAt       time.Time  `json:"created_at" firestore:"createdAt"`
}

// Stats is the admin dashboard summary.
type Stats struct {
	TotalUsers    int64   `json:"total_users"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
	TotalProducts int64   `json:"total_products"`
}
