package model

import "time"

type OrderStatus string

const (
	Placed     OrderStatus = "ORDER_PLACED"
	Processing OrderStatus = "ORDER_PROCESSING"
	Ready      OrderStatus = "ORDER_READY"
	Delivered  OrderStatus = "ORDER_DELIVERED"
	Cancelled  OrderStatus = "ORDER_CANCELLED"
)

// AllStatuses lists every status the remote store reports, in lifecycle order.
var AllStatuses = []OrderStatus{Placed, Processing, Ready, Delivered, Cancelled}

type Order struct {
	ID              int64       `json:"id"`
	CustomerID      string      `json:"customerId"`
	CustomerName    string      `json:"customerName,omitempty"`
	CustomerEmail   string      `json:"customerEmail,omitempty"`
	CustomerPhone   string      `json:"customerPhone,omitempty"`
	Status          OrderStatus `json:"status"`
	TotalAmount     float64     `json:"totalAmount"`
	DeliveryAddress string      `json:"deliveryAddress,omitempty"`
	OrderNotes      string      `json:"orderNotes,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	Items           []OrderItem `json:"items"`
}

type OrderItem struct {
	ID                 int64   `json:"id"`
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription,omitempty"`
	Quantity           int     `json:"quantity"`
	Price              float64 `json:"price"`
	Category           string  `json:"category,omitempty"`
}

// OrderPage is the payload of the paged listing endpoint.
type OrderPage struct {
	Orders      []Order `json:"orders"`
	CurrentPage int     `json:"currentPage"`
	TotalItems  int64   `json:"totalItems"`
	TotalPages  int     `json:"totalPages"`
}

type Stats struct {
	TotalOrders  int64                 `json:"totalOrders"`
	StatusCounts map[OrderStatus]int64 `json:"statusCounts"`
}
