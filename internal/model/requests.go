package model

// OrderRequest is the validated payload the order form produces for
// create and update. Field-level validation happens in the form, not here.
type OrderRequest struct {
	CustomerID      string             `json:"customerId"`
	CustomerName    string             `json:"customerName"`
	CustomerEmail   string             `json:"customerEmail,omitempty"`
	CustomerPhone   string             `json:"customerPhone,omitempty"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	OrderNotes      string             `json:"orderNotes,omitempty"`
	Items           []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ProductName        string  `json:"productName"`
	ProductDescription string  `json:"productDescription,omitempty"`
	Quantity           int     `json:"quantity"`
	Price              float64 `json:"price"`
	Category           string  `json:"category,omitempty"`
}
