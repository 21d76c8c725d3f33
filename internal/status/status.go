// Package status encodes the order lifecycle:
//
//	ORDER_PLACED -> ORDER_PROCESSING -> ORDER_READY -> ORDER_DELIVERED
//	ORDER_PLACED, ORDER_PROCESSING, ORDER_READY -> ORDER_CANCELLED
//
// ORDER_DELIVERED and ORDER_CANCELLED are terminal. All functions are total
// over the status enumeration; an unrecognized status has no legal
// transitions and maps to default presentation tokens.
package status

import "github.com/orderms/dashboard/internal/model"

// Next returns the single forward-progress transition for a status.
// Terminal and unknown statuses have none.
func Next(s model.OrderStatus) (model.OrderStatus, bool) {
	switch s {
	case model.Placed:
		return model.Processing, true
	case model.Processing:
		return model.Ready, true
	case model.Ready:
		return model.Delivered, true
	case model.Delivered, model.Cancelled:
		return "", false
	default:
		return "", false
	}
}

// CanCancel reports whether a status still allows cancellation.
func CanCancel(s model.OrderStatus) bool {
	switch s {
	case model.Placed, model.Processing, model.Ready:
		return true
	default:
		return false
	}
}

// CanEdit reports whether an order in this status may still be edited.
// Terminal statuses are immutable.
func CanEdit(s model.OrderStatus) bool {
	switch s {
	case model.Placed, model.Processing, model.Ready:
		return true
	default:
		return false
	}
}

// Color returns the presentation token for a status chip.
func Color(s model.OrderStatus) string {
	switch s {
	case model.Placed:
		return "primary"
	case model.Processing:
		return "warning"
	case model.Ready:
		return "info"
	case model.Delivered:
		return "success"
	case model.Cancelled:
		return "error"
	default:
		return "default"
	}
}

// DisplayName returns the human-readable label for a status. Unknown
// statuses fall back to the raw wire value.
func DisplayName(s model.OrderStatus) string {
	switch s {
	case model.Placed:
		return "Order Placed"
	case model.Processing:
		return "Processing"
	case model.Ready:
		return "Ready for Delivery"
	case model.Delivered:
		return "Delivered"
	case model.Cancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
