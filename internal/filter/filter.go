// Package filter narrows an in-memory order collection by status and free
// text without contacting the order store.
package filter

import (
	"strconv"
	"strings"

	"github.com/orderms/dashboard/internal/model"
)

// StatusAll disables status narrowing.
const StatusAll = "ALL"

type State struct {
	Status string `json:"status"`
	Search string `json:"search"`
}

// NewState returns the default view state: all statuses, no search term.
func NewState() State {
	return State{Status: StatusAll}
}

// Apply narrows orders in two fixed stages: status exact-match first, then
// case-insensitive text search. The term matches an order when it is a
// substring of the customer name, a substring of the customer email, or
// equals the decimal form of the id. An order matches if any predicate
// evaluable on it succeeds; absent fields only skip their own predicate.
// Input order is preserved.
func Apply(orders []model.Order, st State) []model.Order {
	filtered := orders

	if st.Status != StatusAll && st.Status != "" {
		kept := make([]model.Order, 0, len(filtered))
		for _, order := range filtered {
			if order.Status == model.OrderStatus(st.Status) {
				kept = append(kept, order)
			}
		}
		filtered = kept
	}

	term := strings.ToLower(strings.TrimSpace(st.Search))
	if term != "" {
		kept := make([]model.Order, 0, len(filtered))
		for _, order := range filtered {
			if matchesTerm(order, term) {
				kept = append(kept, order)
			}
		}
		filtered = kept
	}

	return filtered
}

func matchesTerm(order model.Order, term string) bool {
	if order.CustomerName != "" && strings.Contains(strings.ToLower(order.CustomerName), term) {
		return true
	}
	if order.CustomerEmail != "" && strings.Contains(strings.ToLower(order.CustomerEmail), term) {
		return true
	}
	return strconv.FormatInt(order.ID, 10) == term
}
