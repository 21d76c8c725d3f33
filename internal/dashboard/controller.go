// Package dashboard holds the order dashboard state: the cached order
// collection, the stats snapshot, the active filter and the delete
// confirmation gate. Every successful mutation is followed by a full
// reconciliation fetch; cached state is never patched in place.
package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/orderms/dashboard/internal/errs"
	"github.com/orderms/dashboard/internal/filter"
	"github.com/orderms/dashboard/internal/model"
	"github.com/orderms/dashboard/internal/status"
	"go.uber.org/zap"
)

type Repository interface {
	ListAll(ctx context.Context) ([]model.Order, error)
	Stats(ctx context.Context) (model.Stats, error)
	Create(ctx context.Context, req model.OrderRequest) (model.Order, error)
	Update(ctx context.Context, id int64, req model.OrderRequest) (model.Order, error)
	UpdateStatus(ctx context.Context, id int64, newStatus model.OrderStatus) (model.Order, error)
	Delete(ctx context.Context, id int64) error
}

type Notifier interface {
	Success(message string)
	Error(message string)
}

// deleteGate is the two-phase confirmation for destructive deletes.
// It moves Idle -> PendingConfirm on request and back to Idle on confirm
// or cancel. There is no timeout on the pending state.
type deleteGate struct {
	orderID int64
	armed   bool
}

// Controller coordinates the order store, the filter engine and the
// notifier. Each mounted dashboard owns its own instance.
type Controller struct {
	repo     Repository
	notifier Notifier
	logger   *zap.SugaredLogger

	mu      sync.Mutex
	loading bool
	orders  []model.Order
	stats   model.Stats
	view    filter.State
	delete  deleteGate
}

func NewController(repo Repository, notifier Notifier, logger *zap.SugaredLogger) *Controller {
	return &Controller{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		loading:  true,
		view:     filter.NewState(),
	}
}

// Refresh runs one load cycle: the order collection and the stats are
// fetched concurrently and resolved independently, so a stats failure never
// blocks a collection update or vice versa. On failure the previous value is
// kept. Overlapping refreshes are not de-duplicated; the last one to resolve
// wins.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		orders, err := c.repo.ListAll(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		c.loading = false
		if err != nil {
			c.logger.Errorf("fetch orders: %v", err)
			c.notifier.Error("Failed to load orders")
			return
		}
		c.orders = orders
		c.notifier.Success("Orders loaded successfully")
	}()

	go func() {
		defer wg.Done()
		stats, err := c.repo.Stats(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.logger.Errorf("fetch stats: %v", err)
			c.notifier.Error("Failed to load order statistics")
			return
		}
		c.stats = stats
	}()

	wg.Wait()
}

// Visible returns the filtered projection of the cached collection.
func (c *Controller) Visible() []model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Order(nil), filter.Apply(c.orders, c.view)...)
}

func (c *Controller) Orders() []model.Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]model.Order(nil), c.orders...)
}

func (c *Controller) Stats() model.Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *Controller) Filter() filter.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *Controller) SetStatusFilter(statusFilter string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Status = statusFilter
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Search = term
}

// CreateOrder submits a form-validated payload and reconciles on success.
func (c *Controller) CreateOrder(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	order, err := c.repo.Create(ctx, req)
	if err != nil {
		c.logger.Errorf("create order: %v", err)
		c.notifier.Error("Failed to create order")
		return model.Order{}, err
	}

	c.notifier.Success("Order created successfully")
	c.Refresh(ctx)
	return order, nil
}

// UpdateOrder submits a form-validated payload for an existing order and
// reconciles on success.
func (c *Controller) UpdateOrder(ctx context.Context, id int64, req model.OrderRequest) (model.Order, error) {
	order, err := c.repo.Update(ctx, id, req)
	if err != nil {
		c.logger.Errorf("update order %d: %v", id, err)
		c.notifier.Error("Failed to update order")
		return model.Order{}, err
	}

	c.notifier.Success("Order updated successfully")
	c.Refresh(ctx)
	return order, nil
}

// RequestStatusUpdate relays a status transition to the store and reconciles
// on success. The store stays authoritative on whether the transition is
// legal; the cached collection is never patched locally.
func (c *Controller) RequestStatusUpdate(ctx context.Context, id int64, newStatus model.OrderStatus) error {
	if _, err := c.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		c.logger.Errorf("update order %d status: %v", id, err)
		c.notifier.Error("Failed to update order status")
		return err
	}

	c.notifier.Success(fmt.Sprintf("Order status updated to %s", status.DisplayName(newStatus)))
	c.Refresh(ctx)
	return nil
}

// RequestDelete stages an order for deletion. No store call happens until
// ConfirmDelete.
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delete = deleteGate{orderID: id, armed: true}
}

// CancelDelete discards the staged delete candidate.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.delete = deleteGate{}
}

// PendingDelete reports the staged delete candidate, if any.
func (c *Controller) PendingDelete() (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.delete.orderID, c.delete.armed
}

// ConfirmDelete issues the store delete for the staged candidate. The gate
// returns to idle whatever the outcome, so the confirmation dialog closes on
// both success and failure; only the notification differs.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	gate := c.delete
	c.delete = deleteGate{}
	c.mu.Unlock()

	if !gate.armed {
		return errs.ErrNoPendingDelete
	}

	if err := c.repo.Delete(ctx, gate.orderID); err != nil {
		c.logger.Errorf("delete order %d: %v", gate.orderID, err)
		c.notifier.Error("Failed to delete order")
		return err
	}

	c.notifier.Success("Order deleted successfully")
	c.Refresh(ctx)
	return nil
}
