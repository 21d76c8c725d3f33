package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	chiMiddleware "github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/orderms/dashboard/internal/config"
	"github.com/orderms/dashboard/internal/dashboard"
	"github.com/orderms/dashboard/internal/errs"
	"github.com/orderms/dashboard/internal/filter"
	"github.com/orderms/dashboard/internal/middleware"
	"github.com/orderms/dashboard/internal/model"
)

// OrderGetter serves the order-details passthrough that bypasses the cached
// collection.
type OrderGetter interface {
	Get(ctx context.Context, id int64) (model.Order, error)
}

// Server exposes the dashboard controller's intents over HTTP to the
// browser layer.
type Server struct {
	ctrl   *dashboard.Controller
	orders OrderGetter
	feed   *dashboard.Feed
	config *config.Config
}

func NewServer(ctrl *dashboard.Controller, orders OrderGetter, feed *dashboard.Feed, config *config.Config) *Server {
	return &Server{
		ctrl:   ctrl,
		orders: orders,
		feed:   feed,
		config: config,
	}
}

func (srv *Server) buildRouter() http.Handler {
	router := chi.NewRouter()
	router.Use(chiMiddleware.StripSlashes)
	router.Use(middleware.LogMiddleware(srv.config.Logger))
	router.Use(middleware.DecompressMiddleware)
	router.Use(middleware.CompressMiddleware(srv.config.Logger))

	router.Route("/api/dashboard", func(r chi.Router) {
		r.Get("/", srv.StateHandler)
		r.Post("/refresh", srv.RefreshHandler)
		r.Put("/filter", srv.FilterHandler)
		r.Get("/notifications", srv.NotificationsHandler)

		r.Post("/orders", srv.CreateOrderHandler)
		r.Get("/orders/{id}", srv.GetOrderHandler)
		r.Put("/orders/{id}", srv.UpdateOrderHandler)
		r.Put("/orders/{id}/status", srv.UpdateStatusHandler)
		r.Post("/orders/{id}/delete", srv.StageDeleteHandler)

		r.Post("/delete/confirm", srv.ConfirmDeleteHandler)
		r.Post("/delete/cancel", srv.CancelDeleteHandler)
	})

	return router
}

func (srv *Server) Run(ctx context.Context) error {
	router := srv.buildRouter()

	server := &http.Server{
		Addr:    srv.config.RunAddress,
		Handler: router,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			srv.config.Logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

type stateResponse struct {
	Loading       bool          `json:"loading"`
	Orders        []model.Order `json:"orders"`
	Stats         model.Stats   `json:"stats"`
	Filter        filter.State  `json:"filter"`
	PendingDelete *int64        `json:"pendingDelete,omitempty"`
}

func (srv *Server) state() stateResponse {
	orders := srv.ctrl.Visible()
	if orders == nil {
		orders = []model.Order{}
	}

	resp := stateResponse{
		Loading: srv.ctrl.Loading(),
		Orders:  orders,
		Stats:   srv.ctrl.Stats(),
		Filter:  srv.ctrl.Filter(),
	}
	if id, ok := srv.ctrl.PendingDelete(); ok {
		resp.PendingDelete = &id
	}
	return resp
}

func (srv *Server) StateHandler(w http.ResponseWriter, r *http.Request) {
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	srv.ctrl.Refresh(r.Context())
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) FilterHandler(w http.ResponseWriter, r *http.Request) {
	var st filter.State
	if err := json.NewDecoder(r.Body).Decode(&st); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if st.Status == "" {
		st.Status = filter.StatusAll
	}

	srv.ctrl.SetStatusFilter(st.Status)
	srv.ctrl.SetSearchTerm(st.Search)
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) NotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications := srv.feed.Drain()
	if notifications == nil {
		notifications = []dashboard.Notification{}
	}
	srv.writeJSON(w, http.StatusOK, notifications)
}

func (srv *Server) GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	order, err := srv.orders.Get(r.Context(), id)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, order)
}

func (srv *Server) CreateOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	order, err := srv.ctrl.CreateOrder(r.Context(), req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusCreated, order)
}

func (srv *Server) UpdateOrderHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	order, err := srv.ctrl.UpdateOrder(r.Context(), id, req)
	if err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, order)
}

func (srv *Server) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	newStatus := r.URL.Query().Get("status")
	if newStatus == "" {
		http.Error(w, "status required", http.StatusBadRequest)
		return
	}

	if err := srv.ctrl.RequestStatusUpdate(r.Context(), id, model.OrderStatus(newStatus)); err != nil {
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) StageDeleteHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	srv.ctrl.RequestDelete(id)
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) ConfirmDeleteHandler(w http.ResponseWriter, r *http.Request) {
	if err := srv.ctrl.ConfirmDelete(r.Context()); err != nil {
		if errors.Is(err, errs.ErrNoPendingDelete) {
			http.Error(w, "no delete pending", http.StatusConflict)
			return
		}
		srv.writeError(w, err)
		return
	}

	srv.writeJSON(w, http.StatusOK, srv.state())
}

func (srv *Server) CancelDeleteHandler(w http.ResponseWriter, r *http.Request) {
	srv.ctrl.CancelDelete()
	srv.writeJSON(w, http.StatusOK, srv.state())
}

func orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// writeError maps store failures onto facade responses: not-found passes
// through as 404, other store rejections keep the upstream status code, and
// transport failures surface as 502.
func (srv *Server) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errs.ErrOrderNotFound) {
		http.Error(w, "order not found", http.StatusNotFound)
		return
	}

	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		message := httpErr.Message
		if message == "" {
			message = "order store error"
		}
		http.Error(w, message, httpErr.StatusCode)
		return
	}

	http.Error(w, "order store unavailable", http.StatusBadGateway)
}

func (srv *Server) writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		srv.config.Logger.Errorf("encode response: %v", err)
	}
}
