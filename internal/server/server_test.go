package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/orderms/dashboard/internal/config"
	"github.com/orderms/dashboard/internal/dashboard"
	"github.com/orderms/dashboard/internal/errs"
	"github.com/orderms/dashboard/internal/mocks"
	"github.com/orderms/dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubGetter struct {
	order model.Order
	err   error
}

func (s *stubGetter) Get(ctx context.Context, id int64) (model.Order, error) {
	if s.err != nil {
		return model.Order{}, s.err
	}
	return s.order, nil
}

func setup(t *testing.T) (*Server, *mocks.MockRepository, *stubGetter) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	getter := &stubGetter{}

	logger := zaptest.NewLogger(t).Sugar()
	cfg := &config.Config{Logger: logger}

	feed := dashboard.NewFeed(logger)
	controller := dashboard.NewController(repo, feed, logger)

	return NewServer(controller, getter, feed, cfg), repo, getter
}

func do(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rr := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rr, req)
	return rr
}

func expectRefresh(repo *mocks.MockRepository, orders []model.Order, stats model.Stats) {
	repo.EXPECT().ListAll(gomock.Any()).Return(orders, nil)
	repo.EXPECT().Stats(gomock.Any()).Return(stats, nil)
}

func TestStateHandler(t *testing.T) {
	srv, repo, _ := setup(t)

	expectRefresh(repo, []model.Order{{ID: 1, Status: model.Placed, CustomerName: "Bob"}},
		model.Stats{TotalOrders: 1})
	srv.ctrl.Refresh(context.Background())

	rr := do(srv, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var state stateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.False(t, state.Loading)
	require.Len(t, state.Orders, 1)
	assert.Equal(t, int64(1), state.Orders[0].ID)
	assert.Equal(t, int64(1), state.Stats.TotalOrders)
}

func TestStateHandlerEncodesEmptyCollectionAsArray(t *testing.T) {
	srv, _, _ := setup(t)

	// before the first fetch the collection is empty, not null
	rr := do(srv, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"orders":[]`)

	rr = do(srv, http.MethodPut, "/api/dashboard/filter", `{"status":"ORDER_DELIVERED"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"orders":[]`)
}

func TestRefreshHandler(t *testing.T) {
	srv, repo, _ := setup(t)

	expectRefresh(repo, []model.Order{{ID: 2, Status: model.Ready}}, model.Stats{TotalOrders: 1})

	rr := do(srv, http.MethodPost, "/api/dashboard/refresh", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var state stateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	require.Len(t, state.Orders, 1)
	assert.Equal(t, model.Ready, state.Orders[0].Status)
}

func TestFilterHandlerNarrowsState(t *testing.T) {
	srv, repo, _ := setup(t)

	expectRefresh(repo, []model.Order{
		{ID: 1, Status: model.Placed, CustomerName: "Bob"},
		{ID: 2, Status: model.Delivered, CustomerName: "Ann"},
	}, model.Stats{TotalOrders: 2})
	srv.ctrl.Refresh(context.Background())

	rr := do(srv, http.MethodPut, "/api/dashboard/filter", `{"status":"ALL","search":"bob"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var state stateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	require.Len(t, state.Orders, 1)
	assert.Equal(t, "Bob", state.Orders[0].CustomerName)
}

func TestUpdateStatusHandler(t *testing.T) {
	srv, repo, _ := setup(t)

	repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), model.Delivered).
		Return(model.Order{ID: 5, Status: model.Delivered}, nil)
	expectRefresh(repo, []model.Order{{ID: 5, Status: model.Delivered}}, model.Stats{TotalOrders: 1})

	rr := do(srv, http.MethodPut, "/api/dashboard/orders/5/status?status=ORDER_DELIVERED", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestUpdateStatusHandlerRequiresStatus(t *testing.T) {
	srv, _, _ := setup(t)

	rr := do(srv, http.MethodPut, "/api/dashboard/orders/5/status", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateStatusHandlerRelaysStoreRejection(t *testing.T) {
	srv, repo, _ := setup(t)

	repo.EXPECT().UpdateStatus(gomock.Any(), int64(5), model.Cancelled).
		Return(model.Order{}, &errs.HTTPError{StatusCode: http.StatusConflict, Message: "illegal transition"})

	rr := do(srv, http.MethodPut, "/api/dashboard/orders/5/status?status=ORDER_CANCELLED", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Contains(t, rr.Body.String(), "illegal transition")
}

func TestInvalidOrderID(t *testing.T) {
	srv, _, _ := setup(t)

	rr := do(srv, http.MethodGet, "/api/dashboard/orders/abc", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestGetOrderHandler(t *testing.T) {
	srv, _, getter := setup(t)
	getter.order = model.Order{ID: 7, Status: model.Processing, CustomerName: "Ann"}

	rr := do(srv, http.MethodGet, "/api/dashboard/orders/7", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var order model.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&order))
	assert.Equal(t, int64(7), order.ID)
}

func TestGetOrderHandlerNotFound(t *testing.T) {
	srv, _, getter := setup(t)
	getter.err = errs.ErrOrderNotFound

	rr := do(srv, http.MethodGet, "/api/dashboard/orders/7", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateOrderHandler(t *testing.T) {
	srv, repo, _ := setup(t)

	created := model.Order{ID: 10, CustomerID: "c-1", CustomerName: "Bob", Status: model.Placed}
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil)
	expectRefresh(repo, []model.Order{created}, model.Stats{TotalOrders: 1})

	payload := `{"customerId":"c-1","customerName":"Bob","items":[{"productName":"Widget","quantity":1,"price":5}]}`
	rr := do(srv, http.MethodPost, "/api/dashboard/orders", payload)
	require.Equal(t, http.StatusCreated, rr.Code)

	var order model.Order
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&order))
	assert.Equal(t, int64(10), order.ID)
}

func TestDeleteFlow(t *testing.T) {
	srv, repo, _ := setup(t)

	rr := do(srv, http.MethodPost, "/api/dashboard/orders/9/delete", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var state stateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	require.NotNil(t, state.PendingDelete)
	assert.Equal(t, int64(9), *state.PendingDelete)

	repo.EXPECT().Delete(gomock.Any(), int64(9)).Return(nil)
	expectRefresh(repo, []model.Order{}, model.Stats{})

	rr = do(srv, http.MethodPost, "/api/dashboard/delete/confirm", "")
	require.Equal(t, http.StatusOK, rr.Code)

	state = stateResponse{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Nil(t, state.PendingDelete)
}

func TestConfirmWithoutPending(t *testing.T) {
	srv, _, _ := setup(t)

	rr := do(srv, http.MethodPost, "/api/dashboard/delete/confirm", "")
	assert.Equal(t, http.StatusConflict, rr.Code)
}

func TestCancelDeleteHandler(t *testing.T) {
	srv, _, _ := setup(t)

	do(srv, http.MethodPost, "/api/dashboard/orders/9/delete", "")
	rr := do(srv, http.MethodPost, "/api/dashboard/delete/cancel", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var state stateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&state))
	assert.Nil(t, state.PendingDelete)
}

func TestNotificationsHandlerDrains(t *testing.T) {
	srv, repo, _ := setup(t)

	expectRefresh(repo, []model.Order{}, model.Stats{})
	srv.ctrl.Refresh(context.Background())

	rr := do(srv, http.MethodGet, "/api/dashboard/notifications", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var notifications []dashboard.Notification
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&notifications))
	require.NotEmpty(t, notifications)
	assert.Equal(t, "success", notifications[0].Level)

	rr = do(srv, http.MethodGet, "/api/dashboard/notifications", "")
	notifications = nil
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&notifications))
	assert.Empty(t, notifications)
}
