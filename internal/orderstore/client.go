// Package orderstore is a typed client for the remote order store. It is a
// pass-through: no retries, no caching, no local validation. Every call is
// logged on dispatch and on completion for diagnostics only.
package orderstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/orderms/dashboard/internal/errs"
	"github.com/orderms/dashboard/internal/model"
	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, httpClient *http.Client, logger *zap.SugaredLogger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *Client) ListAll(ctx context.Context) ([]model.Order, error) {
	var orders []model.Order
	if err := c.call(ctx, http.MethodGet, "/orders/all", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) List(ctx context.Context, page, size int, sortBy, sortDir string) (model.OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	query.Set("sortBy", sortBy)
	query.Set("sortDir", sortDir)

	var result model.OrderPage
	if err := c.call(ctx, http.MethodGet, "/orders?"+query.Encode(), nil, &result); err != nil {
		return model.OrderPage{}, err
	}
	return result, nil
}

func (c *Client) Get(ctx context.Context, id int64) (model.Order, error) {
	var order model.Order
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) ByCustomer(ctx context.Context, customerID string) ([]model.Order, error) {
	var orders []model.Order
	path := "/orders/customer/" + url.PathEscape(customerID)
	if err := c.call(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) ByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	var orders []model.Order
	path := "/orders/status/" + url.PathEscape(string(status))
	if err := c.call(ctx, http.MethodGet, path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Search(ctx context.Context, term string) ([]model.Order, error) {
	query := url.Values{}
	query.Set("q", term)

	var orders []model.Order
	if err := c.call(ctx, http.MethodGet, "/orders/search?"+query.Encode(), nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Create(ctx context.Context, req model.OrderRequest) (model.Order, error) {
	var order model.Order
	if err := c.call(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) Update(ctx context.Context, id int64, req model.OrderRequest) (model.Order, error) {
	var order model.Order
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), req, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) UpdateStatus(ctx context.Context, id int64, newStatus model.OrderStatus) (model.Order, error) {
	query := url.Values{}
	query.Set("status", string(newStatus))

	var order model.Order
	path := fmt.Sprintf("/orders/%d/status?%s", id, query.Encode())
	if err := c.call(ctx, http.MethodPut, path, nil, &order); err != nil {
		return model.Order{}, err
	}
	return order, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/orders/%d", id), nil, nil)
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	var stats model.Stats
	if err := c.call(ctx, http.MethodGet, "/orders/stats", nil, &stats); err != nil {
		return model.Stats{}, err
	}
	return stats, nil
}

// call performs one request against the store. A nil out discards the
// response body; a nil body sends no payload.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	c.logger.Debugf("order store request: %s %s", method, path)

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorf("order store request failed: %s %s: %v", method, path, err)
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := c.decodeError(resp)
		c.logger.Errorf("order store request failed: %s %s: %v", method, path, err)
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.logger.Errorf("order store request failed: %s %s: decode response: %v", method, path, err)
			return fmt.Errorf("decode response: %w", err)
		}
	}

	c.logger.Debugf("order store response: %s %s: %d", method, path, resp.StatusCode)
	return nil
}

// decodeError converts a non-2xx response into the client error taxonomy.
// The store reports failures as {"error": "..."}.
func (c *Client) decodeError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return errs.ErrOrderNotFound
	}

	var body struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &errs.HTTPError{StatusCode: resp.StatusCode, Message: body.Error}
}
