package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fairyhunter13/product-catalog-editor/internal/model"
	"github.com/fairyhunter13/product-catalog-editor/internal/obs"
)

// Client is a ProductService backed by the product service HTTP API.
type Client struct {
	baseURL string
	hc      *http.Client
}

var _ ProductService = (*Client)(nil)

// NewClient returns a Client for the service at baseURL. A nil hc uses a
// client with a 10s timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

// List fetches every product.
func (c *Client) List(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := c.do(ctx, http.MethodGet, "/products", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.Product{}
	}
	return out, nil
}

// Save posts new products and puts existing ones.
func (c *Client) Save(ctx context.Context, p model.Product) (model.Product, error) {
	var out model.Product
	var err error
	if p.IsNew() {
		err = c.do(ctx, http.MethodPost, "/products", p, &out)
	} else {
		err = c.do(ctx, http.MethodPut, "/products/"+strconv.Itoa(p.ID), p, &out)
	}
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// Delete removes the product with id.
func (c *Client) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, "/products/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-Id", reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	obs.Logger.Debug("product_service_call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"latency_ms", float64(time.Since(start).Microseconds())/1000.0,
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	var payload struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	e := &Error{Status: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		e.Code = payload.Error
		e.Details = payload.Details
	}
	if e.Code == "" {
		e.Code = strings.ToLower(strings.ReplaceAll(http.StatusText(resp.StatusCode), " ", "_"))
	}
	return e
}
