package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/digitalstore/storefront/internal/models"
)

// Client talks to the storefront REST API. It normalizes the backend's two
// list shapes (bare JSON array vs paginated {"results": [...]} envelope)
// so callers always get a plain slice.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// SetToken installs the bearer credential used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Authenticated reports whether a bearer credential is present.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string) ([]byte, error) {

	var reqBody io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	return data, nil
}

// decodeList accepts either a bare array or a paginated results envelope.
func decodeList[T any](data []byte) ([]T, error) {

	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var out []T

		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("failed to decode list: %w", err)
		}

		return out, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}

	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode paginated list: %w", err)
	}

	return envelope.Results, nil
}

func decodeInto[T any](data []byte) (*T, error) {
	var out T

	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &out, nil
}

// ListProducts fetches the catalog; search may be empty.
func (c *Client) ListProducts(ctx context.Context, search string) ([]models.Product, error) {

	path := "/products/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}

	data, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[models.Product](data)
}

func (c *Client) FeaturedProducts(ctx context.Context) ([]models.Product, error) {

	data, err := c.do(ctx, http.MethodGet, "/products/featured/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[models.Product](data)
}

func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {

	data, err := c.do(ctx, http.MethodGet, "/products/categories/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[models.Category](data)
}

func (c *Client) GetProduct(ctx context.Context, id int64) (*models.Product, error) {

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/products/%d/", id), nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.Product](data)
}

// CreateOrder submits an order request. An Idempotency-Key header is
// attached when key is non-empty so an ambiguous failure can be retried
// without duplicating the order.
func (c *Client) CreateOrder(ctx context.Context, req *models.CreateOrderRequest, idempotencyKey string) (*models.Order, error) {

	var headers map[string]string
	if idempotencyKey != "" {
		headers = map[string]string{"Idempotency-Key": idempotencyKey}
	}

	data, err := c.do(ctx, http.MethodPost, "/orders/", req, headers)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.Order](data)
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {

	data, err := c.do(ctx, http.MethodGet, "/orders/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[models.Order](data)
}

func (c *Client) CreateReview(ctx context.Context, req *models.CreateReviewRequest) (*models.Review, error) {

	data, err := c.do(ctx, http.MethodPost, "/reviews/", req, nil)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.Review](data)
}

func (c *Client) UpdateReview(ctx context.Context, id int64, req *models.UpdateReviewRequest) (*models.Review, error) {

	data, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/reviews/%d/", id), req, nil)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.Review](data)
}

func (c *Client) DeleteReview(ctx context.Context, id int64) error {

	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/reviews/%d/", id), nil, nil)

	return err
}

func (c *Client) ProductReviews(ctx context.Context, productID int64) (*models.ProductReviewsResponse, error) {

	data, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reviews/product_reviews/?product_id=%d", productID), nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.ProductReviewsResponse](data)
}

func (c *Client) MyReviews(ctx context.Context) ([]models.Review, error) {

	data, err := c.do(ctx, http.MethodGet, "/reviews/my_reviews/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeList[models.Review](data)
}

// Register creates an account and installs the returned credential.
func (c *Client) Register(ctx context.Context, req *models.RegisterRequest) (*models.LoginResponse, error) {

	data, err := c.do(ctx, http.MethodPost, "/auth/register/", req, nil)
	if err != nil {
		return nil, err
	}

	result, err := decodeInto[models.LoginResponse](data)
	if err != nil {
		return nil, err
	}

	if result.Token != "" {
		c.token = result.Token
	}

	return result, nil
}

// Login authenticates and installs the returned credential.
func (c *Client) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	data, err := c.do(ctx, http.MethodPost, "/auth/login/", req, nil)
	if err != nil {
		return nil, err
	}

	result, err := decodeInto[models.LoginResponse](data)
	if err != nil {
		return nil, err
	}

	if result.Token != "" {
		c.token = result.Token
	}

	return result, nil
}

func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {

	data, err := c.do(ctx, http.MethodGet, "/auth/user/", nil, nil)
	if err != nil {
		return nil, err
	}

	return decodeInto[models.User](data)
}
