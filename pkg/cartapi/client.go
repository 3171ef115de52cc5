package cartapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/teetribe/teetribe-backend/internal/cart"
	"github.com/teetribe/teetribe-backend/pkg/db/models"
	pkgerrors "github.com/teetribe/teetribe-backend/pkg/errors"
	"github.com/teetribe/teetribe-backend/pkg/types"
)

const (
	defaultBaseURL       = "http://localhost:8000"
	defaultTimeout       = 5 * time.Second
	errorBodyReadLimit   = 4096
	idempotencyKeyHeader = "Idempotency-Key"
)

// Client talks to the TeeTribe API on behalf of a storefront session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout bounds every remote call. It never mutates a client passed
// through WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// NewClient builds a client against baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.timeout > 0 {
		scoped := *client.httpClient
		scoped.Timeout = client.timeout
		client.httpClient = &scoped
	}
	return client
}

// CartPayload is the remote cart representation.
type CartPayload struct {
	UserID string        `json:"user_id"`
	Items  []cart.Record `json:"items"`
}

// SaveCartResult acknowledges a pushed cart.
type SaveCartResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// ProductQuery filters the catalog listing.
type ProductQuery struct {
	Categories []string
	MinPrice   *float64
	MaxPrice   *float64
	Q          string
	Page       int
	Limit      int
}

// ProductPage is one page of the catalog.
type ProductPage struct {
	Items []models.Product `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items         []cart.Record  `json:"items"`
	Total         float64        `json:"total"`
	Contact       types.Contact  `json:"contact"`
	Shipping      types.Shipping `json:"shipping"`
	PaymentMethod string         `json:"payment_method,omitempty"`
}

// PlaceOrderResult acknowledges a placed order.
type PlaceOrderResult struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

// ReviewList is a product's reviews with their average rating.
type ReviewList struct {
	Reviews       []models.Review `json:"reviews"`
	Count         int             `json:"count"`
	AverageRating float64         `json:"average_rating"`
}

// AddReviewRequest is the review submission payload.
type AddReviewRequest struct {
	ProductID string `json:"product_id"`
	UserName  string `json:"user_name,omitempty"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// AddReviewResult acknowledges a stored review.
type AddReviewResult struct {
	Message string        `json:"message"`
	Review  models.Review `json:"review"`
}

// Category is one entry of the shop filter.
type Category struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ProductCount int64  `json:"product_count"`
}

// FetchCart returns the raw stored cart for userID.
func (c *Client) FetchCart(ctx context.Context, userID string) ([]cart.Record, error) {
	var payload CartPayload
	if err := c.do(ctx, http.MethodGet, cartPath(userID), nil, nil, &payload); err != nil {
		return nil, remoteUnavailable(err, "fetch cart")
	}
	if payload.Items == nil {
		return []cart.Record{}, nil
	}
	return payload.Items, nil
}

// PushCart replaces the stored cart for userID.
func (c *Client) PushCart(ctx context.Context, userID string, items []cart.Record) error {
	if items == nil {
		items = []cart.Record{}
	}
	body := map[string]any{"items": items}
	var result SaveCartResult
	if err := c.do(ctx, http.MethodPost, cartPath(userID), body, nil, &result); err != nil {
		return remoteUnavailable(err, "push cart")
	}
	return nil
}

// ClearCart removes the stored cart for userID. A missing cart is already clear.
func (c *Client) ClearCart(ctx context.Context, userID string) error {
	err := c.do(ctx, http.MethodDelete, cartPath(userID), nil, nil, nil)
	if err == nil || pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		return nil
	}
	return remoteUnavailable(err, "clear cart")
}

// GetProductBySlug resolves a catalog product by its slug.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/products/slug/"+url.PathEscape(slug), nil, nil, &product); err != nil {
		return nil, passThroughClientErrors(err, "get product")
	}
	return &product, nil
}

// ListProducts returns one catalog page.
func (c *Client) ListProducts(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	values := url.Values{}
	for _, category := range q.Categories {
		if category = strings.TrimSpace(category); category != "" {
			values.Add("categories", category)
		}
	}
	if q.MinPrice != nil {
		values.Set("min_price", strconv.FormatFloat(*q.MinPrice, 'f', -1, 64))
	}
	if q.MaxPrice != nil {
		values.Set("max_price", strconv.FormatFloat(*q.MaxPrice, 'f', -1, 64))
	}
	if q.Q != "" {
		values.Set("q", q.Q)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	path := "/products"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}
	var page ProductPage
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &page); err != nil {
		return nil, passThroughClientErrors(err, "list products")
	}
	return &page, nil
}

// PlaceOrder submits a checkout. idempotencyKey lets a retried checkout reuse
// the first response.
func (c *Client) PlaceOrder(ctx context.Context, userID, idempotencyKey string, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	headers := http.Header{}
	if key := strings.TrimSpace(idempotencyKey); key != "" {
		headers.Set(idempotencyKeyHeader, key)
	}
	var result PlaceOrderResult
	if err := c.do(ctx, http.MethodPost, "/orders/"+url.PathEscape(userID), req, headers, &result); err != nil {
		return nil, passThroughClientErrors(err, "place order")
	}
	return &result, nil
}

// ListOrders returns the order history for userID, newest first.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var payload struct {
		Orders []models.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(userID), nil, nil, &payload); err != nil {
		return nil, passThroughClientErrors(err, "list orders")
	}
	if payload.Orders == nil {
		return []models.Order{}, nil
	}
	return payload.Orders, nil
}

// ListCategories returns the catalog's active categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var out struct {
		Categories []Category `json:"categories"`
	}
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &out); err != nil {
		return nil, passThroughClientErrors(err, "list categories")
	}
	if out.Categories == nil {
		out.Categories = []Category{}
	}
	return out.Categories, nil
}

// ListReviews returns the reviews of productID.
func (c *Client) ListReviews(ctx context.Context, productID string) (*ReviewList, error) {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var list ReviewList
	if err := c.do(ctx, http.MethodGet, "/reviews/"+url.PathEscape(productID), nil, nil, &list); err != nil {
		return nil, passThroughClientErrors(err, "list reviews")
	}
	if list.Reviews == nil {
		list.Reviews = []models.Review{}
	}
	return &list, nil
}

// AddReview submits a review. Validation errors from the API are returned as is.
func (c *Client) AddReview(ctx context.Context, req AddReviewRequest) (*AddReviewResult, error) {
	var result AddReviewResult
	if err := c.do(ctx, http.MethodPost, "/reviews", req, nil, &result); err != nil {
		return nil, passThroughClientErrors(err, "add review")
	}
	return &result, nil
}

// DeleteReview removes a review by id.
func (c *Client) DeleteReview(ctx context.Context, reviewID string) error {
	if err := c.do(ctx, http.MethodDelete, "/reviews/"+url.PathEscape(reviewID), nil, nil, nil); err != nil {
		return passThroughClientErrors(err, "delete review")
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "marshal request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "execute request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}

	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode response")
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, "decode response data")
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyReadLimit))
	var envelope types.ErrorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Code != "" {
		return pkgerrors.New(pkgerrors.Code(envelope.Error.Code), envelope.Error.Message).
			WithDetails(envelope.Error.Details)
	}
	cause := fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	if resp.StatusCode == http.StatusNotFound {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, cause, "resource not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, cause, "unexpected response")
}

// remoteUnavailable folds every failure of a cart call into RemoteUnavailable.
func remoteUnavailable(err error, message string) error {
	return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, message)
}

// passThroughClientErrors keeps 4xx-class errors the API reported so callers
// can show them, and folds the rest into RemoteUnavailable.
func passThroughClientErrors(err error, message string) error {
	typed := pkgerrors.As(err)
	if typed != nil {
		status := pkgerrors.MetadataFor(typed.Code()).HTTPStatus
		if status >= 400 && status < 500 {
			return typed
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeRemoteUnavailable, err, message)
}

func cartPath(userID string) string {
	return "/cart/" + url.PathEscape(userID)
}
