package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hackinpovo/inventory/internal/client/models"
	"github.com/hackinpovo/inventory/internal/common"
	"github.com/hackinpovo/inventory/internal/logging"
)

// operation names an API call and the message shown when the server gives
// no better one.
type operation struct {
	name     string
	fallback string
	auth     bool
}

var (
	opListItems   = operation{name: "list items", fallback: "could not load items"}
	opListTags    = operation{name: "list tags", fallback: "could not load tags"}
	opSearchItems = operation{name: "search items", fallback: "search failed"}
	opCreateItem  = operation{name: "create item", fallback: "could not create item", auth: true}
	opUpdateItem  = operation{name: "update item", fallback: "could not update item", auth: true}
	opQuantity    = operation{name: "update quantity", fallback: "could not update quantity", auth: true}
	opUsed        = operation{name: "update used quantity", fallback: "could not update used quantity", auth: true}
	opDeleteItem  = operation{name: "delete item", fallback: "could not delete item", auth: true}
	opCreateTag   = operation{name: "create tag", fallback: "could not create tag", auth: true}
	opDeleteTag   = operation{name: "delete tag", fallback: "could not delete tag", auth: true}
	opLogin       = operation{name: "login", fallback: "login failed"}
	opRegister    = operation{name: "register", fallback: "registration failed"}
)

// HTTPClient implements Client over JSON/HTTP. It holds no inventory state.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logging.Logger
}

// Option customises an HTTPClient.
type Option func(*HTTPClient)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *HTTPClient) { c.http = h }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *HTTPClient) { c.tokens = ts }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.logger = l }
}

// NewHTTPClient creates a client for the API rooted at baseURL
// (e.g. "http://localhost:6789/api").
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  TokenFunc(func() string { return "" }),
		logger:  logging.Discard(),
	}
	for _, o := range opts {
		o(c)
	}
	c.logger = c.logger.With("module", "api_client")
	return c
}

// SetTokenSource swaps the token source. It must be called before the
// client is shared between goroutines.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

func (c *HTTPClient) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	err := c.do(ctx, opListItems, http.MethodGet, "/items", nil, nil, &items)
	return items, err
}

func (c *HTTPClient) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := c.do(ctx, opListTags, http.MethodGet, "/tags", nil, nil, &tags)
	return tags, err
}

func (c *HTTPClient) SearchItems(ctx context.Context, query string, tagIDs []string) ([]models.Item, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("tagIds", strings.Join(tagIDs, ","))

	var items []models.Item
	err := c.do(ctx, opSearchItems, http.MethodGet, "/items/search", q, nil, &items)
	return items, err
}

func (c *HTTPClient) CreateItem(ctx context.Context, req models.CreateItemRequest) (models.Item, error) {
	if req.TagIDs == nil {
		req.TagIDs = []string{}
	}
	var item models.Item
	err := c.do(ctx, opCreateItem, http.MethodPost, "/items", nil, req, &item)
	return item, err
}

func (c *HTTPClient) UpdateItem(ctx context.Context, id string, req models.UpdateItemRequest) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, opUpdateItem, http.MethodPut, "/items/"+url.PathEscape(id), nil, req, &item)
	return item, err
}

func (c *HTTPClient) UpdateQuantity(ctx context.Context, id string, quantity int) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, opQuantity, http.MethodPatch, "/items/"+url.PathEscape(id)+"/quantity", nil,
		models.QuantityRequest{Quantity: quantity}, &item)
	return item, err
}

func (c *HTTPClient) UpdateUsedQuantity(ctx context.Context, id string, used int) (models.Item, error) {
	var item models.Item
	err := c.do(ctx, opUsed, http.MethodPatch, "/items/"+url.PathEscape(id)+"/usedquantity", nil,
		models.QuantityRequest{Quantity: used}, &item)
	return item, err
}

func (c *HTTPClient) DeleteItem(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteItem, http.MethodDelete, "/items/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) CreateTag(ctx context.Context, req models.CreateTagRequest) (models.Tag, error) {
	var tag models.Tag
	err := c.do(ctx, opCreateTag, http.MethodPost, "/tags", nil, req, &tag)
	return tag, err
}

func (c *HTTPClient) DeleteTag(ctx context.Context, id string) error {
	return c.do(ctx, opDeleteTag, http.MethodDelete, "/tags/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, opLogin, http.MethodPost, "/auth/login", nil, req, &resp)
	return resp, err
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error) {
	var resp models.AuthResponse
	err := c.do(ctx, opRegister, http.MethodPost, "/auth/register", nil, req, &resp)
	return resp, err
}

func (c *HTTPClient) do(ctx context.Context, op operation, method, path string, query url.Values, body any, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return c.fail(op, 0, "", fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return c.fail(op, 0, "", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	if op.auth {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn(ctx, "request failed", "op", op.name, "request_id", requestID, "error", err)
		return c.fail(op, 0, "", err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done",
		"op", op.name, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start), "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.fail(op, resp.StatusCode, serverMessage(resp.Body), nil)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.fail(op, resp.StatusCode, "", fmt.Errorf("decode response: %w", err))
	}
	return nil
}

func (c *HTTPClient) fail(op operation, status int, msg string, cause error) error {
	if msg == "" {
		msg = op.fallback
	}
	return &RequestError{Op: op.name, Status: status, Message: msg, cause: cause}
}

// serverMessage extracts {"message": "..."} from an error body, or "".
func serverMessage(r io.Reader) string {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(io.LimitReader(r, 64<<10)).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(body.Message)
}
