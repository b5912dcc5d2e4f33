// Package client is the Go consumer of the parts service HTTP API. It wraps
// the REST endpoints, reconciles the two historical list response shapes
// behind a single normalization boundary, and provides the paginated part
// and supplier view controllers. Mutations publish invalidation events on
// an instance-scoped bus so independently mounted views stay in sync.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/simp-lee/partstore/events"
)

// Client calls the parts service REST API. Create with New; the zero value
// is not usable.
type Client struct {
	baseURL string
	httpc   *http.Client
	bus     *events.Bus
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. Timeouts and retries are the
// transport's responsibility; the Client enforces none itself.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpc = hc }
}

// WithBus sets the invalidation bus shared with other clients or views.
func WithBus(bus *events.Bus) Option {
	return func(c *Client) { c.bus = bus }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the API rooted at baseURL, typically ending in
// "/api/v1". Unless WithBus is given, the client owns a fresh bus.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		bus:     events.NewBus(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bus returns the invalidation bus mutations publish on.
func (c *Client) Bus() *events.Bus { return c.bus }

// ListOptions are the query parameters accepted by the list endpoints.
// A zero ListOptions sends no parameters, which requests the legacy
// bare-array shape carrying the full collection.
type ListOptions struct {
	Page   int
	Limit  int
	Search string
}

func (o ListOptions) query() url.Values {
	q := url.Values{}
	if o.Page > 0 {
		q.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

// PartInput carries the fields sent when creating a part.
type PartInput struct {
	Name          string  `json:"name"`
	PartNumber    string  `json:"part_number,omitempty"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	StockLevel    int     `json:"quantity"`
	MinStockLevel int     `json:"reorder_level"`
	SupplierID    ID      `json:"supplier_id,omitempty"`
}

func (in PartInput) validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if in.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if in.StockLevel < 0 {
		errs["quantity"] = "stock level must not be negative"
	}
	if in.MinStockLevel < 0 {
		errs["reorder_level"] = "minimum stock level must not be negative"
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// PartPatch carries a partial update; nil fields are left unchanged.
type PartPatch struct {
	Name          *string  `json:"name,omitempty"`
	PartNumber    *string  `json:"part_number,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	StockLevel    *int     `json:"quantity,omitempty"`
	MinStockLevel *int     `json:"reorder_level,omitempty"`
	SupplierID    *ID      `json:"supplier_id,omitempty"`
}

func (p PartPatch) validate() error {
	errs := map[string]string{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs["name"] = "name must not be empty"
	}
	if p.Price != nil && *p.Price < 0 {
		errs["price"] = "price must not be negative"
	}
	if p.StockLevel != nil && *p.StockLevel < 0 {
		errs["quantity"] = "stock level must not be negative"
	}
	if p.MinStockLevel != nil && *p.MinStockLevel < 0 {
		errs["reorder_level"] = "minimum stock level must not be negative"
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Intentionally loose: one @, no whitespace, a dot in the domain.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SupplierInput carries the fields sent when creating a supplier.
type SupplierInput struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
}

func (in SupplierInput) validate() error {
	errs := map[string]string{}
	if strings.TrimSpace(in.Name) == "" {
		errs["name"] = "name is required"
	}
	if in.Email != "" && !emailPattern.MatchString(in.Email) {
		errs["email"] = "email is malformed"
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// SupplierPatch carries a partial update; nil fields are left unchanged.
type SupplierPatch struct {
	Name          *string `json:"name,omitempty"`
	ContactPerson *string `json:"contact_person,omitempty"`
	Email         *string `json:"email,omitempty"`
	Phone         *string `json:"phone,omitempty"`
	Address       *string `json:"address,omitempty"`
}

func (p SupplierPatch) validate() error {
	errs := map[string]string{}
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		errs["name"] = "name must not be empty"
	}
	if p.Email != nil && *p.Email != "" && !emailPattern.MatchString(*p.Email) {
		errs["email"] = "email is malformed"
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// CreatePart creates a part and publishes partAdded on success.
func (c *Client) CreatePart(ctx context.Context, in PartInput) (*Part, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var part Part
	if err := c.doJSON(ctx, http.MethodPost, "/parts", nil, in, &part); err != nil {
		return nil, err
	}
	c.bus.Publish(events.PartAdded)
	return &part, nil
}

// ListParts fetches a page of parts. With zero opts the service responds
// with the legacy bare array and the returned PageInfo is nil.
func (c *Client) ListParts(ctx context.Context, opts ListOptions) ([]Part, *PageInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/parts", opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Part](data, "parts")
}

// GetPart fetches a single part by id.
func (c *Client) GetPart(ctx context.Context, id ID) (*Part, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	var part Part
	if err := c.doJSON(ctx, http.MethodGet, "/parts/"+url.PathEscape(string(id)), nil, nil, &part); err != nil {
		return nil, err
	}
	return &part, nil
}

// UpdatePart applies a partial update and publishes partUpdated on success.
func (c *Client) UpdatePart(ctx context.Context, id ID, patch PartPatch) (*Part, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var part Part
	if err := c.doJSON(ctx, http.MethodPut, "/parts/"+url.PathEscape(string(id)), nil, patch, &part); err != nil {
		return nil, err
	}
	c.bus.Publish(events.PartUpdated)
	return &part, nil
}

// DeletePart deletes a part and publishes partDeleted on success.
func (c *Client) DeletePart(ctx context.Context, id ID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/parts/"+url.PathEscape(string(id)), nil, nil, nil); err != nil {
		return err
	}
	c.bus.Publish(events.PartDeleted)
	return nil
}

// LowStockParts fetches the parts at or below their reorder level.
func (c *Client) LowStockParts(ctx context.Context, opts ListOptions) ([]Part, *PageInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/parts/low-stock", opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Part](data, "parts")
}

// PartsUsage fetches the aggregated usage report.
func (c *Client) PartsUsage(ctx context.Context) ([]UsageRecord, error) {
	records := []UsageRecord{}
	if err := c.doJSON(ctx, http.MethodGet, "/parts/usage", nil, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// RecordPartUsage consumes stock for a part and publishes partUpdated on
// success. Reference is an optional free-form note, typically a work order.
func (c *Client) RecordPartUsage(ctx context.Context, id ID, quantity int, reference string) (*Part, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, &ValidationError{Errors: map[string]string{"quantity": "quantity must be positive"}}
	}
	body := map[string]any{"quantity": quantity}
	if reference != "" {
		body["reference"] = reference
	}
	var part Part
	if err := c.doJSON(ctx, http.MethodPost, "/parts/"+url.PathEscape(string(id))+"/usage", nil, body, &part); err != nil {
		return nil, err
	}
	c.bus.Publish(events.PartUpdated)
	return &part, nil
}

// CreateSupplier creates a supplier and publishes supplierAdded on success.
func (c *Client) CreateSupplier(ctx context.Context, in SupplierInput) (*Supplier, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	var supplier Supplier
	if err := c.doJSON(ctx, http.MethodPost, "/parts/supplier", nil, in, &supplier); err != nil {
		return nil, err
	}
	c.bus.Publish(events.SupplierAdded)
	return &supplier, nil
}

// ListSuppliers fetches a page of suppliers. With zero opts the service
// responds with the legacy bare array and the returned PageInfo is nil.
func (c *Client) ListSuppliers(ctx context.Context, opts ListOptions) ([]Supplier, *PageInfo, error) {
	data, err := c.do(ctx, http.MethodGet, "/parts/suppliers", opts.query(), nil)
	if err != nil {
		return nil, nil, err
	}
	return decodeList[Supplier](data, "suppliers")
}

// UpdateSupplier applies a partial update and publishes supplierUpdated on
// success.
func (c *Client) UpdateSupplier(ctx context.Context, id ID, patch SupplierPatch) (*Supplier, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}
	var supplier Supplier
	if err := c.doJSON(ctx, http.MethodPut, "/parts/supplier/"+url.PathEscape(string(id)), nil, patch, &supplier); err != nil {
		return nil, err
	}
	c.bus.Publish(events.SupplierUpdated)
	return &supplier, nil
}

// DeleteSupplier deletes a supplier and publishes supplierDeleted on
// success. The service detaches the supplier's parts rather than deleting
// them.
func (c *Client) DeleteSupplier(ctx context.Context, id ID) error {
	if err := requireID(id); err != nil {
		return err
	}
	if err := c.doJSON(ctx, http.MethodDelete, "/parts/supplier/"+url.PathEscape(string(id)), nil, nil, nil); err != nil {
		return err
	}
	c.bus.Publish(events.SupplierDeleted)
	return nil
}

func requireID(id ID) error {
	if id.IsZero() {
		return &ValidationError{Errors: map[string]string{"id": "id is required"}}
	}
	return nil
}

// do issues one request and returns the raw response body. Non-2xx statuses
// become an APIError carrying the server's message when one was decodable.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var serverMsg struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(data, &serverMsg); err == nil {
			apiErr.Message = serverMsg.Message
		}
		c.log.Warn("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return nil, apiErr
	}

	return data, nil
}

// doJSON issues one request and decodes the response into out when out is
// non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	data, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
