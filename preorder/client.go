package preorder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ErrOrderNotFound is returned by lookups for unknown order numbers.
var ErrOrderNotFound = errors.New("order not found")

// APIClient talks to the counter service's JSON API. It implements
// OrderCreator so a Workflow can submit through it directly.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ OrderCreator = (*APIClient)(nil)

type APIClientOption func(*APIClient)

func WithHTTPClient(client *http.Client) APIClientOption {
	return func(c *APIClient) {
		c.httpClient = client
	}
}

func NewAPIClient(baseURL string, opts ...APIClientOption) *APIClient {
	c := &APIClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type createOrderRequest struct {
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	OrderType           OrderType  `json:"orderType"`
	Address             string     `json:"address,omitempty"`
	PickupTime          time.Time  `json:"pickupTime"`
	DietaryRestrictions []string   `json:"dietaryRestrictions,omitempty"`
	SpecialInstructions string     `json:"specialInstructions,omitempty"`
	Items               []CartLine `json:"items"`
	Total               int64      `json:"total"`
}

type apiEnvelope struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	OrderNumber string            `json:"orderNumber,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	Data        json.RawMessage   `json:"data,omitempty"`
}

// CreateOrder implements OrderCreator.
func (c *APIClient) CreateOrder(ctx context.Context, draft OrderDraft) (*SubmittedOrder, error) {
	ctx, span := tracer.Start(ctx, "APIClient.CreateOrder")
	defer span.End()

	body := createOrderRequest{
		Name:                draft.Contact.Name,
		Email:               draft.Contact.Email,
		Phone:               NormalizePhone(draft.Contact.Phone),
		OrderType:           draft.Contact.OrderType,
		Address:             draft.Contact.Address,
		PickupTime:          draft.Contact.RequestedTime,
		DietaryRestrictions: draft.Contact.DietaryRestrictions,
		SpecialInstructions: draft.Contact.SpecialInstructions,
		Items:               draft.Items,
		Total:               draft.Total,
	}

	envelope, status, err := c.do(ctx, http.MethodPost, "/api/orders", body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "create order request failed")
		return nil, err
	}

	if status != http.StatusCreated || !envelope.Success {
		slog.ErrorContext(ctx, "create order rejected",
			slog.Int("status", status),
			slog.String("message", envelope.Message),
		)
		return nil, fmt.Errorf("create order: %s (status %d)", envelope.Message, status)
	}

	var order SubmittedOrder
	if err := json.Unmarshal(envelope.Data, &order); err != nil {
		return nil, fmt.Errorf("decode submitted order: %w", err)
	}

	span.SetAttributes(attribute.String("order.number", order.OrderNumber))

	return &order, nil
}

// GetOrderByNumber looks an order up by its customer-facing number. Unknown
// numbers yield ErrOrderNotFound.
func (c *APIClient) GetOrderByNumber(ctx context.Context, orderNumber string) (*SubmittedOrder, error) {
	ctx, span := tracer.Start(ctx, "APIClient.GetOrderByNumber")
	defer span.End()

	envelope, status, err := c.do(ctx, http.MethodGet, "/api/orders/"+orderNumber, nil)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if status == http.StatusNotFound {
		return nil, ErrOrderNotFound
	}
	if status != http.StatusOK || !envelope.Success {
		return nil, fmt.Errorf("get order: %s (status %d)", envelope.Message, status)
	}

	var order SubmittedOrder
	if err := json.Unmarshal(envelope.Data, &order); err != nil {
		return nil, fmt.Errorf("decode submitted order: %w", err)
	}

	return &order, nil
}

// GetMenu fetches the orderable catalog.
func (c *APIClient) GetMenu(ctx context.Context) ([]MenuItem, error) {
	ctx, span := tracer.Start(ctx, "APIClient.GetMenu")
	defer span.End()

	envelope, status, err := c.do(ctx, http.MethodGet, "/api/menu", nil)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if status != http.StatusOK || !envelope.Success {
		return nil, fmt.Errorf("get menu: %s (status %d)", envelope.Message, status)
	}

	var items []MenuItem
	if err := json.Unmarshal(envelope.Data, &items); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}

	return items, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, body any) (*apiEnvelope, int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	return &envelope, resp.StatusCode, nil
}
