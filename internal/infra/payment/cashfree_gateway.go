package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"study-notes-backend/internal/domain"
	"study-notes-backend/internal/domain/ports/adapter"
)

const apiVersion = "2023-08-01"

// CashfreeGateway implements adapter.PaymentGateway using direct HTTP calls
// against the Cashfree PG API.
type CashfreeGateway struct {
	clientID     string
	clientSecret string
	baseURL      string
	client       *http.Client
}

// NewCashfreeGateway creates a gateway client. Credentials are required; a
// missing pair is a configuration error so order creation can fail fast.
func NewCashfreeGateway(clientID, clientSecret string, sandbox bool) (*CashfreeGateway, error) {
	if clientID == "" || clientSecret == "" {
		return nil, domain.ErrConfiguration
	}
	baseURL := "https://api.cashfree.com/pg"
	if sandbox {
		baseURL = "https://sandbox.cashfree.com/pg"
	}
	return &CashfreeGateway{
		clientID:     clientID,
		clientSecret: clientSecret,
		baseURL:      baseURL,
		client:       &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (g *CashfreeGateway) Name() string { return "cashfree" }

type cashfreeCustomer struct {
	CustomerID    string `json:"customer_id"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name,omitempty"`
}

type cashfreeOrderMeta struct {
	ReturnURL string `json:"return_url"`
	NotifyURL string `json:"notify_url"`
}

type cashfreeCreateRequest struct {
	OrderID         string            `json:"order_id"`
	OrderAmount     json.Number       `json:"order_amount"`
	OrderCurrency   string            `json:"order_currency"`
	CustomerDetails cashfreeCustomer  `json:"customer_details"`
	OrderMeta       cashfreeOrderMeta `json:"order_meta"`
	OrderTags       map[string]string `json:"order_tags,omitempty"`
}

type cashfreeOrderResponse struct {
	OrderID          string            `json:"order_id"`
	OrderStatus      string            `json:"order_status"`
	OrderAmount      json.Number       `json:"order_amount"`
	PaymentSessionID string            `json:"payment_session_id"`
	OrderTags        map[string]string `json:"order_tags"`
	CreatedAt        *time.Time        `json:"created_at"`
}

type cashfreeError struct {
	Message string `json:"message"`
	Code    string `json:"code"`
	Type    string `json:"type"`
}

// CreateOrder implements adapter.PaymentGateway.CreateOrder.
func (g *CashfreeGateway) CreateOrder(ctx context.Context, req adapter.CreateOrderRequest) (string, error) {
	body := cashfreeCreateRequest{
		OrderID:       req.OrderID,
		OrderAmount:   json.Number(req.Amount.String()),
		OrderCurrency: req.Currency,
		CustomerDetails: cashfreeCustomer{
			CustomerID:    req.CustomerID,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			CustomerName:  req.CustomerName,
		},
		OrderMeta: cashfreeOrderMeta{
			ReturnURL: req.ReturnURL,
			NotifyURL: req.NotifyURL,
		},
		OrderTags: req.Tags,
	}

	var resp cashfreeOrderResponse
	if err := g.do(ctx, http.MethodPost, "/orders", &body, &resp, nil); err != nil {
		return "", err
	}
	if resp.PaymentSessionID == "" {
		return "", fmt.Errorf("%w: no payment session in response", domain.ErrGateway)
	}
	return resp.PaymentSessionID, nil
}

// FetchOrder implements adapter.PaymentGateway.FetchOrder.
func (g *CashfreeGateway) FetchOrder(ctx context.Context, orderID string) (*adapter.OrderState, error) {
	var resp cashfreeOrderResponse
	if err := g.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(orderID), nil, &resp, nil); err != nil {
		return nil, err
	}
	return toOrderState(&resp)
}

// ListPaidOrders pages through PAID orders in [from, to]. The next cursor is
// returned by the gateway in the x-cursor response header; an empty value
// ends the listing.
func (g *CashfreeGateway) ListPaidOrders(ctx context.Context, from, to time.Time, cursor string) ([]*adapter.OrderState, string, error) {
	q := url.Values{}
	q.Set("start_date", from.UTC().Format("2006-01-02"))
	q.Set("end_date", to.UTC().Format("2006-01-02"))
	q.Set("order_status", adapter.OrderPaid)
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var resp []cashfreeOrderResponse
	var next string
	err := g.do(ctx, http.MethodGet, "/orders?"+q.Encode(), nil, &resp, func(h http.Header) {
		next = h.Get("x-cursor")
	})
	if err != nil {
		return nil, "", err
	}

	out := make([]*adapter.OrderState, 0, len(resp))
	for i := range resp {
		st, err := toOrderState(&resp[i])
		if err != nil {
			return nil, "", err
		}
		out = append(out, st)
	}
	return out, next, nil
}

func toOrderState(resp *cashfreeOrderResponse) (*adapter.OrderState, error) {
	amount, err := decimal.NewFromString(resp.OrderAmount.String())
	if err != nil {
		return nil, fmt.Errorf("%w: bad order amount %q", domain.ErrGateway, resp.OrderAmount)
	}
	st := &adapter.OrderState{
		OrderID: resp.OrderID,
		Status:  resp.OrderStatus,
		Amount:  amount,
		Tags:    resp.OrderTags,
	}
	if resp.OrderStatus == adapter.OrderPaid {
		st.PaidAt = resp.CreatedAt
	}
	return st, nil
}

// do performs one authenticated request and decodes the JSON response.
// Non-2xx responses surface the gateway's own message wrapped in ErrGateway.
func (g *CashfreeGateway) do(ctx context.Context, method, path string, in, out interface{}, headerFn func(http.Header)) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-version", apiVersion)
	req.Header.Set("x-client-id", g.clientID)
	req.Header.Set("x-client-secret", g.clientSecret)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrGateway, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrGateway, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e cashfreeError
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return fmt.Errorf("%w: %s (code=%s, http=%d)", domain.ErrGateway, e.Message, e.Code, resp.StatusCode)
		}
		return fmt.Errorf("%w: http %d: %s", domain.ErrGateway, resp.StatusCode, string(raw))
	}

	if headerFn != nil {
		headerFn(resp.Header)
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("%w: unmarshal response: %v, body: %s", domain.ErrGateway, err, string(raw))
		}
	}
	return nil
}
