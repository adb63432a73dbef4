package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/murali55525/erode-local-sub000/services"
	"github.com/sony/gobreaker/v2"
)

// Client talks to the hosted payment gateway. All calls go through a
// circuit breaker so a flapping gateway fails fast instead of tying up
// request handlers.
type Client struct {
	apiURL   string
	storeID  string
	authKey  string
	testMode int
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker[*gatewayResponse]
}

type gatewayResponse struct {
	Order struct {
		Ref    string `json:"ref"`
		URL    string `json:"url"`
		Status struct {
			Code int    `json:"code"`
			Text string `json:"text"`
		} `json:"status"`
	} `json:"order"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// NewClientFromEnv builds the gateway client from PAYMENT_* environment
// variables. Sandbox mode flags every request as a test transaction.
func NewClientFromEnv() (*Client, error) {
	apiURL := os.Getenv("PAYMENT_API_URL")
	storeID := os.Getenv("PAYMENT_STORE_ID")
	authKey := os.Getenv("PAYMENT_AUTH_KEY")
	if apiURL == "" || storeID == "" || authKey == "" {
		return nil, fmt.Errorf("payment gateway configuration missing")
	}
	testMode := 0
	if mode := os.Getenv("PAYMENT_MODE"); mode == "sandbox" || mode == "dev" {
		testMode = 1
	}
	return &Client{
		apiURL:   apiURL,
		storeID:  storeID,
		authKey:  authKey,
		testMode: testMode,
		http:     &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[*gatewayResponse](gobreaker.Settings{
			Name:    "payment-gateway",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
		}),
	}, nil
}

// CreateIntent registers the payable amount with the gateway and returns
// the reference plus the hosted payment page URL.
func (c *Client) CreateIntent(ctx context.Context, amount float64, currency, orderRef string, ship models.ShippingInfo) (services.PaymentIntent, error) {
	payload := map[string]interface{}{
		"method":  "create",
		"store":   c.storeID,
		"authkey": c.authKey,
		"order": map[string]interface{}{
			"cartid":      orderRef,
			"test":        c.testMode,
			"amount":      fmt.Sprintf("%.2f", amount),
			"currency":    currency,
			"description": "storefront order " + orderRef,
		},
		"customer": map[string]interface{}{
			"name":  ship.FullName,
			"phone": ship.Phone,
			"address": map[string]string{
				"line1":    ship.Street,
				"city":     ship.City,
				"region":   ship.State,
				"country":  ship.Country,
				"postcode": ship.PostalCode,
			},
		},
		"return": map[string]string{
			"authorised": os.Getenv("PAYMENT_SUCCESS_URL"),
			"declined":   os.Getenv("PAYMENT_FAILURE_URL"),
			"cancelled":  os.Getenv("PAYMENT_CANCEL_URL"),
		},
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return services.PaymentIntent{}, err
	}
	if resp.Error != nil {
		return services.PaymentIntent{}, fmt.Errorf("gateway error: %s", resp.Error.Message)
	}
	if resp.Order.Ref == "" || resp.Order.URL == "" {
		return services.PaymentIntent{}, fmt.Errorf("gateway returned incomplete intent")
	}
	return services.PaymentIntent{Ref: resp.Order.Ref, URL: resp.Order.URL}, nil
}

// Verify re-checks a payment reference with the gateway. Only an explicit
// authorised status counts as success.
func (c *Client) Verify(ctx context.Context, paymentRef string) (bool, error) {
	payload := map[string]interface{}{
		"method":  "check",
		"store":   c.storeID,
		"authkey": c.authKey,
		"order":   map[string]string{"ref": paymentRef},
	}

	resp, err := c.post(ctx, payload)
	if err != nil {
		return false, err
	}
	if resp.Error != nil {
		return false, fmt.Errorf("gateway error: %s", resp.Error.Message)
	}
	// status code 3 = authorised on this gateway
	return resp.Order.Status.Code == 3, nil
}

func (c *Client) post(ctx context.Context, payload map[string]interface{}) (*gatewayResponse, error) {
	return c.breaker.Execute(func() (*gatewayResponse, error) {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to reach gateway: %w", err)
		}
		defer resp.Body.Close()

		raw, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(raw))
		}
		var out gatewayResponse
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, fmt.Errorf("failed to parse gateway response: %w", err)
		}
		return &out, nil
	})
}
