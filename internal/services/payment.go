package services

import (
	"context"
	"fmt"
	"net/http"
)

// PaymentClient talks to the backend payment-intent endpoint
type PaymentClient struct {
	backendClient
}

// NewPaymentClient creates a payment client against the backend API origin
func NewPaymentClient(baseURL, token string) *PaymentClient {
	return &PaymentClient{backendClient: newBackendClient(baseURL).withToken(token)}
}

// CreatePaymentIntent asks the backend to start a payment for the given
// reservation. The result's client_secret carries the external processor's
// approval URL; the checkout flow navigates the browser there.
func (c *PaymentClient) CreatePaymentIntent(ctx context.Context, req *PaymentIntentRequest) (*PaymentIntentResult, error) {
	if req == nil || req.ReservationID == "" {
		return nil, fmt.Errorf("payment intent requires a reservation id")
	}

	var resp PaymentIntentResult
	if err := c.doJSON(ctx, http.MethodPost, "/payments/intent", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	if resp.ApprovalURL() == "" {
		return nil, fmt.Errorf("backend returned no approval URL for reservation %s", req.ReservationID)
	}
	return &resp, nil
}
