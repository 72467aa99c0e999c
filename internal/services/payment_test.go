package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-marketplace-frontend/internal/models"
)

func TestPaymentClient_CreatePaymentIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payments/intent", r.URL.Path)

		var req PaymentIntentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "res-1", req.ReservationID)
		assert.Equal(t, "https://frontend.test/payment/return", req.ReturnURL)
		assert.Equal(t, "https://frontend.test/payment/cancel", req.CancelURL)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": models.Payment{
				ID:            "pay-1",
				ReservationID: "res-1",
				Status:        models.PaymentPending,
				Amount:        1000,
			},
			"payment_intent": models.PaymentIntent{
				ClientSecret: "https://processor.test/approve/abc123",
			},
		})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "test-token")
	result, err := client.CreatePaymentIntent(context.Background(), &PaymentIntentRequest{
		ReservationID: "res-1",
		ReturnURL:     "https://frontend.test/payment/return",
		CancelURL:     "https://frontend.test/payment/cancel",
	})

	require.NoError(t, err)
	assert.Equal(t, "pay-1", result.Payment.ID)
	assert.Equal(t, "https://processor.test/approve/abc123", result.ApprovalURL())
}

func TestPaymentClient_CreatePaymentIntent_NoApprovalURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"payment": models.Payment{ID: "pay-1"},
		})
	}))
	defer server.Close()

	client := NewPaymentClient(server.URL, "test-token")
	_, err := client.CreatePaymentIntent(context.Background(), &PaymentIntentRequest{ReservationID: "res-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no approval URL")
}

func TestPaymentClient_CreatePaymentIntent_MissingReservation(t *testing.T) {
	client := NewPaymentClient("http://backend.invalid", "")
	_, err := client.CreatePaymentIntent(context.Background(), &PaymentIntentRequest{})
	require.Error(t, err)
}
