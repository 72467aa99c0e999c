package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"raffle-marketplace-frontend/internal/models"
)

func TestReservationClient_CreateReservation(t *testing.T) {
	expiresAt := time.Now().Add(10 * time.Minute).UTC().Truncate(time.Second)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/reservations", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req ReservationRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "raffle-1", req.RaffleID)
		assert.Equal(t, []string{"n-7", "n-13"}, req.NumberIDs)
		assert.NotEmpty(t, req.SessionID)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"reservation": models.Reservation{
				ID:          "res-1",
				RaffleID:    req.RaffleID,
				NumberIDs:   req.NumberIDs,
				Status:      models.ReservationPending,
				SessionID:   req.SessionID,
				TotalAmount: 1000,
				ExpiresAt:   expiresAt,
			},
		})
	}))
	defer server.Close()

	client := NewReservationClient(server.URL, "test-token")
	res, err := client.CreateReservation(context.Background(), &ReservationRequest{
		RaffleID:  "raffle-1",
		NumberIDs: []string{"n-7", "n-13"},
		SessionID: "sess-abc",
	})

	require.NoError(t, err)
	assert.Equal(t, "res-1", res.ID)
	assert.Equal(t, models.ReservationPending, res.Status)
	assert.True(t, res.ExpiresAt.Equal(expiresAt), "expires_at should survive the wire as a time value")
}

func TestReservationClient_CreateReservation_BackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]string{
			"message": "numbers no longer available",
			"code":    "numbers_taken",
		})
	}))
	defer server.Close()

	client := NewReservationClient(server.URL, "test-token")
	_, err := client.CreateReservation(context.Background(), &ReservationRequest{
		RaffleID:  "raffle-1",
		NumberIDs: []string{"n-7"},
		SessionID: "sess-abc",
	})

	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "numbers no longer available", apiErr.Message)
	assert.Equal(t, "numbers no longer available", UserMessage(err))
}

func TestReservationClient_CreateReservation_EmptySelection(t *testing.T) {
	client := NewReservationClient("http://backend.invalid", "")
	_, err := client.CreateReservation(context.Background(), &ReservationRequest{RaffleID: "raffle-1"})
	assert.ErrorIs(t, err, models.ErrEmptySelection)
}

func TestReservationClient_GetReservation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/reservations/res-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"reservation": models.Reservation{ID: "res-1", Status: models.ReservationConfirmed},
		})
	}))
	defer server.Close()

	client := NewReservationClient(server.URL, "test-token")
	res, err := client.GetReservation(context.Background(), "res-1")
	require.NoError(t, err)
	assert.Equal(t, models.ReservationConfirmed, res.Status)
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"structured backend message", &APIError{StatusCode: 409, Message: "raffle not active"}, "raffle not active"},
		{"wrapped backend message", errors.New("wrapper: " + (&APIError{StatusCode: 500}).Error()), "wrapper: backend error (status 500)"},
		{"plain transport error", errors.New("connection refused"), "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestHandleAPIError_WrappedEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error":{"message":"numbers limit exceeded","code":"limit"}}`))
	}))
	defer server.Close()

	client := NewReservationClient(server.URL, "")
	_, err := client.CreateReservation(context.Background(), &ReservationRequest{
		RaffleID:  "raffle-1",
		NumberIDs: []string{"n-1"},
	})

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "numbers limit exceeded", apiErr.Message)
	assert.Equal(t, "limit", apiErr.Code)
}
