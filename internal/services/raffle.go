package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"raffle-marketplace-frontend/internal/models"
)

// RaffleClient reads the raffle catalog from the backend
type RaffleClient struct {
	backendClient
}

// NewRaffleClient creates a raffle catalog client against the backend API
// origin. Catalog reads are public; no token is attached.
func NewRaffleClient(baseURL string) *RaffleClient {
	return &RaffleClient{backendClient: newBackendClient(baseURL)}
}

// ListRaffles fetches the browsable raffle list
func (c *RaffleClient) ListRaffles(ctx context.Context) ([]*models.Raffle, error) {
	var resp struct {
		Raffles []*models.Raffle `json:"raffles"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/raffles", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list raffles: %w", err)
	}
	return resp.Raffles, nil
}

// GetRaffle fetches one raffle, including its per-number ticket price
func (c *RaffleClient) GetRaffle(ctx context.Context, id string) (*models.Raffle, error) {
	if id == "" {
		return nil, models.ErrRaffleNotFound
	}

	var resp struct {
		Raffle *models.Raffle `json:"raffle"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/raffles/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch raffle %s: %w", id, err)
	}
	if resp.Raffle == nil {
		return nil, models.ErrRaffleNotFound
	}
	return resp.Raffle, nil
}

// GetRaffleNumbers fetches the availability grid the number picker renders
func (c *RaffleClient) GetRaffleNumbers(ctx context.Context, raffleID string) ([]*models.RaffleNumber, error) {
	if raffleID == "" {
		return nil, models.ErrRaffleNotFound
	}

	var resp struct {
		Numbers []*models.RaffleNumber `json:"numbers"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/raffles/"+url.PathEscape(raffleID)+"/numbers", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch numbers for raffle %s: %w", raffleID, err)
	}
	return resp.Numbers, nil
}
