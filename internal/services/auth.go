package services

import (
	"context"
	"fmt"
	"net/http"

	"raffle-marketplace-frontend/internal/models"
)

// AuthClient performs login and logout against the backend. Everything
// else about accounts (registration, token refresh, profile) lives in the
// backend and is not mirrored here.
type AuthClient struct {
	backendClient
}

// NewAuthClient creates an auth client against the backend API origin
func NewAuthClient(baseURL string) *AuthClient {
	return &AuthClient{backendClient: newBackendClient(baseURL)}
}

// Login exchanges credentials for a backend identity and bearer token
func (c *AuthClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, models.ErrInvalidInput
	}

	body := map[string]string{"email": email, "password": password}
	var resp LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	if resp.User == nil || resp.Token == "" {
		return nil, fmt.Errorf("backend returned an incomplete login response")
	}
	return &resp, nil
}

// Logout invalidates the backend session for the given token. A failed
// logout is not fatal to the frontend; the local session is cleared anyway.
func (c *AuthClient) Logout(ctx context.Context, token string) error {
	client := c.withToken(token)
	if err := client.doJSON(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
