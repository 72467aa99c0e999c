package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// GenericErrorMessage is shown to the user when a failure carries no
// usable message of its own
const GenericErrorMessage = "Something went wrong. Please try again."

// APIError represents a structured error response from the backend API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Code       string `json:"code,omitempty"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error (status %d)", e.StatusCode)
}

// UserMessage extracts a message suitable for showing to the user:
// the structured backend message when present, otherwise the error's own
// message, otherwise a generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return GenericErrorMessage
}

type contextKey string

const tokenContextKey contextKey = "backend_token"

// WithToken returns a context carrying the caller's backend bearer token.
// Clients prefer it over their constructor token, so one shared client can
// act for whichever user owns the request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext extracts the backend bearer token, if any
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey).(string)
	return token, ok && token != ""
}

// backendClient is the shared HTTP plumbing for all backend API clients
type backendClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func newBackendClient(baseURL string) backendClient {
	return backendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// withToken returns a copy of the client that sends the given bearer token
func (c backendClient) withToken(token string) backendClient {
	c.token = token
	return c
}

// doJSON sends a JSON request and decodes a JSON response into out.
// Non-2xx responses are returned as *APIError with the backend's message
// when the body carries one.
func (c *backendClient) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := c.token
	if ctxToken, ok := TokenFromContext(ctx); ok {
		token = ctxToken
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleAPIError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func (c *backendClient) handleAPIError(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Message == "" {
		// Some error responses wrap the message one level down
		var wrapped struct {
			Error struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			} `json:"error"`
		}
		if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error.Message != "" {
			apiErr.Message = wrapped.Error.Message
			apiErr.Code = wrapped.Error.Code
		}
	}
	return apiErr
}
