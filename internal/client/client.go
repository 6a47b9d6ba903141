// Package client talks to the tutor HTTP API on behalf of chat front-ends.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/edgard/arabictutor/internal/api"
	"github.com/edgard/arabictutor/internal/chat"
	"github.com/edgard/arabictutor/internal/config"
)

var (
	// ErrStatus is returned for any non-2xx response.
	ErrStatus = errors.New("unexpected response status")
	// ErrMalformedResponse is returned when a 2xx body cannot be used.
	ErrMalformedResponse = errors.New("malformed response")
)

// Client calls the tutor backend.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client. A zero cfg.Timeout leaves requests without a deadline.
func New(cfg config.ClientConfig) *Client {
	return NewWithHTTPClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout})
}

// NewWithHTTPClient creates a Client using hc.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

var (
	_ chat.Asker         = (*Client)(nil)
	_ chat.ContactSender = (*Client)(nil)
)

// Ask posts req to /ask and returns the answer text.
func (c *Client) Ask(ctx context.Context, req api.AskRequest) (string, error) {
	var resp api.AskResponse
	if err := c.post(ctx, api.PathAsk, req, &resp); err != nil {
		return "", err
	}
	if resp.Answer == nil {
		return "", fmt.Errorf("%w: answer field missing", ErrMalformedResponse)
	}
	return *resp.Answer, nil
}

// SendContact posts a contact form submission to /contact.
func (c *Client) SendContact(ctx context.Context, sub chat.ContactSubmission) error {
	var resp api.ContactResponse
	return c.post(ctx, api.PathContact, api.ContactRequest{
		Name:    sub.Name,
		Email:   sub.Email,
		Message: sub.Message,
	}, &resp)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(middleware.RequestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr api.ErrorResponse
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%w: POST %s returned %d: %s", ErrStatus, path, resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("%w: POST %s returned %d", ErrStatus, path, resp.StatusCode)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
