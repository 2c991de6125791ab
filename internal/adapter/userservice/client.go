// Package userservice is the HTTP client for the external user/rating
// service.
package userservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/omer-demir/CeviriDukkaniTS/internal/config"
	"github.com/omer-demir/CeviriDukkaniTS/internal/domain"
)

// Client calls the user service. All failures wrap domain.ErrUpstream.
type Client struct {
	http    *http.Client
	baseURL string
}

// New creates a user service client from config.
func New(cfg config.UserServiceConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.Endpoint,
	}
}

// envelope is the user service's uniform response wrapper.
type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

// TranslatorsByOrderQuality returns the translators ranked by the quality
// of their work on the given order.
func (c *Client) TranslatorsByOrderQuality(ctx context.Context, orderID uuid.UUID) ([]domain.User, error) {
	u := fmt.Sprintf("%s/api/userapi/getTranslatorsAccordingToOrderTranslationQuality?orderId=%s",
		c.baseURL, url.QueryEscape(orderID.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service call: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user service status %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode user service response: %w: %v", domain.ErrUpstream, err)
	}

	if env.Status != "success" {
		msg := "unknown error"
		if env.Error != nil {
			msg = env.Error.Message
		}
		return nil, fmt.Errorf("user service: %s: %w", msg, domain.ErrUpstream)
	}

	var users []domain.User
	if err := json.Unmarshal(env.Data, &users); err != nil {
		return nil, fmt.Errorf("decode translators: %w: %v", domain.ErrUpstream, err)
	}

	return users, nil
}
