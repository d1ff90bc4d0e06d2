package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ErrNotFound is returned when the user service has no record for an id.
var ErrNotFound = errors.New("user not found")

// Client talks to the external user-lookup collaborator.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	baseURL := os.Getenv("USER_SERVICE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8001"
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// GetUserByID fetches a user record. Any non-200 answer from the user
// service is treated as not found, matching the collaborator's contract.
func (c *Client) GetUserByID(ctx context.Context, userID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/users/"+userID, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user with id %s not found: %w", userID, ErrNotFound)
	}

	var user map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}
	return user, nil
}
