// Package userdir calls the user-directory collaborator that resolves a
// user id to contact info. The contract is a single JSON endpoint:
// GET {base}/v1/users/{id} -> {"id","username","email"}.
package userdir

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shopsphere/fulfillment/internal/usecase"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) GetUserByID(ctx context.Context, userID string) (usecase.User, error) {
	endpoint := fmt.Sprintf("%s/v1/users/%s", c.baseURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return usecase.User{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return usecase.User{}, fmt.Errorf("user directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return usecase.User{}, fmt.Errorf("user directory: user %s not found", userID)
	}
	if resp.StatusCode != http.StatusOK {
		return usecase.User{}, fmt.Errorf("user directory: status %d", resp.StatusCode)
	}

	var u usecase.User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return usecase.User{}, fmt.Errorf("user directory: decode: %w", err)
	}
	return u, nil
}

var _ usecase.UserDirectory = (*Client)(nil)
