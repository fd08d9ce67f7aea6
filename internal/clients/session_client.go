// internal/clients/session_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"fridgenet/internal/api"
)

// SessionClient validates bearer tokens with the external OAuth session
// provider and returns the caller's identity.
type SessionClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewSessionClient(baseURL string) *SessionClient {
	return &SessionClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: newBreaker("sessions"),
	}
}

// Resolve exchanges a bearer token for the identity behind it.
func (c *SessionClient) Resolve(ctx context.Context, token string) (*api.Identity, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/session", nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var identity api.Identity
		if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
			return nil, err
		}
		return &identity, nil
	})
	if err != nil {
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	return result.(*api.Identity), nil
}
