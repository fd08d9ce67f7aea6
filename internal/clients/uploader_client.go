// internal/clients/uploader_client.go
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
)

// UploaderClient talks to the image hosting collaborator: raw image bytes
// in, stable photo URL out. The photo URL is the only thing the inventory
// core ever sees.
type UploaderClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewUploaderClient(baseURL, apiKey string) *UploaderClient {
	return &UploaderClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
		breaker: newBreaker("uploader"),
	}
}

// Upload posts a base64 image and returns its hosted URL.
func (c *UploaderClient) Upload(ctx context.Context, imageBase64 string) (string, error) {
	if imageBase64 == "" {
		return "", fmt.Errorf("no image provided")
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		form := url.Values{}
		form.Set("key", c.apiKey)
		form.Set("image", imageBase64)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				URL        string `json:"url"`
				DisplayURL string `json:"display_url"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, err
		}
		if !body.Success || body.Data.URL == "" {
			return nil, fmt.Errorf("upload rejected by host")
		}
		return body.Data.URL, nil
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return result.(string), nil
}
