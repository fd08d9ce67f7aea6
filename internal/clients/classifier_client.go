// internal/clients/classifier_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// Suggestion is the classifier's advisory proposal for pre-filling an item
// addition. It is never required for correctness; callers ignore it freely.
type Suggestion struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
}

// ClassifierClient talks to the image classification collaborator.
type ClassifierClient struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewClassifierClient(baseURL string) *ClassifierClient {
	return &ClassifierClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 20 * time.Second},
		breaker: newBreaker("classifier"),
	}
}

// Classify asks the collaborator to describe the photographed item.
func (c *ClassifierClient) Classify(ctx context.Context, photoURL string) (*Suggestion, error) {
	if photoURL == "" {
		return nil, fmt.Errorf("no photo provided")
	}

	payload, err := json.Marshal(map[string]string{"photo": photoURL})
	if err != nil {
		return nil, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		var suggestion Suggestion
		if err := json.NewDecoder(resp.Body).Decode(&suggestion); err != nil {
			return nil, err
		}
		return &suggestion, nil
	})
	if err != nil {
		return nil, fmt.Errorf("classify image: %w", err)
	}

	return result.(*Suggestion), nil
}
