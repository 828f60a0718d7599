package reporter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type Config struct {
	APIURL string
}

// Client posts crowd samples to the canteen server. It stands in for the
// camera detector's HTTP side: whatever produces the counts, this is how
// they reach /api/crowd/report.
type Client struct {
	client *http.Client
	config Config
}

func NewClient(cfg Config) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: cfg,
	}
}

type reportPayload struct {
	PersonCount int `json:"personCount"`
}

type Sample struct {
	PersonCount int       `json:"personCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type reportResponse struct {
	Message string `json:"message"`
	Sample  Sample `json:"crowdData"`
}

// APIError is a non-2xx answer from the server, carrying its message body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("crowd report rejected (%d): %s", e.StatusCode, e.Message)
}

// Report sends one person count and returns the stored sample.
func (c *Client) Report(ctx context.Context, personCount int) (Sample, error) {
	body, err := json.Marshal(reportPayload{PersonCount: personCount})
	if err != nil {
		return Sample{}, err
	}

	url := fmt.Sprintf("%s/api/crowd/report", c.config.APIURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Sample{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Sample{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var apiErr struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Message != "" {
			return Sample{}, &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
		}
		raw, _ := io.ReadAll(resp.Body)
		return Sample{}, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(raw))
	}

	var out reportResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Sample{}, err
	}
	return out.Sample, nil
}
