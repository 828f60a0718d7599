package reporter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReport_Success(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/crowd/report", r.URL.Path)

		var payload struct {
			PersonCount int `json:"personCount"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 42, payload.PersonCount)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Crowd data reported successfully",
			"crowdData": map[string]any{
				"personCount": payload.PersonCount,
				"createdAt":   now,
			},
		})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	sample, err := client.Report(context.Background(), 42)
	assert.NoError(t, err)
	assert.Equal(t, 42, sample.PersonCount)
	assert.True(t, sample.CreatedAt.Equal(now))
}

func TestReport_Rejected(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Invalid person count"})
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.Report(context.Background(), -1)
	assert.Error(t, err)

	var apiErr *APIError
	if assert.ErrorAs(t, err, &apiErr) {
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Equal(t, "Invalid person count", apiErr.Message)
	}
}

func TestReport_UnexpectedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`invalid-json`))
	}))
	defer ts.Close()

	client := NewClient(Config{APIURL: ts.URL})

	_, err := client.Report(context.Background(), 5)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid character")
}
