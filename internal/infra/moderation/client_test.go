package moderation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reputation-service/internal/domain"
)

const testEndpoint = "https://moderation.example.com/api/flags"

func newTestClient() *Client {
	cfg := ClientConfig{
		BaseURL: "https://moderation.example.com",
		Timeout: 5 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			WaitTime:    100 * time.Millisecond,
			MaxWaitTime: 500 * time.Millisecond,
		},
		CB: CBConfig{
			MaxRequests:  5,
			Interval:     60 * time.Second,
			Timeout:      15 * time.Second,
			FailureRatio: 0.6,
		},
	}
	client := New(cfg, zap.NewNop())

	httpmock.ActivateNonDefault(client.client.GetClient())

	return client
}

func testEvent() domain.FlagEvent {
	return domain.FlagEvent{
		EntityType: "profile",
		EntityID:   "user-1",
		SpamScore:  85.5,
		Reason:     "spam score above threshold",
	}
}

// TestFlag_Success verifies the event body reaches the endpoint intact.
func TestFlag_Success(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	var received domain.FlagEvent
	httpmock.RegisterResponder("POST", testEndpoint,
		func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&received); err != nil {
				return httpmock.NewStringResponse(400, "bad body"), nil
			}

			return httpmock.NewStringResponse(202, "accepted"), nil
		})

	client := newTestClient()
	err := client.Flag(context.Background(), testEvent())

	require.NoError(t, err)
	assert.Equal(t, "profile", received.EntityType)
	assert.Equal(t, "user-1", received.EntityID)
	assert.Equal(t, 85.5, received.SpamScore)
}

func TestFlag_HTTPError_4xx(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	tests := []struct {
		name       string
		statusCode int
	}{
		{"400 Bad Request", 400},
		{"404 Not Found", 404},
		{"429 Too Many Requests", 429},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Reset()
			httpmock.RegisterResponder("POST", testEndpoint,
				httpmock.NewStringResponder(tt.statusCode, "Error"))

			client := newTestClient()
			err := client.Flag(context.Background(), testEvent())

			require.Error(t, err)
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.statusCode))
		})
	}
}

func TestFlag_NetworkError(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewErrorResponder(fmt.Errorf("network error: connection refused")))

	client := newTestClient()
	err := client.Flag(context.Background(), testEvent())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flagging profile user-1")
}

// TestFlag_CircuitBreaker_Opens tests that CB opens after consecutive failures.
func TestFlag_CircuitBreaker_Opens(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("POST", testEndpoint,
		httpmock.NewStringResponder(500, "Internal Server Error"))

	client := newTestClient()

	for i := 0; i < 5; i++ {
		err := client.Flag(context.Background(), testEvent())
		require.Error(t, err)
	}

	// CB should be open now - next request should fail immediately
	start := time.Now()
	err := client.Flag(context.Background(), testEvent())
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker is open")
	assert.Less(t, elapsed.Milliseconds(), int64(100))
}

// TestFlag_Retry_ServerErrors verifies 5xx responses are retried.
func TestFlag_Retry_ServerErrors(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	callCount := 0
	httpmock.RegisterResponder("POST", testEndpoint,
		func(_ *http.Request) (*http.Response, error) {
			callCount++
			if callCount < 3 {
				return httpmock.NewStringResponse(500, "Server Error"), nil
			}

			return httpmock.NewStringResponse(202, "accepted"), nil
		})

	client := newTestClient()
	err := client.Flag(context.Background(), testEvent())

	require.NoError(t, err)
	assert.Equal(t, 3, callCount, "Should retry twice and succeed on 3rd attempt")
}

func TestHealthCheck(t *testing.T) {
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", "https://moderation.example.com/health",
		httpmock.NewStringResponder(200, "ok"))

	client := newTestClient()
	assert.NoError(t, client.HealthCheck(context.Background()))

	httpmock.Reset()
	httpmock.RegisterResponder("GET", "https://moderation.example.com/health",
		httpmock.NewStringResponder(503, "down"))

	assert.Error(t, client.HealthCheck(context.Background()))
}
