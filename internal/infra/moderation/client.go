// Package moderation implements the moderation webhook client.
package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"reputation-service/internal/domain"
)

// FlagEndpoint is the API path for submitting flag events.
const FlagEndpoint = "/api/flags"

// ClientConfig holds configuration for the moderation client.
type ClientConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   RetryConfig
	CB      CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client implements domain.ModerationNotifier over the moderation system's
// HTTP API. Flag submissions go through a circuit breaker so a down
// moderation service cannot stall the scoring batch.
type Client struct {
	client *resty.Client
	cb     *gobreaker.CircuitBreaker[*resty.Response]
	logger *zap.Logger
}

// New creates a new moderation client.
func New(cfg ClientConfig, logger *zap.Logger) *Client {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})

	settings := gobreaker.Settings{
		Name:        "moderation",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	return &Client{
		client: client,
		cb:     gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger: logger,
	}
}

// Flag submits a flag event to the moderation system.
func (c *Client) Flag(ctx context.Context, event domain.FlagEvent) error {
	_, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.client.R().
			SetContext(ctx).
			SetBody(event).
			Post(FlagEndpoint)
		if err != nil {
			return nil, err
		}
		if r.IsError() {
			return nil, fmt.Errorf("moderation returned status %d", r.StatusCode())
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("moderation flag submission failed",
			zap.String("entity_type", event.EntityType),
			zap.String("entity_id", event.EntityID),
			zap.String("state", c.cb.State().String()),
			zap.Error(err),
		)

		return fmt.Errorf("flagging %s %s: %w", event.EntityType, event.EntityID, err)
	}

	c.logger.Debug("flag event submitted",
		zap.String("entity_type", event.EntityType),
		zap.String("entity_id", event.EntityID),
		zap.Float64("spam_score", event.SpamScore),
	)

	return nil
}

// HealthCheck verifies the moderation system is accessible.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get("/health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("health check returned status %d", resp.StatusCode())
	}

	return nil
}
