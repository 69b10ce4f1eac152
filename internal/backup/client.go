// Package backup uploads and downloads YAML snapshots of the data set to a remote endpoint.
package backup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/at-ishikawa/liftlog/internal/config"
	"github.com/at-ishikawa/liftlog/internal/datasync"
)

const contentType = "application/yaml"

// ErrNotConfigured is returned when no backup URL is set.
var ErrNotConfigured = errors.New("backup url is not configured")

type Client struct {
	httpClient       *resty.Client
	maxRetryAttempts uint
	retryDelay       time.Duration
}

// NewClient creates a client for the endpoint in cfg. The token, when set, is sent as a bearer token.
func NewClient(cfg config.BackupConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, ErrNotConfigured
	}
	client := resty.New()
	client.SetBaseURL(cfg.URL)
	if cfg.Token != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.Token)
	}
	if cfg.TimeoutSeconds > 0 {
		client.SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)
	}

	return &Client{
		httpClient:       client,
		maxRetryAttempts: cfg.RetryAttempts,
		retryDelay:       500 * time.Millisecond,
	}, nil
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type responseError struct {
	StatusCode int
	Body       string
}

func (e *responseError) Error() string {
	return fmt.Sprintf("response error %d: %s", e.StatusCode, e.Body)
}

// isRetryableError reports whether a failed request should be sent again.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var respErr *responseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode >= http.StatusInternalServerError || respErr.StatusCode == http.StatusTooManyRequests
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "connection reset")
}

func (client *Client) do(ctx context.Context, name string, fn func() error) error {
	attempt := 0
	return retry.Do(
		func() error {
			attempt++
			err := fn()
			if err == nil {
				return nil
			}
			if !isRetryableError(err) {
				return retry.Unrecoverable(err)
			}
			slog.Debug("backup request failed", slog.String("operation", name), slog.Int("attempt", attempt), slog.Any("error", err))
			return err
		},
		retry.Context(ctx),
		retry.Attempts(client.maxRetryAttempts+1),
		retry.Delay(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// Push uploads the snapshot, replacing the remote copy.
func (client *Client) Push(ctx context.Context, snapshot *datasync.Snapshot) error {
	body, err := datasync.Marshal(snapshot)
	if err != nil {
		return err
	}
	return client.do(ctx, "push", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetHeader("Content-Type", contentType).
			SetBody(body).
			Put("/snapshot")
		if err != nil {
			return fmt.Errorf("httpClient.Put > %w", err)
		}
		if response.IsError() {
			return &responseError{StatusCode: response.StatusCode(), Body: response.String()}
		}
		return nil
	})
}

// Pull downloads the remote snapshot.
func (client *Client) Pull(ctx context.Context) (*datasync.Snapshot, error) {
	var snapshot *datasync.Snapshot
	err := client.do(ctx, "pull", func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetHeader("Accept", contentType).
			Get("/snapshot")
		if err != nil {
			return fmt.Errorf("httpClient.Get > %w", err)
		}
		if response.IsError() {
			return &responseError{StatusCode: response.StatusCode(), Body: response.String()}
		}
		snapshot, err = datasync.Unmarshal([]byte(response.String()))
		return err
	})
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
