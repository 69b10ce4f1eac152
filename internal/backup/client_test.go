package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/liftlog/internal/config"
	"github.com/at-ishikawa/liftlog/internal/datasync"
)

func newTestClient(t *testing.T, url string, retryAttempts uint) *Client {
	t.Helper()
	client, err := NewClient(config.BackupConfig{URL: url, Token: "secret", RetryAttempts: retryAttempts, TimeoutSeconds: 5})
	require.NoError(t, err)
	client.retryDelay = time.Millisecond
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestNewClient_NotConfigured(t *testing.T) {
	_, err := NewClient(config.BackupConfig{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_Push(t *testing.T) {
	tests := []struct {
		name          string
		statuses      []int
		retryAttempts uint
		wantCalls     int32
		wantErr       string
	}{
		{name: "success", statuses: []int{http.StatusNoContent}, retryAttempts: 2, wantCalls: 1},
		{name: "retries server errors", statuses: []int{http.StatusServiceUnavailable, http.StatusOK}, retryAttempts: 2, wantCalls: 2},
		{name: "retries rate limiting", statuses: []int{http.StatusTooManyRequests, http.StatusTooManyRequests, http.StatusOK}, retryAttempts: 2, wantCalls: 3},
		{name: "client errors are not retried", statuses: []int{http.StatusBadRequest}, retryAttempts: 2, wantCalls: 1, wantErr: "response error 400"},
		{name: "gives up after the last attempt", statuses: []int{http.StatusInternalServerError}, retryAttempts: 2, wantCalls: 3, wantErr: "response error 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := atomic.AddInt32(&calls, 1)
				assert.Equal(t, http.MethodPut, r.Method)
				assert.Equal(t, "/snapshot", r.URL.Path)
				assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
				assert.Equal(t, "application/yaml", r.Header.Get("Content-Type"))
				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Contains(t, string(body), "- name: Squat")

				status := tt.statuses[len(tt.statuses)-1]
				if int(n) <= len(tt.statuses) {
					status = tt.statuses[n-1]
				}
				w.WriteHeader(status)
			}))
			defer server.Close()

			client := newTestClient(t, server.URL, tt.retryAttempts)
			err := client.Push(context.Background(), &datasync.Snapshot{
				Exercises: []datasync.ExerciseRecord{{Name: "Squat"}},
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_Pull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/snapshot", r.URL.Path)
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = io.WriteString(w, "exercises:\n  - name: Plank\n    body_parts: [core]\nmenus:\n  - name: Core\n")
	}))
	defer server.Close()

	got, err := newTestClient(t, server.URL, 0).Pull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []datasync.ExerciseRecord{{Name: "Plank", BodyParts: []string{"core"}}}, got.Exercises)
	assert.Equal(t, []datasync.MenuRecord{{Name: "Core"}}, got.Menus)
}

func TestClient_Pull_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no snapshot", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL, 3).Pull(context.Background())
	assert.ErrorContains(t, err, "response error 404")
}

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "server error", err: &responseError{StatusCode: 502}, want: true},
		{name: "rate limited", err: fmt.Errorf("push: %w", &responseError{StatusCode: 429}), want: true},
		{name: "unauthorized", err: &responseError{StatusCode: 401}, want: false},
		{name: "network timeout", err: fmt.Errorf("httpClient.Put > %w", timeoutError{}), want: true},
		{name: "connection refused", err: errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), want: true},
		{name: "yaml error", err: errors.New("yaml.Unmarshal() > bad"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
