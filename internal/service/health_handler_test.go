package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type stubChecker struct {
	err error
}

func (s stubChecker) Health(ctx context.Context) error {
	return s.err
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		remote     HealthChecker
		wantRemote string
	}{
		{name: "no remote", remote: nil, wantRemote: RemoteNone},
		{name: "remote reachable", remote: stubChecker{}, wantRemote: RemoteOK},
		{name: "remote unreachable", remote: stubChecker{err: errors.New("connection refused")}, wantRemote: RemoteDegraded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthHandler(tt.remote, time.Second).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", rec.Code)
			}

			var got HealthStatus
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if got.Status != "ok" {
				t.Errorf("status: expected 'ok', got '%s'", got.Status)
			}
			if got.Remote != tt.wantRemote {
				t.Errorf("remote: expected '%s', got '%s'", tt.wantRemote, got.Remote)
			}
		})
	}
}
