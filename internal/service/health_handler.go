package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Remote states reported by HealthHandler.
const (
	RemoteOK       = "ok"
	RemoteDegraded = "degraded"
	RemoteNone     = "none"
)

// HealthChecker is a dependency that can report whether it is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthStatus is the /healthz response body.
type HealthStatus struct {
	Status string `json:"status"`
	Remote string `json:"remote"`
}

// HealthHandler answers /healthz. The local cache is authoritative, so an
// unreachable remote marks the service degraded but never unhealthy.
// remote may be nil when no remote store supports health checks.
func HealthHandler(remote HealthChecker, timeout time.Duration) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := HealthStatus{Status: "ok", Remote: RemoteNone}

		if remote != nil {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			err := remote.Health(ctx)
			cancel()
			if err != nil {
				slog.Warn("Remote store health check failed", "error", err)
				status.Remote = RemoteDegraded
			} else {
				status.Remote = RemoteOK
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(status)
	})
}
