// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mmynk/checklists/internal/models"
)

// Remote backends the service can mirror the document to.
const (
	RemoteNone  = "none"
	RemoteHTTP  = "http"
	RemoteRedis = "redis"
)

// Server captures the checklist service configuration.
type Server struct {
	Addr                string
	DBPath              string
	StaticPath          string
	DefaultDocumentPath string
	Roster              models.Roster
	Remote              Remote
}

// Remote selects and configures the remote document store.
type Remote struct {
	Backend  string
	URL      string
	RedisURL string
	RedisKey string
	Timeout  time.Duration
}

// DocStore captures the document server configuration.
type DocStore struct {
	Addr string
	Path string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	roster, err := models.NewRoster(splitUsers(getEnv("CHECKLIST_USERS", "JH,JM,KH"))...)
	if err != nil {
		return Server{}, fmt.Errorf("CHECKLIST_USERS: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "5s"))
	if err != nil {
		return Server{}, fmt.Errorf("REMOTE_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Server{}, fmt.Errorf("REMOTE_TIMEOUT: must be positive, got %s", timeout)
	}

	remote := Remote{
		Backend:  strings.ToLower(getEnv("REMOTE_BACKEND", RemoteNone)),
		URL:      os.Getenv("REMOTE_URL"),
		RedisURL: os.Getenv("REDIS_URL"),
		RedisKey: getEnv("REDIS_KEY", "checklists:document"),
		Timeout:  timeout,
	}
	switch remote.Backend {
	case RemoteNone:
	case RemoteHTTP:
		if remote.URL == "" {
			return Server{}, fmt.Errorf("REMOTE_URL is required when REMOTE_BACKEND=%s", RemoteHTTP)
		}
	case RemoteRedis:
		if remote.RedisURL == "" {
			return Server{}, fmt.Errorf("REDIS_URL is required when REMOTE_BACKEND=%s", RemoteRedis)
		}
	default:
		return Server{}, fmt.Errorf("REMOTE_BACKEND: unknown backend %q", remote.Backend)
	}

	return Server{
		Addr:                getEnv("CHECKLISTS_ADDR", ":8080"),
		DBPath:              getEnv("DB_PATH", "./data/checklists.db"),
		StaticPath:          os.Getenv("STATIC_PATH"),
		DefaultDocumentPath: getEnv("DEFAULT_DOCUMENT_PATH", "./data.json"),
		Roster:              roster,
		Remote:              remote,
	}, nil
}

// DocStoreFromEnv builds the document server config.
func DocStoreFromEnv() DocStore {
	return DocStore{
		Addr: getEnv("DOCSTORE_ADDR", ":8000"),
		Path: getEnv("DOCSTORE_PATH", "./data.json"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitUsers(s string) []string {
	parts := strings.Split(s, ",")
	users := make([]string, 0, len(parts))
	for _, p := range parts {
		users = append(users, strings.TrimSpace(p))
	}
	return users
}
