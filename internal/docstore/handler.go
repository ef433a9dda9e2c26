package docstore

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/mmynk/checklists/internal/middleware"
	"github.com/mmynk/checklists/internal/storage"
)

// DocumentPath is the only path the server answers on.
const DocumentPath = "/data.json"

// MaxBodySize caps an uploaded document.
const MaxBodySize = 10 << 20

// Handler wires the document endpoints to a FileStore.
type Handler struct {
	store *FileStore
}

// New constructs a document handler.
func New(store *FileStore) *Handler {
	return &Handler{store: store}
}

// Register mounts the document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get(DocumentPath, h.handleGet)
	r.Put(DocumentPath, h.handlePut)
}

// NewRouter builds the full document server router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS)

	h.Register(r)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.NotFound(http.NotFound)
	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	data, err := h.store.Read()
	if errors.Is(err, storage.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("Failed to read document",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "failed to read document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("Document too large", "limit", MaxBodySize)
			http.Error(w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := h.store.Write(data); err != nil {
		slog.Error("Failed to write document",
			"request_id", chimw.GetReqID(r.Context()),
			"error", err,
		)
		http.Error(w, "failed to write document", http.StatusInternalServerError)
		return
	}

	slog.Info("Document stored", "bytes", len(data), "path", h.store.Path())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
