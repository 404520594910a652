package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"lrucache/internal/cache"
)

// Handler exposes a Synced cache of byte values over HTTP.
type Handler struct {
	cache         *cache.Synced[string, []byte]
	metrics       http.Handler
	maxValueBytes int64
	log           *slog.Logger
}

// cacheInfo is the body of GET /v1/cache.
type cacheInfo struct {
	Capacity int         `json:"capacity"`
	Len      int         `json:"len"`
	Keys     []string    `json:"keys"`
	Stats    cache.Stats `json:"stats"`
	HitRatio float64     `json:"hit_ratio"`
}

// NewHandler returns a Handler. metrics may be nil, in which case
// /metrics is not mounted.
func NewHandler(c *cache.Synced[string, []byte], metrics http.Handler, maxValueBytes int) *Handler {
	return &Handler{
		cache:         c,
		metrics:       metrics,
		maxValueBytes: int64(maxValueBytes),
		log:           slog.Default().With("component", "cache-handler"),
	}
}

// Mount registers the cache, health and metrics routes.
func (h *Handler) Mount(mux *http.ServeMux) error {
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /v1/cache", h.info)
	mux.HandleFunc("GET /v1/cache/{key}", h.get)
	mux.HandleFunc("PUT /v1/cache/{key}", h.put)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
	return nil
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok\n")
}

// get returns the stored value. A hit promotes the key.
func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	value, ok := h.cache.Get(r.PathValue("key"))
	if !ok {
		http.Error(w, "key not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	_, _ = w.Write(value)
}

// put stores the request body as the value for key.
func (h *Handler) put(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	value, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxValueBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "value too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	if err := h.cache.Set(key, value); err != nil {
		if errors.Is(err, cache.ErrClosed) {
			http.Error(w, "cache is shutting down", http.StatusServiceUnavailable)
			return
		}
		h.log.Error("set failed", "key", key, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// info reports capacity, keys in MRU -> LRU order, and counters.
func (h *Handler) info(w http.ResponseWriter, _ *http.Request) {
	stats := h.cache.Stats()
	body := cacheInfo{
		Capacity: stats.Capacity,
		Len:      stats.Len,
		Keys:     h.cache.Keys(),
		Stats:    stats,
		HitRatio: stats.HitRatio(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Error("encode cache info", "error", err)
	}
}
