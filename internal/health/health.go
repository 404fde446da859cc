package health

import (
	"context"
	"net/http"
	"time"

	apperrors "cafebook/pkg/errors"
	httputil "cafebook/pkg/http"
	"cafebook/pkg/logger"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	probeTimeout = 2 * time.Second
	maxErrorLen  = 80
)

// Store is what the probes need from the database.
type Store interface {
	Name() string
	Ping(ctx context.Context) error
	ListCollectionNames(ctx context.Context) ([]string, error)
}

type mongoStore struct {
	db *mongo.Database
}

func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{db: db}
}

func (s *mongoStore) Name() string {
	return s.db.Name()
}

func (s *mongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, nil)
}

func (s *mongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	return s.db.ListCollectionNames(ctx, bson.D{})
}

type RootResponse struct {
	Message string `json:"message"`
}

type ProbeResponse struct {
	Backend     string   `json:"backend"`
	Database    string   `json:"database"`
	Collections []string `json:"collections,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
}

type HealthHandler struct {
	store Store
	log   *logger.Logger
}

func NewHealthHandler(store Store, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store: store,
		log:   log,
	}
}

func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, RootResponse{
		Message: "Gaming Cafe booking API is running",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Root", "operation", "WriteJSON", "error", err)
	}
}

// Probe always answers 200; store problems are reported in the body.
func (h *HealthHandler) Probe(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	resp := ProbeResponse{Backend: "running", Database: "not configured"}

	if h.store != nil {
		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		names, err := h.store.ListCollectionNames(ctx)
		if err != nil {
			h.log.Warn("Store probe failed", "database", h.store.Name(), "error", err)
			resp.Database = "error: " + truncate(err.Error(), maxErrorLen)
		} else {
			resp.Database = "connected: " + h.store.Name()
			resp.Collections = names
		}
	}

	if err := httputil.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Probe", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	if h.store == nil {
		h.writeUnavailable(w, r, nil)
		return
	}
	if err := h.store.Ping(ctx); err != nil {
		h.writeUnavailable(w, r, err)
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ready",
		Database: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) writeUnavailable(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("Database health check failed",
		"error", err,
		"path", r.URL.Path,
	)
	if writeErr := httputil.WriteError(w, apperrors.Unavailable("Database")); writeErr != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/", h.Root)
	router.GET("/test", h.Probe)
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
