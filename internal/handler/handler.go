package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/todoexcellence/todoex/internal/handler/dto"
	"github.com/todoexcellence/todoex/internal/middleware"
	"github.com/todoexcellence/todoex/internal/repository"
	"github.com/todoexcellence/todoex/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool           *pgxpool.Pool
	todoService    *service.TodoService
	todoRepo       *repository.TodoRepository
	activityRepo   *repository.ActivityRepository
	userRepo       *repository.UserRepository
	authMiddleware *middleware.AuthMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	// Create repositories
	todoRepo := repository.NewTodoRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	// Create services
	todoService := service.NewTodoService(todoRepo, activityRepo, userRepo)

	// Create middleware
	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	return &Handler{
		pool:           pool,
		todoService:    todoService,
		todoRepo:       todoRepo,
		activityRepo:   activityRepo,
		userRepo:       userRepo,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// API v1 routes with authentication
	mux.Handle("POST /api/v1/todos", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleCreateTodo)))
	mux.Handle("GET /api/v1/todos", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleListTodos)))
	mux.Handle("PUT /api/v1/todos/mark-all-completed", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleMarkAllCompleted)))
	mux.Handle("GET /api/v1/todos/{id}", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleGetTodo)))
	mux.Handle("PUT /api/v1/todos/{id}", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleUpdateTodo)))
	mux.Handle("DELETE /api/v1/todos/{id}", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleDeleteTodo)))
	mux.Handle("GET /api/v1/activity", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleListActivity)))
	mux.Handle("GET /api/v1/users", h.authMiddleware.Authenticate(http.HandlerFunc(h.handleSearchUsers)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// extractTodoID extracts and validates the todo ID from the path parameter.
// Returns (todoID, true) if valid, ("", false) if invalid (error already sent to client).
func extractTodoID(w http.ResponseWriter, r *http.Request) (string, bool) {
	todoID := r.PathValue("id")
	if todoID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "todo id is required")
		return "", false
	}

	if _, err := uuid.Parse(todoID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "todo id must be a valid UUID")
		return "", false
	}

	return todoID, true
}
