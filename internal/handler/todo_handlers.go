package handler

import (
	"encoding/json"
	"net/http"

	"github.com/todoexcellence/todoex/internal/handler/dto"
	"github.com/todoexcellence/todoex/internal/middleware"
	"github.com/todoexcellence/todoex/internal/repository"
	"github.com/todoexcellence/todoex/internal/service"
)

// handleCreateTodo creates a new todo.
// @Summary Create a todo
// @Description Creates a todo. Admins may assign it to any user; everyone else becomes the assignee themselves.
// @Tags todos
// @Accept json
// @Produce json
// @Param request body dto.CreateTodoRequest true "Todo creation request"
// @Success 201 {object} dto.TodoResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos [post]
func (h *Handler) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	var req dto.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	todo, err := h.todoService.Create(ctx, identity, service.CreateTodoParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Category:    req.Category,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	// Re-fetch with user names resolved
	withNames, err := h.todoRepo.GetByIDWithNames(ctx, todo.ID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTodoResponse(withNames))
}

// handleListTodos returns todos visible to the caller with optional filters.
// @Summary List todos
// @Description Admins see everything and may filter by assignee; plain users always see their own todos.
// @Tags todos
// @Produce json
// @Param assignedTo query string false "Filter by assignee UUID (admin only)"
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Success 200 {object} dto.TodosListResponse
// @Security BearerAuth
// @Router /todos [get]
func (h *Handler) handleListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	query := r.URL.Query()

	var assignedTo *string
	if identity.IsAdmin() {
		if assigneeParam := query.Get("assignedTo"); assigneeParam != "" {
			assignedTo = &assigneeParam
		}
	} else {
		// Plain users only ever see their own todos
		assignedTo = &identity.UserID
	}

	var status *string
	if statusParam := query.Get("status"); statusParam != "" {
		status = &statusParam
	}

	var priority *string
	if priorityParam := query.Get("priority"); priorityParam != "" {
		priority = &priorityParam
	}

	todos, err := h.todoRepo.List(ctx, repository.TodoListFilters{
		AssignedTo: assignedTo,
		Status:     status,
		Priority:   priority,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list todos")
		return
	}

	response := dto.TodosListResponse{
		Todos: make([]dto.TodoResponse, len(todos)),
		Total: len(todos),
	}
	for i, todo := range todos {
		response.Todos[i] = dto.ToTodoResponse(todo)
	}

	respondJSON(w, http.StatusOK, response)
}

// handleGetTodo retrieves a single todo.
// @Summary Get todo details
// @Description Get a todo with resolved user references
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} dto.TodoResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [get]
func (h *Handler) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if _, err := middleware.GetIdentityFromContext(ctx); err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	todoID, ok := extractTodoID(w, r)
	if !ok {
		return
	}

	todo, err := h.todoRepo.GetByIDWithNames(ctx, todoID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// handleUpdateTodo applies a partial update to a todo.
// @Summary Update a todo
// @Description Applies a patch under the field authorization policy. Patches touching forbidden fields are rejected whole.
// @Tags todos
// @Accept json
// @Produce json
// @Param id path string true "Todo ID"
// @Param request body dto.UpdateTodoRequest true "Patch; absent keys are left untouched"
// @Success 200 {object} dto.TodoResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [put]
func (h *Handler) handleUpdateTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	todoID, ok := extractTodoID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	todo, err := h.todoService.Update(ctx, identity, todoID, service.TodoPatch{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		Category:    req.Category,
		DueDate:     req.DueDate,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	withNames, err := h.todoRepo.GetByIDWithNames(ctx, todo.ID)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTodoResponse(withNames))
}

// handleDeleteTodo deletes a todo.
// @Summary Delete a todo
// @Description Deletes a todo. Only an admin or the creator may delete.
// @Tags todos
// @Produce json
// @Param id path string true "Todo ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /todos/{id} [delete]
func (h *Handler) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	todoID, ok := extractTodoID(w, r)
	if !ok {
		return
	}

	if err := h.todoService.Delete(ctx, identity, todoID); err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted"})
}

// handleMarkAllCompleted marks every unfinished todo visible to the caller as Done.
// @Summary Mark all todos completed
// @Description Bulk-completes todos in one operation; logged as a single batch audit entry.
// @Tags todos
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /todos/mark-all-completed [put]
func (h *Handler) handleMarkAllCompleted(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	count, err := h.todoService.MarkAllCompleted(ctx, identity)
	if err != nil {
		status, code, message := dto.MapDomainError(err)
		respondError(w, status, code, message)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "All tasks marked as completed",
		"affected": count,
	})
}
