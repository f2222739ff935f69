package handler

import (
	"net/http"

	"github.com/todoexcellence/todoex/internal/handler/dto"
	"github.com/todoexcellence/todoex/internal/middleware"
)

// handleSearchUsers returns users matching a name fragment, for the admin
// assignee picker.
// @Summary Search users
// @Description Admin-only name search over registered users.
// @Tags users
// @Produce json
// @Param search query string false "Name fragment, case-insensitive"
// @Success 200 {object} dto.UsersListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *Handler) handleSearchUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	if !identity.IsAdmin() {
		respondError(w, http.StatusForbidden, "INSUFFICIENT_ACCESS", "Admin access required")
		return
	}

	users, err := h.userRepo.Search(ctx, r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search users")
		return
	}

	response := dto.UsersListResponse{
		Users: make([]dto.UserRef, len(users)),
	}
	for i, user := range users {
		response.Users[i] = dto.UserRef{ID: user.ID, Name: user.Name}
	}

	respondJSON(w, http.StatusOK, response)
}
