package handler

import (
	"net/http"

	"github.com/todoexcellence/todoex/internal/handler/dto"
	"github.com/todoexcellence/todoex/internal/middleware"
)

// handleListActivity returns the audit trail visible to the caller.
// @Summary List activity log entries
// @Description Admins see the whole trail; plain users only entries for todos they own. Newest first.
// @Tags activity
// @Produce json
// @Success 200 {object} dto.ActivityListResponse
// @Security BearerAuth
// @Router /activity [get]
func (h *Handler) handleListActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	identity, err := middleware.GetIdentityFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Authentication required")
		return
	}

	entries, err := h.todoService.ListActivity(ctx, identity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch activity logs")
		return
	}

	response := dto.ActivityListResponse{
		Entries: make([]dto.ActivityEntryResponse, len(entries)),
		Total:   len(entries),
	}
	for i, entry := range entries {
		response.Entries[i] = dto.ToActivityEntryResponse(entry)
	}

	respondJSON(w, http.StatusOK, response)
}
