package common

import (
	"errors"
	"net/http"
	"time"

	userdomain "finance-tracker-go/internal/domain/user"
)

type authMeResponse struct {
	ID        string         `json:"id"`
	Email     *string        `json:"email"`
	Settings  map[string]any `json:"settings"`
	CreatedAt *time.Time     `json:"created_at,omitempty"`
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	user, ok := RequireUser(w, r)
	if !ok {
		return
	}

	record, err := h.Users.GetUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			h.log.BusinessError("auth.me: user not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	settings := userdomain.ResolveSettings(userdomain.DecodeSettings(record.Settings))
	writeJSON(w, http.StatusOK, authMeResponse{
		ID:        record.ID,
		Email:     record.Email,
		Settings:  settings.Map(),
		CreatedAt: &record.CreatedAt,
	})
}
