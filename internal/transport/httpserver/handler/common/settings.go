package common

import (
	"errors"
	"net/http"

	userdomain "finance-tracker-go/internal/domain/user"
)

type updateSettingsRequest struct {
	Currency         string `json:"currency"`
	CurrencyCode     string `json:"currency_code"`
	AllowFutureDates *bool  `json:"allow_future_dates"`
}

func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	user, ok := RequireUser(w, r)
	if !ok {
		return
	}

	settings, err := h.Users.GetSettings(r.Context(), user.ID)
	if err != nil {
		h.log.InternalError("settings.get: get settings failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, settings.Map())
}

func (h *Handlers) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req updateSettingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	user, ok := RequireUser(w, r)
	if !ok {
		return
	}

	settings, err := h.Users.UpdateSettings(r.Context(), user.ID, userdomain.UpdateSettingsInput{
		Currency:         req.Currency,
		CurrencyCode:     req.CurrencyCode,
		AllowFutureDates: req.AllowFutureDates,
	})
	if err != nil {
		switch {
		case WriteValidationError(w, err):
			h.log.BusinessError("settings.update: validation failed", err, "user_id", user.ID)
		case errors.Is(err, userdomain.ErrUserNotFound):
			h.log.BusinessError("settings.update: user not found", err, "user_id", user.ID)
			writeError(w, http.StatusNotFound, "user_not_found", "user not found")
		default:
			h.log.InternalError("settings.update: update settings failed", err, "user_id", user.ID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, settings.Map())
}

func (h *Handlers) ListCurrencies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userdomain.AvailableCurrencies)
}
