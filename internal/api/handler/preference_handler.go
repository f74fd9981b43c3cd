package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/RoyceAzure/lab/pos/internal/api/dto"
	"github.com/RoyceAzure/lab/pos/internal/constants"
	"github.com/RoyceAzure/lab/pos/internal/pkg/api"
	"github.com/RoyceAzure/lab/pos/internal/service"
)

// PreferenceHandler 收銀台UI偏好，單機部署所以共用一個使用者
type PreferenceHandler struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceHandler(preferenceService service.IPreferenceService) *PreferenceHandler {
	if preferenceService == nil {
		panic("preferenceService cannot be nil")
	}
	return &PreferenceHandler{preferenceService: preferenceService}
}

func (h *PreferenceHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := h.preferenceService.Get(r.Context(), constants.DefaultCashierUser)
	if err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to load preferences")
		return
	}
	api.SuccessJSON(w, dto.PreferencesDTO{
		DarkMode:         prefs.DarkMode,
		SidebarCollapsed: prefs.SidebarCollapsed,
		AdminMode:        prefs.AdminMode,
	}, nil)
}

func (h *PreferenceHandler) SetDarkMode(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.preferenceService.SetDarkMode)
}

func (h *PreferenceHandler) SetSidebarCollapsed(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.preferenceService.SetSidebarCollapsed)
}

func (h *PreferenceHandler) SetAdminMode(w http.ResponseWriter, r *http.Request) {
	h.set(w, r, h.preferenceService.SetAdminMode)
}

func (h *PreferenceHandler) set(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, userID string, on bool) error) {
	var req dto.SetPreferenceDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.ErrorJSON(w, http.StatusBadRequest, err, "invalid request body")
		return
	}

	if err := fn(r.Context(), constants.DefaultCashierUser, req.Value); err != nil {
		api.ErrorJSON(w, http.StatusInternalServerError, err, "failed to save preference")
		return
	}
	h.GetPreferences(w, r)
}
