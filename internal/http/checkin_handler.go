package httpapi

import (
	"net/http"
	"strings"

	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// CheckinHandler 签到流程：号码查找 → 签到 / 建档+签到
type CheckinHandler struct {
	svc    service.CheckinService
	logger *zap.Logger
}

func NewCheckinHandler(svc service.CheckinService, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{svc: svc, logger: logger}
}

// Search GET /crm/api/v1/checkin/search?phone=
func (h *CheckinHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	result, err := h.svc.LookupByPhone(r.Context(), strings.TrimSpace(r.URL.Query().Get("phone")))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	out := map[string]any{
		"status": string(result.Status),
		"phone":  result.NormalizedPhone,
	}
	if result.Contact != nil {
		out["contact"] = contactJSON(result.Contact)
	}
	writeJSON(w, http.StatusOK, Ok(out))
}

type checkinPayload struct {
	ContactID int64 `json:"contact_id"`
	EventID   int64 `json:"event_id"`
}

// CheckIn POST /crm/api/v1/checkin
func (h *CheckinHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload checkinPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	result, err := h.svc.CheckIn(r.Context(), payload.ContactID, payload.EventID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"contact_id":      result.ContactID,
		"event_id":        result.EventID,
		"already_present": result.AlreadyPresent,
	}))
}

type registerCheckinPayload struct {
	EventID  int64  `json:"event_id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Category string `json:"category"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
	City     string `json:"city"`
}

// Register POST /crm/api/v1/checkin/register
// not_found 分支的建档+签到
func (h *CheckinHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload registerCheckinPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}
	result, err := h.svc.RegisterAndCheckIn(r.Context(), service.RegisterCheckinRequest{
		EventID:  payload.EventID,
		Name:     payload.Name,
		Phone:    payload.Phone,
		Email:    payload.Email,
		Category: payload.Category,
		Priority: payload.Priority,
		Status:   payload.Status,
		City:     payload.City,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"contact_id":      result.ContactID,
		"event_id":        result.EventID,
		"already_present": result.AlreadyPresent,
	}))
}
