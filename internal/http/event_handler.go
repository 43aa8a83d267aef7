package httpapi

import (
	"net/http"
	"strings"
	"time"

	"outreach-data/internal/domain"
	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// EventsHandler 活动CRUD + 签到名单
type EventsHandler struct {
	svc    service.EventService
	logger *zap.Logger
}

func NewEventsHandler(svc service.EventService, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{svc: svc, logger: logger}
}

type eventPayload struct {
	EventName   string `json:"event_name"`
	EventDate   string `json:"event_date"` // "2006-01-02"，可空
	Location    string `json:"location"`
	Description string `json:"description"`
}

func (p eventPayload) toDomain() (*domain.Event, string) {
	e := &domain.Event{
		EventName:   p.EventName,
		Location:    p.Location,
		Description: p.Description,
	}
	if s := strings.TrimSpace(p.EventDate); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, "event_date must be YYYY-MM-DD"
		}
		e.EventDate = &d
	}
	return e, ""
}

func eventJSON(e *domain.Event) map[string]any {
	m := map[string]any{
		"event_id":    e.EventID,
		"event_name":  e.EventName,
		"location":    e.Location,
		"description": e.Description,
		"created_at":  e.CreatedAt.Format(time.RFC3339),
	}
	if e.EventDate != nil {
		m["event_date"] = e.EventDate.Format("2006-01-02")
	}
	return m
}

// Collection GET（列表）/ POST（创建）
func (h *EventsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		resp, err := h.svc.ListEvents(r.Context(), parseInt(q.Get("page"), 1), parseInt(q.Get("size"), 20))
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		items := make([]map[string]any, len(resp.Items))
		for i, e := range resp.Items {
			items[i] = eventJSON(e)
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"items": items,
			"total": resp.Total,
			"page":  resp.Page,
			"size":  resp.Size,
		}))

	case http.MethodPost:
		var payload eventPayload
		if err := readBodyJSON(r, 1<<20, &payload); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		event, msg := payload.toDomain()
		if msg != "" {
			writeJSON(w, http.StatusOK, Fail(msg))
			return
		}
		created, err := h.svc.CreateEvent(r.Context(), event)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(eventJSON(created)))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ByID 处理 /crm/api/v1/events/{id} 和 /crm/api/v1/events/{id}/attendance
func (h *EventsHandler) ByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/crm/api/v1/events/")
	if strings.HasSuffix(path, "/attendance") {
		id, ok := parseID(strings.TrimSuffix(path, "/attendance"))
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h.listAttendance(w, r, id)
		return
	}
	if path == "" || strings.Contains(path, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id, ok := parseID(path)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, err := h.svc.GetEvent(r.Context(), id)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(eventJSON(e)))

	case http.MethodPut:
		var payload eventPayload
		if err := readBodyJSON(r, 1<<20, &payload); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		event, msg := payload.toDomain()
		if msg != "" {
			writeJSON(w, http.StatusOK, Fail(msg))
			return
		}
		updated, err := h.svc.UpdateEvent(r.Context(), id, event)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(eventJSON(updated)))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *EventsHandler) listAttendance(w http.ResponseWriter, r *http.Request, eventID int64) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	records, err := h.svc.ListAttendance(r.Context(), eventID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	items := make([]map[string]any, len(records))
	for i, rec := range records {
		items[i] = map[string]any{
			"attendance_id": rec.AttendanceID,
			"contact_id":    rec.ContactID,
			"event_id":      rec.EventID,
			"contact_name":  rec.ContactName,
			"contact_phone": rec.ContactPhone,
			"created_at":    rec.CreatedAt.Format(time.RFC3339),
		}
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items}))
}
