package httpapi

import (
	"net/http"
	"strings"
	"time"

	"outreach-data/internal/domain"
	"outreach-data/internal/repository"
	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// ContactsHandler 联系人CRUD
type ContactsHandler struct {
	svc    service.ContactService
	logger *zap.Logger
}

func NewContactsHandler(svc service.ContactService, logger *zap.Logger) *ContactsHandler {
	return &ContactsHandler{svc: svc, logger: logger}
}

// contactPayload 创建/更新联系人的请求体
type contactPayload struct {
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	Status     string   `json:"status"`
	Team       string   `json:"team"`
	Occupation string   `json:"occupation"`
	Sex        string   `json:"sex"`
	City       string   `json:"city"`
	Area       string   `json:"area"`
	Notes      string   `json:"notes"`
	Phone      string   `json:"phone"`
	Email      string   `json:"email"`
	AssignedTo []string `json:"assigned_to"`
}

func (p contactPayload) toDomain() *domain.Contact {
	assignees := make(domain.StaffIDList, 0, len(p.AssignedTo))
	for _, id := range p.AssignedTo {
		assignees = append(assignees, domain.StaffID(id))
	}
	return &domain.Contact{
		Name:       p.Name,
		Category:   p.Category,
		Priority:   p.Priority,
		Status:     p.Status,
		Team:       p.Team,
		Occupation: p.Occupation,
		Sex:        p.Sex,
		City:       p.City,
		Area:       p.Area,
		Notes:      p.Notes,
		Phone:      p.Phone,
		Email:      p.Email,
		AssignedTo: assignees.Dedup(),
	}
}

func contactJSON(c *domain.Contact) map[string]any {
	assignees := make([]string, len(c.AssignedTo))
	for i, id := range c.AssignedTo {
		assignees[i] = string(id)
	}
	return map[string]any{
		"contact_id":  c.ContactID,
		"name":        c.Name,
		"category":    c.Category,
		"priority":    c.Priority,
		"status":      c.Status,
		"team":        c.Team,
		"occupation":  c.Occupation,
		"sex":         c.Sex,
		"city":        c.City,
		"area":        c.Area,
		"notes":       c.Notes,
		"phone":       c.Phone,
		"email":       c.Email,
		"assigned_to": assignees,
		"created_at":  c.CreatedAt.Format(time.RFC3339),
		"updated_at":  c.UpdatedAt.Format(time.RFC3339),
	}
}

// Collection GET（列表）/ POST（创建）
func (h *ContactsHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		req := service.ListContactsRequest{
			Filters: repository.ContactFilters{
				Category:   strings.TrimSpace(q.Get("category")),
				Priority:   strings.TrimSpace(q.Get("priority")),
				Status:     strings.TrimSpace(q.Get("status")),
				Team:       strings.TrimSpace(q.Get("team")),
				City:       strings.TrimSpace(q.Get("city")),
				AssignedTo: strings.TrimSpace(q.Get("assigned_to")),
				Search:     strings.TrimSpace(q.Get("search")),
			},
			Page:     parseInt(q.Get("page"), 1),
			PageSize: parseInt(q.Get("size"), 20),
		}
		resp, err := h.svc.ListContacts(r.Context(), req)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		items := make([]map[string]any, len(resp.Items))
		for i, c := range resp.Items {
			items[i] = contactJSON(c)
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{
			"items": items,
			"total": resp.Total,
			"page":  resp.Page,
			"size":  resp.Size,
		}))

	case http.MethodPost:
		var payload contactPayload
		if err := readBodyJSON(r, 1<<20, &payload); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		created, err := h.svc.CreateContact(r.Context(), payload.toDomain())
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(contactJSON(created)))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// ByID GET/PUT/DELETE /crm/api/v1/contacts/{id}
func (h *ContactsHandler) ByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/crm/api/v1/contacts/")
	if idStr == "" || strings.Contains(idStr, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id, ok := parseID(idStr)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		c, err := h.svc.GetContact(r.Context(), id)
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(contactJSON(c)))

	case http.MethodPut:
		var payload contactPayload
		if err := readBodyJSON(r, 1<<20, &payload); err != nil {
			writeJSON(w, http.StatusOK, Fail("invalid body"))
			return
		}
		updated, err := h.svc.UpdateContact(r.Context(), id, payload.toDomain())
		if err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(contactJSON(updated)))

	case http.MethodDelete:
		if err := h.svc.DeleteContact(r.Context(), id); err != nil {
			writeServiceError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, Ok(map[string]any{"deleted": true}))

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
