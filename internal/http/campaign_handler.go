package httpapi

import (
	"net/http"
	"strings"
	"time"

	"outreach-data/internal/domain"
	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// CampaignsHandler 活动创建与任务查询
type CampaignsHandler struct {
	svc    service.CampaignService
	logger *zap.Logger
}

func NewCampaignsHandler(svc service.CampaignService, logger *zap.Logger) *CampaignsHandler {
	return &CampaignsHandler{svc: svc, logger: logger}
}

type campaignPayload struct {
	ContactIDs  []int64 `json:"contact_ids"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"` // "2006-01-02"，可空
}

func taskJSON(t *domain.Task) map[string]any {
	m := map[string]any{
		"task_id":       t.TaskID,
		"campaign_name": t.CampaignName,
		"description":   t.Description,
		"assignee_id":   string(t.AssigneeID),
		"contact_ids":   t.ContactIDs,
		"created_at":    t.CreatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		m["due_date"] = t.DueDate.Format("2006-01-02")
	}
	return m
}

// Create POST /crm/api/v1/campaigns
func (h *CampaignsHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload campaignPayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	var dueDate *time.Time
	if s := strings.TrimSpace(payload.DueDate); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			writeJSON(w, http.StatusOK, Fail("due_date must be YYYY-MM-DD"))
			return
		}
		dueDate = &d
	}

	resp, err := h.svc.CreateCampaign(r.Context(), service.CreateCampaignRequest{
		ContactIDs:  payload.ContactIDs,
		Name:        payload.Name,
		Description: payload.Description,
		DueDate:     dueDate,
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	tasks := make([]map[string]any, len(resp.Tasks))
	for i, t := range resp.Tasks {
		tasks[i] = taskJSON(t)
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"tasks":               tasks,
		"skipped_contact_ids": resp.SkippedContactIDs,
	}))
}

// ListTasks GET /crm/api/v1/tasks?assignee=
func (h *CampaignsHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	tasks, err := h.svc.ListTasks(r.Context(), strings.TrimSpace(r.URL.Query().Get("assignee")))
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	items := make([]map[string]any, len(tasks))
	for i, t := range tasks {
		items[i] = taskJSON(t)
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items}))
}
