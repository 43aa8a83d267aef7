package httpapi

import (
	"net/http"
	"strconv"

	"outreach-data/internal/domain"
	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// BulkUpdateHandler 批量字段更新
type BulkUpdateHandler struct {
	svc    service.BulkUpdateService
	logger *zap.Logger
}

func NewBulkUpdateHandler(svc service.BulkUpdateService, logger *zap.Logger) *BulkUpdateHandler {
	return &BulkUpdateHandler{svc: svc, logger: logger}
}

// bulkUpdatePayload 请求体
// value 用于标量字段；assignees/mode 仅对 field=assignedTo 生效
type bulkUpdatePayload struct {
	ContactIDs []int64  `json:"contact_ids"`
	Field      string   `json:"field"`
	Value      string   `json:"value"`
	Assignees  []string `json:"assignees"`
	Mode       string   `json:"mode"`
}

// BulkUpdate POST /crm/api/v1/contacts/bulk-update
func (h *BulkUpdateHandler) BulkUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var payload bulkUpdatePayload
	if err := readBodyJSON(r, 1<<20, &payload); err != nil {
		writeJSON(w, http.StatusOK, Fail("invalid body"))
		return
	}

	assignees := make(domain.StaffIDList, 0, len(payload.Assignees))
	for _, id := range payload.Assignees {
		assignees = append(assignees, domain.StaffID(id))
	}

	result, err := h.svc.BulkUpdate(r.Context(), service.BulkUpdateRequest{
		ContactIDs: payload.ContactIDs,
		Field:      payload.Field,
		Value:      payload.Value,
		Assignees:  assignees,
		Mode:       domain.MergeMode(payload.Mode),
	})
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	failed := make(map[string]string, len(result.Failed))
	for id, kind := range result.Failed {
		failed[strconv.FormatInt(id, 10)] = string(kind)
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{
		"succeeded": result.Succeeded,
		"failed":    failed,
	}))
}
