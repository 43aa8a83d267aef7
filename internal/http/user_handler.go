package httpapi

import (
	"net/http"

	"outreach-data/internal/service"

	"go.uber.org/zap"
)

// UsersHandler 员工目录（只读）
type UsersHandler struct {
	directory service.StaffDirectory
	logger    *zap.Logger
}

func NewUsersHandler(directory service.StaffDirectory, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{directory: directory, logger: logger}
}

// List GET /crm/api/v1/users
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	users, err := h.directory.ListStaff(r.Context())
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	items := make([]map[string]any, len(users))
	for i, u := range users {
		items[i] = map[string]any{
			"user_id":   string(u.UserID),
			"user_name": u.UserName,
			"role":      u.Role,
			"status":    u.Status,
		}
	}
	writeJSON(w, http.StatusOK, Ok(map[string]any{"items": items}))
}
