package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router 标准库 http.ServeMux 之上的薄封装
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterCRMRoutes 注册 CRM API 路由
func (r *Router) RegisterCRMRoutes(
	contacts *ContactsHandler,
	bulk *BulkUpdateHandler,
	campaigns *CampaignsHandler,
	events *EventsHandler,
	checkin *CheckinHandler,
	users *UsersHandler,
) {
	// contacts
	r.Handle("/crm/api/v1/contacts", contacts.Collection)
	r.Handle("/crm/api/v1/contacts/", func(w http.ResponseWriter, req *http.Request) {
		// bulk-update 在 contacts 子路径下，先于按ID分发
		if strings.HasSuffix(req.URL.Path, "/bulk-update") {
			bulk.BulkUpdate(w, req)
			return
		}
		contacts.ByID(w, req)
	})

	// campaigns + tasks
	r.Handle("/crm/api/v1/campaigns", campaigns.Create)
	r.Handle("/crm/api/v1/tasks", campaigns.ListTasks)

	// events
	r.Handle("/crm/api/v1/events", events.Collection)
	r.Handle("/crm/api/v1/events/", events.ByID)

	// check-in
	r.Handle("/crm/api/v1/checkin/search", checkin.Search)
	r.Handle("/crm/api/v1/checkin", checkin.CheckIn)
	r.Handle("/crm/api/v1/checkin/register", checkin.Register)

	// staff directory
	r.Handle("/crm/api/v1/users", users.List)
}
