package service

import (
	"context"
	"fmt"
	"strings"

	"outreach-data/internal/domain"
	"outreach-data/internal/repository"
)

// 内存版仓储，服务层单测用

type fakeContactsRepo struct {
	contacts map[int64]*domain.Contact
	nextID   int64
	// 指定ID的写入强制失败（模拟存储故障）
	failUpdate map[int64]error
}

func newFakeContactsRepo(contacts ...*domain.Contact) *fakeContactsRepo {
	repo := &fakeContactsRepo{
		contacts:   make(map[int64]*domain.Contact),
		failUpdate: make(map[int64]error),
		nextID:     1,
	}
	for _, c := range contacts {
		repo.contacts[c.ContactID] = c
		if c.ContactID >= repo.nextID {
			repo.nextID = c.ContactID + 1
		}
	}
	return repo
}

var _ repository.ContactsRepository = (*fakeContactsRepo)(nil)

func (r *fakeContactsRepo) GetContact(ctx context.Context, contactID int64) (*domain.Contact, error) {
	c, ok := r.contacts[contactID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (r *fakeContactsRepo) GetContactByPhone(ctx context.Context, normalizedPhone string) (*domain.Contact, error) {
	var matches []*domain.Contact
	for _, c := range r.contacts {
		if digitsOnly(c.Phone) == normalizedPhone {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		copied := *matches[0]
		return &copied, nil
	default:
		return nil, repository.ErrAmbiguousPhone
	}
}

func (r *fakeContactsRepo) ListContacts(ctx context.Context, filters repository.ContactFilters, page, size int) ([]*domain.Contact, int, error) {
	var out []*domain.Contact
	for _, c := range r.contacts {
		copied := *c
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeContactsRepo) CreateContact(ctx context.Context, contact *domain.Contact) (int64, error) {
	id := r.nextID
	r.nextID++
	copied := *contact
	copied.ContactID = id
	r.contacts[id] = &copied
	return id, nil
}

func (r *fakeContactsRepo) UpdateContact(ctx context.Context, contactID int64, contact *domain.Contact) error {
	if _, ok := r.contacts[contactID]; !ok {
		return repository.ErrNotFound
	}
	copied := *contact
	copied.ContactID = contactID
	r.contacts[contactID] = &copied
	return nil
}

func (r *fakeContactsRepo) UpdateContactField(ctx context.Context, contactID int64, field, value string) error {
	if err, ok := r.failUpdate[contactID]; ok {
		return err
	}
	c, ok := r.contacts[contactID]
	if !ok {
		return repository.ErrNotFound
	}
	switch field {
	case domain.FieldCategory:
		c.Category = value
	case domain.FieldPriority:
		c.Priority = value
	case domain.FieldStatus:
		c.Status = value
	case domain.FieldTeam:
		c.Team = value
	case domain.FieldOccupation:
		c.Occupation = value
	case domain.FieldSex:
		c.Sex = value
	case domain.FieldCity:
		c.City = value
	default:
		return fmt.Errorf("field %q is not bulk-editable", field)
	}
	return nil
}

func (r *fakeContactsRepo) UpdateAssignedTo(ctx context.Context, contactID int64, assignees domain.StaffIDList) error {
	if err, ok := r.failUpdate[contactID]; ok {
		return err
	}
	c, ok := r.contacts[contactID]
	if !ok {
		return repository.ErrNotFound
	}
	c.AssignedTo = assignees
	return nil
}

func (r *fakeContactsRepo) DeleteContact(ctx context.Context, contactID int64) error {
	if _, ok := r.contacts[contactID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.contacts, contactID)
	return nil
}

type fakeEventsRepo struct {
	events map[int64]*domain.Event
	nextID int64
}

func newFakeEventsRepo(events ...*domain.Event) *fakeEventsRepo {
	repo := &fakeEventsRepo{events: make(map[int64]*domain.Event), nextID: 1}
	for _, e := range events {
		repo.events[e.EventID] = e
		if e.EventID >= repo.nextID {
			repo.nextID = e.EventID + 1
		}
	}
	return repo
}

var _ repository.EventsRepository = (*fakeEventsRepo)(nil)

func (r *fakeEventsRepo) GetEvent(ctx context.Context, eventID int64) (*domain.Event, error) {
	e, ok := r.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *fakeEventsRepo) ListEvents(ctx context.Context, page, size int) ([]*domain.Event, int, error) {
	var out []*domain.Event
	for _, e := range r.events {
		copied := *e
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (r *fakeEventsRepo) CreateEvent(ctx context.Context, event *domain.Event) (int64, error) {
	id := r.nextID
	r.nextID++
	copied := *event
	copied.EventID = id
	r.events[id] = &copied
	return id, nil
}

func (r *fakeEventsRepo) UpdateEvent(ctx context.Context, eventID int64, event *domain.Event) error {
	if _, ok := r.events[eventID]; !ok {
		return repository.ErrNotFound
	}
	copied := *event
	copied.EventID = eventID
	r.events[eventID] = &copied
	return nil
}

type pair struct {
	contactID int64
	eventID   int64
}

type fakeAttendanceRepo struct {
	records map[pair]bool
	// 签到前校验联系人存在（模拟外键）
	contacts *fakeContactsRepo
}

func newFakeAttendanceRepo(contacts *fakeContactsRepo) *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[pair]bool), contacts: contacts}
}

var _ repository.AttendanceRepository = (*fakeAttendanceRepo)(nil)

func (r *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, contactID, eventID int64) (bool, error) {
	if r.contacts != nil {
		if _, ok := r.contacts.contacts[contactID]; !ok {
			return false, repository.ErrNotFound
		}
	}
	p := pair{contactID, eventID}
	if r.records[p] {
		return false, nil
	}
	r.records[p] = true
	return true, nil
}

func (r *fakeAttendanceRepo) Exists(ctx context.Context, contactID, eventID int64) (bool, error) {
	return r.records[pair{contactID, eventID}], nil
}

func (r *fakeAttendanceRepo) ListByEvent(ctx context.Context, eventID int64) ([]*domain.AttendanceRecord, error) {
	var out []*domain.AttendanceRecord
	for p := range r.records {
		if p.eventID == eventID {
			out = append(out, &domain.AttendanceRecord{ContactID: p.contactID, EventID: p.eventID})
		}
	}
	return out, nil
}

type fakeTasksRepo struct {
	created []*domain.Task
	nextID  int
}

var _ repository.TasksRepository = (*fakeTasksRepo)(nil)

func (r *fakeTasksRepo) CreateTask(ctx context.Context, task *domain.Task) (string, error) {
	r.nextID++
	copied := *task
	copied.TaskID = fmt.Sprintf("task-%d", r.nextID)
	r.created = append(r.created, &copied)
	return copied.TaskID, nil
}

func (r *fakeTasksRepo) ListTasks(ctx context.Context, assigneeID string) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, t := range r.created {
		if assigneeID == "" || string(t.AssigneeID) == assigneeID {
			copied := *t
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	staff map[domain.StaffID]bool
	err   error
}

func newFakeDirectory(ids ...string) *fakeDirectory {
	d := &fakeDirectory{staff: make(map[domain.StaffID]bool)}
	for _, id := range ids {
		d.staff[domain.StaffID(id)] = true
	}
	return d
}

var _ StaffDirectory = (*fakeDirectory)(nil)

func (d *fakeDirectory) ListStaff(ctx context.Context) ([]*domain.User, error) {
	if d.err != nil {
		return nil, d.err
	}
	var out []*domain.User
	for id := range d.staff {
		out = append(out, &domain.User{UserID: id, UserName: string(id), Status: "active"})
	}
	return out, nil
}

func (d *fakeDirectory) MissingStaff(ctx context.Context, ids domain.StaffIDList) (domain.StaffIDList, error) {
	if d.err != nil {
		return nil, d.err
	}
	var missing domain.StaffIDList
	for _, id := range ids {
		if !d.staff[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
