package usecase

import (
	"errors"
	"sort"
	"strings"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repository and mailer interfaces, shared by the
// usecase tests.

type memDB struct {
	users     map[uint]*model.User
	employees map[uint]*model.Employee
	requests  map[uint]*model.TravelRequest
	nextID    uint
}

func newMemDB() *memDB {
	return &memDB{
		users:     map[uint]*model.User{},
		employees: map[uint]*model.Employee{},
		requests:  map[uint]*model.TravelRequest{},
	}
}

func (d *memDB) id() uint {
	d.nextID++
	return d.nextID
}

// employeeView returns a copy with User and Manager.User attached, matching
// the Preloads the gorm implementation does.
func (d *memDB) employeeView(id uint) *model.Employee {
	emp, ok := d.employees[id]
	if !ok {
		return nil
	}
	out := *emp
	if u, ok := d.users[emp.UserID]; ok {
		out.User = *u
	}
	if emp.ManagerID != nil {
		if mgr, ok := d.employees[*emp.ManagerID]; ok {
			mgrCopy := *mgr
			if u, ok := d.users[mgr.UserID]; ok {
				mgrCopy.User = *u
			}
			out.Manager = &mgrCopy
		}
	}
	return &out
}

func (d *memDB) requestView(id uint) *model.TravelRequest {
	req, ok := d.requests[id]
	if !ok {
		return nil
	}
	out := *req
	if req.EmployeeID != nil {
		out.Employee = d.employeeView(*req.EmployeeID)
	}
	if req.ManagerID != nil {
		out.Manager = d.employeeView(*req.ManagerID)
	}
	return &out
}

type fakeUserRepo struct{ db *memDB }

func (r *fakeUserRepo) Create(user *model.User) error {
	for _, u := range r.db.users {
		if u.Username == user.Username {
			return errors.New("duplicate username")
		}
	}
	user.ID = r.db.id()
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id uint) (*model.User, error) {
	u, ok := r.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*model.User, error) {
	for _, u := range r.db.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(user *model.User) error {
	if _, ok := r.db.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.db.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	delete(r.db.users, id)
	return nil
}

func (r *fakeUserRepo) CreateAdmin(admin *model.Admin) error {
	admin.ID = r.db.id()
	return nil
}

type fakeEmployeeRepo struct{ db *memDB }

func (r *fakeEmployeeRepo) Create(emp *model.Employee) error {
	emp.ID = r.db.id()
	stored := *emp
	r.db.employees[emp.ID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) GetByID(id uint) (*model.Employee, error) {
	emp := r.db.employeeView(id)
	if emp == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByUserID(userID uint) (*model.Employee, error) {
	for id, emp := range r.db.employees {
		if emp.UserID == userID {
			return r.db.employeeView(id), nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeEmployeeRepo) List(searchName string) ([]model.Employee, error) {
	var out []model.Employee
	for id := range r.db.employees {
		emp := r.db.employeeView(id)
		if searchName != "" && !nameMatches(&emp.User, searchName) {
			continue
		}
		out = append(out, *emp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEmployeeRepo) Update(emp *model.Employee) error {
	if _, ok := r.db.employees[emp.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *emp
	stored.Manager = nil
	r.db.employees[emp.ID] = &stored
	return nil
}

func (r *fakeEmployeeRepo) Delete(id uint) error {
	delete(r.db.employees, id)
	return nil
}

func (r *fakeEmployeeRepo) ClearManagerRefs(managerID uint) error {
	for _, emp := range r.db.employees {
		if emp.ManagerID != nil && *emp.ManagerID == managerID {
			emp.ManagerID = nil
		}
	}
	return nil
}

type fakeRequestRepo struct{ db *memDB }

func (r *fakeRequestRepo) Create(req *model.TravelRequest) error {
	req.ID = r.db.id()
	stored := *req
	stored.Employee = nil
	stored.Manager = nil
	r.db.requests[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(id uint) (*model.TravelRequest, error) {
	req := r.db.requestView(id)
	if req == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return req, nil
}

func (r *fakeRequestRepo) List(q repository.ListQuery) ([]model.TravelRequest, error) {
	var out []model.TravelRequest
	for id, req := range r.db.requests {
		switch q.Scope {
		case repository.ScopeManager:
			if req.EmployeeID == nil {
				continue
			}
			owner := r.db.employees[*req.EmployeeID]
			if owner == nil || owner.ManagerID == nil || *owner.ManagerID != q.ManagerID {
				continue
			}
		case repository.ScopeEmployee:
			if req.EmployeeID == nil || *req.EmployeeID != q.EmployeeID {
				continue
			}
		}

		if q.Status != "" && req.Status != q.Status {
			continue
		}
		if q.StartDate != "" && req.DateOfRequest < q.StartDate {
			continue
		}
		if q.EndDate != "" && req.DateOfRequest > q.EndDate {
			continue
		}
		if q.SearchName != "" {
			if req.EmployeeID == nil {
				continue
			}
			owner := r.db.employeeView(*req.EmployeeID)
			if owner == nil || !nameMatches(&owner.User, q.SearchName) {
				continue
			}
		}
		if q.SearchPurpose != "" &&
			!strings.Contains(strings.ToLower(req.Purpose), strings.ToLower(q.SearchPurpose)) {
			continue
		}

		out = append(out, *r.db.requestView(id))
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	descending := strings.HasPrefix(q.SortBy, "-")
	switch strings.TrimPrefix(q.SortBy, "-") {
	case "date_of_request":
		sort.SliceStable(out, func(i, j int) bool {
			if descending {
				return out[i].DateOfRequest > out[j].DateOfRequest
			}
			return out[i].DateOfRequest < out[j].DateOfRequest
		})
	case "from_date":
		sort.SliceStable(out, func(i, j int) bool {
			if descending {
				return out[i].FromDate > out[j].FromDate
			}
			return out[i].FromDate < out[j].FromDate
		})
	}

	return out, nil
}

func (r *fakeRequestRepo) Update(req *model.TravelRequest) error {
	if _, ok := r.db.requests[req.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *req
	stored.Employee = nil
	stored.Manager = nil
	r.db.requests[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) UpdateStatusFrom(id uint, from string, fields map[string]interface{}) (bool, error) {
	req, ok := r.db.requests[id]
	if !ok || req.Status != from {
		return false, nil
	}
	for key, value := range fields {
		switch key {
		case "status":
			req.Status = value.(string)
		case "date_of_approval":
			req.DateOfApproval = value.(string)
		case "date_of_rejection":
			req.DateOfRejection = value.(string)
		case "date_of_revert":
			req.DateOfRevert = value.(string)
		case "resubmission_request":
			req.ResubmissionRequest = value.(bool)
		case "is_resubmitted":
			req.IsResubmitted = value.(bool)
		case "message_from_manager":
			req.MessageFromManager = value.(string)
		case "message_from_admin":
			req.MessageFromAdmin = value.(string)
		}
	}
	return true, nil
}

func (r *fakeRequestRepo) Delete(id uint) error {
	delete(r.db.requests, id)
	return nil
}

func (r *fakeRequestRepo) ClearEmployeeRefs(employeeID uint) error {
	for _, req := range r.db.requests {
		if req.EmployeeID != nil && *req.EmployeeID == employeeID {
			req.EmployeeID = nil
		}
		if req.ManagerID != nil && *req.ManagerID == employeeID {
			req.ManagerID = nil
		}
	}
	return nil
}

func nameMatches(u *model.User, search string) bool {
	s := strings.ToLower(search)
	return strings.Contains(strings.ToLower(u.FirstName), s) ||
		strings.Contains(strings.ToLower(u.LastName), s)
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(discard{})
	return log
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// seedUser / seedEmployee build directory fixtures directly in the store.
func seedUser(db *memDB, username, first, last, email string, superuser bool) *model.User {
	u := &model.User{
		Username:    username,
		Password:    "$2a$10$fixturehashfixturehashfixturehashfixture",
		FirstName:   first,
		LastName:    last,
		Email:       email,
		IsSuperuser: superuser,
		IsActive:    true,
	}
	u.ID = db.id()
	db.users[u.ID] = u
	return u
}

func seedEmployee(db *memDB, user *model.User, isManager bool, managerID *uint) *model.Employee {
	emp := &model.Employee{
		UserID:      user.ID,
		IsManager:   isManager,
		ManagerID:   managerID,
		Status:      model.EmployeeStatusActive,
		DateCreated: "2024-01-01",
	}
	emp.ID = db.id()
	db.employees[emp.ID] = emp
	return emp
}
