package repository

import (
	"errors"
	"strings"
	"travel-request-backend/internal/model"

	"gorm.io/gorm"
)

type Scope string

const (
	ScopeAll      Scope = "all"      // Admin: every request
	ScopeManager  Scope = "manager"  // Requests whose owner reports to ManagerID
	ScopeEmployee Scope = "employee" // Requests owned by EmployeeID
)

// ListQuery carries the caller's scope plus the optional filters and sort of the
// listing endpoints. Dates are inclusive YYYY-MM-DD bounds against date_of_request;
// a missing bound leaves that side open.
type ListQuery struct {
	Scope      Scope
	ManagerID  uint
	EmployeeID uint

	Status        string
	StartDate     string
	EndDate       string
	SearchName    string // case-insensitive substring of requester first or last name
	SearchPurpose string // employee listing only
	SortBy        string // whitelisted field, optional leading '-' for descending
}

// orderClause maps a sort_by value to an ORDER BY clause. Unknown fields are
// ignored (empty clause) rather than rejected.
func orderClause(sortBy string) string {
	if sortBy == "" {
		return ""
	}
	descending := strings.HasPrefix(sortBy, "-")
	field := strings.TrimPrefix(sortBy, "-")

	switch field {
	case "date_of_request", "from_date":
	default:
		return ""
	}

	if descending {
		return field + " desc"
	}
	return field
}

type RequestRepository interface {
	Create(req *model.TravelRequest) error
	GetByID(id uint) (*model.TravelRequest, error)
	List(q ListQuery) ([]model.TravelRequest, error)
	Update(req *model.TravelRequest) error
	// UpdateStatusFrom applies fields only while the row is still in the given
	// status. Returns false when the status changed underneath the caller.
	UpdateStatusFrom(id uint, from string, fields map[string]interface{}) (bool, error)
	Delete(id uint) error
	// ClearEmployeeRefs nulls the employee and manager links held by requests
	// that reference the given employee (soft orphaning).
	ClearEmployeeRefs(employeeID uint) error
}

type requestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{db}
}

func (r *requestRepository) Create(req *model.TravelRequest) error {
	return r.db.Create(req).Error
}

func (r *requestRepository) GetByID(id uint) (*model.TravelRequest, error) {
	var req model.TravelRequest
	err := r.db.Preload("Employee.User").Preload("Manager.User").First(&req, id).Error
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepository) List(q ListQuery) ([]model.TravelRequest, error) {
	tx := r.db.Model(&model.TravelRequest{}).
		Preload("Employee.User").
		Preload("Manager.User")

	switch q.Scope {
	case ScopeManager:
		// Join to the owning employee to scope by their manager link
		tx = tx.Joins("JOIN employees ON employees.id = travel_requests.employee_id").
			Where("employees.manager_id = ?", q.ManagerID)
	case ScopeEmployee:
		tx = tx.Where("travel_requests.employee_id = ?", q.EmployeeID)
	}

	if q.Status != "" {
		tx = tx.Where("travel_requests.status = ?", q.Status)
	}
	if q.StartDate != "" {
		tx = tx.Where("travel_requests.date_of_request >= ?", q.StartDate)
	}
	if q.EndDate != "" {
		tx = tx.Where("travel_requests.date_of_request <= ?", q.EndDate)
	}
	if q.SearchName != "" {
		pattern := "%" + strings.ToLower(q.SearchName) + "%"
		tx = tx.Joins("JOIN employees AS owners ON owners.id = travel_requests.employee_id").
			Joins("JOIN users ON users.id = owners.user_id").
			Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?", pattern, pattern)
	}
	if q.SearchPurpose != "" {
		tx = tx.Where("LOWER(travel_requests.purpose) LIKE ?", "%"+strings.ToLower(q.SearchPurpose)+"%")
	}

	if clause := orderClause(q.SortBy); clause != "" {
		tx = tx.Order("travel_requests." + clause)
	}

	var list []model.TravelRequest
	err := tx.Find(&list).Error
	return list, err
}

func (r *requestRepository) Update(req *model.TravelRequest) error {
	return r.db.Save(req).Error
}

func (r *requestRepository) UpdateStatusFrom(id uint, from string, fields map[string]interface{}) (bool, error) {
	res := r.db.Model(&model.TravelRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(fields)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *requestRepository) Delete(id uint) error {
	return r.db.Delete(&model.TravelRequest{}, id).Error
}

func (r *requestRepository) ClearEmployeeRefs(employeeID uint) error {
	if err := r.db.Model(&model.TravelRequest{}).
		Where("employee_id = ?", employeeID).
		Update("employee_id", nil).Error; err != nil {
		return err
	}
	return r.db.Model(&model.TravelRequest{}).
		Where("manager_id = ?", employeeID).
		Update("manager_id", nil).Error
}

// IsNotFound reports whether the error is gorm's missing-record error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
