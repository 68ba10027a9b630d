package repository

import (
	"strings"
	"travel-request-backend/internal/model"

	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(emp *model.Employee) error
	GetByID(id uint) (*model.Employee, error)
	GetByUserID(userID uint) (*model.Employee, error)
	List(searchName string) ([]model.Employee, error)
	Update(emp *model.Employee) error
	Delete(id uint) error
	// ClearManagerRefs nulls the manager link of every subordinate of the given
	// manager. Called before the manager row is removed.
	ClearManagerRefs(managerID uint) error
}

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db}
}

func (r *employeeRepository) Create(emp *model.Employee) error {
	return r.db.Create(emp).Error
}

func (r *employeeRepository) GetByID(id uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.Preload("User").Preload("Manager.User").First(&emp, id).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) GetByUserID(userID uint) (*model.Employee, error) {
	var emp model.Employee
	err := r.db.Preload("User").Preload("Manager.User").
		Where("user_id = ?", userID).First(&emp).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *employeeRepository) List(searchName string) ([]model.Employee, error) {
	tx := r.db.Model(&model.Employee{}).Preload("User").Preload("Manager.User")

	if searchName != "" {
		pattern := "%" + strings.ToLower(searchName) + "%"
		tx = tx.Joins("JOIN users ON users.id = employees.user_id").
			Where("LOWER(users.first_name) LIKE ? OR LOWER(users.last_name) LIKE ?", pattern, pattern)
	}

	var list []model.Employee
	err := tx.Find(&list).Error
	return list, err
}

func (r *employeeRepository) Update(emp *model.Employee) error {
	return r.db.Save(emp).Error
}

func (r *employeeRepository) Delete(id uint) error {
	return r.db.Delete(&model.Employee{}, id).Error
}

func (r *employeeRepository) ClearManagerRefs(managerID uint) error {
	return r.db.Model(&model.Employee{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}
