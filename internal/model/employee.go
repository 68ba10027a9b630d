package model

import "gorm.io/gorm"

const (
	EmployeeStatusActive     = "active"
	EmployeeStatusInactive   = "inactive"
	EmployeeStatusTerminated = "terminated"
)

func ValidEmployeeStatus(s string) bool {
	return s == EmployeeStatusActive || s == EmployeeStatusInactive || s == EmployeeStatusTerminated
}

type Employee struct {
	gorm.Model
	UserID      uint   `json:"user_id" gorm:"unique;not null"`
	IsManager   bool   `json:"is_manager" gorm:"default:false"`
	ManagerID   *uint  `json:"manager_id"` // Self-reference, nulled when the manager is removed
	Status      string `json:"status" gorm:"default:active"`
	DateCreated string `json:"date_created"` // YYYY-MM-DD

	User    User      `json:"user" gorm:"foreignKey:UserID"`
	Manager *Employee `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
}

// Admin is a capability marker attached to a superuser account.
type Admin struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"unique;not null"`

	User User `json:"user" gorm:"foreignKey:UserID"`
}
