package usecase

import (
	"travel-request-backend/internal/apperror"
	"travel-request-backend/internal/repository"
)

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
	RoleNone     = "none"
)

// Identity is the resolved role profile of an authenticated principal. It is
// resolved once per request by the auth middleware and passed explicitly into
// every usecase call; nothing downstream re-derives the role.
type Identity struct {
	UserID     uint
	Username   string
	Role       string
	EmployeeID uint // 0 when the principal has no employee profile
}

type IdentityUsecase struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
}

func NewIdentityUsecase(users repository.UserRepository, employees repository.EmployeeRepository) *IdentityUsecase {
	return &IdentityUsecase{users: users, employees: employees}
}

// Resolve maps a user id to exactly one role: superusers are admins, employees
// with the manager flag are managers, other employees are employees. A missing
// profile is not a fault here; it resolves to RoleNone and the role gates deny
// access downstream.
func (u *IdentityUsecase) Resolve(userID uint) (Identity, error) {
	user, err := u.users.GetByID(userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return Identity{}, apperror.New(apperror.CodeUnauthenticated, "User not found")
		}
		return Identity{}, err
	}

	ident := Identity{UserID: user.ID, Username: user.Username, Role: RoleNone}

	emp, err := u.employees.GetByUserID(user.ID)
	if err != nil && !repository.IsNotFound(err) {
		return Identity{}, err
	}
	if emp != nil {
		ident.EmployeeID = emp.ID
	}

	switch {
	case user.IsSuperuser:
		ident.Role = RoleAdmin
	case emp != nil && emp.IsManager:
		ident.Role = RoleManager
	case emp != nil:
		ident.Role = RoleEmployee
	}

	return ident, nil
}
