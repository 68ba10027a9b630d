package usecase

import (
	"time"
	"travel-request-backend/config"
	"travel-request-backend/internal/apperror"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthUsecase struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
}

func NewAuthUsecase(users repository.UserRepository, employees repository.EmployeeRepository) *AuthUsecase {
	return &AuthUsecase{users: users, employees: employees}
}

// Login authenticates a credential pair against one of the three portals.
// Valid credentials carried to the wrong portal are still rejected, with a
// hint naming the right one.
func (u *AuthUsecase) Login(portal, username, password string) (string, error) {
	user, err := u.users.GetByUsername(username)
	if err != nil {
		if repository.IsNotFound(err) {
			return "", apperror.New(apperror.CodeUnauthenticated, "User does not exist")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperror.New(apperror.CodeUnauthenticated, "Invalid username or password")
	}

	emp, err := u.employees.GetByUserID(user.ID)
	if err != nil && !repository.IsNotFound(err) {
		return "", err
	}

	switch portal {
	case RoleAdmin:
		if !user.IsSuperuser {
			return "", apperror.New(apperror.CodeForbidden, "Please login from Manager/Employee Portal")
		}
	case RoleManager:
		if emp == nil {
			return "", apperror.New(apperror.CodeForbidden, "This user is not associated with an employee record")
		}
		if !emp.IsManager {
			return "", apperror.New(apperror.CodeForbidden, "Please login from Employee/Admin Portal")
		}
	case RoleEmployee:
		if emp == nil {
			return "", apperror.New(apperror.CodeForbidden, "You don't have an employee record")
		}
		if emp.IsManager || user.IsSuperuser {
			return "", apperror.New(apperror.CodeForbidden, "Please login from Manager/Admin Portal")
		}
	}

	return generateToken(user)
}

func generateToken(user *model.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}
