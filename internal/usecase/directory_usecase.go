package usecase

import (
	"strings"
	"time"
	"travel-request-backend/internal/apperror"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DirectoryUsecase covers the admin-side provisioning operations: employee
// accounts, manager reassignment and admin accounts.
type DirectoryUsecase struct {
	users     repository.UserRepository
	employees repository.EmployeeRepository
	requests  repository.RequestRepository
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewDirectoryUsecase(users repository.UserRepository, employees repository.EmployeeRepository, requests repository.RequestRepository, log logrus.FieldLogger) *DirectoryUsecase {
	return &DirectoryUsecase{
		users:     users,
		employees: employees,
		requests:  requests,
		log:       log,
		now:       time.Now,
	}
}

type CreateEmployeeInput struct {
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsActive  *bool  `json:"is_active"`
	IsManager bool   `json:"is_manager"`
	Status    string `json:"employee_status"`
	ManagerID *uint  `json:"manager"`
}

// UpdateEmployeeInput is a partial update split across the identity and the
// profile. ManagerIDSet distinguishes "leave alone" from "clear the link".
type UpdateEmployeeInput struct {
	Username     *string
	FirstName    *string
	LastName     *string
	Email        *string
	IsActive     *bool
	IsManager    *bool
	Status       *string
	ManagerID    *uint
	ManagerIDSet bool
}

type CreateAdminInput struct {
	Username  string `json:"username"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

// CreateEmployee provisions the identity and the employee profile together.
// The manager link is resolved before anything is written so a bad manager id
// cannot leave an orphaned user behind.
func (u *DirectoryUsecase) CreateEmployee(in CreateEmployeeInput) (*model.Employee, error) {
	if err := checkCredentials(in.Username, in.Password1, in.Password2); err != nil {
		return nil, err
	}

	status := strings.ToLower(in.Status)
	if status == "" {
		status = model.EmployeeStatusActive
	}
	if !model.ValidEmployeeStatus(status) {
		return nil, apperror.New(apperror.CodeValidation, "Invalid employee status")
	}

	if in.ManagerID != nil {
		if _, err := u.employees.GetByID(*in.ManagerID); err != nil {
			if repository.IsNotFound(err) {
				return nil, apperror.New(apperror.CodeValidation, "Manager not found")
			}
			return nil, err
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}

	user := &model.User{
		Username:  in.Username,
		Password:  string(hashed),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		IsActive:  active,
	}
	if err := u.users.Create(user); err != nil {
		return nil, apperror.New(apperror.CodeValidation, "Could not create user: "+err.Error())
	}

	emp := &model.Employee{
		UserID:      user.ID,
		IsManager:   in.IsManager,
		ManagerID:   in.ManagerID,
		Status:      status,
		DateCreated: u.now().Format(dateLayout),
	}
	if err := u.employees.Create(emp); err != nil {
		// Keep identity and profile creation atomic from the caller's view
		u.users.Delete(user.ID)
		return nil, err
	}

	u.log.WithField("employee_id", emp.ID).Info("employee created")
	emp.User = *user
	return emp, nil
}

// UpdateEmployee splits the partial payload into user fields and employee
// fields and applies each side independently. A manager reassignment is
// revalidated against the directory.
func (u *DirectoryUsecase) UpdateEmployee(id uint, in UpdateEmployeeInput) error {
	emp, err := u.GetEmployee(id)
	if err != nil {
		return err
	}

	if in.ManagerIDSet {
		if in.ManagerID != nil {
			if *in.ManagerID == emp.ID {
				return apperror.New(apperror.CodeValidation, "Employee cannot be their own manager")
			}
			if _, err := u.employees.GetByID(*in.ManagerID); err != nil {
				if repository.IsNotFound(err) {
					return apperror.New(apperror.CodeValidation, "Manager not found")
				}
				return err
			}
		}
		emp.ManagerID = in.ManagerID
		emp.Manager = nil
	}

	if in.IsManager != nil {
		emp.IsManager = *in.IsManager
	}
	if in.Status != nil {
		status := strings.ToLower(*in.Status)
		if !model.ValidEmployeeStatus(status) {
			return apperror.New(apperror.CodeValidation, "Invalid employee status")
		}
		emp.Status = status
	}

	if err := u.employees.Update(emp); err != nil {
		return err
	}

	user, err := u.users.GetByID(emp.UserID)
	if err != nil {
		return err
	}
	if in.Username != nil {
		user.Username = *in.Username
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if err := u.users.Update(user); err != nil {
		return err
	}

	u.log.WithField("employee_id", id).Info("employee updated")
	return nil
}

// DeleteEmployee removes the profile and its identity. Requests referencing
// the employee keep their rows with the link nulled, and subordinates lose
// their manager link the same way. Never cascades into requests.
func (u *DirectoryUsecase) DeleteEmployee(id uint) error {
	emp, err := u.GetEmployee(id)
	if err != nil {
		return err
	}

	if err := u.requests.ClearEmployeeRefs(id); err != nil {
		return err
	}
	if err := u.employees.ClearManagerRefs(id); err != nil {
		return err
	}
	if err := u.employees.Delete(id); err != nil {
		return err
	}
	if err := u.users.Delete(emp.UserID); err != nil {
		return err
	}

	u.log.WithField("employee_id", id).Info("employee removed")
	return nil
}

func (u *DirectoryUsecase) CreateAdmin(in CreateAdminInput) (*model.Admin, error) {
	if err := checkCredentials(in.Username, in.Password1, in.Password2); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password1), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:    in.Username,
		Password:    string(hashed),
		IsSuperuser: true,
		IsActive:    true,
	}
	if err := u.users.Create(user); err != nil {
		return nil, apperror.New(apperror.CodeValidation, "Could not create user: "+err.Error())
	}

	admin := &model.Admin{UserID: user.ID}
	if err := u.users.CreateAdmin(admin); err != nil {
		u.users.Delete(user.ID)
		return nil, err
	}

	u.log.WithField("admin_id", admin.ID).Info("admin created")
	return admin, nil
}

func (u *DirectoryUsecase) ListEmployees(searchName string) ([]model.Employee, error) {
	return u.employees.List(searchName)
}

func (u *DirectoryUsecase) GetEmployee(id uint) (*model.Employee, error) {
	emp, err := u.employees.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.CodeNotFound, "Employee not found")
		}
		return nil, err
	}
	return emp, nil
}

type EmployeeDetails struct {
	ID           uint   `json:"id"`
	EmployeeName string `json:"employee_name"`
	ManagerName  string `json:"manager_name"`
}

// Me returns the logged-in employee's display summary.
func (u *DirectoryUsecase) Me(actor Identity) (*EmployeeDetails, error) {
	if actor.EmployeeID == 0 {
		return nil, apperror.New(apperror.CodeNotFound, "Employee details not found")
	}

	emp, err := u.employees.GetByID(actor.EmployeeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.CodeNotFound, "Employee details not found")
		}
		return nil, err
	}

	details := &EmployeeDetails{
		ID:           emp.ID,
		EmployeeName: emp.User.FullName(),
		ManagerName:  "No Manager",
	}
	if emp.Manager != nil {
		details.ManagerName = emp.Manager.User.FullName()
	}
	return details, nil
}

func checkCredentials(username, password1, password2 string) error {
	if username == "" || password1 == "" {
		return apperror.New(apperror.CodeValidation, "Username and password are required")
	}
	if password1 != password2 {
		return apperror.New(apperror.CodeValidation, "Passwords do not match")
	}
	return nil
}
