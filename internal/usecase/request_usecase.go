package usecase

import (
	"fmt"
	"time"
	"travel-request-backend/internal/apperror"
	"travel-request-backend/internal/mailer"
	"travel-request-backend/internal/model"
	"travel-request-backend/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

var validate = validator.New()

// RequestUsecase is the lifecycle engine: it owns the status transitions, the
// role and ownership guards, and decides whether and what to notify. The mailer
// and logger are injected so tests can run against fakes.
type RequestUsecase struct {
	requests  repository.RequestRepository
	employees repository.EmployeeRepository
	mail      mailer.Mailer
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewRequestUsecase(requests repository.RequestRepository, employees repository.EmployeeRepository, mail mailer.Mailer, log logrus.FieldLogger) *RequestUsecase {
	return &RequestUsecase{
		requests:  requests,
		employees: employees,
		mail:      mail,
		log:       log,
		now:       time.Now,
	}
}

type CreateRequestInput struct {
	Purpose           string `json:"purpose_of_travel" validate:"required"`
	Mode              string `json:"mode_of_travel" validate:"required,oneof=flight train own_vehicle ship"`
	FromDate          string `json:"from_date" validate:"required,datetime=2006-01-02"`
	ToDate            string `json:"to_date" validate:"required,datetime=2006-01-02"`
	FromWhere         string `json:"from_where" validate:"required"`
	ToWhere           string `json:"to_where" validate:"required"`
	Lodging           bool   `json:"lodging"`
	LodgingInfo       string `json:"lodging_info"`
	AdditionalRequest string `json:"additional_request"`
	AdditionalInfo    string `json:"additional_info"`
}

// EditRequestInput is a partial update; nil fields are left untouched.
type EditRequestInput struct {
	Purpose           *string `json:"purpose_of_travel"`
	Mode              *string `json:"mode_of_travel"`
	FromDate          *string `json:"from_date"`
	ToDate            *string `json:"to_date"`
	FromWhere         *string `json:"from_where"`
	ToWhere           *string `json:"to_where"`
	Lodging           *bool   `json:"lodging"`
	LodgingInfo       *string `json:"lodging_info"`
	AdditionalRequest *string `json:"additional_request"`
	AdditionalInfo    *string `json:"additional_info"`
}

type ListFilters struct {
	Status        string
	StartDate     string
	EndDate       string
	SearchName    string
	SearchPurpose string
	SortBy        string
}

// CreateRequest files a new travel request for the acting employee. The owner
// and the owner's manager are attached server-side and the status is forced to
// submitted; the assigned manager is notified.
func (u *RequestUsecase) CreateRequest(actor Identity, in CreateRequestInput) (*model.TravelRequest, error) {
	emp, err := u.employees.GetByID(actor.EmployeeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.CodeForbidden, "Employee does not exist")
		}
		return nil, err
	}
	if emp.IsManager {
		return nil, apperror.New(apperror.CodeForbidden, "Manager cannot make requests")
	}
	if emp.ManagerID == nil || emp.Manager == nil {
		return nil, apperror.New(apperror.CodeValidation, "No manager assigned to this employee")
	}

	if err := validate.Struct(in); err != nil {
		return nil, apperror.New(apperror.CodeValidation, err.Error())
	}

	req := &model.TravelRequest{
		EmployeeID:        &emp.ID,
		ManagerID:         emp.ManagerID,
		Purpose:           in.Purpose,
		Mode:              in.Mode,
		FromDate:          in.FromDate,
		ToDate:            in.ToDate,
		FromWhere:         in.FromWhere,
		ToWhere:           in.ToWhere,
		Lodging:           in.Lodging,
		LodgingInfo:       in.LodgingInfo,
		AdditionalRequest: in.AdditionalRequest,
		AdditionalInfo:    in.AdditionalInfo,
		DateOfRequest:     u.now().Format(dateLayout),
		Status:            model.StatusSubmitted,
	}

	if err := validateInvariants(req); err != nil {
		return nil, err
	}

	if err := u.requests.Create(req); err != nil {
		return nil, err
	}

	u.notify(emp.Manager.User.Email,
		fmt.Sprintf("Request submitted from employee-%d", emp.ID),
		"I have submitted a request for travel. Please look into the details. Thanks & Regards.")

	return req, nil
}

// List returns the requests visible to the actor. Admins see everything,
// managers see their subtree, employees see their own. Zero matches is
// reported as not-found, not as an empty success.
func (u *RequestUsecase) List(actor Identity, f ListFilters) ([]model.TravelRequest, error) {
	q := repository.ListQuery{
		Status:        f.Status,
		StartDate:     f.StartDate,
		EndDate:       f.EndDate,
		SearchName:    f.SearchName,
		SearchPurpose: f.SearchPurpose,
		SortBy:        f.SortBy,
	}

	switch actor.Role {
	case RoleAdmin:
		q.Scope = repository.ScopeAll
	case RoleManager:
		q.Scope = repository.ScopeManager
		q.ManagerID = actor.EmployeeID
	case RoleEmployee:
		q.Scope = repository.ScopeEmployee
		q.EmployeeID = actor.EmployeeID
	default:
		return nil, apperror.New(apperror.CodeForbidden, "Access denied")
	}

	list, err := u.requests.List(q)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, apperror.New(apperror.CodeNotFound, "No requests found")
	}
	return list, nil
}

// View has no ownership check: any authenticated principal may read any
// request by id. Matches observed behavior; flagged in DESIGN.md.
func (u *RequestUsecase) View(id uint) (*model.TravelRequest, error) {
	req, err := u.requests.GetByID(id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.New(apperror.CodeNotFound, "Request not found")
		}
		return nil, err
	}
	return req, nil
}

// ManagerAction handles approve, reject and revert. Only the manager the
// request is addressed to may act, and only while the request is submitted.
func (u *RequestUsecase) ManagerAction(actor Identity, id uint, action, note string) error {
	req, err := u.View(id)
	if err != nil {
		return err
	}

	if req.Status != model.StatusSubmitted {
		return apperror.New(apperror.CodeInvalidTransition, "Cannot proceed with the action")
	}

	if req.ManagerID == nil || *req.ManagerID != actor.EmployeeID {
		return apperror.New(apperror.CodeForbidden, "You are not the manager of this request")
	}

	today := u.now().Format(dateLayout)
	fields := map[string]interface{}{
		"message_from_manager": note,
	}

	var status string
	switch action {
	case "approve":
		status = model.StatusApproved
		fields["date_of_approval"] = today
	case "reject":
		status = model.StatusRejected
		fields["date_of_rejection"] = today
	case "revert":
		status = model.StatusReverted
		fields["date_of_revert"] = today
		fields["resubmission_request"] = true
	default:
		return apperror.New(apperror.CodeInvalidTransition, "Invalid action")
	}
	fields["status"] = status

	// Re-check the source status at write time so two concurrent manager
	// actions cannot both land.
	ok, err := u.requests.UpdateStatusFrom(id, model.StatusSubmitted, fields)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.CodeInvalidTransition, "Cannot proceed with the action")
	}

	if req.Employee != nil {
		u.notify(req.Employee.User.Email,
			fmt.Sprintf("Request %s", status),
			fmt.Sprintf("Note: %s\nYour request for travel has been %s. Thanks & Regards.", note, status))
	}

	return nil
}

// Submit moves a draft or reverted request back into submitted, by its owner
// only. A resubmission is marked and announced as such to the manager.
func (u *RequestUsecase) Submit(actor Identity, id uint, action string) error {
	req, err := u.View(id)
	if err != nil {
		return err
	}

	if req.EmployeeID == nil {
		return apperror.New(apperror.CodeForbidden, "You do not have an employee owning this")
	}
	if *req.EmployeeID != actor.EmployeeID {
		return apperror.New(apperror.CodeForbidden, "You do not have permission to perform this action")
	}

	if action != "submit" {
		return apperror.New(apperror.CodeInvalidTransition, "Invalid action")
	}
	if req.Status != model.StatusToSubmit && req.Status != model.StatusReverted {
		return apperror.New(apperror.CodeInvalidTransition, "Invalid action")
	}

	resubmission := req.Status == model.StatusReverted

	fields := map[string]interface{}{"status": model.StatusSubmitted}
	if resubmission {
		fields["is_resubmitted"] = true
	}

	ok, err := u.requests.UpdateStatusFrom(id, req.Status, fields)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.CodeInvalidTransition, "Invalid action")
	}

	if req.Manager != nil {
		subject := fmt.Sprintf("Request submitted from employee-%d", actor.EmployeeID)
		body := "I have submitted a request for travel. Please look into the details. Thanks & Regards."
		if resubmission {
			subject = fmt.Sprintf("Request resubmitted from employee-%d", actor.EmployeeID)
			body = "I have resubmitted a request for travel. Please look into the details. Thanks & Regards."
		}
		u.notify(req.Manager.User.Email, subject, body)
	}

	return nil
}

// Close is the admin-only terminal transition on an approved request.
func (u *RequestUsecase) Close(actor Identity, id uint, action, note string) error {
	req, err := u.View(id)
	if err != nil {
		return err
	}

	if req.Status != model.StatusApproved {
		return apperror.New(apperror.CodeInvalidTransition, "Request not approved yet")
	}

	if action == "" {
		return apperror.New(apperror.CodeValidation, "No action provided")
	}
	if action != "close" {
		return apperror.New(apperror.CodeInvalidTransition, "Invalid action")
	}

	fields := map[string]interface{}{
		"status":             model.StatusClosed,
		"message_from_admin": note,
	}
	ok, err := u.requests.UpdateStatusFrom(id, model.StatusApproved, fields)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.New(apperror.CodeInvalidTransition, "Request not approved yet")
	}

	if req.Employee != nil {
		u.notify(req.Employee.User.Email,
			"Request closed after approval",
			fmt.Sprintf("Note: %s\nYour request for travel has been closed. Thanks & Regards.", note))
	}

	return nil
}

// Edit applies a partial update by the owning employee. The field invariants
// are re-checked; the status is deliberately not (observed behavior, see
// DESIGN.md).
func (u *RequestUsecase) Edit(actor Identity, id uint, in EditRequestInput) (*model.TravelRequest, error) {
	req, err := u.View(id)
	if err != nil {
		return nil, err
	}

	if req.EmployeeID == nil || *req.EmployeeID != actor.EmployeeID {
		return nil, apperror.New(apperror.CodeForbidden, "You do not have permission to edit this request")
	}

	if in.Purpose != nil {
		req.Purpose = *in.Purpose
	}
	if in.Mode != nil {
		req.Mode = *in.Mode
	}
	if in.FromDate != nil {
		req.FromDate = *in.FromDate
	}
	if in.ToDate != nil {
		req.ToDate = *in.ToDate
	}
	if in.FromWhere != nil {
		req.FromWhere = *in.FromWhere
	}
	if in.ToWhere != nil {
		req.ToWhere = *in.ToWhere
	}
	if in.Lodging != nil {
		req.Lodging = *in.Lodging
	}
	if in.LodgingInfo != nil {
		req.LodgingInfo = *in.LodgingInfo
	}
	if in.AdditionalRequest != nil {
		req.AdditionalRequest = *in.AdditionalRequest
	}
	if in.AdditionalInfo != nil {
		req.AdditionalInfo = *in.AdditionalInfo
	}

	if err := validateInvariants(req); err != nil {
		return nil, err
	}

	if err := u.requests.Update(req); err != nil {
		return nil, err
	}
	return req, nil
}

// Delete removes a request, owner only. Once orphaned the former owner's
// identity can no longer delete it.
func (u *RequestUsecase) Delete(actor Identity, id uint) error {
	req, err := u.View(id)
	if err != nil {
		return err
	}

	if req.EmployeeID == nil {
		return apperror.New(apperror.CodeForbidden, "You do not have an employee owning this")
	}
	if *req.EmployeeID != actor.EmployeeID {
		return apperror.New(apperror.CodeForbidden, "You do not have permission to perform this action")
	}

	return u.requests.Delete(id)
}

// validateInvariants holds the field-level rules shared by create and edit:
// strict date ordering, lodging details when lodging is requested, and the
// self-approval ban.
func validateInvariants(req *model.TravelRequest) error {
	from, err := time.Parse(dateLayout, req.FromDate)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "from_date must be a valid YYYY-MM-DD date")
	}
	to, err := time.Parse(dateLayout, req.ToDate)
	if err != nil {
		return apperror.New(apperror.CodeValidation, "to_date must be a valid YYYY-MM-DD date")
	}
	if !from.Before(to) {
		return apperror.New(apperror.CodeValidation, "From date must be earlier than To date")
	}

	if req.Lodging && req.LodgingInfo == "" {
		return apperror.New(apperror.CodeValidation, "Lodging details are required when lodging is requested")
	}

	switch req.Mode {
	case model.ModeFlight, model.ModeTrain, model.ModeOwnVehicle, model.ModeShip:
	default:
		return apperror.New(apperror.CodeValidation, "Invalid mode of travel")
	}

	if req.EmployeeID != nil && req.ManagerID != nil && *req.EmployeeID == *req.ManagerID {
		return apperror.New(apperror.CodeValidation, "Employee cannot be their own manager")
	}

	return nil
}

// notify is fire-after-commit: the transition already persisted, so a failed
// send is logged and swallowed.
func (u *RequestUsecase) notify(to, subject, body string) {
	if to == "" {
		return
	}
	if err := u.mail.Send(to, subject, body); err != nil {
		u.log.WithError(err).WithField("to", to).Warn("notification dispatch failed")
	}
}
