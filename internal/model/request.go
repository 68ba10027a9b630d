package model

import "gorm.io/gorm"

const (
	StatusToSubmit  = "to_submit"
	StatusSubmitted = "submitted"
	StatusRejected  = "rejected"
	StatusReverted  = "reverted"
	StatusApproved  = "approved"
	StatusClosed    = "closed"
)

const (
	ModeFlight     = "flight"
	ModeTrain      = "train"
	ModeOwnVehicle = "own_vehicle"
	ModeShip       = "ship"
)

// TravelRequest is owned by at most one employee and addressed to at most one
// manager. Both links are soft-orphaned: deleting the referenced employee nulls
// the column instead of cascading into the request row.
type TravelRequest struct {
	gorm.Model
	EmployeeID *uint  `json:"employee_id"`
	ManagerID  *uint  `json:"manager_id"`
	Purpose    string `json:"purpose_of_travel"`
	Mode       string `json:"mode_of_travel"`
	FromDate   string `json:"from_date"` // YYYY-MM-DD
	ToDate     string `json:"to_date"`
	FromWhere  string `json:"from_where"`
	ToWhere    string `json:"to_where"`
	Lodging    bool   `json:"lodging" gorm:"default:false"`
	LodgingInfo string `json:"lodging_info"`

	AdditionalRequest  string `json:"additional_request"`
	AdditionalInfo     string `json:"additional_info"`
	MessageFromManager string `json:"message_from_manager"`
	MessageFromAdmin   string `json:"message_from_admin"`

	DateOfRequest   string `json:"date_of_request"` // Stamped once at creation
	DateOfApproval  string `json:"date_of_approval"`
	DateOfRejection string `json:"date_of_rejection"`
	DateOfRevert    string `json:"date_of_revert"`

	ResubmissionRequest bool   `json:"resubmission_request" gorm:"default:false"`
	IsResubmitted       bool   `json:"is_resubmitted" gorm:"default:false"`
	Status              string `json:"status_of_request" gorm:"default:to_submit"`

	Employee *Employee `json:"employee,omitempty" gorm:"foreignKey:EmployeeID"`
	Manager  *Employee `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
}
