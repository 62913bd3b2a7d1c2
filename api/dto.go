/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the
  engine's types from the external contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data
  carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/leave-board/leave"
	"github.com/warp/leave-board/roster"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// LeaveDTO represents a leave record in API responses. Category is the
// classified logical category; the raw type tag stays alongside it.
type LeaveDTO struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name,omitempty"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Reason    string `json:"reason,omitempty"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Status    string `json:"status"`
}

// CreateLeaveRequest is the request to create a leave record.
type CreateLeaveRequest struct {
	UserID    string `json:"user_id,omitempty"` // elevated viewers only; defaults to the viewer
	Type      string `json:"type"`
	Reason    string `json:"reason"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// EmployeeDTO represents a directory entry.
type EmployeeDTO struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	DisplayName string `json:"display_name"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// CalendarCellDTO is one cell of the week-aligned month grid. Blank
// leading/trailing cells have an empty date and no records.
type CalendarCellDTO struct {
	Date             string     `json:"date,omitempty"`
	Records          []LeaveDTO `json:"records,omitempty"`
	RepresentativeID string     `json:"representative_id,omitempty"`
}

// CalendarDTO is the full calendar derivation for one month.
type CalendarDTO struct {
	Year  int                 `json:"year"`
	Month int                 `json:"month"`
	Weeks [][]CalendarCellDTO `json:"weeks"`
}

// SummaryDTO carries the per-category monthly counts and day totals.
type SummaryDTO struct {
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Vacation     int    `json:"vacation"`
	Sick         int    `json:"sick"`
	Leave        int    `json:"leave"`
	VacationDays string `json:"vacation_days"`
	SickDays     string `json:"sick_days"`
	LeaveDays    string `json:"leave_days"`
}

// TransportStateDTO reports the realtime client's connection state.
type TransportStateDTO struct {
	Connected bool `json:"connected"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toLeaveDTO(r leave.Record, names map[leave.UserID]string) LeaveDTO {
	return LeaveDTO{
		ID:        string(r.ID),
		UserID:    string(r.UserID),
		UserName:  names[r.UserID],
		Type:      r.Type,
		Category:  leave.Classify(r).String(),
		Reason:    r.Reason,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Status:    string(r.Status),
	}
}

func toLeaveDTOs(records []leave.Record, names map[leave.UserID]string) []LeaveDTO {
	dtos := make([]LeaveDTO, len(records))
	for i, r := range records {
		dtos[i] = toLeaveDTO(r, names)
	}
	return dtos
}

func toEmployeeDTO(e roster.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:          string(e.ID),
		Username:    e.Username,
		FirstName:   e.FirstName,
		LastName:    e.LastName,
		DisplayName: e.DisplayName(),
	}
}
