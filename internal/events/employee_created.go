package events

import "time"

const (
	EmployeeCreatedTopic = "hrm.employee.lifecycle.v1"
	EmployeeCreatedType  = "employee_created"
)

type EmployeeCreatedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	EmployeeID   string    `json:"employee_id"`
	EmployeeCode string    `json:"employee_code"`
	CompanyID    string    `json:"company_id"`
	DepartmentID string    `json:"department_id"`
	PositionID   string    `json:"position_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
