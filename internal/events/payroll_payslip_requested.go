package events

import "time"

const (
	PayrollPayslipRequestedTopic = "hrm.payroll.payslip.requested.v1"
	PayrollPayslipRequestedType  = "payroll_payslip_requested"
)

// PayrollPayslipRequestedEvent is queued when a payroll is paid so the
// consumer can render its payslip.
type PayrollPayslipRequestedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	PayrollID   string    `json:"payroll_id"`
	CompanyID   string    `json:"company_id"`
	RequestedBy string    `json:"requested_by"`
	OccurredAt  time.Time `json:"occurred_at"`
}
