package payroll

import "github.com/shopspring/decimal"

// SalaryInput carries the per period figures the calculator needs. Amounts
// accept JSON numbers or strings.
type SalaryInput struct {
	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
	Bonus           decimal.Decimal `json:"bonus"`
	Allowances      decimal.Decimal `json:"allowances"`
	Commission      decimal.Decimal `json:"commission"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	Tax             decimal.Decimal `json:"tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	DeductionNotes  *string         `json:"deduction_notes"`
}

type PreviewPayrollRequest struct {
	SalaryInput
}

type CreatePayrollRequest struct {
	EmployeeID string  `json:"employee_id" binding:"required,uuid"`
	Month      int     `json:"month" binding:"required,min=1,max=12"`
	Year       int     `json:"year" binding:"required,min=2000,max=2100"`
	Notes      *string `json:"notes"`
	SalaryInput
}

type UpdatePayrollRequest struct {
	Notes *string `json:"notes"`
	SalaryInput
}

type GeneratePayrollRequest struct {
	Month       int      `json:"month" binding:"required,min=1,max=12"`
	Year        int      `json:"year" binding:"required,min=2000,max=2100"`
	EmployeeIDs []string `json:"employee_ids" binding:"omitempty,dive,uuid"`
}

type MarkPaidRequest struct {
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=BANK_TRANSFER CASH CHEQUE"`
	PaymentRef    *string `json:"payment_ref"`
}

type GetPayrollsFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Month      int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year       int    `form:"year" binding:"omitempty,min=2000,max=2100"`
	Status     string `form:"status"`
	Period     string `form:"period"` // YYYY-MM, overrides month and year
}

type PayrollQueryFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
	Status     *string
}

type CalculationResponse struct {
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
}

type PreviewPayrollResponse struct {
	Calculation             CalculationResponse `json:"calculation"`
	Rounded                 CalculationResponse `json:"rounded"`
	SuggestedSocialSecurity decimal.Decimal     `json:"suggested_social_security"`
}

type GenerateResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors"`
}

type PayrollEmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
}

type PayrollResponse struct {
	ID         string                   `json:"id"`
	CompanyID  string                   `json:"company_id"`
	EmployeeID string                   `json:"employee_id"`
	Employee   *PayrollEmployeeResponse `json:"employee,omitempty"`
	Month      int                      `json:"month"`
	Year       int                      `json:"year"`

	BaseSalary      decimal.Decimal `json:"base_salary"`
	OvertimeHours   decimal.Decimal `json:"overtime_hours"`
	OvertimeRate    decimal.Decimal `json:"overtime_rate"`
	OvertimeAmount  decimal.Decimal `json:"overtime_amount"`
	Bonus           decimal.Decimal `json:"bonus"`
	Allowances      decimal.Decimal `json:"allowances"`
	Commission      decimal.Decimal `json:"commission"`
	SocialSecurity  decimal.Decimal `json:"social_security"`
	Tax             decimal.Decimal `json:"tax"`
	OtherDeductions decimal.Decimal `json:"other_deductions"`
	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	DeductionNotes  *string         `json:"deduction_notes,omitempty"`
	Notes           *string         `json:"notes,omitempty"`

	Status        string  `json:"status"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	PaymentRef    *string `json:"payment_ref,omitempty"`

	CreatedBy          string  `json:"created_by"`
	ApprovedBy         *string `json:"approved_by,omitempty"`
	ApprovedAt         *string `json:"approved_at,omitempty"`
	PaidAt             *string `json:"paid_at,omitempty"`
	CancelledAt        *string `json:"cancelled_at,omitempty"`
	PayslipURL         *string `json:"payslip_url,omitempty"`
	PayslipGeneratedAt *string `json:"payslip_generated_at,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

type PayrollSummary struct {
	TotalRecords     int             `json:"total_records"`
	TotalGrossSalary decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary   decimal.Decimal `json:"total_net_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	PaidCount        int             `json:"paid_count"`
	PendingCount     int             `json:"pending_count"`
	ApprovedCount    int             `json:"approved_count"`
	CancelledCount   int             `json:"cancelled_count"`
}

type MonthlyPayrollResponse struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Records []PayrollResponse `json:"records"`
	Summary PayrollSummary    `json:"summary"`
}
