package benefit

import "github.com/shopspring/decimal"

type CreateBenefitRequest struct {
	Code          string           `json:"code" binding:"required,max=30"`
	Name          string           `json:"name" binding:"required"`
	Description   *string          `json:"description"`
	Type          string           `json:"type" binding:"required,oneof=HEALTH_INSURANCE TRANSPORTATION MEAL_ALLOWANCE HOUSING PHONE_ALLOWANCE BONUS OTHER"`
	DefaultAmount *decimal.Decimal `json:"default_amount"`
	IsActive      *bool            `json:"is_active"`
}

// UpdateBenefitRequest is a partial update; nil fields are left unchanged.
type UpdateBenefitRequest struct {
	Code          *string          `json:"code" binding:"omitempty,min=1,max=30"`
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	Description   *string          `json:"description"`
	Type          *string          `json:"type" binding:"omitempty,oneof=HEALTH_INSURANCE TRANSPORTATION MEAL_ALLOWANCE HOUSING PHONE_ALLOWANCE BONUS OTHER"`
	DefaultAmount *decimal.Decimal `json:"default_amount"`
	IsActive      *bool            `json:"is_active"`
}

type GetBenefitsFilterRequest struct {
	IsActive *bool `form:"is_active"`
}

type AssignBenefitRequest struct {
	EmployeeID string           `json:"employee_id" binding:"required"`
	BenefitID  string           `json:"benefit_id" binding:"required"`
	Amount     *decimal.Decimal `json:"amount"`
	StartDate  string           `json:"start_date"`
	EndDate    *string          `json:"end_date"`
	Notes      *string          `json:"notes"`
}

type UpdateEmployeeBenefitRequest struct {
	Amount    *decimal.Decimal `json:"amount"`
	StartDate *string          `json:"start_date"`
	EndDate   *string          `json:"end_date"`
	IsActive  *bool            `json:"is_active"`
	Notes     *string          `json:"notes"`
}

type GetEmployeeBenefitsFilterRequest struct {
	EmployeeID string `form:"employee_id"`
	BenefitID  string `form:"benefit_id"`
	IsActive   *bool  `form:"is_active"`
}

type EmployeeBenefitQueryFilter struct {
	EmployeeID *string
	BenefitID  *string
	IsActive   *bool
}

type BenefitResponse struct {
	ID                string          `json:"id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Description       *string         `json:"description,omitempty"`
	Type              string          `json:"type"`
	DefaultAmount     decimal.Decimal `json:"default_amount"`
	IsActive          bool            `json:"is_active"`
	ActiveAssignments int64           `json:"active_assignments"`
}

type BenefitEmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code"`
	FullName     string `json:"full_name"`
	PositionID   string `json:"position_id"`
}

type EmployeeBenefitResponse struct {
	ID         string                   `json:"id"`
	EmployeeID string                   `json:"employee_id"`
	BenefitID  string                   `json:"benefit_id"`
	Amount     decimal.Decimal          `json:"amount"`
	StartDate  string                   `json:"start_date"`
	EndDate    *string                  `json:"end_date,omitempty"`
	IsActive   bool                     `json:"is_active"`
	Notes      *string                  `json:"notes,omitempty"`
	Employee   *BenefitEmployeeResponse `json:"employee,omitempty"`
	Benefit    *BenefitResponse         `json:"benefit,omitempty"`
}

type BenefitSummaryItem struct {
	BenefitID         string          `json:"benefit_id"`
	Code              string          `json:"code"`
	Name              string          `json:"name"`
	Type              string          `json:"type"`
	ActiveAssignments int64           `json:"active_assignments"`
	MonthlyCost       decimal.Decimal `json:"monthly_cost"`
}

type BenefitSummaryResponse struct {
	Items                  []BenefitSummaryItem `json:"items"`
	TotalActiveAssignments int64                `json:"total_active_assignments"`
	TotalMonthlyCost       decimal.Decimal      `json:"total_monthly_cost"`
}
