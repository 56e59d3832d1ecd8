package position

import "github.com/shopspring/decimal"

type CreatePositionRequest struct {
	DepartmentID string           `json:"department_id" binding:"required"`
	Code         string           `json:"code" binding:"required,max=20"`
	Name         string           `json:"name" binding:"required"`
	Description  *string          `json:"description"`
	Level        *int             `json:"level"`
	BaseSalary   *decimal.Decimal `json:"base_salary"`
	IsActive     *bool            `json:"is_active"`
}

// UpdatePositionRequest is a partial update; nil fields are left unchanged.
type UpdatePositionRequest struct {
	DepartmentID *string          `json:"department_id"`
	Code         *string          `json:"code" binding:"omitempty,min=1,max=20"`
	Name         *string          `json:"name" binding:"omitempty,min=1"`
	Description  *string          `json:"description"`
	Level        *int             `json:"level"`
	BaseSalary   *decimal.Decimal `json:"base_salary"`
	IsActive     *bool            `json:"is_active"`
}

type GetPositionsFilterRequest struct {
	Search       string `form:"search"`
	DepartmentID string `form:"department_id"`
	IsActive     *bool  `form:"is_active"`
}

func (f GetPositionsFilterRequest) unfiltered() bool {
	return f.Search == "" && f.DepartmentID == "" && f.IsActive == nil
}

type PositionQueryFilter struct {
	Search       string
	DepartmentID string
	IsActive     *bool
}

type PositionResponse struct {
	ID             string           `json:"id"`
	CompanyID      string           `json:"company_id"`
	DepartmentID   string           `json:"department_id"`
	DepartmentName string           `json:"department_name,omitempty"`
	Code           string           `json:"code"`
	Name           string           `json:"name"`
	Description    *string          `json:"description,omitempty"`
	Level          int              `json:"level"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
	IsActive       bool             `json:"is_active"`
	EmployeeCount  int64            `json:"employee_count"`
	CreatedAt      string           `json:"created_at,omitempty"`
	UpdatedAt      string           `json:"updated_at,omitempty"`
}
