package employee

import "github.com/shopspring/decimal"

type CreateEmployeeRequest struct {
	EmployeeCode   string          `json:"employee_code" binding:"omitempty,max=20"`
	FirstName      string          `json:"first_name" binding:"required"`
	LastName       string          `json:"last_name" binding:"required"`
	Nickname       *string         `json:"nickname"`
	Email          *string         `json:"email" binding:"omitempty,email"`
	Phone          *string         `json:"phone"`
	Address        *string         `json:"address"`
	DateOfBirth    string          `json:"date_of_birth"`
	Gender         *string         `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	NationalID     *string         `json:"national_id"`
	DepartmentID   string          `json:"department_id" binding:"required"`
	PositionID     string          `json:"position_id" binding:"required"`
	EmploymentType string          `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERN"`
	HireDate       string          `json:"hire_date" binding:"required"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	BankName       *string         `json:"bank_name"`
	BankAccount    *string         `json:"bank_account"`
	ImageURL       *string         `json:"image_url"`
}

// UpdateEmployeeRequest is a partial update; nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	FirstName      *string          `json:"first_name" binding:"omitempty,min=1"`
	LastName       *string          `json:"last_name" binding:"omitempty,min=1"`
	Nickname       *string          `json:"nickname"`
	Email          *string          `json:"email" binding:"omitempty,email"`
	Phone          *string          `json:"phone"`
	Address        *string          `json:"address"`
	Gender         *string          `json:"gender" binding:"omitempty,oneof=MALE FEMALE OTHER"`
	DepartmentID   *string          `json:"department_id"`
	PositionID     *string          `json:"position_id"`
	EmploymentType *string          `json:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERN"`
	Status         *string          `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	BaseSalary     *decimal.Decimal `json:"base_salary"`
	BankName       *string          `json:"bank_name"`
	BankAccount    *string          `json:"bank_account"`
	EndDate        *string          `json:"end_date"`
	ImageURL       *string          `json:"image_url"`
}

type GetEmployeesFilterRequest struct {
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE ON_LEAVE TERMINATED"`
	DepartmentID   string `form:"department_id"`
	PositionID     string `form:"position_id"`
	EmploymentType string `form:"employment_type" binding:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERN"`
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
}

type EmployeeQueryFilter struct {
	Search         string
	Status         string
	DepartmentID   string
	PositionID     string
	EmploymentType string
	Offset         int
	Limit          int
}

type EmployeeResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	EmployeeCode   string          `json:"employee_code"`
	FirstName      string          `json:"first_name"`
	LastName       string          `json:"last_name"`
	FullName       string          `json:"full_name"`
	Nickname       *string         `json:"nickname,omitempty"`
	Email          *string         `json:"email,omitempty"`
	Phone          *string         `json:"phone,omitempty"`
	Address        *string         `json:"address,omitempty"`
	DateOfBirth    *string         `json:"date_of_birth,omitempty"`
	Gender         *string         `json:"gender,omitempty"`
	NationalID     *string         `json:"national_id,omitempty"`
	DepartmentID   string          `json:"department_id"`
	DepartmentName string          `json:"department_name,omitempty"`
	PositionID     string          `json:"position_id"`
	PositionName   string          `json:"position_name,omitempty"`
	EmploymentType string          `json:"employment_type"`
	Status         string          `json:"status"`
	BaseSalary     decimal.Decimal `json:"base_salary"`
	BankName       *string         `json:"bank_name,omitempty"`
	BankAccount    *string         `json:"bank_account,omitempty"`
	HireDate       string          `json:"hire_date"`
	EndDate        *string         `json:"end_date,omitempty"`
	ImageURL       *string         `json:"image_url,omitempty"`
}

// EmployeeOptionResponse feeds select boxes in payroll and benefit forms.
type EmployeeOptionResponse struct {
	ID           string          `json:"id"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	PositionName string          `json:"position_name"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
}

type GenerateCodeResponse struct {
	EmployeeCode string `json:"employee_code"`
}
