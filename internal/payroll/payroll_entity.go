package payroll

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payroll is one salary record per employee and calendar month. Money is kept
// unrounded; rounding happens when it is shown.
type Payroll struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;not null;index:idx_payroll_company_period"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Employee   *PayrollEmployee `gorm:"foreignKey:EmployeeID;references:ID"`

	Month int `gorm:"type:smallint;not null;index:idx_payroll_company_period"`
	Year  int `gorm:"type:smallint;not null;index:idx_payroll_company_period"`

	BaseSalary      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	OvertimeHours   decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	OvertimeRate    decimal.Decimal `gorm:"type:numeric;not null;default:1.5"`
	OvertimeAmount  decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Bonus           decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Allowances      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Commission      decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	SocialSecurity  decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	Tax             decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	OtherDeductions decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	GrossSalary     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	DeductionNotes  *string         `gorm:"type:text"`
	Notes           *string         `gorm:"type:text"`

	Status        string  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	PaymentMethod *string `gorm:"type:varchar(20)"`
	PaymentRef    *string `gorm:"type:varchar(100)"`

	CreatedBy  uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt          time.Time
	UpdatedAt          time.Time
	ApprovedAt         *time.Time
	PaidAt             *time.Time `gorm:"index"`
	CancelledAt        *time.Time
	PayslipURL         *string
	PayslipGeneratedAt *time.Time
}

// PayrollEmployee is the part of an employee the payroll module reads.
type PayrollEmployee struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID       `gorm:"type:uuid"`
	EmployeeCode string          `gorm:"column:employee_code"`
	FirstName    string          `gorm:"column:first_name"`
	LastName     string          `gorm:"column:last_name"`
	BaseSalary   decimal.Decimal `gorm:"column:base_salary;type:numeric"`
	Status       string          `gorm:"column:status"`
	BankName     *string         `gorm:"column:bank_name"`
	BankAccount  *string         `gorm:"column:bank_account"`
}

func (PayrollEmployee) TableName() string {
	return "employees"
}

func (e PayrollEmployee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Label identifies the employee in generation error messages.
func (e PayrollEmployee) Label() string {
	if e.EmployeeCode != "" {
		return e.EmployeeCode
	}
	return e.ID.String()
}
