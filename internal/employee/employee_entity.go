package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusActive     = "ACTIVE"
	StatusInactive   = "INACTIVE"
	StatusOnLeave    = "ON_LEAVE"
	StatusTerminated = "TERMINATED"
)

const (
	EmploymentFullTime = "FULL_TIME"
	EmploymentPartTime = "PART_TIME"
	EmploymentContract = "CONTRACT"
	EmploymentIntern   = "INTERN"
)

type Employee struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID       `gorm:"type:uuid;index"`
	EmployeeCode   string          `gorm:"type:varchar(20);not null"`
	FirstName      string          `gorm:"not null"`
	LastName       string          `gorm:"not null"`
	Nickname       *string
	Email          *string
	Phone          *string
	Address        *string         `gorm:"type:text"`
	DateOfBirth    *time.Time      `gorm:"type:date"`
	Gender         *string         `gorm:"type:varchar(10)"`
	NationalID     *string         `gorm:"type:varchar(20)"`
	DepartmentID   uuid.UUID           `gorm:"type:uuid;index;not null"`
	Department     *EmployeeDepartment `gorm:"foreignKey:DepartmentID"`
	PositionID     uuid.UUID           `gorm:"type:uuid;index;not null"`
	Position       *EmployeePosition   `gorm:"foreignKey:PositionID"`
	EmploymentType string          `gorm:"type:varchar(20);not null;default:'FULL_TIME'"`
	Status         string          `gorm:"type:varchar(20);not null;default:'ACTIVE';index"`
	BaseSalary     decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	BankName       *string
	BankAccount    *string
	HireDate       time.Time  `gorm:"type:date;not null"`
	EndDate        *time.Time `gorm:"type:date"`
	ImageURL       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

func (e Employee) PositionName() string {
	if e.Position == nil {
		return ""
	}
	return e.Position.Name
}

func (e Employee) DepartmentName() string {
	if e.Department == nil {
		return ""
	}
	return e.Department.Name
}

// EmployeeDepartment and EmployeePosition are read models over the catalog
// tables owned by the department and position packages.
type EmployeeDepartment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid"`
	Code      string
	Name      string
	IsActive  bool
	DeletedAt gorm.DeletedAt
}

func (EmployeeDepartment) TableName() string {
	return "departments"
}

type EmployeePosition struct {
	ID           uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID           `gorm:"type:uuid"`
	DepartmentID uuid.UUID           `gorm:"type:uuid"`
	Department   *EmployeeDepartment `gorm:"foreignKey:DepartmentID"`
	Code         string
	Name         string
	BaseSalary   *decimal.Decimal `gorm:"type:numeric"`
	IsActive     bool
	DeletedAt    gorm.DeletedAt
}

func (EmployeePosition) TableName() string {
	return "positions"
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusOnLeave, StatusTerminated:
		return true
	}
	return false
}

func IsValidEmploymentType(t string) bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}
