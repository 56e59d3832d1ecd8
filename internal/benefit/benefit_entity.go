package benefit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeHealthInsurance = "HEALTH_INSURANCE"
	TypeTransportation  = "TRANSPORTATION"
	TypeMealAllowance   = "MEAL_ALLOWANCE"
	TypeHousing         = "HOUSING"
	TypePhoneAllowance  = "PHONE_ALLOWANCE"
	TypeBonus           = "BONUS"
	TypeOther           = "OTHER"
)

// Benefit is a catalog entry. DefaultAmount only pre-fills new assignments.
type Benefit struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Code          string          `gorm:"type:varchar(30);not null"`
	Name          string          `gorm:"not null"`
	Description   *string         `gorm:"type:text"`
	Type          string          `gorm:"type:varchar(30);not null"`
	DefaultAmount decimal.Decimal `gorm:"type:numeric;not null;default:0"`
	IsActive      bool            `gorm:"not null;default:true"`

	// ActiveAssignments is filled by list queries only.
	ActiveAssignments int64 `gorm:"->;-:migration"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeBenefit links an employee to a benefit. Amount is copied at
// assignment time and never follows later catalog changes.
type EmployeeBenefit struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	EmployeeID uuid.UUID        `gorm:"type:uuid;not null;index"`
	Employee   *BenefitEmployee `gorm:"foreignKey:EmployeeID;references:ID"`
	BenefitID  uuid.UUID        `gorm:"type:uuid;not null;index"`
	Benefit    *Benefit         `gorm:"foreignKey:BenefitID;references:ID"`

	Amount    decimal.Decimal `gorm:"type:numeric;not null"`
	StartDate time.Time       `gorm:"type:date;not null"`
	EndDate   *time.Time      `gorm:"type:date"`
	IsActive  bool            `gorm:"not null;default:true"`
	Notes     *string         `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BenefitEmployee is the part of an employee the benefit module reads.
type BenefitEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID `gorm:"type:uuid"`
	EmployeeCode string    `gorm:"column:employee_code"`
	FirstName    string    `gorm:"column:first_name"`
	LastName     string    `gorm:"column:last_name"`
	PositionID   uuid.UUID `gorm:"type:uuid;column:position_id"`
	Status       string    `gorm:"column:status"`
}

func (BenefitEmployee) TableName() string {
	return "employees"
}

func (e BenefitEmployee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// BenefitSummaryRow aggregates active assignments per catalog entry.
type BenefitSummaryRow struct {
	BenefitID         uuid.UUID
	Code              string
	Name              string
	Type              string
	ActiveAssignments int64
	MonthlyCost       decimal.Decimal
}

func IsValidType(t string) bool {
	switch t {
	case TypeHealthInsurance, TypeTransportation, TypeMealAllowance,
		TypeHousing, TypePhoneAllowance, TypeBonus, TypeOther:
		return true
	}
	return false
}
