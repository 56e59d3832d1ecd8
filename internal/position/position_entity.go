package position

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Position struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID           `gorm:"type:uuid;index"`
	DepartmentID  uuid.UUID           `gorm:"type:uuid;index;not null"`
	Department    *PositionDepartment `gorm:"foreignKey:DepartmentID"`
	Code          string              `gorm:"type:varchar(20);not null"`
	Name          string              `gorm:"not null"`
	Description   *string             `gorm:"type:text"`
	Level         int                 `gorm:"not null;default:1"`
	BaseSalary    *decimal.Decimal    `gorm:"type:numeric"`
	IsActive      bool                `gorm:"not null;default:true"`
	EmployeeCount int64               `gorm:"->;-:migration"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// PositionDepartment is the slice of a department a position needs.
type PositionDepartment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID `gorm:"type:uuid"`
	Code      string
	Name      string
	IsActive  bool
	DeletedAt gorm.DeletedAt
}

func (PositionDepartment) TableName() string {
	return "departments"
}

// positionEmployee only backs the reference count.
type positionEmployee struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	PositionID uuid.UUID
	DeletedAt  gorm.DeletedAt
}

func (positionEmployee) TableName() string {
	return "employees"
}
