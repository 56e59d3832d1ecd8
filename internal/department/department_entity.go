package department

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"type:varchar(20);not null"`
	Name        string    `gorm:"size:255;not null"`
	Description *string   `gorm:"type:text"`
	IsActive    bool      `gorm:"not null;default:true"`

	// Filled by list and detail queries only.
	PositionCount int64 `gorm:"->;-:migration"`
	EmployeeCount int64 `gorm:"->;-:migration"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// DepartmentPosition is the part of a position a department lists.
type DepartmentPosition struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"type:uuid"`
	DepartmentID uuid.UUID      `gorm:"type:uuid"`
	Code         string         `gorm:"column:code"`
	Name         string         `gorm:"column:name"`
	Level        int            `gorm:"column:level"`
	IsActive     bool           `gorm:"column:is_active"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (DepartmentPosition) TableName() string {
	return "positions"
}

// DepartmentEmployee is the part of an employee a department lists.
type DepartmentEmployee struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID    uuid.UUID      `gorm:"type:uuid"`
	DepartmentID uuid.UUID      `gorm:"type:uuid"`
	PositionID   uuid.UUID      `gorm:"type:uuid"`
	EmployeeCode string         `gorm:"column:employee_code"`
	FirstName    string         `gorm:"column:first_name"`
	LastName     string         `gorm:"column:last_name"`
	Status       string         `gorm:"column:status"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (DepartmentEmployee) TableName() string {
	return "employees"
}

func (e DepartmentEmployee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}
