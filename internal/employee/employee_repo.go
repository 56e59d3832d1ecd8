package employee

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByCompany(ctx context.Context, companyID string, filter EmployeeQueryFilter) ([]Employee, int64, error)
	FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, companyID string, id string) error
	FindPosition(ctx context.Context, companyID string, positionID string) (*EmployeePosition, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("Department", "Position").Create(empl).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter EmployeeQueryFilter) ([]Employee, int64, error) {
	db := r.conn(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(companyID))

	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(employee_code) LIKE ? OR LOWER(COALESCE(email, '')) LIKE ?",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.DepartmentID != "" {
		db = db.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.PositionID != "" {
		db = db.Where("position_id = ?", filter.PositionID)
	}
	if filter.EmploymentType != "" {
		db = db.Where("employment_type = ?", filter.EmploymentType)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var empls []Employee
	query := db.Preload("Department").Preload("Position").Order("employee_code ASC")
	if filter.Limit > 0 {
		query = query.Offset(filter.Offset).Limit(filter.Limit)
	}
	if err := query.Find(&empls).Error; err != nil {
		return nil, 0, err
	}
	return empls, total, nil
}

func (r *repository) FindOptionsByCompany(ctx context.Context, companyID string) ([]Employee, error) {
	var empls []Employee
	err := r.conn(ctx).
		Select("id", "employee_code", "first_name", "last_name", "position_id", "base_salary").
		Preload("Position").
		Scopes(tenant.Scope(companyID)).
		Where("status = ?", StatusActive).
		Order("employee_code ASC").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Employee, error) {
	var empl Employee
	err := r.conn(ctx).
		Preload("Department").
		Preload("Position").
		Scopes(tenant.Scope(companyID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.conn(ctx).Omit("Department", "Position").Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindPosition loads a position with its department so placement can be
// checked in one round trip.
func (r *repository) FindPosition(ctx context.Context, companyID string, positionID string) (*EmployeePosition, error) {
	var pos EmployeePosition
	err := r.conn(ctx).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&pos, "id = ?", positionID).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}
