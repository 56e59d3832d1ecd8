package department

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, dept *Department) error
	FindAllByCompany(ctx context.Context, companyID string, filter DepartmentQueryFilter) ([]Department, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error)
	Update(ctx context.Context, dept *Department) error
	Delete(ctx context.Context, companyID string, id string) error
	CountReferences(ctx context.Context, companyID string, id string) (positions int64, employees int64, err error)
	FindPositions(ctx context.Context, companyID string, departmentID string) ([]DepartmentPosition, error)
	FindEmployees(ctx context.Context, companyID string, departmentID string) ([]DepartmentEmployee, error)
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

const countsSelect = `departments.*,
	(SELECT COUNT(*) FROM positions p
		WHERE p.department_id = departments.id AND p.deleted_at IS NULL) AS position_count,
	(SELECT COUNT(*) FROM employees e
		WHERE e.department_id = departments.id AND e.deleted_at IS NULL) AS employee_count`

func (r *repository) Create(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Omit("PositionCount", "EmployeeCount").Create(dept).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter DepartmentQueryFilter) ([]Department, error) {
	db := r.conn(ctx).
		Select(countsSelect).
		Scopes(tenant.Scope(companyID))

	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var depts []Department
	err := db.Order("code ASC").Find(&depts).Error
	return depts, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Department, error) {
	var dept Department
	err := r.conn(ctx).
		Select(countsSelect).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) Update(ctx context.Context, dept *Department) error {
	return r.conn(ctx).Omit("PositionCount", "EmployeeCount").Save(dept).Error
}

// Delete is a soft delete.
func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Department{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountReferences(ctx context.Context, companyID string, id string) (int64, int64, error) {
	var positions, employees int64
	err := r.conn(ctx).
		Model(&DepartmentPosition{}).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", id).
		Count(&positions).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.conn(ctx).
		Model(&DepartmentEmployee{}).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", id).
		Count(&employees).Error
	if err != nil {
		return 0, 0, err
	}
	return positions, employees, nil
}

func (r *repository) FindPositions(ctx context.Context, companyID string, departmentID string) ([]DepartmentPosition, error) {
	var positions []DepartmentPosition
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Order("level ASC, code ASC").
		Find(&positions).Error
	return positions, err
}

func (r *repository) FindEmployees(ctx context.Context, companyID string, departmentID string) ([]DepartmentEmployee, error) {
	var employees []DepartmentEmployee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("department_id = ?", departmentID).
		Order("employee_code ASC").
		Find(&employees).Error
	return employees, err
}
