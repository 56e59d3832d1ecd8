package position

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nateesoft/management-hrm-system/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=position_repo.go -destination=mock/position_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, pos *Position) error
	FindAllByCompany(ctx context.Context, companyID string, filter PositionQueryFilter) ([]Position, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error)
	Update(ctx context.Context, pos *Position) error
	Delete(ctx context.Context, companyID string, id string) error
	FindDepartment(ctx context.Context, companyID string, departmentID string) (*PositionDepartment, error)
	CountEmployees(ctx context.Context, companyID string, id string) (int64, error)
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

const employeeCountSelect = `positions.*,
	(SELECT COUNT(*) FROM employees e
		WHERE e.position_id = positions.id AND e.deleted_at IS NULL) AS employee_count`

func (r *repository) Create(ctx context.Context, pos *Position) error {
	return r.conn(ctx).Omit("Department", "EmployeeCount").Create(pos).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter PositionQueryFilter) ([]Position, error) {
	db := r.conn(ctx).
		Select(employeeCountSelect).
		Preload("Department").
		Scopes(tenant.Scope(companyID))

	if q := strings.TrimSpace(filter.Search); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}
	if filter.DepartmentID != "" {
		db = db.Where("department_id = ?", filter.DepartmentID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var positions []Position
	err := db.Order("level ASC, code ASC").Find(&positions).Error
	return positions, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Position, error) {
	var pos Position
	err := r.conn(ctx).
		Select(employeeCountSelect).
		Preload("Department").
		Scopes(tenant.Scope(companyID)).
		First(&pos, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *repository) Update(ctx context.Context, pos *Position) error {
	return r.conn(ctx).Omit("Department", "EmployeeCount").Save(pos).Error
}

// Delete is a soft delete.
func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Position{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindDepartment(ctx context.Context, companyID string, departmentID string) (*PositionDepartment, error) {
	var dept PositionDepartment
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&dept, "id = ?", departmentID).Error
	if err != nil {
		return nil, err
	}
	return &dept, nil
}

func (r *repository) CountEmployees(ctx context.Context, companyID string, id string) (int64, error) {
	var n int64
	err := r.conn(ctx).
		Model(&positionEmployee{}).
		Scopes(tenant.Scope(companyID)).
		Where("position_id = ?", id).
		Count(&n).Error
	return n, err
}
