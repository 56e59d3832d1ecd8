package benefit

import (
	"context"
	"database/sql"

	"github.com/nateesoft/management-hrm-system/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=benefit_repo.go -destination=mock/benefit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBenefit(ctx context.Context, b *Benefit) error
	FindBenefits(ctx context.Context, companyID string, isActive *bool) ([]Benefit, error)
	FindBenefitByID(ctx context.Context, companyID, id string) (*Benefit, error)
	UpdateBenefit(ctx context.Context, b *Benefit) error
	DeleteBenefit(ctx context.Context, companyID, id string) error
	CountActiveAssignments(ctx context.Context, companyID, benefitID string) (int64, error)
	Summarize(ctx context.Context, companyID string) ([]BenefitSummaryRow, error)
	FindEmployee(ctx context.Context, companyID, employeeID string) (*BenefitEmployee, error)
	FindAssignments(ctx context.Context, companyID string, filter EmployeeBenefitQueryFilter) ([]EmployeeBenefit, error)
	FindAssignmentByID(ctx context.Context, companyID, id string) (*EmployeeBenefit, error)
	ExistsActiveAssignment(ctx context.Context, companyID, employeeID, benefitID, excludeID string) (bool, error)
	CreateAssignment(ctx context.Context, eb *EmployeeBenefit) error
	UpdateAssignment(ctx context.Context, eb *EmployeeBenefit) error
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

const activeAssignmentsSelect = `benefits.*, (
	SELECT COUNT(*) FROM employee_benefits eb
	WHERE eb.benefit_id = benefits.id AND eb.is_active
) AS active_assignments`

func (r *repository) CreateBenefit(ctx context.Context, b *Benefit) error {
	return r.conn(ctx).Omit("ActiveAssignments").Create(b).Error
}

func (r *repository) FindBenefits(ctx context.Context, companyID string, isActive *bool) ([]Benefit, error) {
	db := r.conn(ctx).
		Select(activeAssignmentsSelect).
		Scopes(tenant.Scope(companyID))
	if isActive != nil {
		db = db.Where("is_active = ?", *isActive)
	}

	var benefits []Benefit
	err := db.Order("code ASC").Find(&benefits).Error
	return benefits, err
}

func (r *repository) FindBenefitByID(ctx context.Context, companyID, id string) (*Benefit, error) {
	var b Benefit
	err := r.conn(ctx).
		Select(activeAssignmentsSelect).
		Scopes(tenant.Scope(companyID)).
		First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) UpdateBenefit(ctx context.Context, b *Benefit) error {
	return r.conn(ctx).Omit("ActiveAssignments").Save(b).Error
}

func (r *repository) DeleteBenefit(ctx context.Context, companyID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Benefit{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountActiveAssignments(ctx context.Context, companyID, benefitID string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&EmployeeBenefit{}).
		Scopes(tenant.Scope(companyID)).
		Where("benefit_id = ? AND is_active = ?", benefitID, true).
		Count(&count).Error
	return count, err
}

func (r *repository) Summarize(ctx context.Context, companyID string) ([]BenefitSummaryRow, error) {
	var rows []BenefitSummaryRow
	err := r.conn(ctx).
		Table("benefits b").
		Select(`b.id AS benefit_id, b.code, b.name, b.type,
			COUNT(eb.id) AS active_assignments,
			COALESCE(SUM(eb.amount), 0) AS monthly_cost`).
		Joins("LEFT JOIN employee_benefits eb ON eb.benefit_id = b.id AND eb.is_active").
		Where("b.company_id = ?", companyID).
		Group("b.id, b.code, b.name, b.type").
		Order("b.code ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*BenefitEmployee, error) {
	var emp BenefitEmployee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		First(&emp, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindAssignments(ctx context.Context, companyID string, filter EmployeeBenefitQueryFilter) ([]EmployeeBenefit, error) {
	db := r.conn(ctx).
		Preload("Employee").
		Preload("Benefit").
		Scopes(tenant.Scope(companyID))

	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.BenefitID != nil {
		db = db.Where("benefit_id = ?", *filter.BenefitID)
	}
	if filter.IsActive != nil {
		db = db.Where("is_active = ?", *filter.IsActive)
	}

	var assignments []EmployeeBenefit
	err := db.Order("start_date DESC, created_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindAssignmentByID(ctx context.Context, companyID, id string) (*EmployeeBenefit, error) {
	var eb EmployeeBenefit
	err := r.conn(ctx).
		Preload("Employee").
		Preload("Benefit").
		Scopes(tenant.Scope(companyID)).
		First(&eb, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &eb, nil
}

func (r *repository) ExistsActiveAssignment(ctx context.Context, companyID, employeeID, benefitID, excludeID string) (bool, error) {
	db := r.conn(ctx).
		Model(&EmployeeBenefit{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND benefit_id = ? AND is_active = ?", employeeID, benefitID, true)
	if excludeID != "" {
		db = db.Where("id <> ?", excludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) CreateAssignment(ctx context.Context, eb *EmployeeBenefit) error {
	return r.conn(ctx).Omit("Employee", "Benefit").Create(eb).Error
}

func (r *repository) UpdateAssignment(ctx context.Context, eb *EmployeeBenefit) error {
	return r.conn(ctx).Omit("Employee", "Benefit").Save(eb).Error
}
