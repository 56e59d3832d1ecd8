package payroll

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nateesoft/management-hrm-system/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const EmployeeStatusActive = "ACTIVE"

// ErrStatusChanged is returned by guarded writes when the row no longer has
// the status the caller read.
var ErrStatusChanged = errors.New("payroll status changed concurrently")

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, payroll *Payroll) error
	FindAllByCompany(ctx context.Context, companyID string, filter PayrollQueryFilter) ([]Payroll, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error)
	FindByIDAndCompanyForUpdate(ctx context.Context, companyID string, id string) (*Payroll, error)
	FindByPeriod(ctx context.Context, companyID string, month, year int) ([]Payroll, error)
	Update(ctx context.Context, payroll *Payroll, fromStatus string) error
	Delete(ctx context.Context, companyID string, id string, statuses ...string) error
	ExistsForPeriod(ctx context.Context, companyID string, employeeID string, month, year int) (bool, error)
	FindEmployee(ctx context.Context, companyID string, employeeID string) (*PayrollEmployee, error)
	FindActiveEmployees(ctx context.Context, companyID string) ([]PayrollEmployee, error)
	FindEmployeesByIDs(ctx context.Context, companyID string, ids []string) ([]PayrollEmployee, error)
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

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, payroll *Payroll) error {
	return r.conn(ctx).Omit("Employee").Create(payroll).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter PayrollQueryFilter) ([]Payroll, error) {
	db := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID))

	if filter.EmployeeID != nil {
		db = db.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.Month != nil {
		db = db.Where("month = ?", *filter.Month)
	}
	if filter.Year != nil {
		db = db.Where("year = ?", *filter.Year)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}

	var payrolls []Payroll
	err := db.Order("year DESC, month DESC, created_at DESC").Find(&payrolls).Error
	return payrolls, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		First(&payroll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &payroll, nil
}

// FindByIDAndCompanyForUpdate row-locks the payroll until the bound
// transaction ends. The employee is loaded by a second, unlocked query.
func (r *repository) FindByIDAndCompanyForUpdate(ctx context.Context, companyID string, id string) (*Payroll, error) {
	var payroll Payroll
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(tenant.Scope(companyID)).
		First(&payroll, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	var emp PayrollEmployee
	err = r.conn(ctx).First(&emp, "id = ?", payroll.EmployeeID).Error
	switch {
	case err == nil:
		payroll.Employee = &emp
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}
	return &payroll, nil
}

func (r *repository) FindByPeriod(ctx context.Context, companyID string, month, year int) ([]Payroll, error) {
	var payrolls []Payroll
	err := r.conn(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(companyID)).
		Where("month = ? AND year = ?", month, year).
		Order("created_at ASC").
		Find(&payrolls).Error
	return payrolls, err
}

// Update writes every column, but only while the stored status still equals
// fromStatus.
func (r *repository) Update(ctx context.Context, payroll *Payroll, fromStatus string) error {
	res := r.conn(ctx).
		Model(payroll).
		Scopes(tenant.Scope(payroll.CompanyID.String())).
		Where("status = ?", fromStatus).
		Select("*").
		Omit("Employee", "CreatedAt").
		Updates(payroll)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

// Delete removes the payroll. With statuses given, the row must still be in
// one of them.
func (r *repository) Delete(ctx context.Context, companyID string, id string, statuses ...string) error {
	db := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id)
	if len(statuses) > 0 {
		db = db.Where("status IN ?", statuses)
	}

	res := db.Delete(&Payroll{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if len(statuses) > 0 {
			return ErrStatusChanged
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ExistsForPeriod ignores cancelled records, matching uq_payroll_employee_period.
func (r *repository) ExistsForPeriod(ctx context.Context, companyID string, employeeID string, month, year int) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Model(&Payroll{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("month = ? AND year = ?", month, year).
		Where("status <> ?", StatusCancelled).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindEmployee(ctx context.Context, companyID string, employeeID string) (*PayrollEmployee, error) {
	var emp PayrollEmployee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		First(&emp, "id = ?", employeeID).Error
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (r *repository) FindActiveEmployees(ctx context.Context, companyID string) ([]PayrollEmployee, error) {
	var emps []PayrollEmployee
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Where("status = ?", EmployeeStatusActive).
		Order("employee_code ASC").
		Find(&emps).Error
	return emps, err
}

func (r *repository) FindEmployeesByIDs(ctx context.Context, companyID string, ids []string) ([]PayrollEmployee, error) {
	var emps []PayrollEmployee
	if len(ids) == 0 {
		return emps, nil
	}
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Where("id IN ?", ids).
		Order("employee_code ASC").
		Find(&emps).Error
	return emps, err
}
