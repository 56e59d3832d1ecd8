package payroll_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newGormRepo(t *testing.T) (payroll.Repository, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)

	return payroll.NewRepository(gdb), db, mock
}

func TestPayrollRepository_FindByIDAndCompanyForUpdate_LocksRow(t *testing.T) {
	ctx := context.Background()
	repo, db, mock := newGormRepo(t)

	companyID := uuid.New()
	employeeID := uuid.New()
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "payrolls" WHERE .+ FOR UPDATE$`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "employee_id", "status", "base_salary"}).
			AddRow(id.String(), companyID.String(), employeeID.String(), payroll.StatusPending, "20000"))
	mock.ExpectQuery(`SELECT \* FROM "employees" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "employee_code", "first_name"}).
			AddRow(employeeID.String(), companyID.String(), "EMP-000001", "Somchai"))
	mock.ExpectRollback()

	tx, err := db.Begin()
	assert.NoError(t, err)

	got, err := repo.WithTx(tx).FindByIDAndCompanyForUpdate(ctx, companyID.String(), id.String())
	assert.NoError(t, err)
	assert.Equal(t, payroll.StatusPending, got.Status)
	if assert.NotNil(t, got.Employee) {
		assert.Equal(t, "EMP-000001", got.Employee.EmployeeCode)
	}

	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayrollRepository_Update_GuardsStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"status unchanged", 1, nil},
		{"status moved on", 0, payroll.ErrStatusChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, mock := newGormRepo(t)

			p := existingPayroll(uuid.New(), uuid.New(), 1, 2026, payroll.StatusCancelled)

			mock.ExpectExec(`UPDATE "payrolls" SET .+ WHERE .*status = \$\d+`).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := repo.Update(context.Background(), &p, payroll.StatusPending)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPayrollRepository_Delete_GuardsStatus(t *testing.T) {
	repo, _, mock := newGormRepo(t)
	companyID := uuid.NewString()
	id := uuid.NewString()

	mock.ExpectExec(`DELETE FROM "payrolls" WHERE .*status IN \(\$\d+,\$\d+\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), companyID, id, payroll.StatusPending, payroll.StatusCancelled)
	assert.ErrorIs(t, err, payroll.ErrStatusChanged)

	mock.ExpectExec(`DELETE FROM "payrolls" WHERE`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Delete(context.Background(), companyID, id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
