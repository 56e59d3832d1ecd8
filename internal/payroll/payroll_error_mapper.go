package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/nateesoft/management-hrm-system/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniquePeriodConstraint = "uq_payroll_employee_period"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollNotFound
	}

	if errors.Is(err, ErrStatusChanged) {
		return payrollerrors.ErrInvalidStatusTransition
	}

	if isUniquePeriodViolation(err) {
		return payrollerrors.ErrPayrollAlreadyExists
	}

	return err
}

func isUniquePeriodViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == uniquePeriodConstraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniquePeriodConstraint)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
