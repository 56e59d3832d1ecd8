package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/nateesoft/management-hrm-system/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueCodeConstraint  = "uq_employee_code"
	uniqueEmailConstraint = "uq_employee_email"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case uniqueCodeConstraint:
				return employeeerrors.ErrEmployeeCodeAlreadyExists
			case uniqueEmailConstraint:
				return employeeerrors.ErrEmployeeAlreadyExists
			}
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueCodeConstraint) {
		return employeeerrors.ErrEmployeeCodeAlreadyExists
	}
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, uniqueEmailConstraint) {
		return employeeerrors.ErrEmployeeAlreadyExists
	}

	return err
}
