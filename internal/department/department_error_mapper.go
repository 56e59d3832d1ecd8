package department

import (
	"errors"
	"strings"

	departmenterrors "github.com/nateesoft/management-hrm-system/internal/department/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const uniqueCodeConstraint = "uq_department_code"

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return departmenterrors.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" && pgErr.ConstraintName == uniqueCodeConstraint {
			return departmenterrors.ErrDepartmentCodeAlreadyExists
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") && strings.Contains(msg, uniqueCodeConstraint) {
		return departmenterrors.ErrDepartmentCodeAlreadyExists
	}
	return err
}
