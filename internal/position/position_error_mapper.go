package position

import (
	"errors"
	"strings"

	positionerrors "github.com/nateesoft/management-hrm-system/internal/position/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueCodeConstraint    = "uq_position_code"
	departmentFKConstraint  = "fk_positions_department"
	foreignKeyViolationCode = "23503"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return positionerrors.ErrPositionNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == uniqueCodeConstraint:
			return positionerrors.ErrPositionCodeAlreadyExists
		case pgErr.Code == foreignKeyViolationCode && pgErr.ConstraintName == departmentFKConstraint:
			return positionerrors.ErrDepartmentNotFound
		}
		return err
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") && strings.Contains(msg, uniqueCodeConstraint) {
		return positionerrors.ErrPositionCodeAlreadyExists
	}
	return err
}
