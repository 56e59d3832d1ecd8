package benefit

import (
	"errors"
	"strings"

	benefiterrors "github.com/nateesoft/management-hrm-system/internal/benefit/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueCodeConstraint       = "uq_benefit_code"
	uniqueAssignmentConstraint = "uq_employee_benefit_active"
)

func mapBenefitError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return benefiterrors.ErrBenefitNotFound
	}
	if isUniqueViolation(err, uniqueCodeConstraint) {
		return benefiterrors.ErrBenefitCodeAlreadyExists
	}
	return err
}

func mapAssignmentError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return benefiterrors.ErrEmployeeBenefitNotFound
	}
	if isUniqueViolation(err, uniqueAssignmentConstraint) {
		return benefiterrors.ErrBenefitAlreadyAssigned
	}
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == constraint
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, constraint)
}

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
