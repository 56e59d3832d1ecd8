package positionerrors

import (
	"net/http"

	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidPositionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid position id",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid department id",
		http.StatusBadRequest,
	)
	ErrInvalidLevel = apperror.New(
		apperror.CodeInvalidInput,
		"level must be at least 1",
		http.StatusBadRequest,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"base salary must not be negative",
		http.StatusBadRequest,
	)
	ErrPositionNotFound = apperror.New(
		apperror.CodeNotFound,
		"position not found",
		http.StatusNotFound,
	)
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"department not found",
		http.StatusNotFound,
	)
	ErrDepartmentInactive = apperror.New(
		apperror.CodeInvalidState,
		"department is not active",
		http.StatusBadRequest,
	)
	ErrPositionCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"position code already exists",
		http.StatusConflict,
	)
	ErrPositionInUse = apperror.New(
		apperror.CodeConflict,
		"position is still assigned to employees",
		http.StatusConflict,
	)
)
