package benefiterrors

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
	ErrInvalidBenefitID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid benefit id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidAssignmentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee benefit id",
		http.StatusBadRequest,
	)
	ErrInvalidBenefitType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid benefit type",
		http.StatusBadRequest,
	)
	ErrInvalidDefaultAmount = apperror.New(
		apperror.CodeInvalidInput,
		"default amount cannot be negative",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"benefit amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date cannot be before start date",
		http.StatusBadRequest,
	)
	ErrBenefitNotFound = apperror.New(
		apperror.CodeNotFound,
		"benefit not found",
		http.StatusNotFound,
	)
	ErrEmployeeBenefitNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee benefit not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotInCompany = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrBenefitCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"benefit code already exists",
		http.StatusConflict,
	)
	ErrBenefitAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"employee already has this benefit",
		http.StatusConflict,
	)
	ErrBenefitInUse = apperror.New(
		apperror.CodeConflict,
		"benefit is still assigned to employees",
		http.StatusConflict,
	)
	ErrBenefitInactive = apperror.New(
		apperror.CodeInvalidState,
		"benefit is not active",
		http.StatusBadRequest,
	)
)
