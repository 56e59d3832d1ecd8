package department

import (
	"context"
	"database/sql"
	"strings"
	"time"

	departmenterrors "github.com/nateesoft/management-hrm-system/internal/department/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetDepartmentsFilterRequest) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GetPositions(ctx context.Context, companyID, id string) ([]DepartmentPositionResponse, error)
	GetEmployees(ctx context.Context, companyID, id string) ([]DepartmentEmployeeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidCompanyID
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Code:        normalizeCode(req.Code),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    active,
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create department failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
		}
		return DepartmentResponse{}, mapped
	}

	s.logger.Info("department created",
		zap.String("company_id", companyID),
		zap.String("department_id", dept.ID.String()),
		zap.String("code", dept.Code),
	)
	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetDepartmentsFilterRequest,
) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAllByCompany(ctx, companyID, DepartmentQueryFilter{
		Search:   filter.Search,
		IsActive: filter.IsActive,
	})
	if err != nil {
		s.logger.Error("list departments failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return mapToListResponse(depts), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if req.Code != nil {
		dept.Code = normalizeCode(*req.Code)
	}
	if req.Name != nil {
		dept.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		dept.Description = req.Description
	}
	if req.IsActive != nil {
		dept.IsActive = *req.IsActive
	}

	if err := qtx.Update(ctx, dept); err != nil {
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return DepartmentResponse{}, err
	}

	return mapToResponse(*dept), nil
}

// Delete refuses while positions or employees still point at the department.
func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	positions, employees, err := qtx.CountReferences(ctx, companyID, id)
	if err != nil {
		return err
	}
	if positions > 0 || employees > 0 {
		s.logger.Warn("delete department blocked",
			zap.String("department_id", id),
			zap.Int64("positions", positions),
			zap.Int64("employees", employees),
		)
		return departmenterrors.ErrDepartmentInUse
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("department deleted", zap.String("department_id", id))
	return nil
}

func (s *service) GetPositions(
	ctx context.Context,
	companyID, id string,
) ([]DepartmentPositionResponse, error) {
	if err := s.ensureExists(ctx, companyID, id); err != nil {
		return nil, err
	}

	positions, err := s.repo.FindPositions(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentPositionResponse, len(positions))
	for i, p := range positions {
		resp[i] = DepartmentPositionResponse{
			ID:       p.ID.String(),
			Code:     p.Code,
			Name:     p.Name,
			Level:    p.Level,
			IsActive: p.IsActive,
		}
	}
	return resp, nil
}

func (s *service) GetEmployees(
	ctx context.Context,
	companyID, id string,
) ([]DepartmentEmployeeResponse, error) {
	if err := s.ensureExists(ctx, companyID, id); err != nil {
		return nil, err
	}

	employees, err := s.repo.FindEmployees(ctx, companyID, id)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentEmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = DepartmentEmployeeResponse{
			ID:           e.ID.String(),
			EmployeeCode: e.EmployeeCode,
			FullName:     e.FullName(),
			PositionID:   e.PositionID.String(),
			Status:       e.Status,
		}
	}
	return resp, nil
}

func (s *service) ensureExists(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return departmenterrors.ErrInvalidDepartmentID
	}
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:            dept.ID.String(),
		CompanyID:     dept.CompanyID.String(),
		Code:          dept.Code,
		Name:          dept.Name,
		Description:   dept.Description,
		IsActive:      dept.IsActive,
		PositionCount: dept.PositionCount,
		EmployeeCount: dept.EmployeeCount,
	}
	if !dept.CreatedAt.IsZero() {
		resp.CreatedAt = dept.CreatedAt.Format(time.RFC3339)
	}
	if !dept.UpdatedAt.IsZero() {
		resp.UpdatedAt = dept.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
