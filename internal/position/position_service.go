package position

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	positionerrors "github.com/nateesoft/management-hrm-system/internal/position/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	PositionListKeyPrefix = "positions:all:"
	positionListTTL       = 30 * time.Minute
)

func GetPositionListKey(companyID string) string {
	return PositionListKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreatePositionRequest) (PositionResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetPositionsFilterRequest) ([]PositionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PositionResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePositionRequest) (PositionResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	rdb    redis.Cmdable
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb redis.Cmdable, logger ...*zap.Logger) Service {
	l := zap.L().Named("position.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("position.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreatePositionRequest,
) (PositionResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidCompanyID
	}
	departmentUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
	}
	level := 1
	if req.Level != nil {
		level = *req.Level
	}
	if err := validateFigures(level, req.BaseSalary); err != nil {
		return PositionResponse{}, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create position begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := s.activeDepartment(ctx, qtx, companyID, req.DepartmentID)
	if err != nil {
		return PositionResponse{}, err
	}

	pos := &Position{
		ID:           uuid.New(),
		CompanyID:    companyUUID,
		DepartmentID: departmentUUID,
		Code:         normalizeCode(req.Code),
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Level:        level,
		BaseSalary:   req.BaseSalary,
		IsActive:     active,
	}

	if err := qtx.Create(ctx, pos); err != nil {
		mapped := mapRepositoryError(err)
		if mapped == err {
			s.logger.Error("create position persist failed", zap.String("request_id", rid), zap.Error(err))
		}
		return PositionResponse{}, mapped
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create position commit failed", zap.String("request_id", rid), zap.Error(err))
		return PositionResponse{}, err
	}

	s.invalidateList(ctx, companyID)

	pos.Department = dept
	s.logger.Info("position created",
		zap.String("company_id", companyID),
		zap.String("position_id", pos.ID.String()),
		zap.String("code", pos.Code),
	)
	return mapToResponse(*pos), nil
}

// GetAll serves the unfiltered list from redis. Concurrent misses for one
// company share a single query.
func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filter GetPositionsFilterRequest,
) ([]PositionResponse, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	filter.DepartmentID = strings.TrimSpace(filter.DepartmentID)
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, positionerrors.ErrInvalidDepartmentID
		}
	}

	if !filter.unfiltered() {
		positions, err := s.repo.FindAllByCompany(ctx, companyID, PositionQueryFilter{
			Search:       filter.Search,
			DepartmentID: filter.DepartmentID,
			IsActive:     filter.IsActive,
		})
		if err != nil {
			s.logger.Error("list positions failed", zap.String("company_id", companyID), zap.Error(err))
			return nil, err
		}
		return mapToListResponse(positions), nil
	}

	cacheKey := GetPositionListKey(companyID)
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PositionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		positions, err := s.repo.FindAllByCompany(ctx, companyID, PositionQueryFilter{})
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(positions)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, positionListTTL).Err(); err != nil {
					s.logger.Warn("cache position list failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list positions failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]PositionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}

	pos, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*pos), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePositionRequest,
) (PositionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PositionResponse{}, positionerrors.ErrInvalidPositionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update position begin tx failed", zap.Error(err))
		return PositionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	if req.DepartmentID != nil && *req.DepartmentID != pos.DepartmentID.String() {
		departmentUUID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return PositionResponse{}, positionerrors.ErrInvalidDepartmentID
		}
		dept, err := s.activeDepartment(ctx, qtx, companyID, *req.DepartmentID)
		if err != nil {
			return PositionResponse{}, err
		}
		pos.DepartmentID = departmentUUID
		pos.Department = dept
	}
	if req.Code != nil {
		pos.Code = normalizeCode(*req.Code)
	}
	if req.Name != nil {
		pos.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		pos.Description = req.Description
	}
	if req.Level != nil {
		pos.Level = *req.Level
	}
	if req.BaseSalary != nil {
		pos.BaseSalary = req.BaseSalary
	}
	if req.IsActive != nil {
		pos.IsActive = *req.IsActive
	}
	if err := validateFigures(pos.Level, pos.BaseSalary); err != nil {
		return PositionResponse{}, err
	}

	if err := qtx.Update(ctx, pos); err != nil {
		return PositionResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update position commit failed", zap.Error(err))
		return PositionResponse{}, err
	}

	s.invalidateList(ctx, companyID)

	s.logger.Info("position updated", zap.String("position_id", id))
	return mapToResponse(*pos), nil
}

// Delete refuses while employees still hold the position.
func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if _, err := uuid.Parse(id); err != nil {
		return positionerrors.ErrInvalidPositionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	n, err := qtx.CountEmployees(ctx, companyID, id)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Warn("delete position blocked", zap.String("position_id", id), zap.Int64("employees", n))
		return positionerrors.ErrPositionInUse
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.invalidateList(ctx, companyID)

	s.logger.Info("position deleted", zap.String("position_id", id))
	return nil
}

func (s *service) activeDepartment(
	ctx context.Context,
	repo Repository,
	companyID, departmentID string,
) (*PositionDepartment, error) {
	dept, err := repo.FindDepartment(ctx, companyID, departmentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, positionerrors.ErrDepartmentNotFound
	}
	if err != nil {
		return nil, err
	}
	if !dept.IsActive {
		return nil, positionerrors.ErrDepartmentInactive
	}
	return dept, nil
}

func (s *service) invalidateList(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetPositionListKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate position list cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func validateFigures(level int, baseSalary *decimal.Decimal) error {
	if level < 1 {
		return positionerrors.ErrInvalidLevel
	}
	if baseSalary != nil && baseSalary.IsNegative() {
		return positionerrors.ErrInvalidBaseSalary
	}
	return nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func mapToResponse(pos Position) PositionResponse {
	resp := PositionResponse{
		ID:            pos.ID.String(),
		CompanyID:     pos.CompanyID.String(),
		DepartmentID:  pos.DepartmentID.String(),
		Code:          pos.Code,
		Name:          pos.Name,
		Description:   pos.Description,
		Level:         pos.Level,
		BaseSalary:    pos.BaseSalary,
		IsActive:      pos.IsActive,
		EmployeeCount: pos.EmployeeCount,
	}
	if pos.Department != nil {
		resp.DepartmentName = pos.Department.Name
	}
	if !pos.CreatedAt.IsZero() {
		resp.CreatedAt = pos.CreatedAt.Format(time.RFC3339)
	}
	if !pos.UpdatedAt.IsZero() {
		resp.UpdatedAt = pos.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(positions []Position) []PositionResponse {
	res := make([]PositionResponse, len(positions))
	for i, p := range positions {
		res[i] = mapToResponse(p)
	}
	return res
}
