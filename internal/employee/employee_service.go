package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	employeeerrors "github.com/nateesoft/management-hrm-system/internal/employee/errors"
	"github.com/nateesoft/management-hrm-system/internal/events"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"
	"github.com/nateesoft/management-hrm-system/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	employeeOptionsTTL       = time.Hour
	employeeCodeFormat       = "EMP-%06d"
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

// FormatEmployeeCode renders a counter value as EMP-000123.
func FormatEmployeeCode(n int64) string {
	return fmt.Sprintf(employeeCodeFormat, n)
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string, filter GetEmployeesFilterRequest) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GenerateCode(ctx context.Context, companyID string) (string, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     redis.Cmdable
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, counter counter.Repository, rdb redis.Cmdable, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, counter, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	rdb redis.Cmdable,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outboxRepo,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateEmployeeRequest,
) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("position_id", req.PositionID),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		s.logger.Warn("create employee invalid hire_date", zap.String("hire_date", req.HireDate))
		return EmployeeResponse{}, employeeerrors.ErrInvalidHireDate
	}
	dateOfBirth, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		return EmployeeResponse{}, err
	}
	if req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidBaseSalary
	}
	departmentUUID, err := uuid.Parse(req.DepartmentID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
	}
	positionUUID, err := uuid.Parse(req.PositionID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	pos, err := s.resolvePlacement(ctx, qtx, companyID, departmentUUID, positionUUID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	baseSalary := req.BaseSalary
	if baseSalary.IsZero() && pos.BaseSalary != nil {
		baseSalary = *pos.BaseSalary
	}

	code := strings.TrimSpace(req.EmployeeCode)
	if code == "" {
		nextVal, err := s.counter.GetNextValue(ctx, companyID, counter.TypeEmployeeCode)
		if err != nil {
			s.logger.Error("create employee generate code failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		code = FormatEmployeeCode(nextVal)
	}

	employmentType := req.EmploymentType
	if employmentType == "" {
		employmentType = EmploymentFullTime
	}

	empl := &Employee{
		ID:             uuid.New(),
		CompanyID:      companyUUID,
		EmployeeCode:   code,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Nickname:       req.Nickname,
		Email:          normalizeEmail(req.Email),
		Phone:          req.Phone,
		Address:        req.Address,
		DateOfBirth:    dateOfBirth,
		Gender:         req.Gender,
		NationalID:     req.NationalID,
		DepartmentID:   departmentUUID,
		PositionID:     positionUUID,
		EmploymentType: employmentType,
		Status:         StatusActive,
		BaseSalary:     baseSalary,
		BankName:       req.BankName,
		BankAccount:    req.BankAccount,
		HireDate:       hireDate,
		ImageURL:       req.ImageURL,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		if err := s.queueEmployeeCreated(ctx, tx, empl); err != nil {
			return EmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx, companyID)

	empl.Position = pos
	empl.Department = pos.Department
	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", empl.EmployeeCode),
	)

	return mapToResponse(*empl), nil
}

func (s *service) queueEmployeeCreated(ctx context.Context, tx *sql.Tx, empl *Employee) error {
	rid := contextutil.GetRequestID(ctx)
	event := events.EmployeeCreatedEvent{
		EventType:    events.EmployeeCreatedType,
		RequestID:    rid,
		EmployeeID:   empl.ID.String(),
		EmployeeCode: empl.EmployeeCode,
		CompanyID:    empl.CompanyID.String(),
		DepartmentID: empl.DepartmentID.String(),
		PositionID:   empl.PositionID.String(),
		OccurredAt:   time.Now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, kafka.AggregateEmployee, empl.ID,
		event.EventType, events.EmployeeCreatedTopic, event)
	if err != nil {
		s.logger.Error("build employee outbox event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("create employee outbox persist failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filterReq GetEmployeesFilterRequest,
) ([]EmployeeResponse, int64, error) {
	s.logger.Debug("get all employees requested", zap.String("company_id", companyID))

	filter := EmployeeQueryFilter{
		Search:         filterReq.Search,
		Status:         strings.ToUpper(strings.TrimSpace(filterReq.Status)),
		DepartmentID:   strings.TrimSpace(filterReq.DepartmentID),
		PositionID:     strings.TrimSpace(filterReq.PositionID),
		EmploymentType: strings.ToUpper(strings.TrimSpace(filterReq.EmploymentType)),
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, employeeerrors.ErrInvalidStatus
	}
	if filter.DepartmentID != "" {
		if _, err := uuid.Parse(filter.DepartmentID); err != nil {
			return nil, 0, employeeerrors.ErrInvalidDepartmentID
		}
	}
	if filter.PositionID != "" {
		if _, err := uuid.Parse(filter.PositionID); err != nil {
			return nil, 0, employeeerrors.ErrInvalidPositionID
		}
	}
	if filterReq.PageSize > 0 {
		page := filterReq.Page
		if page < 1 {
			page = 1
		}
		filter.Limit = filterReq.PageSize
		filter.Offset = (page - 1) * filterReq.PageSize
	}

	empls, total, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(empls), total, nil
}

// GetOptions serves the active employee list from redis. Concurrent misses
// for one company share a single database query.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:           e.ID.String(),
				EmployeeCode: e.EmployeeCode,
				FullName:     e.FullName(),
				PositionName: e.PositionName(),
				BaseSalary:   e.BaseSalary,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, employeeOptionsTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("get employee options failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

// GenerateCode previews the next automatic employee code without reserving it.
func (s *service) GenerateCode(ctx context.Context, companyID string) (string, error) {
	next, err := s.counter.PeekNextValue(ctx, companyID, counter.TypeEmployeeCode)
	if err != nil {
		s.logger.Error("peek employee code failed", zap.String("company_id", companyID), zap.Error(err))
		return "", err
	}
	return FormatEmployeeCode(next), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	s.logger.Debug("update employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if req.BaseSalary != nil && req.BaseSalary.IsNegative() {
		return EmployeeResponse{}, employeeerrors.ErrInvalidBaseSalary
	}
	var endDate *time.Time
	if req.EndDate != nil {
		d, err := parseOptionalDate(*req.EndDate)
		if err != nil {
			return EmployeeResponse{}, err
		}
		endDate = d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Warn("update employee fetch existing failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.DepartmentID != nil || req.PositionID != nil {
		departmentUUID, positionUUID := empl.DepartmentID, empl.PositionID
		if req.DepartmentID != nil {
			if departmentUUID, err = uuid.Parse(*req.DepartmentID); err != nil {
				return EmployeeResponse{}, employeeerrors.ErrInvalidDepartmentID
			}
		}
		if req.PositionID != nil {
			if positionUUID, err = uuid.Parse(*req.PositionID); err != nil {
				return EmployeeResponse{}, employeeerrors.ErrInvalidPositionID
			}
		}
		pos, err := s.resolvePlacement(ctx, qtx, companyID, departmentUUID, positionUUID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		empl.DepartmentID = departmentUUID
		empl.PositionID = positionUUID
		empl.Position = pos
		empl.Department = pos.Department
	}

	applyUpdate(empl, req)
	if req.EndDate != nil {
		empl.EndDate = endDate
	}

	if err := qtx.Update(ctx, empl); err != nil {
		s.logger.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	s.logger.Debug("delete employee requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, companyID, id); err != nil {
		s.logger.Warn("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, companyID)

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

// resolvePlacement checks that the position exists in the company, sits in
// the given department and that both are active.
func (s *service) resolvePlacement(
	ctx context.Context,
	repo Repository,
	companyID string,
	departmentID, positionID uuid.UUID,
) (*EmployeePosition, error) {
	pos, err := repo.FindPosition(ctx, companyID, positionID.String())
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, employeeerrors.ErrPositionNotFound
	}
	if err != nil {
		s.logger.Error("load position failed", zap.String("position_id", positionID.String()), zap.Error(err))
		return nil, err
	}
	if pos.DepartmentID != departmentID {
		return nil, employeeerrors.ErrPositionNotInDepartment
	}
	if !pos.IsActive {
		return nil, employeeerrors.ErrPositionInactive
	}
	if pos.Department == nil || !pos.Department.IsActive {
		return nil, employeeerrors.ErrDepartmentInactive
	}
	return pos, nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func applyUpdate(empl *Employee, req UpdateEmployeeRequest) {
	if req.FirstName != nil {
		empl.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		empl.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Nickname != nil {
		empl.Nickname = req.Nickname
	}
	if req.Email != nil {
		empl.Email = normalizeEmail(req.Email)
	}
	if req.Phone != nil {
		empl.Phone = req.Phone
	}
	if req.Address != nil {
		empl.Address = req.Address
	}
	if req.Gender != nil {
		empl.Gender = req.Gender
	}
	if req.EmploymentType != nil {
		empl.EmploymentType = *req.EmploymentType
	}
	if req.Status != nil {
		empl.Status = *req.Status
	}
	if req.BaseSalary != nil {
		empl.BaseSalary = *req.BaseSalary
	}
	if req.BankName != nil {
		empl.BankName = req.BankName
	}
	if req.BankAccount != nil {
		empl.BankAccount = req.BankAccount
	}
	if req.ImageURL != nil {
		empl.ImageURL = req.ImageURL
	}
}

func parseOptionalDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDate
	}
	return &t, nil
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*email))
	if v == "" {
		return nil
	}
	return &v
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(dateLayout)
	return &v
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID.String(),
		CompanyID:      empl.CompanyID.String(),
		EmployeeCode:   empl.EmployeeCode,
		FirstName:      empl.FirstName,
		LastName:       empl.LastName,
		FullName:       empl.FullName(),
		Nickname:       empl.Nickname,
		Email:          empl.Email,
		Phone:          empl.Phone,
		Address:        empl.Address,
		DateOfBirth:    formatDate(empl.DateOfBirth),
		Gender:         empl.Gender,
		NationalID:     empl.NationalID,
		DepartmentID:   empl.DepartmentID.String(),
		DepartmentName: empl.DepartmentName(),
		PositionID:     empl.PositionID.String(),
		PositionName:   empl.PositionName(),
		EmploymentType: empl.EmploymentType,
		Status:         empl.Status,
		BaseSalary:     empl.BaseSalary,
		BankName:       empl.BankName,
		BankAccount:    empl.BankAccount,
		HireDate:       empl.HireDate.Format(dateLayout),
		EndDate:        formatDate(empl.EndDate),
		ImageURL:       empl.ImageURL,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}
