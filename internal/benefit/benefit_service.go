package benefit

import (
	"context"
	"database/sql"
	"strings"
	"time"

	benefiterrors "github.com/nateesoft/management-hrm-system/internal/benefit/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Service interface {
	CreateBenefit(ctx context.Context, companyID string, req CreateBenefitRequest) (BenefitResponse, error)
	GetBenefits(ctx context.Context, companyID string, filter GetBenefitsFilterRequest) ([]BenefitResponse, error)
	GetBenefitByID(ctx context.Context, companyID, id string) (BenefitResponse, error)
	UpdateBenefit(ctx context.Context, companyID, id string, req UpdateBenefitRequest) (BenefitResponse, error)
	DeleteBenefit(ctx context.Context, companyID, id string) error
	GetSummary(ctx context.Context, companyID string) (BenefitSummaryResponse, error)
	GetEmployeeBenefits(ctx context.Context, companyID string, filter GetEmployeeBenefitsFilterRequest) ([]EmployeeBenefitResponse, error)
	AssignBenefit(ctx context.Context, companyID string, req AssignBenefitRequest) (EmployeeBenefitResponse, error)
	UpdateEmployeeBenefit(ctx context.Context, companyID, id string, req UpdateEmployeeBenefitRequest) (EmployeeBenefitResponse, error)
	RemoveEmployeeBenefit(ctx context.Context, companyID, id string) (EmployeeBenefitResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("benefit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("benefit.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
		now:    time.Now,
	}
}

func (s *service) CreateBenefit(ctx context.Context, companyID string, req CreateBenefitRequest) (BenefitResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return BenefitResponse{}, benefiterrors.ErrInvalidCompanyID
	}
	if !IsValidType(req.Type) {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitType
	}

	amount := decimal.Zero
	if req.DefaultAmount != nil {
		if req.DefaultAmount.IsNegative() {
			return BenefitResponse{}, benefiterrors.ErrInvalidDefaultAmount
		}
		amount = *req.DefaultAmount
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	b := &Benefit{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		Code:          normalizeCode(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Type:          req.Type,
		DefaultAmount: amount,
		IsActive:      active,
	}

	if err := s.repo.CreateBenefit(ctx, b); err != nil {
		mapped := mapBenefitError(err)
		if mapped == err {
			s.logger.Error("create benefit failed",
				zap.String("request_id", contextutil.GetRequestID(ctx)),
				zap.String("company_id", companyID),
				zap.Error(err),
			)
		}
		return BenefitResponse{}, mapped
	}

	s.logger.Info("benefit created",
		zap.String("company_id", companyID),
		zap.String("benefit_id", b.ID.String()),
		zap.String("code", b.Code),
	)
	return mapBenefitResponse(*b), nil
}

func (s *service) GetBenefits(ctx context.Context, companyID string, filter GetBenefitsFilterRequest) ([]BenefitResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return nil, benefiterrors.ErrInvalidCompanyID
	}

	benefits, err := s.repo.FindBenefits(ctx, companyID, filter.IsActive)
	if err != nil {
		s.logger.Error("list benefits failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]BenefitResponse, len(benefits))
	for i, b := range benefits {
		resp[i] = mapBenefitResponse(b)
	}
	return resp, nil
}

func (s *service) GetBenefitByID(ctx context.Context, companyID, id string) (BenefitResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitID
	}

	b, err := s.repo.FindBenefitByID(ctx, companyID, id)
	if err != nil {
		return BenefitResponse{}, mapBenefitError(err)
	}
	return mapBenefitResponse(*b), nil
}

// UpdateBenefit never touches existing assignments; their amounts are snapshots.
func (s *service) UpdateBenefit(ctx context.Context, companyID, id string, req UpdateBenefitRequest) (BenefitResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitID
	}
	if req.Type != nil && !IsValidType(*req.Type) {
		return BenefitResponse{}, benefiterrors.ErrInvalidBenefitType
	}
	if req.DefaultAmount != nil && req.DefaultAmount.IsNegative() {
		return BenefitResponse{}, benefiterrors.ErrInvalidDefaultAmount
	}

	b, err := s.repo.FindBenefitByID(ctx, companyID, id)
	if err != nil {
		return BenefitResponse{}, mapBenefitError(err)
	}

	if req.Code != nil {
		b.Code = normalizeCode(*req.Code)
	}
	if req.Name != nil {
		b.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.Type != nil {
		b.Type = *req.Type
	}
	if req.DefaultAmount != nil {
		b.DefaultAmount = *req.DefaultAmount
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}

	if err := s.repo.UpdateBenefit(ctx, b); err != nil {
		return BenefitResponse{}, mapBenefitError(err)
	}
	return mapBenefitResponse(*b), nil
}

func (s *service) DeleteBenefit(ctx context.Context, companyID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return benefiterrors.ErrInvalidBenefitID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	inUse, err := qtx.CountActiveAssignments(ctx, companyID, id)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return benefiterrors.ErrBenefitInUse
	}

	if err := qtx.DeleteBenefit(ctx, companyID, id); err != nil {
		return mapBenefitError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete benefit commit failed", zap.String("benefit_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *service) GetSummary(ctx context.Context, companyID string) (BenefitSummaryResponse, error) {
	if _, err := uuid.Parse(companyID); err != nil {
		return BenefitSummaryResponse{}, benefiterrors.ErrInvalidCompanyID
	}

	rows, err := s.repo.Summarize(ctx, companyID)
	if err != nil {
		s.logger.Error("benefit summary failed", zap.String("company_id", companyID), zap.Error(err))
		return BenefitSummaryResponse{}, err
	}

	resp := BenefitSummaryResponse{
		Items:            make([]BenefitSummaryItem, 0, len(rows)),
		TotalMonthlyCost: decimal.Zero,
	}
	for _, row := range rows {
		resp.Items = append(resp.Items, BenefitSummaryItem{
			BenefitID:         row.BenefitID.String(),
			Code:              row.Code,
			Name:              row.Name,
			Type:              row.Type,
			ActiveAssignments: row.ActiveAssignments,
			MonthlyCost:       row.MonthlyCost,
		})
		resp.TotalActiveAssignments += row.ActiveAssignments
		resp.TotalMonthlyCost = resp.TotalMonthlyCost.Add(row.MonthlyCost)
	}
	return resp, nil
}

func (s *service) GetEmployeeBenefits(
	ctx context.Context,
	companyID string,
	filter GetEmployeeBenefitsFilterRequest,
) ([]EmployeeBenefitResponse, error) {
	var q EmployeeBenefitQueryFilter
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, benefiterrors.ErrInvalidEmployeeID
		}
		q.EmployeeID = &filter.EmployeeID
	}
	if filter.BenefitID != "" {
		if _, err := uuid.Parse(filter.BenefitID); err != nil {
			return nil, benefiterrors.ErrInvalidBenefitID
		}
		q.BenefitID = &filter.BenefitID
	}
	q.IsActive = filter.IsActive

	assignments, err := s.repo.FindAssignments(ctx, companyID, q)
	if err != nil {
		s.logger.Error("list employee benefits failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	resp := make([]EmployeeBenefitResponse, len(assignments))
	for i, eb := range assignments {
		resp[i] = mapAssignmentResponse(eb)
	}
	return resp, nil
}

func (s *service) AssignBenefit(ctx context.Context, companyID string, req AssignBenefitRequest) (EmployeeBenefitResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidEmployeeID
	}
	benefitUUID, err := uuid.Parse(req.BenefitID)
	if err != nil {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidBenefitID
	}

	startDate := truncateDay(s.now())
	if req.StartDate != "" {
		startDate, err = time.Parse(dateLayout, req.StartDate)
		if err != nil {
			return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidDate
		}
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return EmployeeBenefitResponse{}, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidDateRange
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign benefit begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeBenefitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if isRecordNotFound(err) {
			return EmployeeBenefitResponse{}, benefiterrors.ErrEmployeeNotInCompany
		}
		return EmployeeBenefitResponse{}, err
	}

	b, err := qtx.FindBenefitByID(ctx, companyID, req.BenefitID)
	if err != nil {
		return EmployeeBenefitResponse{}, mapBenefitError(err)
	}
	if !b.IsActive {
		return EmployeeBenefitResponse{}, benefiterrors.ErrBenefitInactive
	}

	amount := b.DefaultAmount
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !amount.IsPositive() {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidAmount
	}

	exists, err := qtx.ExistsActiveAssignment(ctx, companyID, req.EmployeeID, req.BenefitID, "")
	if err != nil {
		return EmployeeBenefitResponse{}, err
	}
	if exists {
		return EmployeeBenefitResponse{}, benefiterrors.ErrBenefitAlreadyAssigned
	}

	eb := &EmployeeBenefit{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		BenefitID:  benefitUUID,
		Amount:     amount,
		StartDate:  startDate,
		EndDate:    endDate,
		IsActive:   true,
		Notes:      req.Notes,
	}
	if err := qtx.CreateAssignment(ctx, eb); err != nil {
		return EmployeeBenefitResponse{}, mapAssignmentError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign benefit commit failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeBenefitResponse{}, err
	}

	s.logger.Info("benefit assigned",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("benefit_id", req.BenefitID),
		zap.String("amount", amount.String()),
	)

	eb.Employee = emp
	eb.Benefit = b
	return mapAssignmentResponse(*eb), nil
}

func (s *service) UpdateEmployeeBenefit(
	ctx context.Context,
	companyID, id string,
	req UpdateEmployeeBenefitRequest,
) (EmployeeBenefitResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidAssignmentID
	}
	if req.Amount != nil && !req.Amount.IsPositive() {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidAmount
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeBenefitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	eb, err := qtx.FindAssignmentByID(ctx, companyID, id)
	if err != nil {
		return EmployeeBenefitResponse{}, mapAssignmentError(err)
	}

	if req.Amount != nil {
		eb.Amount = *req.Amount
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidDate
		}
		eb.StartDate = start
	}
	if req.EndDate != nil {
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return EmployeeBenefitResponse{}, err
		}
		eb.EndDate = end
	}
	if eb.EndDate != nil && eb.EndDate.Before(eb.StartDate) {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidDateRange
	}
	if req.Notes != nil {
		eb.Notes = req.Notes
	}
	if req.IsActive != nil {
		if *req.IsActive && !eb.IsActive {
			exists, err := qtx.ExistsActiveAssignment(ctx, companyID, eb.EmployeeID.String(), eb.BenefitID.String(), id)
			if err != nil {
				return EmployeeBenefitResponse{}, err
			}
			if exists {
				return EmployeeBenefitResponse{}, benefiterrors.ErrBenefitAlreadyAssigned
			}
		}
		eb.IsActive = *req.IsActive
	}

	if err := qtx.UpdateAssignment(ctx, eb); err != nil {
		return EmployeeBenefitResponse{}, mapAssignmentError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeBenefitResponse{}, err
	}
	return mapAssignmentResponse(*eb), nil
}

// RemoveEmployeeBenefit ends an assignment instead of deleting it so past
// monthly costs stay reportable.
func (s *service) RemoveEmployeeBenefit(ctx context.Context, companyID, id string) (EmployeeBenefitResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeBenefitResponse{}, benefiterrors.ErrInvalidAssignmentID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return EmployeeBenefitResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	eb, err := qtx.FindAssignmentByID(ctx, companyID, id)
	if err != nil {
		return EmployeeBenefitResponse{}, mapAssignmentError(err)
	}

	eb.IsActive = false
	if eb.EndDate == nil {
		today := truncateDay(s.now())
		if today.Before(eb.StartDate) {
			today = eb.StartDate
		}
		eb.EndDate = &today
	}

	if err := qtx.UpdateAssignment(ctx, eb); err != nil {
		return EmployeeBenefitResponse{}, mapAssignmentError(err)
	}
	if err := tx.Commit(); err != nil {
		return EmployeeBenefitResponse{}, err
	}

	s.logger.Info("benefit removed",
		zap.String("company_id", companyID),
		zap.String("employee_benefit_id", id),
	)
	return mapAssignmentResponse(*eb), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func parseOptionalDate(v *string) (*time.Time, error) {
	if v == nil || *v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, *v)
	if err != nil {
		return nil, benefiterrors.ErrInvalidDate
	}
	return &t, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func mapBenefitResponse(b Benefit) BenefitResponse {
	return BenefitResponse{
		ID:                b.ID.String(),
		Code:              b.Code,
		Name:              b.Name,
		Description:       b.Description,
		Type:              b.Type,
		DefaultAmount:     b.DefaultAmount,
		IsActive:          b.IsActive,
		ActiveAssignments: b.ActiveAssignments,
	}
}

func mapAssignmentResponse(eb EmployeeBenefit) EmployeeBenefitResponse {
	resp := EmployeeBenefitResponse{
		ID:         eb.ID.String(),
		EmployeeID: eb.EmployeeID.String(),
		BenefitID:  eb.BenefitID.String(),
		Amount:     eb.Amount,
		StartDate:  eb.StartDate.Format(dateLayout),
		EndDate:    formatDate(eb.EndDate),
		IsActive:   eb.IsActive,
		Notes:      eb.Notes,
	}
	if eb.Employee != nil {
		resp.Employee = &BenefitEmployeeResponse{
			ID:           eb.Employee.ID.String(),
			EmployeeCode: eb.Employee.EmployeeCode,
			FullName:     eb.Employee.FullName(),
			PositionID:   eb.Employee.PositionID.String(),
		}
	}
	if eb.Benefit != nil {
		b := mapBenefitResponse(*eb.Benefit)
		resp.Benefit = &b
	}
	return resp
}
