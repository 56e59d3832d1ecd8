package payroll

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nateesoft/management-hrm-system/internal/events"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	"github.com/nateesoft/management-hrm-system/internal/payroll/calculator"
	payrollerrors "github.com/nateesoft/management-hrm-system/internal/payroll/errors"
	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	minPayrollYear = 2000
	maxPayrollYear = 2100
)

type Service interface {
	Preview(ctx context.Context, req PreviewPayrollRequest) (PreviewPayrollResponse, error)
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	Generate(ctx context.Context, companyID, actorID string, req GeneratePayrollRequest) (GenerateResult, error)
	GetAll(ctx context.Context, companyID string, filter GetPayrollsFilterRequest) ([]PayrollResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	GetByMonth(ctx context.Context, companyID string, year, month int) (MonthlyPayrollResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	MarkAsPaid(ctx context.Context, companyID, actorID, id string, req MarkPaidRequest) (PayrollResponse, error)
	Cancel(ctx context.Context, companyID, actorID, id string) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	GeneratePayslip(ctx context.Context, companyID, id string) (PayrollResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	payslips PayslipStorage
	logger   *zap.Logger
	now      func() time.Time
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, PayslipStorage{}, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	payslips PayslipStorage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outboxRepo,
		payslips: payslips.WithDefaults(),
		logger:   l,
		now:      time.Now,
	}
}

func (s *service) Preview(ctx context.Context, req PreviewPayrollRequest) (PreviewPayrollResponse, error) {
	if err := validateSalaryInput(req.SalaryInput); err != nil {
		return PreviewPayrollResponse{}, err
	}

	res := calculator.Calculate(toCalculatorInput(req.SalaryInput))
	return PreviewPayrollResponse{
		Calculation:             toCalculationResponse(res),
		Rounded:                 toCalculationResponse(res.Rounded()),
		SuggestedSocialSecurity: calculator.SuggestedSocialSecurity(req.BaseSalary),
	}, nil
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRequest,
) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	companyUUID, actorUUID, err := parseTenantAndActor(companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return PayrollResponse{}, err
	}
	if err := validateSalaryInput(req.SalaryInput); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create payroll begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if isRecordNotFound(err) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("create payroll load employee failed", zap.Error(err))
		return PayrollResponse{}, err
	}

	exists, err := qtx.ExistsForPeriod(ctx, companyID, req.EmployeeID, req.Month, req.Year)
	if err != nil {
		s.logger.Error("create payroll check period failed", zap.Error(err))
		return PayrollResponse{}, err
	}
	if exists {
		s.logger.Warn("create payroll duplicate period",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
		)
		return PayrollResponse{}, payrollerrors.ErrPayrollAlreadyExists
	}

	payroll := &Payroll{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Month:      req.Month,
		Year:       req.Year,
		Notes:      req.Notes,
		Status:     StatusPending,
		CreatedBy:  actorUUID,
	}
	applySalaryInput(payroll, req.SalaryInput)

	if err := qtx.Create(ctx, payroll); err != nil {
		s.logger.Error("create payroll persist failed", zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed", zap.String("request_id", rid), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	payroll.Employee = emp
	s.logger.Info("create payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", payroll.ID.String()),
	)
	return mapToResponse(*payroll), nil
}

type generateOutcome int

const (
	outcomeCreated generateOutcome = iota
	outcomeSkipped
)

// Generate creates PENDING payrolls for a month, skipping employees that
// already have a non cancelled record. Failures for one employee are reported
// in the result and never stop the batch.
func (s *service) Generate(
	ctx context.Context,
	companyID, actorID string,
	req GeneratePayrollRequest,
) (GenerateResult, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	if err := validatePeriod(req.Month, req.Year); err != nil {
		return GenerateResult{}, err
	}
	companyUUID, actorUUID, err := parseTenantAndActor(companyID, actorID)
	if err != nil {
		return GenerateResult{}, err
	}

	result := GenerateResult{Errors: []string{}}

	employees, err := s.eligibleEmployees(ctx, companyID, req.EmployeeIDs, &result)
	if err != nil {
		log.Error("generate payroll load employees failed", zap.Error(err))
		return GenerateResult{}, err
	}

	log.Info("generate payroll started", zap.Int("eligible", len(employees)))

	for _, emp := range employees {
		outcome, err := s.generateForEmployee(ctx, companyUUID, actorUUID, emp, req.Month, req.Year)
		if err != nil {
			log.Warn("generate payroll employee failed",
				zap.String("employee_id", emp.ID.String()),
				zap.Error(err),
			)
			result.Errors = append(result.Errors, generationError(emp.Label(), err))
			continue
		}

		switch outcome {
		case outcomeCreated:
			result.Created++
		case outcomeSkipped:
			result.Skipped++
		}
	}

	log.Info("generate payroll finished",
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// eligibleEmployees resolves explicit ids or falls back to every active
// employee. Unknown or inactive explicit ids are recorded in result.
func (s *service) eligibleEmployees(
	ctx context.Context,
	companyID string,
	ids []string,
	result *GenerateResult,
) ([]PayrollEmployee, error) {
	if len(ids) == 0 {
		return s.repo.FindActiveEmployees(ctx, companyID)
	}

	ids = dedupeIDs(ids)
	found, err := s.repo.FindEmployeesByIDs(ctx, companyID, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]PayrollEmployee, len(found))
	for _, emp := range found {
		byID[emp.ID.String()] = emp
	}

	eligible := make([]PayrollEmployee, 0, len(found))
	for _, id := range ids {
		emp, ok := byID[strings.ToLower(id)]
		if !ok {
			result.Errors = append(result.Errors, generationError(id, payrollerrors.ErrEmployeeNotFound))
			continue
		}
		if emp.Status != EmployeeStatusActive {
			result.Errors = append(result.Errors, generationError(emp.Label(), payrollerrors.ErrEmployeeNotActive))
			continue
		}
		eligible = append(eligible, emp)
	}
	return eligible, nil
}

func (s *service) generateForEmployee(
	ctx context.Context,
	companyID, actorID uuid.UUID,
	emp PayrollEmployee,
	month, year int,
) (generateOutcome, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.ExistsForPeriod(ctx, companyID.String(), emp.ID.String(), month, year)
	if err != nil {
		return 0, err
	}
	if exists {
		return outcomeSkipped, nil
	}

	if !emp.BaseSalary.IsPositive() {
		return 0, payrollerrors.ErrMissingBaseSalary
	}

	payroll := &Payroll{
		ID:         uuid.New(),
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		Month:      month,
		Year:       year,
		Status:     StatusPending,
		CreatedBy:  actorID,
	}
	applySalaryInput(payroll, SalaryInput{BaseSalary: emp.BaseSalary})

	if err := qtx.Create(ctx, payroll); err != nil {
		// a concurrent run inserted the same period first
		if isUniquePeriodViolation(err) {
			return outcomeSkipped, nil
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		if isUniquePeriodViolation(err) {
			return outcomeSkipped, nil
		}
		return 0, err
	}
	return outcomeCreated, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	filterReq GetPayrollsFilterRequest,
) ([]PayrollResponse, error) {
	filter, err := buildQueryFilter(filterReq)
	if err != nil {
		return nil, err
	}

	payrolls, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all payrolls failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(payrolls), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	if err := validatePayrollID(id); err != nil {
		return PayrollResponse{}, err
	}

	payroll, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*payroll), nil
}

func (s *service) GetByMonth(
	ctx context.Context,
	companyID string,
	year, month int,
) (MonthlyPayrollResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return MonthlyPayrollResponse{}, err
	}

	payrolls, err := s.repo.FindByPeriod(ctx, companyID, month, year)
	if err != nil {
		s.logger.Error("get payrolls by month failed", zap.String("company_id", companyID), zap.Error(err))
		return MonthlyPayrollResponse{}, mapRepositoryError(err)
	}

	return MonthlyPayrollResponse{
		Month:   month,
		Year:    year,
		Records: mapToListResponse(payrolls),
		Summary: summarize(payrolls),
	}, nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	if err := validatePayrollID(id); err != nil {
		return PayrollResponse{}, err
	}
	if err := validateSalaryInput(req.SalaryInput); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompanyForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if payroll.Status != StatusPending {
		return PayrollResponse{}, payrollerrors.ErrUpdateOnlyPending
	}

	applySalaryInput(payroll, req.SalaryInput)
	if req.Notes != nil {
		payroll.Notes = req.Notes
	}

	if err := qtx.Update(ctx, payroll, StatusPending); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return PayrollResponse{}, payrollerrors.ErrUpdateOnlyPending
		}
		s.logger.Error("update payroll persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("update payroll success", zap.String("payroll_id", id))
	return mapToResponse(*payroll), nil
}

func (s *service) Approve(
	ctx context.Context,
	companyID, actorID, id string,
) (PayrollResponse, error) {
	approverID, err := uuid.Parse(actorID)
	if err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidActorID
	}

	return s.transition(ctx, companyID, id, StatusApproved, func(_ *sql.Tx, p *Payroll, now time.Time) error {
		p.ApprovedBy = &approverID
		p.ApprovedAt = &now
		return nil
	})
}

func (s *service) MarkAsPaid(
	ctx context.Context,
	companyID, actorID, id string,
	req MarkPaidRequest,
) (PayrollResponse, error) {
	method := strings.ToUpper(strings.TrimSpace(req.PaymentMethod))
	if !isValidPaymentMethod(method) {
		return PayrollResponse{}, payrollerrors.ErrInvalidPaymentMethod
	}

	return s.transition(ctx, companyID, id, StatusPaid, func(tx *sql.Tx, p *Payroll, now time.Time) error {
		p.PaidAt = &now
		p.PaymentMethod = &method
		if req.PaymentRef != nil && strings.TrimSpace(*req.PaymentRef) != "" {
			ref := strings.TrimSpace(*req.PaymentRef)
			p.PaymentRef = &ref
		}
		return s.queuePayslipRequest(ctx, tx, p, actorID)
	})
}

func (s *service) Cancel(
	ctx context.Context,
	companyID, actorID, id string,
) (PayrollResponse, error) {
	resp, err := s.transition(ctx, companyID, id, StatusCancelled, func(_ *sql.Tx, p *Payroll, now time.Time) error {
		p.CancelledAt = &now
		return nil
	})
	if err == nil {
		s.logger.Info("payroll cancelled", zap.String("payroll_id", id), zap.String("actor_id", actorID))
	}
	return resp, err
}

// transition loads a payroll, checks the status move and persists it in one
// transaction. mutate runs inside that transaction.
func (s *service) transition(
	ctx context.Context,
	companyID, id, to string,
	mutate func(tx *sql.Tx, p *Payroll, now time.Time) error,
) (PayrollResponse, error) {
	if err := validatePayrollID(id); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompanyForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	from := payroll.Status
	if !CanTransition(from, to) {
		s.logger.Warn("payroll status transition rejected",
			zap.String("payroll_id", id),
			zap.String("from", payroll.Status),
			zap.String("to", to),
		)
		return PayrollResponse{}, payrollerrors.ErrInvalidStatusTransition
	}

	now := s.now().UTC()
	payroll.Status = to
	if err := mutate(tx, payroll, now); err != nil {
		return PayrollResponse{}, err
	}

	if err := qtx.Update(ctx, payroll, from); err != nil {
		s.logger.Error("payroll status persist failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll status changed", zap.String("payroll_id", id), zap.String("status", to))
	return mapToResponse(*payroll), nil
}

// queuePayslipRequest writes the payslip request to the outbox in the same
// transaction as the status change.
func (s *service) queuePayslipRequest(ctx context.Context, tx *sql.Tx, p *Payroll, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.PayrollPayslipRequestedEvent{
		EventType:   events.PayrollPayslipRequestedType,
		RequestID:   rid,
		PayrollID:   p.ID.String(),
		CompanyID:   p.CompanyID.String(),
		RequestedBy: actorID,
		OccurredAt:  s.now().UTC(),
	}
	outboxEvent, err := kafka.NewOutboxEvent(rid, kafka.AggregatePayroll, p.ID,
		event.EventType, events.PayrollPayslipRequestedTopic, event)
	if err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("queue payslip request failed",
			zap.String("payroll_id", p.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	if err := validatePayrollID(id); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompanyForUpdate(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if payroll.Status != StatusPending && payroll.Status != StatusCancelled {
		return payrollerrors.ErrDeleteNotAllowed
	}

	if err := qtx.Delete(ctx, companyID, id, StatusPending, StatusCancelled); err != nil {
		if errors.Is(err, ErrStatusChanged) {
			return payrollerrors.ErrDeleteNotAllowed
		}
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("delete payroll success", zap.String("payroll_id", id))
	return nil
}

func (s *service) GeneratePayslip(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	if err := validatePayrollID(id); err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	payroll, err := qtx.FindByIDAndCompanyForUpdate(ctx, companyID, id)
	if err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}
	if payroll.Status == StatusCancelled {
		return PayrollResponse{}, payrollerrors.ErrPayslipNotAllowed
	}

	now := s.now().UTC()
	url, err := writePayslipPDF(s.payslips, *payroll, now)
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("payroll_id", id), zap.Error(err))
		return PayrollResponse{}, err
	}

	payroll.PayslipURL = &url
	payroll.PayslipGeneratedAt = &now

	if err := qtx.Update(ctx, payroll, payroll.Status); err != nil {
		return PayrollResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payslip generated", zap.String("payroll_id", id), zap.String("url", url))
	return mapToResponse(*payroll), nil
}

func parseTenantAndActor(companyID, actorID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, payrollerrors.ErrInvalidActorID
	}
	return companyUUID, actorUUID, nil
}

func validatePayrollID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrInvalidPayrollID
	}
	return nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < minPayrollYear || year > maxPayrollYear {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func validateSalaryInput(in SalaryInput) error {
	if !in.BaseSalary.IsPositive() {
		return payrollerrors.ErrInvalidBaseSalary
	}
	if in.OvertimeRate.IsNegative() {
		return payrollerrors.ErrInvalidOvertimeRate
	}
	for _, v := range []decimal.Decimal{
		in.OvertimeHours,
		in.Bonus,
		in.Allowances,
		in.Commission,
		in.SocialSecurity,
		in.Tax,
		in.OtherDeductions,
	} {
		if v.IsNegative() {
			return payrollerrors.ErrInvalidMoneyValue
		}
	}
	return nil
}

func toCalculatorInput(in SalaryInput) calculator.Input {
	return calculator.Input{
		BaseSalary:      in.BaseSalary,
		OvertimeHours:   in.OvertimeHours,
		OvertimeRate:    in.OvertimeRate,
		Bonus:           in.Bonus,
		Allowances:      in.Allowances,
		Commission:      in.Commission,
		SocialSecurity:  in.SocialSecurity,
		Tax:             in.Tax,
		OtherDeductions: in.OtherDeductions,
	}
}

// applySalaryInput copies the inputs onto p and recomputes every derived figure.
func applySalaryInput(p *Payroll, in SalaryInput) {
	rate := in.OvertimeRate
	if rate.IsZero() {
		rate = calculator.DefaultOvertimeRate
	}

	p.BaseSalary = in.BaseSalary
	p.OvertimeHours = in.OvertimeHours
	p.OvertimeRate = rate
	p.Bonus = in.Bonus
	p.Allowances = in.Allowances
	p.Commission = in.Commission
	p.SocialSecurity = in.SocialSecurity
	p.Tax = in.Tax
	p.OtherDeductions = in.OtherDeductions
	p.DeductionNotes = in.DeductionNotes

	res := calculator.Calculate(toCalculatorInput(in))
	p.OvertimeAmount = res.OvertimeAmount
	p.GrossSalary = res.GrossSalary
	p.TotalDeductions = res.TotalDeductions
	p.NetSalary = res.NetSalary
}

func buildQueryFilter(req GetPayrollsFilterRequest) (PayrollQueryFilter, error) {
	var filter PayrollQueryFilter

	if v := strings.TrimSpace(req.EmployeeID); v != "" {
		filter.EmployeeID = &v
	}

	if req.Period != "" {
		period, err := time.Parse("2006-01", req.Period)
		if err != nil {
			return PayrollQueryFilter{}, payrollerrors.ErrInvalidPeriodFormat
		}
		month, year := int(period.Month()), period.Year()
		filter.Month = &month
		filter.Year = &year
	} else {
		if req.Month != 0 {
			month := req.Month
			filter.Month = &month
		}
		if req.Year != 0 {
			year := req.Year
			filter.Year = &year
		}
	}

	if req.Status != "" {
		status := strings.ToUpper(strings.TrimSpace(req.Status))
		if !IsValidStatus(status) {
			return PayrollQueryFilter{}, payrollerrors.ErrInvalidStatusFilter
		}
		filter.Status = &status
	}

	return filter, nil
}

// summarize totals money over non cancelled records and counts every status.
func summarize(payrolls []Payroll) PayrollSummary {
	summary := PayrollSummary{
		TotalRecords:     len(payrolls),
		TotalGrossSalary: decimal.Zero,
		TotalNetSalary:   decimal.Zero,
		TotalDeductions:  decimal.Zero,
	}

	for _, p := range payrolls {
		switch p.Status {
		case StatusPending:
			summary.PendingCount++
		case StatusApproved:
			summary.ApprovedCount++
		case StatusPaid:
			summary.PaidCount++
		case StatusCancelled:
			summary.CancelledCount++
			continue
		}
		summary.TotalGrossSalary = summary.TotalGrossSalary.Add(p.GrossSalary)
		summary.TotalNetSalary = summary.TotalNetSalary.Add(p.NetSalary)
		summary.TotalDeductions = summary.TotalDeductions.Add(p.TotalDeductions)
	}

	return summary
}

func isValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodBankTransfer, PaymentMethodCash, PaymentMethodCheque:
		return true
	}
	return false
}

// generationError formats a per employee failure as "<label>: <code>: <message>".
func generationError(label string, err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return fmt.Sprintf("%s: %s: %s", label, appErr.Code, appErr.Message)
	}
	return fmt.Sprintf("%s: %s: %s", label, apperror.CodeInternalError, err.Error())
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func toCalculationResponse(r calculator.Result) CalculationResponse {
	return CalculationResponse{
		OvertimeAmount:  r.OvertimeAmount,
		GrossSalary:     r.GrossSalary,
		TotalDeductions: r.TotalDeductions,
		NetSalary:       r.NetSalary,
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(time.RFC3339)
	return &v
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:                 p.ID.String(),
		CompanyID:          p.CompanyID.String(),
		EmployeeID:         p.EmployeeID.String(),
		Month:              p.Month,
		Year:               p.Year,
		BaseSalary:         p.BaseSalary,
		OvertimeHours:      p.OvertimeHours,
		OvertimeRate:       p.OvertimeRate,
		OvertimeAmount:     p.OvertimeAmount,
		Bonus:              p.Bonus,
		Allowances:         p.Allowances,
		Commission:         p.Commission,
		SocialSecurity:     p.SocialSecurity,
		Tax:                p.Tax,
		OtherDeductions:    p.OtherDeductions,
		GrossSalary:        p.GrossSalary,
		TotalDeductions:    p.TotalDeductions,
		NetSalary:          p.NetSalary,
		DeductionNotes:     p.DeductionNotes,
		Notes:              p.Notes,
		Status:             p.Status,
		PaymentMethod:      p.PaymentMethod,
		PaymentRef:         p.PaymentRef,
		CreatedBy:          p.CreatedBy.String(),
		ApprovedAt:         formatTime(p.ApprovedAt),
		PaidAt:             formatTime(p.PaidAt),
		CancelledAt:        formatTime(p.CancelledAt),
		PayslipURL:         p.PayslipURL,
		PayslipGeneratedAt: formatTime(p.PayslipGeneratedAt),
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}

	if p.ApprovedBy != nil {
		v := p.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if p.Employee != nil {
		resp.Employee = &PayrollEmployeeResponse{
			ID:           p.Employee.ID.String(),
			EmployeeCode: p.Employee.EmployeeCode,
			FullName:     p.Employee.FullName(),
		}
	}

	return resp
}

func mapToListResponse(payrolls []Payroll) []PayrollResponse {
	resp := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		resp[i] = mapToResponse(p)
	}
	return resp
}
