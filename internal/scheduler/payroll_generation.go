package scheduler

import (
	"context"
	"time"

	"github.com/nateesoft/management-hrm-system/internal/payroll"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultPayrollSpec fires at 01:00 on the first day of every month.
const DefaultPayrollSpec = "0 1 1 * *"

// SystemActorID is recorded as created_by on scheduled records.
var SystemActorID = uuid.Nil.String()

type PayrollGenerator interface {
	Generate(ctx context.Context, companyID, actorID string, req payroll.GeneratePayrollRequest) (payroll.GenerateResult, error)
}

// CompanySource lists the tenants that get a monthly run.
type CompanySource interface {
	ListCompanyIDs(ctx context.Context) ([]string, error)
}

type gormCompanySource struct {
	db *gorm.DB
}

// NewCompanySource returns every company that has at least one active employee.
func NewCompanySource(db *gorm.DB) CompanySource {
	return &gormCompanySource{db: db}
}

func (s *gormCompanySource) ListCompanyIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := s.db.WithContext(ctx).
		Table("employees").
		Where("status = ? AND deleted_at IS NULL", payroll.EmployeeStatusActive).
		Distinct().
		Pluck("company_id", &ids).Error
	return ids, err
}

type PayrollJob struct {
	generator PayrollGenerator
	companies CompanySource
	timeout   time.Duration
	logger    *zap.Logger
}

func NewPayrollJob(generator PayrollGenerator, companies CompanySource, logger ...*zap.Logger) *PayrollJob {
	l := zap.L().Named("scheduler.payroll")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("scheduler.payroll")
	}
	return &PayrollJob{
		generator: generator,
		companies: companies,
		timeout:   10 * time.Minute,
		logger:    l,
	}
}

// RunOnce generates the month containing now for every company. A failing
// company is logged and does not stop the others.
func (j *PayrollJob) RunOnce(ctx context.Context, now time.Time) (map[string]payroll.GenerateResult, error) {
	ids, err := j.companies.ListCompanyIDs(ctx)
	if err != nil {
		j.logger.Error("list companies failed", zap.Error(err))
		return nil, err
	}

	req := payroll.GeneratePayrollRequest{Month: int(now.Month()), Year: now.Year()}
	results := make(map[string]payroll.GenerateResult, len(ids))

	for _, companyID := range ids {
		res, err := j.generator.Generate(ctx, companyID, SystemActorID, req)
		if err != nil {
			j.logger.Error("scheduled payroll generation failed",
				zap.String("company_id", companyID),
				zap.Int("month", req.Month),
				zap.Int("year", req.Year),
				zap.Error(err),
			)
			continue
		}
		results[companyID] = res
		j.logger.Info("scheduled payroll generated",
			zap.String("company_id", companyID),
			zap.Int("month", req.Month),
			zap.Int("year", req.Year),
			zap.Int("created", res.Created),
			zap.Int("skipped", res.Skipped),
			zap.Int("errors", len(res.Errors)),
		)
	}

	return results, nil
}

// Register adds the job to c. An empty spec uses DefaultPayrollSpec.
func (j *PayrollJob) Register(c *cron.Cron, spec string) (cron.EntryID, error) {
	if spec == "" {
		spec = DefaultPayrollSpec
	}
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.RunOnce(ctx, time.Now())
	})
}
