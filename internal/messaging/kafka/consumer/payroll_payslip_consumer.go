package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nateesoft/management-hrm-system/internal/events"
	"github.com/nateesoft/management-hrm-system/internal/payroll"
	"github.com/nateesoft/management-hrm-system/internal/shared/apperror"
	"github.com/nateesoft/management-hrm-system/internal/shared/contextutil"

	"go.uber.org/zap"
)

// PayslipGenerator is the part of payroll.Service this consumer needs.
type PayslipGenerator interface {
	GeneratePayslip(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error)
}

func ConsumePayrollPayslipRequested(
	ctx context.Context,
	reader MessageReader,
	payrollService PayslipGenerator,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_payslip")
	log.Info("payroll payslip consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll payslip consumer stopped")
				return
			}
			log.Error("fetch payroll payslip message failed", zap.Error(err))
			continue
		}

		var event events.PayrollPayslipRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll payslip event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := contextutil.WithRequestID(ctx, event.RequestID)
		_, err = payrollService.GeneratePayslip(msgCtx, event.CompanyID, event.PayrollID)
		if err != nil {
			if isPermanent(err) {
				log.Warn("payslip request cannot be fulfilled, skipping",
					zap.String("payroll_id", event.PayrollID),
					zap.String("company_id", event.CompanyID),
					zap.Error(err),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("generate payslip failed",
				zap.String("payroll_id", event.PayrollID),
				zap.String("company_id", event.CompanyID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll payslip message failed", zap.Error(err))
			continue
		}

		log.Info("payroll payslip generated",
			zap.String("request_id", event.RequestID),
			zap.String("payroll_id", event.PayrollID),
			zap.String("company_id", event.CompanyID),
		)
	}
}

// isPermanent reports client side errors that a retry will not fix.
func isPermanent(err error) bool {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError
}
