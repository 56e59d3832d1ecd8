package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/nateesoft/management-hrm-system/internal/events"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka/consumer"
	"github.com/nateesoft/management-hrm-system/internal/payroll"
	"github.com/nateesoft/management-hrm-system/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer renders payslips for paid payrolls.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if err := cfg.RequireKafka(); err != nil {
		return err
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries, logger)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	payrollService := payroll.NewServiceWithOutbox(
		sqlDB,
		payroll.NewRepository(gormDB),
		kafka.NewOutboxRepository(sqlDB),
		cfg.Payslips,
	)

	reader := consumer.NewReader(cfg.KafkaBroker, events.PayrollPayslipRequestedTopic, cfg.ConsumerGroupID)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePayrollPayslipRequested(ctx, reader, payrollService, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
