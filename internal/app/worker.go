package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka/producer"
	"github.com/nateesoft/management-hrm-system/internal/payroll"
	"github.com/nateesoft/management-hrm-system/internal/scheduler"
	"github.com/nateesoft/management-hrm-system/internal/shared/connection"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// RunWorker relays outbox events to Kafka and runs the monthly payroll job.
func RunWorker(cfg Config) error {
	logger := zap.L().Named("app.worker")

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

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries, logger)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	payrollService := payroll.NewServiceWithOutbox(
		sqlDB,
		payroll.NewRepository(gormDB),
		outboxRepo,
		cfg.Payslips,
	)

	job := scheduler.NewPayrollJob(payrollService, scheduler.NewCompanySource(gormDB))
	c := cron.New()
	if _, err := job.Register(c, cfg.PayrollCron); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}
