package kafka_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validEvent() kafka.OutboxEvent {
	return kafka.OutboxEvent{
		ID:            "3a4f0a52-5a79-4b0a-9d2b-6a4a4f0f7c11",
		RequestID:     "req-1",
		AggregateType: kafka.AggregatePayroll,
		AggregateID:   "7d3c2f7e-1f41-4a4b-9a3d-1a9ee0d0a001",
		EventType:     "payroll_payslip_requested",
		Topic:         "hrm.payroll.payslip.requested.v1",
		Payload:       []byte(`{"payroll_id":"x"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	assert.NoError(t, kafka.ValidateOutboxEvent(validEvent()))

	e := validEvent()
	e.ID = ""
	assert.Error(t, kafka.ValidateOutboxEvent(e))

	e = validEvent()
	e.Topic = ""
	assert.Error(t, kafka.ValidateOutboxEvent(e))

	e = validEvent()
	e.Payload = nil
	assert.Error(t, kafka.ValidateOutboxEvent(e))

	e = validEvent()
	e.Status = "weird"
	assert.Error(t, kafka.ValidateOutboxEvent(e))

	e = validEvent()
	e.AggregateType = "invoice"
	assert.Error(t, kafka.ValidateOutboxEvent(e))

	e = validEvent()
	e.AggregateID = ""
	assert.Error(t, kafka.ValidateOutboxEvent(e))
}

func TestNewOutboxEvent(t *testing.T) {
	payrollID := uuid.New()

	ev, err := kafka.NewOutboxEvent("req-9", kafka.AggregatePayroll, payrollID,
		"payroll_payslip_requested", "hrm.payroll.payslip.requested.v1",
		map[string]string{"payroll_id": payrollID.String()},
	)
	assert.NoError(t, err)
	assert.Equal(t, kafka.AggregatePayroll, ev.AggregateType)
	assert.Equal(t, payrollID.String(), ev.AggregateID)
	assert.Equal(t, kafka.OutboxStatusPending, ev.Status)
	assert.JSONEq(t, `{"payroll_id":"`+payrollID.String()+`"}`, string(ev.Payload))
	_, err = uuid.Parse(ev.ID)
	assert.NoError(t, err)

	_, err = kafka.NewOutboxEvent("", kafka.AggregateType("invoice"), payrollID, "x", "t", struct{}{})
	assert.Error(t, err)

	_, err = kafka.NewOutboxEvent("", kafka.AggregatePayroll, payrollID, "x", "t", make(chan int))
	assert.Error(t, err)
}

func TestOutboxRepository_CreateInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev := validEvent()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO outbox_events").
		WithArgs(ev.ID, ev.RequestID, string(ev.AggregateType), ev.AggregateID, ev.EventType, ev.Topic, ev.Payload, ev.Status).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)

	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), ev))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateRejectsInvalidEvent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	ev := validEvent()
	ev.Topic = ""

	err = kafka.NewOutboxRepository(db).Create(context.Background(), ev)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at",
	}).AddRow("e1", "req-1", "payroll", "p1", "payroll_payslip_requested", "topic", []byte(`{}`), kafka.OutboxStatusPending, 0, now)

	mock.ExpectQuery("FROM outbox_events").
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	events, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	if assert.Len(t, events, 1) {
		assert.Equal(t, "e1", events[0].ID)
		assert.Equal(t, "req-1", events[0].RequestID)
		assert.Equal(t, "p1", events[0].AggregateID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE outbox_events").
		WithArgs("e1", kafka.OutboxStatusFailed, "broker down").
		WillReturnError(errors.New("db gone"))

	err = kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", "broker down")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
