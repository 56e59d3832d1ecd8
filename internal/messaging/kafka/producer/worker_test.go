package producer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka"
	kafkaMock "github.com/nateesoft/management-hrm-system/internal/messaging/kafka/mock"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	written []kafkago.Message
	failFor map[string]error
}

func (w *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if err, ok := w.failFor[string(m.Key)]; ok {
			return err
		}
		w.written = append(w.written, m)
	}
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "e1", RequestID: "req-1", AggregateID: "p1", AggregateType: "payroll", EventType: "payroll_payslip_requested", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "e1").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		if assert.Len(t, writer.written, 1) {
			msg := writer.written[0]
			assert.Equal(t, "t", msg.Topic)
			assert.Equal(t, []byte("p1"), msg.Key)
			assert.Len(t, msg.Headers, 3)
		}
	})

	t.Run("failed publish is marked failed and batch continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{failFor: map[string]error{"p1": errors.New("broker down")}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "e1", AggregateID: "p1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "e2", AggregateID: "p2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "e1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "e2").Return(nil)

		err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop())

		assert.NoError(t, err)
		assert.Len(t, writer.written, 1)
	})

	t.Run("list error is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)

		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop())
		assert.Error(t, err)
	})
}
