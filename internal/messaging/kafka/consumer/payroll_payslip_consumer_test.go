package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/events"
	"github.com/nateesoft/management-hrm-system/internal/messaging/kafka/consumer"
	"github.com/nateesoft/management-hrm-system/internal/payroll"
	payrollerrors "github.com/nateesoft/management-hrm-system/internal/payroll/errors"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// fakeReader serves queued messages and then cancels the consumer.
type fakeReader struct {
	msgs      []kafkago.Message
	committed []kafkago.Message
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	r.committed = append(r.committed, msgs...)
	return nil
}

type fakeGenerator struct {
	calls []string
	errs  map[string]error
}

func (g *fakeGenerator) GeneratePayslip(ctx context.Context, companyID, id string) (payroll.PayrollResponse, error) {
	g.calls = append(g.calls, id)
	if err, ok := g.errs[id]; ok {
		return payroll.PayrollResponse{}, err
	}
	return payroll.PayrollResponse{ID: id}, nil
}

func payslipMessage(t *testing.T, payrollID string) kafkago.Message {
	t.Helper()
	payload, err := json.Marshal(events.PayrollPayslipRequestedEvent{
		EventType: events.PayrollPayslipRequestedType,
		PayrollID: payrollID,
		CompanyID: "c1",
	})
	assert.NoError(t, err)
	return kafkago.Message{Key: []byte(payrollID), Value: payload}
}

func TestConsumePayrollPayslipRequested(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		msgs: []kafkago.Message{
			payslipMessage(t, "ok"),
			{Value: []byte("not json")},
			payslipMessage(t, "gone"),
			payslipMessage(t, "flaky"),
		},
	}
	gen := &fakeGenerator{errs: map[string]error{
		"gone":  payrollerrors.ErrPayrollNotFound,
		"flaky": errors.New("disk full"),
	}}

	consumer.ConsumePayrollPayslipRequested(ctx, reader, gen, zap.NewNop())

	assert.Equal(t, []string{"ok", "gone", "flaky"}, gen.calls)
	// the malformed and permanently failing messages are committed, the
	// transient failure is left for redelivery
	assert.Len(t, reader.committed, 3)
	for _, m := range reader.committed {
		assert.NotEqual(t, "flaky", string(m.Key))
	}
}
