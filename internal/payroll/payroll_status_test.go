package payroll_test

import (
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/payroll"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{payroll.StatusPending, payroll.StatusApproved, true},
		{payroll.StatusPending, payroll.StatusPaid, true},
		{payroll.StatusPending, payroll.StatusCancelled, true},
		{payroll.StatusApproved, payroll.StatusPaid, true},
		{payroll.StatusApproved, payroll.StatusCancelled, true},
		{payroll.StatusApproved, payroll.StatusPending, false},
		{payroll.StatusApproved, payroll.StatusApproved, false},
		{payroll.StatusPaid, payroll.StatusApproved, false},
		{payroll.StatusPaid, payroll.StatusCancelled, false},
		{payroll.StatusPaid, payroll.StatusPending, false},
		{payroll.StatusCancelled, payroll.StatusPending, false},
		{payroll.StatusCancelled, payroll.StatusPaid, false},
		{"UNKNOWN", payroll.StatusPaid, false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, payroll.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, payroll.IsTerminal(payroll.StatusPaid))
	assert.True(t, payroll.IsTerminal(payroll.StatusCancelled))
	assert.False(t, payroll.IsTerminal(payroll.StatusPending))
	assert.False(t, payroll.IsTerminal(payroll.StatusApproved))
}
