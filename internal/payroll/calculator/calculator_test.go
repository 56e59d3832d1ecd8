package calculator_test

import (
	"testing"

	"github.com/nateesoft/management-hrm-system/internal/payroll/calculator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_WorkedFigures(t *testing.T) {
	res := calculator.Calculate(calculator.Input{
		BaseSalary:     d("25000"),
		OvertimeHours:  d("10"),
		OvertimeRate:   d("1.5"),
		SocialSecurity: d("750"),
	})

	rounded := res.Rounded()
	assert.Equal(t, "2130.68", rounded.OvertimeAmount.StringFixed(2))
	assert.Equal(t, "27130.68", rounded.GrossSalary.StringFixed(2))
	assert.Equal(t, "750.00", rounded.TotalDeductions.StringFixed(2))
	assert.Equal(t, "26380.68", rounded.NetSalary.StringFixed(2))

	// the stored value keeps full precision
	assert.True(t, res.OvertimeAmount.GreaterThan(d("2130.68")))
	assert.True(t, res.OvertimeAmount.LessThan(d("2130.69")))
}

func TestCalculate_OvertimeFormula(t *testing.T) {
	tests := []struct {
		name  string
		base  string
		hours string
		rate  string
		want  string
	}{
		{name: "exact division", base: "17600", hours: "2", rate: "2", want: "400"},
		{name: "default rate when zero", base: "17600", hours: "4", rate: "0", want: "600"},
		{name: "no hours", base: "30000", hours: "0", rate: "1.5", want: "0"},
		{name: "zero base ignores hours", base: "0", hours: "40", rate: "3", want: "0"},
		{name: "fractional hours", base: "35200", hours: "1.5", rate: "1", want: "300"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := calculator.Calculate(calculator.Input{
				BaseSalary:    d(tt.base),
				OvertimeHours: d(tt.hours),
				OvertimeRate:  d(tt.rate),
			})
			assert.True(t, res.OvertimeAmount.Equal(d(tt.want)), "got %s", res.OvertimeAmount)
		})
	}
}

func TestCalculate_GrossAndDeductions(t *testing.T) {
	res := calculator.Calculate(calculator.Input{
		BaseSalary:      d("20000"),
		Bonus:           d("1000"),
		Allowances:      d("500.50"),
		Commission:      d("250"),
		SocialSecurity:  d("750"),
		Tax:             d("1200"),
		OtherDeductions: d("100"),
	})

	assert.True(t, res.GrossSalary.Equal(d("21750.50")))
	assert.True(t, res.TotalDeductions.Equal(d("2050")))
	assert.True(t, res.NetSalary.Equal(d("19700.50")))
}

func TestCalculate_NegativeNetIsNotClamped(t *testing.T) {
	res := calculator.Calculate(calculator.Input{
		BaseSalary:      d("1000"),
		Tax:             d("800"),
		OtherDeductions: d("700"),
	})

	assert.True(t, res.NetSalary.Equal(d("-500")))
	assert.True(t, res.NetSalary.IsNegative())
}

func TestCalculate_Deterministic(t *testing.T) {
	in := calculator.Input{
		BaseSalary:     d("33333.33"),
		OvertimeHours:  d("7.25"),
		OvertimeRate:   d("1.75"),
		Bonus:          d("12.34"),
		SocialSecurity: d("750"),
	}

	first := calculator.Calculate(in)
	second := calculator.Calculate(in)

	assert.Equal(t, first.OvertimeAmount.String(), second.OvertimeAmount.String())
	assert.Equal(t, first.GrossSalary.String(), second.GrossSalary.String())
	assert.Equal(t, first.TotalDeductions.String(), second.TotalDeductions.String())
	assert.Equal(t, first.NetSalary.String(), second.NetSalary.String())
}

func TestSuggestedSocialSecurity(t *testing.T) {
	assert.True(t, calculator.SuggestedSocialSecurity(d("10000")).Equal(d("500")))
	assert.True(t, calculator.SuggestedSocialSecurity(d("15000")).Equal(d("750")))
	assert.True(t, calculator.SuggestedSocialSecurity(d("90000")).Equal(d("750")))
	assert.True(t, calculator.SuggestedSocialSecurity(d("0")).IsZero())
}
