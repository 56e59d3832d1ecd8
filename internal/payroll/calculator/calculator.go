// Package calculator derives the computed figures of a payroll record.
//
// The same Calculate is used by the preview endpoint, single record create,
// update and bulk generation so the number shown before submit is the number
// that gets stored.
package calculator

import "github.com/shopspring/decimal"

// StandardMonthlyHours is 22 working days of 8 hours.
const StandardMonthlyHours = 176

var (
	DefaultOvertimeRate = decimal.RequireFromString("1.5")

	socialSecurityRate = decimal.RequireFromString("0.05")
	socialSecurityCap  = decimal.NewFromInt(750)
	standardHours      = decimal.NewFromInt(StandardMonthlyHours)
)

// displayPlaces is the number of decimal places used for presentation.
const displayPlaces = 2

type Input struct {
	BaseSalary      decimal.Decimal
	OvertimeHours   decimal.Decimal
	OvertimeRate    decimal.Decimal // zero means DefaultOvertimeRate
	Bonus           decimal.Decimal
	Allowances      decimal.Decimal
	Commission      decimal.Decimal
	SocialSecurity  decimal.Decimal
	Tax             decimal.Decimal
	OtherDeductions decimal.Decimal
}

type Result struct {
	OvertimeAmount  decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

// Calculate never fails. Inputs outside the documented domain are a caller
// validation concern. NetSalary is not clamped and may be negative.
func Calculate(in Input) Result {
	rate := in.OvertimeRate
	if rate.IsZero() {
		rate = DefaultOvertimeRate
	}

	overtime := decimal.Zero
	if in.BaseSalary.IsPositive() {
		// multiply before dividing so the only inexact step is the final division
		overtime = in.BaseSalary.Mul(in.OvertimeHours).Mul(rate).Div(standardHours)
	}

	gross := in.BaseSalary.
		Add(overtime).
		Add(in.Bonus).
		Add(in.Allowances).
		Add(in.Commission)

	deductions := in.SocialSecurity.
		Add(in.Tax).
		Add(in.OtherDeductions)

	return Result{
		OvertimeAmount:  overtime,
		GrossSalary:     gross,
		TotalDeductions: deductions,
		NetSalary:       gross.Sub(deductions),
	}
}

// Rounded returns a copy for display. Stored values and further arithmetic
// always use the unrounded result.
func (r Result) Rounded() Result {
	return Result{
		OvertimeAmount:  r.OvertimeAmount.Round(displayPlaces),
		GrossSalary:     r.GrossSalary.Round(displayPlaces),
		TotalDeductions: r.TotalDeductions.Round(displayPlaces),
		NetSalary:       r.NetSalary.Round(displayPlaces),
	}
}

// SuggestedSocialSecurity is the form pre-fill: 5% of base salary capped at 750.
// It is never applied implicitly by Calculate.
func SuggestedSocialSecurity(baseSalary decimal.Decimal) decimal.Decimal {
	if !baseSalary.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(baseSalary.Mul(socialSecurityRate), socialSecurityCap)
}
