package interest

import (
	"math"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/errs"
)

const (
	// Newton-Raphson stop conditions for the EIR solve.
	maxIterations = 100
	tolerance     = 1e-7
)

// Engine computes annuity payments and effective interest rates. Floating
// point is confined to the iterative solve; monetary outputs are returned as
// decimals rounded to 2 places.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// CalculateMonthlyPayment returns the fixed annuity payment for a loan.
// monthlyRate is a fraction (1% == 0.01). A zero rate splits the principal
// evenly over the term.
func (e *Engine) CalculateMonthlyPayment(principal decimal.Decimal, monthlyRate float64, termMonths int) (decimal.Decimal, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, errs.Validation("non_positive_principal", "principal must be > 0")
	}
	if termMonths <= 0 {
		return decimal.Zero, errs.Validation("non_positive_term", "term must be > 0 months")
	}

	if monthlyRate == 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2), nil
	}

	// P * r * (1+r)^n / ((1+r)^n - 1)
	factor := math.Pow(1+monthlyRate, float64(termMonths))
	pay := principal.InexactFloat64() * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(pay).Round(2), nil
}

// CalculateEIR solves for the annual effective interest rate of a loan whose
// net proceeds are principal minus upfront fees. Returned as a fraction
// rounded to 6 decimals.
//
// With no fees the EIR is the nominal rate by definition. Otherwise the
// monthly rate r solves
//
//	-(P - fees) + sum_t pay*(1+r)^-t = 0
//
// via Newton-Raphson seeded at the nominal monthly rate. A solve that does
// not converge within the iteration cap still returns the last guess, paired
// with a ComputationError marker; callers keep the rate and drop the marker,
// the EIR is informational and never posting-critical.
func (e *Engine) CalculateEIR(principal decimal.Decimal, nominalAnnualPct float64, fees decimal.Decimal, termMonths int) (float64, error) {
	if principal.LessThanOrEqual(decimal.Zero) {
		return 0, errs.Validation("non_positive_principal", "principal must be > 0")
	}
	if termMonths <= 0 {
		return 0, errs.Validation("non_positive_term", "term must be > 0 months")
	}
	if !fees.IsPositive() {
		return nominalAnnualPct / 100, nil
	}

	monthlyNominal := nominalAnnualPct / 100 / 12
	payment, err := e.CalculateMonthlyPayment(principal, monthlyNominal, termMonths)
	if err != nil {
		return 0, err
	}
	pay := payment.InexactFloat64()
	proceeds := principal.Sub(fees).InexactFloat64()

	r := monthlyNominal
	if r == 0 {
		r = tolerance // the zero seed has a degenerate derivative
	}
	converged := false
	for i := 0; i < maxIterations; i++ {
		f := -proceeds
		fp := 0.0
		for t := 1; t <= termMonths; t++ {
			ft := float64(t)
			f += pay * math.Pow(1+r, -ft)
			fp += -ft * pay * math.Pow(1+r, -(ft+1))
		}
		if fp == 0 {
			break
		}
		next := r - f/fp
		delta := math.Abs(next - r)
		r = next
		if delta < tolerance {
			converged = true
			break
		}
	}

	annual := math.Round(r*12*1e6) / 1e6
	if !converged {
		return annual, errs.Computation("eir", "no convergence after %d iterations, keeping last guess %.6f", maxIterations, annual)
	}
	return annual, nil
}
