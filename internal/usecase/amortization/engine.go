package amortization

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/errs"
	"koperasi-core/internal/usecase/interest"
)

// Installment is one computed schedule row; a pure value, not a stored record.
type Installment struct {
	Number           int             `json:"number"`
	DueDate          time.Time       `json:"due_date"`
	BeginningBalance decimal.Decimal `json:"beginning_balance"`
	PrincipalAmount  decimal.Decimal `json:"principal_amount"`
	InterestAmount   decimal.Decimal `json:"interest_amount"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	EndingBalance    decimal.Decimal `json:"ending_balance"`
}

// Summary aggregates a prospective loan for simulation endpoints.
type Summary struct {
	MonthlyPayment decimal.Decimal `json:"monthly_payment"`
	TotalPayment   decimal.Decimal `json:"total_payment"`
	TotalInterest  decimal.Decimal `json:"total_interest"`
	EffectiveRate  float64         `json:"effective_rate"`
}

type Engine struct {
	interest *interest.Engine
}

func NewEngine(ie *interest.Engine) *Engine { return &Engine{interest: ie} }

// GenerateSchedule produces the full amortization schedule. The final
// installment's principal portion is forced to the remaining balance so the
// principal column sums exactly to the original principal; all rounding
// drift lands there.
func (e *Engine) GenerateSchedule(principal decimal.Decimal, annualRatePct float64, termMonths int, startDate time.Time) ([]Installment, error) {
	monthlyRate := annualRatePct / 100 / 12
	payment, err := e.interest.CalculateMonthlyPayment(principal, monthlyRate, termMonths)
	if err != nil {
		return nil, err
	}

	monthlyRateDec := decimal.NewFromFloat(monthlyRate)
	balance := principal
	schedule := make([]Installment, 0, termMonths)

	for i := 1; i <= termMonths; i++ {
		interestAmt := balance.Mul(monthlyRateDec).Round(2)
		principalAmt := payment.Sub(interestAmt).Round(2)
		total := payment
		if i == termMonths {
			principalAmt = balance.Round(2)
			total = principalAmt.Add(interestAmt)
		}

		ending := balance.Sub(principalAmt)
		if ending.IsNegative() {
			ending = decimal.Zero
		}

		schedule = append(schedule, Installment{
			Number:           i,
			DueDate:          startDate.AddDate(0, i, 0),
			BeginningBalance: balance,
			PrincipalAmount:  principalAmt,
			InterestAmount:   interestAmt,
			TotalAmount:      total,
			EndingBalance:    ending,
		})
		balance = ending
	}

	return schedule, nil
}

// GetSummary computes the headline numbers for a prospective loan without
// persisting anything.
func (e *Engine) GetSummary(principal decimal.Decimal, annualRatePct float64, fees decimal.Decimal, termMonths int) (*Summary, error) {
	schedule, err := e.GenerateSchedule(principal, annualRatePct, termMonths, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	eir, err := e.interest.CalculateEIR(principal, annualRatePct, fees, termMonths)
	if err != nil {
		var ce *errs.ComputationError
		if !errors.As(err, &ce) {
			return nil, err
		}
		// best-effort rate from a non-converged solve is still reportable
	}

	totalPayment := decimal.Zero
	for _, inst := range schedule {
		totalPayment = totalPayment.Add(inst.TotalAmount)
	}
	return &Summary{
		MonthlyPayment: schedule[0].TotalAmount,
		TotalPayment:   totalPayment,
		TotalInterest:  totalPayment.Sub(principal),
		EffectiveRate:  eir,
	}, nil
}
