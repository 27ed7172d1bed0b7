package ckpn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"koperasi-core/internal/domain/account"
	"koperasi-core/internal/domain/errs"
	"koperasi-core/internal/domain/journal"
	"koperasi-core/internal/domain/loan"
	"koperasi-core/internal/domain/provision"
	"koperasi-core/internal/domain/uow"
	"koperasi-core/internal/usecase/ledger"
	"koperasi-core/pkg/id"
)

const placeholderMemberName = "(unknown member)"

// Service computes credit-loss (CKPN) reserves: single-loan read-only
// calculation and the monthly mutating batch run.
type Service struct {
	uow        uow.UnitOfWork
	loans      loan.Repository
	provisions provision.Repository
	ledger     *ledger.Usecase
}

func NewService(u uow.UnitOfWork, loans loan.Repository, provisions provision.Repository, lg *ledger.Usecase) *Service {
	return &Service{uow: u, loans: loans, provisions: provisions, ledger: lg}
}

// CalculateProvision classifies one loan as of a date and sizes its reserve.
// Read-only; nothing is persisted.
func (s *Service) CalculateProvision(ctx context.Context, loanID string, asOf time.Time) (*ProvisionDTO, error) {
	l, err := s.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}

	overdue, err := s.overdueDays(ctx, s.loans, l.ID, asOf)
	if err != nil {
		return nil, err
	}
	class := loan.Classify(overdue)
	rate := class.ProvisionRate()

	return &ProvisionDTO{
		LoanID:         l.LoanID,
		MemberName:     memberNameOf(l),
		AsOf:           asOf,
		OverdueDays:    overdue,
		Classification: string(class),
		Rate:           rate.InexactFloat64(),
		Outstanding:    l.OutstandingPrincipal.InexactFloat64(),
		Reserve:        l.OutstandingPrincipal.Mul(rate).Round(2).InexactFloat64(),
	}, nil
}

// RunMonthlyProvision reclassifies every active loan for the period, upserts
// its provision record and posts one aggregate journal entry for the net
// reserve movement. The whole batch is a single transaction: a mid-batch
// failure leaves no partial provisioning state.
func (s *Service) RunMonthlyProvision(ctx context.Context, period time.Time) (*RunReportDTO, error) {
	periodKey := provision.FormatPeriod(period)
	prevKey := provision.PreviousPeriod(period)

	var report *RunReportDTO
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		loans, err := r.Loans.ListActive(ctx)
		if err != nil {
			return err
		}

		rep := &RunReportDTO{Period: periodKey}
		newTotal, prevTotal := decimal.Zero, decimal.Zero

		for i := range loans {
			l := &loans[i]

			overdue, err := s.overdueDays(ctx, r.Loans, l.ID, period)
			if err != nil {
				return err
			}
			class := loan.Classify(overdue)
			rate := class.ProvisionRate()
			reserve := l.OutstandingPrincipal.Mul(rate).Round(2)

			rec := &provision.Record{
				ProvisionID:       id.NewID32(),
				LoanID:            l.ID,
				PeriodMonth:       periodKey,
				Classification:    class,
				OverdueDays:       overdue,
				OutstandingAmount: l.OutstandingPrincipal,
				Rate:              rate,
				ReserveAmount:     reserve,
			}
			if err := r.Provisions.Upsert(ctx, rec); err != nil {
				return err
			}

			prevReserve := decimal.Zero
			prev, err := r.Provisions.GetByLoanAndPeriod(ctx, l.ID, prevKey)
			switch {
			case err == nil:
				prevReserve = prev.ReserveAmount
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			if l.Collectibility != class {
				l.Collectibility = class
				if err := r.Loans.Save(ctx, l); err != nil {
					return err
				}
			}

			newTotal = newTotal.Add(reserve)
			prevTotal = prevTotal.Add(prevReserve)
			rep.Rows = append(rep.Rows, ProvisionDTO{
				LoanID:         l.LoanID,
				MemberName:     memberNameOf(l),
				AsOf:           period,
				OverdueDays:    overdue,
				Classification: string(class),
				Rate:           rate.InexactFloat64(),
				Outstanding:    l.OutstandingPrincipal.InexactFloat64(),
				Reserve:        reserve.InexactFloat64(),
			})
		}

		delta := newTotal.Sub(prevTotal)
		if delta.Abs().GreaterThan(journal.CentTolerance) {
			// The period nets into one aggregate entry so the ledger carries a
			// single auditable number per run, not one entry per loan.
			lines := []ledger.LineInput{
				{AccountCode: account.CodeProvisionExpense, Debit: delta},
				{AccountCode: account.CodeLoanLossReserve, Credit: delta},
			}
			if delta.IsNegative() {
				lines = []ledger.LineInput{
					{AccountCode: account.CodeLoanLossReserve, Debit: delta.Neg()},
					{AccountCode: account.CodeProvisionExpense, Credit: delta.Neg()},
				}
			}
			entry, err := s.ledger.RecordIn(ctx, r, ledger.RecordInput{
				EntryDate:   period,
				Description: fmt.Sprintf("CKPN monthly provisioning %s", periodKey),
				Lines:       lines,
				Reference:   "CKPN-" + periodKey,
				AutoPost:    true,
			})
			if err != nil {
				return err
			}
			rep.EntryNumber = entry.EntryNumber
		}

		rep.LoanCount = len(rep.Rows)
		rep.TotalReserve = newTotal.InexactFloat64()
		rep.PreviousReserve = prevTotal.InexactFloat64()
		rep.Delta = delta.InexactFloat64()
		report = rep
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// overdueDays measures how far past due the earliest unpaid installment is.
// Fully paid or not-yet-due loans count as zero.
func (s *Service) overdueDays(ctx context.Context, repo loan.Repository, loanNumericID uint64, asOf time.Time) (int, error) {
	inst, err := repo.FirstUnpaidInstallment(ctx, loanNumericID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	days := int(asOf.Sub(inst.DueDate).Hours() / 24)
	if days < 0 {
		return 0, nil
	}
	return days, nil
}

// A loan missing its member reference still provisions; the report shows a
// placeholder name instead of aborting the batch.
func memberNameOf(l *loan.Loan) string {
	if l.MemberName == "" {
		return placeholderMemberName
	}
	return l.MemberName
}
