package ckpn

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/account"
	"koperasi-core/internal/domain/errs"
	"koperasi-core/internal/domain/journal"
	"koperasi-core/internal/domain/loan"
	"koperasi-core/internal/domain/provision"
	"koperasi-core/internal/domain/uow"
	"koperasi-core/internal/testutil/accountmock"
	"koperasi-core/internal/testutil/journalmock"
	"koperasi-core/internal/testutil/loanmock"
	"koperasi-core/internal/testutil/provisionmock"
	"koperasi-core/internal/testutil/uowmock"
	"koperasi-core/internal/usecase/ledger"
)

// fixture assembles the provisioning service over in-memory mocks with a
// real ledger usecase writing into a captured journal.
type fixture struct {
	svc        *Service
	loans      *loanmock.Repo
	provisions *provisionmock.Repo
	entries    []*journal.Entry
	upserts    []*provision.Record
	savedLoans []*loan.Loan
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{loans: &loanmock.Repo{}, provisions: &provisionmock.Repo{}}

	f.provisions.UpsertFn = func(ctx context.Context, r *provision.Record) error {
		f.upserts = append(f.upserts, r)
		return nil
	}
	f.loans.SaveFn = func(ctx context.Context, l *loan.Loan) error {
		f.savedLoans = append(f.savedLoans, l)
		return nil
	}

	accounts := accountmock.NewInMemory(account.DefaultChart...)
	journals := &journalmock.Repo{
		CreateFn: func(ctx context.Context, e *journal.Entry) error {
			f.entries = append(f.entries, e)
			return nil
		},
	}
	repos := uow.Repos{
		Accounts:   accounts,
		Journals:   journals,
		Sequences:  &journalmock.Sequences{},
		Loans:      f.loans,
		Provisions: f.provisions,
	}
	tx := uowmock.Passthrough(repos, nil)
	lg := ledger.NewUsecase(tx, accounts, journals)
	f.svc = NewService(tx, f.loans, f.provisions, lg)
	return f
}

func activeLoan(id uint64, outstanding int64) loan.Loan {
	return loan.Loan{
		ID:                   id,
		LoanID:               strings.Repeat("ef", 16),
		MemberName:           "Budi Santoso",
		OutstandingPrincipal: decimal.NewFromInt(outstanding),
		Collectibility:       loan.CollectCurrent,
		State:                loan.StateActive,
	}
}

func TestCalculateProvision(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("overdue loan classified and sized", func(t *testing.T) {
		f := newFixture(t)
		l := activeLoan(1, 2_000_000)
		f.loans.GetByLoanIDFn = func(ctx context.Context, id string) (*loan.Loan, error) {
			return &l, nil
		}
		// Earliest unpaid installment is 95 days past due: substandard, 15%.
		f.loans.FirstUnpaidInstallmentFn = func(ctx context.Context, id uint64) (*loan.Installment, error) {
			return &loan.Installment{Number: 3, DueDate: asOf.AddDate(0, 0, -95)}, nil
		}

		dto, err := f.svc.CalculateProvision(ctx, l.LoanID, asOf)
		if err != nil {
			t.Fatalf("CalculateProvision: %v", err)
		}
		if dto.OverdueDays != 95 {
			t.Fatalf("overdue days = %d", dto.OverdueDays)
		}
		if dto.Classification != string(loan.CollectSubstandard) {
			t.Fatalf("classification = %s", dto.Classification)
		}
		if dto.Rate != 0.15 {
			t.Fatalf("rate = %v", dto.Rate)
		}
		if dto.Reserve != 300_000 {
			t.Fatalf("reserve = %v", dto.Reserve)
		}
	})

	t.Run("loan with no unpaid installments is current", func(t *testing.T) {
		f := newFixture(t)
		l := activeLoan(1, 1_000_000)
		f.loans.GetByLoanIDFn = func(ctx context.Context, id string) (*loan.Loan, error) {
			return &l, nil
		}
		// loanmock defaults FirstUnpaidInstallment to gorm.ErrRecordNotFound.
		dto, err := f.svc.CalculateProvision(ctx, l.LoanID, asOf)
		if err != nil {
			t.Fatalf("CalculateProvision: %v", err)
		}
		if dto.Classification != string(loan.CollectCurrent) || dto.OverdueDays != 0 {
			t.Fatalf("dto = %+v", dto)
		}
		if dto.Reserve != 10_000 {
			t.Fatalf("reserve = %v, want 1%% of outstanding", dto.Reserve)
		}
	})

	t.Run("unknown loan", func(t *testing.T) {
		f := newFixture(t)
		var nf *errs.NotFoundError
		if _, err := f.svc.CalculateProvision(ctx, "missing", asOf); !errors.As(err, &nf) {
			t.Fatalf("want NotFoundError, got %v", err)
		}
	})
}

func TestRunMonthlyProvision(t *testing.T) {
	ctx := context.Background()
	period := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("first run posts the full reserve", func(t *testing.T) {
		f := newFixture(t)
		l1 := activeLoan(1, 1_000_000) // current: 10,000
		l2 := activeLoan(2, 2_000_000) // substandard: 300,000
		l2.LoanID = strings.Repeat("aa", 16)
		f.loans.ListActiveFn = func(ctx context.Context) ([]loan.Loan, error) {
			return []loan.Loan{l1, l2}, nil
		}
		f.loans.FirstUnpaidInstallmentFn = func(ctx context.Context, id uint64) (*loan.Installment, error) {
			if id == 2 {
				return &loan.Installment{DueDate: period.AddDate(0, 0, -95)}, nil
			}
			return &loan.Installment{DueDate: period.AddDate(0, 0, 10)}, nil
		}

		rep, err := f.svc.RunMonthlyProvision(ctx, period)
		if err != nil {
			t.Fatalf("RunMonthlyProvision: %v", err)
		}
		if rep.Period != "2025-06" {
			t.Fatalf("period = %s", rep.Period)
		}
		if rep.LoanCount != 2 || len(rep.Rows) != 2 {
			t.Fatalf("loan count = %d", rep.LoanCount)
		}
		if rep.TotalReserve != 310_000 || rep.PreviousReserve != 0 || rep.Delta != 310_000 {
			t.Fatalf("totals: %+v", rep)
		}

		if len(f.upserts) != 2 {
			t.Fatalf("upserts = %d", len(f.upserts))
		}
		if f.upserts[1].Classification != loan.CollectSubstandard || f.upserts[1].PeriodMonth != "2025-06" {
			t.Fatalf("record = %+v", f.upserts[1])
		}

		// The delinquent loan's stored classification follows the run.
		if len(f.savedLoans) != 1 || f.savedLoans[0].ID != 2 || f.savedLoans[0].Collectibility != loan.CollectSubstandard {
			t.Fatalf("saved loans = %+v", f.savedLoans)
		}

		// One aggregate entry: provision expense against the allowance.
		if len(f.entries) != 1 {
			t.Fatalf("entries = %d", len(f.entries))
		}
		e := f.entries[0]
		if rep.EntryNumber != e.EntryNumber {
			t.Fatalf("report entry number = %s", rep.EntryNumber)
		}
		if e.Status != journal.StatusPosted || e.Reference != "CKPN-2025-06" {
			t.Fatalf("entry: status=%s ref=%s", e.Status, e.Reference)
		}
		if e.Lines[0].AccountCode != account.CodeProvisionExpense || !e.Lines[0].Debit.Equal(decimal.NewFromInt(310_000)) {
			t.Fatalf("expense line: %+v", e.Lines[0])
		}
		if e.Lines[1].AccountCode != account.CodeLoanLossReserve || !e.Lines[1].Credit.Equal(decimal.NewFromInt(310_000)) {
			t.Fatalf("allowance line: %+v", e.Lines[1])
		}
	})

	t.Run("shrinking reserve posts a release", func(t *testing.T) {
		f := newFixture(t)
		l := activeLoan(1, 1_000_000)
		f.loans.ListActiveFn = func(ctx context.Context) ([]loan.Loan, error) {
			return []loan.Loan{l}, nil
		}
		// Last month the loan was substandard with a 300,000 reserve.
		f.provisions.GetByLoanAndPeriodFn = func(ctx context.Context, id uint64, pm string) (*provision.Record, error) {
			if pm != "2025-05" {
				t.Fatalf("previous period = %s", pm)
			}
			return &provision.Record{ReserveAmount: decimal.NewFromInt(300_000)}, nil
		}

		rep, err := f.svc.RunMonthlyProvision(ctx, period)
		if err != nil {
			t.Fatalf("RunMonthlyProvision: %v", err)
		}
		if rep.Delta != -290_000 {
			t.Fatalf("delta = %v", rep.Delta)
		}

		e := f.entries[0]
		if e.Lines[0].AccountCode != account.CodeLoanLossReserve || !e.Lines[0].Debit.Equal(decimal.NewFromInt(290_000)) {
			t.Fatalf("allowance line: %+v", e.Lines[0])
		}
		if e.Lines[1].AccountCode != account.CodeProvisionExpense || !e.Lines[1].Credit.Equal(decimal.NewFromInt(290_000)) {
			t.Fatalf("expense line: %+v", e.Lines[1])
		}
	})

	t.Run("unchanged reserve posts nothing", func(t *testing.T) {
		f := newFixture(t)
		l := activeLoan(1, 1_000_000)
		f.loans.ListActiveFn = func(ctx context.Context) ([]loan.Loan, error) {
			return []loan.Loan{l}, nil
		}
		f.provisions.GetByLoanAndPeriodFn = func(ctx context.Context, id uint64, pm string) (*provision.Record, error) {
			return &provision.Record{ReserveAmount: decimal.NewFromInt(10_000)}, nil
		}

		rep, err := f.svc.RunMonthlyProvision(ctx, period)
		if err != nil {
			t.Fatalf("RunMonthlyProvision: %v", err)
		}
		if rep.Delta != 0 || rep.EntryNumber != "" {
			t.Fatalf("report = %+v", rep)
		}
		if len(f.entries) != 0 {
			t.Fatalf("entries = %d", len(f.entries))
		}
		// Records are still upserted even when no entry posts.
		if len(f.upserts) != 1 {
			t.Fatalf("upserts = %d", len(f.upserts))
		}
	})

	t.Run("no active loans", func(t *testing.T) {
		f := newFixture(t)
		rep, err := f.svc.RunMonthlyProvision(ctx, period)
		if err != nil {
			t.Fatalf("RunMonthlyProvision: %v", err)
		}
		if rep.LoanCount != 0 || len(f.entries) != 0 {
			t.Fatalf("report = %+v entries = %d", rep, len(f.entries))
		}
	})

	t.Run("missing member name gets a placeholder", func(t *testing.T) {
		f := newFixture(t)
		l := activeLoan(1, 500_000)
		l.MemberName = ""
		f.loans.ListActiveFn = func(ctx context.Context) ([]loan.Loan, error) {
			return []loan.Loan{l}, nil
		}

		rep, err := f.svc.RunMonthlyProvision(ctx, period)
		if err != nil {
			t.Fatalf("RunMonthlyProvision: %v", err)
		}
		if rep.Rows[0].MemberName != "(unknown member)" {
			t.Fatalf("member name = %q", rep.Rows[0].MemberName)
		}
	})

	t.Run("mid-batch failure aborts the run", func(t *testing.T) {
		f := newFixture(t)
		l1 := activeLoan(1, 1_000_000)
		l2 := activeLoan(2, 1_000_000)
		f.loans.ListActiveFn = func(ctx context.Context) ([]loan.Loan, error) {
			return []loan.Loan{l1, l2}, nil
		}
		boom := errors.New("storage gone")
		f.provisions.UpsertFn = func(ctx context.Context, r *provision.Record) error {
			if r.LoanID == 2 {
				return boom
			}
			return nil
		}

		if _, err := f.svc.RunMonthlyProvision(ctx, period); !errors.Is(err, boom) {
			t.Fatalf("want %v, got %v", boom, err)
		}
		if len(f.entries) != 0 {
			t.Fatalf("entry posted despite mid-batch failure")
		}
	})
}
