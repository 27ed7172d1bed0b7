package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"koperasi-core/internal/domain/account"
	"koperasi-core/internal/domain/errs"
	"koperasi-core/internal/domain/journal"
	"koperasi-core/internal/domain/uow"
	"koperasi-core/pkg/id"
)

// Usecase is the single authority for recording and reading monetary effects.
type Usecase struct {
	uow      uow.UnitOfWork
	accounts account.Repository
	journals journal.Repository
}

func NewUsecase(u uow.UnitOfWork, accounts account.Repository, journals journal.Repository) *Usecase {
	return &Usecase{uow: u, accounts: accounts, journals: journals}
}

type LineInput struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

type RecordInput struct {
	EntryDate   time.Time
	Description string
	Lines       []LineInput
	Reference   string
	Actor       string
	AutoPost    bool
}

// RecordIn validates and persists a journal entry using repositories already
// bound to the caller's transaction. Loan and provisioning flows call this to
// post their entries atomically with their own writes.
func (u *Usecase) RecordIn(ctx context.Context, r uow.Repos, in RecordInput) (*journal.Entry, error) {
	if len(in.Lines) < 2 {
		return nil, errs.Validation("insufficient_lines", "journal entry needs at least 2 lines, got %d", len(in.Lines))
	}

	lines := make([]journal.Line, 0, len(in.Lines))
	for _, li := range in.Lines {
		if li.Debit.IsNegative() || li.Credit.IsNegative() {
			return nil, errs.Validation("negative_amount", "line on %s has a negative amount", li.AccountCode)
		}
		if li.Debit.IsPositive() == li.Credit.IsPositive() {
			return nil, errs.Validation("invalid_line", "line on %s must carry exactly one of debit or credit", li.AccountCode)
		}
		acc, err := r.Accounts.GetByCode(ctx, li.AccountCode)
		if err != nil {
			return nil, errs.NotFound("account", li.AccountCode)
		}
		if !acc.Active {
			return nil, errs.Validation("inactive_account", "account %s is deactivated", li.AccountCode)
		}
		lines = append(lines, journal.Line{AccountCode: li.AccountCode, Debit: li.Debit, Credit: li.Credit})
	}

	if !journal.Balanced(lines) {
		d, c := journal.Totals(lines)
		return nil, errs.Validation("unbalanced", "debits %s != credits %s", d.StringFixed(2), c.StringFixed(2))
	}

	seq, err := r.Sequences.Next(ctx, journal.DayScope("JE", in.EntryDate))
	if err != nil {
		return nil, err
	}

	e := &journal.Entry{
		EntryID:     id.NewID32(),
		EntryNumber: journal.FormatNumber("JE", in.EntryDate, seq),
		EntryDate:   in.EntryDate,
		Description: in.Description,
		Reference:   in.Reference,
		Actor:       in.Actor,
		Status:      journal.StatusDraft,
		Lines:       lines,
	}
	if in.AutoPost {
		if err := e.MarkPosted(time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	if err := r.Journals.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Record persists a new journal entry in its own transaction.
func (u *Usecase) Record(ctx context.Context, in RecordInput) (*EntryDTO, error) {
	var out *journal.Entry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := u.RecordIn(ctx, r, in)
		if err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryDTO(out), nil
}

// Post transitions a draft entry to posted.
func (u *Usecase) Post(ctx context.Context, entryID string) (*EntryDTO, error) {
	var out *journal.Entry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		e, err := r.Journals.GetByEntryID(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("journal entry", entryID)
			}
			return err
		}
		if err := e.MarkPosted(time.Now().UTC()); err != nil {
			return err
		}
		if err := r.Journals.Save(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryDTO(out), nil
}

// Reverse creates a new posted entry with debit/credit swapped per original
// line and marks the original reversed. An entry can be reversed once.
func (u *Usecase) Reverse(ctx context.Context, entryID, reason string) (*EntryDTO, error) {
	var out *journal.Entry
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		orig, err := r.Journals.GetByEntryID(ctx, entryID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("journal entry", entryID)
			}
			return err
		}

		now := time.Now().UTC()
		seq, err := r.Sequences.Next(ctx, journal.DayScope("JE", now))
		if err != nil {
			return err
		}

		rev := &journal.Entry{
			EntryID:     id.NewID32(),
			EntryNumber: journal.FormatNumber("JE", now, seq),
			EntryDate:   now,
			Description: "Reversal of " + orig.EntryNumber + ": " + reason,
			Reference:   orig.Reference,
			Actor:       orig.Actor,
			Status:      journal.StatusDraft,
			ReversalOf:  orig.EntryID,
		}
		for _, l := range orig.Lines {
			rev.Lines = append(rev.Lines, journal.Line{
				AccountCode: l.AccountCode,
				Debit:       l.Credit,
				Credit:      l.Debit,
			})
		}

		// Validates the posted -> reversed transition before anything is written.
		if err := orig.MarkReversed(rev.EntryID); err != nil {
			return err
		}
		if err := rev.MarkPosted(now); err != nil {
			return err
		}
		if err := r.Journals.Create(ctx, rev); err != nil {
			return err
		}
		if err := r.Journals.Save(ctx, orig); err != nil {
			return err
		}
		out = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toEntryDTO(out), nil
}

// Get returns one entry with its lines.
func (u *Usecase) Get(ctx context.Context, entryID string) (*EntryDTO, error) {
	e, err := u.journals.GetByEntryID(ctx, entryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("journal entry", entryID)
		}
		return nil, err
	}
	return toEntryDTO(e), nil
}

// AccountLedger returns the posted movements of one account in creation
// order with a running balance accumulated on the account's normal side.
func (u *Usecase) AccountLedger(ctx context.Context, accountCode string, from, to time.Time) (*LedgerDTO, error) {
	acc, err := u.accounts.GetByCode(ctx, accountCode)
	if err != nil {
		return nil, errs.NotFound("account", accountCode)
	}
	lines, err := u.journals.ListPostedByAccount(ctx, accountCode, from, to)
	if err != nil {
		return nil, err
	}

	dto := &LedgerDTO{AccountCode: acc.Code, AccountName: acc.Name}
	running := decimal.Zero
	for _, l := range lines {
		if acc.NormalSide == account.NormalDebit {
			running = running.Add(l.Debit).Sub(l.Credit)
		} else {
			running = running.Add(l.Credit).Sub(l.Debit)
		}
		dto.Rows = append(dto.Rows, LedgerRowDTO{
			Date:           l.EntryDate,
			EntryNumber:    l.EntryNumber,
			Description:    l.Description,
			Debit:          l.Debit.InexactFloat64(),
			Credit:         l.Credit.InexactFloat64(),
			RunningBalance: running.InexactFloat64(),
		})
	}
	dto.Balance = running.InexactFloat64()
	return dto, nil
}

// TrialBalance reports every account's net posted balance as of a date.
// Accounts whose absolute balance is under one cent are omitted.
func (u *Usecase) TrialBalance(ctx context.Context, asOf time.Time) (*TrialBalanceDTO, error) {
	totals, err := u.journals.SumPostedByAccount(ctx, asOf)
	if err != nil {
		return nil, err
	}
	accs, err := u.accounts.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(accs))
	for _, a := range accs {
		names[a.Code] = a.Name
	}

	dto := &TrialBalanceDTO{AsOf: asOf}
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, t := range totals {
		net := t.Debit.Sub(t.Credit)
		if net.Abs().LessThan(journal.CentTolerance) {
			continue
		}
		row := TrialBalanceRowDTO{AccountCode: t.AccountCode, AccountName: names[t.AccountCode]}
		if net.IsPositive() {
			row.Debit = net.InexactFloat64()
			totalDebit = totalDebit.Add(net)
		} else {
			row.Credit = net.Neg().InexactFloat64()
			totalCredit = totalCredit.Add(net.Neg())
		}
		dto.Rows = append(dto.Rows, row)
	}
	dto.TotalDebit = totalDebit.InexactFloat64()
	dto.TotalCredit = totalCredit.InexactFloat64()
	dto.Balanced = totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(journal.CentTolerance)
	return dto, nil
}
