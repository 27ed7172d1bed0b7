package loan

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
	domain "koperasi-core/internal/domain/loan"
	"koperasi-core/internal/domain/uow"
	"koperasi-core/internal/usecase/amortization"
	"koperasi-core/internal/usecase/interest"
	"koperasi-core/internal/usecase/ledger"
	"koperasi-core/pkg/id"
)

type Usecase struct {
	repo     domain.Repository
	uow      uow.UnitOfWork
	ledger   *ledger.Usecase
	interest *interest.Engine
	amort    *amortization.Engine
}

func NewUsecase(repo domain.Repository, u uow.UnitOfWork, lg *ledger.Usecase, ie *interest.Engine, ae *amortization.Engine) *Usecase {
	return &Usecase{repo: repo, uow: u, ledger: lg, interest: ie, amort: ae}
}

func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if len(in.MemberID) != 32 {
		return nil, errs.Validation("invalid_member_id", "member id must be 32-char hex")
	}
	principal := decimal.NewFromFloat(in.Principal).Round(2)
	fees := decimal.NewFromFloat(in.Fees).Round(2)
	if !principal.IsPositive() {
		return nil, errs.Validation("non_positive_principal", "principal must be > 0")
	}
	if in.TermMonths <= 0 {
		return nil, errs.Validation("non_positive_term", "term must be > 0 months")
	}
	if in.RatePct < 0 || fees.IsNegative() {
		return nil, errs.Validation("negative_rate_or_fees", "rate and fees must be >= 0")
	}

	// One pending application per member at a time.
	pending, err := u.repo.GetPendingByMemberID(ctx, in.MemberID)
	switch {
	case err == nil:
		return nil, errs.Validation("pending_loan_exists",
			"member %s already has a pending loan: %s", in.MemberID, pending.LoanID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	l := &domain.Loan{
		LoanID:               id.NewID32(),
		MemberID:             in.MemberID,
		MemberName:           in.MemberName,
		Principal:            principal,
		RatePct:              decimal.NewFromFloat(in.RatePct),
		TermMonths:           in.TermMonths,
		Fees:                 fees,
		OutstandingPrincipal: decimal.Zero,
		Collectibility:       domain.CollectCurrent,
		State:                domain.StatePending,
		StateUpdatedAt:       time.Now().UTC(),
	}
	if err := u.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	return toLoanDTO(l), nil
}

// Approve activates a pending loan: it computes the EIR, generates and stores
// the amortization schedule and posts the disbursement entry, all in one
// transaction against a row-locked loan.
func (u *Usecase) Approve(ctx context.Context, loanID string, in ApproveInput) (*LoanDTO, error) {
	disburseDate := in.DisbursementDate
	if disburseDate.IsZero() {
		disburseDate = time.Now().UTC()
	}

	var out *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StatePending {
			return errs.State("approve", string(l.State))
		}

		eir, err := u.interest.CalculateEIR(l.Principal, l.RatePct.InexactFloat64(), l.Fees, l.TermMonths)
		if err != nil {
			var ce *errs.ComputationError
			if !errors.As(err, &ce) {
				return err
			}
			// keep the best-effort rate; the EIR is informational only
		}
		schedule, err := u.amort.GenerateSchedule(l.Principal, l.RatePct.InexactFloat64(), l.TermMonths, disburseDate)
		if err != nil {
			return err
		}

		installments := make([]domain.Installment, 0, len(schedule))
		for _, s := range schedule {
			installments = append(installments, domain.Installment{
				LoanID:           l.ID,
				Number:           s.Number,
				DueDate:          s.DueDate,
				BeginningBalance: s.BeginningBalance,
				PrincipalAmount:  s.PrincipalAmount,
				InterestAmount:   s.InterestAmount,
				TotalAmount:      s.TotalAmount,
				EndingBalance:    s.EndingBalance,
			})
		}
		if err := r.Loans.CreateInstallments(ctx, installments); err != nil {
			return err
		}

		lines := []ledger.LineInput{
			{AccountCode: account.CodeLoansReceivable, Debit: l.Principal},
			{AccountCode: account.CodeCash, Credit: l.Principal.Sub(l.Fees)},
		}
		if l.Fees.IsPositive() {
			lines = append(lines, ledger.LineInput{AccountCode: account.CodeAdminFeeIncome, Credit: l.Fees})
		}
		if _, err := u.ledger.RecordIn(ctx, r, ledger.RecordInput{
			EntryDate:   disburseDate,
			Description: fmt.Sprintf("Loan disbursement %s", l.LoanID),
			Lines:       lines,
			Reference:   l.LoanID,
			Actor:       in.ApprovedBy,
			AutoPost:    true,
		}); err != nil {
			return err
		}

		l.State = domain.StateActive
		l.StateUpdatedAt = time.Now().UTC()
		l.EffectiveRate = decimal.NewFromFloat(eir)
		l.DisbursedAt = &disburseDate
		l.OutstandingPrincipal = l.Principal
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}
	return toLoanDTO(out), nil
}

// Pay settles the earliest unpaid installment. The payment row, the
// installment update, the loan balance update and the journal entry commit
// together or not at all.
func (u *Usecase) Pay(ctx context.Context, loanID string, in PayInput) (*PaymentDTO, error) {
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now().UTC()
	}
	amount := decimal.NewFromFloat(in.Amount).Round(2)

	var dto *PaymentDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != domain.StateActive {
			return errs.State("pay", string(l.State))
		}

		inst, err := r.Loans.FirstUnpaidInstallment(ctx, l.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.State("pay", "no unpaid installments")
			}
			return err
		}
		if amount.Sub(inst.TotalAmount).Abs().GreaterThan(journal.CentTolerance) {
			return errs.Validation("amount_mismatch",
				"installment %d requires %s, got %s", inst.Number, inst.TotalAmount.StringFixed(2), amount.StringFixed(2))
		}

		seq, err := r.Sequences.Next(ctx, journal.DayScope("RCP", paidAt))
		if err != nil {
			return err
		}
		receipt := journal.FormatNumber("RCP", paidAt, seq)

		lines := []ledger.LineInput{
			{AccountCode: account.CodeCash, Debit: inst.TotalAmount},
			{AccountCode: account.CodeLoansReceivable, Credit: inst.PrincipalAmount},
		}
		if inst.InterestAmount.IsPositive() {
			lines = append(lines, ledger.LineInput{AccountCode: account.CodeInterestIncome, Credit: inst.InterestAmount})
		}
		entry, err := u.ledger.RecordIn(ctx, r, ledger.RecordInput{
			EntryDate:   paidAt,
			Description: fmt.Sprintf("Loan payment %s installment %d (%s)", l.LoanID, inst.Number, receipt),
			Lines:       lines,
			Reference:   l.LoanID,
			Actor:       in.Actor,
			AutoPost:    true,
		})
		if err != nil {
			return err
		}

		p := &domain.Payment{
			PaymentID:     id.NewID32(),
			LoanID:        l.ID,
			InstallmentID: inst.ID,
			ReceiptNumber: receipt,
			Amount:        inst.TotalAmount,
			JournalRef:    entry.EntryID,
			PaidAt:        paidAt,
		}
		if err := r.Loans.CreatePayment(ctx, p); err != nil {
			return err
		}

		inst.Paid = true
		inst.PaidAt = &paidAt
		if err := r.Loans.SaveInstallment(ctx, inst); err != nil {
			return err
		}

		l.OutstandingPrincipal = inst.EndingBalance
		if inst.Number == l.TermMonths {
			l.State = domain.StatePaidOff
			l.StateUpdatedAt = time.Now().UTC()
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		dto = &PaymentDTO{
			PaymentID:          p.PaymentID,
			LoanID:             l.LoanID,
			InstallmentNumber:  inst.Number,
			ReceiptNumber:      receipt,
			Amount:             p.Amount.InexactFloat64(),
			JournalEntryNumber: entry.EntryNumber,
			Outstanding:        l.OutstandingPrincipal.InexactFloat64(),
			LoanState:          string(l.State),
			PaidAt:             paidAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}
	return dto, nil
}

// Reject closes a pending application without disbursing.
func (u *Usecase) Reject(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StatePending, domain.StateRejected, "reject")
}

// MarkDefaulted is the administrative terminal transition for a delinquent loan.
func (u *Usecase) MarkDefaulted(ctx context.Context, loanID string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, domain.StateActive, domain.StateDefaulted, "default")
}

func (u *Usecase) transition(ctx context.Context, loanID string, from, to domain.State, op string) (*LoanDTO, error) {
	var out *domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if l.State != from {
			return errs.State(op, string(l.State))
		}
		l.State = to
		l.StateUpdatedAt = time.Now().UTC()
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}
	return toLoanDTO(out), nil
}

func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}
	return toLoanDTO(l), nil
}

func (u *Usecase) GetSchedule(ctx context.Context, loanID string) (*ScheduleDTO, error) {
	l, err := u.repo.GetByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("loan", loanID)
		}
		return nil, err
	}
	items, err := u.repo.ListInstallments(ctx, l.ID)
	if err != nil {
		return nil, err
	}
	dto := &ScheduleDTO{LoanID: l.LoanID}
	for _, it := range items {
		dto.Installments = append(dto.Installments, toInstallmentDTO(&it))
	}
	return dto, nil
}

// Simulate computes a schedule and summary for a prospective loan without
// persisting anything.
func (u *Usecase) Simulate(ctx context.Context, in SimulateInput) (*SimulationDTO, error) {
	principal := decimal.NewFromFloat(in.Principal).Round(2)
	fees := decimal.NewFromFloat(in.Fees).Round(2)
	start := in.StartDate
	if start.IsZero() {
		start = time.Now().UTC()
	}

	schedule, err := u.amort.GenerateSchedule(principal, in.RatePct, in.TermMonths, start)
	if err != nil {
		return nil, err
	}
	summary, err := u.amort.GetSummary(principal, in.RatePct, fees, in.TermMonths)
	if err != nil {
		return nil, err
	}

	dto := &SimulationDTO{
		MonthlyPayment: summary.MonthlyPayment.InexactFloat64(),
		TotalPayment:   summary.TotalPayment.InexactFloat64(),
		TotalInterest:  summary.TotalInterest.InexactFloat64(),
		EffectiveRate:  summary.EffectiveRate,
	}
	for i := range schedule {
		s := schedule[i]
		dto.Installments = append(dto.Installments, InstallmentDTO{
			Number:           s.Number,
			DueDate:          s.DueDate,
			BeginningBalance: s.BeginningBalance.InexactFloat64(),
			PrincipalAmount:  s.PrincipalAmount.InexactFloat64(),
			InterestAmount:   s.InterestAmount.InexactFloat64(),
			TotalAmount:      s.TotalAmount.InexactFloat64(),
			EndingBalance:    s.EndingBalance.InexactFloat64(),
		})
	}
	return dto, nil
}
