package loan

import (
	"time"

	domain "koperasi-core/internal/domain/loan"
)

type CreateLoanInput struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Principal  float64 `json:"principal"`
	RatePct    float64 `json:"rate_pct"`
	TermMonths int     `json:"term_months"`
	Fees       float64 `json:"fees"`
}

type ApproveInput struct {
	ApprovedBy       string    `json:"approved_by"`
	DisbursementDate time.Time `json:"disbursement_date"`
}

type PayInput struct {
	Amount float64   `json:"amount"`
	PaidAt time.Time `json:"paid_at"`
	Actor  string    `json:"actor"`
}

type SimulateInput struct {
	Principal  float64   `json:"principal"`
	RatePct    float64   `json:"rate_pct"`
	TermMonths int       `json:"term_months"`
	Fees       float64   `json:"fees"`
	StartDate  time.Time `json:"start_date"`
}

type LoanDTO struct {
	LoanID         string     `json:"loan_id"`
	MemberID       string     `json:"member_id"`
	MemberName     string     `json:"member_name,omitempty"`
	Principal      float64    `json:"principal"`
	RatePct        float64    `json:"rate_pct"`
	TermMonths     int        `json:"term_months"`
	Fees           float64    `json:"fees"`
	EffectiveRate  float64    `json:"effective_rate"`
	Outstanding    float64    `json:"outstanding_principal"`
	Collectibility string     `json:"collectibility"`
	State          string     `json:"state"`
	DisbursedAt    *time.Time `json:"disbursed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type InstallmentDTO struct {
	Number           int        `json:"number"`
	DueDate          time.Time  `json:"due_date"`
	BeginningBalance float64    `json:"beginning_balance"`
	PrincipalAmount  float64    `json:"principal_amount"`
	InterestAmount   float64    `json:"interest_amount"`
	TotalAmount      float64    `json:"total_amount"`
	EndingBalance    float64    `json:"ending_balance"`
	Paid             bool       `json:"paid"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

type ScheduleDTO struct {
	LoanID       string           `json:"loan_id"`
	Installments []InstallmentDTO `json:"installments"`
}

type PaymentDTO struct {
	PaymentID          string    `json:"payment_id"`
	LoanID             string    `json:"loan_id"`
	InstallmentNumber  int       `json:"installment_number"`
	ReceiptNumber      string    `json:"receipt_number"`
	Amount             float64   `json:"amount"`
	JournalEntryNumber string    `json:"journal_entry_number"`
	Outstanding        float64   `json:"outstanding_principal"`
	LoanState          string    `json:"loan_state"`
	PaidAt             time.Time `json:"paid_at"`
}

type SimulationDTO struct {
	MonthlyPayment float64          `json:"monthly_payment"`
	TotalPayment   float64          `json:"total_payment"`
	TotalInterest  float64          `json:"total_interest"`
	EffectiveRate  float64          `json:"effective_rate"`
	Installments   []InstallmentDTO `json:"installments"`
}

func toLoanDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:         l.LoanID,
		MemberID:       l.MemberID,
		MemberName:     l.MemberName,
		Principal:      l.Principal.InexactFloat64(),
		RatePct:        l.RatePct.InexactFloat64(),
		TermMonths:     l.TermMonths,
		Fees:           l.Fees.InexactFloat64(),
		EffectiveRate:  l.EffectiveRate.InexactFloat64(),
		Outstanding:    l.OutstandingPrincipal.InexactFloat64(),
		Collectibility: string(l.Collectibility),
		State:          string(l.State),
		DisbursedAt:    l.DisbursedAt,
		CreatedAt:      l.CreatedAt,
	}
}

func toInstallmentDTO(i *domain.Installment) InstallmentDTO {
	return InstallmentDTO{
		Number:           i.Number,
		DueDate:          i.DueDate,
		BeginningBalance: i.BeginningBalance.InexactFloat64(),
		PrincipalAmount:  i.PrincipalAmount.InexactFloat64(),
		InterestAmount:   i.InterestAmount.InexactFloat64(),
		TotalAmount:      i.TotalAmount.InexactFloat64(),
		EndingBalance:    i.EndingBalance.InexactFloat64(),
		Paid:             i.Paid,
		PaidAt:           i.PaidAt,
	}
}
