package loan

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type State string

const (
	StatePending   State = "pending"
	StateActive    State = "active"
	StatePaidOff   State = "paid_off"
	StateDefaulted State = "defaulted"
	StateRejected  State = "rejected"
)

// Terminal reports whether no further lifecycle transitions are allowed.
func (s State) Terminal() bool {
	return s == StatePaidOff || s == StateDefaulted || s == StateRejected
}

type Loan struct {
	ID         uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID     string `gorm:"size:32;uniqueIndex:ux_loans_loan_id" json:"loan_id"`
	MemberID   string `gorm:"size:32;index:idx_loans_member" json:"member_id"`
	MemberName string `gorm:"size:128" json:"member_name"`

	Principal  decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal"`
	RatePct    decimal.Decimal `gorm:"type:decimal(8,4)" json:"rate_pct"` // nominal annual, percent
	TermMonths int             `json:"term_months"`
	Fees       decimal.Decimal `gorm:"type:decimal(18,2)" json:"fees"`
	// EffectiveRate is the annual EIR as a fraction, rounded to 6 decimals.
	// Informational: computed at approval, never used for posting.
	EffectiveRate decimal.Decimal `gorm:"type:decimal(10,6)" json:"effective_rate"`

	OutstandingPrincipal decimal.Decimal `gorm:"type:decimal(18,2)" json:"outstanding_principal"`
	Collectibility       Collectibility  `gorm:"size:16;default:'current'" json:"collectibility"`

	State          State          `gorm:"type:enum('pending','active','paid_off','defaulted','rejected');default:'pending'" json:"state"`
	StateUpdatedAt time.Time      `gorm:"autoCreateTime" json:"state_updated_at"`
	DisbursedAt    *time.Time     `gorm:"type:date" json:"disbursed_at,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Installment is one row of a loan's amortization schedule, ordered by Number.
type Installment struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	LoanID uint64 `gorm:"column:loan_id;uniqueIndex:ux_installments_loan_number" json:"-"`
	Number int    `gorm:"uniqueIndex:ux_installments_loan_number" json:"number"`

	DueDate          time.Time       `gorm:"type:date" json:"due_date"`
	BeginningBalance decimal.Decimal `gorm:"type:decimal(18,2)" json:"beginning_balance"`
	PrincipalAmount  decimal.Decimal `gorm:"type:decimal(18,2)" json:"principal_amount"`
	InterestAmount   decimal.Decimal `gorm:"type:decimal(18,2)" json:"interest_amount"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,2)" json:"total_amount"`
	EndingBalance    decimal.Decimal `gorm:"type:decimal(18,2)" json:"ending_balance"`

	Paid      bool       `json:"paid"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"-"`
}

func (Installment) TableName() string { return "loan_installments" }

// Payment settles exactly one installment and references the journal entry
// it produced.
type Payment struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID     string          `gorm:"size:32;uniqueIndex:ux_payments_payment_id" json:"payment_id"`
	LoanID        uint64          `gorm:"column:loan_id;index:idx_payments_loan" json:"-"`
	InstallmentID uint64          `gorm:"column:installment_id;uniqueIndex:ux_payments_installment" json:"-"`
	ReceiptNumber string          `gorm:"size:24;uniqueIndex:ux_payments_receipt" json:"receipt_number"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	JournalRef    string          `gorm:"size:32" json:"journal_ref"`
	PaidAt        time.Time       `json:"paid_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Payment) TableName() string { return "loan_payments" }
