package journal

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/errs"
)

// Status is the journal entry lifecycle: draft -> posted -> reversed.
// Illegal transitions are rejected by the methods below.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusPosted   Status = "posted"
	StatusReversed Status = "reversed"
)

// CentTolerance is the rounding slack allowed when checking that an entry
// balances (two decimal places of the book currency).
var CentTolerance = decimal.New(1, -2) // 0.01

type Entry struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	EntryID     string    `gorm:"size:32;uniqueIndex:ux_journal_entries_entry_id" json:"entry_id"`
	EntryNumber string    `gorm:"size:24;uniqueIndex:ux_journal_entries_number" json:"entry_number"`
	EntryDate   time.Time `gorm:"type:date;index:idx_journal_entries_date" json:"entry_date"`
	Description string    `gorm:"type:text" json:"description"`
	Reference   string    `gorm:"size:64;index:idx_journal_entries_reference" json:"reference,omitempty"`
	Actor       string    `gorm:"size:32" json:"actor,omitempty"`
	Status      Status    `gorm:"size:16;default:'draft'" json:"status"`
	// ReversalOf holds the public entry_id of the entry this one reverses;
	// ReversedBy is the back-reference set on the original.
	ReversalOf string     `gorm:"size:32" json:"reversal_of,omitempty"`
	ReversedBy string     `gorm:"size:32" json:"reversed_by,omitempty"`
	PostedAt   *time.Time `json:"posted_at,omitempty"`
	Lines      []Line     `gorm:"foreignKey:EntryID;references:ID" json:"lines"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Entry) TableName() string { return "journal_entries" }

// Line is one side of a double entry. Exactly one of Debit/Credit is non-zero.
type Line struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	EntryID     uint64          `gorm:"column:entry_id;index:idx_journal_lines_entry" json:"-"`
	AccountCode string          `gorm:"size:16;index:idx_journal_lines_account" json:"account_code"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,2)" json:"debit"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,2)" json:"credit"`
}

func (Line) TableName() string { return "journal_lines" }

// Totals sums the debit and credit columns over a set of lines.
func Totals(lines []Line) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// Balanced reports whether debits equal credits within CentTolerance.
func Balanced(lines []Line) bool {
	d, c := Totals(lines)
	return d.Sub(c).Abs().LessThanOrEqual(CentTolerance)
}

// MarkPosted transitions draft -> posted, re-checking balance.
func (e *Entry) MarkPosted(at time.Time) error {
	if e.Status != StatusDraft {
		return errs.State("post", string(e.Status))
	}
	if !Balanced(e.Lines) {
		d, c := Totals(e.Lines)
		return errs.Validation("unbalanced", "debits %s != credits %s", d.StringFixed(2), c.StringFixed(2))
	}
	e.Status = StatusPosted
	e.PostedAt = &at
	return nil
}

// MarkReversed transitions posted -> reversed, recording the reversal entry.
func (e *Entry) MarkReversed(by string) error {
	switch e.Status {
	case StatusPosted:
		e.Status = StatusReversed
		e.ReversedBy = by
		return nil
	default:
		return errs.State("reverse", string(e.Status))
	}
}

// FormatNumber builds a human-facing sequential number such as
// "JE-20250131-0007" or "RCP-20250131-0002".
func FormatNumber(prefix string, date time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, date.Format("20060102"), seq)
}

// DayScope is the per-calendar-day counter scope for a number prefix.
func DayScope(prefix string, date time.Time) string {
	return prefix + "-" + date.Format("20060102")
}
