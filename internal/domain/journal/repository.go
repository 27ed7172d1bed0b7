package journal

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PostedLine is a line of a posted entry joined with its header, as read
// back for ledgers and the trial balance.
type PostedLine struct {
	EntryDate   time.Time
	EntryNumber string
	Description string
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// AccountTotal is the summed posted debit/credit per account.
type AccountTotal struct {
	AccountCode string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

type Repository interface {
	// Create persists the entry header together with all its lines.
	Create(ctx context.Context, e *Entry) error
	GetByEntryID(ctx context.Context, entryID string) (*Entry, error)
	Save(ctx context.Context, e *Entry) error

	// ListPostedByAccount returns posted lines for one account in creation
	// order, optionally bounded by entry date (zero bounds mean open-ended).
	ListPostedByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]PostedLine, error)
	// SumPostedByAccount aggregates posted lines per account up to asOf.
	SumPostedByAccount(ctx context.Context, asOf time.Time) ([]AccountTotal, error)
}

// SequenceRepository hands out gapless per-scope sequence values. Next must
// be called inside the transaction that consumes the value; the implementation
// holds a row lock for the scope until commit.
type SequenceRepository interface {
	Next(ctx context.Context, scope string) (int, error)
}

// Sequence backs SequenceRepository with one row per scope (e.g. "JE-20250131").
type Sequence struct {
	Scope string `gorm:"primaryKey;size:24;column:scope"`
	Last  int    `gorm:"column:last_value"`
}

func (Sequence) TableName() string { return "journal_sequences" }
