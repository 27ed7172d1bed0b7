package mysql

import (
	"context"
	"errors"
	"time"

	journalDomain "koperasi-core/internal/domain/journal"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type JournalRepository struct{ db *gorm.DB }

func NewJournalRepository(db *gorm.DB) *JournalRepository { return &JournalRepository{db: db} }

// Create inserts the header and all lines in one go (gorm cascades the
// association inside the surrounding transaction).
func (r *JournalRepository) Create(ctx context.Context, e *journalDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *JournalRepository) Save(ctx context.Context, e *journalDomain.Entry) error {
	// Omit lines: they are immutable once written.
	return r.db.WithContext(ctx).Omit("Lines").Save(e).Error
}

func (r *JournalRepository) GetByEntryID(ctx context.Context, entryID string) (*journalDomain.Entry, error) {
	var out journalDomain.Entry
	res := r.db.WithContext(ctx).Preload("Lines").Where("entry_id = ?", entryID).First(&out)
	return &out, res.Error
}

func (r *JournalRepository) ListPostedByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]journalDomain.PostedLine, error) {
	q := r.db.WithContext(ctx).
		Table("journal_lines").
		Select("journal_entries.entry_date, journal_entries.entry_number, journal_entries.description, journal_lines.account_code, journal_lines.debit, journal_lines.credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.entry_id").
		Where("journal_lines.account_code = ?", accountCode).
		Where("journal_entries.status IN ?", []string{string(journalDomain.StatusPosted), string(journalDomain.StatusReversed)}).
		Order("journal_lines.id ASC")
	if !from.IsZero() {
		q = q.Where("journal_entries.entry_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("journal_entries.entry_date <= ?", to)
	}

	var out []journalDomain.PostedLine
	res := q.Scan(&out)
	return out, res.Error
}

func (r *JournalRepository) SumPostedByAccount(ctx context.Context, asOf time.Time) ([]journalDomain.AccountTotal, error) {
	q := r.db.WithContext(ctx).
		Table("journal_lines").
		Select("journal_lines.account_code, SUM(journal_lines.debit) AS debit, SUM(journal_lines.credit) AS credit").
		Joins("JOIN journal_entries ON journal_entries.id = journal_lines.entry_id").
		Where("journal_entries.status IN ?", []string{string(journalDomain.StatusPosted), string(journalDomain.StatusReversed)}).
		Group("journal_lines.account_code").
		Order("journal_lines.account_code ASC")
	if !asOf.IsZero() {
		q = q.Where("journal_entries.entry_date <= ?", asOf)
	}

	var out []journalDomain.AccountTotal
	res := q.Scan(&out)
	return out, res.Error
}

type SequenceRepository struct{ db *gorm.DB }

func NewSequenceRepository(db *gorm.DB) *SequenceRepository { return &SequenceRepository{db: db} }

// Next increments and returns the per-scope counter under a row lock, so
// concurrent transactions in the same scope serialize instead of racing a
// scan-and-increment.
func (r *SequenceRepository) Next(ctx context.Context, scope string) (int, error) {
	var seq journalDomain.Sequence
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("scope = ?", scope).
		First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seq = journalDomain.Sequence{Scope: scope, Last: 1}
		if err := r.db.WithContext(ctx).Create(&seq).Error; err != nil {
			return 0, err
		}
		return 1, nil
	}
	if err != nil {
		return 0, err
	}

	seq.Last++
	if err := r.db.WithContext(ctx).Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Last, nil
}
