package ledger

import (
	"time"

	"koperasi-core/internal/domain/journal"
)

type LineDTO struct {
	AccountCode string  `json:"account_code"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

type EntryDTO struct {
	EntryID     string     `json:"entry_id"`
	EntryNumber string     `json:"entry_number"`
	EntryDate   time.Time  `json:"entry_date"`
	Description string     `json:"description"`
	Reference   string     `json:"reference,omitempty"`
	Actor       string     `json:"actor,omitempty"`
	Status      string     `json:"status"`
	ReversalOf  string     `json:"reversal_of,omitempty"`
	ReversedBy  string     `json:"reversed_by,omitempty"`
	PostedAt    *time.Time `json:"posted_at,omitempty"`
	Lines       []LineDTO  `json:"lines"`
}

type LedgerRowDTO struct {
	Date           time.Time `json:"date"`
	EntryNumber    string    `json:"entry_number"`
	Description    string    `json:"description"`
	Debit          float64   `json:"debit"`
	Credit         float64   `json:"credit"`
	RunningBalance float64   `json:"running_balance"`
}

type LedgerDTO struct {
	AccountCode string         `json:"account_code"`
	AccountName string         `json:"account_name"`
	Rows        []LedgerRowDTO `json:"rows"`
	Balance     float64        `json:"balance"`
}

type TrialBalanceRowDTO struct {
	AccountCode string  `json:"account_code"`
	AccountName string  `json:"account_name"`
	Debit       float64 `json:"debit"`
	Credit      float64 `json:"credit"`
}

type TrialBalanceDTO struct {
	AsOf        time.Time            `json:"as_of"`
	Rows        []TrialBalanceRowDTO `json:"rows"`
	TotalDebit  float64              `json:"total_debit"`
	TotalCredit float64              `json:"total_credit"`
	Balanced    bool                 `json:"balanced"`
}

func toEntryDTO(e *journal.Entry) *EntryDTO {
	dto := &EntryDTO{
		EntryID:     e.EntryID,
		EntryNumber: e.EntryNumber,
		EntryDate:   e.EntryDate,
		Description: e.Description,
		Reference:   e.Reference,
		Actor:       e.Actor,
		Status:      string(e.Status),
		ReversalOf:  e.ReversalOf,
		ReversedBy:  e.ReversedBy,
		PostedAt:    e.PostedAt,
	}
	for _, l := range e.Lines {
		dto.Lines = append(dto.Lines, LineDTO{
			AccountCode: l.AccountCode,
			Debit:       l.Debit.InexactFloat64(),
			Credit:      l.Credit.InexactFloat64(),
		})
	}
	return dto
}
