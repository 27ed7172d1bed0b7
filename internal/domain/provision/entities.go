package provision

import (
	"time"

	"github.com/shopspring/decimal"

	"koperasi-core/internal/domain/loan"
)

// Record is one loan's reserve position for one monthly period.
// ReserveAmount == OutstandingAmount * Rate at computation time.
type Record struct {
	ID          uint64 `gorm:"primaryKey;column:id" json:"-"`
	ProvisionID string `gorm:"size:32;uniqueIndex:ux_provisions_provision_id" json:"provision_id"`
	LoanID      uint64 `gorm:"column:loan_id;uniqueIndex:ux_provisions_loan_period" json:"-"`
	// PeriodMonth is "YYYY-MM"; one record per loan per period.
	PeriodMonth string `gorm:"size:7;uniqueIndex:ux_provisions_loan_period;index:idx_provisions_period" json:"period_month"`

	Classification    loan.Collectibility `gorm:"size:16" json:"classification"`
	OverdueDays       int                 `json:"overdue_days"`
	OutstandingAmount decimal.Decimal     `gorm:"type:decimal(18,2)" json:"outstanding_amount"`
	Rate              decimal.Decimal     `gorm:"type:decimal(5,4)" json:"rate"`
	ReserveAmount     decimal.Decimal     `gorm:"type:decimal(18,2)" json:"reserve_amount"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Record) TableName() string { return "loan_provisions" }

// FormatPeriod normalizes a period date to its "YYYY-MM" key.
func FormatPeriod(t time.Time) string { return t.Format("2006-01") }

// PreviousPeriod returns the "YYYY-MM" key one month before the given date.
func PreviousPeriod(t time.Time) string {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format("2006-01")
}
