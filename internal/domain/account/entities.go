package account

import (
	"time"
)

// Category classifies accounts in the chart of accounts.
type Category string

const (
	CategoryAsset     Category = "asset"
	CategoryLiability Category = "liability"
	CategoryEquity    Category = "equity"
	CategoryRevenue   Category = "revenue"
	CategoryExpense   Category = "expense"
)

// NormalSide is the side on which an account's balance normally grows.
// It is stored per account rather than derived from the category so that
// contra accounts (e.g. the loan-loss allowance, a credit-normal asset)
// are representable.
type NormalSide string

const (
	NormalDebit  NormalSide = "debit"
	NormalCredit NormalSide = "credit"
)

type Account struct {
	ID         uint64     `gorm:"primaryKey;column:id" json:"-"`
	Code       string     `gorm:"size:16;uniqueIndex:ux_accounts_code" json:"code"`
	Name       string     `gorm:"size:128" json:"name"`
	Category   Category   `gorm:"size:16" json:"category"`
	NormalSide NormalSide `gorm:"size:8" json:"normal_side"`
	ParentCode string     `gorm:"size:16;index:idx_accounts_parent" json:"parent_code,omitempty"`
	Active     bool       `gorm:"default:true" json:"active"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "accounts" }
