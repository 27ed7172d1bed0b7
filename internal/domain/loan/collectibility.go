package loan

import "github.com/shopspring/decimal"

// Collectibility is the delinquency classification that sizes loan-loss
// reserves, ordered from least to most severe.
type Collectibility string

const (
	CollectCurrent     Collectibility = "current"
	CollectWatch       Collectibility = "watch"
	CollectSubstandard Collectibility = "substandard"
	CollectDoubtful    Collectibility = "doubtful"
	CollectLoss        Collectibility = "loss"
)

// bands is the single source of truth for both classification thresholds
// and reserve rates. Rates are strictly increasing with severity.
var bands = []struct {
	maxOverdueDays int // inclusive; -1 = unbounded
	class          Collectibility
	rate           decimal.Decimal
}{
	{0, CollectCurrent, decimal.New(1, -2)},      // <=0 days: 1%
	{90, CollectWatch, decimal.New(5, -2)},       // 1-90: 5%
	{180, CollectSubstandard, decimal.New(15, -2)}, // 91-180: 15%
	{270, CollectDoubtful, decimal.New(5, -1)},   // 181-270: 50%
	{-1, CollectLoss, decimal.New(1, 0)},         // >=271: 100%
}

// Classify maps overdue days (of the earliest unpaid installment) to a band.
func Classify(overdueDays int) Collectibility {
	for _, b := range bands {
		if b.maxOverdueDays >= 0 && overdueDays <= b.maxOverdueDays {
			return b.class
		}
	}
	return CollectLoss
}

// ProvisionRate returns the reserve rate for the classification as a fraction.
func (c Collectibility) ProvisionRate() decimal.Decimal {
	for _, b := range bands {
		if b.class == c {
			return b.rate
		}
	}
	return decimal.New(1, 0)
}

// Severity orders classifications; higher means worse.
func (c Collectibility) Severity() int {
	for i, b := range bands {
		if b.class == c {
			return i
		}
	}
	return len(bands) - 1
}
