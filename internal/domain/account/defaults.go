package account

import "context"

// Well-known account codes used by the loan and provisioning flows.
const (
	CodeCash             = "1000"
	CodeSavingsBank      = "1010"
	CodeLoansReceivable  = "1100"
	CodeLoanLossReserve  = "1190"
	CodeInventory        = "1300"
	CodeMemberSavings    = "2000"
	CodeMemberEquity     = "3000"
	CodeRetainedEarnings = "3100"
	CodeInterestIncome   = "4000"
	CodeAdminFeeIncome   = "4100"
	CodeSalesRevenue     = "4200"
	CodeOperatingExpense = "5000"
	CodeProvisionExpense = "5100"
)

// DefaultChart is the cooperative's seed chart of accounts. Accounts are
// created once at setup and only ever deactivated afterwards.
var DefaultChart = []Account{
	{Code: CodeCash, Name: "Cash on Hand", Category: CategoryAsset, NormalSide: NormalDebit, Active: true},
	{Code: CodeSavingsBank, Name: "Bank Account", Category: CategoryAsset, NormalSide: NormalDebit, ParentCode: CodeCash, Active: true},
	{Code: CodeLoansReceivable, Name: "Loans Receivable", Category: CategoryAsset, NormalSide: NormalDebit, Active: true},
	{Code: CodeLoanLossReserve, Name: "Allowance for Loan Losses (CKPN)", Category: CategoryAsset, NormalSide: NormalCredit, ParentCode: CodeLoansReceivable, Active: true},
	{Code: CodeInventory, Name: "Retail Inventory", Category: CategoryAsset, NormalSide: NormalDebit, Active: true},
	{Code: CodeMemberSavings, Name: "Member Savings", Category: CategoryLiability, NormalSide: NormalCredit, Active: true},
	{Code: CodeMemberEquity, Name: "Member Principal Equity", Category: CategoryEquity, NormalSide: NormalCredit, Active: true},
	{Code: CodeRetainedEarnings, Name: "Retained Earnings", Category: CategoryEquity, NormalSide: NormalCredit, ParentCode: CodeMemberEquity, Active: true},
	{Code: CodeInterestIncome, Name: "Loan Interest Income", Category: CategoryRevenue, NormalSide: NormalCredit, Active: true},
	{Code: CodeAdminFeeIncome, Name: "Admin Fee Income", Category: CategoryRevenue, NormalSide: NormalCredit, Active: true},
	{Code: CodeSalesRevenue, Name: "Retail Sales Revenue", Category: CategoryRevenue, NormalSide: NormalCredit, Active: true},
	{Code: CodeOperatingExpense, Name: "Operating Expense", Category: CategoryExpense, NormalSide: NormalDebit, Active: true},
	{Code: CodeProvisionExpense, Name: "CKPN Provision Expense", Category: CategoryExpense, NormalSide: NormalDebit, Active: true},
}

// EnsureDefaultChart creates any missing default accounts. Existing accounts
// are left untouched, so re-running at startup is safe.
func EnsureDefaultChart(ctx context.Context, repo Repository) error {
	for _, a := range DefaultChart {
		if _, err := repo.GetByCode(ctx, a.Code); err == nil {
			continue
		}
		acc := a
		if err := repo.Create(ctx, &acc); err != nil {
			return err
		}
	}
	return nil
}
