package ckpn

import "time"

type ProvisionDTO struct {
	LoanID         string    `json:"loan_id"`
	MemberName     string    `json:"member_name"`
	AsOf           time.Time `json:"as_of"`
	OverdueDays    int       `json:"overdue_days"`
	Classification string    `json:"classification"`
	Rate           float64   `json:"rate"`
	Outstanding    float64   `json:"outstanding_principal"`
	Reserve        float64   `json:"reserve_amount"`
}

type RunReportDTO struct {
	Period          string         `json:"period"`
	LoanCount       int            `json:"loan_count"`
	Rows            []ProvisionDTO `json:"rows"`
	TotalReserve    float64        `json:"total_reserve"`
	PreviousReserve float64        `json:"previous_reserve"`
	Delta           float64        `json:"delta"`
	EntryNumber     string         `json:"entry_number,omitempty"`
}
