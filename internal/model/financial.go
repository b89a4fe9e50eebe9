package model

import "time"

// FinancialRecord is one row of the append-only ledger: one row per
// completed trade, never mutated or deleted.
type FinancialRecord struct {
	ID              int64     `json:"id"`
	VehicleID       int64     `json:"vehicle_id"`
	TransactionType string    `json:"transaction_type"` // "buy" | "sell"
	Amount          uint      `json:"amount"`           // units transacted, always > 0
	CustomerID      int64     `json:"customer_id"`
	Date            time.Time `json:"date"` // day resolution, server clock
}

func (FinancialRecord) TableName() string { return "financials" }

// TradeRow is the denormalized view the management page renders: one
// ledger row joined with its vehicle, manufacturer and customer names.
type TradeRow struct {
	Brand            string    `json:"brand"`
	Model            string    `json:"model"`
	ManufacturerName string    `json:"manufacturer"`
	TransactionType  string    `json:"transaction_type"`
	Amount           uint      `json:"amount"`
	CustomerName     string    `json:"customer"`
	Date             time.Time `json:"date"`
}
