package dto

import "github.com/shopspring/decimal"

type SalesByCategory struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

type SalesByDate struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}

type CashierSales struct {
	CashierName string          `json:"cashier_name"`
	TotalSales  decimal.Decimal `json:"total_sales"`
	ItemsSold   int             `json:"items_sold"`
}

type AnalyticsSummary struct {
	TotalSales         decimal.Decimal `json:"total_sales"`
	TransactionCount   int             `json:"transaction_count"`
	AverageTransaction decimal.Decimal `json:"average_transaction_value"`
}
