// Package analytics derives sales summaries from the in-memory transaction
// list. Everything here is a pure function recomputed on demand — no
// memoization, no incremental state.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DvineConqueror/GroceryStorePOS/internal/dto"
	"github.com/DvineConqueror/GroceryStorePOS/internal/model"
)

// TimeFrame selects how far back the aggregations look.
type TimeFrame string

const (
	FrameToday TimeFrame = "today"
	FrameWeek  TimeFrame = "week"
	FrameMonth TimeFrame = "month"
	FrameAll   TimeFrame = "all"
)

// ParseTimeFrame maps a query value to a frame, defaulting to all.
func ParseTimeFrame(s string) TimeFrame {
	switch TimeFrame(s) {
	case FrameToday, FrameWeek, FrameMonth:
		return TimeFrame(s)
	default:
		return FrameAll
	}
}

// FilterByTimeFrame keeps transactions at or after the frame's cutoff.
// now is snapshotted once by the caller and never mutated here; every cutoff
// derives from the same instant.
func FilterByTimeFrame(txs []dto.TransactionView, frame TimeFrame, now time.Time) []dto.TransactionView {
	var cutoff time.Time
	switch frame {
	case FrameToday:
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case FrameWeek:
		cutoff = now.AddDate(0, 0, -7)
	case FrameMonth:
		cutoff = now.AddDate(0, -1, 0)
	default:
		return txs
	}

	out := make([]dto.TransactionView, 0, len(txs))
	for _, tx := range txs {
		if !tx.Timestamp.Before(cutoff) {
			out = append(out, tx)
		}
	}
	return out
}

// SalesByCategory sums price×quantity per line-item category over the
// time-filtered set. Categories appear in order of first encounter.
func SalesByCategory(txs []dto.TransactionView, frame TimeFrame, now time.Time) []dto.SalesByCategory {
	filtered := FilterByTimeFrame(txs, frame, now)

	idx := make(map[string]int)
	out := make([]dto.SalesByCategory, 0)
	for _, tx := range filtered {
		for _, item := range tx.Items {
			amount := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			if i, ok := idx[item.Category]; ok {
				out[i].Amount = out[i].Amount.Add(amount)
				continue
			}
			idx[item.Category] = len(out)
			out = append(out, dto.SalesByCategory{Category: item.Category, Amount: amount})
		}
	}
	return out
}

// SalesByDate sums transaction totals per calendar date, newest data still
// grouped by its date string. The time-frame control deliberately does NOT
// apply here: the date series always spans the full history.
func SalesByDate(txs []dto.TransactionView) []dto.SalesByDate {
	idx := make(map[string]int)
	out := make([]dto.SalesByDate, 0)
	for _, tx := range txs {
		date := tx.Timestamp.Format("2006-01-02")
		if i, ok := idx[date]; ok {
			out[i].Amount = out[i].Amount.Add(tx.Total)
			continue
		}
		idx[date] = len(out)
		out = append(out, dto.SalesByDate{Date: date, Amount: tx.Total})
	}
	return out
}

// Summary reports total sales, transaction count and the average value.
// Average is 0 when there are no transactions.
func Summary(txs []dto.TransactionView, frame TimeFrame, now time.Time) dto.AnalyticsSummary {
	filtered := FilterByTimeFrame(txs, frame, now)

	total := decimal.Zero
	for _, tx := range filtered {
		total = total.Add(tx.Total)
	}
	count := len(filtered)

	avg := decimal.Zero
	if count > 0 {
		avg = total.DivRound(decimal.NewFromInt(int64(count)), 2)
	}
	return dto.AnalyticsSummary{
		TotalSales:         total,
		TransactionCount:   count,
		AverageTransaction: avg,
	}
}

// SalesByCashier aggregates completed sales per cashier display name,
// counting units sold, sorted by total descending.
func SalesByCashier(txs []dto.TransactionView) []dto.CashierSales {
	idx := make(map[string]int)
	out := make([]dto.CashierSales, 0)
	for _, tx := range txs {
		if tx.Status != model.TransactionCompleted {
			continue
		}
		name := tx.CashierName
		if name == "" {
			name = "Unknown"
		}
		items := 0
		for _, item := range tx.Items {
			items += item.Quantity
		}
		if i, ok := idx[name]; ok {
			out[i].TotalSales = out[i].TotalSales.Add(tx.Total)
			out[i].ItemsSold += items
			continue
		}
		idx[name] = len(out)
		out = append(out, dto.CashierSales{CashierName: name, TotalSales: tx.Total, ItemsSold: items})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalSales.GreaterThan(out[j].TotalSales)
	})
	return out
}
