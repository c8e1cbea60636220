// Package statistics summarizes the payment history for the dashboard.
package statistics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ManuelReschke/PayHook/app/models"
)

type CurrencyTotal struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

// Summary covers the payments currently held in memory. Daily is filled
// from the persistent counters when Redis is configured.
type Summary struct {
	Count       int                      `json:"count"`
	TotalAmount float64                  `json:"totalAmount"`
	ByCurrency  map[string]CurrencyTotal `json:"byCurrency"`
	ByStatus    map[string]int           `json:"byStatus"`
	Today       int                      `json:"today"`
	Daily       map[string]int64         `json:"daily,omitempty"`
}

// Summarize aggregates list. Today counts payments whose RFC 3339 timestamp
// falls on the UTC date of now. Amounts are summed as decimals so totals do not
// drift; TotalAmount adds all currencies together like the dashboard does.
func Summarize(list []models.Payment, now time.Time) Summary {
	s := Summary{
		Count:      len(list),
		ByCurrency: map[string]CurrencyTotal{},
		ByStatus:   map[string]int{},
	}

	today := now.UTC().Format(time.DateOnly)
	total := decimal.Zero
	perCurrency := map[string]decimal.Decimal{}

	for _, p := range list {
		amount := decimal.NewFromFloat(p.Amount)
		total = total.Add(amount)
		perCurrency[p.Currency] = perCurrency[p.Currency].Add(amount)

		ct := s.ByCurrency[p.Currency]
		ct.Count++
		s.ByCurrency[p.Currency] = ct

		s.ByStatus[p.Status]++

		if ts, err := time.Parse(time.RFC3339Nano, p.Timestamp); err == nil && ts.UTC().Format(time.DateOnly) == today {
			s.Today++
		}
	}

	s.TotalAmount = total.InexactFloat64()
	for currency, sum := range perCurrency {
		ct := s.ByCurrency[currency]
		ct.Total = sum.InexactFloat64()
		s.ByCurrency[currency] = ct
	}
	return s
}
