package service

import (
	"context"
	"sort"
	"time"

	"github.com/dfalcao/metacompra/internal/database/repository"
)

// ForecastEntry is one month of projected installment obligations.
type ForecastEntry struct {
	Month      time.Time // first day of the month, UTC
	Label      string    // e.g. "March 2026"
	TotalCents int64
}

// ForecastService projects unpaid bills across the months they still charge.
type ForecastService struct {
	Items *repository.ItemRepo
	Now   func() time.Time // wall clock unless a test injects one
}

// Monthly returns the per-month installment totals for all unpaid bills,
// chronologically ascending, starting at the current calendar month. Each
// bill contributes its price to as many consecutive months as it has
// installments (nil counts as one). A trailing zero-total month marks where
// the forecast ends; with no qualifying bills the result is empty.
//
// installment_day never moves a charge between month buckets; it is only the
// due day within the month.
func (s *ForecastService) Monthly(ctx context.Context) ([]ForecastEntry, error) {
	bills, err := s.Items.ListByKind(ctx, repository.KindBill, false)
	if err != nil {
		return nil, err
	}
	if len(bills) == 0 {
		return nil, nil
	}

	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	totals := make(map[time.Time]int64)
	for _, b := range bills {
		months := 1
		if b.Installments != nil && *b.Installments > 1 {
			months = *b.Installments
		}
		for i := 0; i < months; i++ {
			totals[start.AddDate(0, i, 0)] += b.PriceCents
		}
	}

	keys := make([]time.Time, 0, len(totals))
	for m := range totals {
		keys = append(keys, m)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	out := make([]ForecastEntry, 0, len(keys)+1)
	for _, m := range keys {
		out = append(out, ForecastEntry{Month: m, Label: monthLabel(m), TotalCents: totals[m]})
	}
	// one empty month after the last charge, so the UI can show the forecast
	// running out
	end := keys[len(keys)-1].AddDate(0, 1, 0)
	out = append(out, ForecastEntry{Month: end, Label: monthLabel(end)})
	return out, nil
}

func monthLabel(m time.Time) string {
	return m.Format("January 2006")
}
