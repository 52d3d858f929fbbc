// Package stats summarizes a normalized quote table.
package stats

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/rickgao/optionquotes/internal/model"
	"github.com/rickgao/optionquotes/internal/normalize"
)

// Summary describes the rows of one table.
type Summary struct {
	Rows         int
	Expiries     int
	FirstDate    model.DateCode
	LastDate     model.DateCode
	Volume       int64
	OpenInterest int64

	DaysToExpiryMean float64
	DaysToExpiryStd  float64
	SpreadMean       float64
	SpreadStd        float64

	// CrossedQuotes counts rows with BestBid > BestAsk.
	CrossedQuotes int
}

// Summarize computes a Summary. Means and standard deviations are zero
// for tables with fewer than two rows.
func Summarize(table *normalize.Table) Summary {
	var s Summary
	s.Rows = table.Len()
	if s.Rows == 0 {
		return s
	}

	expiries := make(map[int64]struct{})
	days := make([]float64, 0, s.Rows)
	spreads := make([]float64, 0, s.Rows)

	s.FirstDate = table.Rows[0].Date
	s.LastDate = table.Rows[0].Date
	for _, q := range table.Rows {
		expiries[q.Exdate.Unix()] = struct{}{}
		if q.Date.Before(s.FirstDate.Time) {
			s.FirstDate = q.Date
		}
		if q.Date.After(s.LastDate.Time) {
			s.LastDate = q.Date
		}
		s.Volume += q.Volume
		s.OpenInterest += q.OpenInterest
		if q.BestBid > q.BestAsk {
			s.CrossedQuotes++
		}
		days = append(days, float64(q.DaysToExpiry))
		spreads = append(spreads, q.Spread())
	}
	s.Expiries = len(expiries)

	if s.Rows > 1 {
		s.DaysToExpiryMean, s.DaysToExpiryStd = stat.MeanStdDev(days, nil)
		s.SpreadMean, s.SpreadStd = stat.MeanStdDev(spreads, nil)
	}
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("rows", s.Rows),
		slog.Int("expiries", s.Expiries),
		slog.String("first_date", s.FirstDate.String()),
		slog.String("last_date", s.LastDate.String()),
		slog.Int64("volume", s.Volume),
		slog.Int64("open_interest", s.OpenInterest),
		slog.Float64("dte_mean", s.DaysToExpiryMean),
		slog.Float64("dte_std", s.DaysToExpiryStd),
		slog.Float64("spread_mean", s.SpreadMean),
		slog.Float64("spread_std", s.SpreadStd),
		slog.Int("crossed_quotes", s.CrossedQuotes),
	)
}
