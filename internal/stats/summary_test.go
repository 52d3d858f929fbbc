package stats

import (
	"math"
	"testing"

	"github.com/rickgao/optionquotes/internal/model"
	"github.com/rickgao/optionquotes/internal/normalize"
)

func quote(day int, exday int, dte int, vol int64, bid, ask float64) model.Quote {
	return model.Quote{
		Date:         model.NewDateCode(2023, 1, day),
		Exdate:       model.NewDateCode(2023, 2, exday),
		StrikePrice:  4000,
		Volume:       vol,
		OpenInterest: vol * 10,
		BestBid:      bid,
		BestAsk:      ask,
		DaysToExpiry: dte,
	}
}

func TestSummarize(t *testing.T) {
	table := &normalize.Table{Rows: []model.Quote{
		quote(3, 1, 29, 10, 1.0, 1.2),
		quote(1, 1, 31, 5, 1.0, 1.4),
		quote(2, 17, 46, 0, 2.0, 1.9),
	}}

	s := Summarize(table)

	if s.Rows != 3 {
		t.Errorf("Rows = %d, want 3", s.Rows)
	}
	if s.Expiries != 2 {
		t.Errorf("Expiries = %d, want 2", s.Expiries)
	}
	if s.FirstDate.String() != "2023-01-01" || s.LastDate.String() != "2023-01-03" {
		t.Errorf("date range = %s..%s, want 2023-01-01..2023-01-03", s.FirstDate, s.LastDate)
	}
	if s.Volume != 15 || s.OpenInterest != 150 {
		t.Errorf("Volume/OpenInterest = %d/%d, want 15/150", s.Volume, s.OpenInterest)
	}
	if s.CrossedQuotes != 1 {
		t.Errorf("CrossedQuotes = %d, want 1", s.CrossedQuotes)
	}
	if math.Abs(s.DaysToExpiryMean-35.333333) > 1e-4 {
		t.Errorf("DaysToExpiryMean = %v, want ~35.3333", s.DaysToExpiryMean)
	}
	if s.DaysToExpiryStd <= 0 {
		t.Errorf("DaysToExpiryStd = %v, want > 0", s.DaysToExpiryStd)
	}
	if math.Abs(s.SpreadMean-(0.2+0.4-0.1)/3) > 1e-9 {
		t.Errorf("SpreadMean = %v, want %v", s.SpreadMean, (0.2+0.4-0.1)/3)
	}
}

func TestSummarize_Small(t *testing.T) {
	if s := Summarize(&normalize.Table{}); s.Rows != 0 || s.SpreadMean != 0 {
		t.Errorf("empty Summary = %+v, want zero", s)
	}

	s := Summarize(&normalize.Table{Rows: []model.Quote{quote(1, 1, 31, 1, 1.0, 1.1)}})
	if s.Rows != 1 || s.DaysToExpiryMean != 0 {
		t.Errorf("single-row Summary = %+v, want Rows 1 and zero mean", s)
	}
}

func TestSummary_LogValue(t *testing.T) {
	s := Summary{Rows: 2}
	v := s.LogValue()
	if len(v.Group()) != 11 {
		t.Errorf("LogValue group has %d attrs, want 11", len(v.Group()))
	}
}
