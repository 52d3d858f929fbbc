package normalize

import (
	"strconv"

	"github.com/rickgao/optionquotes/internal/model"
)

// Columns is the output column order of every Table, regardless of Mode.
var Columns = []string{
	"date", "exdate", "strike_price", "lifeTime",
	"volume", "open_interest", "best_bid", "best_ask", "daysToExpiry",
}

// Table is the result of a load.
type Table struct {
	Mode  Mode
	Rows  []model.Quote
	Stats Stats
}

// Stats counts rows through each load step.
type Stats struct {
	SourceRows         int // Rows read from the file
	ExcludedRows       int // Rows dropped by the exclusion set
	NegativeExpiryRows int // Rows with DaysToExpiry < 0
	Contracts          int // Distinct option ids after exclusion
	Listings           int // Distinct (date, exdate, strike_price, lifeTime) groups
	DuplicateListings  int // Listings with more than one row
	OutputRows         int
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Columns returns a copy of the output column names.
func (t *Table) Columns() []string {
	out := make([]string, len(Columns))
	copy(out, Columns)
	return out
}

// Records renders the table as a header row followed by one row per quote,
// in column order.
func (t *Table) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Columns())
	for _, q := range t.Rows {
		records = append(records, FormatRow(q))
	}
	return records
}

// FormatRow renders one quote in column order.
func FormatRow(q model.Quote) []string {
	return []string{
		q.Date.String(),
		q.Exdate.String(),
		formatFloat(q.StrikePrice),
		strconv.Itoa(q.LifeTime),
		strconv.FormatInt(q.Volume, 10),
		strconv.FormatInt(q.OpenInterest, 10),
		formatFloat(q.BestBid),
		formatFloat(q.BestAsk),
		strconv.Itoa(q.DaysToExpiry),
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
