package writer

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rickgao/optionquotes/internal/normalize"
)

// dbColumns is the insert column order; it follows normalize.Columns with
// load_id appended.
var dbColumns = []string{
	"date", "exdate", "strike_price", "life_time", "volume",
	"open_interest", "best_bid", "best_ask", "days_to_expiry", "load_id",
}

// toRows converts a table to insert rows stamped with loadID.
func toRows(loadID uuid.UUID, table *normalize.Table) []quoteRow {
	rows := make([]quoteRow, len(table.Rows))
	for i, q := range table.Rows {
		rows[i] = quoteRow{
			LoadID:       loadID,
			Date:         q.Date.Time,
			Exdate:       q.Exdate.Time,
			StrikePrice:  q.StrikePrice,
			LifeTime:     int32(q.LifeTime),
			Volume:       q.Volume,
			OpenInterest: q.OpenInterest,
			BestBid:      q.BestBid,
			BestAsk:      q.BestAsk,
			DaysToExpiry: int32(q.DaysToExpiry),
		}
	}
	return rows
}

// args returns the row values in dbColumns order.
func (r quoteRow) args() []any {
	return []any{
		r.Date, r.Exdate, r.StrikePrice, r.LifeTime, r.Volume,
		r.OpenInterest, r.BestBid, r.BestAsk, r.DaysToExpiry, r.LoadID,
	}
}

// chunk splits rows into slices of at most size elements.
func chunk[T any](rows []T, size int) [][]T {
	if size < 1 {
		size = 1
	}
	var out [][]T
	for start := 0; start < len(rows); start += size {
		end := min(start+size, len(rows))
		out = append(out, rows[start:end])
	}
	return out
}

// placeholders returns "$1, $2, ..." for PostgreSQL or "?, ?, ..." otherwise.
func placeholders(n int, dollar bool) string {
	p := make([]string, n)
	for i := range p {
		if dollar {
			p[i] = fmt.Sprintf("$%d", i+1)
		} else {
			p[i] = "?"
		}
	}
	return strings.Join(p, ", ")
}

func insertSQL(table string, dollar bool) string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(dbColumns, ", "), placeholders(len(dbColumns), dollar))
}
