package export

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/rickgao/optionquotes/internal/normalize"
)

var columnTypes = map[string]series.Type{
	"date":          series.String,
	"exdate":        series.String,
	"strike_price":  series.Float,
	"lifeTime":      series.Int,
	"volume":        series.Int,
	"open_interest": series.Int,
	"best_bid":      series.Float,
	"best_ask":      series.Float,
	"daysToExpiry":  series.Int,
}

// DataFrame converts the table to a gota DataFrame. Dates are kept as
// YYYY-MM-DD strings.
func DataFrame(table *normalize.Table) (dataframe.DataFrame, error) {
	df := dataframe.LoadRecords(table.Records(),
		dataframe.HasHeader(true),
		dataframe.WithTypes(columnTypes),
	)
	if df.Err != nil {
		return df, fmt.Errorf("load dataframe: %w", df.Err)
	}
	return df, nil
}
