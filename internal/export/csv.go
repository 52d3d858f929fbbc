package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"

	"github.com/rickgao/optionquotes/internal/model"
	"github.com/rickgao/optionquotes/internal/normalize"
)

// CompressZstd selects zstd compression for CSV output.
const CompressZstd = "zstd"

// outputRow mirrors normalize.Columns; field order is column order.
type outputRow struct {
	Date         model.DateCode `csv:"date"`
	Exdate       model.DateCode `csv:"exdate"`
	StrikePrice  float64        `csv:"strike_price"`
	LifeTime     int            `csv:"lifeTime"`
	Volume       int64          `csv:"volume"`
	OpenInterest int64          `csv:"open_interest"`
	BestBid      float64        `csv:"best_bid"`
	BestAsk      float64        `csv:"best_ask"`
	DaysToExpiry int            `csv:"daysToExpiry"`
}

func toOutputRows(table *normalize.Table) []*outputRow {
	rows := make([]*outputRow, len(table.Rows))
	for i, q := range table.Rows {
		rows[i] = &outputRow{
			Date:         q.Date,
			Exdate:       q.Exdate,
			StrikePrice:  q.StrikePrice,
			LifeTime:     q.LifeTime,
			Volume:       q.Volume,
			OpenInterest: q.OpenInterest,
			BestBid:      q.BestBid,
			BestAsk:      q.BestAsk,
			DaysToExpiry: q.DaysToExpiry,
		}
	}
	return rows
}

// WriteCSV writes the table as CSV with a header row.
func WriteCSV(w io.Writer, table *normalize.Table) error {
	if err := gocsv.Marshal(toOutputRows(table), w); err != nil {
		return fmt.Errorf("marshal csv: %w", err)
	}
	return nil
}

// WriteCSVFile writes the table to path. With compress set to "zstd" the
// output is zstd-compressed and ".zst" is appended to path if missing.
// It returns the path written.
func WriteCSVFile(path string, table *normalize.Table, compress string) (string, error) {
	if compress == CompressZstd && !strings.HasSuffix(path, ".zst") {
		path += ".zst"
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	switch compress {
	case "":
		if err := WriteCSV(f, table); err != nil {
			return "", err
		}
	case CompressZstd:
		enc, err := zstd.NewWriter(f)
		if err != nil {
			return "", fmt.Errorf("create zstd encoder: %w", err)
		}
		if err := WriteCSV(enc, table); err != nil {
			enc.Close()
			return "", err
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("flush zstd encoder: %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported compression %q", compress)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close csv file: %w", err)
	}
	return path, nil
}
