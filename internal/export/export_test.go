package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/series"
	"github.com/gocarina/gocsv"
	"github.com/klauspost/compress/zstd"
	"github.com/xuri/excelize/v2"

	"github.com/rickgao/optionquotes/internal/model"
	"github.com/rickgao/optionquotes/internal/normalize"
)

const wantHeader = "date,exdate,strike_price,lifeTime,volume,open_interest,best_bid,best_ask,daysToExpiry"

func testTable() *normalize.Table {
	return &normalize.Table{
		Mode: normalize.MergeLiquidity,
		Rows: []model.Quote{
			{
				Date:         model.NewDateCode(2023, 1, 1),
				Exdate:       model.NewDateCode(2023, 2, 1),
				StrikePrice:  4000,
				LifeTime:     31,
				Volume:       15,
				OpenInterest: 150,
				BestBid:      1.1,
				BestAsk:      1.1,
				DaysToExpiry: 31,
			},
			{
				Date:         model.NewDateCode(2023, 1, 10),
				Exdate:       model.NewDateCode(2023, 3, 10),
				StrikePrice:  4100.5,
				LifeTime:     59,
				Volume:       3,
				OpenInterest: 33,
				BestBid:      5.1,
				BestAsk:      5.5,
				DaysToExpiry: 59,
			},
		},
	}
}

func checkRows(t *testing.T, got []*outputRow) {
	t.Helper()
	want := toOutputRows(testTable())
	if len(got) != len(want) {
		t.Fatalf("rows = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Date.Equal(want[i].Date.Time) || !got[i].Exdate.Equal(want[i].Exdate.Time) {
			t.Errorf("row %d dates = %s/%s, want %s/%s", i, got[i].Date, got[i].Exdate, want[i].Date, want[i].Exdate)
		}
		if got[i].StrikePrice != want[i].StrikePrice || got[i].Volume != want[i].Volume ||
			got[i].BestBid != want[i].BestBid || got[i].BestAsk != want[i].BestAsk ||
			got[i].LifeTime != want[i].LifeTime || got[i].DaysToExpiry != want[i].DaysToExpiry {
			t.Errorf("row %d = %+v, want %+v", i, *got[i], *want[i])
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testTable()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	firstLine := strings.SplitN(buf.String(), "\n", 2)[0]
	if firstLine != wantHeader {
		t.Errorf("header = %q, want %q", firstLine, wantHeader)
	}

	var rows []*outputRow
	if err := gocsv.Unmarshal(bytes.NewReader(buf.Bytes()), &rows); err != nil {
		t.Fatalf("read back csv: %v", err)
	}
	checkRows(t, rows)
}

func TestWriteCSVFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("plain", func(t *testing.T) {
		path, err := WriteCSVFile(filepath.Join(dir, "quotes.csv"), testTable(), "")
		if err != nil {
			t.Fatalf("WriteCSVFile() error = %v", err)
		}
		if filepath.Base(path) != "quotes.csv" {
			t.Errorf("path = %q, want quotes.csv", path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if !strings.HasPrefix(string(data), wantHeader) {
			t.Errorf("file does not start with header: %q", string(data))
		}
	})

	t.Run("zstd", func(t *testing.T) {
		path, err := WriteCSVFile(filepath.Join(dir, "quotes.csv"), testTable(), CompressZstd)
		if err != nil {
			t.Fatalf("WriteCSVFile() error = %v", err)
		}
		if !strings.HasSuffix(path, ".csv.zst") {
			t.Errorf("path = %q, want .csv.zst suffix", path)
		}

		f, err := os.Open(path)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		defer f.Close()

		dec, err := zstd.NewReader(f)
		if err != nil {
			t.Fatalf("zstd reader: %v", err)
		}
		defer dec.Close()

		var rows []*outputRow
		if err := gocsv.Unmarshal(dec, &rows); err != nil {
			t.Fatalf("read back csv: %v", err)
		}
		checkRows(t, rows)
	})

	t.Run("unsupported", func(t *testing.T) {
		if _, err := WriteCSVFile(filepath.Join(dir, "quotes.gz"), testTable(), "gzip"); err == nil {
			t.Error("expected error for gzip, got nil")
		}
	})
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, testTable()); err != nil {
		t.Fatalf("WriteXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	if rows[1][0] != "2023-01-01" || rows[1][4] != "15" {
		t.Errorf("first row = %v, want date 2023-01-01 and volume 15", rows[1])
	}
}

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quotes.xlsx")
	if err := WriteXLSXFile(path, testTable()); err != nil {
		t.Fatalf("WriteXLSXFile() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("stat %s: %v", path, err)
	}
}

func TestDataFrame(t *testing.T) {
	df, err := DataFrame(testTable())
	if err != nil {
		t.Fatalf("DataFrame() error = %v", err)
	}

	if df.Nrow() != 2 || df.Ncol() != len(normalize.Columns) {
		t.Fatalf("dims = %dx%d, want 2x%d", df.Nrow(), df.Ncol(), len(normalize.Columns))
	}
	if got := strings.Join(df.Names(), ","); got != wantHeader {
		t.Errorf("names = %q, want %q", got, wantHeader)
	}

	vol := df.Col("volume")
	if vol.Type() != series.Int {
		t.Errorf("volume type = %v, want int", vol.Type())
	}
	var sum float64
	for _, v := range vol.Float() {
		sum += v
	}
	if sum != 18 {
		t.Errorf("volume sum = %v, want 18", sum)
	}
	if df.Col("best_ask").Max() != 5.5 {
		t.Errorf("best_ask max = %v, want 5.5", df.Col("best_ask").Max())
	}
}
