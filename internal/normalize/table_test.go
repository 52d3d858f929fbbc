package normalize

import (
	"testing"

	"github.com/rickgao/optionquotes/internal/model"
)

func TestFormatRow(t *testing.T) {
	q := model.Quote{
		Date:         model.NewDateCode(2023, 1, 1),
		Exdate:       model.NewDateCode(2023, 2, 1),
		StrikePrice:  4000,
		LifeTime:     45,
		Volume:       15,
		OpenInterest: 150,
		BestBid:      1.1,
		BestAsk:      1.25,
		DaysToExpiry: 31,
		OptionID:     100,
	}

	got := FormatRow(q)
	want := []string{"2023-01-01", "2023-02-01", "4000", "45", "15", "150", "1.1", "1.25", "31"}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %s = %q, want %q", Columns[i], got[i], want[i])
		}
	}
}

func TestTable_ColumnsIsCopy(t *testing.T) {
	table := &Table{}
	cols := table.Columns()
	cols[0] = "mutated"

	if Columns[0] != "date" {
		t.Errorf("Columns[0] = %q, want date", Columns[0])
	}
	if len(table.Records()) != 1 {
		t.Errorf("Records() on empty table should hold only the header")
	}
}
