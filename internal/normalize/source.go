package normalize

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rickgao/optionquotes/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readSource decodes the quote file. Only the columns tagged on
// model.RawQuote are kept, as text; all must be present in the header.
func readSource(r io.Reader) ([]model.RawQuote, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	header, err := csv.NewReader(bytes.NewReader(data)).Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: source is empty", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read source header: %w", err)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var rows []model.RawQuote
	if err := gocsv.Unmarshal(bytes.NewReader(data), &rows); err != nil {
		return nil, fmt.Errorf("decode source: %w", err)
	}
	return rows, nil
}

func checkHeader(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}

	var missing []string
	for _, col := range model.SourceColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
