package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateCodeLayout is the layout of integer-like date codes in the source file.
const DateCodeLayout = "20060102"

var (
	// ErrInvalidDate is returned when a date code cannot be parsed.
	ErrInvalidDate = errors.New("invalid date code")

	// ErrInvalidNumber is returned when a numeric cell is empty or malformed.
	ErrInvalidNumber = errors.New("invalid numeric value")
)

// -----------------------------------------------------------------------------
// Dates
// -----------------------------------------------------------------------------

// DateCode is a calendar date read from a code such as 20230115.
type DateCode struct {
	time.Time
}

// ParseDateCode parses "20230115" or "2023-01-15" into a UTC calendar date.
// A trailing ".0" from float-formatted exports is tolerated.
func ParseDateCode(s string) (DateCode, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ".0")
	if s == "" {
		return DateCode{}, fmt.Errorf("%w: empty value", ErrInvalidDate)
	}

	layout := DateCodeLayout
	if strings.Contains(s, "-") {
		layout = time.DateOnly
	}

	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return DateCode{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return DateCode{Time: t}, nil
}

// NewDateCode builds a DateCode from a year, month and day.
func NewDateCode(year int, month time.Month, day int) DateCode {
	return DateCode{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (d *DateCode) UnmarshalCSV(s string) error {
	parsed, err := ParseDateCode(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalCSV implements gocsv.TypeMarshaller. Dates are written as YYYY-MM-DD.
func (d DateCode) MarshalCSV() (string, error) {
	return d.String(), nil
}

// String returns the date as YYYY-MM-DD.
func (d DateCode) String() string {
	return d.Format(time.DateOnly)
}

// DaysUntil returns the whole days from d to other, rounded toward negative infinity.
func (d DateCode) DaysUntil(other DateCode) int {
	diff := other.Sub(d.Time)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) < 0 {
		days--
	}
	return days
}

// -----------------------------------------------------------------------------
// Quotes
// -----------------------------------------------------------------------------

// RawQuote is one row of the source file. Columns not tagged here are discarded.
// Fields stay as text until Parse so that excluded rows are never validated.
type RawQuote struct {
	Date         string `csv:"date"`
	Exdate       string `csv:"exdate"`
	StrikePrice  string `csv:"strike_price"`
	BestBid      string `csv:"best_bid"`
	BestOffer    string `csv:"best_offer"` // Renamed to BestAsk on load
	Volume       string `csv:"volume"`
	OpenInterest string `csv:"open_interest"`
	OptionID     string `csv:"optionid"`
}

// SourceColumns lists the columns the source file must provide.
var SourceColumns = []string{
	"date", "exdate", "strike_price", "best_bid", "best_offer",
	"volume", "open_interest", "optionid",
}

// Quote is a normalized option quote.
type Quote struct {
	Date         DateCode
	Exdate       DateCode
	StrikePrice  float64
	LifeTime     int // Max DaysToExpiry across the contract's rows
	Volume       int64
	OpenInterest int64
	BestBid      float64
	BestAsk      float64
	DaysToExpiry int // Whole days from Date to Exdate

	// OptionID is carried for joins; it is not an output column and is
	// zero after liquidity merging collapses contracts.
	OptionID int64
}

// Spread returns BestAsk - BestBid.
func (q Quote) Spread() float64 {
	return q.BestAsk - q.BestBid
}

// ID parses the optionid column.
func (r RawQuote) ID() (int64, error) {
	return parseInt("optionid", r.OptionID)
}

// Parse converts the row to a Quote, renaming best_offer to best_ask and
// deriving DaysToExpiry. LifeTime is left at zero; it depends on every row
// of the contract. Empty or non-numeric cells are errors, never zero.
func (r RawQuote) Parse() (Quote, error) {
	var q Quote
	var err error

	if q.OptionID, err = r.ID(); err != nil {
		return Quote{}, err
	}
	if q.Date, err = ParseDateCode(r.Date); err != nil {
		return Quote{}, fmt.Errorf("date: %w", err)
	}
	if q.Exdate, err = ParseDateCode(r.Exdate); err != nil {
		return Quote{}, fmt.Errorf("exdate: %w", err)
	}
	if q.StrikePrice, err = parseFloat("strike_price", r.StrikePrice); err != nil {
		return Quote{}, err
	}
	if q.BestBid, err = parseFloat("best_bid", r.BestBid); err != nil {
		return Quote{}, err
	}
	if q.BestAsk, err = parseFloat("best_offer", r.BestOffer); err != nil {
		return Quote{}, err
	}
	if q.Volume, err = parseInt("volume", r.Volume); err != nil {
		return Quote{}, err
	}
	if q.OpenInterest, err = parseInt("open_interest", r.OpenInterest); err != nil {
		return Quote{}, err
	}

	q.DaysToExpiry = q.Date.DaysUntil(q.Exdate)
	return q, nil
}

func parseFloat(column, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidNumber, column)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidNumber, column, s)
	}
	return v, nil
}

// parseInt accepts "12" and the float-formatted "12.0".
func parseInt(column, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: %s is empty", ErrInvalidNumber, column)
	}
	v, err := strconv.ParseInt(strings.TrimSuffix(s, ".0"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrInvalidNumber, column, s)
	}
	return v, nil
}
