package normalize

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/rickgao/optionquotes/internal/model"
)

// DefaultExcludedIDs lists option ids known to carry erroneous quotes.
var DefaultExcludedIDs = []int64{31622275}

// listingKey identifies one logical listing across duplicate entries.
type listingKey struct {
	date        int64 // Unix seconds
	exdate      int64
	strikePrice float64
	lifeTime    int
}

// mergeKey is listingKey plus daysToExpiry, the MergeLiquidity grouping.
type mergeKey struct {
	listingKey
	daysToExpiry int
}

func listingKeyOf(q model.Quote) listingKey {
	return listingKey{
		date:        q.Date.Unix(),
		exdate:      q.Exdate.Unix(),
		strikePrice: q.StrikePrice,
		lifeTime:    q.LifeTime,
	}
}

// Loader loads and normalizes option quote files.
type Loader struct {
	excluded map[int64]struct{}
	policy   NegativeExpiryPolicy
	logger   *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// NewLoader creates a Loader that excludes DefaultExcludedIDs and warns on
// negative days to expiry.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		policy: NegativeExpiryWarn,
		logger: slog.Default(),
	}
	WithExcludedIDs(DefaultExcludedIDs...)(l)

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithExcludedIDs replaces the exclusion set. Passing no ids disables exclusion.
func WithExcludedIDs(ids ...int64) Option {
	return func(l *Loader) {
		l.excluded = make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			l.excluded[id] = struct{}{}
		}
	}
}

// WithNegativeExpiryPolicy sets how quotes dated after expiration are treated.
func WithNegativeExpiryPolicy(p NegativeExpiryPolicy) Option {
	return func(l *Loader) {
		l.policy = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Load reads the quote file at path with a default Loader.
func Load(path string, mode Mode) (*Table, error) {
	return NewLoader().Load(path, mode)
}

// Load reads the quote file at path and normalizes it.
func (l *Loader) Load(path string, mode Mode) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	table, err := l.LoadReader(f, mode)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return table, nil
}

// LoadReader normalizes quotes read from r.
func (l *Loader) LoadReader(r io.Reader, mode Mode) (*Table, error) {
	raw, err := readSource(r)
	if err != nil {
		return nil, err
	}

	var stats Stats
	stats.SourceRows = len(raw)

	quotes, err := l.exclude(raw)
	if err != nil {
		return nil, fmt.Errorf("parse source: %w", err)
	}
	stats.ExcludedRows = len(raw) - len(quotes)

	stats.NegativeExpiryRows = countNegativeExpiry(quotes)
	if stats.NegativeExpiryRows > 0 {
		if l.policy == NegativeExpiryReject {
			return nil, fmt.Errorf("%w: %d rows dated after expiration", ErrNegativeExpiry, stats.NegativeExpiryRows)
		}
		l.logger.Warn("quotes dated after expiration",
			"rows", stats.NegativeExpiryRows,
		)
	}

	quotes, contracts, err := attachLifeTime(quotes)
	if err != nil {
		return nil, fmt.Errorf("attach lifetime: %w", err)
	}
	stats.Contracts = contracts

	counts := countListings(quotes)
	stats.Listings = len(counts)
	for _, p := range counts {
		if p.Value > 1 {
			stats.DuplicateListings++
		}
	}

	l.logger.Debug("quotes prepared",
		"source_rows", stats.SourceRows,
		"excluded_rows", stats.ExcludedRows,
		"contracts", stats.Contracts,
		"listings", stats.Listings,
		"duplicate_listings", stats.DuplicateListings,
	)

	switch mode {
	case Deduplicate:
		quotes, err = dropDuplicates(quotes, counts)
		if err != nil {
			return nil, fmt.Errorf("drop duplicates: %w", err)
		}
	case MergeLiquidity:
		quotes = mergeLiquidity(quotes)
	case Passthrough:
	default:
		return nil, fmt.Errorf("unsupported mode %v", mode)
	}
	stats.OutputRows = len(quotes)

	l.logger.Info("quotes loaded",
		"mode", mode.String(),
		"source_rows", stats.SourceRows,
		"output_rows", stats.OutputRows,
	)

	return &Table{Mode: mode, Rows: quotes, Stats: stats}, nil
}

// exclude drops rows in the exclusion set, then parses the rest. Only the
// optionid of an excluded row is read.
func (l *Loader) exclude(raw []model.RawQuote) ([]model.Quote, error) {
	out := make([]model.Quote, 0, len(raw))
	for i, r := range raw {
		id, err := r.ID()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		if _, skip := l.excluded[id]; skip {
			continue
		}
		q, err := r.Parse()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func countNegativeExpiry(quotes []model.Quote) int {
	n := 0
	for _, q := range quotes {
		if q.DaysToExpiry < 0 {
			n++
		}
	}
	return n
}

// attachLifeTime sets LifeTime on every row to the contract's max DaysToExpiry.
// It returns the number of distinct contracts.
func attachLifeTime(quotes []model.Quote) ([]model.Quote, int, error) {
	maxDays := make(map[int64]int)
	var order []int64
	for _, q := range quotes {
		cur, seen := maxDays[q.OptionID]
		if !seen {
			order = append(order, q.OptionID)
			maxDays[q.OptionID] = q.DaysToExpiry
			continue
		}
		if q.DaysToExpiry > cur {
			maxDays[q.OptionID] = q.DaysToExpiry
		}
	}

	lifeTimes := make([]Pair[int64, int], 0, len(order))
	for _, id := range order {
		lifeTimes = append(lifeTimes, Pair[int64, int]{Key: id, Value: maxDays[id]})
	}

	joined, err := JoinManyToOne(quotes, func(q model.Quote) int64 { return q.OptionID }, lifeTimes)
	if err != nil {
		return nil, 0, err
	}
	for i := range quotes {
		quotes[i].LifeTime = joined[i]
	}
	return quotes, len(order), nil
}

// countListings returns the row count per listing in first-seen order.
func countListings(quotes []model.Quote) []Pair[listingKey, int] {
	index := make(map[listingKey]int)
	var counts []Pair[listingKey, int]
	for _, q := range quotes {
		k := listingKeyOf(q)
		i, ok := index[k]
		if !ok {
			index[k] = len(counts)
			counts = append(counts, Pair[listingKey, int]{Key: k, Value: 1})
			continue
		}
		counts[i].Value++
	}
	return counts
}

// dropDuplicates keeps rows whose listing occurs exactly once.
func dropDuplicates(quotes []model.Quote, counts []Pair[listingKey, int]) ([]model.Quote, error) {
	ct, err := JoinManyToOne(quotes, listingKeyOf, counts)
	if err != nil {
		return nil, err
	}

	out := make([]model.Quote, 0, len(quotes))
	for i, q := range quotes {
		if ct[i] == 1 {
			out = append(out, q)
		}
	}
	return out, nil
}

// mergeLiquidity collapses rows sharing (date, exdate, strike_price,
// lifeTime, daysToExpiry). Output is sorted by that key.
func mergeLiquidity(quotes []model.Quote) []model.Quote {
	index := make(map[mergeKey]int)
	var merged []model.Quote
	for _, q := range quotes {
		k := mergeKey{listingKey: listingKeyOf(q), daysToExpiry: q.DaysToExpiry}
		i, ok := index[k]
		if !ok {
			index[k] = len(merged)
			q.OptionID = 0
			merged = append(merged, q)
			continue
		}

		m := &merged[i]
		m.Volume += q.Volume
		m.OpenInterest += q.OpenInterest
		m.BestBid = max(m.BestBid, q.BestBid)
		m.BestAsk = min(m.BestAsk, q.BestAsk)
	}

	slices.SortStableFunc(merged, compareMergeKey)
	return merged
}

func compareMergeKey(a, b model.Quote) int {
	return cmp.Or(
		a.Date.Compare(b.Date.Time),
		a.Exdate.Compare(b.Exdate.Time),
		cmp.Compare(a.StrikePrice, b.StrikePrice),
		cmp.Compare(a.LifeTime, b.LifeTime),
		cmp.Compare(a.DaysToExpiry, b.DaysToExpiry),
	)
}
