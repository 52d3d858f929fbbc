package normalize

import "fmt"

// Mode selects how duplicate listings are resolved.
type Mode int

const (
	// MergeLiquidity collapses duplicate listings into one row: volume and
	// open interest summed, best bid maxed, best ask minned.
	MergeLiquidity Mode = iota

	// Deduplicate drops every row whose listing appears more than once.
	Deduplicate

	// Passthrough keeps every row.
	Passthrough
)

// DefaultMode matches the historical load(drop_dups=false, merge_liquidity=true).
const DefaultMode = MergeLiquidity

// ModeFromFlags maps the legacy flag pair onto a Mode. dropDups takes
// precedence over mergeLiquidity.
func ModeFromFlags(dropDups, mergeLiquidity bool) Mode {
	switch {
	case dropDups:
		return Deduplicate
	case mergeLiquidity:
		return MergeLiquidity
	default:
		return Passthrough
	}
}

// ParseMode parses a config or flag value.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "merge_liquidity":
		return MergeLiquidity, nil
	case "deduplicate":
		return Deduplicate, nil
	case "passthrough":
		return Passthrough, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want deduplicate, merge_liquidity or passthrough)", s)
	}
}

// String returns the config spelling of the mode.
func (m Mode) String() string {
	switch m {
	case MergeLiquidity:
		return "merge_liquidity"
	case Deduplicate:
		return "deduplicate"
	case Passthrough:
		return "passthrough"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// NegativeExpiryPolicy decides what happens to quotes dated after expiration.
type NegativeExpiryPolicy int

const (
	// NegativeExpiryWarn logs the affected row count and keeps the rows.
	NegativeExpiryWarn NegativeExpiryPolicy = iota

	// NegativeExpiryReject fails the load.
	NegativeExpiryReject
)

// ParseNegativeExpiryPolicy parses "warn" or "reject".
func ParseNegativeExpiryPolicy(s string) (NegativeExpiryPolicy, error) {
	switch s {
	case "warn":
		return NegativeExpiryWarn, nil
	case "reject":
		return NegativeExpiryReject, nil
	default:
		return 0, fmt.Errorf("unknown negative expiry policy %q (want warn or reject)", s)
	}
}

func (p NegativeExpiryPolicy) String() string {
	if p == NegativeExpiryReject {
		return "reject"
	}
	return "warn"
}
