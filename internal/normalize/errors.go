package normalize

import (
	"errors"

	"github.com/rickgao/optionquotes/internal/model"
)

var (
	// ErrMissingColumn is returned when the source header lacks a required column.
	ErrMissingColumn = errors.New("missing source column")

	// ErrJoinCardinality is returned when a many-to-one join would duplicate or drop rows.
	ErrJoinCardinality = errors.New("join cardinality violated")

	// ErrNegativeExpiry is returned under NegativeExpiryReject when a quote
	// is dated after its expiration.
	ErrNegativeExpiry = errors.New("negative days to expiry")

	// ErrInvalidDate is returned when a date column cannot be parsed.
	ErrInvalidDate = model.ErrInvalidDate

	// ErrInvalidNumber is returned when a numeric column is empty or malformed.
	ErrInvalidNumber = model.ErrInvalidNumber
)
