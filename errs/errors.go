// Package errs defines the sentinel errors surfaced by the tscodec core.
//
// Every error the codec returns wraps one of these sentinels with
// fmt.Errorf's %w verb, so callers can test for a specific failure kind
// with errors.Is while still getting field/offset context in the
// message. The codec never coerces or recovers silently; every failure
// path returns one of these.
package errs

import "errors"

var (
	// ErrOutOfRange means a value does not fit the declared or derived width.
	ErrOutOfRange = errors.New("value out of range for declared width")

	// ErrMalformedInput means a body length is not a multiple of the expected row width.
	ErrMalformedInput = errors.New("malformed input: length is not a multiple of row width")

	// ErrUnknownSymbol means a decoded byte is absent from the declared alphabet.
	ErrUnknownSymbol = errors.New("unknown symbol for declared alphabet")

	// ErrInconsistentHeader means required fields are missing or contradict the variant discriminator.
	ErrInconsistentHeader = errors.New("inconsistent frame header")

	// ErrUnsupportedAlphabet means encoding_size is not one of 16, 64, or 91.
	ErrUnsupportedAlphabet = errors.New("unsupported alphabet size")

	// ErrTimestampParse means a timestamp string could not be parsed as RFC3339 UTC.
	ErrTimestampParse = errors.New("timestamp is not valid ISO-8601")

	// ErrEmptySeries means an operation requires at least one observation.
	ErrEmptySeries = errors.New("series has no observations")

	// ErrColumnMismatch means a CSV row does not have the declared number of columns.
	ErrColumnMismatch = errors.New("csv row column count mismatch")
)
