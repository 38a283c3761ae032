// Package errs defines the sentinel errors returned by pcproof.
//
// Errors fall into two categories, each with a base sentinel that every
// more specific error wraps:
//
//   - ErrInvalidArgument: the caller supplied input of the wrong kind or shape.
//   - ErrMalformedStream: a byte stream could not be decoded structurally.
//
// Use errors.Is to test for either the category or the specific error:
//
//	list, err := pcproof.FromBuffer(data)
//	if errors.Is(err, errs.ErrMalformedStream) {
//	    // reject this block's proof, keep going with the next one
//	}
package errs

import (
	"errors"
	"fmt"
)

// Base categories.
var (
	// ErrInvalidArgument is returned when a constructor receives input of an
	// unsupported kind, or structural input missing a required field.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedStream is returned when an encoded entity stream is truncated
	// or otherwise cannot be decoded.
	ErrMalformedStream = errors.New("malformed entity stream")
)

// Invalid argument errors.
var (
	ErrUnsupportedArgument = fmt.Errorf("%w: unsupported argument type", ErrInvalidArgument)
	ErrMissingEntities     = fmt.Errorf("%w: missing entities field", ErrInvalidArgument)
	ErrMissingSentinel     = fmt.Errorf("%w: entity list is not sentinel terminated", ErrInvalidArgument)
	ErrTrailingEntities    = fmt.Errorf("%w: entities after sentinel", ErrInvalidArgument)
	ErrInvalidHex          = fmt.Errorf("%w: invalid hex string", ErrInvalidArgument)
	ErrInvalidEntityData   = fmt.Errorf("%w: entity data must be bytes or hex string", ErrInvalidArgument)
	ErrInvalidEntityType   = fmt.Errorf("%w: entity type must be a non-negative integer", ErrInvalidArgument)
	ErrInvalidCompression  = fmt.Errorf("%w: invalid compression type", ErrInvalidArgument)
	ErrInvalidVarintType   = fmt.Errorf("%w: invalid varint type", ErrInvalidArgument)
	ErrBlockTooShort       = fmt.Errorf("%w: raw block shorter than proof offset", ErrInvalidArgument)
	ErrInvalidPosition     = fmt.Errorf("%w: cursor position out of range", ErrInvalidArgument)
	ErrInvalidLimit        = fmt.Errorf("%w: limit must be positive", ErrInvalidArgument)
	ErrDuplicateProof      = fmt.Errorf("%w: proof already tracked", ErrInvalidArgument)
	ErrEmptyProof          = fmt.Errorf("%w: proof has no encoding", ErrInvalidArgument)
	ErrUnknownUnit         = fmt.Errorf("%w: unknown denomination", ErrInvalidArgument)
	ErrInvalidRate         = fmt.Errorf("%w: exchange rate must be positive", ErrInvalidArgument)
)

// Malformed stream errors.
var (
	ErrTruncatedVarint      = fmt.Errorf("%w: truncated varint", ErrMalformedStream)
	ErrVarintOverflow       = fmt.Errorf("%w: varint overflows 64 bits", ErrMalformedStream)
	ErrTruncatedPayload     = fmt.Errorf("%w: payload shorter than declared length", ErrMalformedStream)
	ErrTooManyEntities      = fmt.Errorf("%w: entity count exceeds limit", ErrMalformedStream)
	ErrPayloadTooLarge      = fmt.Errorf("%w: payload length exceeds limit", ErrMalformedStream)
	ErrPackedLengthMismatch = fmt.Errorf("%w: unpacked length does not match header", ErrMalformedStream)
	ErrEmptyPacked          = fmt.Errorf("%w: packed data is empty", ErrMalformedStream)
	ErrDecompressedSize     = fmt.Errorf("%w: decompressed size differs from expected size", ErrMalformedStream)
)
