// Package errs defines the sentinel errors returned by every layer of
// asn1per: the bit buffer, the PER encoding helpers, the type codecs,
// the schema builder/registry, and the metadata-decode path.
//
// Every failure is one of a small, fixed set of kinds. Call sites wrap
// the sentinel with positional detail using fmt.Errorf("%w: ...", ...)
// so callers can still branch on the kind via errors.Is while getting
// a useful diagnostic message.
package errs

import "errors"

// Each sentinel corresponds to one row of the error taxonomy table.
// Do not return a bare sentinel from a codec; wrap it with detail
// (offset, field name, value) via fmt.Errorf("%w: ...", errs.ErrX, ...).
var (
	// ErrConstraintViolation signals a value lies outside its declared
	// constraint: value range, size range, or unknown enum/choice key.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrSchemaViolation signals the value shape does not match the
	// schema on encode: a missing mandatory field, or an unknown CHOICE key.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrSchemaError signals the schema itself is malformed: an
	// unresolved $ref, an unknown node kind, an empty CHOICE or ENUMERATED,
	// or a duplicate field/alternative name.
	ErrSchemaError = errors.New("schema error")

	// ErrInvalidEncoding signals the decoded stream has a structure the
	// schema cannot accept: an extension index past the declared list,
	// or a malformed OBJECT IDENTIFIER arc.
	ErrInvalidEncoding = errors.New("invalid encoding")

	// ErrBufferUnderflow signals a read past the end of the input.
	ErrBufferUnderflow = errors.New("buffer underflow")

	// ErrInvalidArgument signals bad caller input: a bit count outside
	// [0,32] for Read/WriteBits, a seek outside [0, bit_length],
	// odd-length hex, or a non-hex character.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupported signals a fragmented length determinant (n >= 16384,
	// the "11" prefix), which this implementation deliberately never
	// emits and rejects on decode.
	ErrUnsupported = errors.New("unsupported")
)
