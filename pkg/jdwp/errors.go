package jdwp

import (
	"errors"
	"fmt"
)

// DecodeErrorKind classifies a failure to decode a packet body.
type DecodeErrorKind uint8

const (
	// Truncated means the buffer ended before the next field.
	Truncated DecodeErrorKind = iota + 1
	// InvalidEncoding means a string was not valid UTF-8.
	InvalidEncoding
	// UnknownTag means a tagged value carried a tag byte outside the
	// protocol's tag set.
	UnknownTag
	// CountMismatch means a declared element count disagrees with the
	// bytes actually present: bytes were left over after the last declared
	// field, a count was negative, or a reply returned a different number
	// of values than were requested.
	CountMismatch
)

func (k DecodeErrorKind) String() string {
	switch k {
	case Truncated:
		return "truncated"
	case InvalidEncoding:
		return "invalid encoding"
	case UnknownTag:
		return "unknown tag"
	case CountMismatch:
		return "count mismatch"
	}
	return fmt.Sprintf("DecodeErrorKind(%d)", uint8(k))
}

// DecodeError is returned when a reply, event or request body cannot be
// decoded. Once a Reader records a DecodeError every later read fails with
// the same error.
type DecodeError struct {
	Kind    DecodeErrorKind
	Command Command // zero when the error was produced outside the catalog
	Offset  int     // offset into the body where the failing field starts

	Requested int // bytes requested, for Truncated
	Tag       Tag // offending tag, for UnknownTag
	Detail    string
}

func (e *DecodeError) Error() string {
	var s string
	switch e.Kind {
	case Truncated:
		s = fmt.Sprintf("truncated at offset %d: need %d bytes", e.Offset, e.Requested)
	case UnknownTag:
		s = fmt.Sprintf("unknown value tag %d at offset %d", uint8(e.Tag), e.Offset)
	default:
		s = fmt.Sprintf("%v at offset %d", e.Kind, e.Offset)
	}
	if e.Detail != "" {
		s += ": " + e.Detail
	}
	if e.Command != (Command{}) {
		return fmt.Sprintf("decoding %v: %s", e.Command, s)
	}
	return "decoding: " + s
}

// Is makes errors.Is match any DecodeError of the same kind, so that the
// Err* sentinels below can be used as targets.
func (e *DecodeError) Is(target error) bool {
	t, ok := target.(*DecodeError)
	return ok && t.Kind == e.Kind
}

var (
	ErrTruncated       = &DecodeError{Kind: Truncated}
	ErrInvalidEncoding = &DecodeError{Kind: InvalidEncoding}
	ErrUnknownTag      = &DecodeError{Kind: UnknownTag}
	ErrCountMismatch   = &DecodeError{Kind: CountMismatch}
)

// ProtocolError is a reply that carried a non-zero error code. The reply
// body is never handed to a decoder in that case.
type ProtocolError struct {
	Code    ErrorCode
	ID      uint32
	Command Command // zero when unknown
}

func (e *ProtocolError) Error() string {
	if e.Command != (Command{}) {
		return fmt.Sprintf("%v failed: %v (%d)", e.Command, e.Code, uint16(e.Code))
	}
	return fmt.Sprintf("reply %d failed: %v (%d)", e.ID, e.Code, uint16(e.Code))
}

// IsProtocolError returns the error code if err is, or wraps, a
// ProtocolError.
func IsProtocolError(err error) (ErrorCode, bool) {
	var perr *ProtocolError
	if errors.As(err, &perr) {
		return perr.Code, true
	}
	return 0, false
}

var (
	// ErrInvalidArgument is returned when a request cannot be encoded from
	// the arguments it was given.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknownCommand is returned for descriptors missing from the catalog.
	ErrUnknownCommand = errors.New("unknown command")
)
