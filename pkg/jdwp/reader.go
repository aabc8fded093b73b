package jdwp

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Reader is a bounds-checked forward-only cursor over a packet body.
//
// Every read checks that enough bytes remain before touching the buffer.
// The first failure is recorded and the Reader stays faulted: later reads
// return zero values and Err keeps reporting the first error.
type Reader struct {
	sizes *IDSizes
	data  []byte
	off   int
	err   error
}

// NewReader returns a Reader over data that reads identifiers with the
// widths in sizes. A nil sizes reads every identifier with DefaultIDSize.
func NewReader(sizes *IDSizes, data []byte) *Reader {
	return &Reader{sizes: sizes, data: data}
}

// Err returns the first error encountered, if any.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.off }

// Finish returns the first read error, or a CountMismatch error if the
// body has bytes left after its last declared field.
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if n := r.Remaining(); n != 0 {
		r.fail(&DecodeError{Kind: CountMismatch, Offset: r.off, Detail: "unread bytes after last field"})
	}
	return r.err
}

func (r *Reader) fail(err *DecodeError) {
	if r.err == nil {
		r.err = err
	}
}

// next returns the next n bytes, or nil after recording a Truncated error.
func (r *Reader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || n > len(r.data)-r.off {
		r.fail(&DecodeError{Kind: Truncated, Offset: r.off, Requested: n})
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *Reader) Uint16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

func (r *Reader) Uint64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

func (r *Reader) Int32() int32 { return int32(r.Uint32()) }
func (r *Reader) Int64() int64 { return int64(r.Uint64()) }

// Bool reads a one byte boolean; any non-zero byte is true.
func (r *Reader) Bool() bool { return r.Uint8() != 0 }

// ReadString reads a length-prefixed UTF-8 string.
// It is not called String so that a Reader never satisfies fmt.Stringer.
func (r *Reader) ReadString() string {
	off := r.off
	n := r.Int32()
	if r.err != nil {
		return ""
	}
	if n < 0 {
		r.fail(&DecodeError{Kind: CountMismatch, Offset: off, Detail: "negative string length"})
		return ""
	}
	b := r.next(int(n))
	if r.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		r.fail(&DecodeError{Kind: InvalidEncoding, Offset: off + 4, Detail: "string is not valid UTF-8"})
		return ""
	}
	return string(b)
}

// ByteArray reads a 4-byte count followed by that many raw bytes.
func (r *Reader) ByteArray() []byte {
	n := r.Count()
	b := r.next(n)
	if r.err != nil {
		return nil
	}
	return append([]byte{}, b...)
}

// Rest returns a copy of every unread byte and consumes them.
func (r *Reader) Rest() []byte {
	b := r.next(r.Remaining())
	if r.err != nil {
		return nil
	}
	return append([]byte{}, b...)
}

// Count reads the 4-byte element count preceding a repeated structure.
// A negative count faults the Reader with CountMismatch.
func (r *Reader) Count() int {
	off := r.off
	n := r.Int32()
	if n < 0 {
		r.fail(&DecodeError{Kind: CountMismatch, Offset: off, Detail: "negative element count"})
		return 0
	}
	return int(n)
}

// CountOf reads an element count that must equal want. A different count
// faults the Reader with CountMismatch.
func (r *Reader) CountOf(want int, what string) int {
	off := r.off
	n := r.Count()
	if r.err == nil && n != want {
		r.fail(&DecodeError{Kind: CountMismatch, Offset: off, Detail: fmt.Sprintf("%d %s for %d requested", n, what, want)})
	}
	return n
}

// countFor reads an element count, checked against c when the reply is
// bound to a request.
func (r *Reader) countFor(c requestedCount, what string) int {
	if !c.bound {
		return r.Count()
	}
	return r.CountOf(c.n, what)
}

// Array calls fn exactly n times with the element index, stopping early
// only when the Reader has faulted.
func (r *Reader) Array(n int, fn func(i int)) {
	for i := 0; i < n && r.err == nil; i++ {
		fn(i)
	}
}

// readSlice reads a count followed by that many elements produced by fn.
// The pre-allocation is capped by the bytes still available so that a
// hostile count cannot force a large allocation.
func readSlice[T any](r *Reader, fn func() T) []T {
	return readN(r, r.Count(), fn)
}

// readN reads n elements produced by fn.
func readN[T any](r *Reader, n int, fn func() T) []T {
	if r.err != nil {
		return nil
	}
	out := make([]T, 0, min(n, r.Remaining()))
	r.Array(n, func(int) {
		v := fn()
		if r.err == nil {
			out = append(out, v)
		}
	})
	if r.err != nil {
		return nil
	}
	return out
}

// ID reads an identifier of kind k using the negotiated width.
func (r *Reader) ID(k IDKind) uint64 {
	n := r.sizes.Width(k)
	b := r.next(n)
	if b == nil {
		return 0
	}
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func (r *Reader) ObjectID() ObjectID           { return ObjectID(r.ID(ObjectKind)) }
func (r *Reader) ThreadID() ThreadID           { return ThreadID(r.ID(ObjectKind)) }
func (r *Reader) ThreadGroupID() ThreadGroupID { return ThreadGroupID(r.ID(ObjectKind)) }
func (r *Reader) StringID() StringID           { return StringID(r.ID(ObjectKind)) }
func (r *Reader) ClassLoaderID() ClassLoaderID { return ClassLoaderID(r.ID(ObjectKind)) }
func (r *Reader) ClassObjectID() ClassObjectID { return ClassObjectID(r.ID(ObjectKind)) }
func (r *Reader) ArrayID() ArrayID             { return ArrayID(r.ID(ObjectKind)) }

func (r *Reader) ReferenceTypeID() ReferenceTypeID {
	return ReferenceTypeID(r.ID(ReferenceTypeKind))
}
func (r *Reader) ClassID() ClassID         { return ClassID(r.ID(ReferenceTypeKind)) }
func (r *Reader) InterfaceID() InterfaceID { return InterfaceID(r.ID(ReferenceTypeKind)) }
func (r *Reader) MethodID() MethodID       { return MethodID(r.ID(MethodKind)) }
func (r *Reader) FieldID() FieldID         { return FieldID(r.ID(FieldKind)) }
func (r *Reader) FrameID() FrameID         { return FrameID(r.ID(FrameKind)) }

func (r *Reader) TypeTag() TypeTag { return TypeTag(r.Uint8()) }

// Location reads a type tag, class, method and code index.
func (r *Reader) Location() Location {
	return Location{
		Type:   r.TypeTag(),
		Class:  r.ClassID(),
		Method: r.MethodID(),
		Index:  r.Uint64(),
	}
}

// Value reads a tag byte followed by the payload that tag selects.
// An unrecognised tag faults the Reader with UnknownTag.
func (r *Reader) Value() Value {
	off := r.off
	tag := Tag(r.Uint8())
	if r.err != nil {
		return Value{}
	}
	if !tag.Valid() {
		r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Tag: tag})
		return Value{}
	}
	return r.readUntaggedValue(tag)
}

// UntaggedValue reads a payload whose tag is known to the caller.
func (r *Reader) UntaggedValue(tag Tag) Value {
	return r.readUntaggedValue(tag)
}

// TaggedObjectID reads an object tag followed by an object identifier.
// A primitive or unknown tag faults the Reader with UnknownTag.
func (r *Reader) TaggedObjectID() TaggedObjectID {
	off := r.off
	tag := Tag(r.Uint8())
	if r.err != nil {
		return TaggedObjectID{}
	}
	if !tag.IsObject() {
		r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Tag: tag, Detail: "expected object tag"})
		return TaggedObjectID{}
	}
	return TaggedObjectID{tag, r.ObjectID()}
}
