package jdwp

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"
)

// Writer appends big-endian protocol fields to a growable buffer.
//
// Writes never fail on their own. An identifier that does not fit the
// negotiated width, or a value with an unknown tag, is recorded and
// reported by Err; the request builders return it to the caller.
type Writer struct {
	sizes *IDSizes
	buf   []byte
	err   error
}

// NewWriter returns a Writer that encodes identifiers with the widths in
// sizes. A nil sizes encodes every identifier with DefaultIDSize.
func NewWriter(sizes *IDSizes) *Writer {
	return &Writer{sizes: sizes}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.buf) }

// Err returns the first encoding error, if any.
func (w *Writer) Err() error { return w.err }

func (w *Writer) setErr(err error) {
	if w.err == nil {
		w.err = err
	}
}

func (w *Writer) Uint8(v uint8) { w.buf = append(w.buf, v) }

func (w *Writer) Uint16(v uint16) { w.buf = binary.BigEndian.AppendUint16(w.buf, v) }

func (w *Writer) Uint32(v uint32) { w.buf = binary.BigEndian.AppendUint32(w.buf, v) }

func (w *Writer) Uint64(v uint64) { w.buf = binary.BigEndian.AppendUint64(w.buf, v) }

func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

func (w *Writer) Int64(v int64) { w.Uint64(uint64(v)) }

func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// String writes a 4-byte length followed by the raw bytes of s, which must
// be valid UTF-8.
func (w *Writer) String(s string) {
	if !utf8.ValidString(s) {
		w.setErr(fmt.Errorf("%w: string %q is not valid UTF-8", ErrInvalidArgument, s))
	}
	w.Uint32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

// ByteArray writes a 4-byte count followed by b.
func (w *Writer) ByteArray(b []byte) {
	w.Uint32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// ID writes v using the width negotiated for kind k.
func (w *Writer) ID(k IDKind, v uint64) {
	n := w.sizes.Width(k)
	if n < 8 && v>>(uint(n)*8) != 0 {
		w.setErr(fmt.Errorf("%w: %v identifier %#x does not fit in %d bytes", ErrInvalidArgument, k, v, n))
	}
	w.putUint(n, v)
}

// putUint writes the low n bytes of v. n must be 1, 2, 4 or 8.
func (w *Writer) putUint(n int, v uint64) {
	switch n {
	case 1:
		w.Uint8(uint8(v))
	case 2:
		w.Uint16(uint16(v))
	case 4:
		w.Uint32(uint32(v))
	case 8:
		w.Uint64(v)
	default:
		panic(fmt.Errorf("jdwp: invalid identifier width %d", n))
	}
}

// ObjectID writes any identifier of the object kind.
func (w *Writer) ObjectID(o Object) { w.ID(ObjectKind, uint64(o.ID())) }

// ReferenceTypeID writes any identifier of the reference type kind.
func (w *Writer) ReferenceTypeID(t RefType) { w.ID(ReferenceTypeKind, uint64(t.RefTypeID())) }

func (w *Writer) MethodID(m MethodID) { w.ID(MethodKind, uint64(m)) }
func (w *Writer) FieldID(f FieldID)   { w.ID(FieldKind, uint64(f)) }
func (w *Writer) FrameID(f FrameID)   { w.ID(FrameKind, uint64(f)) }

func (w *Writer) TypeTag(t TypeTag) { w.Uint8(uint8(t)) }

// Location writes a type tag, class, method and code index.
func (w *Writer) Location(l Location) {
	w.TypeTag(l.Type)
	w.ReferenceTypeID(l.Class)
	w.MethodID(l.Method)
	w.Uint64(l.Index)
}

// Value writes the tag byte of v followed by its payload.
func (w *Writer) Value(v Value) {
	if !v.Tag.Valid() {
		w.setErr(fmt.Errorf("%w: cannot encode value with tag %v", ErrInvalidArgument, v.Tag))
		return
	}
	w.Uint8(uint8(v.Tag))
	w.writeUntaggedValue(v)
}

// UntaggedValue writes the payload of v without its tag, as used where
// the receiver already knows the type of the slot being written.
func (w *Writer) UntaggedValue(v Value) { w.writeUntaggedValue(v) }

// TaggedObjectID writes an object tag followed by the identifier.
func (w *Writer) TaggedObjectID(o TaggedObjectID) {
	if !o.Tag.IsObject() {
		w.setErr(fmt.Errorf("%w: %v is not an object tag", ErrInvalidArgument, o.Tag))
		return
	}
	w.Uint8(uint8(o.Tag))
	w.ObjectID(o.Object)
}

// Raw appends b without a length prefix.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }
