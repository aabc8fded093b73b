package jdwp

import (
	"fmt"
	"math"
)

// Value is a debuggee value together with its tag.
//
// Primitive payloads are kept as their raw bit pattern, zero-extended to
// 64 bits, so that a decoded value re-encodes to exactly the same bytes.
// Values of object-like tags hold an object identifier.
type Value struct {
	Tag  Tag
	bits uint64
}

func ByteValue(v int8) Value      { return Value{TagByte, uint64(uint8(v))} }
func CharValue(v uint16) Value    { return Value{TagChar, uint64(v)} }
func ShortValue(v int16) Value    { return Value{TagShort, uint64(uint16(v))} }
func IntValue(v int32) Value      { return Value{TagInt, uint64(uint32(v))} }
func LongValue(v int64) Value     { return Value{TagLong, uint64(v)} }
func FloatValue(v float32) Value  { return Value{TagFloat, uint64(math.Float32bits(v))} }
func DoubleValue(v float64) Value { return Value{TagDouble, math.Float64bits(v)} }
func VoidValue() Value            { return Value{Tag: TagVoid} }

func BooleanValue(v bool) Value {
	if v {
		return Value{TagBoolean, 1}
	}
	return Value{TagBoolean, 0}
}

// ObjectValue returns a value of an object-like tag. A zero id is the null
// reference.
func ObjectValue(tag Tag, id ObjectID) Value {
	if !tag.IsObject() {
		panic(fmt.Errorf("jdwp: %v is not an object tag", tag))
	}
	return Value{tag, uint64(id)}
}

// TaggedObjectValue converts a tagged object identifier into a Value.
func TaggedObjectValue(o TaggedObjectID) Value {
	return Value{o.Tag, uint64(o.Object)}
}

func (v Value) Byte() int8       { return int8(v.bits) }
func (v Value) Char() uint16     { return uint16(v.bits) }
func (v Value) Short() int16     { return int16(v.bits) }
func (v Value) Int() int32       { return int32(v.bits) }
func (v Value) Long() int64      { return int64(v.bits) }
func (v Value) Float() float32   { return math.Float32frombits(uint32(v.bits)) }
func (v Value) Double() float64  { return math.Float64frombits(v.bits) }
func (v Value) Boolean() bool    { return v.bits != 0 }
func (v Value) Object() ObjectID { return ObjectID(v.bits) }

// IsNull reports whether v is an object value holding the null reference.
func (v Value) IsNull() bool {
	return v.Tag.IsObject() && v.bits == 0
}

// TaggedObject returns v as a tagged object identifier. The second result
// is false if v does not hold an object.
func (v Value) TaggedObject() (TaggedObjectID, bool) {
	if !v.Tag.IsObject() {
		return TaggedObjectID{}, false
	}
	return TaggedObjectID{v.Tag, ObjectID(v.bits)}, true
}

func (v Value) String() string {
	switch v.Tag {
	case TagByte:
		return fmt.Sprintf("byte %d", v.Byte())
	case TagChar:
		return fmt.Sprintf("char %q", rune(v.Char()))
	case TagShort:
		return fmt.Sprintf("short %d", v.Short())
	case TagInt:
		return fmt.Sprintf("int %d", v.Int())
	case TagLong:
		return fmt.Sprintf("long %d", v.Long())
	case TagFloat:
		return fmt.Sprintf("float %g", v.Float())
	case TagDouble:
		return fmt.Sprintf("double %g", v.Double())
	case TagBoolean:
		return fmt.Sprintf("boolean %v", v.Boolean())
	case TagVoid:
		return "void"
	}
	if v.Tag.IsObject() {
		if v.bits == 0 {
			return fmt.Sprintf("%v null", v.Tag)
		}
		return fmt.Sprintf("%v %v", v.Tag, v.Object())
	}
	return fmt.Sprintf("%v %#x", v.Tag, v.bits)
}

// TaggedObjectID is an object identifier preceded by the tag of its
// runtime type. A present tag with a zero Object is a null reference.
type TaggedObjectID struct {
	Tag    Tag
	Object ObjectID
}

func (i TaggedObjectID) ID() ObjectID { return i.Object }

// IsNull reports whether the identifier is the null reference.
func (i TaggedObjectID) IsNull() bool { return i.Object == 0 }

func (i TaggedObjectID) String() string {
	if i.Object == 0 {
		return fmt.Sprintf("%v null", i.Tag)
	}
	return fmt.Sprintf("%v %v", i.Tag, i.Object)
}

// readUntaggedValue reads the payload selected by tag. Object tags consume
// an object identifier of the negotiated width.
func (r *Reader) readUntaggedValue(tag Tag) Value {
	off := r.off
	switch tag {
	case TagVoid:
		return Value{Tag: tag}
	case TagByte, TagBoolean:
		return Value{tag, uint64(r.Uint8())}
	case TagChar, TagShort:
		return Value{tag, uint64(r.Uint16())}
	case TagInt, TagFloat:
		return Value{tag, uint64(r.Uint32())}
	case TagLong, TagDouble:
		return Value{tag, r.Uint64()}
	}
	if tag.IsObject() {
		return Value{tag, r.ID(ObjectKind)}
	}
	r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Tag: tag})
	return Value{}
}

func (w *Writer) writeUntaggedValue(v Value) {
	switch v.Tag {
	case TagVoid:
	case TagByte, TagBoolean:
		w.Uint8(uint8(v.bits))
	case TagChar, TagShort:
		w.Uint16(uint16(v.bits))
	case TagInt, TagFloat:
		w.Uint32(uint32(v.bits))
	case TagLong, TagDouble:
		w.Uint64(v.bits)
	default:
		if v.Tag.IsObject() {
			w.ID(ObjectKind, v.bits)
			return
		}
		w.setErr(fmt.Errorf("%w: cannot encode value with tag %v", ErrInvalidArgument, v.Tag))
	}
}

func (w *Writer) values(vs []Value) { writeSlice(w, vs, w.Value) }

// values reads a count of tagged values, checked against the number the
// request asked for.
func (r *Reader) values(want requestedCount) []Value {
	return readN(r, r.countFor(want, "values"), r.Value)
}
