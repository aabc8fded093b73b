package jdwp

var (
	cmdArrayReferenceLength    = Command{CommandSetArrayReference, 1}
	cmdArrayReferenceGetValues = Command{CommandSetArrayReference, 2}
	cmdArrayReferenceSetValues = Command{CommandSetArrayReference, 3}

	cmdClassLoaderReferenceVisibleClasses = Command{CommandSetClassLoaderReference, 1}

	cmdClassObjectReferenceReflectedType = Command{CommandSetClassObjectReference, 1}
)

var arrayReferenceCommands = []commandSpec{
	{"Length", func() Request { return &ArrayReferenceLength{} }, func() Reply { return &ArrayReferenceLengthReply{} }},
	{"GetValues", func() Request { return &ArrayReferenceGetValues{} }, func() Reply { return &ArrayReferenceGetValuesReply{} }},
	{"SetValues", func() Request { return &ArrayReferenceSetValues{} }, newEmptyReply},
}

var classLoaderReferenceCommands = []commandSpec{
	{"VisibleClasses", func() Request { return &ClassLoaderReferenceVisibleClasses{} }, func() Reply { return &ClassLoaderReferenceVisibleClassesReply{} }},
}

var classObjectReferenceCommands = []commandSpec{
	{"ReflectedType", func() Request { return &ClassObjectReferenceReflectedType{} }, func() Reply { return &ClassObjectReferenceReflectedTypeReply{} }},
}

// ArrayReferenceLength requests the length of an array.
type ArrayReferenceLength struct {
	Array ArrayID
}

func (ArrayReferenceLength) Command() Command   { return cmdArrayReferenceLength }
func (m *ArrayReferenceLength) encode(w *Writer) { w.ObjectID(m.Array) }
func (m *ArrayReferenceLength) decode(r *Reader) { m.Array = r.ArrayID() }

type ArrayReferenceLengthReply struct {
	ArrayLength int32
}

func (m *ArrayReferenceLengthReply) encode(w *Writer) { w.Int32(m.ArrayLength) }
func (m *ArrayReferenceLengthReply) decode(r *Reader) { m.ArrayLength = r.Int32() }

// ArrayReferenceGetValues requests Length components of an array starting
// at FirstIndex.
type ArrayReferenceGetValues struct {
	Array      ArrayID
	FirstIndex int32
	Length     int32
}

func (ArrayReferenceGetValues) Command() Command { return cmdArrayReferenceGetValues }

func (m *ArrayReferenceGetValues) encode(w *Writer) {
	w.ObjectID(m.Array)
	w.Int32(m.FirstIndex)
	w.Int32(m.Length)
}

func (m *ArrayReferenceGetValues) decode(r *Reader) {
	m.Array = r.ArrayID()
	m.FirstIndex = r.Int32()
	m.Length = r.Int32()
}

// ArrayRegion is a run of array components.
//
// On the wire the region starts with the component tag. Components of a
// primitive array follow untagged; components of an object array carry
// their own tag each, which may be more specific than the region's.
type ArrayRegion struct {
	Tag    Tag
	Values []Value
}

func (w *Writer) arrayRegion(a ArrayRegion) {
	w.Uint8(uint8(a.Tag))
	if a.Tag.IsPrimitive() {
		writeSlice(w, a.Values, w.UntaggedValue)
	} else {
		w.values(a.Values)
	}
}

func (r *Reader) arrayRegion(requested requestedCount) ArrayRegion {
	off := r.off
	a := ArrayRegion{Tag: Tag(r.Uint8())}
	if r.err != nil {
		return a
	}
	switch {
	case a.Tag == TagVoid:
		r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Tag: a.Tag, Detail: "void array region"})
	case a.Tag.IsPrimitive():
		n := r.countFor(requested, "components")
		a.Values = readN(r, n, func() Value { return r.UntaggedValue(a.Tag) })
	case a.Tag.IsObject():
		a.Values = r.values(requested)
	default:
		r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Tag: a.Tag, Detail: "array region"})
	}
	return a
}

type ArrayReferenceGetValuesReply struct {
	Values ArrayRegion

	requested requestedCount
}

func (m *ArrayReferenceGetValuesReply) bind(req Request) {
	if q, ok := req.(*ArrayReferenceGetValues); ok {
		m.requested = requestedCount{int(q.Length), true}
	}
}

func (m *ArrayReferenceGetValuesReply) encode(w *Writer) { w.arrayRegion(m.Values) }
func (m *ArrayReferenceGetValuesReply) decode(r *Reader) { m.Values = r.arrayRegion(m.requested) }

// ArrayReferenceSetValues stores untagged values into an array starting at
// FirstIndex. The components' type is not on the wire, so a decoded request
// leaves Values nil and keeps the list, count included, in Raw.
type ArrayReferenceSetValues struct {
	Array      ArrayID
	FirstIndex int32
	Values     []Value
	Raw        []byte `yaml:",omitempty"`
}

func (ArrayReferenceSetValues) Command() Command { return cmdArrayReferenceSetValues }

func (m *ArrayReferenceSetValues) encode(w *Writer) {
	w.ObjectID(m.Array)
	w.Int32(m.FirstIndex)
	if m.Values == nil && m.Raw != nil {
		w.Raw(m.Raw)
		return
	}
	writeSlice(w, m.Values, w.UntaggedValue)
}

func (m *ArrayReferenceSetValues) decode(r *Reader) {
	m.Array = r.ArrayID()
	m.FirstIndex = r.Int32()
	m.Values, m.Raw = nil, r.Rest()
}

// ClassLoaderReferenceVisibleClasses requests the types for which the
// loader is an initiating loader.
type ClassLoaderReferenceVisibleClasses struct {
	ClassLoader ClassLoaderID
}

func (ClassLoaderReferenceVisibleClasses) Command() Command {
	return cmdClassLoaderReferenceVisibleClasses
}
func (m *ClassLoaderReferenceVisibleClasses) encode(w *Writer) { w.ObjectID(m.ClassLoader) }
func (m *ClassLoaderReferenceVisibleClasses) decode(r *Reader) { m.ClassLoader = r.ClassLoaderID() }

type ClassLoaderReferenceVisibleClassesReply struct {
	Classes []TypeRef
}

func (m *ClassLoaderReferenceVisibleClassesReply) encode(w *Writer) {
	writeSlice(w, m.Classes, w.typeRef)
}

func (m *ClassLoaderReferenceVisibleClassesReply) decode(r *Reader) {
	m.Classes = readSlice(r, r.typeRef)
}

// ClassObjectReferenceReflectedType requests the reference type reflected
// by a java.lang.Class instance.
type ClassObjectReferenceReflectedType struct {
	ClassObject ClassObjectID
}

func (ClassObjectReferenceReflectedType) Command() Command {
	return cmdClassObjectReferenceReflectedType
}
func (m *ClassObjectReferenceReflectedType) encode(w *Writer) { w.ObjectID(m.ClassObject) }
func (m *ClassObjectReferenceReflectedType) decode(r *Reader) { m.ClassObject = r.ClassObjectID() }

type ClassObjectReferenceReflectedTypeReply struct {
	TypeRef `yaml:",inline"`
}

func (m *ClassObjectReferenceReflectedTypeReply) encode(w *Writer) { w.typeRef(m.TypeRef) }
func (m *ClassObjectReferenceReflectedTypeReply) decode(r *Reader) { m.TypeRef = r.typeRef() }
