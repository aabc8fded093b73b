package jdwp

import "fmt"

var (
	cmdObjectReferenceReferenceType     = Command{CommandSetObjectReference, 1}
	cmdObjectReferenceGetValues         = Command{CommandSetObjectReference, 2}
	cmdObjectReferenceSetValues         = Command{CommandSetObjectReference, 3}
	cmdObjectReferenceMonitorInfo       = Command{CommandSetObjectReference, 5}
	cmdObjectReferenceInvokeMethod      = Command{CommandSetObjectReference, 6}
	cmdObjectReferenceDisableCollection = Command{CommandSetObjectReference, 7}
	cmdObjectReferenceEnableCollection  = Command{CommandSetObjectReference, 8}
	cmdObjectReferenceIsCollected       = Command{CommandSetObjectReference, 9}
	cmdObjectReferenceReferringObjects  = Command{CommandSetObjectReference, 10}

	cmdStringReferenceValue = Command{CommandSetStringReference, 1}
)

var objectReferenceCommands = []commandSpec{
	{"ReferenceType", func() Request { return &ObjectReferenceReferenceType{} }, func() Reply { return &ObjectReferenceReferenceTypeReply{} }},
	{"GetValues", func() Request { return &ObjectReferenceGetValues{} }, func() Reply { return &ObjectReferenceGetValuesReply{} }},
	{"SetValues", func() Request { return &ObjectReferenceSetValues{} }, newEmptyReply},
	{"MonitorInfo", func() Request { return &ObjectReferenceMonitorInfo{} }, func() Reply { return &ObjectReferenceMonitorInfoReply{} }},
	{"InvokeMethod", func() Request { return &ObjectReferenceInvokeMethod{} }, func() Reply { return &InvokeMethodReply{} }},
	{"DisableCollection", func() Request { return &ObjectReferenceDisableCollection{} }, newEmptyReply},
	{"EnableCollection", func() Request { return &ObjectReferenceEnableCollection{} }, newEmptyReply},
	{"IsCollected", func() Request { return &ObjectReferenceIsCollected{} }, func() Reply { return &ObjectReferenceIsCollectedReply{} }},
	{"ReferringObjects", func() Request { return &ObjectReferenceReferringObjects{} }, func() Reply { return &ObjectReferenceReferringObjectsReply{} }},
}

var stringReferenceCommands = []commandSpec{
	{"Value", func() Request { return &StringReferenceValue{} }, func() Reply { return &StringReferenceValueReply{} }},
}

// ObjectRef is the body of the commands whose only argument is an object.
type ObjectRef struct {
	Object ObjectID
}

func (m *ObjectRef) encode(w *Writer) { w.ObjectID(m.Object) }
func (m *ObjectRef) decode(r *Reader) { m.Object = r.ObjectID() }

// ObjectReferenceReferenceType requests the runtime type of an object.
type ObjectReferenceReferenceType struct {
	ObjectRef `yaml:",inline"`
}

func (ObjectReferenceReferenceType) Command() Command { return cmdObjectReferenceReferenceType }

type ObjectReferenceReferenceTypeReply struct {
	TypeRef `yaml:",inline"`
}

func (m *ObjectReferenceReferenceTypeReply) encode(w *Writer) { w.typeRef(m.TypeRef) }
func (m *ObjectReferenceReferenceTypeReply) decode(r *Reader) { m.TypeRef = r.typeRef() }

// ObjectReferenceGetValues requests the values of instance fields. Fields
// must not be empty.
type ObjectReferenceGetValues struct {
	Object ObjectID
	Fields []FieldID
}

func (ObjectReferenceGetValues) Command() Command { return cmdObjectReferenceGetValues }

func (m *ObjectReferenceGetValues) encode(w *Writer) {
	if len(m.Fields) == 0 {
		w.setErr(fmt.Errorf("%w: %v needs at least one field", ErrInvalidArgument, cmdObjectReferenceGetValues))
	}
	w.ObjectID(m.Object)
	writeSlice(w, m.Fields, w.FieldID)
}

func (m *ObjectReferenceGetValues) decode(r *Reader) {
	m.Object = r.ObjectID()
	m.Fields = readSlice(r, r.FieldID)
}

// ObjectReferenceGetValuesReply holds one value per requested field, in
// request order.
type ObjectReferenceGetValuesReply struct {
	Values []Value

	requested requestedCount
}

func (m *ObjectReferenceGetValuesReply) bind(req Request) {
	if q, ok := req.(*ObjectReferenceGetValues); ok {
		m.requested = requestedCount{len(q.Fields), true}
	}
}

func (m *ObjectReferenceGetValuesReply) encode(w *Writer) { w.values(m.Values) }
func (m *ObjectReferenceGetValuesReply) decode(r *Reader) { m.Values = r.values(m.requested) }

// ObjectReferenceSetValues sets the values of instance fields. As with
// ClassTypeSetValues a decoded request keeps the untagged list in Raw.
type ObjectReferenceSetValues struct {
	Object ObjectID
	Values []FieldValue
	Raw    []byte `yaml:",omitempty"`
}

func (ObjectReferenceSetValues) Command() Command { return cmdObjectReferenceSetValues }

func (m *ObjectReferenceSetValues) encode(w *Writer) {
	w.ObjectID(m.Object)
	w.fieldValues(m.Values, m.Raw)
}

func (m *ObjectReferenceSetValues) decode(r *Reader) {
	m.Object = r.ObjectID()
	m.Values, m.Raw = nil, r.Rest()
}

// ObjectReferenceMonitorInfo requests the monitor state of an object.
type ObjectReferenceMonitorInfo struct {
	ObjectRef `yaml:",inline"`
}

func (ObjectReferenceMonitorInfo) Command() Command { return cmdObjectReferenceMonitorInfo }

// ObjectReferenceMonitorInfoReply describes the owner of the monitor, zero
// if unowned, and the threads waiting on it.
type ObjectReferenceMonitorInfoReply struct {
	Owner      ThreadID
	EntryCount int32
	Waiters    []ThreadID
}

func (m *ObjectReferenceMonitorInfoReply) encode(w *Writer) {
	w.ObjectID(m.Owner)
	w.Int32(m.EntryCount)
	writeSlice(w, m.Waiters, func(t ThreadID) { w.ObjectID(t) })
}

func (m *ObjectReferenceMonitorInfoReply) decode(r *Reader) {
	m.Owner = r.ThreadID()
	m.EntryCount = r.Int32()
	m.Waiters = readSlice(r, r.ThreadID)
}

// ObjectReferenceInvokeMethod invokes an instance method in the given
// thread.
type ObjectReferenceInvokeMethod struct {
	Object  ObjectID
	Thread  ThreadID
	Class   ClassID
	Method  MethodID
	Args    []Value
	Options InvokeOptions
}

func (ObjectReferenceInvokeMethod) Command() Command { return cmdObjectReferenceInvokeMethod }

func (m *ObjectReferenceInvokeMethod) encode(w *Writer) {
	w.ObjectID(m.Object)
	w.ObjectID(m.Thread)
	w.ReferenceTypeID(m.Class)
	w.MethodID(m.Method)
	w.values(m.Args)
	w.Int32(int32(m.Options))
}

func (m *ObjectReferenceInvokeMethod) decode(r *Reader) {
	m.Object = r.ObjectID()
	m.Thread = r.ThreadID()
	m.Class = r.ClassID()
	m.Method = r.MethodID()
	m.Args = r.values(requestedCount{})
	m.Options = InvokeOptions(r.Int32())
}

// ObjectReferenceDisableCollection prevents garbage collection of an
// object.
type ObjectReferenceDisableCollection struct {
	ObjectRef `yaml:",inline"`
}

func (ObjectReferenceDisableCollection) Command() Command {
	return cmdObjectReferenceDisableCollection
}

// ObjectReferenceEnableCollection undoes ObjectReferenceDisableCollection.
type ObjectReferenceEnableCollection struct {
	ObjectRef `yaml:",inline"`
}

func (ObjectReferenceEnableCollection) Command() Command { return cmdObjectReferenceEnableCollection }

// ObjectReferenceIsCollected asks whether an object has been collected.
type ObjectReferenceIsCollected struct {
	ObjectRef `yaml:",inline"`
}

func (ObjectReferenceIsCollected) Command() Command { return cmdObjectReferenceIsCollected }

type ObjectReferenceIsCollectedReply struct {
	IsCollected bool
}

func (m *ObjectReferenceIsCollectedReply) encode(w *Writer) { w.Bool(m.IsCollected) }
func (m *ObjectReferenceIsCollectedReply) decode(r *Reader) { m.IsCollected = r.Bool() }

// ObjectReferenceReferringObjects requests objects that refer to an object.
// A zero MaxReferrers asks for all of them.
type ObjectReferenceReferringObjects struct {
	Object       ObjectID
	MaxReferrers int32
}

func (ObjectReferenceReferringObjects) Command() Command { return cmdObjectReferenceReferringObjects }

func (m *ObjectReferenceReferringObjects) encode(w *Writer) {
	w.ObjectID(m.Object)
	w.Int32(m.MaxReferrers)
}

func (m *ObjectReferenceReferringObjects) decode(r *Reader) {
	m.Object = r.ObjectID()
	m.MaxReferrers = r.Int32()
}

type ObjectReferenceReferringObjectsReply struct {
	ReferringObjects []TaggedObjectID
}

func (m *ObjectReferenceReferringObjectsReply) encode(w *Writer) {
	writeSlice(w, m.ReferringObjects, w.TaggedObjectID)
}

func (m *ObjectReferenceReferringObjectsReply) decode(r *Reader) {
	m.ReferringObjects = readSlice(r, r.TaggedObjectID)
}

// StringReferenceValue requests the characters of a string object.
type StringReferenceValue struct {
	String StringID
}

func (StringReferenceValue) Command() Command   { return cmdStringReferenceValue }
func (m *StringReferenceValue) encode(w *Writer) { w.ObjectID(m.String) }
func (m *StringReferenceValue) decode(r *Reader) { m.String = r.StringID() }

type StringReferenceValueReply struct {
	Value string
}

func (m *StringReferenceValueReply) encode(w *Writer) { w.String(m.Value) }
func (m *StringReferenceValueReply) decode(r *Reader) { m.Value = r.ReadString() }
