package jdwp

var (
	cmdClassTypeSuperclass   = Command{CommandSetClassType, 1}
	cmdClassTypeSetValues    = Command{CommandSetClassType, 2}
	cmdClassTypeInvokeMethod = Command{CommandSetClassType, 3}
	cmdClassTypeNewInstance  = Command{CommandSetClassType, 4}

	cmdArrayTypeNewInstance = Command{CommandSetArrayType, 1}

	cmdInterfaceTypeInvokeMethod = Command{CommandSetInterfaceType, 1}
)

var classTypeCommands = []commandSpec{
	{"Superclass", func() Request { return &ClassTypeSuperclass{} }, func() Reply { return &ClassTypeSuperclassReply{} }},
	{"SetValues", func() Request { return &ClassTypeSetValues{} }, newEmptyReply},
	{"InvokeMethod", func() Request { return &ClassTypeInvokeMethod{} }, func() Reply { return &InvokeMethodReply{} }},
	{"NewInstance", func() Request { return &ClassTypeNewInstance{} }, func() Reply { return &ClassTypeNewInstanceReply{} }},
}

var arrayTypeCommands = []commandSpec{
	{"NewInstance", func() Request { return &ArrayTypeNewInstance{} }, func() Reply { return &ArrayTypeNewInstanceReply{} }},
}

var interfaceTypeCommands = []commandSpec{
	{"InvokeMethod", func() Request { return &InterfaceTypeInvokeMethod{} }, func() Reply { return &InvokeMethodReply{} }},
}

// ClassTypeSuperclass requests the immediate superclass of a class.
type ClassTypeSuperclass struct {
	Class ClassID
}

func (ClassTypeSuperclass) Command() Command   { return cmdClassTypeSuperclass }
func (m *ClassTypeSuperclass) encode(w *Writer) { w.ReferenceTypeID(m.Class) }
func (m *ClassTypeSuperclass) decode(r *Reader) { m.Class = r.ClassID() }

// ClassTypeSuperclassReply holds the superclass, zero for java.lang.Object.
type ClassTypeSuperclassReply struct {
	Superclass ClassID
}

func (m *ClassTypeSuperclassReply) encode(w *Writer) { w.ReferenceTypeID(m.Superclass) }
func (m *ClassTypeSuperclassReply) decode(r *Reader) { m.Superclass = r.ClassID() }

// FieldValue is a field together with the value to store into it.
type FieldValue struct {
	Field FieldID
	Value Value
}

// fieldValues writes the untagged field/value list of the SetValues
// commands. A nil values with a non-nil raw writes raw unchanged.
func (w *Writer) fieldValues(values []FieldValue, raw []byte) {
	if values == nil && raw != nil {
		w.Raw(raw)
		return
	}
	writeSlice(w, values, func(v FieldValue) {
		w.FieldID(v.Field)
		w.UntaggedValue(v.Value)
	})
}

// ClassTypeSetValues sets the values of static fields.
//
// The values travel without their tags, so a receiver can only split the
// list if it knows the type of every field. Decoding therefore leaves
// Values nil and keeps the list, count included, in Raw.
type ClassTypeSetValues struct {
	Class  ClassID
	Values []FieldValue
	Raw    []byte `yaml:",omitempty"`
}

func (ClassTypeSetValues) Command() Command { return cmdClassTypeSetValues }

func (m *ClassTypeSetValues) encode(w *Writer) {
	w.ReferenceTypeID(m.Class)
	w.fieldValues(m.Values, m.Raw)
}

func (m *ClassTypeSetValues) decode(r *Reader) {
	m.Class = r.ClassID()
	m.Values, m.Raw = nil, r.Rest()
}

// Invocation is the thread, method, arguments and options shared by the
// InvokeMethod and NewInstance commands.
type Invocation struct {
	Thread  ThreadID
	Method  MethodID
	Args    []Value
	Options InvokeOptions
}

func (i *Invocation) encode(w *Writer) {
	w.ObjectID(i.Thread)
	w.MethodID(i.Method)
	w.values(i.Args)
	w.Int32(int32(i.Options))
}

func (i *Invocation) decode(r *Reader) {
	i.Thread = r.ThreadID()
	i.Method = r.MethodID()
	i.Args = r.values(requestedCount{})
	i.Options = InvokeOptions(r.Int32())
}

// ClassTypeInvokeMethod invokes a static method in the given thread.
type ClassTypeInvokeMethod struct {
	Class      ClassID
	Invocation `yaml:",inline"`
}

func (ClassTypeInvokeMethod) Command() Command { return cmdClassTypeInvokeMethod }

func (m *ClassTypeInvokeMethod) encode(w *Writer) {
	w.ReferenceTypeID(m.Class)
	m.Invocation.encode(w)
}

func (m *ClassTypeInvokeMethod) decode(r *Reader) {
	m.Class = r.ClassID()
	m.Invocation.decode(r)
}

// InvokeMethodReply is the result of every InvokeMethod command. Exception
// holds a null reference when the method returned normally.
type InvokeMethodReply struct {
	ReturnValue Value
	Exception   TaggedObjectID
}

func (m *InvokeMethodReply) encode(w *Writer) {
	w.Value(m.ReturnValue)
	w.TaggedObjectID(m.Exception)
}

func (m *InvokeMethodReply) decode(r *Reader) {
	m.ReturnValue = r.Value()
	m.Exception = r.TaggedObjectID()
}

// ClassTypeNewInstance creates an object by running a constructor in the
// given thread.
type ClassTypeNewInstance struct {
	Class      ClassID
	Invocation `yaml:",inline"`
}

func (ClassTypeNewInstance) Command() Command { return cmdClassTypeNewInstance }

func (m *ClassTypeNewInstance) encode(w *Writer) {
	w.ReferenceTypeID(m.Class)
	m.Invocation.encode(w)
}

func (m *ClassTypeNewInstance) decode(r *Reader) {
	m.Class = r.ClassID()
	m.Invocation.decode(r)
}

type ClassTypeNewInstanceReply struct {
	NewObject TaggedObjectID
	Exception TaggedObjectID
}

func (m *ClassTypeNewInstanceReply) encode(w *Writer) {
	w.TaggedObjectID(m.NewObject)
	w.TaggedObjectID(m.Exception)
}

func (m *ClassTypeNewInstanceReply) decode(r *Reader) {
	m.NewObject = r.TaggedObjectID()
	m.Exception = r.TaggedObjectID()
}

// ArrayTypeNewInstance creates an array of the given type and length.
type ArrayTypeNewInstance struct {
	ArrayType ArrayTypeID
	Length    int32
}

func (ArrayTypeNewInstance) Command() Command { return cmdArrayTypeNewInstance }

func (m *ArrayTypeNewInstance) encode(w *Writer) {
	w.ReferenceTypeID(m.ArrayType)
	w.Int32(m.Length)
}

func (m *ArrayTypeNewInstance) decode(r *Reader) {
	m.ArrayType = ArrayTypeID(r.ReferenceTypeID())
	m.Length = r.Int32()
}

type ArrayTypeNewInstanceReply struct {
	NewArray TaggedObjectID
}

func (m *ArrayTypeNewInstanceReply) encode(w *Writer) { w.TaggedObjectID(m.NewArray) }
func (m *ArrayTypeNewInstanceReply) decode(r *Reader) { m.NewArray = r.TaggedObjectID() }

// InterfaceTypeInvokeMethod invokes a static interface method.
type InterfaceTypeInvokeMethod struct {
	Interface  InterfaceID
	Invocation `yaml:",inline"`
}

func (InterfaceTypeInvokeMethod) Command() Command { return cmdInterfaceTypeInvokeMethod }

func (m *InterfaceTypeInvokeMethod) encode(w *Writer) {
	w.ReferenceTypeID(m.Interface)
	m.Invocation.encode(w)
}

func (m *InterfaceTypeInvokeMethod) decode(r *Reader) {
	m.Interface = r.InterfaceID()
	m.Invocation.decode(r)
}
