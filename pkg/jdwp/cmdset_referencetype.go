package jdwp

import "fmt"

var (
	cmdReferenceTypeSignature            = Command{CommandSetReferenceType, 1}
	cmdReferenceTypeClassLoader          = Command{CommandSetReferenceType, 2}
	cmdReferenceTypeModifiers            = Command{CommandSetReferenceType, 3}
	cmdReferenceTypeFields               = Command{CommandSetReferenceType, 4}
	cmdReferenceTypeMethods              = Command{CommandSetReferenceType, 5}
	cmdReferenceTypeGetValues            = Command{CommandSetReferenceType, 6}
	cmdReferenceTypeSourceFile           = Command{CommandSetReferenceType, 7}
	cmdReferenceTypeNestedTypes          = Command{CommandSetReferenceType, 8}
	cmdReferenceTypeStatus               = Command{CommandSetReferenceType, 9}
	cmdReferenceTypeInterfaces           = Command{CommandSetReferenceType, 10}
	cmdReferenceTypeClassObject          = Command{CommandSetReferenceType, 11}
	cmdReferenceTypeSourceDebugExtension = Command{CommandSetReferenceType, 12}
	cmdReferenceTypeSignatureWithGeneric = Command{CommandSetReferenceType, 13}
	cmdReferenceTypeFieldsWithGeneric    = Command{CommandSetReferenceType, 14}
	cmdReferenceTypeMethodsWithGeneric   = Command{CommandSetReferenceType, 15}
	cmdReferenceTypeInstances            = Command{CommandSetReferenceType, 16}
	cmdReferenceTypeClassFileVersion     = Command{CommandSetReferenceType, 17}
	cmdReferenceTypeConstantPool         = Command{CommandSetReferenceType, 18}
)

var referenceTypeCommands = []commandSpec{
	{"Signature", func() Request { return &ReferenceTypeSignature{} }, func() Reply { return &ReferenceTypeSignatureReply{} }},
	{"ClassLoader", func() Request { return &ReferenceTypeClassLoader{} }, func() Reply { return &ReferenceTypeClassLoaderReply{} }},
	{"Modifiers", func() Request { return &ReferenceTypeModifiers{} }, func() Reply { return &ReferenceTypeModifiersReply{} }},
	{"Fields", func() Request { return &ReferenceTypeFields{} }, func() Reply { return &ReferenceTypeFieldsReply{} }},
	{"Methods", func() Request { return &ReferenceTypeMethods{} }, func() Reply { return &ReferenceTypeMethodsReply{} }},
	{"GetValues", func() Request { return &ReferenceTypeGetValues{} }, func() Reply { return &ReferenceTypeGetValuesReply{} }},
	{"SourceFile", func() Request { return &ReferenceTypeSourceFile{} }, func() Reply { return &ReferenceTypeSourceFileReply{} }},
	{"NestedTypes", func() Request { return &ReferenceTypeNestedTypes{} }, func() Reply { return &ReferenceTypeNestedTypesReply{} }},
	{"Status", func() Request { return &ReferenceTypeStatus{} }, func() Reply { return &ReferenceTypeStatusReply{} }},
	{"Interfaces", func() Request { return &ReferenceTypeInterfaces{} }, func() Reply { return &ReferenceTypeInterfacesReply{} }},
	{"ClassObject", func() Request { return &ReferenceTypeClassObject{} }, func() Reply { return &ReferenceTypeClassObjectReply{} }},
	{"SourceDebugExtension", func() Request { return &ReferenceTypeSourceDebugExtension{} }, func() Reply { return &ReferenceTypeSourceDebugExtensionReply{} }},
	{"SignatureWithGeneric", func() Request { return &ReferenceTypeSignatureWithGeneric{} }, func() Reply { return &ReferenceTypeSignatureWithGenericReply{} }},
	{"FieldsWithGeneric", func() Request { return &ReferenceTypeFieldsWithGeneric{} }, func() Reply { return &ReferenceTypeFieldsWithGenericReply{} }},
	{"MethodsWithGeneric", func() Request { return &ReferenceTypeMethodsWithGeneric{} }, func() Reply { return &ReferenceTypeMethodsWithGenericReply{} }},
	{"Instances", func() Request { return &ReferenceTypeInstances{} }, func() Reply { return &ReferenceTypeInstancesReply{} }},
	{"ClassFileVersion", func() Request { return &ReferenceTypeClassFileVersion{} }, func() Reply { return &ReferenceTypeClassFileVersionReply{} }},
	{"ConstantPool", func() Request { return &ReferenceTypeConstantPool{} }, func() Reply { return &ReferenceTypeConstantPoolReply{} }},
}

// ReferenceTypeSignature requests the JNI signature of a reference type.
type ReferenceTypeSignature struct {
	Type ReferenceTypeID
}

func (ReferenceTypeSignature) Command() Command   { return cmdReferenceTypeSignature }
func (m *ReferenceTypeSignature) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeSignature) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeSignatureReply struct {
	Signature string
}

func (m *ReferenceTypeSignatureReply) encode(w *Writer) { w.String(m.Signature) }
func (m *ReferenceTypeSignatureReply) decode(r *Reader) { m.Signature = r.ReadString() }

// ReferenceTypeClassLoader requests the class loader that loaded a type.
type ReferenceTypeClassLoader struct {
	Type ReferenceTypeID
}

func (ReferenceTypeClassLoader) Command() Command   { return cmdReferenceTypeClassLoader }
func (m *ReferenceTypeClassLoader) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeClassLoader) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

// ReferenceTypeClassLoaderReply holds the loader, zero for the bootstrap
// loader.
type ReferenceTypeClassLoaderReply struct {
	ClassLoader ClassLoaderID
}

func (m *ReferenceTypeClassLoaderReply) encode(w *Writer) { w.ObjectID(m.ClassLoader) }
func (m *ReferenceTypeClassLoaderReply) decode(r *Reader) { m.ClassLoader = r.ClassLoaderID() }

// ReferenceTypeModifiers requests the access flags of a type.
type ReferenceTypeModifiers struct {
	Type ReferenceTypeID
}

func (ReferenceTypeModifiers) Command() Command   { return cmdReferenceTypeModifiers }
func (m *ReferenceTypeModifiers) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeModifiers) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeModifiersReply struct {
	ModBits ModBits
}

func (m *ReferenceTypeModifiersReply) encode(w *Writer) { w.Int32(int32(m.ModBits)) }
func (m *ReferenceTypeModifiersReply) decode(r *Reader) { m.ModBits = ModBits(r.Int32()) }

// ReferenceTypeFields requests the fields declared by a type.
type ReferenceTypeFields struct {
	Type ReferenceTypeID
}

func (ReferenceTypeFields) Command() Command   { return cmdReferenceTypeFields }
func (m *ReferenceTypeFields) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeFields) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeFieldsReply struct {
	Fields []FieldInfo
}

func (m *ReferenceTypeFieldsReply) encode(w *Writer) {
	writeSlice(w, m.Fields, func(f FieldInfo) { w.fieldInfo(f, false) })
}

func (m *ReferenceTypeFieldsReply) decode(r *Reader) {
	m.Fields = readSlice(r, func() FieldInfo { return r.fieldInfo(false) })
}

// ReferenceTypeMethods requests the methods declared by a type.
type ReferenceTypeMethods struct {
	Type ReferenceTypeID
}

func (ReferenceTypeMethods) Command() Command   { return cmdReferenceTypeMethods }
func (m *ReferenceTypeMethods) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeMethods) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeMethodsReply struct {
	Methods []MethodInfo
}

func (m *ReferenceTypeMethodsReply) encode(w *Writer) {
	writeSlice(w, m.Methods, func(mi MethodInfo) { w.methodInfo(mi, false) })
}

func (m *ReferenceTypeMethodsReply) decode(r *Reader) {
	m.Methods = readSlice(r, func() MethodInfo { return r.methodInfo(false) })
}

// ReferenceTypeGetValues requests the values of static fields. Fields must
// not be empty.
type ReferenceTypeGetValues struct {
	Type   ReferenceTypeID
	Fields []FieldID
}

func (ReferenceTypeGetValues) Command() Command { return cmdReferenceTypeGetValues }

func (m *ReferenceTypeGetValues) encode(w *Writer) {
	if len(m.Fields) == 0 {
		w.setErr(fmt.Errorf("%w: %v needs at least one field", ErrInvalidArgument, cmdReferenceTypeGetValues))
	}
	w.ReferenceTypeID(m.Type)
	writeSlice(w, m.Fields, w.FieldID)
}

func (m *ReferenceTypeGetValues) decode(r *Reader) {
	m.Type = r.ReferenceTypeID()
	m.Fields = readSlice(r, r.FieldID)
}

// ReferenceTypeGetValuesReply holds one value per requested field, in
// request order.
type ReferenceTypeGetValuesReply struct {
	Values []Value

	requested requestedCount
}

func (m *ReferenceTypeGetValuesReply) bind(req Request) {
	if q, ok := req.(*ReferenceTypeGetValues); ok {
		m.requested = requestedCount{len(q.Fields), true}
	}
}

func (m *ReferenceTypeGetValuesReply) encode(w *Writer) { w.values(m.Values) }
func (m *ReferenceTypeGetValuesReply) decode(r *Reader) { m.Values = r.values(m.requested) }

// ReferenceTypeSourceFile requests the source file name of a type.
type ReferenceTypeSourceFile struct {
	Type ReferenceTypeID
}

func (ReferenceTypeSourceFile) Command() Command   { return cmdReferenceTypeSourceFile }
func (m *ReferenceTypeSourceFile) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeSourceFile) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeSourceFileReply struct {
	SourceFile string
}

func (m *ReferenceTypeSourceFileReply) encode(w *Writer) { w.String(m.SourceFile) }
func (m *ReferenceTypeSourceFileReply) decode(r *Reader) { m.SourceFile = r.ReadString() }

// ReferenceTypeNestedTypes requests the types directly nested in a type.
type ReferenceTypeNestedTypes struct {
	Type ReferenceTypeID
}

func (ReferenceTypeNestedTypes) Command() Command   { return cmdReferenceTypeNestedTypes }
func (m *ReferenceTypeNestedTypes) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeNestedTypes) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

// TypeRef is a reference type identifier together with its kind.
type TypeRef struct {
	Kind   TypeTag
	TypeID ReferenceTypeID
}

func (w *Writer) typeRef(t TypeRef) {
	w.TypeTag(t.Kind)
	w.ReferenceTypeID(t.TypeID)
}

func (r *Reader) typeRef() TypeRef {
	return TypeRef{Kind: r.TypeTag(), TypeID: r.ReferenceTypeID()}
}

type ReferenceTypeNestedTypesReply struct {
	Types []TypeRef
}

func (m *ReferenceTypeNestedTypesReply) encode(w *Writer) { writeSlice(w, m.Types, w.typeRef) }
func (m *ReferenceTypeNestedTypesReply) decode(r *Reader) { m.Types = readSlice(r, r.typeRef) }

// ReferenceTypeStatus requests the preparation status of a type.
type ReferenceTypeStatus struct {
	Type ReferenceTypeID
}

func (ReferenceTypeStatus) Command() Command   { return cmdReferenceTypeStatus }
func (m *ReferenceTypeStatus) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeStatus) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeStatusReply struct {
	Status ClassStatus
}

func (m *ReferenceTypeStatusReply) encode(w *Writer) { w.Int32(int32(m.Status)) }
func (m *ReferenceTypeStatusReply) decode(r *Reader) { m.Status = ClassStatus(r.Int32()) }

// ReferenceTypeInterfaces requests the interfaces directly implemented by a
// type.
type ReferenceTypeInterfaces struct {
	Type ReferenceTypeID
}

func (ReferenceTypeInterfaces) Command() Command   { return cmdReferenceTypeInterfaces }
func (m *ReferenceTypeInterfaces) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeInterfaces) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeInterfacesReply struct {
	Interfaces []InterfaceID
}

func (m *ReferenceTypeInterfacesReply) encode(w *Writer) {
	writeSlice(w, m.Interfaces, func(i InterfaceID) { w.ReferenceTypeID(i) })
}

func (m *ReferenceTypeInterfacesReply) decode(r *Reader) {
	m.Interfaces = readSlice(r, r.InterfaceID)
}

// ReferenceTypeClassObject requests the java.lang.Class instance of a type.
type ReferenceTypeClassObject struct {
	Type ReferenceTypeID
}

func (ReferenceTypeClassObject) Command() Command   { return cmdReferenceTypeClassObject }
func (m *ReferenceTypeClassObject) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeClassObject) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeClassObjectReply struct {
	ClassObject ClassObjectID
}

func (m *ReferenceTypeClassObjectReply) encode(w *Writer) { w.ObjectID(m.ClassObject) }
func (m *ReferenceTypeClassObjectReply) decode(r *Reader) { m.ClassObject = r.ClassObjectID() }

// ReferenceTypeSourceDebugExtension requests the SourceDebugExtension
// attribute of a type.
type ReferenceTypeSourceDebugExtension struct {
	Type ReferenceTypeID
}

func (ReferenceTypeSourceDebugExtension) Command() Command {
	return cmdReferenceTypeSourceDebugExtension
}
func (m *ReferenceTypeSourceDebugExtension) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeSourceDebugExtension) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeSourceDebugExtensionReply struct {
	Extension string
}

func (m *ReferenceTypeSourceDebugExtensionReply) encode(w *Writer) { w.String(m.Extension) }
func (m *ReferenceTypeSourceDebugExtensionReply) decode(r *Reader) { m.Extension = r.ReadString() }

// ReferenceTypeSignatureWithGeneric is ReferenceTypeSignature with the
// generic signature.
type ReferenceTypeSignatureWithGeneric struct {
	Type ReferenceTypeID
}

func (ReferenceTypeSignatureWithGeneric) Command() Command {
	return cmdReferenceTypeSignatureWithGeneric
}
func (m *ReferenceTypeSignatureWithGeneric) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeSignatureWithGeneric) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

// ReferenceTypeSignatureWithGenericReply holds the signature and the
// generic signature, empty when there is none.
type ReferenceTypeSignatureWithGenericReply struct {
	Signature        string
	GenericSignature string
}

func (m *ReferenceTypeSignatureWithGenericReply) encode(w *Writer) {
	w.String(m.Signature)
	w.String(m.GenericSignature)
}

func (m *ReferenceTypeSignatureWithGenericReply) decode(r *Reader) {
	m.Signature = r.ReadString()
	m.GenericSignature = r.ReadString()
}

// ReferenceTypeFieldsWithGeneric is ReferenceTypeFields with generic
// signatures.
type ReferenceTypeFieldsWithGeneric struct {
	Type ReferenceTypeID
}

func (ReferenceTypeFieldsWithGeneric) Command() Command   { return cmdReferenceTypeFieldsWithGeneric }
func (m *ReferenceTypeFieldsWithGeneric) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeFieldsWithGeneric) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeFieldsWithGenericReply struct {
	Fields []FieldInfo
}

func (m *ReferenceTypeFieldsWithGenericReply) encode(w *Writer) {
	writeSlice(w, m.Fields, func(f FieldInfo) { w.fieldInfo(f, true) })
}

func (m *ReferenceTypeFieldsWithGenericReply) decode(r *Reader) {
	m.Fields = readSlice(r, func() FieldInfo { return r.fieldInfo(true) })
}

// ReferenceTypeMethodsWithGeneric is ReferenceTypeMethods with generic
// signatures.
type ReferenceTypeMethodsWithGeneric struct {
	Type ReferenceTypeID
}

func (ReferenceTypeMethodsWithGeneric) Command() Command   { return cmdReferenceTypeMethodsWithGeneric }
func (m *ReferenceTypeMethodsWithGeneric) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeMethodsWithGeneric) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeMethodsWithGenericReply struct {
	Methods []MethodInfo
}

func (m *ReferenceTypeMethodsWithGenericReply) encode(w *Writer) {
	writeSlice(w, m.Methods, func(mi MethodInfo) { w.methodInfo(mi, true) })
}

func (m *ReferenceTypeMethodsWithGenericReply) decode(r *Reader) {
	m.Methods = readSlice(r, func() MethodInfo { return r.methodInfo(true) })
}

// ReferenceTypeInstances requests reachable instances of a type. A zero
// MaxInstances asks for all of them.
type ReferenceTypeInstances struct {
	Type         ReferenceTypeID
	MaxInstances int32
}

func (ReferenceTypeInstances) Command() Command { return cmdReferenceTypeInstances }

func (m *ReferenceTypeInstances) encode(w *Writer) {
	w.ReferenceTypeID(m.Type)
	w.Int32(m.MaxInstances)
}

func (m *ReferenceTypeInstances) decode(r *Reader) {
	m.Type = r.ReferenceTypeID()
	m.MaxInstances = r.Int32()
}

type ReferenceTypeInstancesReply struct {
	Instances []TaggedObjectID
}

func (m *ReferenceTypeInstancesReply) encode(w *Writer) {
	writeSlice(w, m.Instances, w.TaggedObjectID)
}

func (m *ReferenceTypeInstancesReply) decode(r *Reader) {
	m.Instances = readSlice(r, r.TaggedObjectID)
}

// ReferenceTypeClassFileVersion requests the class file version of a type.
type ReferenceTypeClassFileVersion struct {
	Type ReferenceTypeID
}

func (ReferenceTypeClassFileVersion) Command() Command   { return cmdReferenceTypeClassFileVersion }
func (m *ReferenceTypeClassFileVersion) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeClassFileVersion) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

type ReferenceTypeClassFileVersionReply struct {
	MajorVersion int32
	MinorVersion int32
}

func (m *ReferenceTypeClassFileVersionReply) encode(w *Writer) {
	w.Int32(m.MajorVersion)
	w.Int32(m.MinorVersion)
}

func (m *ReferenceTypeClassFileVersionReply) decode(r *Reader) {
	m.MajorVersion = r.Int32()
	m.MinorVersion = r.Int32()
}

// ReferenceTypeConstantPool requests the raw constant pool of a type.
type ReferenceTypeConstantPool struct {
	Type ReferenceTypeID
}

func (ReferenceTypeConstantPool) Command() Command   { return cmdReferenceTypeConstantPool }
func (m *ReferenceTypeConstantPool) encode(w *Writer) { w.ReferenceTypeID(m.Type) }
func (m *ReferenceTypeConstantPool) decode(r *Reader) { m.Type = r.ReferenceTypeID() }

// ReferenceTypeConstantPoolReply holds the constant pool entry count and
// the raw pool bytes in class file format.
type ReferenceTypeConstantPoolReply struct {
	Count int32
	Bytes []byte
}

func (m *ReferenceTypeConstantPoolReply) encode(w *Writer) {
	w.Int32(m.Count)
	w.ByteArray(m.Bytes)
}

func (m *ReferenceTypeConstantPoolReply) decode(r *Reader) {
	m.Count = r.Int32()
	m.Bytes = r.ByteArray()
}
