package jdwp

import "fmt"

// IDKind selects one of the five identifier families whose wire width is
// negotiated with VirtualMachine.IDSizes.
type IDKind uint8

const (
	ObjectKind IDKind = iota
	MethodKind
	FieldKind
	FrameKind
	ReferenceTypeKind

	numIDKinds
)

func (k IDKind) String() string {
	switch k {
	case ObjectKind:
		return "object"
	case MethodKind:
		return "method"
	case FieldKind:
		return "field"
	case FrameKind:
		return "frame"
	case ReferenceTypeKind:
		return "reference type"
	}
	return fmt.Sprintf("IDKind(%d)", uint8(k))
}

// ObjectID is an object instance identifier.
// If the specific object type is known, ObjectID can be converted to
// ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID or ArrayID.
type ObjectID uint64

// ThreadID is a thread instance identifier.
type ThreadID uint64

// ThreadGroupID is a thread group identifier.
type ThreadGroupID uint64

// StringID is a string instance identifier.
type StringID uint64

// ClassLoaderID is a class loader identifier.
type ClassLoaderID uint64

// ClassObjectID is a class object instance identifier.
type ClassObjectID uint64

// ArrayID is an array instance identifier.
type ArrayID uint64

// Object is implemented by every identifier of the object kind.
type Object interface {
	ID() ObjectID
}

func (i ObjectID) ID() ObjectID      { return i }
func (i ThreadID) ID() ObjectID      { return ObjectID(i) }
func (i ThreadGroupID) ID() ObjectID { return ObjectID(i) }
func (i StringID) ID() ObjectID      { return ObjectID(i) }
func (i ClassLoaderID) ID() ObjectID { return ObjectID(i) }
func (i ClassObjectID) ID() ObjectID { return ObjectID(i) }
func (i ArrayID) ID() ObjectID       { return ObjectID(i) }

// ReferenceTypeID is a reference type identifier.
// If the specific reference type is known, ReferenceTypeID can be converted
// to ClassID, InterfaceID or ArrayTypeID.
type ReferenceTypeID uint64

// ClassID is a class reference type identifier.
type ClassID uint64

// InterfaceID is an interface reference type identifier.
type InterfaceID uint64

// ArrayTypeID is an array reference type identifier.
type ArrayTypeID uint64

// RefType is implemented by every identifier of the reference type kind.
type RefType interface {
	RefTypeID() ReferenceTypeID
}

func (i ReferenceTypeID) RefTypeID() ReferenceTypeID { return i }
func (i ClassID) RefTypeID() ReferenceTypeID         { return ReferenceTypeID(i) }
func (i InterfaceID) RefTypeID() ReferenceTypeID     { return ReferenceTypeID(i) }
func (i ArrayTypeID) RefTypeID() ReferenceTypeID     { return ReferenceTypeID(i) }

// MethodID identifies a single method of a class or interface.
type MethodID uint64

// FieldID identifies a single field of a class or interface.
type FieldID uint64

// FrameID identifies a stack frame. Frame IDs are only valid while the
// owning thread stays suspended.
type FrameID uint64

func (i ObjectID) String() string        { return fmt.Sprintf("ObjectID<%d>", uint64(i)) }
func (i ThreadID) String() string        { return fmt.Sprintf("ThreadID<%d>", uint64(i)) }
func (i ThreadGroupID) String() string   { return fmt.Sprintf("ThreadGroupID<%d>", uint64(i)) }
func (i StringID) String() string        { return fmt.Sprintf("StringID<%d>", uint64(i)) }
func (i ClassLoaderID) String() string   { return fmt.Sprintf("ClassLoaderID<%d>", uint64(i)) }
func (i ClassObjectID) String() string   { return fmt.Sprintf("ClassObjectID<%d>", uint64(i)) }
func (i ArrayID) String() string         { return fmt.Sprintf("ArrayID<%d>", uint64(i)) }
func (i ReferenceTypeID) String() string { return fmt.Sprintf("ReferenceTypeID<%d>", uint64(i)) }
func (i ClassID) String() string         { return fmt.Sprintf("ClassID<%d>", uint64(i)) }
func (i InterfaceID) String() string     { return fmt.Sprintf("InterfaceID<%d>", uint64(i)) }
func (i ArrayTypeID) String() string     { return fmt.Sprintf("ArrayTypeID<%d>", uint64(i)) }
func (i MethodID) String() string        { return fmt.Sprintf("MethodID<%d>", uint64(i)) }
func (i FieldID) String() string         { return fmt.Sprintf("FieldID<%d>", uint64(i)) }
func (i FrameID) String() string         { return fmt.Sprintf("FrameID<%d>", uint64(i)) }
