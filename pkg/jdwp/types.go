package jdwp

import (
	"fmt"
	"sort"
)

// Location describes a code location.
type Location struct {
	Type   TypeTag
	Class  ClassID
	Method MethodID
	Index  uint64
}

func (l Location) String() string {
	return fmt.Sprintf("%v %v:%v@%d", l.Type, l.Class, l.Method, l.Index)
}

// ClassInfo describes a loaded reference type. Which of Signature and
// GenericSignature are populated depends on the command that produced it.
type ClassInfo struct {
	Kind             TypeTag
	TypeID           ReferenceTypeID
	Signature        string
	GenericSignature string
	Status           ClassStatus
}

// ClassID returns the class identifier of the reference type.
func (c ClassInfo) ClassID() ClassID { return ClassID(c.TypeID) }

// FieldInfo describes a single field of a reference type.
type FieldInfo struct {
	ID               FieldID
	Name             string
	Signature        string
	GenericSignature string
	ModBits          ModBits
}

// MethodInfo describes a single method of a reference type.
type MethodInfo struct {
	ID               MethodID
	Name             string
	Signature        string
	GenericSignature string
	ModBits          ModBits
}

// ModBits are the access flags of a class, field or method as defined in
// the Java class file format.
type ModBits int32

const (
	ModPublic       = ModBits(0x0001)
	ModPrivate      = ModBits(0x0002)
	ModProtected    = ModBits(0x0004)
	ModStatic       = ModBits(0x0008)
	ModFinal        = ModBits(0x0010)
	ModSynchronized = ModBits(0x0020)
	ModVolatile     = ModBits(0x0040)
	ModTransient    = ModBits(0x0080)
	ModNative       = ModBits(0x0100)
	ModInterface    = ModBits(0x0200)
	ModAbstract     = ModBits(0x0400)
	ModStrict       = ModBits(0x0800)
)

// LineTableEntry maps a code index to a source line.
type LineTableEntry struct {
	CodeIndex  uint64
	LineNumber int32
}

// Variable is a single entry of a method's variable table.
type Variable struct {
	CodeIndex        uint64
	Name             string
	Signature        string
	GenericSignature string
	Length           int32
	Slot             int32
}

// FrameInfo is a single frame of a suspended thread.
type FrameInfo struct {
	Frame    FrameID
	Location Location
}

// MonitorDepth is a monitor owned by a thread together with the stack depth
// at which it was acquired.
type MonitorDepth struct {
	Monitor    TaggedObjectID
	StackDepth int32
}

// ArgumentSlots returns the variables that could be method arguments, that
// is those live at code index 0 with a non-zero length, sorted by slot.
func ArgumentSlots(vars []Variable) []Variable {
	r := []Variable{}
	for _, v := range vars {
		if v.CodeIndex == 0 && v.Length > 0 {
			r = append(r, v)
		}
	}
	sort.Slice(r, func(i, j int) bool {
		return r[i].Slot < r[j].Slot
	})
	return r
}

func (w *Writer) classInfo(c ClassInfo, signature, generic bool) {
	w.TypeTag(c.Kind)
	w.ReferenceTypeID(c.TypeID)
	if signature {
		w.String(c.Signature)
	}
	if generic {
		w.String(c.GenericSignature)
	}
	w.Int32(int32(c.Status))
}

func (r *Reader) classInfo(signature, generic bool) ClassInfo {
	c := ClassInfo{Kind: r.TypeTag(), TypeID: r.ReferenceTypeID()}
	if signature {
		c.Signature = r.ReadString()
	}
	if generic {
		c.GenericSignature = r.ReadString()
	}
	c.Status = ClassStatus(r.Int32())
	return c
}

func (w *Writer) fieldInfo(f FieldInfo, generic bool) {
	w.FieldID(f.ID)
	w.String(f.Name)
	w.String(f.Signature)
	if generic {
		w.String(f.GenericSignature)
	}
	w.Int32(int32(f.ModBits))
}

func (r *Reader) fieldInfo(generic bool) FieldInfo {
	f := FieldInfo{ID: r.FieldID(), Name: r.ReadString(), Signature: r.ReadString()}
	if generic {
		f.GenericSignature = r.ReadString()
	}
	f.ModBits = ModBits(r.Int32())
	return f
}

func (w *Writer) methodInfo(m MethodInfo, generic bool) {
	w.MethodID(m.ID)
	w.String(m.Name)
	w.String(m.Signature)
	if generic {
		w.String(m.GenericSignature)
	}
	w.Int32(int32(m.ModBits))
}

func (r *Reader) methodInfo(generic bool) MethodInfo {
	m := MethodInfo{ID: r.MethodID(), Name: r.ReadString(), Signature: r.ReadString()}
	if generic {
		m.GenericSignature = r.ReadString()
	}
	m.ModBits = ModBits(r.Int32())
	return m
}

func (w *Writer) variable(v Variable, generic bool) {
	w.Uint64(v.CodeIndex)
	w.String(v.Name)
	w.String(v.Signature)
	if generic {
		w.String(v.GenericSignature)
	}
	w.Int32(v.Length)
	w.Int32(v.Slot)
}

func (r *Reader) variable(generic bool) Variable {
	v := Variable{CodeIndex: r.Uint64(), Name: r.ReadString(), Signature: r.ReadString()}
	if generic {
		v.GenericSignature = r.ReadString()
	}
	v.Length = r.Int32()
	v.Slot = r.Int32()
	return v
}

// writeSlice writes the element count of s followed by each element.
func writeSlice[T any](w *Writer, s []T, fn func(T)) {
	w.Uint32(uint32(len(s)))
	for _, v := range s {
		fn(v)
	}
}

func (w *Writer) strings(s []string) { writeSlice(w, s, w.String) }

func (r *Reader) strings() []string { return readSlice(r, r.ReadString) }
