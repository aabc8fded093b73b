package jdwp

var (
	cmdStackFrameGetValues  = Command{CommandSetStackFrame, 1}
	cmdStackFrameSetValues  = Command{CommandSetStackFrame, 2}
	cmdStackFrameThisObject = Command{CommandSetStackFrame, 3}
	cmdStackFramePopFrames  = Command{CommandSetStackFrame, 4}
)

var stackFrameCommands = []commandSpec{
	{"GetValues", func() Request { return &StackFrameGetValues{} }, func() Reply { return &StackFrameGetValuesReply{} }},
	{"SetValues", func() Request { return &StackFrameSetValues{} }, newEmptyReply},
	{"ThisObject", func() Request { return &StackFrameThisObject{} }, func() Reply { return &StackFrameThisObjectReply{} }},
	{"PopFrames", func() Request { return &StackFramePopFrames{} }, newEmptyReply},
}

// FrameRef names a frame of a suspended thread.
type FrameRef struct {
	Thread ThreadID
	Frame  FrameID
}

func (m *FrameRef) encode(w *Writer) {
	w.ObjectID(m.Thread)
	w.FrameID(m.Frame)
}

func (m *FrameRef) decode(r *Reader) {
	m.Thread = r.ThreadID()
	m.Frame = r.FrameID()
}

// SlotRequest selects a local variable by slot. Tag is the tag of the
// variable's declared type, usually derived with TagForSignature.
type SlotRequest struct {
	Slot int32
	Tag  Tag
}

// SlotValue is a local variable slot together with the value to store.
type SlotValue struct {
	Slot  int32
	Value Value
}

// StackFrameGetValues requests the values of local variables of a frame.
type StackFrameGetValues struct {
	FrameRef `yaml:",inline"`
	Slots    []SlotRequest
}

func (StackFrameGetValues) Command() Command { return cmdStackFrameGetValues }

func (m *StackFrameGetValues) encode(w *Writer) {
	m.FrameRef.encode(w)
	writeSlice(w, m.Slots, func(s SlotRequest) {
		w.Int32(s.Slot)
		w.Uint8(uint8(s.Tag))
	})
}

func (m *StackFrameGetValues) decode(r *Reader) {
	m.FrameRef.decode(r)
	m.Slots = readSlice(r, func() SlotRequest {
		return SlotRequest{Slot: r.Int32(), Tag: Tag(r.Uint8())}
	})
}

// StackFrameGetValuesReply holds one value per requested slot, in request
// order.
type StackFrameGetValuesReply struct {
	Values []Value

	requested requestedCount
}

func (m *StackFrameGetValuesReply) bind(req Request) {
	if q, ok := req.(*StackFrameGetValues); ok {
		m.requested = requestedCount{len(q.Slots), true}
	}
}

func (m *StackFrameGetValuesReply) encode(w *Writer) { w.values(m.Values) }
func (m *StackFrameGetValuesReply) decode(r *Reader) { m.Values = r.values(m.requested) }

// StackFrameSetValues stores values into local variables of a frame. Unlike
// the other SetValues commands the values are tagged.
type StackFrameSetValues struct {
	FrameRef `yaml:",inline"`
	Values   []SlotValue
}

func (StackFrameSetValues) Command() Command { return cmdStackFrameSetValues }

func (m *StackFrameSetValues) encode(w *Writer) {
	m.FrameRef.encode(w)
	writeSlice(w, m.Values, func(s SlotValue) {
		w.Int32(s.Slot)
		w.Value(s.Value)
	})
}

func (m *StackFrameSetValues) decode(r *Reader) {
	m.FrameRef.decode(r)
	m.Values = readSlice(r, func() SlotValue {
		return SlotValue{Slot: r.Int32(), Value: r.Value()}
	})
}

// StackFrameThisObject requests the receiver of a frame.
type StackFrameThisObject struct {
	FrameRef `yaml:",inline"`
}

func (StackFrameThisObject) Command() Command { return cmdStackFrameThisObject }

// StackFrameThisObjectReply holds the receiver, a null reference for static
// and native methods.
type StackFrameThisObjectReply struct {
	Object TaggedObjectID
}

func (m *StackFrameThisObjectReply) encode(w *Writer) { w.TaggedObjectID(m.Object) }
func (m *StackFrameThisObjectReply) decode(r *Reader) { m.Object = r.TaggedObjectID() }

// StackFramePopFrames pops the frame and every frame above it.
type StackFramePopFrames struct {
	FrameRef `yaml:",inline"`
}

func (StackFramePopFrames) Command() Command { return cmdStackFramePopFrames }
