package jdwp

import "fmt"

var (
	cmdEventRequestSet                 = Command{CommandSetEventRequest, 1}
	cmdEventRequestClear               = Command{CommandSetEventRequest, 2}
	cmdEventRequestClearAllBreakpoints = Command{CommandSetEventRequest, 3}
)

var eventRequestCommands = []commandSpec{
	{"Set", func() Request { return &EventRequestSet{} }, func() Reply { return &EventRequestSetReply{} }},
	{"Clear", func() Request { return &EventRequestClear{} }, newEmptyReply},
	{"ClearAllBreakpoints", func() Request { return &EventRequestClearAllBreakpoints{} }, newEmptyReply},
}

// EventModifier restricts the events reported for an event request.
// Modifiers are applied in the order they appear in the request.
type EventModifier interface {
	ModKind() ModKind
	encode(w *Writer)
}

// CountModifier reports the event only once after it has fired Count-1
// times.
type CountModifier struct{ Count int32 }

// ConditionalModifier is reserved by the protocol.
type ConditionalModifier struct{ ExprID int32 }

// ThreadOnlyModifier restricts events to a thread.
type ThreadOnlyModifier struct{ Thread ThreadID }

// ClassOnlyModifier restricts events to a type and its subtypes.
type ClassOnlyModifier struct{ Type ReferenceTypeID }

// ClassMatchModifier restricts events to classes whose name matches
// Pattern. The pattern may begin or end with '*'.
type ClassMatchModifier struct{ Pattern string }

// ClassExcludeModifier is the negation of ClassMatchModifier.
type ClassExcludeModifier struct{ Pattern string }

// LocationOnlyModifier restricts events to a code location.
type LocationOnlyModifier struct{ Location Location }

// ExceptionOnlyModifier restricts exception events by exception type and
// by whether the exception is caught. A zero Type matches every exception.
type ExceptionOnlyModifier struct {
	Type     ReferenceTypeID
	Caught   bool
	Uncaught bool
}

// FieldOnlyModifier restricts field events to one field.
type FieldOnlyModifier struct {
	Type  ReferenceTypeID
	Field FieldID
}

// StepModifier describes the step of a SingleStep request.
type StepModifier struct {
	Thread ThreadID
	Size   StepSize
	Depth  StepDepth
}

// InstanceOnlyModifier restricts events to those whose "this" is Instance.
type InstanceOnlyModifier struct{ Instance ObjectID }

// SourceNameMatchModifier restricts class prepare events to types whose
// source name matches Pattern.
type SourceNameMatchModifier struct{ Pattern string }

func (CountModifier) ModKind() ModKind           { return ModCount }
func (ConditionalModifier) ModKind() ModKind     { return ModConditional }
func (ThreadOnlyModifier) ModKind() ModKind      { return ModThreadOnly }
func (ClassOnlyModifier) ModKind() ModKind       { return ModClassOnly }
func (ClassMatchModifier) ModKind() ModKind      { return ModClassMatch }
func (ClassExcludeModifier) ModKind() ModKind    { return ModClassExclude }
func (LocationOnlyModifier) ModKind() ModKind    { return ModLocationOnly }
func (ExceptionOnlyModifier) ModKind() ModKind   { return ModExceptionOnly }
func (FieldOnlyModifier) ModKind() ModKind       { return ModFieldOnly }
func (StepModifier) ModKind() ModKind            { return ModStep }
func (InstanceOnlyModifier) ModKind() ModKind    { return ModInstanceOnly }
func (SourceNameMatchModifier) ModKind() ModKind { return ModSourceNameMatch }

func (m CountModifier) encode(w *Writer)           { w.Int32(m.Count) }
func (m ConditionalModifier) encode(w *Writer)     { w.Int32(m.ExprID) }
func (m ThreadOnlyModifier) encode(w *Writer)      { w.ObjectID(m.Thread) }
func (m ClassOnlyModifier) encode(w *Writer)       { w.ReferenceTypeID(m.Type) }
func (m ClassMatchModifier) encode(w *Writer)      { w.String(m.Pattern) }
func (m ClassExcludeModifier) encode(w *Writer)    { w.String(m.Pattern) }
func (m LocationOnlyModifier) encode(w *Writer)    { w.Location(m.Location) }
func (m InstanceOnlyModifier) encode(w *Writer)    { w.ObjectID(m.Instance) }
func (m SourceNameMatchModifier) encode(w *Writer) { w.String(m.Pattern) }

func (m ExceptionOnlyModifier) encode(w *Writer) {
	w.ReferenceTypeID(m.Type)
	w.Bool(m.Caught)
	w.Bool(m.Uncaught)
}

func (m FieldOnlyModifier) encode(w *Writer) {
	w.ReferenceTypeID(m.Type)
	w.FieldID(m.Field)
}

func (m StepModifier) encode(w *Writer) {
	w.ObjectID(m.Thread)
	w.Int32(int32(m.Size))
	w.Int32(int32(m.Depth))
}

func (k ModKind) String() string {
	switch k {
	case ModCount:
		return "Count"
	case ModConditional:
		return "Conditional"
	case ModThreadOnly:
		return "ThreadOnly"
	case ModClassOnly:
		return "ClassOnly"
	case ModClassMatch:
		return "ClassMatch"
	case ModClassExclude:
		return "ClassExclude"
	case ModLocationOnly:
		return "LocationOnly"
	case ModExceptionOnly:
		return "ExceptionOnly"
	case ModFieldOnly:
		return "FieldOnly"
	case ModStep:
		return "Step"
	case ModInstanceOnly:
		return "InstanceOnly"
	case ModSourceNameMatch:
		return "SourceNameMatch"
	}
	return fmt.Sprintf("ModKind<%d>", int(k))
}

func (w *Writer) modifier(m EventModifier) {
	w.Uint8(uint8(m.ModKind()))
	m.encode(w)
}

func (r *Reader) modifier() EventModifier {
	off := r.off
	kind := ModKind(r.Uint8())
	if r.err != nil {
		return nil
	}
	switch kind {
	case ModCount:
		return CountModifier{r.Int32()}
	case ModConditional:
		return ConditionalModifier{r.Int32()}
	case ModThreadOnly:
		return ThreadOnlyModifier{r.ThreadID()}
	case ModClassOnly:
		return ClassOnlyModifier{r.ReferenceTypeID()}
	case ModClassMatch:
		return ClassMatchModifier{r.ReadString()}
	case ModClassExclude:
		return ClassExcludeModifier{r.ReadString()}
	case ModLocationOnly:
		return LocationOnlyModifier{r.Location()}
	case ModExceptionOnly:
		return ExceptionOnlyModifier{Type: r.ReferenceTypeID(), Caught: r.Bool(), Uncaught: r.Bool()}
	case ModFieldOnly:
		return FieldOnlyModifier{Type: r.ReferenceTypeID(), Field: r.FieldID()}
	case ModStep:
		return StepModifier{Thread: r.ThreadID(), Size: StepSize(r.Int32()), Depth: StepDepth(r.Int32())}
	case ModInstanceOnly:
		return InstanceOnlyModifier{r.ObjectID()}
	case ModSourceNameMatch:
		return SourceNameMatchModifier{r.ReadString()}
	}
	r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Detail: fmt.Sprintf("unknown modifier kind %d", uint8(kind))})
	return nil
}

// EventRequestSet asks the VM to report events of Kind that pass every
// modifier.
type EventRequestSet struct {
	Kind          EventKind
	SuspendPolicy SuspendPolicy
	Modifiers     []EventModifier
}

func (EventRequestSet) Command() Command { return cmdEventRequestSet }

func (m *EventRequestSet) encode(w *Writer) {
	w.Uint8(uint8(m.Kind))
	w.Uint8(uint8(m.SuspendPolicy))
	for _, mod := range m.Modifiers {
		if mod == nil {
			w.setErr(fmt.Errorf("%w: nil event modifier", ErrInvalidArgument))
			return
		}
	}
	writeSlice(w, m.Modifiers, w.modifier)
}

func (m *EventRequestSet) decode(r *Reader) {
	m.Kind = EventKind(r.Uint8())
	m.SuspendPolicy = SuspendPolicy(r.Uint8())
	m.Modifiers = readSlice(r, r.modifier)
}

type EventRequestSetReply struct {
	RequestID EventRequestID
}

func (m *EventRequestSetReply) encode(w *Writer) { w.Int32(int32(m.RequestID)) }
func (m *EventRequestSetReply) decode(r *Reader) { m.RequestID = EventRequestID(r.Int32()) }

// EventRequestClear cancels an event request.
type EventRequestClear struct {
	Kind      EventKind
	RequestID EventRequestID
}

func (EventRequestClear) Command() Command { return cmdEventRequestClear }

func (m *EventRequestClear) encode(w *Writer) {
	w.Uint8(uint8(m.Kind))
	w.Int32(int32(m.RequestID))
}

func (m *EventRequestClear) decode(r *Reader) {
	m.Kind = EventKind(r.Uint8())
	m.RequestID = EventRequestID(r.Int32())
}

// EventRequestClearAllBreakpoints removes every breakpoint request.
type EventRequestClearAllBreakpoints struct{}

func (EventRequestClearAllBreakpoints) Command() Command {
	return cmdEventRequestClearAllBreakpoints
}
func (*EventRequestClearAllBreakpoints) encode(*Writer) {}
func (*EventRequestClearAllBreakpoints) decode(*Reader) {}
