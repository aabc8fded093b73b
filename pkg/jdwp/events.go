package jdwp

import "fmt"

var cmdEventComposite = Command{CommandSetEvent, 100}

var eventCommands = []commandSpec{
	{"Composite", func() Request { return &EventComposite{} }, newEmptyReply},
}

// EventComposite is the command packet the VM sends to report one or more
// events. The debugger does not reply to it.
type EventComposite struct {
	SuspendPolicy SuspendPolicy
	Events        []Event
}

func (EventComposite) Command() Command { return cmdEventComposite }

func (m *EventComposite) encode(w *Writer) {
	w.Uint8(uint8(m.SuspendPolicy))
	for _, e := range m.Events {
		if e == nil {
			w.setErr(fmt.Errorf("%w: nil event", ErrInvalidArgument))
			return
		}
	}
	writeSlice(w, m.Events, w.event)
}

func (m *EventComposite) decode(r *Reader) {
	m.SuspendPolicy = SuspendPolicy(r.Uint8())
	m.Events = readSlice(r, r.event)
}

// Event is implemented by every event reported in an EventComposite.
type Event interface {
	Kind() EventKind
	// RequestID returns the request that caused the event, zero for events
	// the VM reports without a request.
	RequestID() EventRequestID
	encode(w *Writer)
}

type VMStartEvent struct {
	Request EventRequestID
	Thread  ThreadID
}

type VMDeathEvent struct {
	Request EventRequestID
}

type SingleStepEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

type BreakpointEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

type MethodEntryEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// MethodExitEvent is reported at the location of the return instruction.
type MethodExitEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

type MethodExitWithReturnValueEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
	Value    Value
}

type MonitorContendedEnterEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
}

type MonitorContendedEnteredEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
}

// MonitorWaitEvent is reported when a thread is about to wait on a
// monitor. Timeout is in milliseconds.
type MonitorWaitEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
	Timeout  int64
}

type MonitorWaitedEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Object   TaggedObjectID
	Location Location
	TimedOut bool
}

// ExceptionEvent reports a thrown exception. CatchLocation is zero when
// the exception is not caught.
type ExceptionEvent struct {
	Request       EventRequestID
	Thread        ThreadID
	Location      Location
	Exception     TaggedObjectID
	CatchLocation Location
}

type ThreadStartEvent struct {
	Request EventRequestID
	Thread  ThreadID
}

type ThreadDeathEvent struct {
	Request EventRequestID
	Thread  ThreadID
}

type ClassPrepareEvent struct {
	Request   EventRequestID
	Thread    ThreadID
	TypeRef   `yaml:",inline"`
	Signature string
	Status    ClassStatus
}

type ClassUnloadEvent struct {
	Request   EventRequestID
	Signature string
}

// FieldAccessEvent reports a read of Field. Object is null for a static
// field.
type FieldAccessEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
	TypeRef  `yaml:",inline"`
	Field    FieldID
	Object   TaggedObjectID
}

type FieldModificationEvent struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
	TypeRef  `yaml:",inline"`
	Field    FieldID
	Object   TaggedObjectID
	NewValue Value
}

func (VMStartEvent) Kind() EventKind                   { return VMStart }
func (VMDeathEvent) Kind() EventKind                   { return VMDeath }
func (SingleStepEvent) Kind() EventKind                { return SingleStep }
func (BreakpointEvent) Kind() EventKind                { return Breakpoint }
func (MethodEntryEvent) Kind() EventKind               { return MethodEntry }
func (MethodExitEvent) Kind() EventKind                { return MethodExit }
func (MethodExitWithReturnValueEvent) Kind() EventKind { return MethodExitWithReturnValue }
func (MonitorContendedEnterEvent) Kind() EventKind     { return MonitorContendedEnter }
func (MonitorContendedEnteredEvent) Kind() EventKind   { return MonitorContendedEntered }
func (MonitorWaitEvent) Kind() EventKind               { return MonitorWait }
func (MonitorWaitedEvent) Kind() EventKind             { return MonitorWaited }
func (ExceptionEvent) Kind() EventKind                 { return Exception }
func (ThreadStartEvent) Kind() EventKind               { return ThreadStart }
func (ThreadDeathEvent) Kind() EventKind               { return ThreadDeath }
func (ClassPrepareEvent) Kind() EventKind              { return ClassPrepare }
func (ClassUnloadEvent) Kind() EventKind               { return ClassUnload }
func (FieldAccessEvent) Kind() EventKind               { return FieldAccess }
func (FieldModificationEvent) Kind() EventKind         { return FieldModification }

func (e VMStartEvent) RequestID() EventRequestID                   { return e.Request }
func (e VMDeathEvent) RequestID() EventRequestID                   { return e.Request }
func (e SingleStepEvent) RequestID() EventRequestID                { return e.Request }
func (e BreakpointEvent) RequestID() EventRequestID                { return e.Request }
func (e MethodEntryEvent) RequestID() EventRequestID               { return e.Request }
func (e MethodExitEvent) RequestID() EventRequestID                { return e.Request }
func (e MethodExitWithReturnValueEvent) RequestID() EventRequestID { return e.Request }
func (e MonitorContendedEnterEvent) RequestID() EventRequestID     { return e.Request }
func (e MonitorContendedEnteredEvent) RequestID() EventRequestID   { return e.Request }
func (e MonitorWaitEvent) RequestID() EventRequestID               { return e.Request }
func (e MonitorWaitedEvent) RequestID() EventRequestID             { return e.Request }
func (e ExceptionEvent) RequestID() EventRequestID                 { return e.Request }
func (e ThreadStartEvent) RequestID() EventRequestID               { return e.Request }
func (e ThreadDeathEvent) RequestID() EventRequestID               { return e.Request }
func (e ClassPrepareEvent) RequestID() EventRequestID              { return e.Request }
func (e ClassUnloadEvent) RequestID() EventRequestID               { return e.Request }
func (e FieldAccessEvent) RequestID() EventRequestID               { return e.Request }
func (e FieldModificationEvent) RequestID() EventRequestID         { return e.Request }

// EventThread returns the thread an event was reported in, if it has one.
func EventThread(e Event) (ThreadID, bool) {
	switch e := e.(type) {
	case VMStartEvent:
		return e.Thread, true
	case SingleStepEvent:
		return e.Thread, true
	case BreakpointEvent:
		return e.Thread, true
	case MethodEntryEvent:
		return e.Thread, true
	case MethodExitEvent:
		return e.Thread, true
	case MethodExitWithReturnValueEvent:
		return e.Thread, true
	case MonitorContendedEnterEvent:
		return e.Thread, true
	case MonitorContendedEnteredEvent:
		return e.Thread, true
	case MonitorWaitEvent:
		return e.Thread, true
	case MonitorWaitedEvent:
		return e.Thread, true
	case ExceptionEvent:
		return e.Thread, true
	case ThreadStartEvent:
		return e.Thread, true
	case ThreadDeathEvent:
		return e.Thread, true
	case ClassPrepareEvent:
		return e.Thread, true
	case FieldAccessEvent:
		return e.Thread, true
	case FieldModificationEvent:
		return e.Thread, true
	}
	return 0, false
}

// EventLocation returns the code location an event was reported at, if it
// has one.
func EventLocation(e Event) (Location, bool) {
	switch e := e.(type) {
	case SingleStepEvent:
		return e.Location, true
	case BreakpointEvent:
		return e.Location, true
	case MethodEntryEvent:
		return e.Location, true
	case MethodExitEvent:
		return e.Location, true
	case MethodExitWithReturnValueEvent:
		return e.Location, true
	case MonitorContendedEnterEvent:
		return e.Location, true
	case MonitorContendedEnteredEvent:
		return e.Location, true
	case MonitorWaitEvent:
		return e.Location, true
	case MonitorWaitedEvent:
		return e.Location, true
	case ExceptionEvent:
		return e.Location, true
	case FieldAccessEvent:
		return e.Location, true
	case FieldModificationEvent:
		return e.Location, true
	}
	return Location{}, false
}

func (e VMStartEvent) encode(w *Writer)     { w.ObjectID(e.Thread) }
func (VMDeathEvent) encode(*Writer)         {}
func (e ThreadStartEvent) encode(w *Writer) { w.ObjectID(e.Thread) }
func (e ThreadDeathEvent) encode(w *Writer) { w.ObjectID(e.Thread) }
func (e ClassUnloadEvent) encode(w *Writer) { w.String(e.Signature) }

func (e SingleStepEvent) encode(w *Writer)  { w.threadLocation(e.Thread, e.Location) }
func (e BreakpointEvent) encode(w *Writer)  { w.threadLocation(e.Thread, e.Location) }
func (e MethodEntryEvent) encode(w *Writer) { w.threadLocation(e.Thread, e.Location) }
func (e MethodExitEvent) encode(w *Writer)  { w.threadLocation(e.Thread, e.Location) }

func (e MethodExitWithReturnValueEvent) encode(w *Writer) {
	w.threadLocation(e.Thread, e.Location)
	w.Value(e.Value)
}

func (e MonitorContendedEnterEvent) encode(w *Writer) {
	w.monitor(e.Thread, e.Object, e.Location)
}

func (e MonitorContendedEnteredEvent) encode(w *Writer) {
	w.monitor(e.Thread, e.Object, e.Location)
}

func (e MonitorWaitEvent) encode(w *Writer) {
	w.monitor(e.Thread, e.Object, e.Location)
	w.Int64(e.Timeout)
}

func (e MonitorWaitedEvent) encode(w *Writer) {
	w.monitor(e.Thread, e.Object, e.Location)
	w.Bool(e.TimedOut)
}

func (e ExceptionEvent) encode(w *Writer) {
	w.threadLocation(e.Thread, e.Location)
	w.TaggedObjectID(e.Exception)
	w.Location(e.CatchLocation)
}

func (e ClassPrepareEvent) encode(w *Writer) {
	w.ObjectID(e.Thread)
	w.typeRef(e.TypeRef)
	w.String(e.Signature)
	w.Int32(int32(e.Status))
}

func (e FieldAccessEvent) encode(w *Writer) {
	w.threadLocation(e.Thread, e.Location)
	w.typeRef(e.TypeRef)
	w.FieldID(e.Field)
	w.TaggedObjectID(e.Object)
}

func (e FieldModificationEvent) encode(w *Writer) {
	w.threadLocation(e.Thread, e.Location)
	w.typeRef(e.TypeRef)
	w.FieldID(e.Field)
	w.TaggedObjectID(e.Object)
	w.Value(e.NewValue)
}

func (w *Writer) threadLocation(t ThreadID, l Location) {
	w.ObjectID(t)
	w.Location(l)
}

func (w *Writer) monitor(t ThreadID, o TaggedObjectID, l Location) {
	w.ObjectID(t)
	w.TaggedObjectID(o)
	w.Location(l)
}

func (w *Writer) event(e Event) {
	w.Uint8(uint8(e.Kind()))
	w.Int32(int32(e.RequestID()))
	e.encode(w)
}

// event reads one event: kind, request id, then the fields of that kind.
// An event kind a VM never reports faults the Reader with UnknownTag.
func (r *Reader) event() Event {
	off := r.off
	kind := EventKind(r.Uint8())
	req := EventRequestID(r.Int32())
	if r.err != nil {
		return nil
	}
	switch kind {
	case VMStart:
		return VMStartEvent{req, r.ThreadID()}
	case VMDeath:
		return VMDeathEvent{req}
	case SingleStep:
		return SingleStepEvent{req, r.ThreadID(), r.Location()}
	case Breakpoint:
		return BreakpointEvent{req, r.ThreadID(), r.Location()}
	case MethodEntry:
		return MethodEntryEvent{req, r.ThreadID(), r.Location()}
	case MethodExit:
		return MethodExitEvent{req, r.ThreadID(), r.Location()}
	case MethodExitWithReturnValue:
		return MethodExitWithReturnValueEvent{req, r.ThreadID(), r.Location(), r.Value()}
	case MonitorContendedEnter:
		return MonitorContendedEnterEvent{req, r.ThreadID(), r.TaggedObjectID(), r.Location()}
	case MonitorContendedEntered:
		return MonitorContendedEnteredEvent{req, r.ThreadID(), r.TaggedObjectID(), r.Location()}
	case MonitorWait:
		return MonitorWaitEvent{req, r.ThreadID(), r.TaggedObjectID(), r.Location(), r.Int64()}
	case MonitorWaited:
		return MonitorWaitedEvent{req, r.ThreadID(), r.TaggedObjectID(), r.Location(), r.Bool()}
	case Exception:
		return ExceptionEvent{req, r.ThreadID(), r.Location(), r.TaggedObjectID(), r.Location()}
	case ThreadStart:
		return ThreadStartEvent{req, r.ThreadID()}
	case ThreadDeath:
		return ThreadDeathEvent{req, r.ThreadID()}
	case ClassPrepare:
		return ClassPrepareEvent{req, r.ThreadID(), r.typeRef(), r.ReadString(), ClassStatus(r.Int32())}
	case ClassUnload:
		return ClassUnloadEvent{req, r.ReadString()}
	case FieldAccess:
		return FieldAccessEvent{req, r.ThreadID(), r.Location(), r.typeRef(), r.FieldID(), r.TaggedObjectID()}
	case FieldModification:
		return FieldModificationEvent{req, r.ThreadID(), r.Location(), r.typeRef(), r.FieldID(), r.TaggedObjectID(), r.Value()}
	}
	r.fail(&DecodeError{Kind: UnknownTag, Offset: off, Detail: fmt.Sprintf("unknown event kind %d", uint8(kind))})
	return nil
}
