package jdwp

import (
	"fmt"
	"strings"
)

// TypeTag is the kind of a reference type.
type TypeTag uint8

const (
	Class     = TypeTag(1)
	Interface = TypeTag(2)
	Array     = TypeTag(3)
)

func (t TypeTag) String() string {
	switch t {
	case Class:
		return "Class"
	case Interface:
		return "Interface"
	case Array:
		return "Array"
	}
	return fmt.Sprintf("TypeTag<%d>", int(t))
}

// ClassStatus is a bitmask of class preparation states.
type ClassStatus int32

const (
	StatusVerified    = ClassStatus(1)
	StatusPrepared    = ClassStatus(2)
	StatusInitialized = ClassStatus(4)
	StatusError       = ClassStatus(8)
)

func (c ClassStatus) String() string {
	parts := []string{}
	for _, s := range []struct {
		bit  ClassStatus
		name string
	}{
		{StatusVerified, "Verified"},
		{StatusPrepared, "Prepared"},
		{StatusInitialized, "Initialized"},
		{StatusError, "Error"},
	} {
		if c&s.bit != 0 {
			parts = append(parts, s.name)
		}
	}
	if len(parts) == 0 {
		return "<none>"
	}
	return strings.Join(parts, ", ")
}

// ThreadStatus is the state of a thread.
type ThreadStatus int32

const (
	ThreadZombie   = ThreadStatus(0)
	ThreadRunning  = ThreadStatus(1)
	ThreadSleeping = ThreadStatus(2)
	ThreadMonitor  = ThreadStatus(3)
	ThreadWait     = ThreadStatus(4)
)

func (s ThreadStatus) String() string {
	switch s {
	case ThreadZombie:
		return "Zombie"
	case ThreadRunning:
		return "Running"
	case ThreadSleeping:
		return "Sleeping"
	case ThreadMonitor:
		return "Monitor"
	case ThreadWait:
		return "Wait"
	}
	return fmt.Sprintf("ThreadStatus<%d>", int(s))
}

// SuspendStatus is a bitmask describing whether a thread is suspended.
type SuspendStatus int32

const SuspendStatusSuspended = SuspendStatus(1)

// SuspendPolicy describes which threads are suspended when an event fires.
type SuspendPolicy uint8

const (
	SuspendNone        = SuspendPolicy(0)
	SuspendEventThread = SuspendPolicy(1)
	SuspendAll         = SuspendPolicy(2)
)

func (s SuspendPolicy) String() string {
	switch s {
	case SuspendNone:
		return "None"
	case SuspendEventThread:
		return "EventThread"
	case SuspendAll:
		return "All"
	}
	return fmt.Sprintf("SuspendPolicy<%d>", int(s))
}

// StepSize is the granularity of a step request.
type StepSize int32

const (
	StepMin  = StepSize(0)
	StepLine = StepSize(1)
)

// StepDepth is the call depth of a step request.
type StepDepth int32

const (
	StepInto = StepDepth(0)
	StepOver = StepDepth(1)
	StepOut  = StepDepth(2)
)

// InvokeOptions is a bitmask controlling method invocation.
type InvokeOptions int32

const (
	InvokeSingleThreaded = InvokeOptions(1)
	InvokeNonvirtual     = InvokeOptions(2)
)

// EventKind is the kind of an event request or of a reported event.
type EventKind uint8

const (
	SingleStep                = EventKind(1)
	Breakpoint                = EventKind(2)
	FramePop                  = EventKind(3)
	Exception                 = EventKind(4)
	UserDefined               = EventKind(5)
	ThreadStart               = EventKind(6)
	ThreadDeath               = EventKind(7)
	ClassPrepare              = EventKind(8)
	ClassUnload               = EventKind(9)
	ClassLoad                 = EventKind(10)
	FieldAccess               = EventKind(20)
	FieldModification         = EventKind(21)
	ExceptionCatch            = EventKind(30)
	MethodEntry               = EventKind(40)
	MethodExit                = EventKind(41)
	MethodExitWithReturnValue = EventKind(42)
	MonitorContendedEnter     = EventKind(43)
	MonitorContendedEntered   = EventKind(44)
	MonitorWait               = EventKind(45)
	MonitorWaited             = EventKind(46)
	VMStart                   = EventKind(90)
	VMDeath                   = EventKind(99)
	VMDisconnected            = EventKind(100) // never sent across JDWP
)

var eventKindNames = map[EventKind]string{
	SingleStep:                "SingleStep",
	Breakpoint:                "Breakpoint",
	FramePop:                  "FramePop",
	Exception:                 "Exception",
	UserDefined:               "UserDefined",
	ThreadStart:               "ThreadStart",
	ThreadDeath:               "ThreadDeath",
	ClassPrepare:              "ClassPrepare",
	ClassUnload:               "ClassUnload",
	ClassLoad:                 "ClassLoad",
	FieldAccess:               "FieldAccess",
	FieldModification:         "FieldModification",
	ExceptionCatch:            "ExceptionCatch",
	MethodEntry:               "MethodEntry",
	MethodExit:                "MethodExit",
	MethodExitWithReturnValue: "MethodExitWithReturnValue",
	MonitorContendedEnter:     "MonitorContendedEnter",
	MonitorContendedEntered:   "MonitorContendedEntered",
	MonitorWait:               "MonitorWait",
	MonitorWaited:             "MonitorWaited",
	VMStart:                   "VMStart",
	VMDeath:                   "VMDeath",
	VMDisconnected:            "VMDisconnected",
}

func (k EventKind) String() string {
	if n, ok := eventKindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("EventKind<%d>", int(k))
}

// ModKind is the kind of an EventRequest.Set modifier.
type ModKind uint8

const (
	ModCount           = ModKind(1)
	ModConditional     = ModKind(2)
	ModThreadOnly      = ModKind(3)
	ModClassOnly       = ModKind(4)
	ModClassMatch      = ModKind(5)
	ModClassExclude    = ModKind(6)
	ModLocationOnly    = ModKind(7)
	ModExceptionOnly   = ModKind(8)
	ModFieldOnly       = ModKind(9)
	ModStep            = ModKind(10)
	ModInstanceOnly    = ModKind(11)
	ModSourceNameMatch = ModKind(12)
)

// EventRequestID identifies an event request created by EventRequest.Set.
type EventRequestID int32
