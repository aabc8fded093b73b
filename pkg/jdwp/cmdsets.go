package jdwp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/derekparker/trie"
)

// CommandSet is the namespace for a command identifier.
type CommandSet uint8

const (
	CommandSetVirtualMachine       = CommandSet(1)
	CommandSetReferenceType        = CommandSet(2)
	CommandSetClassType            = CommandSet(3)
	CommandSetArrayType            = CommandSet(4)
	CommandSetInterfaceType        = CommandSet(5)
	CommandSetMethod               = CommandSet(6)
	CommandSetField                = CommandSet(8)
	CommandSetObjectReference      = CommandSet(9)
	CommandSetStringReference      = CommandSet(10)
	CommandSetThreadReference      = CommandSet(11)
	CommandSetThreadGroupReference = CommandSet(12)
	CommandSetArrayReference       = CommandSet(13)
	CommandSetClassLoaderReference = CommandSet(14)
	CommandSetEventRequest         = CommandSet(15)
	CommandSetStackFrame           = CommandSet(16)
	CommandSetClassObjectReference = CommandSet(17)
	CommandSetEvent                = CommandSet(64)
)

func (c CommandSet) String() string {
	switch c {
	case CommandSetVirtualMachine:
		return "VirtualMachine"
	case CommandSetReferenceType:
		return "ReferenceType"
	case CommandSetClassType:
		return "ClassType"
	case CommandSetArrayType:
		return "ArrayType"
	case CommandSetInterfaceType:
		return "InterfaceType"
	case CommandSetMethod:
		return "Method"
	case CommandSetField:
		return "Field"
	case CommandSetObjectReference:
		return "ObjectReference"
	case CommandSetStringReference:
		return "StringReference"
	case CommandSetThreadReference:
		return "ThreadReference"
	case CommandSetThreadGroupReference:
		return "ThreadGroupReference"
	case CommandSetArrayReference:
		return "ArrayReference"
	case CommandSetClassLoaderReference:
		return "ClassLoaderReference"
	case CommandSetEventRequest:
		return "EventRequest"
	case CommandSetStackFrame:
		return "StackFrame"
	case CommandSetClassObjectReference:
		return "ClassObjectReference"
	case CommandSetEvent:
		return "Event"
	}
	return fmt.Sprint(int(c))
}

// Command identifies one protocol operation.
type Command struct {
	Set CommandSet
	ID  uint8
}

// Name returns the qualified name of the command, such as
// "VirtualMachine.IDSizes", or the empty string for an unknown command.
func (c Command) Name() string {
	if e, ok := catalog[c]; ok {
		return e.name
	}
	return ""
}

func (c Command) String() string {
	if n := c.Name(); n != "" {
		return n
	}
	return fmt.Sprintf("%v.%d", c.Set, c.ID)
}

// Message is the body of a command or reply packet. The set of messages is
// closed: every implementation lives in this package and is listed in the
// catalog.
type Message interface {
	encode(w *Writer)
	decode(r *Reader)
}

// Request is the body of a command packet sent to the VM.
type Request interface {
	Message
	Command() Command
}

// Reply is the body of a successful reply packet.
type Reply interface {
	Message
}

// EmptyReply is the reply of every command whose reply carries no data.
type EmptyReply struct{}

func (*EmptyReply) encode(*Writer) {}
func (*EmptyReply) decode(*Reader) {}

// commandSpec is one row of a command set table. Once registered, name
// holds the qualified name.
type commandSpec struct {
	name       string
	newRequest func() Request
	newReply   func() Reply
}

func newEmptyReply() Reply { return &EmptyReply{} }

// The catalog is the single mapping from command descriptor to body shape.
// It is filled once during package initialization and never modified.
var (
	catalog      = map[Command]commandSpec{}
	catalogNames = trie.New()
)

func init() {
	for _, set := range [][]commandSpec{
		virtualMachineCommands,
		referenceTypeCommands,
		classTypeCommands,
		arrayTypeCommands,
		interfaceTypeCommands,
		methodCommands,
		objectReferenceCommands,
		stringReferenceCommands,
		threadReferenceCommands,
		threadGroupReferenceCommands,
		arrayReferenceCommands,
		classLoaderReferenceCommands,
		eventRequestCommands,
		stackFrameCommands,
		classObjectReferenceCommands,
		eventCommands,
	} {
		for _, s := range set {
			register(s)
		}
	}
}

func register(s commandSpec) {
	c := s.newRequest().Command()
	if _, dup := catalog[c]; dup {
		panic(fmt.Errorf("jdwp: command %d/%d registered twice", c.Set, c.ID))
	}
	s.name = c.Set.String() + "." + s.name
	catalog[c] = s
	catalogNames.Add(s.name, c)
}

// LookupCommand returns the command with the given qualified name, for
// example "ThreadReference.Frames". The lookup is case sensitive.
func LookupCommand(name string) (Command, bool) {
	n, ok := catalogNames.Find(name)
	if !ok {
		return Command{}, false
	}
	return n.Meta().(Command), true
}

// Commands returns every command in the catalog ordered by set and id.
func Commands() []Command {
	r := make([]Command, 0, len(catalog))
	for c := range catalog {
		r = append(r, c)
	}
	sort.Slice(r, func(i, j int) bool {
		if r[i].Set != r[j].Set {
			return r[i].Set < r[j].Set
		}
		return r[i].ID < r[j].ID
	})
	return r
}

// CommandsWithPrefix returns the sorted qualified names that start with
// prefix.
func CommandsWithPrefix(prefix string) []string {
	var r []string
	if prefix == "" {
		r = catalogNames.Keys()
	} else {
		r = catalogNames.PrefixSearch(prefix)
	}
	sort.Strings(r)
	return r
}

// NewRequest returns a zero request body for c.
func NewRequest(c Command) (Request, error) {
	e, ok := catalog[c]
	if !ok {
		return nil, fmt.Errorf("%w %v", ErrUnknownCommand, c)
	}
	return e.newRequest(), nil
}

// NewReply returns a zero reply body for c, ready to be decoded into.
func NewReply(c Command) (Reply, error) {
	e, ok := catalog[c]
	if !ok {
		return nil, fmt.Errorf("%w %v", ErrUnknownCommand, c)
	}
	return e.newReply(), nil
}

// ShortName returns the command name without its set prefix.
func (c Command) ShortName() string {
	n := c.Name()
	if i := strings.IndexByte(n, '.'); i >= 0 {
		return n[i+1:]
	}
	return n
}
