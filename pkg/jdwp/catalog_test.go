package jdwp

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"testing"
)

// filler populates every exported field of a message with small non-zero
// values, so that an encoded message fits identifiers of any width.
type filler struct {
	n uint64
}

func (f *filler) next() uint64 {
	f.n = f.n%100 + 1
	return f.n
}

var (
	valueType    = reflect.TypeOf(Value{})
	taggedType   = reflect.TypeOf(TaggedObjectID{})
	regionType   = reflect.TypeOf(ArrayRegion{})
	tagType      = reflect.TypeOf(Tag(0))
	modifierType = reflect.TypeOf((*EventModifier)(nil)).Elem()
	eventType    = reflect.TypeOf((*Event)(nil)).Elem()
)

var allModifiers = []EventModifier{
	CountModifier{}, ConditionalModifier{}, ThreadOnlyModifier{}, ClassOnlyModifier{},
	ClassMatchModifier{}, ClassExcludeModifier{}, LocationOnlyModifier{}, ExceptionOnlyModifier{},
	FieldOnlyModifier{}, StepModifier{}, InstanceOnlyModifier{}, SourceNameMatchModifier{},
}

var allEvents = []Event{
	VMStartEvent{}, VMDeathEvent{}, SingleStepEvent{}, BreakpointEvent{}, MethodEntryEvent{},
	MethodExitEvent{}, MethodExitWithReturnValueEvent{}, MonitorContendedEnterEvent{},
	MonitorContendedEnteredEvent{}, MonitorWaitEvent{}, MonitorWaitedEvent{}, ExceptionEvent{},
	ThreadStartEvent{}, ThreadDeathEvent{}, ClassPrepareEvent{}, ClassUnloadEvent{},
	FieldAccessEvent{}, FieldModificationEvent{},
}

func (f *filler) fill(v reflect.Value) {
	switch v.Type() {
	case valueType:
		v.Set(reflect.ValueOf(IntValue(int32(f.next()))))
		return
	case taggedType:
		v.Set(reflect.ValueOf(TaggedObjectID{TagObject, ObjectID(f.next())}))
		return
	case regionType:
		v.Set(reflect.ValueOf(ArrayRegion{Tag: TagShort, Values: []Value{ShortValue(int16(f.next())), ShortValue(-1)}}))
		return
	case tagType:
		v.Set(reflect.ValueOf(TagLong))
		return
	}
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			sf := v.Type().Field(i)
			if sf.PkgPath != "" || sf.Name == "Raw" {
				continue
			}
			f.fill(v.Field(i))
		}
	case reflect.Slice:
		switch v.Type().Elem() {
		case modifierType:
			v.Set(reflect.ValueOf(fillAll(f, allModifiers)))
			return
		case eventType:
			v.Set(reflect.ValueOf(fillAll(f, allEvents)))
			return
		}
		s := reflect.MakeSlice(v.Type(), 2, 2)
		for i := 0; i < s.Len(); i++ {
			f.fill(s.Index(i))
		}
		v.Set(s)
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			f.fill(v.Index(i))
		}
	case reflect.Bool:
		v.SetBool(true)
	case reflect.String:
		v.SetString(fmt.Sprintf("s%d", f.next()))
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(f.next())
	case reflect.Int, reflect.Int32, reflect.Int64:
		v.SetInt(int64(f.next()))
	}
}

func fillAll[T any](f *filler, protos []T) []T {
	out := make([]T, 0, len(protos))
	for _, p := range protos {
		v := reflect.New(reflect.TypeOf(p)).Elem()
		f.fill(v)
		out = append(out, v.Interface().(T))
	}
	return out
}

func filled(m Message) Message {
	f := &filler{}
	f.fill(reflect.ValueOf(m).Elem())
	return m
}

func hasRaw(m Message) bool {
	return reflect.ValueOf(m).Elem().FieldByName("Raw").IsValid()
}

type catalogMessage struct {
	name string
	msg  Message
	new  func() Message
}

func catalogMessages(t *testing.T) []catalogMessage {
	t.Helper()
	var r []catalogMessage
	for _, c := range Commands() {
		c := c
		if _, err := NewRequest(c); err != nil {
			t.Fatalf("NewRequest(%v): %v", c, err)
		}
		r = append(r,
			catalogMessage{c.Name(), filled(catalog[c].newRequest()), func() Message { return catalog[c].newRequest() }},
			catalogMessage{c.Name() + " reply", filled(catalog[c].newReply()), func() Message { return catalog[c].newReply() }})
	}
	return r
}

func mustEncode(t *testing.T, sizes *IDSizes, m Message) []byte {
	t.Helper()
	w := NewWriter(sizes)
	m.encode(w)
	if err := w.Err(); err != nil {
		t.Fatalf("encoding %T: %v", m, err)
	}
	return w.Bytes()
}

func sizesOf(t *testing.T, width int32) *IDSizes {
	t.Helper()
	s := NewIDSizes()
	if err := s.Set(IDSizesReply{width, width, width, width, width}); err != nil {
		t.Fatalf("setting width %d: %v", width, err)
	}
	return s
}

func TestCatalogRoundTrip(t *testing.T) {
	for _, width := range []int32{1, 2, 4, 8} {
		sizes := sizesOf(t, width)
		for _, tc := range catalogMessages(t) {
			b := mustEncode(t, sizes, tc.msg)
			got := tc.new()
			r := NewReader(sizes, b)
			got.decode(r)
			if err := r.Finish(); err != nil {
				t.Fatalf("width %d %s: decoding: %v", width, tc.name, err)
			}
			if b2 := mustEncode(t, sizes, got); !bytes.Equal(b, b2) {
				t.Fatalf("width %d %s: re-encoding mismatch\nexpected %x\ngot      %x", width, tc.name, b, b2)
			}
			if hasRaw(tc.msg) {
				continue
			}
			if !reflect.DeepEqual(tc.msg, got) {
				t.Fatalf("width %d %s: expected %#v got %#v", width, tc.name, tc.msg, got)
			}
		}
	}
}

func TestCatalogTruncation(t *testing.T) {
	sizes := sizesOf(t, 4)
	for _, tc := range catalogMessages(t) {
		if hasRaw(tc.msg) {
			continue
		}
		b := mustEncode(t, sizes, tc.msg)
		for n := 0; n < len(b); n++ {
			r := NewReader(sizes, b[:n])
			tc.new().decode(r)
			err := r.Finish()
			if !errors.Is(err, ErrTruncated) {
				t.Fatalf("%s truncated to %d of %d bytes: expected Truncated got %v", tc.name, n, len(b), err)
			}
		}
	}
}

func TestCatalogLookup(t *testing.T) {
	c, ok := LookupCommand("ThreadReference.Frames")
	if !ok || c != (Command{CommandSetThreadReference, 6}) {
		t.Fatalf("expected ThreadReference.Frames to be 11/6, got %v %v", c, ok)
	}
	if c.String() != "ThreadReference.Frames" || c.ShortName() != "Frames" {
		t.Fatalf("unexpected names %q %q", c.String(), c.ShortName())
	}
	if _, ok := LookupCommand("threadreference.frames"); ok {
		t.Fatal("lookup should be case sensitive")
	}
	if s := (Command{CommandSetVirtualMachine, 99}).String(); s != "VirtualMachine.99" {
		t.Fatalf("unexpected name for unknown command %q", s)
	}
	if _, err := NewRequest(Command{CommandSetField, 1}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand got %v", err)
	}

	got := CommandsWithPrefix("StackFrame.")
	expected := []string{"StackFrame.GetValues", "StackFrame.PopFrames", "StackFrame.SetValues", "StackFrame.ThisObject"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v got %v", expected, got)
	}
	if n, m := len(CommandsWithPrefix("")), len(Commands()); n != m {
		t.Fatalf("expected %d names got %d", m, n)
	}
}

func TestCatalogCoverage(t *testing.T) {
	counts := map[CommandSet]int{}
	for _, c := range Commands() {
		counts[c.Set]++
	}
	expected := map[CommandSet]int{
		CommandSetVirtualMachine:       21,
		CommandSetReferenceType:        18,
		CommandSetClassType:            4,
		CommandSetArrayType:            1,
		CommandSetInterfaceType:        1,
		CommandSetMethod:               5,
		CommandSetObjectReference:      9,
		CommandSetStringReference:      1,
		CommandSetThreadReference:      14,
		CommandSetThreadGroupReference: 3,
		CommandSetArrayReference:       3,
		CommandSetClassLoaderReference: 1,
		CommandSetEventRequest:         3,
		CommandSetStackFrame:           4,
		CommandSetClassObjectReference: 1,
		CommandSetEvent:                1,
	}
	if !reflect.DeepEqual(counts, expected) {
		t.Fatalf("expected %v got %v", expected, counts)
	}
}
