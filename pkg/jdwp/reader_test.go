package jdwp

import (
	"bytes"
	"errors"
	"testing"
)

func TestTagExhaustive(t *testing.T) {
	sizes := sizesOf(t, 4)
	payload := bytes.Repeat([]byte{0xab}, 16)
	for b := 0; b < 256; b++ {
		tag := Tag(b)
		r := NewReader(sizes, append([]byte{byte(b)}, payload...))
		v := r.Value()
		size, ok := tag.PayloadSize(sizes)
		if !ok {
			var derr *DecodeError
			if !errors.As(r.Err(), &derr) || derr.Kind != UnknownTag || derr.Tag != tag || derr.Offset != 0 {
				t.Fatalf("tag %#x: expected UnknownTag got %v", b, r.Err())
			}
			continue
		}
		if r.Err() != nil {
			t.Fatalf("tag %v: %v", tag, r.Err())
		}
		if r.Offset() != 1+size {
			t.Fatalf("tag %v: expected to consume %d bytes got %d", tag, 1+size, r.Offset())
		}
		if v.Tag != tag {
			t.Fatalf("tag %v: decoded as %v", tag, v.Tag)
		}
		w := NewWriter(sizes)
		w.Value(v)
		if !bytes.Equal(w.Bytes(), r.data[:r.Offset()]) {
			t.Fatalf("tag %v: expected %x got %x", tag, r.data[:r.Offset()], w.Bytes())
		}
	}
}

func TestTaggedObjectID(t *testing.T) {
	sizes := sizesOf(t, 2)
	r := NewReader(sizes, []byte{'s', 0, 0})
	o := r.TaggedObjectID()
	if r.Err() != nil || o.Tag != TagString || !o.IsNull() {
		t.Fatalf("expected null string reference got %v (%v)", o, r.Err())
	}
	r = NewReader(sizes, []byte{'I', 0, 1})
	r.TaggedObjectID()
	if !errors.Is(r.Err(), ErrUnknownTag) {
		t.Fatalf("expected UnknownTag for a primitive tag got %v", r.Err())
	}
	w := NewWriter(sizes)
	w.TaggedObjectID(TaggedObjectID{TagInt, 1})
	if !errors.Is(w.Err(), ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", w.Err())
	}
}

func TestIdentifierWidths(t *testing.T) {
	for _, width := range []int32{1, 2, 4, 8} {
		sizes := sizesOf(t, width)
		w := NewWriter(sizes)
		w.ObjectID(ObjectID(0x7f))
		w.MethodID(MethodID(0x7f))
		w.Location(Location{Type: Class, Class: 1, Method: 2, Index: 3})
		if expected := 2*int(width) + 1 + 2*int(width) + 8; w.Len() != expected {
			t.Fatalf("width %d: expected %d bytes got %d", width, expected, w.Len())
		}
		r := NewReader(sizes, w.Bytes())
		if r.ObjectID() != 0x7f || r.MethodID() != 0x7f {
			t.Fatalf("width %d: identifiers did not round trip", width)
		}
		if l := r.Location(); l != (Location{Class, 1, 2, 3}) {
			t.Fatalf("width %d: unexpected location %v", width, l)
		}
		if err := r.Finish(); err != nil {
			t.Fatalf("width %d: %v", width, err)
		}

		if width == 8 {
			continue
		}
		w = NewWriter(sizes)
		w.FieldID(FieldID(1) << (8 * uint(width)))
		if !errors.Is(w.Err(), ErrInvalidArgument) {
			t.Fatalf("width %d: expected overflow error got %v", width, w.Err())
		}
	}
}

func TestReaderFaultIsSticky(t *testing.T) {
	r := NewReader(nil, []byte{0, 0, 0, 1, 0xff, 0xff})
	if r.Int32() != 1 {
		t.Fatal("bad first read")
	}
	if v := r.Uint32(); v != 0 {
		t.Fatalf("expected zero value after a fault got %d", v)
	}
	first := r.Err()
	var derr *DecodeError
	if !errors.As(first, &derr) || derr.Kind != Truncated || derr.Offset != 4 || derr.Requested != 4 {
		t.Fatalf("unexpected error %v", first)
	}
	if r.Uint8() != 0 || r.Err() != first {
		t.Fatal("fault did not stick")
	}
	if r.Offset() != 4 {
		t.Fatalf("faulted reader advanced to %d", r.Offset())
	}
}

func TestReadString(t *testing.T) {
	for _, tc := range []struct {
		name string
		data []byte
		str  string
		err  error
	}{
		{"empty", []byte{0, 0, 0, 0}, "", nil},
		{"ascii", []byte{0, 0, 0, 2, 'h', 'i'}, "hi", nil},
		{"utf8", []byte{0, 0, 0, 2, 0xc3, 0xa9}, "é", nil},
		{"invalid", []byte{0, 0, 0, 2, 0xc3, 0x28}, "", ErrInvalidEncoding},
		{"short", []byte{0, 0, 0, 5, 'a'}, "", ErrTruncated},
		{"negative", []byte{0xff, 0xff, 0xff, 0xff}, "", ErrCountMismatch},
	} {
		r := NewReader(nil, tc.data)
		s := r.ReadString()
		if tc.err == nil {
			if err := r.Finish(); err != nil || s != tc.str {
				t.Fatalf("%s: expected %q got %q (%v)", tc.name, tc.str, s, err)
			}
			continue
		}
		if !errors.Is(r.Err(), tc.err) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.err, r.Err())
		}
	}
}

func TestWriteStringInvalidUTF8(t *testing.T) {
	w := NewWriter(nil)
	w.String("é")
	if w.Err() != nil {
		t.Fatalf("valid string rejected: %v", w.Err())
	}
	w.String("\xc3\x28")
	if !errors.Is(w.Err(), ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", w.Err())
	}
	if _, err := NewCodec(nil).EncodeCommand(1, &VirtualMachineClassesBySignature{Signature: "L\xffoo;"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument from the codec got %v", err)
	}
}

func TestHostileCount(t *testing.T) {
	r := NewReader(nil, []byte{0x7f, 0xff, 0xff, 0xff, 1, 2, 3})
	threads := readSlice(r, r.ThreadID)
	if threads != nil || !errors.Is(r.Err(), ErrTruncated) {
		t.Fatalf("expected Truncated got %v %v", threads, r.Err())
	}
}

func TestArrayRegion(t *testing.T) {
	sizes := sizesOf(t, 4)
	for _, tc := range []struct {
		name   string
		region ArrayRegion
		size   int
	}{
		{"int", ArrayRegion{TagInt, []Value{IntValue(1), IntValue(-1)}}, 1 + 4 + 2*4},
		{"boolean", ArrayRegion{TagBoolean, []Value{BooleanValue(true)}}, 1 + 4 + 1},
		{"object", ArrayRegion{TagObject, []Value{ObjectValue(TagString, 5), ObjectValue(TagObject, 0)}}, 1 + 4 + 2*(1+4)},
	} {
		w := NewWriter(sizes)
		w.arrayRegion(tc.region)
		if w.Len() != tc.size {
			t.Fatalf("%s: expected %d bytes got %d", tc.name, tc.size, w.Len())
		}
		r := NewReader(sizes, w.Bytes())
		got := r.arrayRegion(requestedCount{len(tc.region.Values), true})
		if err := r.Finish(); err != nil {
			t.Fatalf("%s: %v", tc.name, err)
		}
		if got.Tag != tc.region.Tag || len(got.Values) != len(tc.region.Values) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.region, got)
		}
		for i := range got.Values {
			if got.Values[i] != tc.region.Values[i] {
				t.Fatalf("%s: value %d: expected %v got %v", tc.name, i, tc.region.Values[i], got.Values[i])
			}
		}
	}

	r := NewReader(sizes, []byte{'V', 0x7f, 0xff, 0xff, 0xff})
	r.arrayRegion(requestedCount{})
	if !errors.Is(r.Err(), ErrUnknownTag) {
		t.Fatalf("expected void region to be rejected got %v", r.Err())
	}
}

func TestModifierUnknownKind(t *testing.T) {
	r := NewReader(nil, []byte{byte(Breakpoint), byte(SuspendAll), 0, 0, 0, 1, 13})
	(&EventRequestSet{}).decode(r)
	if !errors.Is(r.Err(), ErrUnknownTag) {
		t.Fatalf("expected unknown modifier kind error got %v", r.Err())
	}
}

func TestTagForSignature(t *testing.T) {
	for _, tc := range []struct {
		sig string
		tag Tag
		ok  bool
	}{
		{"I", TagInt, true},
		{"Z", TagBoolean, true},
		{"[Ljava/lang/Object;", TagArray, true},
		{"Ljava/lang/String;", TagString, true},
		{"Ljava/lang/Thread;", TagThread, true},
		{"Lcom/example/Main;", TagObject, true},
		{"", 0, false},
		{"Q", 0, false},
	} {
		tag, ok := TagForSignature(tc.sig)
		if ok != tc.ok || (ok && tag != tc.tag) {
			t.Fatalf("%q: expected %v %v got %v %v", tc.sig, tc.tag, tc.ok, tag, ok)
		}
	}
}

func TestArgumentSlots(t *testing.T) {
	vars := []Variable{
		{CodeIndex: 0, Name: "b", Length: 5, Slot: 2},
		{CodeIndex: 3, Name: "local", Length: 2, Slot: 3},
		{CodeIndex: 0, Name: "this", Length: 5, Slot: 0},
		{CodeIndex: 0, Name: "dead", Length: 0, Slot: 1},
	}
	got := ArgumentSlots(vars)
	if len(got) != 2 || got[0].Name != "this" || got[1].Name != "b" {
		t.Fatalf("unexpected arguments %v", got)
	}
	if got := ArgumentSlots(nil); len(got) != 0 {
		t.Fatalf("expected no arguments got %v", got)
	}
}
