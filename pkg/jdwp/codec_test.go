package jdwp

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func replyPacket(t *testing.T, sizes *IDSizes, id uint32, m Message) []byte {
	t.Helper()
	return ReplyPacket{ID: id, Data: mustEncode(t, sizes, m)}.Encode()
}

func TestIDSizesNegotiation(t *testing.T) {
	c := NewCodec(nil)
	if c.Sizes().Negotiated() {
		t.Fatal("fresh codec should not be negotiated")
	}
	body := []byte{
		0, 0, 0, 4, // fieldIDSize
		0, 0, 0, 4, // methodIDSize
		0, 0, 0, 8, // objectIDSize
		0, 0, 0, 8, // referenceTypeIDSize
		0, 0, 0, 8, // frameIDSize
	}
	rep, err := c.DecodeReply(&VirtualMachineIDSizes{}, ReplyPacket{ID: 1, Data: body}.Encode())
	if err != nil {
		t.Fatalf("DecodeReply: %v", err)
	}
	expected := IDSizesReply{FieldIDSize: 4, MethodIDSize: 4, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 8}
	if *rep.(*IDSizesReply) != expected {
		t.Fatalf("expected %#v got %#v", expected, rep)
	}

	r := NewReader(c.Sizes(), make([]byte, 12))
	r.ObjectID()
	if r.Offset() != 8 {
		t.Fatalf("object identifier consumed %d bytes, expected 8", r.Offset())
	}
	r.MethodID()
	if r.Offset() != 12 {
		t.Fatalf("method identifier consumed %d bytes, expected 4", r.Offset()-8)
	}

	// The same widths again are accepted, different ones are not.
	if _, err := c.DecodeReply(&VirtualMachineIDSizes{}, ReplyPacket{ID: 2, Data: body}.Encode()); err != nil {
		t.Fatalf("repeated identical IDSizes reply: %v", err)
	}
	other := replyPacket(t, c.Sizes(), 3, &IDSizesReply{8, 8, 8, 8, 8})
	if _, err := c.DecodeReply(&VirtualMachineIDSizes{}, other); !errors.Is(err, ErrIDSizesNegotiated) {
		t.Fatalf("expected ErrIDSizesNegotiated got %v", err)
	}
	if c.Sizes().Sizes() != expected {
		t.Fatalf("widths changed after a rejected negotiation: %v", c.Sizes())
	}
}

func TestIDSizesSet(t *testing.T) {
	s := NewIDSizes()
	for k := IDKind(0); k < numIDKinds; k++ {
		if s.Width(k) != DefaultIDSize {
			t.Fatalf("%v: expected default width got %d", k, s.Width(k))
		}
	}
	if err := s.Set(IDSizesReply{4, 4, 3, 8, 8}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for width 3 got %v", err)
	}
	if s.Negotiated() {
		t.Fatal("invalid widths must not negotiate the table")
	}
	if err := s.Set(IDSizesReply{1, 2, 4, 8, 2}); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(IDSizesReply{8, 8, 8, 8, 8}); !errors.Is(err, ErrIDSizesNegotiated) {
		t.Fatalf("expected ErrIDSizesNegotiated got %v", err)
	}
	for _, tc := range []struct {
		kind  IDKind
		width int
	}{
		{FieldKind, 1},
		{MethodKind, 2},
		{ObjectKind, 4},
		{ReferenceTypeKind, 8},
		{FrameKind, 2},
	} {
		if got := s.Width(tc.kind); got != tc.width {
			t.Fatalf("%v: expected width %d got %d", tc.kind, tc.width, got)
		}
	}
	var nilSizes *IDSizes
	if nilSizes.Width(ObjectKind) != DefaultIDSize {
		t.Fatal("nil table should report the default width")
	}
	if err := nilSizes.Set(IDSizesReply{FieldIDSize: 4, MethodIDSize: 4, ObjectIDSize: 4, ReferenceTypeIDSize: 4, FrameIDSize: 4}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for a nil table got %v", err)
	}
	if nilSizes.Negotiated() {
		t.Fatal("nil table cannot be negotiated")
	}
}

func TestIDSizesConcurrentSet(t *testing.T) {
	s := NewIDSizes()
	widths := []int32{1, 2, 4, 8}
	errs := make(chan error, len(widths))
	var wg sync.WaitGroup
	for _, n := range widths {
		n := n
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Set(IDSizesReply{FieldIDSize: n, MethodIDSize: n, ObjectIDSize: n, ReferenceTypeIDSize: n, FrameIDSize: n})
		}()
	}
	wg.Wait()
	close(errs)
	won := 0
	for err := range errs {
		switch {
		case err == nil:
			won++
		case !errors.Is(err, ErrIDSizesNegotiated):
			t.Fatalf("unexpected error %v", err)
		}
	}
	if won != 1 || !s.Negotiated() {
		t.Fatalf("expected exactly one Set to succeed, %d did", won)
	}
	w := s.Width(FieldKind)
	for k := IDKind(0); k < numIDKinds; k++ {
		if s.Width(k) != w {
			t.Fatalf("widths from different Set calls mixed: %v", s)
		}
	}
}

// countingReply records how many times it was asked to decode.
type countingReply struct {
	decodes int
}

func (*countingReply) encode(*Writer)   {}
func (c *countingReply) decode(*Reader) { c.decodes++ }

func TestProtocolErrorSkipsDecoder(t *testing.T) {
	c := NewCodec(nil)
	packet := ReplyPacket{ID: 7, ErrorCode: ErrorCode(0x0023), Data: []byte{1, 2, 3}}.Encode()
	rep := &countingReply{}
	err := c.DecodeReplyInto(&VirtualMachineAllClasses{}, packet, rep)
	var perr *ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ProtocolError got %v", err)
	}
	if perr.Code != CodeInvalidSlot || perr.ID != 7 || perr.Command != cmdVirtualMachineAllClasses {
		t.Fatalf("unexpected protocol error %#v", perr)
	}
	if rep.decodes != 0 {
		t.Fatalf("decoder invoked %d times", rep.decodes)
	}
	if code, ok := IsProtocolError(err); !ok || code != CodeInvalidSlot {
		t.Fatalf("IsProtocolError: %v %v", code, ok)
	}
	if s := CodeInvalidSlot.String(); s != "INVALID_SLOT" {
		t.Fatalf("unexpected error code name %q", s)
	}
}

func TestGetValuesCountMismatch(t *testing.T) {
	c := NewCodec(nil)
	req := &ObjectReferenceGetValues{Object: 1, Fields: []FieldID{1, 2, 3}}
	packet := replyPacket(t, c.Sizes(), 1, &ObjectReferenceGetValuesReply{Values: []Value{IntValue(1), IntValue(2)}})

	_, err := c.DecodeReply(req, packet)
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Kind != CountMismatch {
		t.Fatalf("expected CountMismatch got %v", err)
	}
	if derr.Command != cmdObjectReferenceGetValues {
		t.Fatalf("expected error for %v got %v", cmdObjectReferenceGetValues, derr.Command)
	}

	// Without the request the count cannot be checked.
	rep, err := c.DecodeReplyFor(cmdObjectReferenceGetValues, packet)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(rep.(*ObjectReferenceGetValuesReply).Values); n != 2 {
		t.Fatalf("expected 2 values got %d", n)
	}

	areq := &ArrayReferenceGetValues{Array: 1, FirstIndex: 0, Length: 4}
	apacket := replyPacket(t, c.Sizes(), 2, &ArrayReferenceGetValuesReply{Values: ArrayRegion{Tag: TagInt, Values: []Value{IntValue(1)}}})
	if _, err := c.DecodeReply(areq, apacket); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for array region got %v", err)
	}

	// A request for zero components still bounds the reply.
	areq = &ArrayReferenceGetValues{Array: 1, FirstIndex: 0, Length: 0}
	apacket = replyPacket(t, c.Sizes(), 3, &ArrayReferenceGetValuesReply{Values: ArrayRegion{Tag: TagInt, Values: []Value{IntValue(1), IntValue(2)}}})
	if _, err := c.DecodeReply(areq, apacket); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for a zero length request got %v", err)
	}
	empty := replyPacket(t, c.Sizes(), 4, &ArrayReferenceGetValuesReply{Values: ArrayRegion{Tag: TagInt}})
	rep, err = c.DecodeReply(areq, empty)
	if err != nil {
		t.Fatalf("empty region: %v", err)
	}
	if n := len(rep.(*ArrayReferenceGetValuesReply).Values.Values); n != 0 {
		t.Fatalf("expected no components got %d", n)
	}
	if _, err := c.DecodeReply(&ArrayReferenceGetValues{Array: 1, Length: -1}, empty); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for a negative length request got %v", err)
	}

	sreq := &StackFrameGetValues{FrameRef: FrameRef{Thread: 1, Frame: 2}, Slots: []SlotRequest{{Slot: 0, Tag: TagInt}}}
	spacket := replyPacket(t, c.Sizes(), 5, &StackFrameGetValuesReply{Values: []Value{IntValue(1), IntValue(2)}})
	if _, err := c.DecodeReply(sreq, spacket); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for stack frame values got %v", err)
	}
	rreq := &ReferenceTypeGetValues{Type: 1, Fields: []FieldID{1}}
	rpacket := replyPacket(t, c.Sizes(), 6, &ReferenceTypeGetValuesReply{})
	if _, err := c.DecodeReply(rreq, rpacket); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for static values got %v", err)
	}
}

func TestEncodeInvalidArgument(t *testing.T) {
	c := NewCodec(nil)
	for _, req := range []Request{
		&ReferenceTypeGetValues{Type: 1},
		&ObjectReferenceGetValues{Object: 1},
		&EventRequestSet{Kind: Breakpoint, Modifiers: []EventModifier{nil}},
		&ThreadReferenceForceEarlyReturn{Thread: 1, Value: Value{Tag: 'X'}},
	} {
		if _, err := c.EncodeCommand(1, req); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("%v: expected ErrInvalidArgument got %v", req.Command(), err)
		}
	}

	small := NewCodec(sizesOf(t, 1))
	if _, err := small.EncodeCommand(1, &ThreadReferenceName{ThreadRef{Thread: 0x100}}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for an identifier wider than 1 byte got %v", err)
	}
}

func TestEncodeCommand(t *testing.T) {
	c := NewCodec(sizesOf(t, 4))
	b, err := c.EncodeCommand(0x01020304, &ThreadReferenceFrames{Thread: 0x11, StartFrame: 0, Length: -1})
	if err != nil {
		t.Fatal(err)
	}
	expected := []byte{
		0, 0, 0, 23,
		1, 2, 3, 4,
		0,
		11, 6,
		0, 0, 0, 0x11,
		0, 0, 0, 0,
		0xff, 0xff, 0xff, 0xff,
	}
	if !bytes.Equal(b, expected) {
		t.Fatalf("expected %x got %x", expected, b)
	}

	b, err = c.EncodeCommand(1, &VirtualMachineSuspend{})
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != HeaderSize {
		t.Fatalf("expected an empty body got %x", b[HeaderSize:])
	}
}

func TestDecodeRequest(t *testing.T) {
	c := NewCodec(sizesOf(t, 8))
	in := &ClassTypeSetValues{Class: 3, Values: []FieldValue{{Field: 1, Value: IntValue(7)}, {Field: 2, Value: BooleanValue(true)}}}
	b, err := c.EncodeCommand(9, in)
	if err != nil {
		t.Fatal(err)
	}
	p, req, err := c.DecodeRequest(b)
	if err != nil {
		t.Fatal(err)
	}
	if p.ID != 9 || p.Command != cmdClassTypeSetValues {
		t.Fatalf("unexpected packet %v", p)
	}
	out := req.(*ClassTypeSetValues)
	if out.Class != 3 || out.Values != nil {
		t.Fatalf("unexpected request %#v", out)
	}
	if len(out.Raw) != 4+2*8+4+1 {
		t.Fatalf("unexpected raw field values %x", out.Raw)
	}
	b2, err := c.EncodeCommand(9, out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, b2) {
		t.Fatalf("raw values not preserved\nexpected %x\ngot      %x", b, b2)
	}

	if _, _, err := c.DecodeRequest(ReplyPacket{ID: 1}.Encode()); err == nil {
		t.Fatal("a reply packet decoded as a request")
	}
}

func TestDecodeEvents(t *testing.T) {
	c := NewCodec(sizesOf(t, 4))
	loc := Location{Type: Class, Class: 5, Method: 6, Index: 7}
	in := &EventComposite{
		SuspendPolicy: SuspendAll,
		Events: []Event{
			BreakpointEvent{Request: 2, Thread: 1, Location: loc},
			ClassPrepareEvent{Request: 3, Thread: 1, TypeRef: TypeRef{Kind: Class, TypeID: 9}, Signature: "LMain;", Status: StatusVerified | StatusPrepared},
			VMDeathEvent{},
		},
	}
	b, err := c.EncodeCommand(100, in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := c.DecodeEvents(b)
	if err != nil {
		t.Fatal(err)
	}
	if out.SuspendPolicy != SuspendAll || len(out.Events) != 3 {
		t.Fatalf("unexpected events %#v", out)
	}
	bp, ok := out.Events[0].(BreakpointEvent)
	if !ok || bp.Location != loc || bp.RequestID() != 2 {
		t.Fatalf("unexpected first event %#v", out.Events[0])
	}
	if th, ok := EventThread(bp); !ok || th != 1 {
		t.Fatalf("unexpected event thread %v %v", th, ok)
	}
	if _, ok := EventThread(out.Events[2]); ok {
		t.Fatal("VMDeath has no thread")
	}
	if l, ok := EventLocation(bp); !ok || l != loc {
		t.Fatalf("unexpected event location %v %v", l, ok)
	}
	if _, ok := EventLocation(out.Events[1]); ok {
		t.Fatal("ClassPrepare has no location")
	}

	bad := CommandPacket{ID: 1, Command: cmdEventComposite, Data: []byte{2, 0, 0, 0, 1, 77, 0, 0, 0, 0}}.Encode()
	if _, err := c.DecodeEvents(bad); !errors.Is(err, ErrUnknownTag) {
		t.Fatalf("expected unknown event kind error got %v", err)
	}
	if _, err := c.DecodeEvents(CommandPacket{ID: 1, Command: cmdVirtualMachineVersion}.Encode()); err == nil {
		t.Fatal("VirtualMachine.Version decoded as events")
	}
}

func TestDecodeAllThreadsCountFidelity(t *testing.T) {
	c := NewCodec(sizesOf(t, 4))
	w := NewWriter(c.Sizes())
	w.Int32(5)
	for i := 1; i <= 3; i++ {
		w.ObjectID(ThreadID(i))
	}
	_, err := c.DecodeReply(&VirtualMachineAllThreads{}, ReplyPacket{ID: 1, Data: w.Bytes()}.Encode())
	var derr *DecodeError
	if !errors.As(err, &derr) || derr.Kind != Truncated {
		t.Fatalf("expected Truncated got %v", err)
	}
	if derr.Offset != 4+3*4 {
		t.Fatalf("expected failure on the 4th element at offset 16 got %d", derr.Offset)
	}

	w = NewWriter(c.Sizes())
	w.Int32(1)
	w.ObjectID(ThreadID(1))
	w.Uint8(0)
	if _, err := c.DecodeReply(&VirtualMachineAllThreads{}, ReplyPacket{ID: 1, Data: w.Bytes()}.Encode()); !errors.Is(err, ErrCountMismatch) {
		t.Fatalf("expected CountMismatch for trailing bytes got %v", err)
	}
}
