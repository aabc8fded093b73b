package dump

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-delve/jdwp/pkg/jdwp"
)

// capture builds a byte stream the way it would be observed on the wire,
// encoding with 4 byte identifiers after the IDSizes exchange.
type capture struct {
	t     *testing.T
	codec *jdwp.Codec
	buf   bytes.Buffer
}

func newCapture(t *testing.T) *capture {
	c := &capture{t: t, codec: jdwp.NewCodec(nil)}
	c.buf.WriteString(jdwp.Handshake)
	c.buf.WriteString(jdwp.Handshake)
	return c
}

func (c *capture) command(id uint32, req jdwp.Request) {
	c.t.Helper()
	b, err := c.codec.EncodeCommand(id, req)
	if err != nil {
		c.t.Fatal(err)
	}
	c.buf.Write(b)
}

func (c *capture) reply(id uint32, rep jdwp.Reply) {
	c.t.Helper()
	b, err := c.codec.EncodeReply(id, rep)
	if err != nil {
		c.t.Fatal(err)
	}
	c.buf.Write(b)
}

func (c *capture) setSizes(r jdwp.IDSizesReply) {
	c.t.Helper()
	if err := c.codec.Sizes().Set(r); err != nil {
		c.t.Fatal(err)
	}
}

var sizes4 = jdwp.IDSizesReply{FieldIDSize: 4, MethodIDSize: 4, ObjectIDSize: 4, ReferenceTypeIDSize: 4, FrameIDSize: 4}

func buildCapture(t *testing.T) []byte {
	c := newCapture(t)
	c.command(1, &jdwp.VirtualMachineIDSizes{})
	c.reply(1, &sizes4)
	c.setSizes(sizes4)

	c.command(2, &jdwp.VirtualMachineAllClasses{})
	c.reply(2, &jdwp.VirtualMachineAllClassesReply{Classes: []jdwp.ClassInfo{
		{Kind: jdwp.Class, TypeID: 0x10, Signature: "Lcom/example/Main;", Status: jdwp.StatusInitialized},
	}})
	c.command(3, &jdwp.ReferenceTypeMethods{Type: 0x10})
	c.reply(3, &jdwp.ReferenceTypeMethodsReply{Methods: []jdwp.MethodInfo{{ID: 0x20, Name: "main", Signature: "([Ljava/lang/String;)V"}}})

	loc := jdwp.Location{Type: jdwp.Class, Class: 0x10, Method: 0x20, Index: 4}
	c.command(9, &jdwp.EventComposite{SuspendPolicy: jdwp.SuspendAll, Events: []jdwp.Event{
		jdwp.BreakpointEvent{Request: 5, Thread: 0x30, Location: loc},
		jdwp.ClassPrepareEvent{Request: 6, Thread: 0x30, TypeRef: jdwp.TypeRef{Kind: jdwp.Class, TypeID: 0x11}, Signature: "Lcom/example/Other;", Status: jdwp.StatusPrepared},
	}})

	c.command(4, &jdwp.ThreadReferenceFrames{Thread: 0x30, StartFrame: 0, Length: 1})
	c.buf.Write(jdwp.ReplyPacket{ID: 4, ErrorCode: jdwp.CodeInvalidThread}.Encode())

	c.reply(77, &jdwp.EmptyReply{})
	return c.buf.Bytes()
}

func collect(t *testing.T, d *Dumper, b []byte) []*Entry {
	t.Helper()
	var entries []*Entry
	if err := d.Run(bytes.NewReader(b), func(e *Entry) error {
		entries = append(entries, e)
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	return entries
}

func TestRun(t *testing.T) {
	d, err := New(Options{SignatureCacheSize: 8})
	if err != nil {
		t.Fatal(err)
	}
	entries := collect(t, d, buildCapture(t))
	if len(entries) != 10 {
		t.Fatalf("expected 10 entries got %d", len(entries))
	}
	if entries[0].Offset != int64(2*len(jdwp.Handshake)) {
		t.Fatalf("handshake not skipped, first offset %#x", entries[0].Offset)
	}

	if !d.Codec().Sizes().Negotiated() || d.Codec().Sizes().Sizes() != sizes4 {
		t.Fatalf("identifier sizes not applied: %v", d.Codec().Sizes())
	}
	for i, e := range entries[:7] {
		if e.Err != nil {
			t.Fatalf("entry %d: %v", i, e.Err)
		}
	}
	if entries[5].Kind != KindReply || entries[5].Command != (jdwp.Command{Set: jdwp.CommandSetReferenceType, ID: 5}) {
		t.Fatalf("unexpected correlation %v %v", entries[5].Kind, entries[5].Command)
	}

	ev := entries[6]
	if ev.Kind != KindEvents || ev.Events == nil || len(ev.Events.Events) != 2 {
		t.Fatalf("unexpected events entry %#v", ev)
	}
	if sig, ok := d.Signature(0x11); !ok || sig != "Lcom/example/Other;" {
		t.Fatalf("class prepare signature not learned: %q %v", sig, ok)
	}
	locs := Locations(ev)
	if len(locs) != 1 {
		t.Fatalf("expected one location got %v", locs)
	}
	if s := d.Describe(locs[0]); s != "Lcom/example/Main;.main@4" {
		t.Fatalf("unexpected description %q", s)
	}

	var perr *jdwp.ProtocolError
	if e := entries[8]; !errors.As(e.Err, &perr) || perr.Code != jdwp.CodeInvalidThread {
		t.Fatalf("expected INVALID_THREAD got %v", e.Err)
	}
	if e := entries[9]; !errors.Is(e.Err, ErrUnmatchedReply) {
		t.Fatalf("expected unmatched reply got %v", e.Err)
	}
}

func TestDescribeUnknown(t *testing.T) {
	d, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	l := jdwp.Location{Type: jdwp.Class, Class: 1, Method: 2, Index: 3}
	if s := d.Describe(l); s != l.String() {
		t.Fatalf("expected %q got %q", l.String(), s)
	}
}

func TestPresetIDSizes(t *testing.T) {
	c := &capture{t: t, codec: jdwp.NewCodec(nil)}
	c.setSizes(sizes4)
	c.command(1, &jdwp.ThreadReferenceFrames{Thread: 0x30, Length: -1})
	c.reply(1, &jdwp.ThreadReferenceFramesReply{Frames: []jdwp.FrameInfo{{Frame: 1, Location: jdwp.Location{Type: jdwp.Class, Class: 2, Method: 3}}}})

	d, err := New(Options{IDSizes: &sizes4})
	if err != nil {
		t.Fatal(err)
	}
	entries := collect(t, d, c.buf.Bytes())
	if len(entries) != 2 || entries[1].Err != nil {
		t.Fatalf("unexpected entries %#v", entries)
	}
	if locs := Locations(entries[1]); len(locs) != 1 || locs[0].Class != 2 {
		t.Fatalf("unexpected frame locations %v", locs)
	}

	if _, err := New(Options{IDSizes: &jdwp.IDSizesReply{FieldIDSize: 3}}); !errors.Is(err, jdwp.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", err)
	}
}

func TestRunTruncatedCapture(t *testing.T) {
	b := buildCapture(t)
	d, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	err = d.Run(bytes.NewReader(b[:len(b)-3]), func(*Entry) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "reading packet") {
		t.Fatalf("expected a split error got %v", err)
	}
}

func TestPrint(t *testing.T) {
	d, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	p := &Printer{Out: &out, MaxHexBytes: 2, Highlight: func(e *Entry, s string) string { return "[" + s + "]" }}
	for _, e := range collect(t, d, buildCapture(t)) {
		if err := p.Print(d, e); err != nil {
			t.Fatal(err)
		}
	}
	s := out.String()
	for _, expected := range []string{
		"[@0x1c #1 command VirtualMachine.IDSizes]\n",
		"    classes:\n",
		"    at Lcom/example/Main;.main@4\n",
		"reply ThreadReference.Frames INVALID_THREAD]\n",
		"    error: ",
	} {
		if !strings.Contains(s, expected) {
			t.Fatalf("output does not contain %q:\n%s", expected, s)
		}
	}
}

func TestSlots(t *testing.T) {
	c := &capture{t: t, codec: jdwp.NewCodec(nil)}
	c.setSizes(sizes4)
	loc := jdwp.Location{Type: jdwp.Class, Class: 0x10, Method: 0x20, Index: 4}
	c.command(1, &jdwp.ThreadReferenceFrames{Thread: 0x30, Length: 1})
	c.reply(1, &jdwp.ThreadReferenceFramesReply{Frames: []jdwp.FrameInfo{{Frame: 0x40, Location: loc}}})
	c.command(2, &jdwp.MethodVariableTable{MethodRef: jdwp.MethodRef{Type: 0x10, Method: 0x20}})
	c.reply(2, &jdwp.MethodVariableTableReply{ArgCount: 1, Slots: []jdwp.Variable{
		{CodeIndex: 2, Name: "count", Signature: "I", Length: 8, Slot: 1},
		{CodeIndex: 0, Name: "args", Signature: "[Ljava/lang/String;", Length: 10, Slot: 0},
		{CodeIndex: 6, Name: "later", Signature: "J", Length: 4, Slot: 2},
	}})
	c.command(3, &jdwp.StackFrameGetValues{
		FrameRef: jdwp.FrameRef{Thread: 0x30, Frame: 0x40},
		Slots:    []jdwp.SlotRequest{{Slot: 0, Tag: jdwp.TagArray}, {Slot: 1, Tag: jdwp.TagLong}, {Slot: 2, Tag: jdwp.TagInt}},
	})

	d, err := New(Options{IDSizes: &sizes4})
	if err != nil {
		t.Fatal(err)
	}
	entries := collect(t, d, c.buf.Bytes())
	if len(entries) != 5 {
		t.Fatalf("expected 5 entries got %d", len(entries))
	}
	for i, e := range entries {
		if e.Err != nil {
			t.Fatalf("entry %d: %v", i, e.Err)
		}
	}
	if args := Arguments(entries[3]); len(args) != 1 || args[0] != "args" {
		t.Fatalf("unexpected arguments %v", args)
	}

	got := d.Slots(entries[4])
	expected := []string{
		"0 args [Ljava/lang/String;",
		"1 count I (requested as Long)",
		"2 Int", // not live at index 4
	}
	if strings.Join(got, "|") != strings.Join(expected, "|") {
		t.Fatalf("expected %q got %q", expected, got)
	}
	if s := d.Slots(entries[0]); s != nil {
		t.Fatalf("expected no slots for %v got %v", entries[0].Command, s)
	}

	var out bytes.Buffer
	p := &Printer{Out: &out}
	for _, e := range entries {
		if err := p.Print(d, e); err != nil {
			t.Fatal(err)
		}
	}
	for _, line := range []string{"    arguments: args\n", "    slot 1 count I (requested as Long)\n"} {
		if !strings.Contains(out.String(), line) {
			t.Fatalf("output does not contain %q:\n%s", line, out.String())
		}
	}
}
