package terminal

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/go-delve/jdwp/pkg/config"
	"github.com/go-delve/jdwp/pkg/jdwp"
)

func newTestTerm(conf *config.Config) (*Term, *bytes.Buffer) {
	if conf == nil {
		conf = &config.Config{}
	}
	out := new(bytes.Buffer)
	return newTerm(conf, jdwp.NewCodec(nil), out, false), out
}

func TestCommandDefault(t *testing.T) {
	term, _ := newTestTerm(nil)
	err := term.Call("madeupcommand")
	if err == nil || err.Error() != "command not available" {
		t.Fatalf("expected command not available got %v", err)
	}
	if err := term.Call("   "); err != nil {
		t.Fatalf("empty line: %v", err)
	}
	if _, ok := term.Call("exit").(ExitRequestError); !ok {
		t.Fatal("exit did not request exit")
	}
}

func TestEncode(t *testing.T) {
	term, out := newTestTerm(nil)
	if err := term.Call("sizes 4"); err != nil {
		t.Fatal(err)
	}
	if err := term.Call("ThreadReference.Frames thread=0x1c startframe=0 length=-1"); err != nil {
		t.Fatal(err)
	}
	expected := "#1 ThreadReference.Frames\n" +
		"0000001700000001000b060000001c00000000ffffffff\n"
	if out.String() != expected {
		t.Fatalf("expected %q got %q", expected, out.String())
	}
	if term.nextID != 2 {
		t.Fatalf("transaction id not advanced: %d", term.nextID)
	}

	for _, line := range []string{
		"ThreadReference.Frames thread",
		"ThreadReference.Frames nosuchkey=1",
		"ReferenceType.GetValues type=1",
	} {
		if err := term.Call(line); err == nil {
			t.Fatalf("%q: expected an error", line)
		}
	}
}

func TestDecode(t *testing.T) {
	term, out := newTestTerm(nil)
	if err := term.Call("decode 000b"); err == nil {
		t.Fatal("decode without a request should fail")
	}
	reply := jdwp.ReplyPacket{ID: 1, Data: []byte{0, 0, 0, 4, 0, 0, 0, 4, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0, 8}}.Encode()
	if err := term.Call(fmt.Sprintf("decode VirtualMachine.IDSizes %x", reply)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "objectidsize: 8") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if s := term.codec.Sizes().Sizes(); s != (jdwp.IDSizesReply{FieldIDSize: 4, MethodIDSize: 4, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 8}) {
		t.Fatalf("sizes not applied: %v", s)
	}

	out.Reset()
	if err := term.Call("VirtualMachine.AllThreads"); err != nil {
		t.Fatal(err)
	}
	threads := jdwp.ReplyPacket{ID: 1, Data: []byte{0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 7}}.Encode()
	out.Reset()
	if err := term.Call(fmt.Sprintf("decode %x", threads)); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "- 7") {
		t.Fatalf("unexpected output %q", out.String())
	}

	failed := jdwp.ReplyPacket{ID: 1, ErrorCode: jdwp.CodeInvalidThread}.Encode()
	var perr *jdwp.ProtocolError
	if err := term.Call(fmt.Sprintf("decode %x", failed)); !errors.As(err, &perr) {
		t.Fatalf("expected a protocol error got %v", err)
	}
}

func TestSizesAndID(t *testing.T) {
	term, out := newTestTerm(nil)
	if err := term.Call("sizes"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "object=8") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if err := term.Call("sizes 4 4 8 8 8"); err != nil {
		t.Fatal(err)
	}
	if err := term.Call("sizes 8"); !errors.Is(err, jdwp.ErrIDSizesNegotiated) {
		t.Fatalf("expected ErrIDSizesNegotiated got %v", err)
	}
	if err := term.Call("sizes 1 2"); err == nil {
		t.Fatal("expected an error")
	}
	if err := term.Call("id 0x10"); err != nil || term.nextID != 16 {
		t.Fatalf("id not set: %d %v", term.nextID, err)
	}
}

func TestAliases(t *testing.T) {
	term, out := newTestTerm(&config.Config{Aliases: map[string][]string{
		"VirtualMachine.Version": {"ver"},
		"help":                   {"?"},
	}})
	if err := term.Call("ver"); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "#1 VirtualMachine.Version\n") {
		t.Fatalf("unexpected output %q", out.String())
	}
	if err := term.Call("?"); err != nil {
		t.Fatal(err)
	}

	if err := term.Call("config alias VirtualMachine.AllThreads threads"); err != nil {
		t.Fatal(err)
	}
	if err := term.Call("threads"); err != nil {
		t.Fatal(err)
	}
	if err := term.Call("config alias ver"); err != nil {
		t.Fatal(err)
	}
	if err := term.Call("ver"); err == nil {
		t.Fatal("removed alias still works")
	}

	got := term.cmds.complete("thr")
	if !reflect.DeepEqual(got, []string{"threads"}) {
		t.Fatalf("unexpected completion %v", got)
	}
	got = term.cmds.complete("StackFrame.P")
	if !reflect.DeepEqual(got, []string{"StackFrame.PopFrames"}) {
		t.Fatalf("unexpected completion %v", got)
	}
}

func TestHelp(t *testing.T) {
	term, out := newTestTerm(nil)
	if err := term.Call("help"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Encoding and decoding packets:") {
		t.Fatalf("unexpected help %q", out.String())
	}
	out.Reset()
	if err := term.Call("help ThreadReference.Frames"); err != nil {
		t.Fatal(err)
	}
	for _, expected := range []string{"ThreadReference.Frames (11/6)", "startframe: 0", "length: 0"} {
		if !strings.Contains(out.String(), expected) {
			t.Fatalf("help does not contain %q: %q", expected, out.String())
		}
	}
	out.Reset()
	if err := term.Call("commands VirtualMachine.ID"); err != nil {
		t.Fatal(err)
	}
	if out.String() != "VirtualMachine.IDSizes 1/7\n" {
		t.Fatalf("unexpected list %q", out.String())
	}
}

func TestConfig(t *testing.T) {
	term, out := newTestTerm(nil)
	if err := term.Call("config max-hex-bytes 16"); err != nil {
		t.Fatal(err)
	}
	if term.conf.GetMaxHexBytes() != 16 {
		t.Fatalf("max-hex-bytes not set: %d", term.conf.GetMaxHexBytes())
	}
	if err := term.Call("config color always"); err != nil {
		t.Fatal(err)
	}
	if !term.color {
		t.Fatal("color not enabled")
	}
	for _, line := range []string{"config color purple", "config nosuchparam 1", "config max-hex-bytes -1", "config id-sizes 8"} {
		if err := term.Call(line); err == nil {
			t.Fatalf("%q: expected an error", line)
		}
	}
	if err := term.Call("config -list"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "max-hex-bytes") || !strings.Contains(out.String(), "<not defined>") {
		t.Fatalf("unexpected list %q", out.String())
	}
}

func TestNewRequest(t *testing.T) {
	cmd, _ := jdwp.LookupCommand("ObjectReference.InvokeMethod")
	req, err := NewRequest(cmd, []string{"object=1", "thread=2", "class=3", "method=4", `args=["I 5", "s 0x6"]`, "options=1"})
	if err != nil {
		t.Fatal(err)
	}
	expected := &jdwp.ObjectReferenceInvokeMethod{
		Object:  1,
		Thread:  2,
		Class:   3,
		Method:  4,
		Args:    []jdwp.Value{jdwp.IntValue(5), jdwp.ObjectValue(jdwp.TagString, 6)},
		Options: jdwp.InvokeSingleThreaded,
	}
	if !reflect.DeepEqual(req, expected) {
		t.Fatalf("expected %#v got %#v", expected, req)
	}
}
