package cmds

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-delve/jdwp/pkg/jdwp"
)

func setupConfig(t *testing.T, contents string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if contents == "" {
		return
	}
	if err := os.MkdirAll(filepath.Join(dir, "jdwpdump"), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "jdwpdump", "config.yml"), []byte(contents), 0600); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestEncode(t *testing.T) {
	setupConfig(t, "")
	out, err := run(t, "encode", "--id-sizes", "4", "ThreadReference.Frames", "thread=0x1c", "startframe=0", "length=-1")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "0000001700000001000b060000001c00000000ffffffff\n"; out != expected {
		t.Fatalf("expected %q got %q", expected, out)
	}

	req := writeFile(t, "req.yml", []byte("thread: 0x1c\nstartframe: 0\nlength: -1\n"))
	out, err = run(t, "encode", "--id-sizes", "4,4,4,4,4", "--id", "5", "-f", req, "ThreadReference.Frames")
	if err != nil {
		t.Fatal(err)
	}
	if expected := "0000001700000005000b060000001c00000000ffffffff\n"; out != expected {
		t.Fatalf("expected %q got %q", expected, out)
	}

	if _, err := run(t, "encode", "Nope.Nothing"); !errors.Is(err, jdwp.ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand got %v", err)
	}
	if _, err := run(t, "encode", "--id-sizes", "3", "VirtualMachine.Version"); !errors.Is(err, jdwp.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", err)
	}
}

func TestDecode(t *testing.T) {
	setupConfig(t, "")
	reply := jdwp.ReplyPacket{ID: 1, Data: []byte{0, 0, 0, 4, 0, 0, 0, 4, 0, 0, 0, 8, 0, 0, 0, 8, 0, 0, 0, 8}}.Encode()
	path := writeFile(t, "reply.hex", []byte(fmt.Sprintf("%x\n", reply)))
	out, err := run(t, "decode", "VirtualMachine.IDSizes", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "fieldidsize: 4") || !strings.Contains(out, "frameidsize: 8") {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := run(t, "decode", path); err == nil {
		t.Fatal("decoding a reply without a command should fail")
	}

	codec := jdwp.NewCodec(nil)
	b, err := codec.EncodeCommand(3, &jdwp.ThreadReferenceName{ThreadRef: jdwp.ThreadRef{Thread: 9}})
	if err != nil {
		t.Fatal(err)
	}
	out, err = run(t, "decode", writeFile(t, "cmd.bin", b))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "ThreadReference.Name\nthread: 9\n") {
		t.Fatalf("unexpected output %q", out)
	}

	failed := jdwp.ReplyPacket{ID: 1, ErrorCode: jdwp.CodeInvalidThread}.Encode()
	var perr *jdwp.ProtocolError
	if _, err := run(t, "decode", "ThreadReference.Name", writeFile(t, "err.bin", failed)); !errors.As(err, &perr) {
		t.Fatalf("expected a protocol error got %v", err)
	}
}

func TestDump(t *testing.T) {
	setupConfig(t, "color: never\n")
	codec := jdwp.NewCodec(nil)
	var capture bytes.Buffer
	capture.WriteString(jdwp.Handshake)
	for _, f := range []func() ([]byte, error){
		func() ([]byte, error) { return codec.EncodeCommand(1, &jdwp.VirtualMachineIDSizes{}) },
		func() ([]byte, error) {
			return codec.EncodeReply(1, &jdwp.IDSizesReply{FieldIDSize: 8, MethodIDSize: 8, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 8})
		},
		func() ([]byte, error) { return codec.EncodeCommand(2, &jdwp.VirtualMachineAllThreads{}) },
		func() ([]byte, error) {
			return codec.EncodeReply(2, &jdwp.VirtualMachineAllThreadsReply{Threads: []jdwp.ThreadID{1, 2}})
		},
	} {
		b, err := f()
		if err != nil {
			t.Fatal(err)
		}
		capture.Write(b)
	}
	out, err := run(t, "dump", writeFile(t, "capture.bin", capture.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	for _, expected := range []string{
		"#2 reply VirtualMachine.AllThreads\n",
		"    - 2\n",
		"4 packets, 0 not decoded\n",
	} {
		if !strings.Contains(out, expected) {
			t.Fatalf("output does not contain %q:\n%s", expected, out)
		}
	}
	if strings.Contains(out, "\033[") {
		t.Fatalf("output colorized with color: never:\n%s", out)
	}
}

func TestCommands(t *testing.T) {
	setupConfig(t, "aliases:\n  VirtualMachine.AllThreads: [threads]\n")
	out, err := run(t, "commands", "StackFrame.")
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(out, "\n"); n != 4 {
		t.Fatalf("expected 4 commands got %d:\n%s", n, out)
	}
	out, err = run(t, "commands", "threads")
	if err != nil {
		t.Fatal(err)
	}
	if out != "VirtualMachine.AllThreads 1/4 (alias: threads)\n" {
		t.Fatalf("unexpected output %q", out)
	}
	if _, err := run(t, "commands", "Nope"); err == nil {
		t.Fatal("expected an error for an unknown prefix")
	}
}

func TestVersion(t *testing.T) {
	setupConfig(t, "")
	out, err := run(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "jdwpdump\nVersion: ") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestIDSizesFlag(t *testing.T) {
	var f idSizesFlag
	if err := f.Set("4,4,8,8,8"); err != nil {
		t.Fatal(err)
	}
	if f.String() != "4,4,8,8,8" {
		t.Fatalf("unexpected value %q", f.String())
	}
	for _, in := range []string{"4,4", "x", ""} {
		if err := f.Set(in); err == nil {
			t.Fatalf("%q: expected an error", in)
		}
	}
}
