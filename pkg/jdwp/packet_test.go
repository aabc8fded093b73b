package jdwp

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestParsePacket(t *testing.T) {
	cmd := CommandPacket{ID: 5, Command: cmdThreadReferenceName, Data: []byte{0, 0, 0, 1}}.Encode()
	p, err := ParsePacket(cmd)
	if err != nil {
		t.Fatal(err)
	}
	if p.IsReply() || p.ID != 5 || p.Command != cmdThreadReferenceName || !bytes.Equal(p.Data, []byte{0, 0, 0, 1}) {
		t.Fatalf("unexpected packet %v", p)
	}

	rep := ReplyPacket{ID: 5, ErrorCode: CodeInvalidThread, Data: []byte{9}}.Encode()
	p, err = ParsePacket(rep)
	if err != nil {
		t.Fatal(err)
	}
	if !p.IsReply() || p.ErrorCode != CodeInvalidThread {
		t.Fatalf("unexpected packet %v", p)
	}
	if body, err := p.Body(); body != nil || err == nil {
		t.Fatalf("expected a protocol error got %x %v", body, err)
	}

	for _, tc := range []struct {
		name string
		data []byte
		err  error
	}{
		{"short header", cmd[:7], ErrTruncated},
		{"short data", cmd[:len(cmd)-1], ErrTruncated},
		{"trailing", append(append([]byte{}, cmd...), 0), ErrCountMismatch},
		{"bad length", []byte{0, 0, 0, 3, 0, 0, 0, 0, 0, 0, 0}, ErrCountMismatch},
	} {
		if _, err := ParsePacket(tc.data); !errors.Is(err, tc.err) {
			t.Fatalf("%s: expected %v got %v", tc.name, tc.err, err)
		}
	}
}

func TestReadPacket(t *testing.T) {
	a := CommandPacket{ID: 1, Command: cmdVirtualMachineVersion}.Encode()
	b := ReplyPacket{ID: 1, Data: []byte("hello")}.Encode()
	rd := bytes.NewReader(append(append([]byte{}, a...), b...))
	for i, expected := range [][]byte{a, b} {
		got, err := ReadPacket(rd)
		if err != nil {
			t.Fatalf("packet %d: %v", i, err)
		}
		if !bytes.Equal(got, expected) {
			t.Fatalf("packet %d: expected %x got %x", i, expected, got)
		}
	}
	if _, err := ReadPacket(rd); err != io.EOF {
		t.Fatalf("expected io.EOF got %v", err)
	}

	if _, err := ReadPacket(bytes.NewReader(b[:len(b)-2])); err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF got %v", err)
	}
	if _, err := ReadPacket(bytes.NewReader([]byte{0xff, 0xff, 0xff, 0xff})); !errors.Is(err, ErrPacketTooLarge) {
		t.Fatalf("expected ErrPacketTooLarge got %v", err)
	}
}
