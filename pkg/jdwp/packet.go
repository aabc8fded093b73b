package jdwp

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	// HeaderSize is the size of the envelope shared by command and reply
	// packets.
	HeaderSize = 11

	// ReplyFlag is set in the flags byte of every reply packet.
	ReplyFlag = uint8(0x80)

	// MaxPacketSize bounds the length ReadPacket accepts.
	MaxPacketSize = 64 << 20
)

// Handshake is exchanged in both directions, as raw ASCII, before the
// first packet.
const Handshake = "JDWP-Handshake"

// CommandPacket is a framed command.
type CommandPacket struct {
	ID      uint32
	Flags   uint8
	Command Command
	Data    []byte
}

// Encode returns the packet with its header.
func (p CommandPacket) Encode() []byte {
	b := make([]byte, HeaderSize, HeaderSize+len(p.Data))
	binary.BigEndian.PutUint32(b[0:], uint32(HeaderSize+len(p.Data)))
	binary.BigEndian.PutUint32(b[4:], p.ID)
	b[8] = p.Flags &^ ReplyFlag
	b[9] = uint8(p.Command.Set)
	b[10] = p.Command.ID
	return append(b, p.Data...)
}

// ReplyPacket is a framed reply.
type ReplyPacket struct {
	ID        uint32
	ErrorCode ErrorCode
	Data      []byte
}

// Encode returns the packet with its header.
func (p ReplyPacket) Encode() []byte {
	b := make([]byte, HeaderSize, HeaderSize+len(p.Data))
	binary.BigEndian.PutUint32(b[0:], uint32(HeaderSize+len(p.Data)))
	binary.BigEndian.PutUint32(b[4:], p.ID)
	b[8] = ReplyFlag
	binary.BigEndian.PutUint16(b[9:], uint16(p.ErrorCode))
	return append(b, p.Data...)
}

// Packet is a parsed command or reply packet. Command is only meaningful
// for commands, ErrorCode only for replies.
type Packet struct {
	ID        uint32
	Flags     uint8
	Command   Command
	ErrorCode ErrorCode
	Data      []byte
}

// IsReply reports whether the packet is a reply.
func (p Packet) IsReply() bool { return p.Flags&ReplyFlag != 0 }

// Body returns the data of the packet. For a reply with a non-zero error
// code it returns a *ProtocolError instead, and no data.
func (p Packet) Body() ([]byte, error) {
	if p.IsReply() && p.ErrorCode != CodeNone {
		return nil, &ProtocolError{Code: p.ErrorCode, ID: p.ID}
	}
	return p.Data, nil
}

func (p Packet) String() string {
	if p.IsReply() {
		return fmt.Sprintf("reply id=%d error=%v len=%d", p.ID, p.ErrorCode, len(p.Data))
	}
	return fmt.Sprintf("command id=%d %v len=%d", p.ID, p.Command, len(p.Data))
}

// ParsePacket strips the envelope from a single packet. The length field
// must match len(b) exactly. Data aliases b.
func ParsePacket(b []byte) (Packet, error) {
	if len(b) < HeaderSize {
		return Packet{}, &DecodeError{Kind: Truncated, Offset: len(b), Requested: HeaderSize - len(b), Detail: "packet header"}
	}
	n := binary.BigEndian.Uint32(b)
	switch {
	case n < HeaderSize:
		return Packet{}, &DecodeError{Kind: CountMismatch, Detail: fmt.Sprintf("packet length %d shorter than header", n)}
	case uint64(n) > uint64(len(b)):
		return Packet{}, &DecodeError{Kind: Truncated, Offset: len(b), Requested: int(uint64(n) - uint64(len(b))), Detail: "packet data"}
	case uint64(n) < uint64(len(b)):
		return Packet{}, &DecodeError{Kind: CountMismatch, Offset: int(n), Detail: fmt.Sprintf("%d bytes after packet", len(b)-int(n))}
	}
	p := Packet{
		ID:    binary.BigEndian.Uint32(b[4:]),
		Flags: b[8],
		Data:  b[HeaderSize:],
	}
	if p.IsReply() {
		p.ErrorCode = ErrorCode(binary.BigEndian.Uint16(b[9:]))
	} else {
		p.Command = Command{Set: CommandSet(b[9]), ID: b[10]}
	}
	return p, nil
}

// ErrPacketTooLarge is returned by ReadPacket for a length field above
// MaxPacketSize.
var ErrPacketTooLarge = errors.New("packet too large")

// ReadPacket reads one whole packet from rd and returns it with its
// envelope. It returns io.EOF only if no byte was read.
func ReadPacket(rd io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(rd, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(hdr[:])
	if n < HeaderSize {
		return nil, &DecodeError{Kind: CountMismatch, Detail: fmt.Sprintf("packet length %d shorter than header", n)}
	}
	if n > MaxPacketSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrPacketTooLarge, n)
	}
	b := make([]byte, n)
	copy(b, hdr[:])
	if _, err := io.ReadFull(rd, b[4:]); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return b, nil
}
