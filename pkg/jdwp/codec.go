package jdwp

import (
	"errors"
	"fmt"

	"github.com/go-delve/jdwp/pkg/logflags"
)

// wireMaxLen is the number of packet bytes logged by the wire logger.
const wireMaxLen = 120

// boundReply is implemented by replies whose decoding depends on the
// request they answer, such as the GetValues replies which must hold one
// value per requested field.
type boundReply interface {
	bind(req Request)
}

// requestedCount is the number of elements a bound reply must hold. The
// zero value accepts any count.
type requestedCount struct {
	n     int
	bound bool
}

// Codec encodes requests and decodes replies and events for one debugging
// session. It owns the session's identifier width table, which is fixed
// the first time a VirtualMachine.IDSizes reply is decoded.
//
// A Codec may be used from multiple goroutines once the widths have been
// negotiated.
type Codec struct {
	sizes *IDSizes
	log   logflags.Logger
	wire  logflags.Logger
}

// NewCodec returns a Codec using sizes, or a fresh table holding the
// protocol defaults if sizes is nil.
func NewCodec(sizes *IDSizes) *Codec {
	if sizes == nil {
		sizes = NewIDSizes()
	}
	return &Codec{sizes: sizes, log: logflags.CodecLogger(), wire: logflags.WireLogger()}
}

// Sizes returns the identifier width table of the session.
func (c *Codec) Sizes() *IDSizes { return c.sizes }

// EncodeCommand returns the command packet for req with transaction id.
func (c *Codec) EncodeCommand(id uint32, req Request) ([]byte, error) {
	data, err := c.encodeBody(req.Command(), req)
	if err != nil {
		return nil, err
	}
	b := CommandPacket{ID: id, Command: req.Command(), Data: data}.Encode()
	c.logPacket("<-", b)
	return b, nil
}

// EncodeReply returns a successful reply packet carrying rep.
func (c *Codec) EncodeReply(id uint32, rep Reply) ([]byte, error) {
	data, err := c.encodeBody(Command{}, rep)
	if err != nil {
		return nil, err
	}
	b := ReplyPacket{ID: id, Data: data}.Encode()
	c.logPacket("->", b)
	return b, nil
}

func (c *Codec) encodeBody(cmd Command, m Message) ([]byte, error) {
	w := NewWriter(c.sizes)
	m.encode(w)
	if err := w.Err(); err != nil {
		if cmd != (Command{}) {
			return nil, fmt.Errorf("encoding %v: %w", cmd, err)
		}
		return nil, fmt.Errorf("encoding reply: %w", err)
	}
	return w.Bytes(), nil
}

// DecodeReply decodes the reply packet answering req.
//
// A reply carrying an error code is returned as a *ProtocolError and its
// body is not decoded. Decoding the reply to VirtualMachine.IDSizes
// applies the reported widths to the session.
func (c *Codec) DecodeReply(req Request, packet []byte) (Reply, error) {
	rep, err := NewReply(req.Command())
	if err != nil {
		return nil, err
	}
	if err := c.DecodeReplyInto(req, packet, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// DecodeReplyFor decodes a reply to cmd when the request itself is not
// available. Replies whose length depends on the request, like the
// GetValues replies, accept any element count.
func (c *Codec) DecodeReplyFor(cmd Command, packet []byte) (Reply, error) {
	rep, err := NewReply(cmd)
	if err != nil {
		return nil, err
	}
	if err := c.decodeReply(cmd, nil, packet, rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// DecodeReplyInto decodes the reply packet answering req into rep.
func (c *Codec) DecodeReplyInto(req Request, packet []byte, rep Reply) error {
	return c.decodeReply(req.Command(), req, packet, rep)
}

func (c *Codec) decodeReply(cmd Command, req Request, packet []byte, rep Reply) error {
	p, err := ParsePacket(packet)
	if err != nil {
		return annotate(err, cmd)
	}
	c.logPacket("->", packet)
	if !p.IsReply() {
		return fmt.Errorf("decoding %v: packet %d is a command, not a reply", cmd, p.ID)
	}
	body, err := p.Body()
	if err != nil {
		var perr *ProtocolError
		if errors.As(err, &perr) {
			perr.Command = cmd
		}
		return err
	}
	if b, ok := rep.(boundReply); ok && req != nil {
		b.bind(req)
	}
	if err := c.decodeBody(cmd, body, rep); err != nil {
		return err
	}
	if r, ok := rep.(*IDSizesReply); ok {
		return c.applyIDSizes(*r)
	}
	return nil
}

// applyIDSizes fixes the identifier widths. A repeated reply with the
// widths already in use is accepted.
func (c *Codec) applyIDSizes(r IDSizesReply) error {
	err := c.sizes.Set(r)
	switch {
	case err == nil:
		c.log.Debugf("identifier sizes negotiated: %v", c.sizes)
		return nil
	case errors.Is(err, ErrIDSizesNegotiated) && c.sizes.Sizes() == r:
		return nil
	}
	c.log.Warnf("identifier sizes not applied: %v", err)
	return fmt.Errorf("applying %v: %w", cmdVirtualMachineIDSizes, err)
}

// DecodeRequest decodes a command packet into the request it carries.
func (c *Codec) DecodeRequest(packet []byte) (Packet, Request, error) {
	p, err := ParsePacket(packet)
	if err != nil {
		return p, nil, err
	}
	c.logPacket("<-", packet)
	if p.IsReply() {
		return p, nil, fmt.Errorf("packet %d is a reply, not a command", p.ID)
	}
	req, err := NewRequest(p.Command)
	if err != nil {
		return p, nil, err
	}
	if err := c.decodeBody(p.Command, p.Data, req); err != nil {
		return p, nil, err
	}
	return p, req, nil
}

// DecodeEvents decodes an Event.Composite command packet.
func (c *Codec) DecodeEvents(packet []byte) (*EventComposite, error) {
	p, err := ParsePacket(packet)
	if err != nil {
		return nil, annotate(err, cmdEventComposite)
	}
	if p.IsReply() || p.Command != cmdEventComposite {
		return nil, fmt.Errorf("packet %d is not %v", p.ID, cmdEventComposite)
	}
	c.logPacket("->", packet)
	ev := &EventComposite{}
	if err := c.decodeBody(cmdEventComposite, p.Data, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

func (c *Codec) decodeBody(cmd Command, body []byte, m Message) error {
	r := NewReader(c.sizes, body)
	m.decode(r)
	if err := r.Finish(); err != nil {
		err = annotate(err, cmd)
		c.log.Debugf("%v", err)
		return err
	}
	return nil
}

func annotate(err error, cmd Command) error {
	var derr *DecodeError
	if errors.As(err, &derr) && derr.Command == (Command{}) {
		derr.Command = cmd
	}
	return err
}

func (c *Codec) logPacket(dir string, b []byte) {
	if !logflags.Wire() {
		return
	}
	if len(b) > wireMaxLen {
		c.wire.Debugf("%s %x...", dir, b[:wireMaxLen])
	} else {
		c.wire.Debugf("%s %x", dir, b)
	}
}
