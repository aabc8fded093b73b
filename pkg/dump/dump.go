// Package dump decodes captured JDWP traffic.
//
// A capture is the concatenation of every packet exchanged on one
// connection, in the order they were observed, optionally preceded by the
// handshake strings. Replies are matched to the commands they answer by
// transaction id, the identifier widths are taken from the
// VirtualMachine.IDSizes exchange and the class and method names learned
// from replies and events are used to describe code locations. Variable
// tables and stack frames seen in the capture name the slots read by
// StackFrame.GetValues.
package dump

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	lru "github.com/hashicorp/golang-lru"

	"github.com/go-delve/jdwp/pkg/jdwp"
	"github.com/go-delve/jdwp/pkg/logflags"
)

// ErrUnmatchedReply is returned for a reply whose transaction id does not
// match any pending command.
var ErrUnmatchedReply = errors.New("reply does not match any command")

// Kind is the kind of a captured packet.
type Kind uint8

const (
	KindCommand Kind = iota
	KindReply
	KindEvents
)

func (k Kind) String() string {
	switch k {
	case KindCommand:
		return "command"
	case KindReply:
		return "reply"
	case KindEvents:
		return "events"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Entry is one decoded packet of a capture.
type Entry struct {
	Offset int64 // offset of the packet in the capture
	Kind   Kind
	Packet jdwp.Packet

	// Command is the command carried by a command packet, or the command a
	// reply answers. It is zero for an unmatched reply.
	Command jdwp.Command
	Request jdwp.Request
	Reply   jdwp.Reply
	Events  *jdwp.EventComposite

	// Err is the decoding error, if any. Request, Reply and Events are nil
	// when it is set.
	Err error
}

// Options configure a Dumper.
type Options struct {
	// IDSizes, if not nil, are the identifier widths in use when the
	// capture starts.
	IDSizes *jdwp.IDSizesReply

	// SignatureCacheSize is the number of class signatures, method names,
	// variable tables and frames remembered.
	SignatureCacheSize int
}

const defaultSignatureCacheSize = 1024

type methodKey struct {
	Type   jdwp.ReferenceTypeID
	Method jdwp.MethodID
}

type pendingCommand struct {
	cmd jdwp.Command
	req jdwp.Request
}

// Dumper decodes the packets of a single capture in order.
type Dumper struct {
	codec   *jdwp.Codec
	pending map[uint32]pendingCommand
	sigs    *lru.Cache // jdwp.ReferenceTypeID -> string
	methods *lru.Cache // methodKey -> string
	vars    *lru.Cache // methodKey -> []jdwp.Variable
	frames  *lru.Cache // jdwp.FrameID -> jdwp.Location
	log     logflags.Logger
}

// New returns a Dumper for a new capture.
func New(opts Options) (*Dumper, error) {
	sizes := jdwp.NewIDSizes()
	if opts.IDSizes != nil {
		if err := sizes.Set(*opts.IDSizes); err != nil {
			return nil, err
		}
	}
	n := opts.SignatureCacheSize
	if n <= 0 {
		n = defaultSignatureCacheSize
	}
	var caches [4]*lru.Cache
	for i := range caches {
		c, err := lru.New(n)
		if err != nil {
			return nil, err
		}
		caches[i] = c
	}
	return &Dumper{
		codec:   jdwp.NewCodec(sizes),
		pending: make(map[uint32]pendingCommand),
		sigs:    caches[0],
		methods: caches[1],
		vars:    caches[2],
		frames:  caches[3],
		log:     logflags.DumpLogger(),
	}, nil
}

// Codec returns the codec used for the capture.
func (d *Dumper) Codec() *jdwp.Codec { return d.codec }

// Run splits the capture read from rd into packets and calls fn with each
// decoded entry. Decoding errors are reported in Entry.Err, Run only fails
// if the capture can not be split or fn returns an error.
func (d *Dumper) Run(rd io.Reader, fn func(*Entry) error) error {
	brd := bufio.NewReader(rd)
	off, err := skipHandshake(brd)
	if err != nil {
		return err
	}
	for {
		b, err := jdwp.ReadPacket(brd)
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading packet at offset %#x: %w", off, err)
		}
		e := d.Feed(b)
		e.Offset = off
		off += int64(len(b))
		if err := fn(e); err != nil {
			return err
		}
	}
	if len(d.pending) > 0 {
		d.log.Debugf("%d commands never answered", len(d.pending))
	}
	return nil
}

// skipHandshake discards the handshake strings at the start of a capture,
// one for each direction.
func skipHandshake(brd *bufio.Reader) (int64, error) {
	var off int64
	for {
		b, err := brd.Peek(len(jdwp.Handshake))
		if err != nil && err != io.EOF {
			return off, err
		}
		if !bytes.Equal(b, []byte(jdwp.Handshake)) {
			return off, nil
		}
		brd.Discard(len(b))
		off += int64(len(b))
	}
}

// Feed decodes the next packet of the capture.
func (d *Dumper) Feed(b []byte) *Entry {
	p, err := jdwp.ParsePacket(b)
	if err != nil {
		return &Entry{Err: err}
	}
	e := &Entry{Packet: p}
	switch {
	case p.IsReply():
		d.feedReply(e, b)
	case p.Command.Set == jdwp.CommandSetEvent:
		e.Kind = KindEvents
		e.Command = p.Command
		e.Events, e.Err = d.codec.DecodeEvents(b)
		if e.Events != nil {
			d.learnEvents(e.Events)
		}
	default:
		e.Kind = KindCommand
		e.Command = p.Command
		if _, dup := d.pending[p.ID]; dup {
			d.log.WithField("id", p.ID).Warnf("%v sent again before its reply", p.Command)
		}
		_, e.Request, e.Err = d.codec.DecodeRequest(b)
		d.pending[p.ID] = pendingCommand{p.Command, e.Request}
	}
	if e.Err != nil {
		d.log.Debugf("%v: %v", p, e.Err)
	}
	return e
}

func (d *Dumper) feedReply(e *Entry, b []byte) {
	e.Kind = KindReply
	pc, ok := d.pending[e.Packet.ID]
	if !ok {
		e.Err = fmt.Errorf("%w: id %d", ErrUnmatchedReply, e.Packet.ID)
		return
	}
	delete(d.pending, e.Packet.ID)
	e.Command, e.Request = pc.cmd, pc.req
	if pc.req != nil {
		e.Reply, e.Err = d.codec.DecodeReply(pc.req, b)
	} else {
		e.Reply, e.Err = d.codec.DecodeReplyFor(pc.cmd, b)
	}
	if e.Reply != nil {
		d.learnReply(pc.req, e.Reply)
	}
}

func (d *Dumper) learnReply(req jdwp.Request, rep jdwp.Reply) {
	switch rep := rep.(type) {
	case *jdwp.ReferenceTypeSignatureReply:
		if q, ok := req.(*jdwp.ReferenceTypeSignature); ok {
			d.sigs.Add(q.Type, rep.Signature)
		}
	case *jdwp.ReferenceTypeSignatureWithGenericReply:
		if q, ok := req.(*jdwp.ReferenceTypeSignatureWithGeneric); ok {
			d.sigs.Add(q.Type, rep.Signature)
		}
	case *jdwp.VirtualMachineAllClassesReply:
		d.learnClasses(rep.Classes)
	case *jdwp.VirtualMachineAllClassesWithGenericReply:
		d.learnClasses(rep.Classes)
	case *jdwp.VirtualMachineClassesBySignatureReply:
		if q, ok := req.(*jdwp.VirtualMachineClassesBySignature); ok {
			for _, c := range rep.Classes {
				d.sigs.Add(c.TypeID, q.Signature)
			}
		}
	case *jdwp.ReferenceTypeMethodsReply:
		if q, ok := req.(*jdwp.ReferenceTypeMethods); ok {
			d.learnMethods(q.Type, rep.Methods)
		}
	case *jdwp.ReferenceTypeMethodsWithGenericReply:
		if q, ok := req.(*jdwp.ReferenceTypeMethodsWithGeneric); ok {
			d.learnMethods(q.Type, rep.Methods)
		}
	case *jdwp.MethodVariableTableReply:
		if q, ok := req.(*jdwp.MethodVariableTable); ok {
			d.vars.Add(methodKey{q.Type, q.Method}, rep.Slots)
		}
	case *jdwp.MethodVariableTableWithGenericReply:
		if q, ok := req.(*jdwp.MethodVariableTableWithGeneric); ok {
			d.vars.Add(methodKey{q.Type, q.Method}, rep.Slots)
		}
	case *jdwp.ThreadReferenceFramesReply:
		for _, f := range rep.Frames {
			d.frames.Add(f.Frame, f.Location)
		}
	}
}

func (d *Dumper) learnClasses(classes []jdwp.ClassInfo) {
	for _, c := range classes {
		d.sigs.Add(c.TypeID, c.Signature)
	}
}

func (d *Dumper) learnMethods(t jdwp.ReferenceTypeID, methods []jdwp.MethodInfo) {
	for _, m := range methods {
		d.methods.Add(methodKey{t, m.ID}, m.Name)
	}
}

func (d *Dumper) learnEvents(ev *jdwp.EventComposite) {
	for _, e := range ev.Events {
		if cp, ok := e.(jdwp.ClassPrepareEvent); ok {
			d.sigs.Add(cp.TypeID, cp.Signature)
		}
	}
}

// Signature returns the signature of a reference type seen in the capture.
func (d *Dumper) Signature(t jdwp.ReferenceTypeID) (string, bool) {
	v, ok := d.sigs.Get(t)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// MethodName returns the name of a method seen in the capture.
func (d *Dumper) MethodName(t jdwp.ReferenceTypeID, m jdwp.MethodID) (string, bool) {
	v, ok := d.methods.Get(methodKey{t, m})
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Describe formats a location using the class signature and method name
// if they are known.
func (d *Dumper) Describe(l jdwp.Location) string {
	t := l.Class.RefTypeID()
	sig, ok := d.Signature(t)
	if !ok {
		return l.String()
	}
	name, ok := d.MethodName(t, l.Method)
	if !ok {
		name = fmt.Sprintf("%#x", uint64(l.Method))
	}
	return fmt.Sprintf("%s.%s@%d", sig, name, l.Index)
}

// Locations returns the code locations carried by an entry.
func Locations(e *Entry) []jdwp.Location {
	var r []jdwp.Location
	if e.Events != nil {
		for _, ev := range e.Events.Events {
			if l, ok := jdwp.EventLocation(ev); ok {
				r = append(r, l)
			}
		}
	}
	if rep, ok := e.Reply.(*jdwp.ThreadReferenceFramesReply); ok {
		for _, f := range rep.Frames {
			r = append(r, f.Location)
		}
	}
	return r
}

// Arguments returns the names of the variables live on entry to the method
// of a variable table reply, in slot order.
func Arguments(e *Entry) []string {
	var vars []jdwp.Variable
	switch rep := e.Reply.(type) {
	case *jdwp.MethodVariableTableReply:
		vars = rep.Slots
	case *jdwp.MethodVariableTableWithGenericReply:
		vars = rep.Slots
	default:
		return nil
	}
	var r []string
	for _, v := range jdwp.ArgumentSlots(vars) {
		r = append(r, v.Name)
	}
	return r
}

// Slots describes the slots read by a StackFrame.GetValues command. A slot
// is named when the location of the frame and the variable table of its
// method were seen earlier in the capture. A slot requested with a tag
// that does not fit the declared type of its variable is flagged.
func (d *Dumper) Slots(e *Entry) []string {
	q, ok := e.Request.(*jdwp.StackFrameGetValues)
	if !ok {
		return nil
	}
	var (
		loc  jdwp.Location
		vars []jdwp.Variable
	)
	if v, ok := d.frames.Get(q.Frame); ok {
		loc = v.(jdwp.Location)
		if v, ok := d.vars.Get(methodKey{loc.Class.RefTypeID(), loc.Method}); ok {
			vars = v.([]jdwp.Variable)
		}
	}
	r := make([]string, 0, len(q.Slots))
	for _, s := range q.Slots {
		v, ok := liveVariable(vars, s.Slot, loc.Index)
		if !ok {
			r = append(r, fmt.Sprintf("%d %v", s.Slot, s.Tag))
			continue
		}
		desc := fmt.Sprintf("%d %s %s", s.Slot, v.Name, v.Signature)
		if t, ok := jdwp.TagForSignature(v.Signature); ok && !compatibleTags(t, s.Tag) {
			d.log.Warnf("slot %d (%s) of frame %v requested as %v", s.Slot, v.Name, q.Frame, s.Tag)
			desc += fmt.Sprintf(" (requested as %v)", s.Tag)
		}
		r = append(r, desc)
	}
	return r
}

// liveVariable returns the variable stored in slot at code index idx.
func liveVariable(vars []jdwp.Variable, slot int32, idx uint64) (jdwp.Variable, bool) {
	for _, v := range vars {
		if v.Slot == slot && v.Length > 0 && idx >= v.CodeIndex && idx < v.CodeIndex+uint64(v.Length) {
			return v, true
		}
	}
	return jdwp.Variable{}, false
}

func compatibleTags(declared, requested jdwp.Tag) bool {
	return declared == requested || (declared.IsObject() && requested.IsObject())
}
