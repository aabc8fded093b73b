package dump

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/go-delve/jdwp/pkg/jdwp"
)

const indent = "    "

// Printer writes entries in a human readable form.
type Printer struct {
	Out io.Writer

	// MaxHexBytes limits the raw bytes printed for a packet that could not
	// be decoded.
	MaxHexBytes int

	// Highlight, if set, is applied to the header line of every entry.
	Highlight func(e *Entry, header string) string
}

// Print writes e. The locations in e are described using what d learned
// so far.
func (p *Printer) Print(d *Dumper, e *Entry) error {
	header := fmt.Sprintf("@%#x #%d %v %v", e.Offset, e.Packet.ID, e.Kind, e.Command)
	if e.Kind == KindReply && e.Packet.ErrorCode != jdwp.CodeNone {
		header += " " + e.Packet.ErrorCode.String()
	}
	if p.Highlight != nil {
		header = p.Highlight(e, header)
	}
	if _, err := fmt.Fprintln(p.Out, header); err != nil {
		return err
	}

	if e.Err != nil {
		fmt.Fprintf(p.Out, "%serror: %v\n", indent, e.Err)
		if e.Kind != KindReply || e.Packet.ErrorCode == jdwp.CodeNone {
			fmt.Fprintf(p.Out, "%sdata: %s\n", indent, p.hex(e.Packet.Data))
		}
		return nil
	}

	var body interface{}
	switch {
	case e.Events != nil:
		body = e.Events
	case e.Reply != nil:
		body = e.Reply
	case e.Request != nil:
		body = e.Request
	}
	if body != nil {
		if err := p.yaml(body); err != nil {
			return err
		}
	}
	for _, l := range Locations(e) {
		fmt.Fprintf(p.Out, "%sat %s\n", indent, d.Describe(l))
	}
	if args := Arguments(e); len(args) > 0 {
		fmt.Fprintf(p.Out, "%sarguments: %s\n", indent, strings.Join(args, ", "))
	}
	for _, s := range d.Slots(e) {
		fmt.Fprintf(p.Out, "%sslot %s\n", indent, s)
	}
	return nil
}

func (p *Printer) yaml(body interface{}) error {
	b, err := yaml.Marshal(body)
	if err != nil {
		return err
	}
	s := strings.TrimSuffix(string(b), "\n")
	if s == "{}" {
		return nil
	}
	for _, line := range strings.Split(s, "\n") {
		fmt.Fprintf(p.Out, "%s%s\n", indent, line)
	}
	return nil
}

func (p *Printer) hex(b []byte) string {
	if p.MaxHexBytes > 0 && len(b) > p.MaxHexBytes {
		return fmt.Sprintf("%x... (%d bytes)", b[:p.MaxHexBytes], len(b))
	}
	return fmt.Sprintf("%x", b)
}
