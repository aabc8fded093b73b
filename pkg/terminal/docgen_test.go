package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	DebugCommands().WriteMarkdown(&buf)
	s := buf.String()
	for _, expected := range []string{
		"## Encoding and decoding packets\n",
		"[decode](#decode) | Decodes a reply packet.\n",
		"Aliases: quit q\n",
		"VirtualMachine.IDSizes | 1 | 7\n",
		"Event.Composite | 64 | 100\n",
	} {
		if !strings.Contains(s, expected) {
			t.Fatalf("documentation does not contain %q", expected)
		}
	}
}
