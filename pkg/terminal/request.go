package terminal

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/go-delve/jdwp/pkg/jdwp"
)

// NewRequest builds the request for cmd from arguments of the form
// key=value. Keys are the lower case field names of the request and values
// are YAML, for example:
//
//	thread=0x1c startframe=0 length=-1
//	type=7 fields=[1,2]
//	object=3 thread=1 class=2 method=4 args=["I 1"] options=1
func NewRequest(cmd jdwp.Command, args []string) (jdwp.Request, error) {
	req, err := jdwp.NewRequest(cmd)
	if err != nil {
		return nil, err
	}
	doc, err := argsToYAML(args)
	if err != nil {
		return nil, err
	}
	if err := UnmarshalRequest(doc, req); err != nil {
		return nil, fmt.Errorf("%v: %v", cmd, err)
	}
	return req, nil
}

// UnmarshalRequest decodes a YAML document into req, rejecting unknown
// keys.
func UnmarshalRequest(doc []byte, req jdwp.Request) error {
	if len(bytes.TrimSpace(doc)) == 0 {
		return nil
	}
	return yaml.UnmarshalStrict(doc, req)
}

func argsToYAML(args []string) ([]byte, error) {
	var b bytes.Buffer
	for _, arg := range args {
		i := strings.Index(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("argument %q is not of the form key=value", arg)
		}
		k, v := strings.ToLower(arg[:i]), arg[i+1:]
		if strings.ContainsAny(v, "\n\r") {
			return nil, fmt.Errorf("value of %q spans multiple lines", k)
		}
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}
	return b.Bytes(), nil
}

// requestTemplate returns the YAML form of the zero request of cmd, which
// lists the keys NewRequest accepts.
func requestTemplate(cmd jdwp.Command) (string, error) {
	req, err := jdwp.NewRequest(cmd)
	if err != nil {
		return "", err
	}
	b, err := yaml.Marshal(req)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}
