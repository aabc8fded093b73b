package cmds

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/go-delve/jdwp/pkg/config"
	"github.com/go-delve/jdwp/pkg/jdwp"
)

// idSizesFlag is a flag holding identifier widths, either a single width
// used for every kind or five comma separated widths in the order of the
// VirtualMachine.IDSizes reply.
type idSizesFlag struct {
	sizes *jdwp.IDSizesReply
}

var _ pflag.Value = &idSizesFlag{}

func (f *idSizesFlag) String() string {
	if f.sizes == nil {
		return ""
	}
	s := f.sizes
	return fmt.Sprintf("%d,%d,%d,%d,%d", s.FieldIDSize, s.MethodIDSize, s.ObjectIDSize, s.ReferenceTypeIDSize, s.FrameIDSize)
}

func (f *idSizesFlag) Set(v string) error {
	fields := strings.Split(v, ",")
	if len(fields) != 1 && len(fields) != 5 {
		return fmt.Errorf("expected one or five widths, got %d", len(fields))
	}
	w := make([]int32, len(fields))
	for i := range fields {
		n, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid width %q", fields[i])
		}
		w[i] = int32(n)
	}
	if len(w) == 1 {
		w = []int32{w[0], w[0], w[0], w[0], w[0]}
	}
	f.sizes = &jdwp.IDSizesReply{FieldIDSize: w[0], MethodIDSize: w[1], ObjectIDSize: w[2], ReferenceTypeIDSize: w[3], FrameIDSize: w[4]}
	return nil
}

func (f *idSizesFlag) Type() string { return "widths" }

// resolve returns the widths given on the command line, or the ones from
// the configuration file.
func (f *idSizesFlag) resolve(conf *config.Config) *jdwp.IDSizesReply {
	if f.sizes != nil {
		return f.sizes
	}
	if conf != nil && conf.IDSizes != nil {
		s := conf.IDSizes
		return &jdwp.IDSizesReply{FieldIDSize: s.Field, MethodIDSize: s.Method, ObjectIDSize: s.Object, ReferenceTypeIDSize: s.ReferenceType, FrameIDSize: s.Frame}
	}
	return nil
}

// newCodec returns a codec whose identifier widths are fixed to sizes, if
// not nil.
func newCodec(sizes *jdwp.IDSizesReply) (*jdwp.Codec, error) {
	s := jdwp.NewIDSizes()
	if sizes != nil {
		if err := s.Set(*sizes); err != nil {
			return nil, err
		}
	}
	return jdwp.NewCodec(s), nil
}
