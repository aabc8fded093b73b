package jdwp

import (
	"errors"
	"fmt"
	"sync/atomic"
)

// DefaultIDSize is the width used for every identifier kind until the
// VirtualMachine.IDSizes reply has been applied. It is the largest width
// the protocol allows.
const DefaultIDSize = 8

// ErrIDSizesNegotiated is returned by IDSizes.Set when the widths have
// already been fixed for this session.
var ErrIDSizesNegotiated = errors.New("identifier sizes already negotiated")

type idWidths [numIDKinds]int

var defaultWidths = idWidths{DefaultIDSize, DefaultIDSize, DefaultIDSize, DefaultIDSize, DefaultIDSize}

// IDSizes is the identifier width table of one debugging session.
//
// The zero value, and a nil *IDSizes, report DefaultIDSize for every kind.
// A nil table cannot be set. Set may succeed only once; after that the
// table is immutable and may be read from any number of goroutines.
type IDSizes struct {
	widths atomic.Pointer[idWidths] // nil until negotiated
}

// NewIDSizes returns a table holding the protocol defaults.
func NewIDSizes() *IDSizes {
	return &IDSizes{}
}

// Width returns the number of bytes used on the wire by identifiers of
// kind k.
func (s *IDSizes) Width(k IDKind) int {
	if k >= numIDKinds {
		panic(fmt.Errorf("jdwp: invalid identifier kind %d", uint8(k)))
	}
	if s == nil {
		return defaultWidths[k]
	}
	w := s.widths.Load()
	if w == nil {
		return defaultWidths[k]
	}
	return w[k]
}

// Negotiated reports whether Set has succeeded.
func (s *IDSizes) Negotiated() bool {
	return s != nil && s.widths.Load() != nil
}

// Set fixes the identifier widths to the ones reported by the VM. Every
// width must be 1, 2, 4 or 8. Calling Set a second time leaves the table
// untouched and returns ErrIDSizesNegotiated.
func (s *IDSizes) Set(r IDSizesReply) error {
	if s == nil {
		return fmt.Errorf("%w: nil identifier size table", ErrInvalidArgument)
	}
	w := idWidths{}
	w[ObjectKind] = int(r.ObjectIDSize)
	w[MethodKind] = int(r.MethodIDSize)
	w[FieldKind] = int(r.FieldIDSize)
	w[FrameKind] = int(r.FrameIDSize)
	w[ReferenceTypeKind] = int(r.ReferenceTypeIDSize)
	for k, n := range w {
		if !validWidth(n) {
			return fmt.Errorf("%w: %v identifier size %d", ErrInvalidArgument, IDKind(k), n)
		}
	}
	if !s.widths.CompareAndSwap(nil, &w) {
		return ErrIDSizesNegotiated
	}
	return nil
}

// Sizes returns the current widths in the order of the IDSizes reply.
func (s *IDSizes) Sizes() IDSizesReply {
	return IDSizesReply{
		FieldIDSize:         int32(s.Width(FieldKind)),
		MethodIDSize:        int32(s.Width(MethodKind)),
		ObjectIDSize:        int32(s.Width(ObjectKind)),
		ReferenceTypeIDSize: int32(s.Width(ReferenceTypeKind)),
		FrameIDSize:         int32(s.Width(FrameKind)),
	}
}

func (s *IDSizes) String() string {
	return fmt.Sprintf("field=%d method=%d object=%d reftype=%d frame=%d",
		s.Width(FieldKind), s.Width(MethodKind), s.Width(ObjectKind), s.Width(ReferenceTypeKind), s.Width(FrameKind))
}

func validWidth(n int) bool {
	switch n {
	case 1, 2, 4, 8:
		return true
	}
	return false
}
