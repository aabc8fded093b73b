package jdwp

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatValue returns v in the form accepted by ParseValue: the tag letter
// followed by the payload, for example "I 42", "Z true" or "L 0x1c".
func FormatValue(v Value) string {
	t := string(rune(v.Tag))
	switch v.Tag {
	case TagVoid:
		return t
	case TagByte:
		return fmt.Sprintf("%s %d", t, v.Byte())
	case TagChar:
		return fmt.Sprintf("%s %d", t, v.Char())
	case TagShort:
		return fmt.Sprintf("%s %d", t, v.Short())
	case TagInt:
		return fmt.Sprintf("%s %d", t, v.Int())
	case TagLong:
		return fmt.Sprintf("%s %d", t, v.Long())
	case TagFloat:
		return t + " " + strconv.FormatFloat(float64(v.Float()), 'g', -1, 32)
	case TagDouble:
		return t + " " + strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case TagBoolean:
		return fmt.Sprintf("%s %v", t, v.Boolean())
	}
	if v.bits == 0 {
		return t + " null"
	}
	return fmt.Sprintf("%s %#x", t, v.bits)
}

// ParseValue parses the textual form produced by FormatValue. Object
// payloads accept any integer literal ParseUint understands with base 0,
// or "null".
func ParseValue(s string) (Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}, fmt.Errorf("%w: empty value", ErrInvalidArgument)
	}
	tag, arg := Tag(s[0]), strings.TrimSpace(s[1:])
	if !tag.Valid() {
		return Value{}, fmt.Errorf("%w: unknown value tag %q", ErrInvalidArgument, s[0])
	}
	bad := func(err error) (Value, error) {
		return Value{}, fmt.Errorf("%w: bad %v value %q: %v", ErrInvalidArgument, tag, arg, err)
	}
	switch tag {
	case TagVoid:
		if arg != "" {
			return bad(fmt.Errorf("void takes no payload"))
		}
		return VoidValue(), nil
	case TagBoolean:
		b, err := strconv.ParseBool(arg)
		if err != nil {
			return bad(err)
		}
		return BooleanValue(b), nil
	case TagByte, TagShort, TagInt, TagLong:
		bits := map[Tag]int{TagByte: 8, TagShort: 16, TagInt: 32, TagLong: 64}[tag]
		n, err := strconv.ParseInt(arg, 0, bits)
		if err != nil {
			return bad(err)
		}
		return Value{tag, uint64(n) & (1<<bits - 1)}, nil
	case TagChar:
		n, err := strconv.ParseUint(arg, 0, 16)
		if err != nil {
			return bad(err)
		}
		return CharValue(uint16(n)), nil
	case TagFloat:
		f, err := strconv.ParseFloat(arg, 32)
		if err != nil {
			return bad(err)
		}
		return FloatValue(float32(f)), nil
	case TagDouble:
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return bad(err)
		}
		return DoubleValue(f), nil
	}
	if arg == "null" {
		return ObjectValue(tag, 0), nil
	}
	n, err := strconv.ParseUint(arg, 0, 64)
	if err != nil {
		return bad(err)
	}
	return ObjectValue(tag, ObjectID(n)), nil
}

func (v Value) MarshalYAML() (interface{}, error) {
	return FormatValue(v), nil
}

func (v *Value) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	p, err := ParseValue(s)
	if err != nil {
		return err
	}
	*v = p
	return nil
}

func (i TaggedObjectID) MarshalYAML() (interface{}, error) {
	if i.Tag == 0 {
		return nil, nil
	}
	return FormatValue(TaggedObjectValue(i)), nil
}

func (i *TaggedObjectID) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var v Value
	if err := unmarshal(&v); err != nil {
		return err
	}
	o, ok := v.TaggedObject()
	if !ok {
		return fmt.Errorf("%w: %v is not an object", ErrInvalidArgument, v.Tag)
	}
	*i = o
	return nil
}

func (t Tag) MarshalYAML() (interface{}, error) {
	return string(rune(t)), nil
}

// UnmarshalYAML accepts either the tag letter or the tag name.
func (t *Tag) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if len(s) == 1 && Tag(s[0]).Valid() {
		*t = Tag(s[0])
		return nil
	}
	for _, c := range "[BCLFDIJSVZstglc" {
		if Tag(c).String() == s {
			*t = Tag(c)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown tag %q", ErrInvalidArgument, s)
}

// modifierYAML is the YAML form of one EventModifier: a mapping with
// exactly one key naming the modifier kind.
type modifierYAML struct {
	Count           *int32                 `yaml:"count,omitempty"`
	Conditional     *int32                 `yaml:"conditional,omitempty"`
	ThreadOnly      *ThreadID              `yaml:"threadOnly,omitempty"`
	ClassOnly       *ReferenceTypeID       `yaml:"classOnly,omitempty"`
	ClassMatch      *string                `yaml:"classMatch,omitempty"`
	ClassExclude    *string                `yaml:"classExclude,omitempty"`
	LocationOnly    *Location              `yaml:"locationOnly,omitempty"`
	ExceptionOnly   *ExceptionOnlyModifier `yaml:"exceptionOnly,omitempty"`
	FieldOnly       *FieldOnlyModifier     `yaml:"fieldOnly,omitempty"`
	Step            *StepModifier          `yaml:"step,omitempty"`
	InstanceOnly    *ObjectID              `yaml:"instanceOnly,omitempty"`
	SourceNameMatch *string                `yaml:"sourceNameMatch,omitempty"`
}

func toModifierYAML(m EventModifier) modifierYAML {
	var y modifierYAML
	switch m := m.(type) {
	case CountModifier:
		y.Count = &m.Count
	case ConditionalModifier:
		y.Conditional = &m.ExprID
	case ThreadOnlyModifier:
		y.ThreadOnly = &m.Thread
	case ClassOnlyModifier:
		y.ClassOnly = &m.Type
	case ClassMatchModifier:
		y.ClassMatch = &m.Pattern
	case ClassExcludeModifier:
		y.ClassExclude = &m.Pattern
	case LocationOnlyModifier:
		y.LocationOnly = &m.Location
	case ExceptionOnlyModifier:
		y.ExceptionOnly = &m
	case FieldOnlyModifier:
		y.FieldOnly = &m
	case StepModifier:
		y.Step = &m
	case InstanceOnlyModifier:
		y.InstanceOnly = &m.Instance
	case SourceNameMatchModifier:
		y.SourceNameMatch = &m.Pattern
	}
	return y
}

func (y modifierYAML) modifier() (EventModifier, error) {
	var out []EventModifier
	if y.Count != nil {
		out = append(out, CountModifier{*y.Count})
	}
	if y.Conditional != nil {
		out = append(out, ConditionalModifier{*y.Conditional})
	}
	if y.ThreadOnly != nil {
		out = append(out, ThreadOnlyModifier{*y.ThreadOnly})
	}
	if y.ClassOnly != nil {
		out = append(out, ClassOnlyModifier{*y.ClassOnly})
	}
	if y.ClassMatch != nil {
		out = append(out, ClassMatchModifier{*y.ClassMatch})
	}
	if y.ClassExclude != nil {
		out = append(out, ClassExcludeModifier{*y.ClassExclude})
	}
	if y.LocationOnly != nil {
		out = append(out, LocationOnlyModifier{*y.LocationOnly})
	}
	if y.ExceptionOnly != nil {
		out = append(out, *y.ExceptionOnly)
	}
	if y.FieldOnly != nil {
		out = append(out, *y.FieldOnly)
	}
	if y.Step != nil {
		out = append(out, *y.Step)
	}
	if y.InstanceOnly != nil {
		out = append(out, InstanceOnlyModifier{*y.InstanceOnly})
	}
	if y.SourceNameMatch != nil {
		out = append(out, SourceNameMatchModifier{*y.SourceNameMatch})
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("%w: a modifier needs exactly one kind, got %d", ErrInvalidArgument, len(out))
	}
	return out[0], nil
}

type eventRequestSetYAML struct {
	Kind          EventKind
	SuspendPolicy SuspendPolicy
	Modifiers     []modifierYAML `yaml:",omitempty"`
}

func (m EventRequestSet) MarshalYAML() (interface{}, error) {
	y := eventRequestSetYAML{Kind: m.Kind, SuspendPolicy: m.SuspendPolicy}
	for _, mod := range m.Modifiers {
		y.Modifiers = append(y.Modifiers, toModifierYAML(mod))
	}
	return y, nil
}

func (m *EventRequestSet) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var y eventRequestSetYAML
	if err := unmarshal(&y); err != nil {
		return err
	}
	m.Kind, m.SuspendPolicy, m.Modifiers = y.Kind, y.SuspendPolicy, nil
	for _, my := range y.Modifiers {
		mod, err := my.modifier()
		if err != nil {
			return err
		}
		m.Modifiers = append(m.Modifiers, mod)
	}
	return nil
}

// MarshalYAML writes every event as a single-key mapping from its kind to
// its fields.
func (m EventComposite) MarshalYAML() (interface{}, error) {
	events := make([]map[string]Event, 0, len(m.Events))
	for _, e := range m.Events {
		events = append(events, map[string]Event{e.Kind().String(): e})
	}
	return struct {
		SuspendPolicy SuspendPolicy
		Events        []map[string]Event
	}{m.SuspendPolicy, events}, nil
}
