package jdwp

var (
	cmdMethodLineTable                = Command{CommandSetMethod, 1}
	cmdMethodVariableTable            = Command{CommandSetMethod, 2}
	cmdMethodBytecodes                = Command{CommandSetMethod, 3}
	cmdMethodIsObsolete               = Command{CommandSetMethod, 4}
	cmdMethodVariableTableWithGeneric = Command{CommandSetMethod, 5}
)

var methodCommands = []commandSpec{
	{"LineTable", func() Request { return &MethodLineTable{} }, func() Reply { return &MethodLineTableReply{} }},
	{"VariableTable", func() Request { return &MethodVariableTable{} }, func() Reply { return &MethodVariableTableReply{} }},
	{"Bytecodes", func() Request { return &MethodBytecodes{} }, func() Reply { return &MethodBytecodesReply{} }},
	{"IsObsolete", func() Request { return &MethodIsObsolete{} }, func() Reply { return &MethodIsObsoleteReply{} }},
	{"VariableTableWithGeneric", func() Request { return &MethodVariableTableWithGeneric{} }, func() Reply { return &MethodVariableTableWithGenericReply{} }},
}

// MethodRef names a method of a reference type. Every Method command takes
// one as its only argument.
type MethodRef struct {
	Type   ReferenceTypeID
	Method MethodID
}

func (m *MethodRef) encode(w *Writer) {
	w.ReferenceTypeID(m.Type)
	w.MethodID(m.Method)
}

func (m *MethodRef) decode(r *Reader) {
	m.Type = r.ReferenceTypeID()
	m.Method = r.MethodID()
}

// MethodLineTable requests the line number table of a method.
type MethodLineTable struct {
	MethodRef `yaml:",inline"`
}

func (MethodLineTable) Command() Command { return cmdMethodLineTable }

// MethodLineTableReply maps code indices to source lines. Start and End are
// the lowest and highest code index of the method, or -1 for a native
// method.
type MethodLineTableReply struct {
	Start int64
	End   int64
	Lines []LineTableEntry
}

func (m *MethodLineTableReply) encode(w *Writer) {
	w.Int64(m.Start)
	w.Int64(m.End)
	writeSlice(w, m.Lines, func(l LineTableEntry) {
		w.Uint64(l.CodeIndex)
		w.Int32(l.LineNumber)
	})
}

func (m *MethodLineTableReply) decode(r *Reader) {
	m.Start = r.Int64()
	m.End = r.Int64()
	m.Lines = readSlice(r, func() LineTableEntry {
		return LineTableEntry{CodeIndex: r.Uint64(), LineNumber: r.Int32()}
	})
}

// MethodVariableTable requests the local variables of a method.
type MethodVariableTable struct {
	MethodRef `yaml:",inline"`
}

func (MethodVariableTable) Command() Command { return cmdMethodVariableTable }

// MethodVariableTableReply lists the variables of a method. ArgCount is
// the number of words in the frame used by arguments.
type MethodVariableTableReply struct {
	ArgCount int32
	Slots    []Variable
}

func (m *MethodVariableTableReply) encode(w *Writer) { w.variableTable(m.ArgCount, m.Slots, false) }

func (m *MethodVariableTableReply) decode(r *Reader) {
	m.ArgCount, m.Slots = r.variableTable(false)
}

func (w *Writer) variableTable(argCount int32, slots []Variable, generic bool) {
	w.Int32(argCount)
	writeSlice(w, slots, func(v Variable) { w.variable(v, generic) })
}

func (r *Reader) variableTable(generic bool) (int32, []Variable) {
	argCount := r.Int32()
	return argCount, readSlice(r, func() Variable { return r.variable(generic) })
}

// MethodBytecodes requests the bytecodes of a method.
type MethodBytecodes struct {
	MethodRef `yaml:",inline"`
}

func (MethodBytecodes) Command() Command { return cmdMethodBytecodes }

type MethodBytecodesReply struct {
	Bytecodes []byte
}

func (m *MethodBytecodesReply) encode(w *Writer) { w.ByteArray(m.Bytecodes) }
func (m *MethodBytecodesReply) decode(r *Reader) { m.Bytecodes = r.ByteArray() }

// MethodIsObsolete asks whether a method was replaced by a redefinition.
type MethodIsObsolete struct {
	MethodRef `yaml:",inline"`
}

func (MethodIsObsolete) Command() Command { return cmdMethodIsObsolete }

type MethodIsObsoleteReply struct {
	IsObsolete bool
}

func (m *MethodIsObsoleteReply) encode(w *Writer) { w.Bool(m.IsObsolete) }
func (m *MethodIsObsoleteReply) decode(r *Reader) { m.IsObsolete = r.Bool() }

// MethodVariableTableWithGeneric is MethodVariableTable with generic
// signatures.
type MethodVariableTableWithGeneric struct {
	MethodRef `yaml:",inline"`
}

func (MethodVariableTableWithGeneric) Command() Command { return cmdMethodVariableTableWithGeneric }

type MethodVariableTableWithGenericReply struct {
	ArgCount int32
	Slots    []Variable
}

func (m *MethodVariableTableWithGenericReply) encode(w *Writer) {
	w.variableTable(m.ArgCount, m.Slots, true)
}

func (m *MethodVariableTableWithGenericReply) decode(r *Reader) {
	m.ArgCount, m.Slots = r.variableTable(true)
}
