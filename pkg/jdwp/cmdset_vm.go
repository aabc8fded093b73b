package jdwp

var (
	cmdVirtualMachineVersion               = Command{CommandSetVirtualMachine, 1}
	cmdVirtualMachineClassesBySignature    = Command{CommandSetVirtualMachine, 2}
	cmdVirtualMachineAllClasses            = Command{CommandSetVirtualMachine, 3}
	cmdVirtualMachineAllThreads            = Command{CommandSetVirtualMachine, 4}
	cmdVirtualMachineTopLevelThreadGroups  = Command{CommandSetVirtualMachine, 5}
	cmdVirtualMachineDispose               = Command{CommandSetVirtualMachine, 6}
	cmdVirtualMachineIDSizes               = Command{CommandSetVirtualMachine, 7}
	cmdVirtualMachineSuspend               = Command{CommandSetVirtualMachine, 8}
	cmdVirtualMachineResume                = Command{CommandSetVirtualMachine, 9}
	cmdVirtualMachineExit                  = Command{CommandSetVirtualMachine, 10}
	cmdVirtualMachineCreateString          = Command{CommandSetVirtualMachine, 11}
	cmdVirtualMachineCapabilities          = Command{CommandSetVirtualMachine, 12}
	cmdVirtualMachineClassPaths            = Command{CommandSetVirtualMachine, 13}
	cmdVirtualMachineDisposeObjects        = Command{CommandSetVirtualMachine, 14}
	cmdVirtualMachineHoldEvents            = Command{CommandSetVirtualMachine, 15}
	cmdVirtualMachineReleaseEvents         = Command{CommandSetVirtualMachine, 16}
	cmdVirtualMachineCapabilitiesNew       = Command{CommandSetVirtualMachine, 17}
	cmdVirtualMachineRedefineClasses       = Command{CommandSetVirtualMachine, 18}
	cmdVirtualMachineSetDefaultStratum     = Command{CommandSetVirtualMachine, 19}
	cmdVirtualMachineAllClassesWithGeneric = Command{CommandSetVirtualMachine, 20}
	cmdVirtualMachineInstanceCounts        = Command{CommandSetVirtualMachine, 21}
)

var virtualMachineCommands = []commandSpec{
	{"Version", func() Request { return &VirtualMachineVersion{} }, func() Reply { return &VirtualMachineVersionReply{} }},
	{"ClassesBySignature", func() Request { return &VirtualMachineClassesBySignature{} }, func() Reply { return &VirtualMachineClassesBySignatureReply{} }},
	{"AllClasses", func() Request { return &VirtualMachineAllClasses{} }, func() Reply { return &VirtualMachineAllClassesReply{} }},
	{"AllThreads", func() Request { return &VirtualMachineAllThreads{} }, func() Reply { return &VirtualMachineAllThreadsReply{} }},
	{"TopLevelThreadGroups", func() Request { return &VirtualMachineTopLevelThreadGroups{} }, func() Reply { return &VirtualMachineTopLevelThreadGroupsReply{} }},
	{"Dispose", func() Request { return &VirtualMachineDispose{} }, newEmptyReply},
	{"IDSizes", func() Request { return &VirtualMachineIDSizes{} }, func() Reply { return &IDSizesReply{} }},
	{"Suspend", func() Request { return &VirtualMachineSuspend{} }, newEmptyReply},
	{"Resume", func() Request { return &VirtualMachineResume{} }, newEmptyReply},
	{"Exit", func() Request { return &VirtualMachineExit{} }, newEmptyReply},
	{"CreateString", func() Request { return &VirtualMachineCreateString{} }, func() Reply { return &VirtualMachineCreateStringReply{} }},
	{"Capabilities", func() Request { return &VirtualMachineCapabilities{} }, func() Reply { return &VirtualMachineCapabilitiesReply{} }},
	{"ClassPaths", func() Request { return &VirtualMachineClassPaths{} }, func() Reply { return &VirtualMachineClassPathsReply{} }},
	{"DisposeObjects", func() Request { return &VirtualMachineDisposeObjects{} }, newEmptyReply},
	{"HoldEvents", func() Request { return &VirtualMachineHoldEvents{} }, newEmptyReply},
	{"ReleaseEvents", func() Request { return &VirtualMachineReleaseEvents{} }, newEmptyReply},
	{"CapabilitiesNew", func() Request { return &VirtualMachineCapabilitiesNew{} }, func() Reply { return &VirtualMachineCapabilitiesNewReply{} }},
	{"RedefineClasses", func() Request { return &VirtualMachineRedefineClasses{} }, newEmptyReply},
	{"SetDefaultStratum", func() Request { return &VirtualMachineSetDefaultStratum{} }, newEmptyReply},
	{"AllClassesWithGeneric", func() Request { return &VirtualMachineAllClassesWithGeneric{} }, func() Reply { return &VirtualMachineAllClassesWithGenericReply{} }},
	{"InstanceCounts", func() Request { return &VirtualMachineInstanceCounts{} }, func() Reply { return &VirtualMachineInstanceCountsReply{} }},
}

// VirtualMachineVersion requests the JDWP version implemented by the VM.
type VirtualMachineVersion struct{}

func (VirtualMachineVersion) Command() Command { return cmdVirtualMachineVersion }
func (*VirtualMachineVersion) encode(*Writer)  {}
func (*VirtualMachineVersion) decode(*Reader)  {}

// VirtualMachineVersionReply describes the JDWP version.
type VirtualMachineVersionReply struct {
	Description string // Text information on the VM version
	JDWPMajor   int32  // Major JDWP Version number
	JDWPMinor   int32  // Minor JDWP Version number
	Version     string // Target VM JRE version, as in the java.version property
	Name        string // Target VM name, as in the java.vm.name property
}

func (m *VirtualMachineVersionReply) encode(w *Writer) {
	w.String(m.Description)
	w.Int32(m.JDWPMajor)
	w.Int32(m.JDWPMinor)
	w.String(m.Version)
	w.String(m.Name)
}

func (m *VirtualMachineVersionReply) decode(r *Reader) {
	m.Description = r.ReadString()
	m.JDWPMajor = r.Int32()
	m.JDWPMinor = r.Int32()
	m.Version = r.ReadString()
	m.Name = r.ReadString()
}

// VirtualMachineClassesBySignature requests the loaded reference types
// matching a JNI signature.
type VirtualMachineClassesBySignature struct {
	Signature string
}

func (VirtualMachineClassesBySignature) Command() Command {
	return cmdVirtualMachineClassesBySignature
}
func (m *VirtualMachineClassesBySignature) encode(w *Writer) { w.String(m.Signature) }
func (m *VirtualMachineClassesBySignature) decode(r *Reader) { m.Signature = r.ReadString() }

// VirtualMachineClassesBySignatureReply lists the matching types. The reply
// does not repeat the signature so it is left empty in each ClassInfo.
type VirtualMachineClassesBySignatureReply struct {
	Classes []ClassInfo
}

func (m *VirtualMachineClassesBySignatureReply) encode(w *Writer) {
	writeSlice(w, m.Classes, func(c ClassInfo) { w.classInfo(c, false, false) })
}

func (m *VirtualMachineClassesBySignatureReply) decode(r *Reader) {
	m.Classes = readSlice(r, func() ClassInfo { return r.classInfo(false, false) })
}

// VirtualMachineAllClasses requests every loaded reference type.
type VirtualMachineAllClasses struct{}

func (VirtualMachineAllClasses) Command() Command { return cmdVirtualMachineAllClasses }
func (*VirtualMachineAllClasses) encode(*Writer)  {}
func (*VirtualMachineAllClasses) decode(*Reader)  {}

type VirtualMachineAllClassesReply struct {
	Classes []ClassInfo
}

func (m *VirtualMachineAllClassesReply) encode(w *Writer) {
	writeSlice(w, m.Classes, func(c ClassInfo) { w.classInfo(c, true, false) })
}

func (m *VirtualMachineAllClassesReply) decode(r *Reader) {
	m.Classes = readSlice(r, func() ClassInfo { return r.classInfo(true, false) })
}

// VirtualMachineAllThreads requests every running thread.
type VirtualMachineAllThreads struct{}

func (VirtualMachineAllThreads) Command() Command { return cmdVirtualMachineAllThreads }
func (*VirtualMachineAllThreads) encode(*Writer)  {}
func (*VirtualMachineAllThreads) decode(*Reader)  {}

type VirtualMachineAllThreadsReply struct {
	Threads []ThreadID
}

func (m *VirtualMachineAllThreadsReply) encode(w *Writer) {
	writeSlice(w, m.Threads, func(t ThreadID) { w.ObjectID(t) })
}

func (m *VirtualMachineAllThreadsReply) decode(r *Reader) { m.Threads = readSlice(r, r.ThreadID) }

// VirtualMachineTopLevelThreadGroups requests the thread groups without a
// parent.
type VirtualMachineTopLevelThreadGroups struct{}

func (VirtualMachineTopLevelThreadGroups) Command() Command {
	return cmdVirtualMachineTopLevelThreadGroups
}
func (*VirtualMachineTopLevelThreadGroups) encode(*Writer) {}
func (*VirtualMachineTopLevelThreadGroups) decode(*Reader) {}

type VirtualMachineTopLevelThreadGroupsReply struct {
	Groups []ThreadGroupID
}

func (m *VirtualMachineTopLevelThreadGroupsReply) encode(w *Writer) {
	writeSlice(w, m.Groups, func(g ThreadGroupID) { w.ObjectID(g) })
}

func (m *VirtualMachineTopLevelThreadGroupsReply) decode(r *Reader) {
	m.Groups = readSlice(r, r.ThreadGroupID)
}

// VirtualMachineDispose invalidates this debugger connection.
type VirtualMachineDispose struct{}

func (VirtualMachineDispose) Command() Command { return cmdVirtualMachineDispose }
func (*VirtualMachineDispose) encode(*Writer)  {}
func (*VirtualMachineDispose) decode(*Reader)  {}

// VirtualMachineIDSizes requests the identifier widths used by the VM.
// Decoding its reply through a Codec fixes the widths for the session.
type VirtualMachineIDSizes struct{}

func (VirtualMachineIDSizes) Command() Command { return cmdVirtualMachineIDSizes }
func (*VirtualMachineIDSizes) encode(*Writer)  {}
func (*VirtualMachineIDSizes) decode(*Reader)  {}

// IDSizesReply describes the sizes of all the variably sized data types.
type IDSizesReply struct {
	FieldIDSize         int32 // FieldID size in bytes
	MethodIDSize        int32 // MethodID size in bytes
	ObjectIDSize        int32 // ObjectID size in bytes
	ReferenceTypeIDSize int32 // ReferenceTypeID size in bytes
	FrameIDSize         int32 // FrameID size in bytes
}

func (m *IDSizesReply) encode(w *Writer) {
	w.Int32(m.FieldIDSize)
	w.Int32(m.MethodIDSize)
	w.Int32(m.ObjectIDSize)
	w.Int32(m.ReferenceTypeIDSize)
	w.Int32(m.FrameIDSize)
}

func (m *IDSizesReply) decode(r *Reader) {
	m.FieldIDSize = r.Int32()
	m.MethodIDSize = r.Int32()
	m.ObjectIDSize = r.Int32()
	m.ReferenceTypeIDSize = r.Int32()
	m.FrameIDSize = r.Int32()
}

// VirtualMachineSuspend suspends every thread.
type VirtualMachineSuspend struct{}

func (VirtualMachineSuspend) Command() Command { return cmdVirtualMachineSuspend }
func (*VirtualMachineSuspend) encode(*Writer)  {}
func (*VirtualMachineSuspend) decode(*Reader)  {}

// VirtualMachineResume resumes every thread.
type VirtualMachineResume struct{}

func (VirtualMachineResume) Command() Command { return cmdVirtualMachineResume }
func (*VirtualMachineResume) encode(*Writer)  {}
func (*VirtualMachineResume) decode(*Reader)  {}

// VirtualMachineExit terminates the VM with the given exit code.
type VirtualMachineExit struct {
	ExitCode int32
}

func (VirtualMachineExit) Command() Command  { return cmdVirtualMachineExit }
func (m *VirtualMachineExit) encode(w *Writer) { w.Int32(m.ExitCode) }
func (m *VirtualMachineExit) decode(r *Reader) { m.ExitCode = r.Int32() }

// VirtualMachineCreateString creates a string object in the VM.
type VirtualMachineCreateString struct {
	UTF string
}

func (VirtualMachineCreateString) Command() Command  { return cmdVirtualMachineCreateString }
func (m *VirtualMachineCreateString) encode(w *Writer) { w.String(m.UTF) }
func (m *VirtualMachineCreateString) decode(r *Reader) { m.UTF = r.ReadString() }

type VirtualMachineCreateStringReply struct {
	String StringID
}

func (m *VirtualMachineCreateStringReply) encode(w *Writer) { w.ObjectID(m.String) }
func (m *VirtualMachineCreateStringReply) decode(r *Reader) { m.String = r.StringID() }

// VirtualMachineCapabilities requests the original seven capabilities.
type VirtualMachineCapabilities struct{}

func (VirtualMachineCapabilities) Command() Command { return cmdVirtualMachineCapabilities }
func (*VirtualMachineCapabilities) encode(*Writer)  {}
func (*VirtualMachineCapabilities) decode(*Reader)  {}

// Capabilities are the capabilities reported by VirtualMachine.Capabilities
// and the leading part of VirtualMachine.CapabilitiesNew.
type Capabilities struct {
	CanWatchFieldModification     bool
	CanWatchFieldAccess           bool
	CanGetBytecodes               bool
	CanGetSyntheticAttribute      bool
	CanGetOwnedMonitorInfo        bool
	CanGetCurrentContendedMonitor bool
	CanGetMonitorInfo             bool
}

func (w *Writer) capabilities(c Capabilities) {
	w.Bool(c.CanWatchFieldModification)
	w.Bool(c.CanWatchFieldAccess)
	w.Bool(c.CanGetBytecodes)
	w.Bool(c.CanGetSyntheticAttribute)
	w.Bool(c.CanGetOwnedMonitorInfo)
	w.Bool(c.CanGetCurrentContendedMonitor)
	w.Bool(c.CanGetMonitorInfo)
}

func (r *Reader) capabilities() Capabilities {
	return Capabilities{
		CanWatchFieldModification:     r.Bool(),
		CanWatchFieldAccess:           r.Bool(),
		CanGetBytecodes:               r.Bool(),
		CanGetSyntheticAttribute:      r.Bool(),
		CanGetOwnedMonitorInfo:        r.Bool(),
		CanGetCurrentContendedMonitor: r.Bool(),
		CanGetMonitorInfo:             r.Bool(),
	}
}

type VirtualMachineCapabilitiesReply struct {
	Capabilities `yaml:",inline"`
}

func (m *VirtualMachineCapabilitiesReply) encode(w *Writer) { w.capabilities(m.Capabilities) }
func (m *VirtualMachineCapabilitiesReply) decode(r *Reader) { m.Capabilities = r.capabilities() }

// VirtualMachineClassPaths requests the classpath and bootclasspath.
type VirtualMachineClassPaths struct{}

func (VirtualMachineClassPaths) Command() Command { return cmdVirtualMachineClassPaths }
func (*VirtualMachineClassPaths) encode(*Writer)  {}
func (*VirtualMachineClassPaths) decode(*Reader)  {}

type VirtualMachineClassPathsReply struct {
	BaseDir        string
	ClassPaths     []string
	BootClassPaths []string
}

func (m *VirtualMachineClassPathsReply) encode(w *Writer) {
	w.String(m.BaseDir)
	w.strings(m.ClassPaths)
	w.strings(m.BootClassPaths)
}

func (m *VirtualMachineClassPathsReply) decode(r *Reader) {
	m.BaseDir = r.ReadString()
	m.ClassPaths = r.strings()
	m.BootClassPaths = r.strings()
}

// ObjectRefCount is an object whose reference count should be decreased.
type ObjectRefCount struct {
	Object   ObjectID
	RefCount int32
}

// VirtualMachineDisposeObjects releases a list of object IDs.
type VirtualMachineDisposeObjects struct {
	Requests []ObjectRefCount
}

func (VirtualMachineDisposeObjects) Command() Command { return cmdVirtualMachineDisposeObjects }

func (m *VirtualMachineDisposeObjects) encode(w *Writer) {
	writeSlice(w, m.Requests, func(o ObjectRefCount) {
		w.ObjectID(o.Object)
		w.Int32(o.RefCount)
	})
}

func (m *VirtualMachineDisposeObjects) decode(r *Reader) {
	m.Requests = readSlice(r, func() ObjectRefCount {
		return ObjectRefCount{Object: r.ObjectID(), RefCount: r.Int32()}
	})
}

// VirtualMachineHoldEvents tells the VM to stop sending events.
type VirtualMachineHoldEvents struct{}

func (VirtualMachineHoldEvents) Command() Command { return cmdVirtualMachineHoldEvents }
func (*VirtualMachineHoldEvents) encode(*Writer)  {}
func (*VirtualMachineHoldEvents) decode(*Reader)  {}

// VirtualMachineReleaseEvents tells the VM to resume sending events.
type VirtualMachineReleaseEvents struct{}

func (VirtualMachineReleaseEvents) Command() Command { return cmdVirtualMachineReleaseEvents }
func (*VirtualMachineReleaseEvents) encode(*Writer)  {}
func (*VirtualMachineReleaseEvents) decode(*Reader)  {}

// VirtualMachineCapabilitiesNew requests the full capability set.
type VirtualMachineCapabilitiesNew struct{}

func (VirtualMachineCapabilitiesNew) Command() Command { return cmdVirtualMachineCapabilitiesNew }
func (*VirtualMachineCapabilitiesNew) encode(*Writer)  {}
func (*VirtualMachineCapabilitiesNew) decode(*Reader)  {}

// VirtualMachineCapabilitiesNewReply extends Capabilities with the
// capabilities added in later protocol versions. The reply always carries
// eleven reserved flags after the named ones; they are kept so that the
// reply re-encodes identically.
type VirtualMachineCapabilitiesNewReply struct {
	Capabilities `yaml:",inline"`

	CanRedefineClasses               bool
	CanAddMethod                     bool
	CanUnrestrictedlyRedefineClasses bool
	CanPopFrames                     bool
	CanUseInstanceFilters            bool
	CanGetSourceDebugExtension       bool
	CanRequestVMDeathEvent           bool
	CanSetDefaultStratum             bool
	CanGetInstanceInfo               bool
	CanRequestMonitorEvents          bool
	CanGetMonitorFrameInfo           bool
	CanUseSourceNameFilters          bool
	CanGetConstantPool               bool
	CanForceEarlyReturn              bool
	Reserved                         [11]bool
}

func (m *VirtualMachineCapabilitiesNewReply) encode(w *Writer) {
	w.capabilities(m.Capabilities)
	for _, b := range m.newFlags() {
		w.Bool(*b)
	}
}

func (m *VirtualMachineCapabilitiesNewReply) decode(r *Reader) {
	m.Capabilities = r.capabilities()
	for _, b := range m.newFlags() {
		*b = r.Bool()
	}
}

// newFlags returns the flags following the shared prefix, in wire order.
func (m *VirtualMachineCapabilitiesNewReply) newFlags() []*bool {
	f := []*bool{
		&m.CanRedefineClasses,
		&m.CanAddMethod,
		&m.CanUnrestrictedlyRedefineClasses,
		&m.CanPopFrames,
		&m.CanUseInstanceFilters,
		&m.CanGetSourceDebugExtension,
		&m.CanRequestVMDeathEvent,
		&m.CanSetDefaultStratum,
		&m.CanGetInstanceInfo,
		&m.CanRequestMonitorEvents,
		&m.CanGetMonitorFrameInfo,
		&m.CanUseSourceNameFilters,
		&m.CanGetConstantPool,
		&m.CanForceEarlyReturn,
	}
	for i := range m.Reserved {
		f = append(f, &m.Reserved[i])
	}
	return f
}

// ClassDefinition is the new class file of a redefined type.
type ClassDefinition struct {
	Type      ReferenceTypeID
	ClassFile []byte
}

// VirtualMachineRedefineClasses installs new class definitions.
type VirtualMachineRedefineClasses struct {
	Classes []ClassDefinition
}

func (VirtualMachineRedefineClasses) Command() Command { return cmdVirtualMachineRedefineClasses }

func (m *VirtualMachineRedefineClasses) encode(w *Writer) {
	writeSlice(w, m.Classes, func(c ClassDefinition) {
		w.ReferenceTypeID(c.Type)
		w.ByteArray(c.ClassFile)
	})
}

func (m *VirtualMachineRedefineClasses) decode(r *Reader) {
	m.Classes = readSlice(r, func() ClassDefinition {
		return ClassDefinition{Type: r.ReferenceTypeID(), ClassFile: r.ByteArray()}
	})
}

// VirtualMachineSetDefaultStratum sets the default stratum.
type VirtualMachineSetDefaultStratum struct {
	StratumID string
}

func (VirtualMachineSetDefaultStratum) Command() Command  { return cmdVirtualMachineSetDefaultStratum }
func (m *VirtualMachineSetDefaultStratum) encode(w *Writer) { w.String(m.StratumID) }
func (m *VirtualMachineSetDefaultStratum) decode(r *Reader) { m.StratumID = r.ReadString() }

// VirtualMachineAllClassesWithGeneric is VirtualMachineAllClasses with
// generic signatures.
type VirtualMachineAllClassesWithGeneric struct{}

func (VirtualMachineAllClassesWithGeneric) Command() Command {
	return cmdVirtualMachineAllClassesWithGeneric
}
func (*VirtualMachineAllClassesWithGeneric) encode(*Writer) {}
func (*VirtualMachineAllClassesWithGeneric) decode(*Reader) {}

type VirtualMachineAllClassesWithGenericReply struct {
	Classes []ClassInfo
}

func (m *VirtualMachineAllClassesWithGenericReply) encode(w *Writer) {
	writeSlice(w, m.Classes, func(c ClassInfo) { w.classInfo(c, true, true) })
}

func (m *VirtualMachineAllClassesWithGenericReply) decode(r *Reader) {
	m.Classes = readSlice(r, func() ClassInfo { return r.classInfo(true, true) })
}

// VirtualMachineInstanceCounts requests the number of reachable instances
// of each reference type.
type VirtualMachineInstanceCounts struct {
	Types []ReferenceTypeID
}

func (VirtualMachineInstanceCounts) Command() Command { return cmdVirtualMachineInstanceCounts }

func (m *VirtualMachineInstanceCounts) encode(w *Writer) {
	writeSlice(w, m.Types, func(t ReferenceTypeID) { w.ReferenceTypeID(t) })
}

func (m *VirtualMachineInstanceCounts) decode(r *Reader) {
	m.Types = readSlice(r, r.ReferenceTypeID)
}

type VirtualMachineInstanceCountsReply struct {
	Counts []int64
}

func (m *VirtualMachineInstanceCountsReply) encode(w *Writer) { writeSlice(w, m.Counts, w.Int64) }
func (m *VirtualMachineInstanceCountsReply) decode(r *Reader) { m.Counts = readSlice(r, r.Int64) }
