package jdwp

var (
	cmdThreadReferenceName                        = Command{CommandSetThreadReference, 1}
	cmdThreadReferenceSuspend                     = Command{CommandSetThreadReference, 2}
	cmdThreadReferenceResume                      = Command{CommandSetThreadReference, 3}
	cmdThreadReferenceStatus                      = Command{CommandSetThreadReference, 4}
	cmdThreadReferenceThreadGroup                 = Command{CommandSetThreadReference, 5}
	cmdThreadReferenceFrames                      = Command{CommandSetThreadReference, 6}
	cmdThreadReferenceFrameCount                  = Command{CommandSetThreadReference, 7}
	cmdThreadReferenceOwnedMonitors               = Command{CommandSetThreadReference, 8}
	cmdThreadReferenceCurrentContendedMonitor     = Command{CommandSetThreadReference, 9}
	cmdThreadReferenceStop                        = Command{CommandSetThreadReference, 10}
	cmdThreadReferenceInterrupt                   = Command{CommandSetThreadReference, 11}
	cmdThreadReferenceSuspendCount                = Command{CommandSetThreadReference, 12}
	cmdThreadReferenceOwnedMonitorsStackDepthInfo = Command{CommandSetThreadReference, 13}
	cmdThreadReferenceForceEarlyReturn            = Command{CommandSetThreadReference, 14}

	cmdThreadGroupReferenceName     = Command{CommandSetThreadGroupReference, 1}
	cmdThreadGroupReferenceParent   = Command{CommandSetThreadGroupReference, 2}
	cmdThreadGroupReferenceChildren = Command{CommandSetThreadGroupReference, 3}
)

var threadReferenceCommands = []commandSpec{
	{"Name", func() Request { return &ThreadReferenceName{} }, func() Reply { return &ThreadReferenceNameReply{} }},
	{"Suspend", func() Request { return &ThreadReferenceSuspend{} }, newEmptyReply},
	{"Resume", func() Request { return &ThreadReferenceResume{} }, newEmptyReply},
	{"Status", func() Request { return &ThreadReferenceStatus{} }, func() Reply { return &ThreadReferenceStatusReply{} }},
	{"ThreadGroup", func() Request { return &ThreadReferenceThreadGroup{} }, func() Reply { return &ThreadReferenceThreadGroupReply{} }},
	{"Frames", func() Request { return &ThreadReferenceFrames{} }, func() Reply { return &ThreadReferenceFramesReply{} }},
	{"FrameCount", func() Request { return &ThreadReferenceFrameCount{} }, func() Reply { return &ThreadReferenceFrameCountReply{} }},
	{"OwnedMonitors", func() Request { return &ThreadReferenceOwnedMonitors{} }, func() Reply { return &ThreadReferenceOwnedMonitorsReply{} }},
	{"CurrentContendedMonitor", func() Request { return &ThreadReferenceCurrentContendedMonitor{} }, func() Reply { return &ThreadReferenceCurrentContendedMonitorReply{} }},
	{"Stop", func() Request { return &ThreadReferenceStop{} }, newEmptyReply},
	{"Interrupt", func() Request { return &ThreadReferenceInterrupt{} }, newEmptyReply},
	{"SuspendCount", func() Request { return &ThreadReferenceSuspendCount{} }, func() Reply { return &ThreadReferenceSuspendCountReply{} }},
	{"OwnedMonitorsStackDepthInfo", func() Request { return &ThreadReferenceOwnedMonitorsStackDepthInfo{} }, func() Reply { return &ThreadReferenceOwnedMonitorsStackDepthInfoReply{} }},
	{"ForceEarlyReturn", func() Request { return &ThreadReferenceForceEarlyReturn{} }, newEmptyReply},
}

var threadGroupReferenceCommands = []commandSpec{
	{"Name", func() Request { return &ThreadGroupReferenceName{} }, func() Reply { return &ThreadGroupReferenceNameReply{} }},
	{"Parent", func() Request { return &ThreadGroupReferenceParent{} }, func() Reply { return &ThreadGroupReferenceParentReply{} }},
	{"Children", func() Request { return &ThreadGroupReferenceChildren{} }, func() Reply { return &ThreadGroupReferenceChildrenReply{} }},
}

// ThreadRef is the body of the commands whose only argument is a thread.
type ThreadRef struct {
	Thread ThreadID
}

func (m *ThreadRef) encode(w *Writer) { w.ObjectID(m.Thread) }
func (m *ThreadRef) decode(r *Reader) { m.Thread = r.ThreadID() }

// ThreadReferenceName requests the name of a thread.
type ThreadReferenceName struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceName) Command() Command { return cmdThreadReferenceName }

type ThreadReferenceNameReply struct {
	Name string
}

func (m *ThreadReferenceNameReply) encode(w *Writer) { w.String(m.Name) }
func (m *ThreadReferenceNameReply) decode(r *Reader) { m.Name = r.ReadString() }

// ThreadReferenceSuspend increments the suspend count of a thread.
type ThreadReferenceSuspend struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceSuspend) Command() Command { return cmdThreadReferenceSuspend }

// ThreadReferenceResume decrements the suspend count of a thread.
type ThreadReferenceResume struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceResume) Command() Command { return cmdThreadReferenceResume }

// ThreadReferenceStatus requests the status of a thread.
type ThreadReferenceStatus struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceStatus) Command() Command { return cmdThreadReferenceStatus }

type ThreadReferenceStatusReply struct {
	ThreadStatus  ThreadStatus
	SuspendStatus SuspendStatus
}

func (m *ThreadReferenceStatusReply) encode(w *Writer) {
	w.Int32(int32(m.ThreadStatus))
	w.Int32(int32(m.SuspendStatus))
}

func (m *ThreadReferenceStatusReply) decode(r *Reader) {
	m.ThreadStatus = ThreadStatus(r.Int32())
	m.SuspendStatus = SuspendStatus(r.Int32())
}

// ThreadReferenceThreadGroup requests the group of a thread.
type ThreadReferenceThreadGroup struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceThreadGroup) Command() Command { return cmdThreadReferenceThreadGroup }

type ThreadReferenceThreadGroupReply struct {
	Group ThreadGroupID
}

func (m *ThreadReferenceThreadGroupReply) encode(w *Writer) { w.ObjectID(m.Group) }
func (m *ThreadReferenceThreadGroupReply) decode(r *Reader) { m.Group = r.ThreadGroupID() }

// ThreadReferenceFrames requests Length frames of a suspended thread
// starting at StartFrame, the current frame being 0. A Length of -1 asks
// for every remaining frame.
type ThreadReferenceFrames struct {
	Thread     ThreadID
	StartFrame int32
	Length     int32
}

func (ThreadReferenceFrames) Command() Command { return cmdThreadReferenceFrames }

func (m *ThreadReferenceFrames) encode(w *Writer) {
	w.ObjectID(m.Thread)
	w.Int32(m.StartFrame)
	w.Int32(m.Length)
}

func (m *ThreadReferenceFrames) decode(r *Reader) {
	m.Thread = r.ThreadID()
	m.StartFrame = r.Int32()
	m.Length = r.Int32()
}

type ThreadReferenceFramesReply struct {
	Frames []FrameInfo
}

func (m *ThreadReferenceFramesReply) encode(w *Writer) {
	writeSlice(w, m.Frames, func(f FrameInfo) {
		w.FrameID(f.Frame)
		w.Location(f.Location)
	})
}

func (m *ThreadReferenceFramesReply) decode(r *Reader) {
	m.Frames = readSlice(r, func() FrameInfo {
		return FrameInfo{Frame: r.FrameID(), Location: r.Location()}
	})
}

// ThreadReferenceFrameCount requests the stack depth of a suspended thread.
type ThreadReferenceFrameCount struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceFrameCount) Command() Command { return cmdThreadReferenceFrameCount }

type ThreadReferenceFrameCountReply struct {
	FrameCount int32
}

func (m *ThreadReferenceFrameCountReply) encode(w *Writer) { w.Int32(m.FrameCount) }
func (m *ThreadReferenceFrameCountReply) decode(r *Reader) { m.FrameCount = r.Int32() }

// ThreadReferenceOwnedMonitors requests the monitors owned by a thread.
type ThreadReferenceOwnedMonitors struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceOwnedMonitors) Command() Command { return cmdThreadReferenceOwnedMonitors }

type ThreadReferenceOwnedMonitorsReply struct {
	Owned []TaggedObjectID
}

func (m *ThreadReferenceOwnedMonitorsReply) encode(w *Writer) {
	writeSlice(w, m.Owned, w.TaggedObjectID)
}

func (m *ThreadReferenceOwnedMonitorsReply) decode(r *Reader) {
	m.Owned = readSlice(r, r.TaggedObjectID)
}

// ThreadReferenceCurrentContendedMonitor requests the monitor a thread is
// waiting to enter.
type ThreadReferenceCurrentContendedMonitor struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceCurrentContendedMonitor) Command() Command {
	return cmdThreadReferenceCurrentContendedMonitor
}

// ThreadReferenceCurrentContendedMonitorReply holds a null reference when
// the thread is not waiting for a monitor.
type ThreadReferenceCurrentContendedMonitorReply struct {
	Monitor TaggedObjectID
}

func (m *ThreadReferenceCurrentContendedMonitorReply) encode(w *Writer) {
	w.TaggedObjectID(m.Monitor)
}

func (m *ThreadReferenceCurrentContendedMonitorReply) decode(r *Reader) {
	m.Monitor = r.TaggedObjectID()
}

// ThreadReferenceStop throws an asynchronous exception in a thread.
type ThreadReferenceStop struct {
	Thread    ThreadID
	Throwable ObjectID
}

func (ThreadReferenceStop) Command() Command { return cmdThreadReferenceStop }

func (m *ThreadReferenceStop) encode(w *Writer) {
	w.ObjectID(m.Thread)
	w.ObjectID(m.Throwable)
}

func (m *ThreadReferenceStop) decode(r *Reader) {
	m.Thread = r.ThreadID()
	m.Throwable = r.ObjectID()
}

// ThreadReferenceInterrupt interrupts a thread.
type ThreadReferenceInterrupt struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceInterrupt) Command() Command { return cmdThreadReferenceInterrupt }

// ThreadReferenceSuspendCount requests the suspend count of a thread.
type ThreadReferenceSuspendCount struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceSuspendCount) Command() Command { return cmdThreadReferenceSuspendCount }

type ThreadReferenceSuspendCountReply struct {
	SuspendCount int32
}

func (m *ThreadReferenceSuspendCountReply) encode(w *Writer) { w.Int32(m.SuspendCount) }
func (m *ThreadReferenceSuspendCountReply) decode(r *Reader) { m.SuspendCount = r.Int32() }

// ThreadReferenceOwnedMonitorsStackDepthInfo requests the monitors owned
// by a thread together with the depth at which each was acquired.
type ThreadReferenceOwnedMonitorsStackDepthInfo struct {
	ThreadRef `yaml:",inline"`
}

func (ThreadReferenceOwnedMonitorsStackDepthInfo) Command() Command {
	return cmdThreadReferenceOwnedMonitorsStackDepthInfo
}

type ThreadReferenceOwnedMonitorsStackDepthInfoReply struct {
	Owned []MonitorDepth
}

func (m *ThreadReferenceOwnedMonitorsStackDepthInfoReply) encode(w *Writer) {
	writeSlice(w, m.Owned, func(d MonitorDepth) {
		w.TaggedObjectID(d.Monitor)
		w.Int32(d.StackDepth)
	})
}

func (m *ThreadReferenceOwnedMonitorsStackDepthInfoReply) decode(r *Reader) {
	m.Owned = readSlice(r, func() MonitorDepth {
		return MonitorDepth{Monitor: r.TaggedObjectID(), StackDepth: r.Int32()}
	})
}

// ThreadReferenceForceEarlyReturn forces the current method of a thread to
// return Value.
type ThreadReferenceForceEarlyReturn struct {
	Thread ThreadID
	Value  Value
}

func (ThreadReferenceForceEarlyReturn) Command() Command { return cmdThreadReferenceForceEarlyReturn }

func (m *ThreadReferenceForceEarlyReturn) encode(w *Writer) {
	w.ObjectID(m.Thread)
	w.Value(m.Value)
}

func (m *ThreadReferenceForceEarlyReturn) decode(r *Reader) {
	m.Thread = r.ThreadID()
	m.Value = r.Value()
}

// ThreadGroupRef is the body of every ThreadGroupReference command.
type ThreadGroupRef struct {
	Group ThreadGroupID
}

func (m *ThreadGroupRef) encode(w *Writer) { w.ObjectID(m.Group) }
func (m *ThreadGroupRef) decode(r *Reader) { m.Group = r.ThreadGroupID() }

// ThreadGroupReferenceName requests the name of a thread group.
type ThreadGroupReferenceName struct {
	ThreadGroupRef `yaml:",inline"`
}

func (ThreadGroupReferenceName) Command() Command { return cmdThreadGroupReferenceName }

type ThreadGroupReferenceNameReply struct {
	Name string
}

func (m *ThreadGroupReferenceNameReply) encode(w *Writer) { w.String(m.Name) }
func (m *ThreadGroupReferenceNameReply) decode(r *Reader) { m.Name = r.ReadString() }

// ThreadGroupReferenceParent requests the parent of a thread group.
type ThreadGroupReferenceParent struct {
	ThreadGroupRef `yaml:",inline"`
}

func (ThreadGroupReferenceParent) Command() Command { return cmdThreadGroupReferenceParent }

// ThreadGroupReferenceParentReply holds the parent group, zero for a top
// level group.
type ThreadGroupReferenceParentReply struct {
	Parent ThreadGroupID
}

func (m *ThreadGroupReferenceParentReply) encode(w *Writer) { w.ObjectID(m.Parent) }
func (m *ThreadGroupReferenceParentReply) decode(r *Reader) { m.Parent = r.ThreadGroupID() }

// ThreadGroupReferenceChildren requests the live threads and the active
// groups directly contained in a thread group.
type ThreadGroupReferenceChildren struct {
	ThreadGroupRef `yaml:",inline"`
}

func (ThreadGroupReferenceChildren) Command() Command { return cmdThreadGroupReferenceChildren }

type ThreadGroupReferenceChildrenReply struct {
	Threads []ThreadID
	Groups  []ThreadGroupID
}

func (m *ThreadGroupReferenceChildrenReply) encode(w *Writer) {
	writeSlice(w, m.Threads, func(t ThreadID) { w.ObjectID(t) })
	writeSlice(w, m.Groups, func(g ThreadGroupID) { w.ObjectID(g) })
}

func (m *ThreadGroupReferenceChildrenReply) decode(r *Reader) {
	m.Threads = readSlice(r, r.ThreadID)
	m.Groups = readSlice(r, r.ThreadGroupID)
}
