// Package trace is the read-only query contract of the trace-reading
// collaborator. The conversion core consumes traces exclusively through the
// Reader interface; how a trace was acquired (binary file, network capture)
// is not this package's concern.
package trace

type (
	// CallstackID is a raw callstack handle. Zero means no callstack was
	// recorded.
	CallstackID uint32

	// FrameID identifies one physical callstack frame in the capture.
	FrameID uint64

	// Zone is a named, possibly nested time interval recorded by
	// instrumentation.
	Zone struct {
		Start    int64   `json:"start"`
		End      int64   `json:"end"` // < 0 while the zone is still open
		Name     string  `json:"name"`
		Text     string  `json:"text,omitempty"`
		Color    uint32  `json:"color,omitempty"`
		File     string  `json:"file,omitempty"`
		Line     uint32  `json:"line,omitempty"`
		Function string  `json:"function,omitempty"`
		Children []*Zone `json:"children,omitempty"`
	}

	// GpuZone carries both the GPU-side and the correlated CPU-side
	// interval of a GPU zone.
	GpuZone struct {
		GpuStart int64      `json:"gpuStart"`
		GpuEnd   int64      `json:"gpuEnd"` // < 0 while the zone is still open
		CpuStart int64      `json:"cpuStart"`
		CpuEnd   int64      `json:"cpuEnd"`
		Name     string     `json:"name"`
		File     string     `json:"file,omitempty"`
		Line     uint32     `json:"line,omitempty"`
		Function string     `json:"function,omitempty"`
		Children []*GpuZone `json:"children,omitempty"`
	}

	GpuThread struct {
		ID       uint64     `json:"id"`
		Timeline []*GpuZone `json:"timeline,omitempty"`
	}

	GpuContext struct {
		Name    string      `json:"name"`
		Threads []GpuThread `json:"threads,omitempty"`
	}

	Sample struct {
		Time      int64       `json:"time"`
		Callstack CallstackID `json:"callstack"`
	}

	Thread struct {
		ID       uint64   `json:"id"`
		Name     string   `json:"name,omitempty"`
		Timeline []*Zone  `json:"timeline,omitempty"`
		Samples  []Sample `json:"samples,omitempty"`
	}

	LockEventType int

	LockEvent struct {
		Time   int64         `json:"time"`
		Type   LockEventType `json:"type"`
		Thread uint64        `json:"thread"`
	}

	Lock struct {
		ID     uint32      `json:"id"`
		Name   string      `json:"name"`
		Events []LockEvent `json:"events,omitempty"`
	}

	Message struct {
		Thread uint64 `json:"thread"`
		Time   int64  `json:"time"`
		Text   string `json:"text"`
		Color  uint32 `json:"color,omitempty"`
	}

	FrameSpan struct {
		Start int64 `json:"start"`
		End   int64 `json:"end"` // < 0 when still open at capture stop
	}

	// FrameSet is the single global frame-boundary sequence.
	FrameSet struct {
		Name  string      `json:"name"`
		Spans []FrameSpan `json:"spans,omitempty"`
	}

	MemEvent struct {
		TimeAlloc   int64       `json:"timeAlloc"`
		TimeFree    int64       `json:"timeFree"` // < 0 when never freed
		Size        uint64      `json:"size"`
		Ptr         uint64      `json:"ptr"`
		ThreadAlloc uint64      `json:"threadAlloc"`
		ThreadFree  uint64      `json:"threadFree"`
		CsAlloc     CallstackID `json:"csAlloc"`
		CsFree      CallstackID `json:"csFree"`
	}

	MemPool struct {
		Name   string     `json:"name"`
		Events []MemEvent `json:"events,omitempty"`
	}

	PlotType int

	PlotPoint struct {
		Time  int64   `json:"time"`
		Value float64 `json:"value"`
	}

	// Plot is a named time series of absolute scalar values.
	Plot struct {
		Name   string      `json:"name"`
		Type   PlotType    `json:"type"`
		Points []PlotPoint `json:"points,omitempty"`
	}

	// SourceFrame is one logical (possibly inlined) frame resolved from a
	// physical frame.
	SourceFrame struct {
		Name    string `json:"name"`
		File    string `json:"file,omitempty"`
		Line    uint32 `json:"line,omitempty"`
		SymAddr uint64 `json:"symAddr"`
	}

	// FrameData is the resolution of a physical frame. Frames are ordered
	// innermost (most deeply inlined) first, matching the upstream model.
	FrameData struct {
		ImageName string        `json:"imageName,omitempty"`
		Frames    []SourceFrame `json:"frames,omitempty"`
	}
)

const (
	LockWait LockEventType = iota
	LockWaitShared
	LockObtain
	LockObtainShared
	LockRelease
	LockReleaseShared
)

const (
	PlotUser PlotType = iota
	PlotMemory
	PlotPower
	PlotSysTime
	PlotOther
)

// Reader exposes a fully captured trace. Implementations own the trace data;
// everything returned is read-only from the caller's perspective.
type Reader interface {
	// WaitReady blocks until the upstream background analyses
	// (source-location zone indexing, callstack statistics) are complete.
	// There is no timeout and no cancellation; readers backed by already
	// materialized data return immediately.
	WaitReady()

	Threads() []*Thread
	Locks() []*Lock
	Messages() []*Message
	FrameSet() *FrameSet
	GpuContexts() []*GpuContext
	MemPools() []*MemPool
	Plots() []*Plot

	// Callstack returns the physical frames of a raw callstack, ordered
	// innermost (sample point) first. Unknown handles resolve to nil.
	Callstack(id CallstackID) []FrameID
	// CallstackFrame resolves a physical frame. A nil result means the
	// frame has no usable data and contributes nothing to stacks.
	CallstackFrame(id FrameID) *FrameData
	// CanonicalAddress returns the address used for kernel/user
	// classification of a physical frame.
	CanonicalAddress(id FrameID) uint64
	// SymbolSize returns the resolved symbol size for addr, or 0 when
	// unknown.
	SymbolSize(addr uint64) uint32

	CaptureName() string
	Program() string
	HostInfo() string
	Pid() uint64
	// ThreadPid returns the process id owning tid, or 0 when unknown.
	ThreadPid(tid uint64) uint64
	SamplingPeriodNS() int64
	// CaptureTimeMS is the wall-clock capture start in Unix milliseconds.
	CaptureTimeMS() int64
}
