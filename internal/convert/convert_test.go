package convert

import (
	"testing"

	"github.com/DaniPopes/tracy/internal/fxprof"
	"github.com/DaniPopes/tracy/internal/testutil"
	"github.com/DaniPopes/tracy/internal/trace"
)

type fakeReader struct {
	threads     []*trace.Thread
	locks       []*trace.Lock
	messages    []*trace.Message
	frameSet    *trace.FrameSet
	gpuContexts []*trace.GpuContext
	memPools    []*trace.MemPool
	plots       []*trace.Plot

	callstacks  map[trace.CallstackID][]trace.FrameID
	frames      map[trace.FrameID]*trace.FrameData
	canonical   map[trace.FrameID]uint64
	symbolSizes map[uint64]uint32

	captureName      string
	program          string
	hostInfo         string
	pid              uint64
	threadPids       map[uint64]uint64
	samplingPeriodNS int64
	captureTimeMS    int64
}

func (r *fakeReader) WaitReady() {}

func (r *fakeReader) Threads() []*trace.Thread         { return r.threads }
func (r *fakeReader) Locks() []*trace.Lock             { return r.locks }
func (r *fakeReader) Messages() []*trace.Message       { return r.messages }
func (r *fakeReader) FrameSet() *trace.FrameSet        { return r.frameSet }
func (r *fakeReader) GpuContexts() []*trace.GpuContext { return r.gpuContexts }
func (r *fakeReader) MemPools() []*trace.MemPool       { return r.memPools }
func (r *fakeReader) Plots() []*trace.Plot             { return r.plots }

func (r *fakeReader) Callstack(id trace.CallstackID) []trace.FrameID {
	return r.callstacks[id]
}

func (r *fakeReader) CallstackFrame(id trace.FrameID) *trace.FrameData {
	return r.frames[id]
}

func (r *fakeReader) CanonicalAddress(id trace.FrameID) uint64 { return r.canonical[id] }
func (r *fakeReader) SymbolSize(addr uint64) uint32            { return r.symbolSizes[addr] }

func (r *fakeReader) CaptureName() string         { return r.captureName }
func (r *fakeReader) Program() string             { return r.program }
func (r *fakeReader) HostInfo() string            { return r.hostInfo }
func (r *fakeReader) Pid() uint64                 { return r.pid }
func (r *fakeReader) ThreadPid(tid uint64) uint64 { return r.threadPids[tid] }
func (r *fakeReader) SamplingPeriodNS() int64     { return r.samplingPeriodNS }
func (r *fakeReader) CaptureTimeMS() int64        { return r.captureTimeMS }

func newFakeReader() *fakeReader {
	return &fakeReader{
		threads: []*trace.Thread{
			{
				ID: 42,
				Timeline: []*trace.Zone{
					{Start: 1000, End: 3000, Name: "update"},
				},
				Samples: []trace.Sample{
					{Time: 1500, Callstack: 1},
				},
			},
			{ID: 43, Name: "worker"},
		},
		frameSet: &trace.FrameSet{
			Name:  "Frame",
			Spans: []trace.FrameSpan{{Start: 0, End: 2_000_000}},
		},
		gpuContexts: []*trace.GpuContext{
			{
				Name: "Vulkan",
				Threads: []trace.GpuThread{
					{
						ID: 100,
						Timeline: []*trace.GpuZone{
							{GpuStart: 2000, GpuEnd: 2500, CpuStart: 1000, CpuEnd: 1200, Name: "draw"},
						},
					},
				},
			},
		},
		memPools: []*trace.MemPool{
			{
				Name: "Default",
				Events: []trace.MemEvent{
					{TimeAlloc: 1100, TimeFree: -1, Size: 64, Ptr: 0xdead, ThreadAlloc: 42},
				},
			},
		},
		plots: []*trace.Plot{
			{
				Name: "Heap",
				Type: trace.PlotMemory,
				Points: []trace.PlotPoint{
					{Time: 0, Value: 5},
					{Time: 1000, Value: 5},
					{Time: 2000, Value: 12},
					{Time: 3000, Value: 9},
				},
			},
			{Name: "CPU usage", Type: trace.PlotSysTime, Points: []trace.PlotPoint{{Time: 0, Value: 1}}},
			{Name: "Empty", Type: trace.PlotUser},
		},
		callstacks: map[trace.CallstackID][]trace.FrameID{
			1: {10},
		},
		frames: map[trace.FrameID]*trace.FrameData{
			10: {
				ImageName: "demo",
				Frames:    []trace.SourceFrame{{Name: "main", File: "main.c", Line: 3, SymAddr: 0x1000}},
			},
		},
		canonical:        map[trace.FrameID]uint64{10: 0x1010},
		symbolSizes:      map[uint64]uint32{0x1000: 64},
		captureName:      "demo.tracy",
		program:          "demo",
		hostInfo:         "Linux 6.1",
		pid:              42,
		threadPids:       map[uint64]uint64{42: 42, 43: 42},
		samplingPeriodNS: 100_000,
		captureTimeMS:    1700000000000,
	}
}

func TestProfileMeta(t *testing.T) {
	p := Profile(newFakeReader())

	m := p.Meta
	if got, want := m.Interval, 0.1; got != want {
		t.Fatalf("interval: got %v, want %v", got, want)
	}
	if got, want := m.StartTime, float64(1700000000000); got != want {
		t.Fatalf("start time: got %v, want %v", got, want)
	}
	if got, want := m.Product, "demo"; got != want {
		t.Fatalf("product: got %q, want %q", got, want)
	}
	if got, want := m.ImportedFrom, "demo.tracy"; got != want {
		t.Fatalf("imported from: got %q, want %q", got, want)
	}
	if got, want := m.Platform, "Linux 6.1"; got != want {
		t.Fatalf("platform: got %q, want %q", got, want)
	}
	if !m.Symbolicated || !m.UsesOnlyOneStackType {
		t.Fatal("expected symbolicated, single stack type profile")
	}
	if len(m.Categories) == 0 || len(m.MarkerSchema) == 0 {
		t.Fatal("expected categories and marker schemas")
	}
}

func TestProfileThreads(t *testing.T) {
	p := Profile(newFakeReader())

	if got, want := len(p.Threads), 3; got != want {
		t.Fatalf("expected %d threads, got %d", want, got)
	}

	main := p.Threads[0]
	if got, want := main.Name, "Thread 42"; got != want {
		t.Fatalf("main thread name: got %q, want %q", got, want)
	}
	if !main.IsMainThread {
		t.Fatal("thread 42 should be the main thread")
	}
	if got, want := main.Pid, "42"; got != want {
		t.Fatalf("main thread pid: got %q, want %q", got, want)
	}
	if main.NativeAllocations == nil || main.NativeAllocations.Length != 1 {
		t.Fatalf("allocations should land on the main thread: %+v", main.NativeAllocations)
	}
	if main.Samples.Length != 1 {
		t.Fatalf("expected 1 sample, got %d", main.Samples.Length)
	}
	// Zone, frame boundary.
	if main.Markers.Length != 2 {
		t.Fatalf("expected 2 markers on the main thread, got %d", main.Markers.Length)
	}
	if got, want := main.RegisterTime, 0.0; got != want {
		t.Fatalf("main thread register time: got %v, want %v", got, want)
	}

	worker := p.Threads[1]
	if got, want := worker.Name, "worker"; got != want {
		t.Fatalf("worker name: got %q, want %q", got, want)
	}
	if worker.IsMainThread {
		t.Fatal("thread 43 must not be the main thread")
	}
	if worker.NativeAllocations != nil {
		t.Fatal("allocations must not land on secondary threads")
	}
	if worker.Markers.Length != 0 {
		t.Fatalf("expected no markers on the worker, got %d", worker.Markers.Length)
	}

	gpu := p.Threads[2]
	if got, want := gpu.Name, "Vulkan"; got != want {
		t.Fatalf("gpu thread name: got %q, want %q", got, want)
	}
	if got, want := gpu.Tid, uint64(100); got != want {
		t.Fatalf("gpu tid: got %d, want %d", got, want)
	}
	if gpu.Markers.Length != 1 {
		t.Fatalf("expected 1 gpu marker, got %d", gpu.Markers.Length)
	}
}

func TestProfileSharedTables(t *testing.T) {
	p := Profile(newFakeReader())

	wantStrings := map[string]bool{"update": false, "main": false, "draw": false}
	for _, s := range p.Shared.StringArray {
		if _, ok := wantStrings[s]; ok {
			wantStrings[s] = true
		}
	}
	for s, seen := range wantStrings {
		if !seen {
			t.Fatalf("shared string array is missing %q", s)
		}
	}

	if got, want := len(p.Libs), 1; got != want {
		t.Fatalf("expected %d lib, got %d", want, got)
	}
	if got, want := p.Libs[0].Name, "demo"; got != want {
		t.Fatalf("lib name: got %q, want %q", got, want)
	}
}

func TestProfileCounters(t *testing.T) {
	r := newFakeReader()
	r.plots = append(r.plots, &trace.Plot{
		Name:   "Frame time",
		Type:   trace.PlotUser,
		Points: []trace.PlotPoint{{Time: 0, Value: 16.6}},
	})
	p := Profile(r)

	if got, want := len(p.Counters), 2; got != want {
		t.Fatalf("expected %d counters, got %d", want, got)
	}
	c := p.Counters[0]
	if got, want := c.Name, "Heap"; got != want {
		t.Fatalf("counter name: got %q, want %q", got, want)
	}
	if got, want := c.Category, "Memory"; got != want {
		t.Fatalf("counter category: got %q, want %q", got, want)
	}
	if got, want := c.Description, "Memory usage"; got != want {
		t.Fatalf("counter description: got %q, want %q", got, want)
	}

	user := p.Counters[1]
	if got, want := user.Category, "User"; got != want {
		t.Fatalf("user counter category: got %q, want %q", got, want)
	}
	if got, want := user.Description, "User-defined plot"; got != want {
		t.Fatalf("user counter description: got %q, want %q", got, want)
	}
	if got, want := c.Pid, "42"; got != want {
		t.Fatalf("counter pid: got %q, want %q", got, want)
	}
	if got, want := c.MainThreadIndex, 0; got != want {
		t.Fatalf("counter main thread index: got %d, want %d", got, want)
	}

	want := fxprof.CounterSamples{
		Time:   []float64{0, 0.001, 0.002, 0.003},
		Count:  []float64{5, 0, 7, -3},
		Length: 4,
	}
	if diff := testutil.Diff(c.Samples, want); diff != "" {
		t.Fatalf("counter samples mismatch: %s", diff)
	}
}

func TestProfileSkipsNullEntries(t *testing.T) {
	r := newFakeReader()
	// A dump may carry JSON nulls in any of its top-level lists.
	r.threads = append([]*trace.Thread{nil}, r.threads...)
	r.gpuContexts = append(r.gpuContexts, nil)
	r.plots = append(r.plots, nil)

	p := Profile(r)

	if got, want := len(p.Threads), 3; got != want {
		t.Fatalf("expected %d threads, got %d", want, got)
	}
	// Thread 42 is still the primary thread behind the null entry.
	main := p.Threads[0]
	if got, want := main.Name, "Thread 42"; got != want {
		t.Fatalf("main thread name: got %q, want %q", got, want)
	}
	if !main.IsMainThread || main.NativeAllocations == nil {
		t.Fatal("null entries displaced the primary thread")
	}
	if got, want := len(p.Counters), 1; got != want {
		t.Fatalf("expected %d counter, got %d", want, got)
	}
	// The counter references the output thread index, not the raw one.
	if got, want := p.Counters[0].MainThreadIndex, 0; got != want {
		t.Fatalf("counter main thread index: got %d, want %d", got, want)
	}
}

func TestProfilePrimaryFallbackSkipsNull(t *testing.T) {
	r := newFakeReader()
	r.pid = 1
	r.threadPids = map[uint64]uint64{}
	r.threads = append([]*trace.Thread{nil}, r.threads...)

	p := Profile(r)
	if p.Threads[0].NativeAllocations == nil {
		t.Fatal("first real thread should carry allocations past a null entry")
	}
}

func TestProfilePrimaryFallback(t *testing.T) {
	r := newFakeReader()
	// No thread id matches a process id: the first thread takes the
	// process-wide events.
	r.pid = 1
	r.threadPids = map[uint64]uint64{}

	p := Profile(r)
	if p.Threads[0].NativeAllocations == nil {
		t.Fatal("first thread should carry allocations when no main thread exists")
	}
	if p.Threads[0].IsMainThread {
		t.Fatal("no thread should claim to be main")
	}
}
