package threadtable

import (
	"sort"

	"github.com/DaniPopes/tracy/internal/colorutil"
	"github.com/DaniPopes/tracy/internal/timeutil"
	"github.com/DaniPopes/tracy/internal/trace"
)

// StackSource is the subset of the trace query contract the stack builder
// needs.
type StackSource interface {
	Callstack(id trace.CallstackID) []trace.FrameID
	CallstackFrame(id trace.FrameID) *trace.FrameData
	CanonicalAddress(id trace.FrameID) uint64
	SymbolSize(addr uint64) uint32
}

// CollectZones walks a zone tree pre-order, emitting one interval marker per
// completed zone. A zone whose end is still open is skipped along with its
// subtree.
func (t *Tables) CollectZones(zones []*trace.Zone, category uint32) {
	for _, z := range zones {
		if z == nil {
			continue
		}
		t.collectZone(z, category)
	}
}

func (t *Tables) collectZone(z *trace.Zone, category uint32) {
	if z.End < 0 {
		return
	}

	t.touch(z.Start)
	t.touch(z.End)

	data := &ZoneMarkerData{
		Type: MarkerZone,
		Name: t.strings.Intern(z.Name),
	}
	if z.Text != "" {
		data.Text = t.internRef(z.Text)
	}
	if z.Color != 0 {
		if name, ok := colorutil.ToGraphColor(z.Color); ok {
			data.Color = name
		}
	}
	if z.File != "" {
		data.File = t.internRef(z.File)
		line := z.Line
		data.Line = &line
	}
	if z.Function != "" {
		data.Function = t.internRef(z.Function)
	}

	t.Markers = append(t.Markers, MarkerEntry{
		Type:      MarkerZone,
		Category:  category,
		Name:      t.strings.Intern(MarkerZone),
		StartTime: timeutil.MillisFromNS(z.Start),
		EndTime:   timeutil.MillisFromNS(z.End),
		Phase:     PhaseInterval,
		Data:      data,
	})

	t.CollectZones(z.Children, category)
}

// CollectGpuZones is the GPU-side variant of CollectZones. The marker spans
// the GPU interval; the correlated CPU interval rides along in the payload.
func (t *Tables) CollectGpuZones(zones []*trace.GpuZone, category uint32) {
	for _, z := range zones {
		if z == nil {
			continue
		}
		t.collectGpuZone(z, category)
	}
}

func (t *Tables) collectGpuZone(z *trace.GpuZone, category uint32) {
	if z.GpuEnd < 0 {
		return
	}

	t.touch(z.GpuStart)
	t.touch(z.GpuEnd)

	data := &GpuZoneMarkerData{
		Type:     MarkerGpuZone,
		Name:     t.strings.Intern(z.Name),
		GpuStart: timeutil.MillisFromNS(z.GpuStart),
		GpuEnd:   timeutil.MillisFromNS(z.GpuEnd),
		CpuStart: timeutil.MillisFromNS(z.CpuStart),
		CpuEnd:   timeutil.MillisFromNS(z.CpuEnd),
	}
	if z.File != "" {
		data.File = t.internRef(z.File)
		line := z.Line
		data.Line = &line
	}
	if z.Function != "" {
		data.Function = t.internRef(z.Function)
	}

	t.Markers = append(t.Markers, MarkerEntry{
		Type:      MarkerGpuZone,
		Category:  category,
		Name:      t.strings.Intern(MarkerGpuZone),
		StartTime: timeutil.MillisFromNS(z.GpuStart),
		EndTime:   timeutil.MillisFromNS(z.GpuEnd),
		Phase:     PhaseInterval,
		Data:      data,
	})

	t.CollectGpuZones(z.Children, category)
}

// CollectMessages emits one instant marker per message belonging to tid.
func (t *Tables) CollectMessages(messages []*trace.Message, tid uint64, category uint32) {
	for _, m := range messages {
		if m == nil || m.Thread != tid {
			continue
		}

		t.touch(m.Time)

		data := &MessageMarkerData{
			Type: MarkerMessage,
			Text: t.strings.Intern(m.Text),
		}
		if m.Color != 0 {
			if name, ok := colorutil.ToGraphColor(m.Color); ok {
				data.Color = name
			}
		}

		ms := timeutil.MillisFromNS(m.Time)
		t.Markers = append(t.Markers, MarkerEntry{
			Type:      MarkerMessage,
			Category:  category,
			Name:      t.strings.Intern(MarkerMessage),
			StartTime: ms,
			EndTime:   ms,
			Phase:     PhaseInstant,
			Data:      data,
		})
	}
}

// CollectLocks pairs wait and obtain events on each lock into wait-latency
// interval markers for tid. An obtain without a pending wait is ignored;
// releases produce nothing.
func (t *Tables) CollectLocks(locks []*trace.Lock, tid uint64, category uint32) {
	for _, lock := range locks {
		if lock == nil {
			continue
		}

		waitStart := int64(-1)
		for _, ev := range lock.Events {
			if ev.Thread != tid {
				continue
			}

			t.touch(ev.Time)

			switch ev.Type {
			case trace.LockWait, trace.LockWaitShared:
				waitStart = ev.Time
			case trace.LockObtain, trace.LockObtainShared:
				if waitStart < 0 {
					break
				}
				operation := "wait"
				if ev.Type == trace.LockObtainShared {
					operation = "wait_shared"
				}
				t.Markers = append(t.Markers, MarkerEntry{
					Type:      MarkerLock,
					Category:  category,
					Name:      t.strings.Intern(MarkerLock),
					StartTime: timeutil.MillisFromNS(waitStart),
					EndTime:   timeutil.MillisFromNS(ev.Time),
					Phase:     PhaseInterval,
					Data: &LockMarkerData{
						Type:      MarkerLock,
						Name:      t.strings.Intern(lock.Name),
						LockID:    lock.ID,
						Operation: operation,
					},
				})
				waitStart = -1
			case trace.LockRelease, trace.LockReleaseShared:
			}
		}
	}
}

// CollectFrameSpans emits one interval marker per completed span of the
// global frame sequence. Spans still open at capture stop are skipped.
func (t *Tables) CollectFrameSpans(fs *trace.FrameSet, category uint32) {
	if fs == nil {
		return
	}

	name := t.strings.Intern(fs.Name)
	for i, span := range fs.Spans {
		if span.End < 0 {
			continue
		}

		t.touch(span.Start)
		t.touch(span.End)

		durationMS := timeutil.MillisFromNS(span.End - span.Start)
		fps := 0.0
		if durationMS > 0 {
			fps = 1000 / durationMS
		}

		t.Markers = append(t.Markers, MarkerEntry{
			Type:      MarkerFrame,
			Category:  category,
			Name:      t.strings.Intern(MarkerFrame),
			StartTime: timeutil.MillisFromNS(span.Start),
			EndTime:   timeutil.MillisFromNS(span.End),
			Phase:     PhaseInterval,
			Data: &FrameMarkerData{
				Type:        MarkerFrame,
				Name:        name,
				FrameNumber: uint64(i),
				Duration:    durationMS,
				FPS:         fps,
			},
		})
	}
}

// CollectSamples appends one sample row per raw sample with a usable
// callstack, building the shared-prefix stack chain as it goes. Every sample
// carries a unit weight.
func (t *Tables) CollectSamples(src StackSource, samples []trace.Sample) {
	for _, s := range samples {
		if s.Callstack == 0 {
			continue
		}
		frames := src.Callstack(s.Callstack)
		if len(frames) == 0 {
			continue
		}

		t.touch(s.Time)

		t.Samples = append(t.Samples, SampleEntry{
			Time:   timeutil.MillisFromNS(s.Time),
			Stack:  t.buildStack(src, frames),
			Weight: 1,
		})
	}
}

// CollectAllocations appends one positive row per allocation and one negated
// row per free, across every pool, then stable-sorts all rows by timestamp.
// Stability preserves the relative order of pools interleaving at the same
// tick.
func (t *Tables) CollectAllocations(src StackSource, pools []*trace.MemPool) {
	for _, pool := range pools {
		if pool == nil {
			continue
		}
		for _, ev := range pool.Events {
			t.touch(ev.TimeAlloc)
			t.Allocations = append(t.Allocations, AllocationEntry{
				Time:          timeutil.MillisFromNS(ev.TimeAlloc),
				Weight:        int64(ev.Size),
				Stack:         t.stackForCallstack(src, ev.CsAlloc),
				MemoryAddress: ev.Ptr,
				ThreadID:      ev.ThreadAlloc,
			})

			if ev.TimeFree < 0 {
				continue
			}
			t.touch(ev.TimeFree)
			t.Allocations = append(t.Allocations, AllocationEntry{
				Time:          timeutil.MillisFromNS(ev.TimeFree),
				Weight:        -int64(ev.Size),
				Stack:         t.stackForCallstack(src, ev.CsFree),
				MemoryAddress: ev.Ptr,
				ThreadID:      ev.ThreadFree,
			})
		}
	}

	sort.SliceStable(t.Allocations, func(i, j int) bool {
		return t.Allocations[i].Time < t.Allocations[j].Time
	})
}

func (t *Tables) stackForCallstack(src StackSource, id trace.CallstackID) int32 {
	if id == 0 {
		return NoStack
	}
	frames := src.Callstack(id)
	if len(frames) == 0 {
		return NoStack
	}
	return t.buildStack(src, frames)
}

// buildStack expands physical frames, outermost first, into interned frame
// and stack rows and returns the leaf stack index. Within a physical frame
// the logical sub-frames are walked from the outermost inline level to the
// innermost. Physical frames that do not resolve are skipped.
func (t *Tables) buildStack(src StackSource, frames []trace.FrameID) int32 {
	stack := NoStack
	for i := len(frames); i > 0; i-- {
		id := frames[i-1]
		data := src.CallstackFrame(id)
		if data == nil {
			continue
		}

		// The most significant address bit separates kernel from user
		// space.
		category := CategoryUser
		if src.CanonicalAddress(id)>>63 != 0 {
			category = CategoryKernel
		}

		for j := len(data.Frames); j > 0; j-- {
			sub := data.Frames[j-1]
			inlineDepth := uint32(len(data.Frames) - j)
			frame := t.InternFrame(
				sub.SymAddr, sub.Name, sub.File,
				sub.Line, 0, inlineDepth,
				data.ImageName, src.SymbolSize(sub.SymAddr), category,
			)
			stack = t.InternStack(stack, frame)
		}
	}
	return stack
}

func (t *Tables) internRef(s string) *uint32 {
	idx := t.strings.Intern(s)
	return &idx
}
