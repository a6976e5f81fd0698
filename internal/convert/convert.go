// Package convert assembles a complete Firefox Profiler profile from a
// captured trace: one output thread per CPU thread and per GPU timeline, a
// shared string array and library manifest, and one counter per plot.
package convert

import (
	"fmt"
	"strconv"

	"github.com/DaniPopes/tracy/internal/fxprof"
	"github.com/DaniPopes/tracy/internal/libtable"
	"github.com/DaniPopes/tracy/internal/strtable"
	"github.com/DaniPopes/tracy/internal/threadtable"
	"github.com/DaniPopes/tracy/internal/timeutil"
	"github.com/DaniPopes/tracy/internal/trace"
)

// Profile converts everything r exposes into one profile document.
func Profile(r trace.Reader) *fxprof.Profile {
	r.WaitReady()

	strings := strtable.New()
	libs := libtable.New()

	cpuThreads := r.Threads()
	primary := primaryThreadIndex(r, cpuThreads)

	mainThreadIndex := 0
	threads := make([]fxprof.Thread, 0, len(cpuThreads))
	for i, th := range cpuThreads {
		if th == nil {
			continue
		}
		t := threadtable.New(strings, libs)
		t.CollectZones(th.Timeline, threadtable.CategoryUser)
		t.CollectMessages(r.Messages(), th.ID, threadtable.CategoryUser)
		t.CollectLocks(r.Locks(), th.ID, threadtable.CategoryUser)
		t.CollectSamples(r, th.Samples)
		if i == primary {
			// Process-wide events land on the primary thread.
			mainThreadIndex = len(threads)
			t.CollectFrameSpans(r.FrameSet(), threadtable.CategoryUser)
			t.CollectAllocations(r, r.MemPools())
		}

		pid := threadPid(r, th.ID)
		start, end := t.Bounds()
		threads = append(threads, fxprof.ThreadFromTables(t, fxprof.ThreadInfo{
			Name:           threadName(th),
			ProcessName:    r.Program(),
			Pid:            strconv.FormatUint(pid, 10),
			Tid:            th.ID,
			IsMainThread:   th.ID == pid,
			RegisterTime:   timeutil.MillisFromNS(start),
			UnregisterTime: timeutil.MillisFromNS(end),
		}))
	}

	pid := strconv.FormatUint(r.Pid(), 10)
	for _, ctx := range r.GpuContexts() {
		if ctx == nil {
			continue
		}
		name := ctx.Name
		if name == "" {
			name = "GPU"
		}
		for _, gt := range ctx.Threads {
			t := threadtable.New(strings, libs)
			t.CollectGpuZones(gt.Timeline, threadtable.CategoryUser)

			threadName := name
			if len(ctx.Threads) > 1 {
				threadName = fmt.Sprintf("%s #%d", name, gt.ID)
			}
			start, end := t.Bounds()
			threads = append(threads, fxprof.ThreadFromTables(t, fxprof.ThreadInfo{
				Name:           threadName,
				ProcessName:    r.Program(),
				Pid:            pid,
				Tid:            gt.ID,
				RegisterTime:   timeutil.MillisFromNS(start),
				UnregisterTime: timeutil.MillisFromNS(end),
			}))
		}
	}

	return &fxprof.Profile{
		Meta:     buildMeta(r),
		Libs:     fxprof.LibsFromTable(libs),
		Threads:  threads,
		Counters: buildCounters(r.Plots(), pid, mainThreadIndex),
		Shared:   fxprof.SharedData{StringArray: strings.Strings()},
	}
}

// primaryThreadIndex picks the thread that carries process-wide events:
// the first thread whose id equals its process id, the first thread
// otherwise.
func primaryThreadIndex(r trace.Reader, threads []*trace.Thread) int {
	for i, th := range threads {
		if th != nil && th.ID == threadPid(r, th.ID) {
			return i
		}
	}
	for i, th := range threads {
		if th != nil {
			return i
		}
	}
	return 0
}

func threadPid(r trace.Reader, tid uint64) uint64 {
	if pid := r.ThreadPid(tid); pid != 0 {
		return pid
	}
	return r.Pid()
}

func threadName(th *trace.Thread) string {
	if th.Name != "" {
		return th.Name
	}
	return fmt.Sprintf("Thread %d", th.ID)
}

func buildMeta(r trace.Reader) fxprof.Meta {
	product := r.Program()
	if product == "" {
		product = "Tracy"
	}
	return fxprof.Meta{
		Categories:                 fxprof.Categories(),
		ImportedFrom:               r.CaptureName(),
		Interval:                   timeutil.MillisFromNS(r.SamplingPeriodNS()),
		MarkerSchema:               fxprof.MarkerSchemas(),
		PausedRanges:               []interface{}{},
		Platform:                   r.HostInfo(),
		PreprocessedProfileVersion: fxprof.PreprocessedProfileVersion,
		Product:                    product,
		SampleUnits: fxprof.SampleUnits{
			Time:           "ms",
			EventDelay:     "ms",
			ThreadCPUDelta: "µs",
		},
		SourceCodeIsNotOnSearchfox: true,
		StartTime:                  float64(r.CaptureTimeMS()),
		Symbolicated:               true,
		UsesOnlyOneStackType:       true,
		Version:                    fxprof.GeckoProfileVersion,
	}
}

// buildCounters lowers plots into counter tracks. Counter counts are deltas:
// the first sample carries the absolute value, every following sample the
// difference from its predecessor.
func buildCounters(plots []*trace.Plot, pid string, mainThreadIndex int) []fxprof.Counter {
	var counters []fxprof.Counter
	for _, p := range plots {
		if p == nil || p.Type == trace.PlotSysTime || len(p.Points) == 0 {
			continue
		}

		samples := fxprof.CounterSamples{
			Time:   make([]float64, 0, len(p.Points)),
			Count:  make([]float64, 0, len(p.Points)),
			Length: len(p.Points),
		}
		prev := 0.0
		for _, pt := range p.Points {
			samples.Time = append(samples.Time, timeutil.MillisFromNS(pt.Time))
			samples.Count = append(samples.Count, pt.Value-prev)
			prev = pt.Value
		}

		category, description, color := counterStyle(p.Type)
		counters = append(counters, fxprof.Counter{
			Name:            p.Name,
			Category:        category,
			Description:     description,
			Color:           color,
			Pid:             pid,
			MainThreadIndex: mainThreadIndex,
			Samples:         samples,
		})
	}
	return counters
}

func counterStyle(t trace.PlotType) (category, description, color string) {
	switch t {
	case trace.PlotUser:
		return "User", "User-defined plot", "blue"
	case trace.PlotMemory:
		return "Memory", "Memory usage", "purple"
	case trace.PlotPower:
		return "Power", "Power consumption", "orange"
	default:
		return "Other", "Plot data", "grey"
	}
}
