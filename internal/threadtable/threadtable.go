package threadtable

import (
	"math"

	"github.com/DaniPopes/tracy/internal/libtable"
	"github.com/DaniPopes/tracy/internal/strtable"
)

// Indices into the profile's category list.
const (
	CategoryOther  uint32 = 0
	CategoryUser   uint32 = 1
	CategoryKernel uint32 = 2
)

// NoStack and NoResource mark absent cross-references in columns that allow
// null.
const (
	NoStack    int32 = -1
	NoResource int32 = -1
)

// MarkerPhase mirrors the Firefox Profiler marker phase encoding.
type MarkerPhase int

const (
	PhaseInstant       MarkerPhase = 0
	PhaseInterval      MarkerPhase = 1
	PhaseIntervalStart MarkerPhase = 2
	PhaseIntervalEnd   MarkerPhase = 3
)

type (
	FrameEntry struct {
		Func         uint32
		NativeSymbol uint32
		Category     uint32
		Address      int64
		Line         uint32
		Column       uint32
		InlineDepth  uint32
	}

	FuncEntry struct {
		Name         uint32
		Resource     int32
		FileName     uint32
		LineNumber   uint32
		ColumnNumber uint32
	}

	NativeSymbolEntry struct {
		LibIndex     int32
		Address      uint64
		Name         uint32
		FunctionSize uint32
	}

	ResourceEntry struct {
		Lib  int32
		Name uint32
	}

	StackEntry struct {
		Prefix int32 // NoStack for roots
		Frame  uint32
	}

	SampleEntry struct {
		Time   float64
		Stack  int32
		Weight float64
	}

	AllocationEntry struct {
		Time          float64
		Weight        int64
		Stack         int32
		MemoryAddress uint64
		ThreadID      uint64
	}

	MarkerEntry struct {
		Type      string
		Category  uint32
		Name      uint32
		StartTime float64
		EndTime   float64
		Phase     MarkerPhase
		Data      interface{}
	}

	frameKey struct {
		addr  uint64
		depth uint32
	}

	stackKey struct {
		prefix int32
		frame  uint32
	}

	// Tables holds the deduplicated profile tables of one output thread.
	// All tables are append-only; an entry's index is permanent once
	// assigned. The string interner and library manifest are shared across
	// every Tables instance of a conversion run, the rest is per thread.
	Tables struct {
		Frames        []FrameEntry
		Funcs         []FuncEntry
		NativeSymbols []NativeSymbolEntry
		Resources     []ResourceEntry
		Stacks        []StackEntry
		Samples       []SampleEntry
		Allocations   []AllocationEntry
		Markers       []MarkerEntry

		minTime int64
		maxTime int64

		strings *strtable.Table
		libs    *libtable.Table

		nativeSymbolByAddr map[uint64]uint32
		funcByAddr         map[uint64]uint32
		resourceByLib      map[string]uint32
		frameByKey         map[frameKey]uint32
		stackByKey         map[stackKey]int32
	}
)

func New(strings *strtable.Table, libs *libtable.Table) *Tables {
	return &Tables{
		minTime:            math.MaxInt64,
		strings:            strings,
		libs:               libs,
		nativeSymbolByAddr: make(map[uint64]uint32),
		funcByAddr:         make(map[uint64]uint32),
		resourceByLib:      make(map[string]uint32),
		frameByKey:         make(map[frameKey]uint32),
		stackByKey:         make(map[stackKey]int32),
	}
}

func (t *Tables) touch(ts int64) {
	if ts < t.minTime {
		t.minTime = ts
	}
	if ts > t.maxTime {
		t.maxTime = ts
	}
}

// Bounds returns the observed [min, max] timestamps in nanoseconds. A thread
// that collected nothing reports (0, 0).
func (t *Tables) Bounds() (int64, int64) {
	if t.minTime == math.MaxInt64 {
		return 0, t.maxTime
	}
	return t.minTime, t.maxTime
}

// InternResource returns the resource row for libName, creating it on first
// use. Empty names create nothing and return NoResource.
func (t *Tables) InternResource(libName string) int32 {
	if libName == "" {
		return NoResource
	}
	if idx, exists := t.resourceByLib[libName]; exists {
		return int32(idx)
	}
	idx := uint32(len(t.Resources))
	t.Resources = append(t.Resources, ResourceEntry{
		Lib:  t.libs.Intern(libName, 0, 0),
		Name: t.strings.Intern(libName),
	})
	t.resourceByLib[libName] = idx
	return int32(idx)
}

// InternNativeSymbol returns the native symbol row for symAddr, first seen
// wins. Every registration widens the owning library's address range.
func (t *Tables) InternNativeSymbol(symAddr uint64, name, libName string, size uint32) uint32 {
	if idx, exists := t.nativeSymbolByAddr[symAddr]; exists {
		if libName != "" {
			t.libs.Intern(libName, symAddr, size)
		}
		return idx
	}

	libIdx := NoResource
	if libName != "" {
		t.libs.Intern(libName, symAddr, size)
		libIdx = t.InternResource(libName)
	}

	idx := uint32(len(t.NativeSymbols))
	t.NativeSymbols = append(t.NativeSymbols, NativeSymbolEntry{
		LibIndex:     libIdx,
		Address:      symAddr,
		Name:         t.strings.Intern(name),
		FunctionSize: size,
	})
	t.nativeSymbolByAddr[symAddr] = idx
	return idx
}

// InternFunc returns the func row for symAddr, first seen wins.
func (t *Tables) InternFunc(symAddr uint64, name, fileName string, line uint32, resource int32) uint32 {
	if idx, exists := t.funcByAddr[symAddr]; exists {
		return idx
	}
	idx := uint32(len(t.Funcs))
	t.Funcs = append(t.Funcs, FuncEntry{
		Name:       t.strings.Intern(name),
		Resource:   resource,
		FileName:   t.strings.Intern(fileName),
		LineNumber: line,
	})
	t.funcByAddr[symAddr] = idx
	return idx
}

// InternFrame returns the frame row for (symAddr, inlineDepth), resolving
// the owning resource, func and native symbol on first use. Two occurrences
// of the same address at different inline depths are distinct frames.
func (t *Tables) InternFrame(symAddr uint64, name, fileName string, line, column, inlineDepth uint32, libName string, symSize, category uint32) uint32 {
	key := frameKey{addr: symAddr, depth: inlineDepth}
	if idx, exists := t.frameByKey[key]; exists {
		return idx
	}

	resource := t.InternResource(libName)
	funcIdx := t.InternFunc(symAddr, name, fileName, line, resource)
	symbolIdx := t.InternNativeSymbol(symAddr, name, libName, symSize)

	idx := uint32(len(t.Frames))
	t.Frames = append(t.Frames, FrameEntry{
		Func:         funcIdx,
		NativeSymbol: symbolIdx,
		Category:     category,
		Address:      int64(symAddr),
		Line:         line,
		Column:       column,
		InlineDepth:  inlineDepth,
	})
	t.frameByKey[key] = idx
	return idx
}

// InternStack returns the stack node for (prefix, frame). A prefix of
// NoStack makes a root node. Dedup on the exact pair keeps the stack table a
// minimal shared-prefix tree.
func (t *Tables) InternStack(prefix int32, frame uint32) int32 {
	key := stackKey{prefix: prefix, frame: frame}
	if idx, exists := t.stackByKey[key]; exists {
		return idx
	}
	idx := int32(len(t.Stacks))
	t.Stacks = append(t.Stacks, StackEntry{Prefix: prefix, Frame: frame})
	t.stackByKey[key] = idx
	return idx
}
