// Package tracejson reads a flattened trace dump: the JSON document an
// external dump step produces from a capture, optionally LZ4-compressed. It
// implements the trace query contract, so the conversion core never knows
// traces can come from files at all.
package tracejson

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pierrec/lz4/v4"

	"github.com/DaniPopes/tracy/internal/trace"
)

// FormatVersion is the dump schema version this package understands.
const FormatVersion = 1

// ErrUnsupportedVersion indicates a dump written by an incompatible dumper.
var ErrUnsupportedVersion = errors.New("unsupported trace dump version")

type dump struct {
	Version          int    `json:"version"`
	CaptureName      string `json:"captureName,omitempty"`
	Program          string `json:"program,omitempty"`
	HostInfo         string `json:"hostInfo,omitempty"`
	Pid              uint64 `json:"pid,omitempty"`
	SamplingPeriodNS int64  `json:"samplingPeriodNs,omitempty"`
	CaptureTimeMS    int64  `json:"captureTimeMs,omitempty"`

	ThreadPids  map[uint64]uint64   `json:"threadPids,omitempty"`
	Threads     []*trace.Thread     `json:"threads,omitempty"`
	Locks       []*trace.Lock       `json:"locks,omitempty"`
	Messages    []*trace.Message    `json:"messages,omitempty"`
	FrameSet    *trace.FrameSet     `json:"frameSet,omitempty"`
	GpuContexts []*trace.GpuContext `json:"gpuContexts,omitempty"`
	MemPools    []*trace.MemPool    `json:"memPools,omitempty"`
	Plots       []*trace.Plot       `json:"plots,omitempty"`

	Callstacks         map[trace.CallstackID][]trace.FrameID `json:"callstacks,omitempty"`
	CallstackFrames    map[trace.FrameID]*trace.FrameData    `json:"callstackFrames,omitempty"`
	CanonicalAddresses map[trace.FrameID]uint64              `json:"canonicalAddresses,omitempty"`
	SymbolSizes        map[uint64]uint32                     `json:"symbolSizes,omitempty"`
}

// Reader serves the trace query contract from a fully decoded dump.
type Reader struct {
	d dump
}

// Open reads a dump file. Files ending in .lz4 are decompressed on the fly.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".lz4") {
		r = lz4.NewReader(f)
	}
	return New(r)
}

// New decodes a dump from r.
func New(r io.Reader) (*Reader, error) {
	var d dump
	if err := jsoniter.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decoding trace dump: %w", err)
	}
	if d.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}
	return &Reader{d: d}, nil
}

// WaitReady is immediate: a decoded dump is fully materialized, the
// background analyses ran before it was written.
func (r *Reader) WaitReady() {}

func (r *Reader) Threads() []*trace.Thread         { return r.d.Threads }
func (r *Reader) Locks() []*trace.Lock             { return r.d.Locks }
func (r *Reader) Messages() []*trace.Message       { return r.d.Messages }
func (r *Reader) FrameSet() *trace.FrameSet        { return r.d.FrameSet }
func (r *Reader) GpuContexts() []*trace.GpuContext { return r.d.GpuContexts }
func (r *Reader) MemPools() []*trace.MemPool       { return r.d.MemPools }
func (r *Reader) Plots() []*trace.Plot             { return r.d.Plots }

func (r *Reader) Callstack(id trace.CallstackID) []trace.FrameID {
	return r.d.Callstacks[id]
}

func (r *Reader) CallstackFrame(id trace.FrameID) *trace.FrameData {
	return r.d.CallstackFrames[id]
}

func (r *Reader) CanonicalAddress(id trace.FrameID) uint64 {
	return r.d.CanonicalAddresses[id]
}

func (r *Reader) SymbolSize(addr uint64) uint32 {
	return r.d.SymbolSizes[addr]
}

func (r *Reader) CaptureName() string     { return r.d.CaptureName }
func (r *Reader) Program() string         { return r.d.Program }
func (r *Reader) HostInfo() string        { return r.d.HostInfo }
func (r *Reader) Pid() uint64             { return r.d.Pid }
func (r *Reader) SamplingPeriodNS() int64 { return r.d.SamplingPeriodNS }
func (r *Reader) CaptureTimeMS() int64    { return r.d.CaptureTimeMS }

func (r *Reader) ThreadPid(tid uint64) uint64 {
	return r.d.ThreadPids[tid]
}
