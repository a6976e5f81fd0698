package fxprof

import (
	"github.com/DaniPopes/tracy/internal/libtable"
	"github.com/DaniPopes/tracy/internal/threadtable"
)

// ThreadInfo is the envelope of one output thread.
type ThreadInfo struct {
	Name           string
	ProcessName    string
	Pid            string
	Tid            uint64
	IsMainThread   bool
	RegisterTime   float64
	UnregisterTime float64
}

// ThreadFromTables lowers a finished table set into its columnar form.
func ThreadFromTables(t *threadtable.Tables, info ThreadInfo) Thread {
	return Thread{
		Name:               info.Name,
		IsMainThread:       info.IsMainThread,
		ProcessType:        "default",
		ProcessName:        info.ProcessName,
		ProcessStartupTime: 0,
		RegisterTime:       info.RegisterTime,
		UnregisterTime:     info.UnregisterTime,
		Pid:                info.Pid,
		Tid:                info.Tid,
		FrameTable:         frameTableFrom(t.Frames),
		FuncTable:          funcTableFrom(t.Funcs),
		Markers:            markersFrom(t.Markers),
		NativeSymbols:      nativeSymbolsFrom(t.NativeSymbols),
		NativeAllocations:  nativeAllocationsFrom(t.Allocations),
		ResourceTable:      resourceTableFrom(t.Resources),
		Samples:            samplesFrom(t.Samples),
		StackTable:         stackTableFrom(t.Stacks),
	}
}

// LibsFromTable lowers the shared library manifest.
func LibsFromTable(t *libtable.Table) []Lib {
	entries := t.Libs()
	libs := make([]Lib, 0, len(entries))
	for _, e := range entries {
		libs = append(libs, Lib{
			Name:      e.Name,
			Path:      e.Name,
			DebugName: e.Name,
			DebugPath: e.Name,
			Start:     e.Start,
			End:       e.End,
		})
	}
	return libs
}

func frameTableFrom(frames []threadtable.FrameEntry) FrameTable {
	ft := FrameTable{
		Length:        len(frames),
		Address:       make([]int64, 0, len(frames)),
		Category:      make([]uint32, 0, len(frames)),
		Subcategory:   make([]*uint32, len(frames)),
		Func:          make([]uint32, 0, len(frames)),
		NativeSymbol:  make([]uint32, 0, len(frames)),
		InnerWindowID: make([]*uint32, len(frames)),
		Line:          make([]*uint32, 0, len(frames)),
		Column:        make([]*uint32, 0, len(frames)),
		InlineDepth:   make([]uint32, 0, len(frames)),
	}
	for _, f := range frames {
		ft.Address = append(ft.Address, f.Address)
		ft.Category = append(ft.Category, f.Category)
		ft.Func = append(ft.Func, f.Func)
		ft.NativeSymbol = append(ft.NativeSymbol, f.NativeSymbol)
		ft.Line = append(ft.Line, positive(f.Line))
		ft.Column = append(ft.Column, positive(f.Column))
		ft.InlineDepth = append(ft.InlineDepth, f.InlineDepth)
	}
	return ft
}

func funcTableFrom(funcs []threadtable.FuncEntry) FuncTable {
	ft := FuncTable{
		Length:        len(funcs),
		Name:          make([]uint32, 0, len(funcs)),
		IsJS:          make([]bool, len(funcs)),
		RelevantForJS: make([]bool, len(funcs)),
		Resource:      make([]int32, 0, len(funcs)),
		FileName:      make([]uint32, 0, len(funcs)),
		LineNumber:    make([]*uint32, 0, len(funcs)),
		ColumnNumber:  make([]*uint32, 0, len(funcs)),
	}
	for _, f := range funcs {
		ft.Name = append(ft.Name, f.Name)
		ft.Resource = append(ft.Resource, f.Resource)
		ft.FileName = append(ft.FileName, f.FileName)
		ft.LineNumber = append(ft.LineNumber, positive(f.LineNumber))
		ft.ColumnNumber = append(ft.ColumnNumber, positive(f.ColumnNumber))
	}
	return ft
}

func nativeSymbolsFrom(symbols []threadtable.NativeSymbolEntry) NativeSymbols {
	ns := NativeSymbols{
		Length:       len(symbols),
		LibIndex:     make([]int32, 0, len(symbols)),
		Address:      make([]uint64, 0, len(symbols)),
		Name:         make([]uint32, 0, len(symbols)),
		FunctionSize: make([]*uint32, 0, len(symbols)),
	}
	for _, s := range symbols {
		ns.LibIndex = append(ns.LibIndex, s.LibIndex)
		ns.Address = append(ns.Address, s.Address)
		ns.Name = append(ns.Name, s.Name)
		ns.FunctionSize = append(ns.FunctionSize, positive(s.FunctionSize))
	}
	return ns
}

func resourceTableFrom(resources []threadtable.ResourceEntry) ResourceTable {
	rt := ResourceTable{
		Length: len(resources),
		Lib:    make([]int32, 0, len(resources)),
		Name:   make([]uint32, 0, len(resources)),
		Host:   make([]*uint32, len(resources)),
		Type:   make([]int, 0, len(resources)),
	}
	for _, r := range resources {
		rt.Lib = append(rt.Lib, r.Lib)
		rt.Name = append(rt.Name, r.Name)
		// Resource type 1 is "library".
		rt.Type = append(rt.Type, 1)
	}
	return rt
}

func stackTableFrom(stacks []threadtable.StackEntry) StackTable {
	st := StackTable{
		Length: len(stacks),
		Prefix: make([]*int32, 0, len(stacks)),
		Frame:  make([]uint32, 0, len(stacks)),
	}
	for _, s := range stacks {
		st.Prefix = append(st.Prefix, stackRef(s.Prefix))
		st.Frame = append(st.Frame, s.Frame)
	}
	return st
}

func samplesFrom(samples []threadtable.SampleEntry) Samples {
	out := Samples{
		Length:         len(samples),
		Stack:          make([]*int32, 0, len(samples)),
		TimeDeltas:     make([]float64, 0, len(samples)),
		Weight:         make([]float64, 0, len(samples)),
		WeightType:     "samples",
		ThreadCPUDelta: make([]*float64, len(samples)),
	}
	prevTime := 0.0
	for _, s := range samples {
		out.Stack = append(out.Stack, stackRef(s.Stack))
		out.TimeDeltas = append(out.TimeDeltas, s.Time-prevTime)
		out.Weight = append(out.Weight, s.Weight)
		prevTime = s.Time
	}
	return out
}

func nativeAllocationsFrom(allocations []threadtable.AllocationEntry) *NativeAllocations {
	if len(allocations) == 0 {
		return nil
	}
	na := NativeAllocations{
		Length:        len(allocations),
		Time:          make([]float64, 0, len(allocations)),
		Weight:        make([]int64, 0, len(allocations)),
		WeightType:    "bytes",
		Stack:         make([]*int32, 0, len(allocations)),
		MemoryAddress: make([]uint64, 0, len(allocations)),
		ThreadID:      make([]uint64, 0, len(allocations)),
	}
	for _, a := range allocations {
		na.Time = append(na.Time, a.Time)
		na.Weight = append(na.Weight, a.Weight)
		na.Stack = append(na.Stack, stackRef(a.Stack))
		na.MemoryAddress = append(na.MemoryAddress, a.MemoryAddress)
		na.ThreadID = append(na.ThreadID, a.ThreadID)
	}
	return &na
}

func markersFrom(markers []threadtable.MarkerEntry) Markers {
	m := Markers{
		Length:    len(markers),
		Category:  make([]uint32, 0, len(markers)),
		Data:      make([]interface{}, 0, len(markers)),
		Name:      make([]uint32, 0, len(markers)),
		StartTime: make([]float64, 0, len(markers)),
		EndTime:   make([]float64, 0, len(markers)),
		Phase:     make([]int, 0, len(markers)),
	}
	for _, e := range markers {
		m.Category = append(m.Category, e.Category)
		m.Data = append(m.Data, e.Data)
		m.Name = append(m.Name, e.Name)
		m.StartTime = append(m.StartTime, e.StartTime)
		m.EndTime = append(m.EndTime, e.EndTime)
		m.Phase = append(m.Phase, int(e.Phase))
	}
	return m
}

func positive(v uint32) *uint32 {
	if v == 0 {
		return nil
	}
	return &v
}

func stackRef(idx int32) *int32 {
	if idx < 0 {
		return nil
	}
	return &idx
}
