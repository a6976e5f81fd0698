// Package fxprof holds the logical schema of the Firefox Profiler
// "preprocessed profile" format: columnar struct-of-arrays tables, each
// carrying its row count in a length field, with cross-references expressed
// as indices and absent references as JSON null.
package fxprof

// Format version numbers, per the profiler's format changelog.
const (
	PreprocessedProfileVersion = 57
	GeckoProfileVersion        = 28
)

type (
	Profile struct {
		Meta     Meta       `json:"meta"`
		Libs     []Lib      `json:"libs"`
		Threads  []Thread   `json:"threads"`
		Counters []Counter  `json:"counters,omitempty"`
		Shared   SharedData `json:"shared"`
	}

	SharedData struct {
		StringArray []string `json:"stringArray"`
	}

	Meta struct {
		Categories                 []Category     `json:"categories"`
		Debug                      bool           `json:"debug"`
		ImportedFrom               string         `json:"importedFrom,omitempty"`
		Interval                   float64        `json:"interval"`
		MarkerSchema               []MarkerSchema `json:"markerSchema"`
		PausedRanges               []interface{}  `json:"pausedRanges"`
		Platform                   string         `json:"platform"`
		PreprocessedProfileVersion int            `json:"preprocessedProfileVersion"`
		ProcessType                int            `json:"processType"`
		Product                    string         `json:"product"`
		SampleUnits                SampleUnits    `json:"sampleUnits"`
		SourceCodeIsNotOnSearchfox bool           `json:"sourceCodeIsNotOnSearchfox"`
		StartTime                  float64        `json:"startTime"`
		StartTimeNanosecondsBoot   int64          `json:"startTimeAsClockMonotonicNanosecondsSinceBoot"`
		Symbolicated               bool           `json:"symbolicated"`
		UsesOnlyOneStackType       bool           `json:"usesOnlyOneStackType"`
		Version                    int            `json:"version"`
	}

	SampleUnits struct {
		Time           string `json:"time"`
		EventDelay     string `json:"eventDelay"`
		ThreadCPUDelta string `json:"threadCPUDelta"`
	}

	Category struct {
		Name          string   `json:"name"`
		Color         string   `json:"color"`
		Subcategories []string `json:"subcategories"`
	}

	Lib struct {
		Arch       *string `json:"arch"`
		Name       string  `json:"name"`
		Path       string  `json:"path"`
		DebugName  string  `json:"debugName"`
		DebugPath  string  `json:"debugPath"`
		Start      uint64  `json:"start"`
		End        uint64  `json:"end"`
		BreakpadID *string `json:"breakpadId"`
		CodeID     *string `json:"codeId"`
	}

	MarkerSchema struct {
		Name         string        `json:"name"`
		Display      []string      `json:"display"`
		ChartLabel   string        `json:"chartLabel"`
		TooltipLabel string        `json:"tooltipLabel"`
		TableLabel   string        `json:"tableLabel"`
		Description  string        `json:"description"`
		ColorField   string        `json:"colorField,omitempty"`
		Fields       []SchemaField `json:"fields"`
	}

	SchemaField struct {
		Key    string `json:"key"`
		Label  string `json:"label"`
		Format string `json:"format"`
		Hide   bool   `json:"hide,omitempty"`
	}

	Thread struct {
		Name                string             `json:"name"`
		IsMainThread        bool               `json:"isMainThread"`
		ProcessType         string             `json:"processType"`
		ProcessName         string             `json:"processName"`
		ProcessStartupTime  float64            `json:"processStartupTime"`
		ProcessShutdownTime *float64           `json:"processShutdownTime"`
		RegisterTime        float64            `json:"registerTime"`
		UnregisterTime      float64            `json:"unregisterTime"`
		Pid                 string             `json:"pid"`
		Tid                 uint64             `json:"tid"`
		FrameTable          FrameTable         `json:"frameTable"`
		FuncTable           FuncTable          `json:"funcTable"`
		Markers             Markers            `json:"markers"`
		NativeSymbols       NativeSymbols      `json:"nativeSymbols"`
		NativeAllocations   *NativeAllocations `json:"nativeAllocations,omitempty"`
		ResourceTable       ResourceTable      `json:"resourceTable"`
		Samples             Samples            `json:"samples"`
		StackTable          StackTable         `json:"stackTable"`
	}

	FrameTable struct {
		Length        int       `json:"length"`
		Address       []int64   `json:"address"`
		Category      []uint32  `json:"category"`
		Subcategory   []*uint32 `json:"subcategory"`
		Func          []uint32  `json:"func"`
		NativeSymbol  []uint32  `json:"nativeSymbol"`
		InnerWindowID []*uint32 `json:"innerWindowID"`
		Line          []*uint32 `json:"line"`
		Column        []*uint32 `json:"column"`
		InlineDepth   []uint32  `json:"inlineDepth"`
	}

	FuncTable struct {
		Length        int       `json:"length"`
		Name          []uint32  `json:"name"`
		IsJS          []bool    `json:"isJS"`
		RelevantForJS []bool    `json:"relevantForJS"`
		Resource      []int32   `json:"resource"`
		FileName      []uint32  `json:"fileName"`
		LineNumber    []*uint32 `json:"lineNumber"`
		ColumnNumber  []*uint32 `json:"columnNumber"`
	}

	NativeSymbols struct {
		Length       int       `json:"length"`
		LibIndex     []int32   `json:"libIndex"`
		Address      []uint64  `json:"address"`
		Name         []uint32  `json:"name"`
		FunctionSize []*uint32 `json:"functionSize"`
	}

	ResourceTable struct {
		Length int       `json:"length"`
		Lib    []int32   `json:"lib"`
		Name   []uint32  `json:"name"`
		Host   []*uint32 `json:"host"`
		Type   []int     `json:"type"`
	}

	StackTable struct {
		Length int      `json:"length"`
		Prefix []*int32 `json:"prefix"`
		Frame  []uint32 `json:"frame"`
	}

	Samples struct {
		Length         int        `json:"length"`
		Stack          []*int32   `json:"stack"`
		TimeDeltas     []float64  `json:"timeDeltas"`
		Weight         []float64  `json:"weight"`
		WeightType     string     `json:"weightType"`
		ThreadCPUDelta []*float64 `json:"threadCPUDelta"`
	}

	NativeAllocations struct {
		Length        int       `json:"length"`
		Time          []float64 `json:"time"`
		Weight        []int64   `json:"weight"`
		WeightType    string    `json:"weightType"`
		Stack         []*int32  `json:"stack"`
		MemoryAddress []uint64  `json:"memoryAddress"`
		ThreadID      []uint64  `json:"threadId"`
	}

	Markers struct {
		Length    int           `json:"length"`
		Category  []uint32      `json:"category"`
		Data      []interface{} `json:"data"`
		Name      []uint32      `json:"name"`
		StartTime []float64     `json:"startTime"`
		EndTime   []float64     `json:"endTime"`
		Phase     []int         `json:"phase"`
	}

	Counter struct {
		Name            string         `json:"name"`
		Category        string         `json:"category"`
		Description     string         `json:"description"`
		Color           string         `json:"color,omitempty"`
		Pid             string         `json:"pid"`
		MainThreadIndex int            `json:"mainThreadIndex"`
		Samples         CounterSamples `json:"samples"`
	}

	CounterSamples struct {
		Time   []float64 `json:"time"`
		Count  []float64 `json:"count"`
		Length int       `json:"length"`
	}
)
