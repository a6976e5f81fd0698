package threadtable

// Marker kind tags. They double as marker names and schema keys in the
// profile output.
const (
	MarkerZone    = "TracyZone"
	MarkerGpuZone = "TracyGpuZone"
	MarkerMessage = "TracyMessage"
	MarkerLock    = "TracyLock"
	MarkerFrame   = "TracyFrame"
)

// Typed marker payloads. Fields holding a *uint32 are indices into the
// shared string table and encode as "unique-string" marker fields; optional
// ones are nil when the source event carried no value.
type (
	ZoneMarkerData struct {
		Type     string  `json:"type"`
		Name     uint32  `json:"name"`
		Text     *uint32 `json:"text,omitempty"`
		Color    string  `json:"color,omitempty"`
		File     *uint32 `json:"file,omitempty"`
		Line     *uint32 `json:"line,omitempty"`
		Function *uint32 `json:"function,omitempty"`
	}

	GpuZoneMarkerData struct {
		Type     string  `json:"type"`
		Name     uint32  `json:"name"`
		GpuStart float64 `json:"gpuStart"`
		GpuEnd   float64 `json:"gpuEnd"`
		CpuStart float64 `json:"cpuStart"`
		CpuEnd   float64 `json:"cpuEnd"`
		File     *uint32 `json:"file,omitempty"`
		Line     *uint32 `json:"line,omitempty"`
		Function *uint32 `json:"function,omitempty"`
	}

	MessageMarkerData struct {
		Type  string `json:"type"`
		Text  uint32 `json:"text"`
		Color string `json:"color,omitempty"`
	}

	LockMarkerData struct {
		Type      string `json:"type"`
		Name      uint32 `json:"name"`
		LockID    uint32 `json:"lockId"`
		Operation string `json:"operation"`
	}

	FrameMarkerData struct {
		Type        string  `json:"type"`
		Name        uint32  `json:"name"`
		FrameNumber uint64  `json:"frameNumber"`
		Duration    float64 `json:"duration"`
		FPS         float64 `json:"fps"`
	}
)
