package fxprof

import "github.com/DaniPopes/tracy/internal/threadtable"

// Categories returns the fixed category list. The indices line up with
// threadtable.CategoryOther/User/Kernel.
func Categories() []Category {
	return []Category{
		{Name: "Other", Color: "grey", Subcategories: []string{"Other"}},
		{Name: "User", Color: "yellow", Subcategories: []string{"Other"}},
		{Name: "Kernel", Color: "orange", Subcategories: []string{"Other"}},
	}
}

// MarkerSchemas describes the marker payloads emitted by the collectors so
// the profiler can label and chart them.
func MarkerSchemas() []MarkerSchema {
	display := []string{"marker-chart", "marker-table", "timeline-overview"}
	return []MarkerSchema{
		{
			Name:         threadtable.MarkerZone,
			Display:      display,
			ChartLabel:   "{marker.data.name}",
			TooltipLabel: "{marker.data.name}",
			TableLabel:   "{marker.data.name}",
			Description:  "Tracy instrumentation zone",
			ColorField:   "color",
			Fields: []SchemaField{
				{Key: "name", Label: "Name", Format: "unique-string"},
				{Key: "text", Label: "Text", Format: "unique-string"},
				{Key: "color", Label: "Color", Format: "string", Hide: true},
				{Key: "file", Label: "File", Format: "unique-string"},
				{Key: "line", Label: "Line", Format: "integer"},
				{Key: "function", Label: "Function", Format: "unique-string"},
			},
		},
		{
			Name:         threadtable.MarkerMessage,
			Display:      display,
			ChartLabel:   "{marker.data.text}",
			TooltipLabel: "{marker.data.text}",
			TableLabel:   "{marker.data.text}",
			Description:  "Tracy log message",
			ColorField:   "color",
			Fields: []SchemaField{
				{Key: "text", Label: "Message", Format: "unique-string"},
				{Key: "color", Label: "Color", Format: "string"},
			},
		},
		{
			Name:         threadtable.MarkerLock,
			Display:      display,
			ChartLabel:   "{marker.data.name}",
			TooltipLabel: "Lock: {marker.data.name} ({marker.data.operation})",
			TableLabel:   "{marker.data.name}",
			Description:  "Tracy lock contention",
			Fields: []SchemaField{
				{Key: "name", Label: "Lock Name", Format: "unique-string"},
				{Key: "lockId", Label: "Lock ID", Format: "integer"},
				{Key: "operation", Label: "Operation", Format: "string"},
			},
		},
		{
			Name:         threadtable.MarkerGpuZone,
			Display:      display,
			ChartLabel:   "{marker.data.name}",
			TooltipLabel: "GPU: {marker.data.name}",
			TableLabel:   "{marker.data.name}",
			Description:  "Tracy GPU zone",
			Fields: []SchemaField{
				{Key: "name", Label: "Name", Format: "unique-string"},
				{Key: "gpuStart", Label: "GPU Start", Format: "time"},
				{Key: "gpuEnd", Label: "GPU End", Format: "time"},
				{Key: "cpuStart", Label: "CPU Start", Format: "time"},
				{Key: "cpuEnd", Label: "CPU End", Format: "time"},
				{Key: "file", Label: "File", Format: "unique-string"},
				{Key: "line", Label: "Line", Format: "integer"},
				{Key: "function", Label: "Function", Format: "unique-string"},
			},
		},
		{
			Name:         threadtable.MarkerFrame,
			Display:      display,
			ChartLabel:   "Frame {marker.data.frameNumber}",
			TooltipLabel: "Frame {marker.data.frameNumber} ({marker.data.fps} FPS)",
			TableLabel:   "Frame {marker.data.frameNumber}",
			Description:  "Tracy frame marker",
			Fields: []SchemaField{
				{Key: "name", Label: "Name", Format: "unique-string"},
				{Key: "frameNumber", Label: "Frame", Format: "integer"},
				{Key: "duration", Label: "Duration (ms)", Format: "duration"},
				{Key: "fps", Label: "FPS", Format: "number"},
			},
		},
	}
}
