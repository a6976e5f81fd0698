package timeutil

// MillisFromNS converts a trace timestamp in nanoseconds to profile
// milliseconds.
func MillisFromNS(ns int64) float64 {
	return float64(ns) / 1e6
}
