package colorutil

// Graph color names understood by the Firefox Profiler, with their
// reference RGB values.
var palette = []struct {
	name    string
	r, g, b int
}{
	{"blue", 0, 112, 243},
	{"green", 16, 185, 129},
	{"grey", 156, 163, 175},
	{"ink", 17, 24, 39},
	{"magenta", 236, 72, 153},
	{"orange", 249, 115, 22},
	{"purple", 168, 85, 247},
	{"red", 239, 68, 68},
	{"teal", 20, 184, 166},
	{"yellow", 234, 179, 8},
}

// ToGraphColor quantizes a 24-bit RGB zone color to the closest palette
// entry by Euclidean distance. Pure white means no color was set and
// returns false. Ties resolve to the earlier palette entry.
func ToGraphColor(rgb uint32) (string, bool) {
	r := int(rgb>>16) & 0xff
	g := int(rgb>>8) & 0xff
	b := int(rgb) & 0xff

	if r == 0xff && g == 0xff && b == 0xff {
		return "", false
	}

	closest := ""
	minDistance := -1
	for _, c := range palette {
		dr, dg, db := r-c.r, g-c.g, b-c.b
		distance := dr*dr + dg*dg + db*db
		if minDistance < 0 || distance < minDistance {
			minDistance = distance
			closest = c.name
		}
	}
	return closest, true
}
