package usecase

// Palette is the fixed set of presence colors. The first entry doubles as the
// fallback for users whose color cannot be resolved.
var Palette = []string{
	"#007ACC", "#FF6B6B", "#4ECDC4", "#45B7D1",
	"#96CEB4", "#FFEAA7", "#DDA0DD", "#FFB347",
}

// DefaultColor is used when a member's color is unknown.
const DefaultColor = "#007ACC"

// ColorAt returns the palette color for the nth allocation, cycling once the
// palette is exhausted. Session hosts are colored this way so consecutive
// sessions get different host colors.
func ColorAt(n int) string {
	if n < 0 {
		n = 0
	}
	return Palette[n%len(Palette)]
}

// AssignColor returns the first palette color not present in used. When every
// color is taken it falls back to the first palette entry; duplicates are
// acceptable once the palette is exhausted.
func AssignColor(used map[string]struct{}) string {
	for _, c := range Palette {
		if _, ok := used[c]; !ok {
			return c
		}
	}
	return Palette[0]
}
