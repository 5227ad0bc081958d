package technique

// Color is a linear RGB triple in [0,1].
type Color struct{ R, G, B float32 }

// Presentation is how a technique is shown: the glow colour used for the
// skeleton overlay, its display name and the bloom strength.
type Presentation struct {
	Glow  Color
	Hex   string
	Name  string
	Bloom float64
}

var presentations = map[Label]Presentation{
	Neutral: {Hex: "#8de7cf", Name: "Awaiting Hand Gesture", Bloom: 1.4},
	Red:     {Hex: "#ffb347", Name: "Reverse Cursed Technique - Red", Bloom: 2.1},
	Void:    {Hex: "#72ffd7", Name: "Domain Expansion - Infinite Void", Bloom: 1.9},
	Purple:  {Hex: "#ff4fcf", Name: "Secret Technique - Hollow Purple", Bloom: 2.8},
	Shrine:  {Hex: "#ff9a3d", Name: "Domain Expansion - Malevolent Shrine", Bloom: 2.2},
	Flip:    {Hex: "#d3ff70", Name: "Fuck You", Bloom: 2.4},
}

func init() {
	for l, p := range presentations {
		p.Glow = hexColor(p.Hex)
		presentations[l] = p
	}
}

// PresentationFor returns l's presentation, or Neutral's for unknown labels.
func PresentationFor(l Label) Presentation {
	if p, ok := presentations[l]; ok {
		return p
	}
	return presentations[Neutral]
}

func hexColor(s string) Color {
	if len(s) != 7 || s[0] != '#' {
		return Color{1, 1, 1}
	}
	ch := func(i int) float32 { return float32(hexByte(s[i])<<4|hexByte(s[i+1])) / 255 }
	return Color{ch(1), ch(3), ch(5)}
}

func hexByte(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}
