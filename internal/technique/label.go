// Package technique turns hand landmarks into one of six techniques and
// dispatches technique changes to the audio engine and the particle
// targets.
package technique

import (
	"fmt"
	"strings"
)

// Label names a technique.
type Label int

const (
	Neutral Label = iota
	Red
	Void
	Purple
	Shrine
	Flip
)

// Labels lists every technique in declaration order.
var Labels = []Label{Neutral, Red, Void, Purple, Shrine, Flip}

var labelNames = [...]string{
	Neutral: "neutral",
	Red:     "red",
	Void:    "void",
	Purple:  "purple",
	Shrine:  "shrine",
	Flip:    "flip",
}

func (l Label) String() string {
	if l < 0 || int(l) >= len(labelNames) {
		return fmt.Sprintf("Label(%d)", int(l))
	}
	return labelNames[l]
}

// ParseLabel accepts the lower-case technique names, ignoring case and
// surrounding space.
func ParseLabel(s string) (Label, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range labelNames {
		if name == s {
			return Label(l), nil
		}
	}
	return Neutral, fmt.Errorf("technique: unknown label %q", s)
}
