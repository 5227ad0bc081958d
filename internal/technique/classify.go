package technique

import "math"

// Landmark is a normalized hand-landmark coordinate: x and y in [0,1] with
// y growing downward, z relative depth.
type Landmark struct {
	X, Y, Z float64
}

// Hand is the 21-point landmark set of one detected hand.
type Hand [21]Landmark

// Landmark indices used by the classifier.
const (
	ThumbTip  = 4
	IndexPIP  = 6
	IndexTip  = 8
	MiddlePIP = 10
	MiddleTip = 12
	RingPIP   = 14
	RingTip   = 16
	PinkyPIP  = 18
	PinkyTip  = 20
)

// PinchThreshold is the thumb-to-index tip distance below which a hand
// pinches.
const PinchThreshold = 0.04

// extended reports whether the finger tip is above its PIP joint.
func (h *Hand) extended(tip, pip int) bool {
	return h[tip].Y < h[pip].Y
}

// Classify maps one hand to a technique. Rules are checked in priority
// order: pinch, middle finger alone, four fingers, index and middle, index
// alone.
func Classify(h Hand) Label {
	pinch := math.Hypot(h[IndexTip].X-h[ThumbTip].X, h[IndexTip].Y-h[ThumbTip].Y)
	index := h.extended(IndexTip, IndexPIP)
	middle := h.extended(MiddleTip, MiddlePIP)
	ring := h.extended(RingTip, RingPIP)
	pinky := h.extended(PinkyTip, PinkyPIP)

	switch {
	case pinch < PinchThreshold:
		return Purple
	case middle && !index && !ring && !pinky:
		return Flip
	case index && middle && ring && pinky:
		return Shrine
	case index && middle && !ring:
		return Void
	case index && !middle:
		return Red
	}
	return Neutral
}

// ClassifyFrame classifies every hand in order. Each recognized hand
// overwrites the result, so the last recognizing hand wins and a trailing
// neutral hand leaves it alone.
func ClassifyFrame(hands []Hand) Label {
	detected := Neutral
	for i := range hands {
		if l := Classify(hands[i]); l != Neutral {
			detected = l
		}
	}
	return detected
}
