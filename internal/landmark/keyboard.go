package landmark

import (
	"context"
	"sync"
	"time"

	"github.com/pion/logging"

	"murasaki/internal/technique"
)

// KeyboardPeriod is how often Keyboard repeats the held pose, roughly a
// camera's frame rate.
const KeyboardPeriod = 33 * time.Millisecond

// Finger joints, MCP to tip.
var fingerJoints = [4][4]int{
	{5, 6, 7, 8},
	{9, 10, 11, 12},
	{13, 14, 15, 16},
	{17, 18, 19, 20},
}

// Fingers says which of index, middle, ring and pinky are extended and
// whether the thumb pinches the index tip.
type Fingers struct {
	Index, Middle, Ring, Pinky bool
	Pinch                      bool
}

// Pose builds a right hand, palm to the camera, with the given fingers.
func Pose(f Fingers) technique.Hand {
	var h technique.Hand
	h[0] = technique.Landmark{X: 0.5, Y: 0.85}
	h[1] = technique.Landmark{X: 0.42, Y: 0.78}
	h[2] = technique.Landmark{X: 0.37, Y: 0.72}
	h[3] = technique.Landmark{X: 0.34, Y: 0.66}
	h[4] = technique.Landmark{X: 0.32, Y: 0.62}

	up := [4]bool{f.Index, f.Middle, f.Ring, f.Pinky}
	for i, j := range fingerJoints {
		x := 0.42 + 0.06*float64(i)
		h[j[0]] = technique.Landmark{X: x, Y: 0.62}
		if up[i] {
			h[j[1]] = technique.Landmark{X: x, Y: 0.52, Z: -0.01}
			h[j[2]] = technique.Landmark{X: x, Y: 0.45, Z: -0.02}
			h[j[3]] = technique.Landmark{X: x, Y: 0.38, Z: -0.03}
		} else {
			h[j[1]] = technique.Landmark{X: x, Y: 0.55, Z: -0.02}
			h[j[2]] = technique.Landmark{X: x, Y: 0.6, Z: -0.04}
			h[j[3]] = technique.Landmark{X: x, Y: 0.64, Z: -0.03}
		}
	}
	if f.Pinch {
		tip := h[technique.IndexTip]
		h[3] = technique.Landmark{X: (h[2].X + tip.X) / 2, Y: (h[2].Y + tip.Y) / 2}
		h[4] = technique.Landmark{X: tip.X - 0.01, Y: tip.Y + 0.01, Z: tip.Z}
	}
	return h
}

// keyPoses binds number keys to canned frames. 0 clears the hands and 6
// holds up a fist, which is detected but neutral.
var keyPoses = map[rune][]technique.Hand{
	'0': nil,
	'1': {Pose(Fingers{Index: true})},
	'2': {Pose(Fingers{Index: true, Middle: true})},
	'3': {Pose(Fingers{Pinch: true})},
	'4': {Pose(Fingers{Index: true, Middle: true, Ring: true, Pinky: true})},
	'5': {Pose(Fingers{Middle: true})},
	'6': {Pose(Fingers{})},
}

// Keyboard is a Source for running without a tracker: number keys select
// a canned pose, which is repeated every KeyboardPeriod.
type Keyboard struct {
	log logging.LeveledLogger

	mu    sync.Mutex
	hands []technique.Hand
}

func NewKeyboard(lf logging.LoggerFactory) *Keyboard {
	return &Keyboard{log: lf.NewLogger("landmark")}
}

// Press selects the pose bound to key and reports whether one is bound.
func (k *Keyboard) Press(key rune) bool {
	hands, ok := keyPoses[key]
	if !ok {
		return false
	}
	k.mu.Lock()
	k.hands = hands
	k.mu.Unlock()
	k.log.Debugf("pose %c", key)
	return true
}

// Frame returns the held pose.
func (k *Keyboard) Frame() Frame {
	k.mu.Lock()
	defer k.mu.Unlock()
	return Frame{Hands: append([]technique.Hand(nil), k.hands...)}
}

func (k *Keyboard) Run(ctx context.Context, out chan<- Frame) error {
	t := time.NewTicker(KeyboardPeriod)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := send(ctx, out, k.Frame()); err != nil {
				return err
			}
		}
	}
}
