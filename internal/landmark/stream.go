package landmark

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/pion/logging"

	"murasaki/internal/technique"
)

var ErrLandmarkCount = errors.New("landmark: hand needs 21 landmarks")

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// wireFrame accepts both a plain "hands" key and the field name hand
// trackers commonly emit.
type wireFrame struct {
	Hands     [][]point `json:"hands"`
	MultiHand [][]point `json:"multiHandLandmarks"`
}

// Decode parses one JSON frame, such as
//
//	{"hands":[[{"x":0.5,"y":0.8,"z":0}, ...21 points]]}
func Decode(line []byte) (Frame, error) {
	var w wireFrame
	if err := json.Unmarshal(line, &w); err != nil {
		return Frame{}, fmt.Errorf("landmark: decode: %w", err)
	}
	raw := w.Hands
	if raw == nil {
		raw = w.MultiHand
	}
	if len(raw) > MaxHands {
		raw = raw[:MaxHands]
	}
	f := Frame{Hands: make([]technique.Hand, len(raw))}
	for i, pts := range raw {
		if len(pts) != len(technique.Hand{}) {
			return Frame{}, fmt.Errorf("%w: hand %d has %d", ErrLandmarkCount, i, len(pts))
		}
		for j, p := range pts {
			f.Hands[i][j] = technique.Landmark{X: p.X, Y: p.Y, Z: p.Z}
		}
	}
	return f, nil
}

// Stream is a Source reading one JSON frame per line, typically from an
// external tracker piped into stdin. Malformed lines are logged and
// skipped.
type Stream struct {
	r   io.Reader
	log logging.LeveledLogger
}

func NewStream(r io.Reader, lf logging.LoggerFactory) *Stream {
	return &Stream{r: r, log: lf.NewLogger("landmark")}
}

// Run returns nil at end of input. A read blocked on the reader is not
// interrupted by ctx; cancellation is seen before the next frame is sent.
func (s *Stream) Run(ctx context.Context, out chan<- Frame) error {
	sc := bufio.NewScanner(s.r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}
		b := sc.Bytes()
		if len(b) == 0 {
			continue
		}
		f, err := Decode(b)
		if err != nil {
			s.log.Warnf("line %d: %v", line, err)
			continue
		}
		if err := send(ctx, out, f); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("landmark: read: %w", err)
	}
	s.log.Info("landmark stream ended")
	return nil
}
