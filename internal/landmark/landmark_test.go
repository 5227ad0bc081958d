package landmark

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/pion/logging"

	"murasaki/internal/technique"
)

func TestKeyboardPoses(t *testing.T) {
	tests := []struct {
		key   rune
		hands int
		want  technique.Label
	}{
		{'0', 0, technique.Neutral},
		{'1', 1, technique.Red},
		{'2', 1, technique.Void},
		{'3', 1, technique.Purple},
		{'4', 1, technique.Shrine},
		{'5', 1, technique.Flip},
		{'6', 1, technique.Neutral},
	}
	k := NewKeyboard(logging.NewDefaultLoggerFactory())
	for _, tt := range tests {
		if !k.Press(tt.key) {
			t.Fatalf("key %c not bound", tt.key)
		}
		f := k.Frame()
		if len(f.Hands) != tt.hands {
			t.Errorf("key %c: %d hands, want %d", tt.key, len(f.Hands), tt.hands)
		}
		if got := technique.ClassifyFrame(f.Hands); got != tt.want {
			t.Errorf("key %c classifies as %v, want %v", tt.key, got, tt.want)
		}
	}
	k.Press('5')
	if k.Press('x') {
		t.Error("unbound key accepted")
	}
	if got := technique.ClassifyFrame(k.Frame().Hands); got != technique.Flip {
		t.Errorf("unbound key changed the pose to %v", got)
	}
}

func TestKeyboardRun(t *testing.T) {
	k := NewKeyboard(logging.NewDefaultLoggerFactory())
	k.Press('2')
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Frame)
	done := make(chan error, 1)
	go func() { done <- k.Run(ctx, out) }()

	select {
	case f := <-out:
		if got := technique.ClassifyFrame(f.Hands); got != technique.Void {
			t.Errorf("frame classifies as %v, want void", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no frame")
	}
	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func handJSON(h technique.Hand) string {
	pts := make([]string, len(h))
	for i, p := range h {
		pts[i] = fmt.Sprintf(`{"x":%g,"y":%g,"z":%g}`, p.X, p.Y, p.Z)
	}
	return "[" + strings.Join(pts, ",") + "]"
}

func TestDecode(t *testing.T) {
	red := handJSON(Pose(Fingers{Index: true}))
	shrine := handJSON(Pose(Fingers{Index: true, Middle: true, Ring: true, Pinky: true}))

	tests := []struct {
		name  string
		line  string
		hands int
		want  technique.Label
		err   bool
	}{
		{"empty", `{"hands":[]}`, 0, technique.Neutral, false},
		{"one hand", `{"hands":[` + red + `]}`, 1, technique.Red, false},
		{"tracker key", `{"multiHandLandmarks":[` + shrine + `]}`, 1, technique.Shrine, false},
		{"last hand wins", `{"hands":[` + red + `,` + shrine + `]}`, 2, technique.Shrine, false},
		{"third hand dropped", `{"hands":[` + red + `,` + red + `,` + shrine + `]}`, 2, technique.Red, false},
		{"short hand", `{"hands":[[{"x":0,"y":0,"z":0}]]}`, 0, technique.Neutral, true},
		{"not json", `hands`, 0, technique.Neutral, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Decode([]byte(tt.line))
			if (err != nil) != tt.err {
				t.Fatalf("Decode error = %v, want error %v", err, tt.err)
			}
			if err != nil {
				return
			}
			if len(f.Hands) != tt.hands {
				t.Errorf("%d hands, want %d", len(f.Hands), tt.hands)
			}
			if got := technique.ClassifyFrame(f.Hands); got != tt.want {
				t.Errorf("classifies as %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeLandmarkCount(t *testing.T) {
	_, err := Decode([]byte(`{"hands":[[]]}`))
	if !errors.Is(err, ErrLandmarkCount) {
		t.Errorf("Decode = %v, want ErrLandmarkCount", err)
	}
}

func TestStreamSkipsBadLines(t *testing.T) {
	input := strings.Join([]string{
		`{"hands":[` + handJSON(Pose(Fingers{Index: true})) + `]}`,
		`garbage`,
		``,
		`{"hands":[` + handJSON(Pose(Fingers{Middle: true})) + `]}`,
	}, "\n")
	s := NewStream(strings.NewReader(input), logging.NewDefaultLoggerFactory())
	out := make(chan Frame, 4)
	if err := s.Run(context.Background(), out); err != nil {
		t.Fatalf("Run: %v", err)
	}
	close(out)
	var got []technique.Label
	for f := range out {
		got = append(got, technique.ClassifyFrame(f.Hands))
	}
	if len(got) != 2 || got[0] != technique.Red || got[1] != technique.Flip {
		t.Errorf("frames = %v, want [red flip]", got)
	}
}

func TestStreamCancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	s := NewStream(pr, logging.NewDefaultLoggerFactory())
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan Frame)
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx, out) }()

	line := `{"hands":[]}` + "\n"
	if _, err := io.WriteString(pw, line); err != nil {
		t.Fatal(err)
	}
	select {
	case <-out:
	case <-time.After(time.Second):
		t.Fatal("no frame")
	}
	cancel()
	if _, err := io.WriteString(pw, line); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}
