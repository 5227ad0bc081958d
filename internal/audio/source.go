package audio

import (
	"errors"
	"math"
)

var ErrAlreadyStarted = errors.New("audio: source already started")

// source holds the start/stop schedule shared by generator nodes.
type source struct {
	owner      *Context
	started    bool
	start      float64
	stop       float64
	ended      bool
	frameStart int64
}

func (s *source) init(c *Context) {
	s.owner = c
	s.stop = math.Inf(1)
}

// Start schedules the source to begin at t. A source starts once.
func (s *source) Start(t float64) error {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true
	s.start = t
	s.owner.started++
	return nil
}

// Stop schedules the source to end at t.
func (s *source) Stop(t float64) {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	s.stop = t
}

// Ended reports whether a stopped source has played past its stop time.
func (s *source) Ended() bool {
	s.owner.mu.Lock()
	defer s.owner.mu.Unlock()
	return s.ended
}

// window returns the half-open range of frames in the current quantum
// during which the source plays. Must hold ctx.mu.
func (s *source) window() (from, to int) {
	if !s.started || s.ended {
		return 0, 0
	}
	sr := s.owner.sampleRate
	f0 := s.owner.frame
	startFrame := toFrame(s.start, sr)
	stopFrame := int64(math.MaxInt64)
	if !math.IsInf(s.stop, 1) {
		stopFrame = toFrame(s.stop, sr)
	}
	if stopFrame <= f0 {
		s.ended = true
		return 0, 0
	}
	from = int(max(startFrame-f0, 0))
	to = int(min(stopFrame-f0, Quantum))
	if from > Quantum {
		from = Quantum
	}
	if to < from {
		to = from
	}
	return from, to
}

// toFrame rounds a time up to the next frame, forgiving float error.
func toFrame(t, sampleRate float64) int64 {
	return int64(math.Ceil(t*sampleRate - 1e-6))
}
