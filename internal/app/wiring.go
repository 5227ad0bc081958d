// Package app wires the landmark source, the technique controller, the
// drone engine and the window into the desktop program.
package app

import (
	"context"
	"os"
	"time"

	"github.com/pion/logging"

	"murasaki/internal/audio"
	"murasaki/internal/config"
	"murasaki/internal/landmark"
)

// UnlockTimeout bounds how long opening the output device may take.
const UnlockTimeout = 5 * time.Second

// portAudioFrames is the portaudio callback size: four render quanta.
const portAudioFrames = 4 * config.RenderQuantum

// newSink returns the configured output, or nil for no audio.
func newSink(cfg config.Config) audio.Sink {
	switch cfg.AudioBackend {
	case config.BackendOto:
		s := audio.NewOtoSink()
		s.SetVolume(cfg.Volume)
		return s
	case config.BackendPortAudio:
		return audio.NewPortAudioSink(portAudioFrames)
	}
	return nil
}

// newSource returns the configured landmark source. The keyboard is
// returned as well when it is the source, so key presses can reach it.
func newSource(cfg config.Config, lf logging.LoggerFactory) (landmark.Source, *landmark.Keyboard) {
	if cfg.LandmarkSource == config.LandmarksStdin {
		return landmark.NewStream(os.Stdin, lf), nil
	}
	kb := landmark.NewKeyboard(lf)
	return kb, kb
}

type unlockResult struct {
	ok  bool
	err error
}

// unlocker runs the audio unlock off the render thread. A trigger starts
// at most one attempt; a failed attempt re-arms it.
type unlocker struct {
	unlock  func(context.Context) (bool, error)
	log     logging.LeveledLogger
	pending chan unlockResult
	done    bool
}

func newUnlocker(unlock func(context.Context) (bool, error), log logging.LeveledLogger) *unlocker {
	return &unlocker{unlock: unlock, log: log}
}

// Trigger starts an unlock attempt unless one is running or audio is
// already enabled or unavailable.
func (u *unlocker) Trigger(ctx context.Context) {
	if u.done || u.pending != nil {
		return
	}
	ch := make(chan unlockResult, 1)
	u.pending = ch
	go func() {
		ctx, cancel := context.WithTimeout(ctx, UnlockTimeout)
		defer cancel()
		ok, err := u.unlock(ctx)
		ch <- unlockResult{ok, err}
	}()
}

// Poll collects a finished attempt and reports whether one finished.
func (u *unlocker) Poll() bool {
	if u.pending == nil {
		return false
	}
	var res unlockResult
	select {
	case res = <-u.pending:
	default:
		return false
	}
	u.pending = nil
	switch {
	case res.err != nil:
		u.log.Warnf("audio unlock failed, press again to retry: %v", res.err)
	case res.ok:
		u.done = true
	default:
		u.log.Info("no audio platform, running silent")
		u.done = true
	}
	return true
}

// Armed reports whether a trigger would start an attempt.
func (u *unlocker) Armed() bool { return !u.done && u.pending == nil }
