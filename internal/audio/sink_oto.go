package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/hajimehoshi/oto/v2"
)

// OtoSink plays through oto. The oto context is created on the first Open
// and kept for the life of the process, since oto allows only one.
type OtoSink struct {
	mu     sync.Mutex
	ctx    *oto.Context
	ready  chan struct{}
	player oto.Player
	volume float64
}

func NewOtoSink() *OtoSink {
	return &OtoSink{volume: 1}
}

func (s *OtoSink) Open(ctx context.Context, r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player != nil {
		return nil
	}
	if s.ctx == nil {
		c, ready, err := oto.NewContext(int(r.SampleRate()), ChannelCount, oto.FormatFloat32LE)
		if err != nil {
			return fmt.Errorf("%w: oto: %v", ErrNoPlatform, err)
		}
		s.ctx, s.ready = c, ready
	}
	select {
	case <-s.ready:
	case <-ctx.Done():
		return fmt.Errorf("oto: waiting for device: %w", ctx.Err())
	}
	p := s.ctx.NewPlayer(r)
	p.SetVolume(s.volume)
	p.Play()
	s.player = p
	return nil
}

// SetVolume sets the player volume in [0,1].
func (s *OtoSink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = min(max(v, 0), 1)
	if s.player != nil {
		s.player.SetVolume(s.volume)
	}
}

func (s *OtoSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.player == nil {
		return nil
	}
	err := s.player.Close()
	s.player = nil
	return err
}
