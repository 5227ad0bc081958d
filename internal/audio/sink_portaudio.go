package audio

import (
	"context"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

// PortAudioSink plays through the default PortAudio output device using an
// interleaved stereo callback.
type PortAudioSink struct {
	mu              sync.Mutex
	framesPerBuffer int
	stream          *portaudio.Stream
}

func NewPortAudioSink(framesPerBuffer int) *PortAudioSink {
	return &PortAudioSink{framesPerBuffer: framesPerBuffer}
}

func (s *PortAudioSink) Open(ctx context.Context, r Renderer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("%w: portaudio: %v", ErrNoPlatform, err)
	}
	stream, err := portaudio.OpenDefaultStream(0, ChannelCount, r.SampleRate(), s.framesPerBuffer, r.Process)
	if err != nil {
		portaudio.Terminate()
		return fmt.Errorf("portaudio: open stream: %w", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return fmt.Errorf("portaudio: start stream: %w", err)
	}
	s.stream = stream
	return nil
}

func (s *PortAudioSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == nil {
		return nil
	}
	err := s.stream.Stop()
	if cerr := s.stream.Close(); err == nil {
		err = cerr
	}
	s.stream = nil
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}
	return err
}
