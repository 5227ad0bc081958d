package audio

// BufferSource plays a Buffer once or in a loop.
type BufferSource struct {
	nodeBase
	source
	buf  *Buffer
	loop bool
	pos  float64
}

func (c *Context) NewBufferSource(b *Buffer, loop bool) *BufferSource {
	s := &BufferSource{buf: b, loop: loop}
	s.nodeBase = c.newBase(s)
	s.source.init(c)
	return s
}

func (s *BufferSource) process(_, out *Bus) {
	channels := min(max(len(s.buf.Channels), 1), 2)
	out.silence(channels)
	n := s.buf.Len()
	from, to := s.window()
	if n == 0 || from == to {
		return
	}
	step := s.buf.SampleRate / s.nodeBase.ctx.sampleRate
	for i := from; i < to; i++ {
		if s.pos >= float64(n) {
			if !s.loop {
				s.ended = true
				return
			}
			s.pos -= float64(n) * float64(int(s.pos/float64(n)))
		}
		j := int(s.pos)
		f := s.pos - float64(j)
		k := j + 1
		if k >= n {
			k = 0
			if !s.loop {
				k = j
			}
		}
		for c := 0; c < channels; c++ {
			ch := s.buf.Channels[c]
			out.ch[c][i] = ch[j] + (ch[k]-ch[j])*f
		}
		s.pos += step
	}
}
