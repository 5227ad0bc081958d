package audio

// Destination is the stereo sum that feeds the output device.
type Destination struct {
	nodeBase
}

func (c *Context) newDestination() *Destination {
	d := &Destination{}
	d.nodeBase = c.newBase(d)
	return d
}

func (d *Destination) process(in, out *Bus) {
	out.silence(2)
	out.accumulate(in)
}
