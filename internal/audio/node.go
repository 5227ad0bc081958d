package audio

// Node is a unit of the signal graph. Nodes are pulled once per render
// quantum; the result is cached until the clock advances.
type Node interface {
	base() *nodeBase
	process(in, out *Bus)
}

type nodeBase struct {
	ctx      *Context
	self     Node
	inputs   []Node
	outputs  []Node
	targets  []*Param
	params   []*Param
	in, out  Bus
	rendered int64
}

func (c *Context) newBase(self Node, params ...*Param) nodeBase {
	return nodeBase{ctx: c, self: self, params: params, rendered: -1}
}

func (n *nodeBase) base() *nodeBase { return n }

// Context returns the context that owns the node.
func (n *nodeBase) Context() *Context { return n.ctx }

// Connect routes this node's output into dst's input.
func (n *nodeBase) Connect(dst Node) {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	d := dst.base()
	for _, in := range d.inputs {
		if in == n.self {
			return
		}
	}
	d.inputs = append(d.inputs, n.self)
	n.outputs = append(n.outputs, dst)
}

// ConnectParam sums this node's output into p at audio rate.
func (n *nodeBase) ConnectParam(p *Param) {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, m := range p.mods {
		if m == n.self {
			return
		}
	}
	p.mods = append(p.mods, n.self)
	n.targets = append(n.targets, p)
}

// Disconnect removes every outgoing connection of the node.
func (n *nodeBase) Disconnect() {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	for _, dst := range n.outputs {
		d := dst.base()
		d.inputs = removeNode(d.inputs, n.self)
	}
	for _, p := range n.targets {
		p.mods = removeNode(p.mods, n.self)
	}
	n.outputs, n.targets = nil, nil
}

// Connected reports whether the node feeds anything.
func (n *nodeBase) Connected() bool {
	n.ctx.mu.Lock()
	defer n.ctx.mu.Unlock()
	return len(n.outputs) > 0 || len(n.targets) > 0
}

func removeNode(list []Node, x Node) []Node {
	out := list[:0]
	for _, n := range list {
		if n != x {
			out = append(out, n)
		}
	}
	clear(list[len(out):])
	return out
}

// pull renders n for the current quantum, once. Must hold c.mu.
func (c *Context) pull(n Node) *Bus {
	b := n.base()
	if b.rendered == c.quantum {
		return &b.out
	}
	b.rendered = c.quantum

	channels := 1
	for _, in := range b.inputs {
		if out := c.pull(in); out.Channels > channels {
			channels = out.Channels
		}
	}
	b.in.silence(channels)
	for _, in := range b.inputs {
		b.in.accumulate(&in.base().out)
	}
	for _, p := range b.params {
		p.compute()
	}
	n.process(&b.in, &b.out)
	return &b.out
}
