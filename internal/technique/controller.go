package technique

import (
	"github.com/pion/logging"

	"murasaki/internal/config"
	"murasaki/internal/rng"
)

// AudioSink receives technique changes.
type AudioSink interface {
	SetTechnique(l Label, immediate bool)
}

// Controller holds the active technique and applies transitions. It is
// driven from a single goroutine.
type Controller struct {
	label   Label
	shake   float64
	pres    Presentation
	audio   AudioSink
	targets *Targets
	rand    *rng.Rand
	log     logging.LeveledLogger
}

// NewController starts in Neutral with targets filled for it. audio may be
// nil.
func NewController(audio AudioSink, targets *Targets, r *rng.Rand, lf logging.LoggerFactory) *Controller {
	c := &Controller{
		label:   Neutral,
		pres:    PresentationFor(Neutral),
		audio:   audio,
		targets: targets,
		rand:    r,
		log:     lf.NewLogger("technique"),
	}
	targets.Fill(Neutral, r)
	return c
}

// Update applies l if it differs from the active technique and reports
// whether it did.
func (c *Controller) Update(l Label) bool {
	if l == c.label {
		return false
	}
	c.log.Debugf("technique %s -> %s", c.label, l)
	c.label = l
	c.shake = 0
	if l != Neutral {
		c.shake = config.ShakeIntensity
	}
	c.pres = PresentationFor(l)
	if c.audio != nil {
		c.audio.SetTechnique(l, false)
	}
	c.targets.Fill(l, c.rand)
	return true
}

func (c *Controller) Label() Label { return c.label }

// Shake is the screen-shake intensity, 0 when neutral.
func (c *Controller) Shake() float64 { return c.shake }

func (c *Controller) Presentation() Presentation { return c.pres }

func (c *Controller) Targets() *Targets { return c.targets }
