package gesture

import (
	"math"

	"github.com/dshills/touchstone/internal/event"
	"github.com/dshills/touchstone/internal/geom"
	"github.com/dshills/touchstone/internal/input"
)

// Axis restricts which movement a pan recognizer accepts.
type Axis uint8

const (
	AxisHorizontal Axis = iota
	AxisVertical
	AxisAny
)

// String returns a string representation of the axis.
func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "any"
	}
}

// Pan defaults.
const (
	DefaultPanThreshold = 6
	DefaultHistoryLimit = 5
	DefaultDeceleration = 3000
	DefaultMinFPS       = 1
)

// Config holds pan recognition constants.
type Config struct {
	// Threshold is the distance from the start position, on either axis,
	// the pointer must exceed before a pan can START.
	Threshold float64
	// HistoryLimit bounds the position history used for fling velocity.
	HistoryLimit int
	// Deceleration is the fling deceleration in units/s².
	Deceleration float64
	// MinFPS is the lowest frame rate considered usable for velocity.
	MinFPS float64
}

// DefaultConfig returns the default pan configuration.
func DefaultConfig() Config {
	return Config{
		Threshold:    DefaultPanThreshold,
		HistoryLimit: DefaultHistoryLimit,
		Deceleration: DefaultDeceleration,
		MinFPS:       DefaultMinFPS,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.HistoryLimit <= 0 {
		c.HistoryLimit = d.HistoryLimit
	}
	if c.Deceleration <= 0 {
		c.Deceleration = d.Deceleration
	}
	if c.MinFPS <= 0 {
		c.MinFPS = d.MinFPS
	}
	return c
}

// Acceleration describes the fling that follows a released pan: how long
// it lasts and how far it travels on each axis.
type Acceleration struct {
	// Time is the duration in seconds until the fling stops.
	Time geom.Point
	// Distance is the travel of the fling.
	Distance geom.Point
}

// ComputeAcceleration derives a fling from a newest-first position history.
// Velocity is the displacement from the newest to the oldest entry over
// len(history)/fps seconds; the fling decelerates at deceleration until it
// stops. A zero fps or an empty history yields no fling.
func ComputeAcceleration(history []geom.Point, fps, deceleration float64) Acceleration {
	if len(history) == 0 || fps <= 0 || deceleration <= 0 {
		return Acceleration{}
	}

	elapsed := float64(len(history)) / fps
	distance := history[len(history)-1].Sub(history[0])
	velocity := distance.Scale(1 / elapsed)

	stop := geom.Pt(math.Abs(velocity.X)/deceleration, math.Abs(velocity.Y)/deceleration)
	return Acceleration{
		Time:     stop,
		Distance: geom.Pt(velocity.X*stop.X/2, velocity.Y*stop.Y/2),
	}
}

// PanStatus is a snapshot of a pan recognizer.
type PanStatus struct {
	State         State
	Position      geom.Point
	StartPosition geom.Point
	// Delta is the movement since the previous frame, previous minus new.
	Delta geom.Point
	// Acceleration is set only when State is END.
	Acceleration Acceleration
	// DeltaOnly marks a wheel update: only Delta is meaningful.
	DeltaOnly bool
}

// PanEvent is delivered to pan handlers. Sound may be set by the handler.
type PanEvent struct {
	PanStatus
	Sound *Sound
}

// Pan recognizes a drag along an axis.
type Pan struct {
	base

	axis Axis
	cfg  Config

	position      geom.Point
	startPosition geom.Point
	delta         geom.Point
	fingerID      int
	history       []geom.Point

	// Panned fires on START, STAY and END, and once on cancellation.
	Panned event.Event[PanEvent]
}

// NewPan creates a pan recognizer with the default configuration.
func NewPan(axis Axis, handler func(PanEvent)) *Pan {
	return NewPanWithConfig(axis, DefaultConfig(), handler)
}

// NewPanWithConfig creates a pan recognizer. Zero config fields take their
// defaults.
func NewPanWithConfig(axis Axis, cfg Config, handler func(PanEvent)) *Pan {
	p := &Pan{
		axis: axis,
		cfg:  cfg.withDefaults(),
	}
	if handler != nil {
		p.Panned.Subscribe(handler)
	}
	return p
}

// Axis returns the accepted axis.
func (p *Pan) Axis() Axis {
	return p.axis
}

// Config returns the active configuration.
func (p *Pan) Config() Config {
	return p.cfg
}

// SetConfig replaces the configuration. It takes effect on the next frame.
func (p *Pan) SetConfig(cfg Config) {
	p.cfg = cfg.withDefaults()
	p.trimHistory()
}

// History returns a copy of the position history, newest first.
func (p *Pan) History() []geom.Point {
	out := make([]geom.Point, len(p.history))
	copy(out, p.history)
	return out
}

// Status returns the current status snapshot without acceleration.
func (p *Pan) Status() PanStatus {
	return PanStatus{
		State:         p.state,
		Position:      p.position,
		StartPosition: p.startPosition,
		Delta:         p.delta,
	}
}

// Recognize advances the pan state machine by one frame.
func (p *Pan) Recognize(in Input, sound *Sound) State {
	sound = soundOrScratch(sound)

	if p.disabled {
		return StateFailed
	}

	fingerID, phase, pos := in.pointer()

	if consumed, report := p.holdCancelled(phase); consumed {
		if report {
			p.fire(p.Status(), sound)
		}
		return p.state
	}

	switch phase {
	case input.PhaseStart:
		p.history = p.history[:0]
		p.state = StateUnsure
		p.startPosition = pos
		p.position = pos
		p.delta = geom.Point{}
		p.fingerID = fingerID
		p.fire(p.Status(), sound)

	case input.PhaseStay, input.PhaseEnd:
		if fingerID != p.fingerID {
			p.state = StateFailed
			p.lastState = p.state
			return p.state
		}

		p.delta = p.position.Sub(pos)
		p.position = pos

		if p.state == StateUnsure {
			if p.crossedThreshold(pos) && p.axisMatches() {
				p.state = StateStart
			}
		} else if phase == input.PhaseStay {
			p.state = StateStay
		} else {
			p.state = StateEnd
		}

		if p.state == StateStart || p.state == StateStay || p.state == StateEnd {
			status := p.Status()
			if p.state == StateEnd {
				fps := in.Frame.FPSAtLeast(p.cfg.MinFPS)
				status.Acceleration = ComputeAcceleration(p.history, fps, p.cfg.Deceleration)
			}
			p.fire(status, sound)
		}

	case input.PhaseNone:
		p.state = StateFailed
	}

	p.pushHistory(p.position)

	p.lastState = p.state
	return p.state
}

func (p *Pan) crossedThreshold(pos geom.Point) bool {
	d := p.startPosition.Sub(pos).Abs()
	return d.X > p.cfg.Threshold || d.Y > p.cfg.Threshold
}

func (p *Pan) axisMatches() bool {
	d := p.delta.Abs()
	switch p.axis {
	case AxisHorizontal:
		return d.X > d.Y
	case AxisVertical:
		return d.X < d.Y
	default:
		return true
	}
}

func (p *Pan) pushHistory(pos geom.Point) {
	p.history = append(p.history, geom.Point{})
	copy(p.history[1:], p.history)
	p.history[0] = pos
	p.trimHistory()
}

func (p *Pan) trimHistory() {
	if len(p.history) > p.cfg.HistoryLimit {
		p.history = p.history[:p.cfg.HistoryLimit]
	}
}

func (p *Pan) fire(status PanStatus, sound *Sound) {
	p.Panned.Fire(PanEvent{PanStatus: status, Sound: sound})
}
