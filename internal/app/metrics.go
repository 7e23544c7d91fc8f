package app

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/dshills/touchstone/internal/gesture"
)

// durationStat accumulates count, total, min and max of a duration.
type durationStat struct {
	count atomic.Uint64
	total atomic.Int64
	min   atomic.Int64
	max   atomic.Int64
	last  atomic.Int64
}

func (s *durationStat) record(d time.Duration) {
	ns := d.Nanoseconds()
	s.count.Add(1)
	s.total.Add(ns)
	s.last.Store(ns)

	for {
		old := s.min.Load()
		if ns >= old || s.min.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := s.max.Load()
		if ns <= old || s.max.CompareAndSwap(old, ns) {
			break
		}
	}
}

func (s *durationStat) reset() {
	s.count.Store(0)
	s.total.Store(0)
	s.min.Store(math.MaxInt64)
	s.max.Store(0)
	s.last.Store(0)
}

func (s *durationStat) snapshot() Stat {
	st := Stat{
		Count: s.count.Load(),
		Min:   time.Duration(s.min.Load()),
		Max:   time.Duration(s.max.Load()),
		Last:  time.Duration(s.last.Load()),
	}
	if st.Count == 0 {
		st.Min = 0
		return st
	}
	st.Avg = time.Duration(s.total.Load() / int64(st.Count))
	return st
}

// Metrics tracks frame loop timings and user feedback counts.
type Metrics struct {
	frame  durationStat
	input  durationStat
	render durationStat

	droppedFrames atomic.Uint64
	inputSwitches atomic.Uint64
	sounds        [gesture.SoundCount]atomic.Uint64

	startTime atomic.Int64
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{}
	m.Reset()
	return m
}

// RecordFrame records the time spent in one frame.
func (m *Metrics) RecordFrame(d time.Duration) { m.frame.record(d) }

// RecordInput records the time spent sampling and routing input.
func (m *Metrics) RecordInput(d time.Duration) { m.input.record(d) }

// RecordRender records the time spent drawing.
func (m *Metrics) RecordRender(d time.Duration) { m.render.record(d) }

// RecordDroppedFrame records a frame that overran its interval.
func (m *Metrics) RecordDroppedFrame() {
	m.droppedFrames.Add(1)
}

// RecordInputSwitch records a change between touch and gamepad input.
func (m *Metrics) RecordInputSwitch() {
	m.inputSwitches.Add(1)
}

// RecordSound records a feedback sound. SoundNone is ignored.
func (m *Metrics) RecordSound(s gesture.Sound) {
	if s <= gesture.SoundNone || s >= gesture.SoundCount {
		return
	}
	m.sounds[s].Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{
		Uptime:        time.Since(time.Unix(0, m.startTime.Load())),
		Frame:         m.frame.snapshot(),
		Input:         m.input.snapshot(),
		Render:        m.render.snapshot(),
		DroppedFrames: m.droppedFrames.Load(),
		InputSwitches: m.inputSwitches.Load(),
		Sounds:        make(map[gesture.Sound]uint64),
	}
	for s := range m.sounds {
		if n := m.sounds[s].Load(); n > 0 {
			snap.Sounds[gesture.Sound(s)] = n
		}
	}
	return snap
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.frame.reset()
	m.input.reset()
	m.render.reset()
	m.droppedFrames.Store(0)
	m.inputSwitches.Store(0)
	for s := range m.sounds {
		m.sounds[s].Store(0)
	}
	m.startTime.Store(time.Now().UnixNano())
}

// Stat summarizes one timed stage of the frame loop.
type Stat struct {
	Count uint64
	Avg   time.Duration
	Min   time.Duration
	Max   time.Duration
	Last  time.Duration
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime        time.Duration
	Frame         Stat
	Input         Stat
	Render        Stat
	DroppedFrames uint64
	InputSwitches uint64
	// Sounds counts requested feedback sounds by kind.
	Sounds map[gesture.Sound]uint64
}

// DropRate returns the percentage of frames that overran their interval.
func (s MetricsSnapshot) DropRate() float64 {
	if s.Frame.Count == 0 {
		return 0
	}
	return float64(s.DroppedFrames) / float64(s.Frame.Count) * 100
}

// Errors returns how many FocusError and ClickError sounds were requested.
func (s MetricsSnapshot) Errors() uint64 {
	return s.Sounds[gesture.SoundFocusError] + s.Sounds[gesture.SoundClickError]
}

// Timer provides a simple way to measure elapsed time.
type Timer struct {
	start time.Time
}

// StartTimer starts a new timer.
func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started.
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
