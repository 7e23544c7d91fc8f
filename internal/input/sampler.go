package input

// Sample is everything the platform reports for one frame.
type Sample struct {
	Touches    []RawTouchState
	Mouse      RawMouseState
	Controller ControllerState
}

// Sampler is implemented by platform backends. Sample is called exactly once
// per frame; every recognizer in that frame sees the same snapshot.
type Sampler interface {
	Sample() Sample
}

// SamplerFunc adapts a function to the Sampler interface.
type SamplerFunc func() Sample

// Sample calls f.
func (f SamplerFunc) Sample() Sample {
	return f()
}

// ScriptedSampler replays a fixed sequence of samples, then keeps returning
// the zero Sample. It is used by tests and by input recordings.
type ScriptedSampler struct {
	samples []Sample
	next    int
}

// NewScriptedSampler creates a sampler that replays samples in order.
func NewScriptedSampler(samples ...Sample) *ScriptedSampler {
	return &ScriptedSampler{samples: samples}
}

// Push appends samples to the end of the script.
func (s *ScriptedSampler) Push(samples ...Sample) {
	s.samples = append(s.samples, samples...)
}

// Sample returns the next scripted sample.
func (s *ScriptedSampler) Sample() Sample {
	if s.next >= len(s.samples) {
		return Sample{}
	}
	sample := s.samples[s.next]
	s.next++
	return sample
}

// Remaining returns the number of samples not yet replayed.
func (s *ScriptedSampler) Remaining() int {
	return len(s.samples) - s.next
}
