package curveplot

import "gonum.org/v1/gonum/spatial/r3"

// Vertex is a camera space position in single precision, the way graphics
// hardware wants it.
type Vertex [3]float32

// Sink receives the output of rendering: a sequence of line strips.
//
// Every BeginStrip is followed by at least two Vertex calls and is closed by
// exactly one EndStrip. Strips never nest.
type Sink interface {
	BeginStrip()
	Vertex(v Vertex)
	EndStrip()
}

// Sampler receives trajectory states, usually from an orbit propagator.
// *Plot and *SampleBuffer are Samplers.
type Sampler interface {
	Sample(t float64, position, velocity r3.Vec)
}

// SinkFunc adapts three plain functions to a Sink. Nil functions are
// skipped.
type SinkFunc struct {
	Begin func()
	Emit  func(Vertex)
	End   func()
}

func (f SinkFunc) BeginStrip() {
	if f.Begin != nil {
		f.Begin()
	}
}

func (f SinkFunc) Vertex(v Vertex) {
	if f.Emit != nil {
		f.Emit(v)
	}
}

func (f SinkFunc) EndStrip() {
	if f.End != nil {
		f.End()
	}
}

// narrow converts a camera space position to a vertex. This is the only
// place where precision is dropped.
func narrow(p r3.Vec) Vertex {
	return Vertex{float32(p.X), float32(p.Y), float32(p.Z)}
}

// Vec converts a vertex back to double precision.
func (v Vertex) Vec() r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

// SampleBuffer collects samples from a sampler, to be inserted into a plot
// at once. Orbit samplers produce states in time order; when a plot has to
// grow at its front, the collected states are inserted backwards.
type SampleBuffer struct {
	samples []Sample
}

// Sample appends a state to the buffer.
func (b *SampleBuffer) Sample(t float64, position, velocity r3.Vec) {
	b.samples = append(b.samples, Sample{T: t, Position: position, Velocity: velocity})
}

// Len returns the number of buffered samples.
func (b *SampleBuffer) Len() int {
	return len(b.samples)
}

// Reset empties the buffer, keeping its storage.
func (b *SampleBuffer) Reset() {
	b.samples = b.samples[:0]
}

// InsertForward adds the buffered samples to plot, first to last. This
// extends a plot at its back.
func (b *SampleBuffer) InsertForward(plot *Plot) (inserted int) {
	for _, s := range b.samples {
		if plot.AddSample(s) {
			inserted++
		}
	}
	return
}

// InsertBackward adds the buffered samples to plot, last to first. This
// extends a plot at its front.
func (b *SampleBuffer) InsertBackward(plot *Plot) (inserted int) {
	for i := len(b.samples) - 1; i >= 0; i-- {
		if plot.AddSample(b.samples[i]) {
			inserted++
		}
	}
	return
}
