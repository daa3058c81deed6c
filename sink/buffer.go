package sink

import "github.com/npillmayer/curveplot"

// DefaultCapacity is the number of vertices a StripBuffer holds before it
// draws.
const DefaultCapacity = 4096

// DrawFunc draws a batch of strips. vertices holds the strips back to back,
// lengths the number of vertices of each strip. Both slices are reused
// after the call returns.
type DrawFunc func(vertices []curveplot.Vertex, lengths []int)

// StripBuffer is a sink which batches strips into a buffer of fixed
// capacity. When the buffer is full, the strip being built is split: the
// first part is drawn and the last vertex is carried over to start the rest.
// Strips therefore look continuous on screen.
//
// Call Flush after rendering a frame to draw what remains.
type StripBuffer struct {
	draw       DrawFunc
	capacity   int
	vertices   []curveplot.Vertex
	lengths    []int
	open       bool
	stripStart int
	batches    int
}

var _ curveplot.Sink = (*StripBuffer)(nil)

// NewStripBuffer creates a buffer for capacity vertices. Capacities below 2
// are replaced by DefaultCapacity.
func NewStripBuffer(capacity int, draw DrawFunc) *StripBuffer {
	if capacity < 2 {
		capacity = DefaultCapacity
	}
	return &StripBuffer{
		draw:     draw,
		capacity: capacity,
		vertices: make([]curveplot.Vertex, 0, capacity),
	}
}

// BeginStrip is part of interface curveplot.Sink.
func (b *StripBuffer) BeginStrip() {
	if b.open {
		tracer().Errorf("strip buffer: begin inside open strip, closing it")
		b.EndStrip()
	}
	b.open = true
	b.stripStart = len(b.vertices)
}

// Vertex is part of interface curveplot.Sink.
func (b *StripBuffer) Vertex(v curveplot.Vertex) {
	if !b.open {
		tracer().Errorf("strip buffer: vertex outside of strip dropped")
		return
	}
	if len(b.vertices) == b.capacity {
		if n := len(b.vertices) - b.stripStart; n >= 2 {
			last := b.vertices[len(b.vertices)-1]
			b.lengths = append(b.lengths, n)
			b.stripStart = len(b.vertices)
			b.Flush()
			b.vertices = append(b.vertices, last)
		} else {
			b.Flush()
		}
	}
	b.vertices = append(b.vertices, v)
}

// EndStrip is part of interface curveplot.Sink.
func (b *StripBuffer) EndStrip() {
	if !b.open {
		return
	}
	b.open = false
	if n := len(b.vertices) - b.stripStart; n >= 2 {
		b.lengths = append(b.lengths, n)
	} else {
		b.vertices = b.vertices[:b.stripStart]
	}
	b.stripStart = len(b.vertices)
}

// Flush draws all completed strips. Vertices of a strip still open are kept
// for the next batch.
func (b *StripBuffer) Flush() {
	done := len(b.vertices)
	if b.open {
		done = b.stripStart
	}
	if len(b.lengths) > 0 {
		b.draw(b.vertices[:done], b.lengths)
		b.batches++
	}
	n := copy(b.vertices, b.vertices[done:])
	b.vertices = b.vertices[:n]
	b.lengths = b.lengths[:0]
	b.stripStart = 0
}

// Batches returns the number of draw calls so far.
func (b *StripBuffer) Batches() int {
	return b.batches
}

// Len returns the number of vertices currently buffered.
func (b *StripBuffer) Len() int {
	return len(b.vertices)
}
