/*
Package sink provides receivers for the line strips produced by curve
rendering.

Recorder keeps every strip in memory and checks the begin/vertex/end
protocol. It is meant for tests and for tools which post-process strips.
StripBuffer collects vertices into fixed-size batches, the way a vertex
buffer of a graphics API is filled, and hands every full batch to a draw
function.

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package sink

import (
	"errors"
	"fmt"

	"github.com/npillmayer/curveplot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'sink'
func tracer() tracing.Trace {
	return tracing.Select("sink")
}

// ErrProtocol is reported for calls violating the strip protocol.
var ErrProtocol = errors.New("strip protocol violation")

// Recorder is a sink which records strips.
type Recorder struct {
	Strips [][]curveplot.Vertex
	Begins int
	Ends   int
	open   bool
	err    error
}

var _ curveplot.Sink = (*Recorder)(nil)

// BeginStrip is part of interface curveplot.Sink.
func (r *Recorder) BeginStrip() {
	r.Begins++
	if r.open {
		r.fail("strip %d: begin inside open strip", len(r.Strips))
		return
	}
	r.open = true
	r.Strips = append(r.Strips, nil)
}

// Vertex is part of interface curveplot.Sink.
func (r *Recorder) Vertex(v curveplot.Vertex) {
	if !r.open {
		r.fail("vertex %v outside of strip", v)
		return
	}
	i := len(r.Strips) - 1
	r.Strips[i] = append(r.Strips[i], v)
}

// EndStrip is part of interface curveplot.Sink.
func (r *Recorder) EndStrip() {
	r.Ends++
	if !r.open {
		r.fail("end without open strip")
		return
	}
	r.open = false
	if n := len(r.Strips[len(r.Strips)-1]); n < 2 {
		r.fail("strip %d has %d vertices", len(r.Strips)-1, n)
	}
}

// Err returns the first protocol violation, or nil. A strip still open
// counts as a violation.
func (r *Recorder) Err() error {
	if r.err == nil && r.open {
		return fmt.Errorf("%w: strip %d not ended", ErrProtocol, len(r.Strips)-1)
	}
	return r.err
}

// Vertices returns the number of vertices over all strips.
func (r *Recorder) Vertices() int {
	n := 0
	for _, s := range r.Strips {
		n += len(s)
	}
	return n
}

// Reset forgets everything recorded.
func (r *Recorder) Reset() {
	*r = Recorder{}
}

func (r *Recorder) fail(format string, args ...interface{}) {
	if r.err != nil {
		return
	}
	r.err = fmt.Errorf("%w: %s", ErrProtocol, fmt.Sprintf(format, args...))
	tracer().Errorf("%v", r.err)
}
