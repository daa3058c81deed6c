package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/npillmayer/curveplot"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// ErrInvalidOrbit is returned for orbital elements which do not describe a
// closed orbit.
var ErrInvalidOrbit = errors.New("invalid orbital elements")

const (
	keplerIterations = 20
	keplerTolerance  = 1e-14
)

// Elements are classical Keplerian orbital elements. Angles are in radians.
type Elements struct {
	SemiMajorAxis float64
	Eccentricity  float64
	Inclination   float64
	AscendingNode float64
	ArgPeriapsis  float64
	MeanAnomaly   float64 // at Epoch
	Epoch         float64
	Period        float64
}

// KeplerOrbit is an elliptical two-body orbit, sampled at a fixed number of
// states per revolution.
type KeplerOrbit struct {
	el               Elements
	samplesPerPeriod int
	toReference      r3.Rotation
}

// NewKeplerOrbit creates an orbit from elements. samplesPerPeriod below 4
// is raised to 4.
func NewKeplerOrbit(el Elements, samplesPerPeriod int) (*KeplerOrbit, error) {
	switch {
	case el.SemiMajorAxis <= 0:
		return nil, fmt.Errorf("%w: semi-major axis %g", ErrInvalidOrbit, el.SemiMajorAxis)
	case el.Eccentricity < 0 || el.Eccentricity >= 1:
		return nil, fmt.Errorf("%w: eccentricity %g", ErrInvalidOrbit, el.Eccentricity)
	case el.Period <= 0:
		return nil, fmt.Errorf("%w: period %g", ErrInvalidOrbit, el.Period)
	}
	if samplesPerPeriod < 4 {
		samplesPerPeriod = 4
	}
	z, x := r3.Vec{Z: 1}, r3.Vec{X: 1}
	rot := compose(
		r3.NewRotation(el.ArgPeriapsis, z),
		r3.NewRotation(el.Inclination, x),
		r3.NewRotation(el.AscendingNode, z),
	)
	return &KeplerOrbit{el: el, samplesPerPeriod: samplesPerPeriod, toReference: rot}, nil
}

// compose returns a rotation applying rots in order.
func compose(rots ...r3.Rotation) r3.Rotation {
	q := quat.Number{Real: 1}
	for _, r := range rots {
		q = quat.Mul(quat.Number(r), q)
	}
	return r3.Rotation(q)
}

// State returns position and velocity at time t.
func (o *KeplerOrbit) State(t float64) (position, velocity r3.Vec) {
	el := o.el
	n := 2 * math.Pi / el.Period
	M := el.MeanAnomaly + n*(t-el.Epoch)
	E := eccentricAnomaly(M, el.Eccentricity)
	sinE, cosE := math.Sincos(E)
	b := el.SemiMajorAxis * math.Sqrt(1-el.Eccentricity*el.Eccentricity)
	dE := n / (1 - el.Eccentricity*cosE)
	p := r3.Vec{X: el.SemiMajorAxis * (cosE - el.Eccentricity), Y: b * sinE}
	v := r3.Vec{X: -el.SemiMajorAxis * sinE * dE, Y: b * cosE * dE}
	return o.toReference.Rotate(p), o.toReference.Rotate(v)
}

// eccentricAnomaly solves Kepler's equation M = E − e·sin E by Newton
// iteration.
func eccentricAnomaly(M, e float64) float64 {
	M = math.Remainder(M, 2*math.Pi)
	E := M
	if e > 0.8 {
		E = math.Pi
		if M < 0 {
			E = -math.Pi
		}
	}
	for i := 0; i < keplerIterations; i++ {
		sinE, cosE := math.Sincos(E)
		dE := (E - e*sinE - M) / (1 - e*cosE)
		E -= dE
		if math.Abs(dE) < keplerTolerance {
			break
		}
	}
	return E
}

// SampleRange is part of interface plotcache.Trajectory.
func (o *KeplerOrbit) SampleRange(start, end float64, s curveplot.Sampler) {
	step := o.el.Period / float64(o.samplesPerPeriod)
	n := int(math.Ceil((end-start)/step - 1e-9))
	if n < 1 {
		n = 1
	}
	for k := 0; k <= n; k++ {
		t := start + (end-start)*float64(k)/float64(n)
		if k == n {
			t = end
		}
		p, v := o.State(t)
		s.Sample(t, p, v)
	}
}

func (o *KeplerOrbit) Periodic() bool {
	return true
}

func (o *KeplerOrbit) Period() float64 {
	return o.el.Period
}

// ValidRange is part of interface plotcache.Trajectory. Kepler orbits are
// valid at all times.
func (o *KeplerOrbit) ValidRange() (begin, end float64) {
	return 0, 0
}
