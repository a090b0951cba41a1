package weights

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// uniformSamples is the number of uniform draws summed per output.
const uniformSamples = 6

// ApproxNormal implements the distuv.Rander interface by summing six
// uniform draws: a central-limit approximation to a zero-mean normal
// distribution. Unlike a true normal, every output is bounded to
// [-StdDev, StdDev]. The shape of this approximation is part of the
// machine's initialization contract, so it is kept as-is rather than
// replaced with an exact sampler; the noise magnitude is a tuning
// knob, not a statistical requirement.
type ApproxNormal struct {
	StdDev  float64
	uniform distuv.Uniform
}

// NewApproxNormal returns an ApproxNormal with the given standard
// deviation, drawing its uniform samples from src.
func NewApproxNormal(stddev float64, src rand.Source) ApproxNormal {
	return ApproxNormal{
		StdDev:  stddev,
		uniform: distuv.Uniform{Min: 0.0, Max: 1.0, Src: src},
	}
}

// Rand draws a single value from the approximate normal distribution.
func (a ApproxNormal) Rand() float64 {
	var sum float64
	for i := 0; i < uniformSamples; i++ {
		sum += a.uniform.Rand()
	}
	return (sum/uniformSamples)*2.0*a.StdDev - a.StdDev
}
