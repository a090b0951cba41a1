// Package weights implements weight initializers that fill gonum
// matrices with values drawn from univariate distributions.
package weights

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer initializes weights
type Initializer interface {
	Initialize(weights *mat.Dense) // initializes weights
}

// LinearUV initializes a single matrix of weights, drawn from a
// univariate distribution
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV creates and returns a new LinearUV
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// Initialize initializes a matrix of weights using values drawn from
// the underlying distribution. Cells are written one at a time so that
// matrix views created by slicing initialize correctly, without
// touching cells outside the view.
func (l LinearUV) Initialize(weights *mat.Dense) {
	if weights == nil {
		return
	}

	r, c := weights.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			weights.Set(i, j, l.Rand())
		}
	}
}
