package weights

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestApproxNormalBoundsAndMean(t *testing.T) {
	const stddev = 0.5

	approx := NewApproxNormal(stddev, rand.NewSource(42))
	draws := make([]float64, 10000)
	for i := range draws {
		draws[i] = approx.Rand()

		assert.LessOrEqual(t, draws[i], stddev)
		assert.GreaterOrEqual(t, draws[i], -stddev)
	}

	assert.InDelta(t, 0.0, stat.Mean(draws, nil), 0.05*stddev)
}

// onesRander makes initialized cells distinguishable from untouched
// zero cells.
type onesRander struct{}

func (onesRander) Rand() float64 { return 1.0 }

// TestLinearUVRespectsViews initializes a sliced view of a matrix and
// checks that cells outside the view stay untouched.
func TestLinearUVRespectsViews(t *testing.T) {
	m := mat.NewDense(4, 4, nil)
	init := NewLinearUV(onesRander{})

	init.Initialize(m.Slice(1, 4, 1, 4).(*mat.Dense))

	for i := 0; i < 4; i++ {
		assert.Zero(t, m.At(i, 0))
		assert.Zero(t, m.At(0, i))
	}
	for i := 1; i < 4; i++ {
		for j := 1; j < 4; j++ {
			assert.Equal(t, 1.0, m.At(i, j))
		}
	}
}

func TestZeroUV(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})
	NewLinearUV(NewZeroUV()).Initialize(m)

	assert.True(t, mat.Equal(m, mat.NewDense(2, 3, nil)))
}
