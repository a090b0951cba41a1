// Package rbm implements a restricted Boltzmann machine: a two-layer,
// fully connected, symmetrically weighted stochastic network with
// Bernoulli visible and hidden units, trained online by contrastive
// divergence.
//
// A single weight matrix of dimensions (V+1) x (H+1) holds both
// connection weights and bias weights, where V and H are the visible
// and hidden layer sizes. Row 0 holds the bias weights feeding hidden
// units and column 0 the bias weights feeding visible units, so the
// same scalar weight is read when sampling in either direction. Cell
// (0, 0) is inert: no unit is connected to it and it is never read.
package rbm

import (
	"math"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"sfneuman.com/gorbm/rbm/initializers/weights"
	"sfneuman.com/gorbm/utils/floatutils"
)

// connectionStdDev is the standard deviation of the noise used to
// initialize connection weights.
const connectionStdDev = 0.01

// logOddsEpsilon bounds marginal activation proportions away from 0
// and 1 so that the log-odds bias initialization stays finite.
const logOddsEpsilon = 1e-8

// RBM is a restricted Boltzmann machine. An RBM owns its weight matrix
// exclusively: training mutates the matrix in place, and concurrent
// use of a single RBM must be serialized by the caller.
type RBM struct {
	weights *mat.Dense
	uniform distuv.Uniform
	src     rand.Source
}

// New returns a new RBM with no weight matrix. The matrix is built by
// Initialize, or lazily by the first call to Train that supplies a
// hidden unit count. All randomness consumed by the machine flows from
// the given seed.
func New(seed uint64) *RBM {
	src := rand.NewSource(seed)
	return &RBM{
		uniform: distuv.Uniform{Min: 0.0, Max: 1.0, Src: src},
		src:     src,
	}
}

// NewFromWeights returns a new RBM using a previously learned weight
// matrix. The matrix must be at least 2 x 2: one bias row, one bias
// column, and at least one unit per layer.
func NewFromWeights(w *mat.Dense, seed uint64) (*RBM, error) {
	if w == nil {
		return nil, errors.Wrap(ErrInvalidArgument,
			"newFromWeights: weights cannot be nil")
	}
	r, c := w.Dims()
	if r < 2 || c < 2 {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"newFromWeights: weights must be at least 2x2, got %vx%v", r, c)
	}

	machine := New(seed)
	machine.weights = w
	return machine, nil
}

// Initialized returns whether the machine has a weight matrix.
func (m *RBM) Initialized() bool {
	return m.weights != nil
}

// VisibleUnits returns the number of visible units, excluding the bias
// unit. An uninitialized machine has no units.
func (m *RBM) VisibleUnits() int {
	if m.weights == nil {
		return 0
	}
	r, _ := m.weights.Dims()
	return r - 1
}

// HiddenUnits returns the number of hidden units, excluding the bias
// unit. An uninitialized machine has no units.
func (m *RBM) HiddenUnits() int {
	if m.weights == nil {
		return 0
	}
	_, c := m.weights.Dims()
	return c - 1
}

// Weights returns the machine's weight matrix. The matrix is shared,
// not copied: it is the same matrix that Train mutates.
func (m *RBM) Weights() *mat.Dense {
	return m.weights
}

// Initialize builds the weight matrix for a machine that does not have
// one yet. The visibleProportions argument holds, per visible unit,
// the marginal activation proportion of that unit over the training
// set; it fixes the visible layer size and seeds each visible bias
// weight with the log-odds of its proportion. Connection weights are
// drawn from a bounded approximate gaussian with standard deviation
// 0.01 and hidden bias weights start at zero.
func (m *RBM) Initialize(visibleProportions []float64, hiddenUnits int) error {
	if m.weights != nil {
		return errors.Wrap(ErrInvalidArgument,
			"initialize: weight matrix already exists")
	}
	if len(visibleProportions) == 0 {
		return errors.Wrap(ErrInvalidArgument,
			"initialize: need at least one visible unit")
	}
	if hiddenUnits < 1 {
		return errors.Wrapf(ErrInvalidArgument,
			"initialize: need at least one hidden unit, got %v", hiddenUnits)
	}

	visibleUnits := len(visibleProportions)
	w := mat.NewDense(visibleUnits+1, hiddenUnits+1, nil)

	// Fill the connection block, leaving the bias row and column alone
	init := weights.NewLinearUV(weights.NewApproxNormal(connectionStdDev,
		m.src))
	init.Initialize(w.Slice(1, visibleUnits+1, 1, hiddenUnits+1).(*mat.Dense))

	// Visible bias weights hold the log-odds of each unit's marginal
	// activation proportion, clipped so units that are always on or
	// always off get a finite bias.
	for i, p := range visibleProportions {
		p = floatutils.Clip(p, logOddsEpsilon, 1.0-logOddsEpsilon)
		w.Set(i+1, 0, math.Log(p/(1.0-p)))
	}

	m.weights = w
	return nil
}

// SampleHidden samples the hidden layer given an assignment of the
// visible layer. For each hidden unit, the unit's activation energy is
// the bias weight plus the weighted sum of the visible values; the
// logistic function maps the energy to an activation probability, and
// the unit's binary state is drawn from that probability. The returned
// slice has exactly HiddenUnits() entries; the bias unit is excluded.
//
// Fails with ErrInvalidArgument if the input is empty or its length is
// not VisibleUnits(), and with ErrNotInitialized if no weight matrix
// exists. Nothing is computed on failure.
func (m *RBM) SampleHidden(visible []float64) ([]Sample, error) {
	err := m.checkLayer("sampleHidden", len(visible), m.VisibleUnits())
	if err != nil {
		return nil, err
	}
	return m.sampleHidden(ObservedLayer(visible)), nil
}

// SampleVisible samples the visible layer given an assignment of the
// hidden layer. It is symmetric with SampleHidden, reading the same
// weight matrix transposed, and returns exactly VisibleUnits() entries.
//
// The failure contract is the same as SampleHidden's, with the input
// length checked against HiddenUnits().
func (m *RBM) SampleVisible(hidden []float64) ([]Sample, error) {
	err := m.checkLayer("sampleVisible", len(hidden), m.HiddenUnits())
	if err != nil {
		return nil, err
	}
	return m.sampleVisible(ObservedLayer(hidden)), nil
}

// Train runs one pass of online contrastive divergence over the
// dataset: for each row in order, a positive phase driven by the
// clamped row, a negative phase of gibbsSteps alternating Gibbs
// samples, and an in-place weight update. Rows see the updates made by
// the rows before them.
//
// If the machine has no weight matrix, one is built first from the
// dataset's per-unit marginal activation proportions and hiddenUnits;
// without a positive hiddenUnits the call fails with
// ErrNotInitialized. Once a matrix exists its dimensions never change
// and hiddenUnits is ignored.
//
// Train returns one reconstruction error per dataset row, in dataset
// order. A row whose length disagrees with the visible layer size
// aborts the whole call with ErrInvalidArgument.
func (m *RBM) Train(dataset [][]Value, learningRate float64, gibbsSteps,
	hiddenUnits int) ([]float64, error) {
	if len(dataset) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument,
			"train: dataset cannot be empty")
	}
	if gibbsSteps < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"train: gibbsSteps must be positive, got %v", gibbsSteps)
	}

	if m.weights == nil {
		if hiddenUnits < 1 {
			return nil, errors.Wrap(ErrNotInitialized,
				"train: no weight matrix and no hidden unit count to "+
					"build one")
		}
		err := m.Initialize(marginals(dataset), hiddenUnits)
		if err != nil {
			return nil, err
		}
	}

	visibleUnits := m.VisibleUnits()
	trainErrors := make([]float64, 0, len(dataset))
	for r, example := range dataset {
		if len(example) != visibleUnits {
			return nil, errors.Wrapf(ErrInvalidArgument,
				"train: row %v has %v values, expected %v", r,
				len(example), visibleUnits)
		}
		trainErrors = append(trainErrors,
			m.contrastiveDivergence(example, learningRate, gibbsSteps))
	}
	return trainErrors, nil
}

// contrastiveDivergence runs one CD-n update for a single training
// example and returns the example's reconstruction error.
func (m *RBM) contrastiveDivergence(example []Value, learningRate float64,
	gibbsSteps int) float64 {
	// Positive phase: hidden activations driven by the clamped example
	hiddenPos := m.sampleHidden(example)

	// Negative phase: restart from the clamped example and run
	// gibbsSteps alternations of hidden-given-visible then
	// visible-given-hidden. States drive the chain; the final hidden
	// activations are computed from the reconstruction's probabilities.
	visibleStates := example
	var visibleNeg []Sample
	for step := 0; step < gibbsSteps; step++ {
		hidden := m.sampleHidden(visibleStates)
		visibleNeg = m.sampleVisible(ObservedLayer(States(hidden)))
		visibleStates = ObservedLayer(States(visibleNeg))
	}
	hiddenNeg := m.sampleHidden(ObservedLayer(Probabilities(visibleNeg)))

	// Bias augmentation: a constant-on unit aligns every layer with
	// the bias row and column of the weight matrix
	on := Sample{State: 1.0, Probability: 1.0}
	visiblePos := append([]Value{Observed(1.0)}, example...)
	hiddenPos = append([]Sample{on}, hiddenPos...)
	visibleNeg = append([]Sample{on}, visibleNeg...)
	hiddenNeg = append([]Sample{on}, hiddenNeg...)

	var sqErr float64
	for i := range visiblePos {
		if !visiblePos[i].Observed {
			// Unobserved units contribute no gradient
			continue
		}
		for j := range hiddenPos {
			gradient := visiblePos[i].Number*hiddenPos[j].Probability -
				visibleNeg[i].Probability*hiddenNeg[j].Probability
			m.weights.Set(i, j, m.weights.At(i, j)+learningRate*gradient)

			diff := binarize(visiblePos[i].Number) -
				visibleNeg[i].Probability
			sqErr += diff * diff
		}
	}
	return sqErr
}

// sampleHidden samples every hidden unit given a visible assignment.
// The input length must already be validated.
func (m *RBM) sampleHidden(visible []Value) []Sample {
	_, cols := m.weights.Dims()

	samples := make([]Sample, cols-1)
	for j := 1; j < cols; j++ {
		energy := m.weights.At(0, j) // bias unit is always on
		for i, v := range visible {
			if !v.Observed {
				continue
			}
			energy += m.weights.At(i+1, j) * v.Number
		}
		samples[j-1] = m.bernoulli(logistic(energy))
	}
	return samples
}

// sampleVisible samples every visible unit given a hidden assignment,
// reading the same weight matrix as sampleHidden transposed.
func (m *RBM) sampleVisible(hidden []Value) []Sample {
	rows, _ := m.weights.Dims()

	samples := make([]Sample, rows-1)
	for i := 1; i < rows; i++ {
		energy := m.weights.At(i, 0)
		for j, h := range hidden {
			if !h.Observed {
				continue
			}
			energy += m.weights.At(i, j+1) * h.Number
		}
		samples[i-1] = m.bernoulli(logistic(energy))
	}
	return samples
}

// bernoulli draws a binary state that is on with probability p.
func (m *RBM) bernoulli(p float64) Sample {
	state := 0.0
	if m.uniform.Rand() < p {
		state = 1.0
	}
	return Sample{State: state, Probability: p}
}

// checkLayer validates a layer assignment before any sampling work is
// done.
func (m *RBM) checkLayer(op string, have, want int) error {
	if m.weights == nil {
		return errors.Wrapf(ErrNotInitialized, "%v: no weight matrix", op)
	}
	if have == 0 {
		return errors.Wrapf(ErrInvalidArgument,
			"%v: layer assignment cannot be empty", op)
	}
	if have != want {
		return errors.Wrapf(ErrInvalidArgument,
			"%v: expected %v units, got %v", op, want, have)
	}
	return nil
}

// marginals computes each visible unit's marginal activation
// proportion over the dataset, skipping missing values.
func marginals(dataset [][]Value) []float64 {
	proportions := make([]float64, len(dataset[0]))
	column := make([]float64, 0, len(dataset))

	for i := range proportions {
		column = column[:0]
		for _, row := range dataset {
			if i < len(row) && row[i].Observed {
				column = append(column, row[i].Number)
			}
		}
		if len(column) > 0 {
			proportions[i] = stat.Mean(column, nil)
		}
	}
	return proportions
}

// logistic maps an activation energy to a probability in (0, 1).
func logistic(energy float64) float64 {
	return 1.0 / (1.0 + math.Exp(-energy))
}

// binarize maps a truthy visible value to 1 and anything else to 0.
func binarize(x float64) float64 {
	if x != 0 {
		return 1.0
	}
	return 0.0
}
