package rbm

// Sample is one stochastic unit read out of a layer: a sampled binary
// state paired with the activation probability that produced it.
type Sample struct {
	State       float64
	Probability float64
}

// Value is a single visible-layer input. A Value is either an observed
// number or missing. Missing units contribute nothing to activation
// energies and receive no weight updates during training, so a dataset
// may hold partial observations without overloading any numeric range
// as a sentinel.
type Value struct {
	Number   float64
	Observed bool
}

// Observed returns a Value holding an observed number.
func Observed(x float64) Value {
	return Value{Number: x, Observed: true}
}

// Missing returns a Value for an unobserved visible unit.
func Missing() Value {
	return Value{}
}

// ObservedLayer converts a plain slice of numbers into a fully
// observed layer assignment.
func ObservedLayer(xs []float64) []Value {
	layer := make([]Value, len(xs))
	for i, x := range xs {
		layer[i] = Observed(x)
	}
	return layer
}

// ObservedDataset converts rows of plain numbers into a fully observed
// training dataset.
func ObservedDataset(rows [][]float64) [][]Value {
	dataset := make([][]Value, len(rows))
	for i, row := range rows {
		dataset[i] = ObservedLayer(row)
	}
	return dataset
}

// States extracts the sampled binary states of a layer.
func States(samples []Sample) []float64 {
	states := make([]float64, len(samples))
	for i, s := range samples {
		states[i] = s.State
	}
	return states
}

// Probabilities extracts the activation probabilities of a layer.
func Probabilities(samples []Sample) []float64 {
	probs := make([]float64, len(samples))
	for i, s := range samples {
		probs[i] = s.Probability
	}
	return probs
}
