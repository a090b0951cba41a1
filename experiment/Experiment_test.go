package experiment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfneuman.com/gorbm/rbm"
)

// countingTracker records how many epochs were tracked.
type countingTracker struct {
	epochs int
	saved  bool
}

func (c *countingTracker) Track(epochErrors []float64) { c.epochs++ }
func (c *countingTracker) Save()                       { c.saved = true }

func TestCDRunsAllEpochs(t *testing.T) {
	machine := rbm.New(13)
	dataset := rbm.ObservedDataset([][]float64{{1, 0, 0}, {0, 1, 0}})
	tracker := &countingTracker{}

	e := NewCD(machine, dataset, 0.1, 1, 2, 3, tracker)
	require.NoError(t, e.Run())
	e.Save()

	assert.Equal(t, 3, tracker.epochs)
	assert.True(t, tracker.saved)
	assert.Equal(t, 3, machine.VisibleUnits())
	assert.Equal(t, 2, machine.HiddenUnits())
}

func TestCDFailingEpochAborts(t *testing.T) {
	machine := rbm.New(13)
	dataset := rbm.ObservedDataset([][]float64{{1, 0}})
	tracker := &countingTracker{}

	// gibbsSteps of zero makes every epoch fail
	e := NewCD(machine, dataset, 0.1, 0, 2, 5, tracker)
	err := e.Run()

	assert.True(t, errors.Is(err, rbm.ErrInvalidArgument))
	assert.Zero(t, tracker.epochs)
}
