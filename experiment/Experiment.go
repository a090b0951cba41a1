// Package experiment implements training experiments that run a
// restricted Boltzmann machine over a dataset for a fixed number of
// epochs
package experiment

import (
	"github.com/pkg/errors"

	"sfneuman.com/gorbm/experiment/trackers"
	"sfneuman.com/gorbm/rbm"
	"sfneuman.com/gorbm/utils/progressbar"
)

// CD trains a restricted Boltzmann machine with contrastive divergence
// by running rbm.Train over the same dataset for a fixed number of
// epochs. Each epoch's per-example reconstruction errors are passed to
// every registered Tracker.
type CD struct {
	machine      *rbm.RBM
	dataset      [][]rbm.Value
	learningRate float64
	gibbsSteps   int
	hiddenUnits  int
	epochs       int
	trackers     []trackers.Tracker
	bar          *progressbar.ProgressBar
}

// NewCD creates and returns a new contrastive divergence experiment on
// a given machine and dataset. The epochs parameter determines how
// many passes over the dataset are run, and the t parameter is a
// slice of trackers.Tracker which determine what data is saved. The
// hiddenUnits parameter is used only when the machine has no weight
// matrix yet.
func NewCD(machine *rbm.RBM, dataset [][]rbm.Value, learningRate float64,
	gibbsSteps, hiddenUnits, epochs int, t ...trackers.Tracker) *CD {
	return &CD{
		machine:      machine,
		dataset:      dataset,
		learningRate: learningRate,
		gibbsSteps:   gibbsSteps,
		hiddenUnits:  hiddenUnits,
		epochs:       epochs,
		trackers:     t,
	}
}

// Register registers a trackers.Tracker with an experiment so that
// data generated during the experiment can be tracked and saved
func (c *CD) Register(t trackers.Tracker) {
	c.trackers = append(c.trackers, t)
}

// ShowProgress attaches a terminal progress bar, width characters
// wide, that is redrawn after every epoch
func (c *CD) ShowProgress(width int) {
	c.bar = progressbar.New(width, c.epochs)
}

// Run runs the entire experiment for all epochs. The first failing
// epoch aborts the experiment.
func (c *CD) Run() error {
	for epoch := 0; epoch < c.epochs; epoch++ {
		epochErrors, err := c.machine.Train(c.dataset, c.learningRate,
			c.gibbsSteps, c.hiddenUnits)
		if err != nil {
			return errors.Wrapf(err, "run: epoch %v", epoch)
		}
		c.track(epochErrors)

		if c.bar != nil {
			c.bar.Increment()
			c.bar.Display()
		}
	}
	return nil
}

// Save saves all the data cached by the Trackers to disk
func (c *CD) Save() {
	for _, tracker := range c.trackers {
		tracker.Save()
	}
}

// track caches the current epoch's data in each Tracker
func (c *CD) track(epochErrors []float64) {
	for _, tracker := range c.trackers {
		tracker.Track(epochErrors)
	}
}
