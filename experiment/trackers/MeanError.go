package trackers

import (
	"encoding/gob"
	"log"
	"os"

	"gonum.org/v1/gonum/stat"
)

// MeanError tracks and saves the mean reconstruction error of each
// training epoch. When training runs over a dataset, this Tracker
// records the mean of the per-example errors returned for the epoch,
// producing one value per epoch: a learning curve for the run.
//
// Note: epochs with no training examples are not recorded.
type MeanError struct {
	epochErrors []float64
	filename    string
}

// NewMeanError creates and returns a new *MeanError Tracker which will
// save its data at the specified location filename
func NewMeanError(filename string) Tracker {
	var tracker MeanError
	tracker.filename = filename
	return &tracker
}

// Track records the mean per-example reconstruction error of a single
// training epoch
func (m *MeanError) Track(epochErrors []float64) {
	if len(epochErrors) == 0 {
		return
	}
	m.epochErrors = append(m.epochErrors, stat.Mean(epochErrors, nil))
}

// Save saves the data tracked by the MeanError Tracker to disk.
func (m *MeanError) Save() {
	// Open the file to save to
	file, err := os.Create(m.filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	// Encode and save the file
	en := gob.NewEncoder(file)
	if err = en.Encode(m.epochErrors); err != nil {
		log.Fatalf("could not encode error data: %v", err)
	}
}
