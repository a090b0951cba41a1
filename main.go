package main

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"sfneuman.com/gorbm/experiment"
	"sfneuman.com/gorbm/experiment/trackers"
	"sfneuman.com/gorbm/rbm"
	"sfneuman.com/gorbm/utils/matutils"
)

func main() {
	var seed uint64 = 192382

	// One-hot patterns for the machine to memorize. With two hidden
	// units, the four hidden state combinations should learn to decode
	// to the four patterns.
	dataset := rbm.ObservedDataset([][]float64{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	})

	machine := rbm.New(seed)

	// Train with CD-1 for a few thousand epochs, tracking the learning
	// curve
	var tracker trackers.Tracker = trackers.NewMeanError("./data.bin")
	e := experiment.NewCD(machine, dataset, 0.1, 1, 2, 5000, tracker)
	e.ShowProgress(65)
	if err := e.Run(); err != nil {
		panic(err)
	}
	e.Save()

	data := trackers.LoadData("./data.bin")
	fmt.Printf("mean reconstruction error: %v --> %v\n", data[0],
		data[len(data)-1])
	fmt.Println(matutils.Format(machine.Weights()))

	// Decode every hidden state combination back to a visible pattern
	combos := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	for _, hidden := range combos {
		visible, err := machine.SampleVisible(hidden)
		if err != nil {
			panic(err)
		}

		probs := mat.NewVecDense(len(visible), rbm.Probabilities(visible))
		fmt.Printf("hidden %v --> visible unit %v\n", hidden,
			matutils.MaxVec(probs))
	}
}
