package trackers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanErrorSaveLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "data.bin")

	tracker := NewMeanError(filename)
	tracker.Track([]float64{1, 3})
	tracker.Track([]float64{2})
	tracker.Track(nil) // empty epochs are not recorded
	tracker.Save()

	data := LoadData(filename)
	require.Len(t, data, 2)
	assert.Equal(t, []float64{2, 2}, data)
}
