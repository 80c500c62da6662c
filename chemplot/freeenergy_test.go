package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeEnergyPlot(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "water.png")
	err := FreeEnergyPlot("Water", name, []float64{298, 310, 320}, []float64{-76.40, -76.41, -76.42}, []float64{-76.39, -76.395, -76.40})
	require.NoError(Te, err)
	data, err := os.ReadFile(name)
	require.NoError(Te, err)
	assert.Equal(Te, "\x89PNG", string(data[:4]))
}

func TestEnergyPlotErrors(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "bad.png")
	assert.Error(Te, EnergyPlot("t", name, nil, Series{"gas", nil}))
	assert.Error(Te, EnergyPlot("t", name, []float64{298}))
	assert.Error(Te, EnergyPlot("t", name, []float64{298, 310}, Series{"gas", []float64{1}}))
	assert.NoFileExists(Te, name)
}

func TestSeriesColor(Te *testing.T) {
	first := seriesColor(0, 2)
	second := seriesColor(1, 2)
	assert.NotEqual(Te, first, second)
	assert.Equal(Te, uint8(255), first.A)
	r, g, b := iHVS2RGB(0, 1, 0)
	assert.Equal(Te, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}
