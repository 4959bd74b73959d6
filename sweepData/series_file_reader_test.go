package sweepData

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pbnjay/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qeppsPlot/testUtils"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_Load(t *testing.T) {
	path := writeFile(t, "a.txt", "0,1+0j\n1e12,2-1j\n")
	l := NewLoader(TeraHertz, "#", 0)

	s, err := l.Load(path, 1)
	require.NoError(t, err)

	assert.Equal(t, path, s.Path)
	assert.True(t, testUtils.FloatSliceEqUpTo([]float64{0, 1}, s.Frequencies, 1e-12), "frequencies %v", s.Frequencies)
	assert.True(t, testUtils.FloatSliceEqUpTo([]float64{1, 2}, s.RealMagnitude(0), 1e-12))
	assert.True(t, testUtils.FloatSliceEqUpTo([]float64{0, 1}, s.NegatedImag(0), 1e-12))
}

func TestLoader_LoadTooFewColumns(t *testing.T) {
	path := writeFile(t, "a.txt", "0,1+0j\n1e12,2-1j\n")
	_, err := NewLoader(TeraHertz, "#", 0).Load(path, 2)
	assert.ErrorIs(t, err, ErrTooFewColumns)
}

func TestLoader_LoadMissingFile(t *testing.T) {
	_, err := NewLoader(TeraHertz, "#", 0).Load(filepath.Join(t.TempDir(), "missing.txt"), 1)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_LoadEmptyFile(t *testing.T) {
	path := writeFile(t, "empty.txt", "# nothing converged\n")
	_, err := NewLoader(TeraHertz, "#", 0).Load(path, 1)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLoader_LoadFrequencyOnly(t *testing.T) {
	path := writeFile(t, "freq.txt", "0\n1\n")
	_, err := NewLoader(TeraHertz, "#", 0).Load(path, 1)
	assert.ErrorIs(t, err, ErrTooFewColumns)
}

func TestLoader_LoadFileTooLarge(t *testing.T) {
	path := writeFile(t, "a.txt", "0,1+0j\n1e12,2-1j\n")
	l := &Loader{FrequencyScale: TeraHertz, Comment: "#", MaxBytes: 4}
	_, err := l.Load(path, 1)
	assert.ErrorIs(t, err, ErrFileTooLarge)
}

func TestNewLoader_MemoryFraction(t *testing.T) {
	assert.Zero(t, NewLoader(TeraHertz, "#", 0).MaxBytes)
	//memory.TotalMemory reports 0 on unsupported platforms, which disables the check
	l := NewLoader(TeraHertz, "#", 0.5)
	assert.LessOrEqual(t, l.MaxBytes, memory.TotalMemory())
}

//every requested column has to be aligned with the frequency axis
func TestLoader_ColumnsAlignedWithFrequencies(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rows := int(seed) * 7
		path := writeFile(t, "gen.txt", testUtils.DRNGSweepTable(rows, 3, seed))
		for columns := 1; columns <= 3; columns++ {
			s, err := NewLoader(TeraHertz, "#", 0).Load(path, columns)
			require.NoError(t, err)
			require.Len(t, s.Columns, columns)
			assert.Equal(t, rows, s.Len())
			for i := range s.Columns {
				assert.Len(t, s.Columns[i], s.Len())
				assert.Len(t, s.RealMagnitude(i), s.Len())
				assert.Len(t, s.NegatedImag(i), s.Len())
			}
		}
	}
}

func TestSeries_FrequencyRange(t *testing.T) {
	s, err := NewSeries("x", [][]complex128{{3e12, 1}, {1e12, 1}, {2e12, 1}}, 1, TeraHertz)
	require.NoError(t, err)
	lo, hi := s.FrequencyRange()
	assert.InDelta(t, 1.0, lo, 1e-12)
	assert.InDelta(t, 3.0, hi, 1e-12)
}

func TestSeries_RealMagnitudeIsAbsolute(t *testing.T) {
	s, err := NewSeries("x", [][]complex128{{0, complex(-2, 1)}, {1, complex(3, -1)}}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, s.RealMagnitude(0))
	assert.Equal(t, []float64{-1, 1}, s.NegatedImag(0))
}

func TestNewSeries_InvalidArguments(t *testing.T) {
	table := [][]complex128{{0, 1}}
	_, err := NewSeries("x", table, 0, 1)
	assert.Error(t, err)
	_, err = NewSeries("x", table, 1, 0)
	assert.Error(t, err)
	_, err = NewSeries("x", nil, 1, 1)
	assert.ErrorIs(t, err, ErrNoData)
}
