package sweepData

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	vecmath "github.com/cwbudde/algo-vecmath"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/floats"
)

//TeraHertz converts the raw sweep frequencies in Hz to THz
const TeraHertz = 1e12

//Series is the content of a single sweep file, split into the frequency axis and the response columns.
//A Series is never modified after creation
type Series struct {
	Path string
	//Frequencies is the real part of the first column divided by the frequency scale
	Frequencies []float64
	//Columns[i] is data column i+1 of the file, aligned index by index with Frequencies
	Columns [][]complex128
}

//NewSeries splits table into frequencies and the first columns data columns
func NewSeries(path string, table [][]complex128, columns int, frequencyScale float64) (*Series, error) {
	if len(table) == 0 {
		return nil, ErrNoData
	}
	if columns < 1 {
		return nil, fmt.Errorf("at least one data column is required, got %v", columns)
	}
	if frequencyScale == 0 {
		return nil, fmt.Errorf("frequency scale must not be zero")
	}
	if available := len(table[0]) - 1; columns > available {
		return nil, fmt.Errorf("%v has %v data columns but %v were requested : %w", path, available, columns, ErrTooFewColumns)
	}

	s := &Series{
		Path:        path,
		Frequencies: make([]float64, len(table)),
		Columns:     make([][]complex128, columns),
	}
	for c := range s.Columns {
		s.Columns[c] = make([]complex128, len(table))
	}
	for r, row := range table {
		s.Frequencies[r] = real(row[0]) / frequencyScale
		for c := range s.Columns {
			s.Columns[c][r] = row[c+1]
		}
	}
	return s, nil
}

func (s *Series) Len() int {
	return len(s.Frequencies)
}

//RealMagnitude returns |Re(z)| for every entry of data column col
func (s *Series) RealMagnitude(col int) []float64 {
	out := make([]float64, len(s.Columns[col]))
	for i, v := range s.Columns[col] {
		out[i] = math.Abs(real(v))
	}
	return out
}

//NegatedImag returns -Im(z) for every entry of data column col
func (s *Series) NegatedImag(col int) []float64 {
	im := make([]float64, len(s.Columns[col]))
	for i, v := range s.Columns[col] {
		im[i] = imag(v)
	}
	vecmath.ScaleBlockInPlace(im, -1)
	return im
}

//FrequencyRange returns the smallest and largest frequency. Panics on an empty Series
func (s *Series) FrequencyRange() (lo, hi float64) {
	return floats.Min(s.Frequencies), floats.Max(s.Frequencies)
}

//Loader reads sweep files from disk
type Loader struct {
	//FrequencyScale divides the raw frequency column
	FrequencyScale float64
	//Comment marks the start of a comment
	Comment string
	//MaxBytes rejects input files above this size, 0 disables the check
	MaxBytes uint64
}

//NewLoader creates a Loader that refuses files larger than maxMemoryFraction of the physical memory.
//If maxMemoryFraction <= 0 or the memory size cannot be determined, file size is not checked
func NewLoader(frequencyScale float64, comment string, maxMemoryFraction float64) *Loader {
	l := &Loader{
		FrequencyScale: frequencyScale,
		Comment:        comment,
	}
	if maxMemoryFraction > 0 {
		l.MaxBytes = uint64(float64(memory.TotalMemory()) * maxMemoryFraction)
	}
	return l
}

//closeWithErrLog is a helper that calls Close on c and prints a log message if an error occurs
func closeWithErrLog(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Str("file", name).Msg("failed to close")
	}
}

//Load reads the file at path and returns a Series with the first columns data columns
func (l *Loader) Load(path string, columns int) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sweep file : %w", err)
	}
	defer closeWithErrLog(path, f)

	if l.MaxBytes > 0 {
		info, err := f.Stat()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %v : %w", path, err)
		}
		if uint64(info.Size()) > l.MaxBytes {
			return nil, fmt.Errorf("%v is %v bytes, limit is %v : %w", path, info.Size(), l.MaxBytes, ErrFileTooLarge)
		}
	}

	table, err := ParseComplexTable(bufio.NewReader(f), l.Comment)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %v : %w", path, err)
	}
	s, err := NewSeries(path, table, columns, l.FrequencyScale)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("path", path).
		Int("rows", s.Len()).
		Int("dataColumns", len(table[0])-1).
		Msg("loaded sweep file")
	return s, nil
}
