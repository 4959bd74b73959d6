package testUtils

import (
	"fmt"
	"math/rand"
	"strings"
)

//DRNGFloat64SliceCustomScale returns a slice of length entries with pseudo random values from -scaleFactor to scaleFactor
//Calling with the same seed will yield the same sequence. Intended to generate large test data sets
func DRNGFloat64SliceCustomScale(length int, seed int64, scaleFactor float64) []float64 {
	dRNGSource := rand.NewSource(seed)
	dRNG := rand.New(dRNGSource)
	buf := make([]float64, length)
	for i := 0; i < length; i++ {
		sign := dRNG.Float32()
		buf[i] = dRNG.Float64() * scaleFactor
		if sign <= 0.5 {
			buf[i] *= -1
		}
	}
	return buf
}

//DRNGSweepTable renders a deterministic pseudo random sweep table with rows frequency samples and dataColumns
//complex columns in the layout of the sweeper output ("freq,  re+imj,  re+imj,  "). Frequencies are
//increasing multiples of 1e11 Hz so that every row is distinct
func DRNGSweepTable(rows, dataColumns int, seed int64) string {
	values := DRNGFloat64SliceCustomScale(2*rows*dataColumns, seed, 10)
	b := &strings.Builder{}
	b.WriteString("# generated sweep table\n")
	for r := 0; r < rows; r++ {
		fmt.Fprintf(b, "%.3f,  ", float64(r+1)*1e11)
		for c := 0; c < dataColumns; c++ {
			idx := 2 * (r*dataColumns + c)
			fmt.Fprintf(b, "%.3f%+.3fj,  ", values[idx], values[idx+1])
		}
		b.WriteString("\n")
	}
	return b.String()
}
