//Package sweepPlot draws sweep files as frequency response line plots.
//Render builds the traces and hands them to a Figure, Output saves or shows the result
package sweepPlot

import (
	"errors"
	"fmt"
)

const (
	DefaultXLabel = "Frequency (THz)"
	DefaultYLabel = "k/k0"
)

var ErrNoFiles = errors.New("at least one input file is required")

//Options bundles everything Render and Output need to know about a single invocation
type Options struct {
	Files []string
	//Output is the path of the saved figure. Empty means show the figure interactively
	Output string
	//Real and Imag select the drawn components. If neither is set only the real component is drawn
	Real bool
	Imag bool
	//Columns is the number of data columns drawn per file
	Columns int
	XLabel  string
	YLabel  string
	Title   string
	Legend  bool
}

//Components returns which components are drawn, applying the real only default
func (o Options) Components() (drawReal, drawImag bool) {
	if !o.Real && !o.Imag {
		return true, false
	}
	return o.Real, o.Imag
}

//Labels returns the axis labels, falling back to the defaults for empty overrides
func (o Options) Labels() (x, y string) {
	x, y = o.XLabel, o.YLabel
	if x == "" {
		x = DefaultXLabel
	}
	if y == "" {
		y = DefaultYLabel
	}
	return x, y
}

func (o Options) Validate() error {
	if len(o.Files) == 0 {
		return ErrNoFiles
	}
	if o.Columns < 1 {
		return fmt.Errorf("number of columns must be positive, got %v", o.Columns)
	}
	return nil
}
