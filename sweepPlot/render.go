package sweepPlot

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"qeppsPlot/sweepData"
)

//Component identifies which part of the complex response a Trace shows
type Component int

const (
	RealPart Component = iota
	ImagPart
)

func (c Component) String() string {
	if c == ImagPart {
		return "Im"
	}
	return "Re"
}

//Trace is a single line of the figure
type Trace struct {
	Label     string
	X         []float64
	Y         []float64
	Component Component
	//ColorIndex selects the palette entry. Traces with the same index share a color
	ColorIndex int
	Dashed     bool
}

//Figure is the drawing capability Render needs. GonumFigure is the implementation used by the cli
type Figure interface {
	DrawLine(t Trace) error
	SetXLim(lo, hi float64)
	SetLabels(x, y string)
	SetTitle(title string)
}

//SeriesLoader provides the parsed content of a sweep file
type SeriesLoader interface {
	Load(path string, columns int) (*sweepData.Series, error)
}

//Render loads every file in opts.Files in order and draws the requested columns to fig.
//Real traces show |Re| as solid lines, imaginary traces show -Im dashed. An imaginary trace shares the color
//of the real trace of the same column if that one is drawn. After each file the x range is set to that file's
//frequency range, i.e. the last file determines the final limits.
//Loading and drawing are interleaved, any error aborts the whole render
func Render(opts Options, loader SeriesLoader, fig Figure) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	drawReal, drawImag := opts.Components()

	nextColor := 0
	for _, path := range opts.Files {
		series, err := loader.Load(path, opts.Columns)
		if err != nil {
			return fmt.Errorf("failed to load %v : %w", path, err)
		}

		for col := 0; col < opts.Columns; col++ {
			realColor := -1
			if drawReal {
				realColor = nextColor
				nextColor++
				t := Trace{
					Label:      traceLabel(path, col, RealPart),
					X:          series.Frequencies,
					Y:          series.RealMagnitude(col),
					Component:  RealPart,
					ColorIndex: realColor,
				}
				if err := fig.DrawLine(t); err != nil {
					return fmt.Errorf("failed to draw %v : %w", t.Label, err)
				}
			}
			if drawImag {
				color := realColor
				if color < 0 {
					color = nextColor
					nextColor++
				}
				t := Trace{
					Label:      traceLabel(path, col, ImagPart),
					X:          series.Frequencies,
					Y:          series.NegatedImag(col),
					Component:  ImagPart,
					ColorIndex: color,
					Dashed:     true,
				}
				if err := fig.DrawLine(t); err != nil {
					return fmt.Errorf("failed to draw %v : %w", t.Label, err)
				}
			}
		}

		lo, hi := series.FrequencyRange()
		fig.SetXLim(lo, hi)
		log.Debug().Str("path", path).Float64("min", lo).Float64("max", hi).Msg("set frequency range")
	}

	fig.SetLabels(opts.Labels())
	if opts.Title != "" {
		fig.SetTitle(opts.Title)
	}
	return nil
}

func traceLabel(path string, col int, c Component) string {
	return fmt.Sprintf("%s col %d (%s)", filepath.Base(path), col+1, c)
}
