package sweepPlot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/colornames"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

//supportedFormats are the extensions gonum/plot can encode
var supportedFormats = map[string]string{
	"eps":  "application/postscript",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
	"png":  "image/png",
	"svg":  "image/svg+xml",
	"tex":  "application/x-tex",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
}

//ContentType returns the mime type for format or ErrUnsupportedFormat
func ContentType(format string) (string, error) {
	ct, ok := supportedFormats[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	return ct, nil
}

//DefaultPalette is the color cycle for traces
var DefaultPalette = []color.Color{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Forestgreen,
	colornames.Crimson,
	colornames.Mediumpurple,
	colornames.Sienna,
	colornames.Orchid,
	colornames.Gray,
	colornames.Olive,
	colornames.Darkturquoise,
}

//Style controls the appearance of a GonumFigure
type Style struct {
	Width     vg.Length
	Height    vg.Length
	LineWidth vg.Length
	Dashes    []vg.Length
	Palette   []color.Color
}

func DefaultStyle() Style {
	return Style{
		Width:     6.4 * vg.Inch,
		Height:    4.8 * vg.Inch,
		LineWidth: vg.Points(2),
		Dashes:    []vg.Length{vg.Points(6), vg.Points(3)},
		Palette:   DefaultPalette,
	}
}

func (s Style) color(idx int) color.Color {
	palette := s.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}
	if idx < 0 {
		idx = -idx
	}
	return palette[idx%len(palette)]
}

type sliceXY struct {
	xValues []float64
	yValues []float64
}

func (s *sliceXY) Len() int {
	return len(s.xValues)
}

func (s *sliceXY) XY(index int) (x, y float64) {
	return s.xValues[index], s.yValues[index]
}

//GonumFigure implements Figure on top of a gonum plot
type GonumFigure struct {
	p      *plot.Plot
	style  Style
	legend bool
	lines  []*plotter.Line
}

func NewGonumFigure(style Style, legend bool) *GonumFigure {
	p := plot.New()
	p.Legend.Top = true
	return &GonumFigure{
		p:      p,
		style:  style,
		legend: legend,
	}
}

//Plot returns the underlying plot
func (f *GonumFigure) Plot() *plot.Plot {
	return f.p
}

//Lines returns the lines added so far in drawing order
func (f *GonumFigure) Lines() []*plotter.Line {
	return f.lines
}

func (f *GonumFigure) DrawLine(t Trace) error {
	if len(t.X) != len(t.Y) {
		return fmt.Errorf("trace %v has %v x values but %v y values", t.Label, len(t.X), len(t.Y))
	}
	line, err := plotter.NewLine(&sliceXY{xValues: t.X, yValues: t.Y})
	if err != nil {
		return fmt.Errorf("failed creating line for %v : %w", t.Label, err)
	}
	line.Color = f.style.color(t.ColorIndex)
	line.Width = f.style.LineWidth
	if t.Dashed {
		line.Dashes = f.style.Dashes
	}

	f.p.Add(line)
	f.lines = append(f.lines, line)
	if f.legend {
		f.p.Legend.Add(t.Label, line)
	}
	return nil
}

//SetXLim overwrites the x range. Lines added afterwards widen it again
func (f *GonumFigure) SetXLim(lo, hi float64) {
	f.p.X.Min = lo
	f.p.X.Max = hi
}

func (f *GonumFigure) SetLabels(x, y string) {
	f.p.X.Label.Text = x
	f.p.Y.Label.Text = y
}

func (f *GonumFigure) SetTitle(title string) {
	f.p.Title.Text = title
}

//Encode draws the figure in the given format and writes it to out
func (f *GonumFigure) Encode(out io.Writer, format string) error {
	if _, err := ContentType(format); err != nil {
		return err
	}
	writerTo, err := f.p.WriterTo(f.style.Width, f.style.Height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("failed to prepare plot for writing : %w", err)
	}
	if _, err := writerTo.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write plot : %w", err)
	}
	return nil
}

//Save stores the figure at path, the format is inferred from the extension
func (f *GonumFigure) Save(path string) error {
	if _, err := ContentType(strings.TrimPrefix(filepath.Ext(path), ".")); err != nil {
		return fmt.Errorf("cannot save %v : %w", path, err)
	}
	if err := f.p.Save(f.style.Width, f.style.Height, path); err != nil {
		return fmt.Errorf("failed to save plot to %v : %w", path, err)
	}
	return nil
}
