//Package mocks provides fakes for the interfaces of sweepPlot
package mocks

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"qeppsPlot/sweepData"
	"qeppsPlot/sweepPlot"
)

//MapLoader serves tables from memory. Keys are the paths passed to Load
type MapLoader struct {
	Tables         map[string][][]complex128
	FrequencyScale float64
	//Loaded records the paths in the order Load was called
	Loaded []string
}

func (m *MapLoader) Load(path string, columns int) (*sweepData.Series, error) {
	m.Loaded = append(m.Loaded, path)
	table, ok := m.Tables[path]
	if !ok {
		return nil, fmt.Errorf("programmed loader failure for %v", path)
	}
	scale := m.FrequencyScale
	if scale == 0 {
		scale = sweepData.TeraHertz
	}
	return sweepData.NewSeries(path, table, columns, scale)
}

//RecordingFigure records every call made through the sweepPlot.Figure interface
type RecordingFigure struct {
	Traces []sweepPlot.Trace
	//XLims holds every SetXLim call as [lo, hi]
	XLims  [][2]float64
	XLabel string
	YLabel string
	Title  string
	//FailOnDraw makes DrawLine fail once this many traces have been recorded, ignored if < 0
	FailOnDraw int
}

func NewRecordingFigure() *RecordingFigure {
	return &RecordingFigure{FailOnDraw: -1}
}

func (r *RecordingFigure) DrawLine(t sweepPlot.Trace) error {
	if r.FailOnDraw >= 0 && len(r.Traces) >= r.FailOnDraw {
		return fmt.Errorf("programmed draw failure")
	}
	r.Traces = append(r.Traces, t)
	return nil
}

func (r *RecordingFigure) SetXLim(lo, hi float64) {
	r.XLims = append(r.XLims, [2]float64{lo, hi})
}

func (r *RecordingFigure) SetLabels(x, y string) {
	r.XLabel, r.YLabel = x, y
}

func (r *RecordingFigure) SetTitle(title string) {
	r.Title = title
}

//FinalXLim returns the arguments of the last SetXLim call
func (r *RecordingFigure) FinalXLim() (lo, hi float64) {
	last := r.XLims[len(r.XLims)-1]
	return last[0], last[1]
}

//MockShower is a testify mock for sweepPlot.Shower
type MockShower struct {
	mock.Mock
}

func (m *MockShower) Show(ctx context.Context, image []byte, contentType string) error {
	args := m.Called(ctx, image, contentType)
	return args.Error(0)
}
