package sweepPlot_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"qeppsPlot/mocks"
	"qeppsPlot/sweepPlot"
)

func renderedFigure(t *testing.T, opts sweepPlot.Options) *sweepPlot.GonumFigure {
	t.Helper()
	fig := sweepPlot.NewGonumFigure(sweepPlot.DefaultStyle(), opts.Legend)
	require.NoError(t, sweepPlot.Render(opts, twoFileLoader(), fig))
	return fig
}

func TestOutput_Save(t *testing.T) {
	opts := sweepPlot.Options{
		Files:   []string{"a.txt", "b.txt"},
		Columns: 2,
		Real:    true,
		Imag:    true,
		Legend:  true,
		Output:  filepath.Join(t.TempDir(), "figure.png"),
	}
	shower := &mocks.MockShower{}

	require.NoError(t, sweepPlot.Output(context.Background(), opts, renderedFigure(t, opts), shower, "svg"))

	info, err := os.Stat(opts.Output)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	shower.AssertNotCalled(t, "Show", mock.Anything, mock.Anything, mock.Anything)
}

func TestOutput_SaveUnwritable(t *testing.T) {
	opts := sweepPlot.Options{
		Files:   []string{"a.txt"},
		Columns: 1,
		Output:  filepath.Join(t.TempDir(), "missing-dir", "figure.png"),
	}
	err := sweepPlot.Output(context.Background(), opts, renderedFigure(t, opts), &mocks.MockShower{}, "svg")
	assert.Error(t, err)
}

func TestOutput_Show(t *testing.T) {
	opts := sweepPlot.Options{Files: []string{"a.txt"}, Columns: 1}
	shower := &mocks.MockShower{}
	isSVG := mock.MatchedBy(func(image []byte) bool {
		return bytes.Contains(image, []byte("<svg"))
	})
	shower.On("Show", mock.Anything, isSVG, "image/svg+xml").Return(nil).Once()

	require.NoError(t, sweepPlot.Output(context.Background(), opts, renderedFigure(t, opts), shower, "svg"))

	shower.AssertExpectations(t)
}

func TestOutput_ShowFailure(t *testing.T) {
	opts := sweepPlot.Options{Files: []string{"a.txt"}, Columns: 1}
	shower := &mocks.MockShower{}
	shower.On("Show", mock.Anything, mock.Anything, "image/png").Return(errors.New("address in use"))

	err := sweepPlot.Output(context.Background(), opts, renderedFigure(t, opts), shower, "png")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "address in use")
}

func TestOutput_InvalidViewerFormat(t *testing.T) {
	opts := sweepPlot.Options{Files: []string{"a.txt"}, Columns: 1}
	err := sweepPlot.Output(context.Background(), opts, renderedFigure(t, opts), &mocks.MockShower{}, "gif")
	assert.ErrorIs(t, err, sweepPlot.ErrUnsupportedFormat)
}
