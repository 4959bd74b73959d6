//Package sweepData reads the text tables written by the eigenvalue parameter sweeper.
//Each data row holds the sweep frequency followed by the complex eigenvalues found for it
package sweepData

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//maxLineLength bounds a single table row. Rows of the sweeper grow with the number of converged eigenvalues
const maxLineLength = 16 * 1024 * 1024

var (
	ErrNoData        = errors.New("no data rows")
	ErrMalformedCell = errors.New("malformed complex literal")
	ErrRaggedRow     = errors.New("inconsistent number of cells")
	ErrTooFewColumns = errors.New("not enough data columns")
	ErrFileTooLarge  = errors.New("file exceeds memory limit")
)

//ParseComplex parses a single table cell. Besides the forms accepted by strconv.ParseComplex the imaginary
//unit may be written as j (e.g. 1.000-2.000j) and the literal may be wrapped in parentheses
func ParseComplex(cell string) (complex128, error) {
	s := strings.TrimSpace(cell)
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return 0, fmt.Errorf("%w : empty cell", ErrMalformedCell)
	}
	if last := s[len(s)-1]; last == 'j' || last == 'J' {
		s = s[:len(s)-1] + "i"
	}
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrMalformedCell, cell)
	}
	return v, nil
}

//ParseComplexTable reads comma separated rows of complex literals from r. Everything after comment on a line
//is ignored, as are blank lines. A single trailing separator per row is tolerated.
//All rows must have the same number of cells
func ParseComplexTable(r io.Reader, comment string) ([][]complex128, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	scanner.Split(bufio.ScanLines)

	rows := make([][]complex128, 0)
	width := -1
	lineNr := 0
	for scanner.Scan() {
		lineNr++
		line := scanner.Text()
		if comment != "" {
			if idx := strings.Index(line, comment); idx >= 0 {
				line = line[:idx]
			}
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cells := strings.Split(line, ",")
		if len(cells) > 1 && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}
		row := make([]complex128, len(cells))
		for i := range cells {
			v, err := ParseComplex(cells[i])
			if err != nil {
				return nil, fmt.Errorf("line %v cell %v : %w", lineNr, i+1, err)
			}
			row[i] = v
		}

		if width == -1 {
			width = len(row)
		} else if len(row) != width {
			return nil, fmt.Errorf("line %v has %v cells, previous rows have %v : %w", lineNr, len(row), width, ErrRaggedRow)
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning for lines : %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoData
	}
	return rows, nil
}
