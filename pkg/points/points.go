// Package points reads and writes N×3 coordinate tables as CSV
package points

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrNoPoints is returned for input without a single coordinate row
var ErrNoPoints = errors.New("no points")

// Read parses rows of x,y,z. Lines starting with # are comments, a
// leading non-numeric row is treated as a header, and whitespace
// separated rows are accepted as well.
func Read(r io.Reader) (*mat.Dense, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var data []float64
	rows := 0
	for n := 1; ; n++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read points: %w", err)
		}
		if len(record) == 1 {
			record = strings.Fields(record[0])
		}
		if len(record) == 0 {
			continue
		}

		xyz, err := parseRow(record)
		if err != nil {
			if n == 1 && errors.Is(err, strconv.ErrSyntax) {
				continue // header
			}
			return nil, fmt.Errorf("row %d: %w", n, err)
		}
		data = append(data, xyz[:]...)
		rows++
	}

	if rows == 0 {
		return nil, ErrNoPoints
	}
	return mat.NewDense(rows, 3, data), nil
}

func parseRow(record []string) ([3]float64, error) {
	var xyz [3]float64
	if len(record) != 3 {
		return xyz, fmt.Errorf("expected 3 columns, got %d", len(record))
	}
	for i, field := range record {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return xyz, err
		}
		xyz[i] = v
	}
	return xyz, nil
}

// ReadFile reads a point table from path
func ReadFile(path string) (*mat.Dense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	x, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return x, nil
}

// Write emits x as CSV with an x,y,z header
func Write(w io.Writer, x mat.Matrix) error {
	r, c := x.Dims()
	if c != 3 {
		return fmt.Errorf("coordinate table is %dx%d, want Nx3", r, c)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"x", "y", "z"}); err != nil {
		return err
	}
	for i := 0; i < r; i++ {
		row := make([]string, 3)
		for j := range row {
			row[j] = strconv.FormatFloat(x.At(i, j), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
