// Package dataset reads and writes feature matrices as CSV.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/YuminosukeSato/mgfs/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// Dataset is a dense feature matrix with one name per column.
type Dataset struct {
	Names []string
	X     *mat.Dense
}

// ReadCSV parses r into a Dataset. A first row with any cell that is not a
// number is treated as the header; otherwise columns are named f0, f1, ...
func ReadCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse csv")
	}
	if len(records) == 0 {
		return nil, errors.NewValueError("ReadCSV", "empty input")
	}

	var names []string
	startRow := 0
	if isHeader(records[0]) {
		names = records[0]
		startRow = 1
	}

	rows := len(records) - startRow
	if rows == 0 {
		return nil, errors.NewValueError("ReadCSV", "no data rows")
	}
	cols := len(records[startRow])
	if names == nil {
		names = make([]string, cols)
		for j := range names {
			names[j] = fmt.Sprintf("f%d", j)
		}
	}
	if len(names) != cols {
		return nil, errors.NewValueError("ReadCSV",
			fmt.Sprintf("header has %d columns but line %d has %d", len(names), startRow+1, cols))
	}

	data := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		record := records[i+startRow]
		line := i + startRow + 1
		if len(record) != cols {
			return nil, errors.NewValueError("ReadCSV",
				fmt.Sprintf("line %d has %d columns, expected %d", line, len(record), cols))
		}
		for j, cell := range record {
			val, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.NewValueError("ReadCSV",
					fmt.Sprintf("line %d column %d (%s): %q is not a number", line, j+1, names[j], cell))
			}
			data.Set(i, j, val)
		}
	}

	return &Dataset{Names: names, X: data}, nil
}

// ReadFile is ReadCSV on the named file.
func ReadFile(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer file.Close()

	ds, err := ReadCSV(file)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load data from file %s", path)
	}
	return ds, nil
}

// isHeader reports whether any cell of row fails to parse as a number.
func isHeader(row []string) bool {
	for _, cell := range row {
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return true
		}
	}
	return false
}

// WriteCSV writes names as the header followed by the rows of m.
func WriteCSV(w io.Writer, names []string, m mat.Matrix) error {
	r, c := m.Dims()
	if len(names) != c {
		return errors.NewDimensionError("WriteCSV", c, len(names), 1)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(names); err != nil {
		return errors.Wrap(err, "failed to write csv header")
	}
	record := make([]string, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			record[j] = strconv.FormatFloat(m.At(i, j), 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return errors.Wrap(err, "failed to write csv row")
		}
	}
	writer.Flush()
	return errors.WithStack(writer.Error())
}

// Select returns the names whose mask entry is true, in column order.
func Select(names []string, support []bool) []string {
	var selected []string
	for j, keep := range support {
		if keep && j < len(names) {
			selected = append(selected, names[j])
		}
	}
	return selected
}
