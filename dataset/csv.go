// Package dataset loads training data from CSV and NumPy files into
// the sample and matrix types used by the learners.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/groveml/grove/pkg/errors"
	"github.com/groveml/grove/tree"
)

// CSVOptions controls how a CSV file is interpreted.
type CSVOptions struct {
	// Header indicates the first row holds column names.
	Header bool

	// LabelColumn is the index of the label column. -1 means the last
	// column.
	LabelColumn int

	// MissingTokens are cell values treated as missing. Defaults to
	// "" and "?".
	MissingTokens []string
}

// DefaultCSVOptions returns options with a header row and the last
// column as label.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Header: true, LabelColumn: -1, MissingTokens: []string{"", "?"}}
}

// CSVData is the parsed content of a CSV training file.
type CSVData struct {
	Features []string
	Samples  []tree.Sample
	Labels   []tree.Value
}

// ReadCSV parses CSV content into samples and labels. Cells that parse
// as floats become numeric values, missing tokens become missing
// values, and everything else is categorical.
func ReadCSV(r io.Reader, opts CSVOptions) (*CSVData, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	if len(rows) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "reading csv")
	}

	data := &CSVData{}
	start := 0
	width := len(rows[0])
	if width < 2 {
		return nil, errors.NewValueError("ReadCSV", "need at least one feature column and a label column")
	}

	labelCol := opts.LabelColumn
	if labelCol < 0 {
		labelCol = width - 1
	}
	if labelCol >= width {
		return nil, errors.NewDimensionError("ReadCSV", width-1, labelCol, 1)
	}

	if opts.Header {
		for j, name := range rows[0] {
			if j != labelCol {
				data.Features = append(data.Features, name)
			}
		}
		start = 1
	}

	missing := opts.MissingTokens
	if missing == nil {
		missing = []string{"", "?"}
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) != width {
			return nil, errors.NewDimensionError("ReadCSV", width, len(row), 1)
		}
		sample := make(tree.Sample, 0, width-1)
		for j, cell := range row {
			v := parseCell(cell, missing)
			if j == labelCol {
				data.Labels = append(data.Labels, v)
			} else {
				sample = append(sample, v)
			}
		}
		data.Samples = append(data.Samples, sample)
	}

	if len(data.Samples) == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "reading csv")
	}
	return data, nil
}

// ReadCSVFile opens path and parses it with ReadCSV.
func ReadCSVFile(path string, opts CSVOptions) (*CSVData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return ReadCSV(f, opts)
}

func parseCell(cell string, missing []string) tree.Value {
	trimmed := strings.TrimSpace(cell)
	for _, tok := range missing {
		if trimmed == tok {
			return tree.NA
		}
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return tree.Num(f)
	}
	return tree.Cat(trimmed)
}
