package farmdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/isdelr/agrasia-be/internal/models"
)

// ParseSeriesCSV reads a header row followed by data rows. The first column
// holds labels (usually dates); each remaining column becomes a dataset keyed
// by its lower-cased header.
func ParseSeriesCSV(r io.Reader) (models.Series, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.Comment = '#'

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return models.Series{}, errors.New("empty CSV")
		}
		return models.Series{}, err
	}
	if len(header) < 2 {
		return models.Series{}, errors.New("CSV needs a label column and at least one data column")
	}

	names := make([]string, len(header)-1)
	series := models.Series{
		Labels:   []string{},
		Datasets: make(map[string][]float64, len(names)),
	}
	for i, h := range header[1:] {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "" {
			return models.Series{}, fmt.Errorf("column %d has no name", i+2)
		}
		if _, dup := series.Datasets[name]; dup {
			return models.Series{}, fmt.Errorf("duplicate column %q", name)
		}
		names[i] = name
		series.Datasets[name] = []float64{}
	}

	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return models.Series{}, err
		}

		series.Labels = append(series.Labels, strings.TrimSpace(rec[0]))
		for i, name := range names {
			cell := strings.TrimSpace(rec[i+1])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				line, _ := reader.FieldPos(i + 1)
				return models.Series{}, fmt.Errorf("row %d column %q: invalid number %q", line, name, cell)
			}
			series.Datasets[name] = append(series.Datasets[name], v)
		}
	}
	return series, nil
}
