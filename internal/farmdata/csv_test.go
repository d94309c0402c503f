package farmdata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeriesCSV(t *testing.T) {
	in := "# weekly soil sensor\nDate, Moisture\n2025-05-01, 41.5\n2025-05-08,39\n"

	s, err := ParseSeriesCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-01", "2025-05-08"}, s.Labels)
	assert.Equal(t, []float64{41.5, 39}, s.Datasets["moisture"])
}

func TestParseSeriesCSV_HeaderOnly(t *testing.T) {
	s, err := ParseSeriesCSV(strings.NewReader("date,ndvi\n"))
	require.NoError(t, err)
	assert.True(t, s.Empty())
	assert.Equal(t, []float64{}, s.Datasets["ndvi"])
}

func TestParseSeriesCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr string
	}{
		{name: "empty", in: "", wantErr: "empty CSV"},
		{name: "single column", in: "date\n2025-01-01\n", wantErr: "label column"},
		{name: "blank header", in: "date,\n2025-01-01,1\n", wantErr: "column 2 has no name"},
		{name: "duplicate header", in: "date,ndvi,NDVI\n", wantErr: "duplicate column"},
		{name: "bad number", in: "date,ndvi\n2025-01-01,high\n", wantErr: `row 2 column "ndvi"`},
		{name: "nan", in: "date,ndvi\n2025-01-01,NaN\n", wantErr: `row 2 column "ndvi": invalid number "NaN"`},
		{name: "infinity", in: "date,ndvi\n2025-01-01,0.5\n2025-01-08,-Inf\n", wantErr: `row 3 column "ndvi"`},
		{name: "overflow", in: "date,ndvi\n2025-01-01,1e999\n", wantErr: `invalid number "1e999"`},
		{name: "line after comments", in: "# exported 2025-06-01\n# source: sensor A\ndate,ndvi\n2025-01-01,0.5\n2025-01-08,wet\n", wantErr: `row 5 column "ndvi"`},
		{name: "blank cell", in: "date,ndvi,ndmi\n2025-01-01,0.5,\n", wantErr: `column "ndmi"`},
		{name: "ragged row", in: "date,ndvi\n2025-01-01,0.5,0.6\n", wantErr: "wrong number of fields"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeriesCSV(strings.NewReader(tt.in))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
