package farmdata

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const farmsJSON = `[
  {"id": "kampar_01", "name": "Kampar Paddy Block 1", "geojson": {"type": "Feature", "geometry": null}},
  {"id": "siak_02", "name": "Siak Estate"}
]`

const detailJSON = `{
  "lastUpdate": "2025-06-01 08:00",
  "weatherForecast": [{"date": "Mon", "icon": "sun", "temp": 31, "desc": "Sunny"}],
  "currentNdvi": 0.72,
  "currentNdmi": "0.31",
  "currentEvi": null,
  "indicesData": {"labels": ["W1", "W2"], "datasets": {"ndvi": [0.6, 0.7], "ndmi": [0.2, 0.3]}},
  "waterStressStatus": "Low",
  "soilPh": 6.1,
  "last24hRain": "12 mm",
  "soilData": {"labels": ["W1"], "datasets": {"moisture": [41]}},
  "irrigation": {"irrigationNeeds": "Moderate", "recommendedAction": "Irrigate 2h", "batteryLevel": "80%"},
  "yield": {"cropType": "Rice", "quality": {"grainFillingRate": "85%"}, "quantity": {"tillers": 18, "yield": "6.2 t/ha"}},
  "tasks": [{"name": "Fertilize", "operator": "Budi", "cost": 150000}],
  "alerts": [],
  "scouting": [{"date": "2025-05-30", "report": "Brown planthopper spotted"}]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newTestDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "farms.json", farmsJSON)
	writeFile(t, dir, "kampar_01.json", detailJSON)
	writeFile(t, dir, "spatial/kampar_01_spatial.json", `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{"value":0.73},"geometry":null}]}`)
	writeFile(t, dir, "series/kampar_01_indices.csv", "date,NDVI,NDMI\n2025-05-01,0.61,0.22\n2025-05-08,0.68,0.27\n")
	return dir
}

func TestFileProvider_ListFarms(t *testing.T) {
	p := NewFileProvider(newTestDataDir(t))

	farms, err := p.ListFarms()
	require.NoError(t, err)
	require.Len(t, farms, 2)
	assert.Equal(t, "kampar_01", farms[0].ID)
	assert.Equal(t, "Kampar Paddy Block 1", farms[0].Name)
	assert.JSONEq(t, `{"type": "Feature", "geometry": null}`, string(farms[0].GeoJSON))
}

func TestFileProvider_ListFarms_Missing(t *testing.T) {
	_, err := NewFileProvider(t.TempDir()).ListFarms()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileProvider_GetFarm(t *testing.T) {
	p := NewFileProvider(newTestDataDir(t))

	detail, err := p.GetFarm("kampar_01")
	require.NoError(t, err)
	assert.Equal(t, "0.72", string(detail.CurrentNDVI))
	assert.Equal(t, "0.31", string(detail.CurrentNDMI))
	assert.Equal(t, "", string(detail.CurrentEVI))
	assert.Equal(t, "31", string(detail.WeatherForecast[0].Temp))
	assert.Equal(t, "18", string(detail.Yield.Quantity.Tillers))
	assert.Equal(t, []float64{0.6, 0.7}, detail.IndicesData.Datasets["ndvi"])

	raw, err := p.GetFarmRaw("kampar_01")
	require.NoError(t, err)
	assert.JSONEq(t, detailJSON, string(raw))
}

func TestFileProvider_InvalidIDs(t *testing.T) {
	dir := newTestDataDir(t)
	// A file that a traversal would reach if the id were not checked first.
	writeFile(t, filepath.Dir(dir), "etc.json", `{}`)
	p := NewFileProvider(dir)

	for _, id := range []string{"../etc", "Kampar", "", "a/b", "a.b", "farm-1"} {
		_, err := p.GetFarmRaw(id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
		_, err = p.GetSpatial(id)
		assert.ErrorIs(t, err, ErrInvalidID, id)
		_, err = p.GetSeries(id, "indices")
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}

	_, err := p.GetSeries("kampar_01", "../indices")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestFileProvider_NotFound(t *testing.T) {
	p := NewFileProvider(newTestDataDir(t))

	_, err := p.GetFarm("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.GetSpatial("siak_02")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = p.GetSeries("kampar_01", "soil")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileProvider_GetSpatial(t *testing.T) {
	p := NewFileProvider(newTestDataDir(t))

	raw, err := p.GetSpatial("kampar_01")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), `{"type":"FeatureCollection"`))
}

func TestFileProvider_GetSeries(t *testing.T) {
	p := NewFileProvider(newTestDataDir(t))

	s, err := p.GetSeries("kampar_01", "indices")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-05-01", "2025-05-08"}, s.Labels)
	assert.Equal(t, []float64{0.61, 0.68}, s.Datasets["ndvi"])
	assert.Equal(t, []float64{0.22, 0.27}, s.Datasets["ndmi"])
}

func TestFileProvider_MalformedDetail(t *testing.T) {
	dir := newTestDataDir(t)
	writeFile(t, dir, "broken.json", `{"lastUpdate": `)

	_, err := NewFileProvider(dir).GetFarm("broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
