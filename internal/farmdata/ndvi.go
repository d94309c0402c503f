package farmdata

import (
	"strconv"

	"github.com/isdelr/agrasia-be/internal/models"
)

var legendGrades = []float64{0.4, 0.5, 0.6, 0.7, 0.8}

// Color maps an NDVI value to its vigor colour, red (stressed) to green.
func Color(v float64) string {
	switch {
	case v > 0.8:
		return "#1a9850"
	case v > 0.7:
		return "#66bd63"
	case v > 0.6:
		return "#a6d96a"
	case v > 0.5:
		return "#fdae61"
	case v > 0.4:
		return "#f46d43"
	default:
		return "#d73027"
	}
}

// Legend returns one band per grade; the last band is open-ended.
func Legend() []models.LegendBand {
	bands := make([]models.LegendBand, 0, len(legendGrades))
	for i, from := range legendGrades {
		band := models.LegendBand{
			From:  from,
			Color: Color(from + 0.01),
		}
		if i+1 < len(legendGrades) {
			to := legendGrades[i+1]
			band.To = &to
			band.Label = formatGrade(from) + "–" + formatGrade(to)
		} else {
			band.Label = formatGrade(from) + "+"
		}
		bands = append(bands, band)
	}
	return bands
}

func formatGrade(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
