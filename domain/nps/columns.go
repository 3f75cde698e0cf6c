package nps

import (
	"math"
	"strings"

	"github.com/montanaflynn/stats"

	"github.com/davidsmarcelino/nps-dashboard/domain/table"
)

// ColumnStats summarizes how well one column's values behave as survey
// scores. It is recomputed on demand and never stored.
type ColumnStats struct {
	ValidCount      int
	ValidPercentage float64 // over all records, not just those holding the key
	Mean            float64
	HasLowRange     bool // a grade in 0–3 was observed
	HasMidRange     bool // a grade in 4–7 was observed
	HasHighRange    bool // a grade in 8–10 was observed
}

// HasExpectedRange reports whether the column's valid values look like they
// span a 0–10 scale: two of the three sub-ranges observed together, or, as a
// lenient fallback, any sub-range at all among one or more valid values.
func (s ColumnStats) HasExpectedRange() bool {
	observed := 0
	if s.HasLowRange {
		observed++
	}
	if s.HasMidRange {
		observed++
	}
	if s.HasHighRange {
		observed++
	}
	return observed >= 2 || s.ValidCount >= 1
}

// IdentifyConfig holds the valid-percentage thresholds of the column
// identification rules. The lenient rule intentionally admits sparsely
// answered but strongly named columns; keep that in mind before lowering it
// further.
type IdentifyConfig struct {
	SuggestiveMinValidPct float64
	UnnamedMinValidPct    float64
	LenientMinValidPct    float64
}

// DefaultIdentifyConfig returns the stock thresholds.
func DefaultIdentifyConfig() IdentifyConfig {
	return IdentifyConfig{
		SuggestiveMinValidPct: 30,
		UnnamedMinValidPct:    50,
		LenientMinValidPct:    10,
	}
}

// suggestiveNames are header substrings that hint at a 0–10 survey score,
// checked case-insensitively.
var suggestiveNames = []string{
	"nps",
	"nota de 0 a 10",
	"de 0 a 10",
	"escala de 0 a 10",
	"nota",
	"score",
	"avaliação",
	"avaliacao",
	"pontuação",
	"pontuacao",
	"recomendação",
	"recomendacao",
	"indicação",
	"indicacao",
	"satisfação",
	"satisfacao",
	"classificação",
	"classificacao",
	"rating",
	"rate",
}

func isSuggestiveName(column string) bool {
	lower := strings.ToLower(column)
	for _, hint := range suggestiveNames {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

// AnalyzeColumn parses every cell of the named column and accumulates the
// per-column statistics. The valid percentage uses the full record count as
// denominator, so a column that only exists on a few records is penalized
// accordingly. Sub-range presence is evaluated on the rounded grade.
func AnalyzeColumn(t table.Table, column string) ColumnStats {
	var result ColumnStats
	var values []float64

	for _, record := range t.Records {
		raw, ok := record.Values[column]
		if !ok {
			continue
		}
		score := ParseScore(raw)
		if !score.Valid {
			continue
		}
		result.ValidCount++
		values = append(values, score.Value)

		grade := int(math.Round(score.Value))
		switch {
		case grade <= 3:
			result.HasLowRange = true
		case grade <= 7:
			result.HasMidRange = true
		default:
			result.HasHighRange = true
		}
	}

	if total := len(t.Records); total > 0 {
		result.ValidPercentage = float64(result.ValidCount) / float64(total) * 100
	}
	if mean, err := stats.Mean(stats.Float64Data(values)); err == nil {
		result.Mean = mean
	}
	return result
}

// IdentifyScoreColumns returns the columns that qualify as score sources, in
// first-seen header order, along with every column that was considered. A
// column qualifies under the first of these rules that holds:
//
//  1. suggestive name, valid percentage >= SuggestiveMinValidPct, expected range
//  2. any name, valid percentage >= UnnamedMinValidPct, expected range
//  3. suggestive name, valid percentage >= LenientMinValidPct, expected range
//
// Rule 3 is the lenient fallback for strongly named but sparsely answered
// columns. An empty result means no column could be identified.
func IdentifyScoreColumns(t table.Table, cfg IdentifyConfig) (identified, considered []string) {
	considered = append(considered, t.Columns...)

	for _, column := range t.Columns {
		columnStats := AnalyzeColumn(t, column)
		if !columnStats.HasExpectedRange() {
			continue
		}
		suggestive := isSuggestiveName(column)
		switch {
		case suggestive && columnStats.ValidPercentage >= cfg.SuggestiveMinValidPct:
		case !suggestive && columnStats.ValidPercentage >= cfg.UnnamedMinValidPct:
		case suggestive && columnStats.ValidPercentage >= cfg.LenientMinValidPct:
		default:
			continue
		}
		identified = append(identified, column)
	}
	return identified, considered
}
