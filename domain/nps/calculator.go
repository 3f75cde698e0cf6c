package nps

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/davidsmarcelino/nps-dashboard/domain/table"
)

// Category classifies one rounded grade. The wire values follow the
// Portuguese contract the dashboard frontend consumes.
type Category string

const (
	CategoryDetractor Category = "detrator" // grades 0–6
	CategoryPassive   Category = "neutro"   // grades 7–8
	CategoryPromoter  Category = "promotor" // grades 9–10
)

// Summary is the terminal artifact of a calculation: the final score, the
// per-category breakdown, the grade histogram and the diagnostics the
// presentation layer reads. It is created once and never mutated.
// totalRespostas == 0 means no score could be computed.
type Summary struct {
	Score            int     `json:"score"`
	TotalResponses   int     `json:"totalRespostas"`
	Detractors       int     `json:"detratores"`
	Passives         int     `json:"neutros"`
	Promoters        int     `json:"promotores"`
	PctDetractors    float64 `json:"percentualDetratores"`
	PctPassives      float64 `json:"percentualNeutros"`
	PctPromoters     float64 `json:"percentualPromotores"`
	InvalidResponses int     `json:"respostasInvalidas"`

	// Histogram holds a count for every grade 0..10, all keys present.
	Histogram map[int]int `json:"distribuicaoNotas"`
	// GradeCategories maps every grade 0..10 to its category.
	GradeCategories map[int]Category `json:"categoriasNotas"`

	UsedColumns       []string `json:"colunasUtilizadas"`
	ColumnsConsidered []string `json:"colunasAnalisadas"`
	// IgnoredValues lists the distinct raw cell values that failed parsing,
	// verbatim and unbounded; presentation truncates for display.
	IgnoredValues []string `json:"valoresIgnorados"`

	Classification string `json:"classificacao"`
	Color          string `json:"cor"`
	// MarginOfError is the 95% margin of error of the score in points
	// (normal approximation); 0 when there are no responses.
	MarginOfError float64 `json:"margemErro"`
}

// Calculator computes NPS summaries. It carries no state besides the
// identification thresholds and is safe for concurrent use.
type Calculator struct {
	cfg IdentifyConfig
}

// NewCalculator returns a Calculator with the given identification config.
func NewCalculator(cfg IdentifyConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Calculate scans the table's records over the selected columns and builds
// the summary. When explicitColumns is non-empty it is used verbatim,
// bypassing identification; otherwise the column identifier runs. Valid
// cells land in the histogram and category counters under their rounded
// grade; non-blank cells that fail parsing count as invalid and are recorded
// in the ignored-values diagnostic; blank cells are skipped silently. When
// nothing can be computed the summary comes back with all-zero metrics
// rather than an error.
func (c *Calculator) Calculate(t table.Table, explicitColumns []string) Summary {
	columns := explicitColumns
	considered := append([]string{}, t.Columns...)
	if len(columns) == 0 {
		columns, considered = IdentifyScoreColumns(t, c.cfg)
	}

	summary := Summary{
		Histogram:         emptyHistogram(),
		GradeCategories:   gradeCategories(),
		UsedColumns:       append([]string{}, columns...),
		ColumnsConsidered: considered,
		IgnoredValues:     []string{},
	}

	seenInvalid := make(map[string]bool)
	for _, record := range t.Records {
		for _, column := range columns {
			raw, ok := record.Values[column]
			if !ok {
				continue
			}
			if strings.TrimSpace(raw) == "" {
				continue
			}
			score := ParseScore(raw)
			if !score.Valid {
				summary.InvalidResponses++
				if !seenInvalid[raw] {
					seenInvalid[raw] = true
					summary.IgnoredValues = append(summary.IgnoredValues, raw)
				}
				continue
			}

			grade := int(math.Round(score.Value))
			summary.Histogram[grade]++
			summary.TotalResponses++
			switch CategoryForScore(score.Value) {
			case CategoryDetractor:
				summary.Detractors++
			case CategoryPassive:
				summary.Passives++
			case CategoryPromoter:
				summary.Promoters++
			}
		}
	}

	if summary.TotalResponses > 0 {
		total := float64(summary.TotalResponses)
		summary.PctDetractors = float64(summary.Detractors) / total * 100
		summary.PctPassives = float64(summary.Passives) / total * 100
		summary.PctPromoters = float64(summary.Promoters) / total * 100
		summary.Score = int(math.Round(summary.PctPromoters - summary.PctDetractors))
		summary.MarginOfError = marginOfError(summary.PctPromoters/100, summary.PctDetractors/100, summary.TotalResponses)
	}

	summary.Classification = ClassifyScore(summary.Score)
	summary.Color = ColorForScore(summary.Score)
	return summary
}

// CategoryForScore rounds the value and partitions the grade: 0–6 detractor,
// 7–8 passive, 9–10 promoter. A rounded value outside [0,10] falls back to
// passive.
func CategoryForScore(value float64) Category {
	grade := int(math.Round(value))
	switch {
	case grade < 0 || grade > 10:
		return CategoryPassive
	case grade <= 6:
		return CategoryDetractor
	case grade <= 8:
		return CategoryPassive
	default:
		return CategoryPromoter
	}
}

// ClassifyScore maps a final score to its qualitative band.
func ClassifyScore(score int) string {
	switch {
	case score < 0:
		return "Critical"
	case score <= 30:
		return "Poor"
	case score <= 50:
		return "Good"
	case score <= 75:
		return "Very Good"
	default:
		return "Excellent"
	}
}

// ColorForScore maps a final score to its display color, same bands as
// ClassifyScore.
func ColorForScore(score int) string {
	switch {
	case score < 0:
		return "red"
	case score <= 30:
		return "orange"
	case score <= 50:
		return "yellow"
	case score <= 75:
		return "green"
	default:
		return "blue"
	}
}

func emptyHistogram() map[int]int {
	histogram := make(map[int]int, 11)
	for grade := 0; grade <= 10; grade++ {
		histogram[grade] = 0
	}
	return histogram
}

func gradeCategories() map[int]Category {
	categories := make(map[int]Category, 11)
	for grade := 0; grade <= 10; grade++ {
		categories[grade] = CategoryForScore(float64(grade))
	}
	return categories
}

// marginOfError returns the 95% half-width of the score's confidence
// interval in NPS points. The NPS is a difference of proportions, so its
// per-response variance is pP + pD - (pP - pD)^2.
func marginOfError(pPromoters, pDetractors float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	variance := pPromoters + pDetractors - math.Pow(pPromoters-pDetractors, 2)
	if variance <= 0 {
		return 0
	}
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)
	return z * math.Sqrt(variance/float64(n)) * 100
}
