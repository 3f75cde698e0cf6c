package nps

import (
	"math"
	"reflect"
	"testing"

	"github.com/davidsmarcelino/nps-dashboard/domain/table"
)

// TestCalculate tests the end-to-end summary over an explicit column
func TestCalculate(t *testing.T) {
	calculator := NewCalculator(DefaultIdentifyConfig())
	tbl := buildTable("score", []string{"9", "9", "3", "7"})

	got := calculator.Calculate(tbl, []string{"score"})

	if got.TotalResponses != 4 {
		t.Errorf("TotalResponses = %d, expected 4", got.TotalResponses)
	}
	if got.Promoters != 2 || got.Passives != 1 || got.Detractors != 1 {
		t.Errorf("split = %d/%d/%d, expected 2 promoters, 1 passive, 1 detractor",
			got.Promoters, got.Passives, got.Detractors)
	}
	if got.Score != 25 {
		t.Errorf("Score = %d, expected 25", got.Score)
	}
	if got.Classification != "Poor" || got.Color != "orange" {
		t.Errorf("classification = %s/%s, expected Poor/orange", got.Classification, got.Color)
	}
	if got.PctPromoters != 50 || got.PctDetractors != 25 || got.PctPassives != 25 {
		t.Errorf("percentages = %v/%v/%v", got.PctPromoters, got.PctPassives, got.PctDetractors)
	}
	if !reflect.DeepEqual(got.UsedColumns, []string{"score"}) {
		t.Errorf("UsedColumns = %v", got.UsedColumns)
	}
	if got.MarginOfError <= 0 {
		t.Errorf("MarginOfError = %v, expected positive", got.MarginOfError)
	}
}

// TestCalculateHistogram tests that all grade keys are always present
func TestCalculateHistogram(t *testing.T) {
	calculator := NewCalculator(DefaultIdentifyConfig())
	got := calculator.Calculate(buildTable("score", []string{"9", "9", "0"}), []string{"score"})

	if len(got.Histogram) != 11 {
		t.Fatalf("Histogram has %d keys, expected 11", len(got.Histogram))
	}
	for grade := 0; grade <= 10; grade++ {
		if _, ok := got.Histogram[grade]; !ok {
			t.Errorf("Histogram missing grade %d", grade)
		}
	}
	if got.Histogram[9] != 2 || got.Histogram[0] != 1 || got.Histogram[5] != 0 {
		t.Errorf("unexpected histogram: %v", got.Histogram)
	}
	if got.GradeCategories[0] != CategoryDetractor ||
		got.GradeCategories[7] != CategoryPassive ||
		got.GradeCategories[10] != CategoryPromoter {
		t.Errorf("unexpected grade categories: %v", got.GradeCategories)
	}
}

// TestCalculateInvalid tests invalid counting and verbatim deduplication
func TestCalculateInvalid(t *testing.T) {
	calculator := NewCalculator(DefaultIdentifyConfig())
	tbl := buildTable("score", []string{"9", "não sei", "não sei", "", "talvez"})

	got := calculator.Calculate(tbl, []string{"score"})

	if got.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, expected 1", got.TotalResponses)
	}
	if got.InvalidResponses != 3 {
		t.Errorf("InvalidResponses = %d, expected 3 (blank cells are skipped)", got.InvalidResponses)
	}
	if !reflect.DeepEqual(got.IgnoredValues, []string{"não sei", "talvez"}) {
		t.Errorf("IgnoredValues = %v, expected deduplicated verbatim values", got.IgnoredValues)
	}
}

// TestCalculateEmpty tests the all-zero summary when nothing can be computed
func TestCalculateEmpty(t *testing.T) {
	calculator := NewCalculator(DefaultIdentifyConfig())
	got := calculator.Calculate(table.Table{}, nil)

	if got.TotalResponses != 0 || got.Score != 0 {
		t.Errorf("expected zero summary, got %+v", got)
	}
	if got.Classification != "Poor" || got.Color != "orange" {
		t.Errorf("score 0 classifies as %s/%s, expected Poor/orange", got.Classification, got.Color)
	}
	if got.MarginOfError != 0 {
		t.Errorf("MarginOfError = %v, expected 0", got.MarginOfError)
	}
	if got.IgnoredValues == nil {
		t.Error("IgnoredValues should be an empty slice, not nil")
	}
}

// TestCalculateIdentifiesColumns tests the identification path
func TestCalculateIdentifiesColumns(t *testing.T) {
	calculator := NewCalculator(DefaultIdentifyConfig())
	tbl := table.Table{
		Columns: []string{"cliente", "nota"},
		Records: []table.Record{
			{ID: "row_1", Values: map[string]string{"cliente": "Ana", "nota": "10"}},
			{ID: "row_2", Values: map[string]string{"cliente": "Bruno", "nota": "9"}},
		},
	}

	got := calculator.Calculate(tbl, nil)

	if !reflect.DeepEqual(got.UsedColumns, []string{"nota"}) {
		t.Errorf("UsedColumns = %v, expected [nota]", got.UsedColumns)
	}
	if !reflect.DeepEqual(got.ColumnsConsidered, []string{"cliente", "nota"}) {
		t.Errorf("ColumnsConsidered = %v", got.ColumnsConsidered)
	}
	if got.Score != 100 {
		t.Errorf("Score = %d, expected 100", got.Score)
	}
	if got.Classification != "Excellent" || got.Color != "blue" {
		t.Errorf("classification = %s/%s, expected Excellent/blue", got.Classification, got.Color)
	}
}

func TestCategoryForScore(t *testing.T) {
	tests := []struct {
		value    float64
		expected Category
	}{
		{0, CategoryDetractor},
		{6, CategoryDetractor},
		{6.4, CategoryDetractor},
		{6.5, CategoryPassive},
		{7, CategoryPassive},
		{8, CategoryPassive},
		{8.5, CategoryPromoter},
		{9, CategoryPromoter},
		{10, CategoryPromoter},
		{-3, CategoryPassive},
		{42, CategoryPassive},
	}

	for _, tt := range tests {
		if got := CategoryForScore(tt.value); got != tt.expected {
			t.Errorf("CategoryForScore(%v) = %s, expected %s", tt.value, got, tt.expected)
		}
	}
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score          int
		classification string
		color          string
	}{
		{-100, "Critical", "red"},
		{-1, "Critical", "red"},
		{0, "Poor", "orange"},
		{30, "Poor", "orange"},
		{31, "Good", "yellow"},
		{50, "Good", "yellow"},
		{51, "Very Good", "green"},
		{75, "Very Good", "green"},
		{76, "Excellent", "blue"},
		{100, "Excellent", "blue"},
	}

	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.classification {
			t.Errorf("ClassifyScore(%d) = %s, expected %s", tt.score, got, tt.classification)
		}
		if got := ColorForScore(tt.score); got != tt.color {
			t.Errorf("ColorForScore(%d) = %s, expected %s", tt.score, got, tt.color)
		}
	}
}

// TestMarginOfError sanity-checks the normal-approximation half-width
func TestMarginOfError(t *testing.T) {
	if got := marginOfError(0.5, 0.25, 0); got != 0 {
		t.Errorf("marginOfError with n=0 = %v, expected 0", got)
	}
	// p=0.5 promoters, 0.25 detractors: variance = 0.6875
	got := marginOfError(0.5, 0.25, 100)
	expected := 1.959963984540054 * math.Sqrt(0.6875/100) * 100
	if math.Abs(got-expected) > 1e-9 {
		t.Errorf("marginOfError = %v, expected %v", got, expected)
	}
	// all promoters: variance collapses to zero
	if got := marginOfError(1, 0, 50); got != 0 {
		t.Errorf("marginOfError all-promoters = %v, expected 0", got)
	}
}
