package testkit

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// SurveyGeneratorConfig configures the synthetic survey data generator.
type SurveyGeneratorConfig struct {
	// KeywordRate, InvalidRate and BlankRate are the shares of answers
	// given as words, left unparseable, and left empty respectively.
	ResponseCount int       `json:"response_count"`
	KeywordRate   float64   `json:"keyword_rate"`
	InvalidRate   float64   `json:"invalid_rate"`
	BlankRate     float64   `json:"blank_rate"`
	PromoterBias  float64   `json:"promoter_bias"`
	StartDate     time.Time `json:"start_date"`
	Seed          int64     `json:"seed"`
}

// DefaultSurveyConfig returns sensible defaults for demo data.
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		ResponseCount: 200,
		KeywordRate:   0.10,
		InvalidRate:   0.05,
		BlankRate:     0.05,
		PromoterBias:  0.45,
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Seed:          42,
	}
}

// SurveyDataGenerator produces a realistic delimited survey export with a
// score column among ordinary metadata columns. Output is deterministic for
// a given config.
type SurveyDataGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyDataGenerator creates a generator for the given config.
func NewSurveyDataGenerator(config SurveyGeneratorConfig) *SurveyDataGenerator {
	return &SurveyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

var keywordAnswers = []string{
	"péssimo", "ruim", "regular", "neutro", "bom", "muito bom", "ótimo", "excelente",
}

var invalidAnswers = []string{
	"não sei", "prefiro não responder", "talvez", "n/a", "-",
}

var firstNames = []string{
	"Ana", "Bruno", "Carla", "Diego", "Elisa", "Fábio", "Gabriela", "Henrique",
	"Iara", "João", "Karina", "Lucas", "Mariana", "Nuno", "Otávio", "Paula",
}

// GenerateCSV renders a complete semicolon-delimited survey export with a
// header row and one row per response.
func (g *SurveyDataGenerator) GenerateCSV() string {
	var b strings.Builder
	b.WriteString("data;cliente;nota de 0 a 10;comentario\n")

	for i := 0; i < g.config.ResponseCount; i++ {
		day := g.config.StartDate.AddDate(0, 0, g.rng.Intn(90))
		name := fmt.Sprintf("%s %c.", firstNames[g.rng.Intn(len(firstNames))], 'A'+rune(g.rng.Intn(26)))
		answer := g.generateAnswer()
		comment := ""
		if g.rng.Float64() < 0.3 {
			comment = "resposta enviada pelo formulário"
		}
		fmt.Fprintf(&b, "%s;%s;%s;%s\n", day.Format("2006-01-02"), name, answer, comment)
	}
	return b.String()
}

// generateAnswer picks one answer cell: usually a numeric grade, sometimes a
// keyword, occasionally blank or unparseable.
func (g *SurveyDataGenerator) generateAnswer() string {
	roll := g.rng.Float64()
	switch {
	case roll < g.config.BlankRate:
		return ""
	case roll < g.config.BlankRate+g.config.InvalidRate:
		return invalidAnswers[g.rng.Intn(len(invalidAnswers))]
	case roll < g.config.BlankRate+g.config.InvalidRate+g.config.KeywordRate:
		return keywordAnswers[g.rng.Intn(len(keywordAnswers))]
	default:
		return fmt.Sprintf("%d", g.generateGrade())
	}
}

// generateGrade skews grades toward promoters per PromoterBias, with the
// remainder split between passives and detractors.
func (g *SurveyDataGenerator) generateGrade() int {
	roll := g.rng.Float64()
	switch {
	case roll < g.config.PromoterBias:
		return 9 + g.rng.Intn(2)
	case roll < g.config.PromoterBias+0.3:
		return 7 + g.rng.Intn(2)
	default:
		return g.rng.Intn(7)
	}
}
