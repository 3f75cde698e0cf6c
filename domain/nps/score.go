package nps

import (
	"math"
	"strconv"
	"strings"
)

// ScoreValue is the outcome of parsing a single cell: either invalid, or a
// number in [0,10].
type ScoreValue struct {
	Valid bool
	Value float64
}

type keywordScore struct {
	pattern string
	score   float64
}

// keywordScores maps qualitative answers to grades. The slice order is the
// matching order and must stay as is: more specific patterns come before the
// substrings they contain ("muito bom" before "bom", "insatisfeito" before
// "satisfeito"), otherwise those entries would be unreachable under
// first-match-wins.
var keywordScores = []keywordScore{
	{"péssimo", 0},
	{"pessimo", 0},
	{"muito bom", 9},
	{"insatisfeito", 3},
	{"ruim", 2},
	{"regular", 5},
	{"médio", 5},
	{"medio", 5},
	{"neutro", 7},
	{"satisfeito", 8},
	{"bom", 8},
	{"ótimo", 9},
	{"otimo", 9},
	{"excelente", 10},
	{"perfeito", 10},
}

// ParseScore turns one raw cell into a ScoreValue. Blank input is invalid.
// The ladder: direct decimal parse, then a leading run of decimal digits,
// then case-insensitive substring matching against the keyword table (first
// match wins). Whatever number comes out is only valid when finite and in
// [0,10].
func ParseScore(raw string) ScoreValue {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ScoreValue{}
	}

	if value, err := strconv.ParseFloat(text, 64); err == nil {
		return boundedScore(value)
	}

	if digits := leadingDigits(text); digits != "" {
		if value, err := strconv.ParseFloat(digits, 64); err == nil {
			return boundedScore(value)
		}
	}

	lower := strings.ToLower(text)
	for _, entry := range keywordScores {
		if strings.Contains(lower, entry.pattern) {
			return boundedScore(entry.score)
		}
	}

	return ScoreValue{}
}

func boundedScore(value float64) ScoreValue {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 || value > 10 {
		return ScoreValue{}
	}
	return ScoreValue{Valid: true, Value: value}
}

func leadingDigits(text string) string {
	end := 0
	for end < len(text) && text[end] >= '0' && text[end] <= '9' {
		end++
	}
	return text[:end]
}
