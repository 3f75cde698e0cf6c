package app

import (
	"fmt"
	"strings"
)

// maxReportIgnoredValues caps how many distinct unparseable values the
// report lists; the summary itself keeps the full set.
const maxReportIgnoredValues = 10

// BuildReport renders an analysis as a Markdown report for export or for the
// dashboard's report view.
func BuildReport(a *Analysis) string {
	var b strings.Builder
	s := a.Summary

	fmt.Fprintf(&b, "# Relatório NPS\n\n")
	fmt.Fprintf(&b, "- **Fonte:** %s\n", a.Source)
	fmt.Fprintf(&b, "- **Gerado em:** %s\n", a.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "- **Análise:** %s\n\n", a.ID)

	if s.TotalResponses == 0 {
		fmt.Fprintf(&b, "**Nenhuma resposta válida encontrada.** ")
		fmt.Fprintf(&b, "Colunas analisadas: %s.\n", columnList(s.ColumnsConsidered))
		appendDiagnostics(&b, s.InvalidResponses, s.IgnoredValues)
		return b.String()
	}

	fmt.Fprintf(&b, "## Score: %d (%s)\n\n", s.Score, s.Classification)
	fmt.Fprintf(&b, "Margem de erro (95%%): ±%.1f pontos sobre %d respostas.\n\n",
		s.MarginOfError, s.TotalResponses)

	fmt.Fprintf(&b, "| Categoria | Respostas | %% |\n")
	fmt.Fprintf(&b, "|---|---|---|\n")
	fmt.Fprintf(&b, "| Promotores (9–10) | %d | %.1f%% |\n", s.Promoters, s.PctPromoters)
	fmt.Fprintf(&b, "| Neutros (7–8) | %d | %.1f%% |\n", s.Passives, s.PctPassives)
	fmt.Fprintf(&b, "| Detratores (0–6) | %d | %.1f%% |\n\n", s.Detractors, s.PctDetractors)

	fmt.Fprintf(&b, "## Distribuição de notas\n\n")
	fmt.Fprintf(&b, "```\n")
	for grade := 0; grade <= 10; grade++ {
		count := s.Histogram[grade]
		fmt.Fprintf(&b, "%2d | %-40s %d\n", grade, bar(count, s.TotalResponses), count)
	}
	fmt.Fprintf(&b, "```\n\n")

	fmt.Fprintf(&b, "Colunas utilizadas: %s.\n", columnList(s.UsedColumns))
	appendDiagnostics(&b, s.InvalidResponses, s.IgnoredValues)
	return b.String()
}

func appendDiagnostics(b *strings.Builder, invalid int, ignored []string) {
	if invalid == 0 {
		return
	}
	fmt.Fprintf(b, "\n%d respostas inválidas foram ignoradas", invalid)
	shown := ignored
	if len(shown) > maxReportIgnoredValues {
		shown = shown[:maxReportIgnoredValues]
	}
	if len(shown) > 0 {
		fmt.Fprintf(b, " (ex.: %s)", columnList(shown))
	}
	fmt.Fprintf(b, ".\n")
}

func columnList(items []string) string {
	if len(items) == 0 {
		return "nenhuma"
	}
	quoted := make([]string, len(items))
	for i, item := range items {
		quoted[i] = fmt.Sprintf("%q", item)
	}
	return strings.Join(quoted, ", ")
}

func bar(count, total int) string {
	if total == 0 || count == 0 {
		return ""
	}
	width := count * 40 / total
	if width == 0 {
		width = 1
	}
	return strings.Repeat("█", width)
}
