package app

import (
	"strings"
	"testing"
	"time"

	"github.com/davidsmarcelino/nps-dashboard/domain/core"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
	"github.com/davidsmarcelino/nps-dashboard/domain/table"
)

func sampleAnalysis(text string) *Analysis {
	calculator := nps.NewCalculator(nps.DefaultIdentifyConfig())
	cleaned := table.Clean(table.BuildRecords(table.Parse(text)))
	return &Analysis{
		ID:          core.NewAnalysisID(),
		Source:      "teste.csv",
		GeneratedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Summary:     calculator.Calculate(cleaned, nil),
	}
}

// TestBuildReport tests the Markdown report for a successful analysis
func TestBuildReport(t *testing.T) {
	analysis := sampleAnalysis("nota\n9\n9\n3\n7\nabc\n")
	report := BuildReport(analysis)

	for _, expected := range []string{
		"# Relatório NPS",
		"teste.csv",
		"## Score: 25 (Poor)",
		"| Promotores (9–10) | 2 | 50.0% |",
		"| Detratores (0–6) | 1 | 25.0% |",
		"## Distribuição de notas",
		`Colunas utilizadas: "nota".`,
		`1 respostas inválidas foram ignoradas (ex.: "abc").`,
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("report missing %q:\n%s", expected, report)
		}
	}
}

// TestBuildReportNoResult tests the report when nothing could be computed
func TestBuildReportNoResult(t *testing.T) {
	analysis := sampleAnalysis("cliente;comentario\nAna;legal\n")
	report := BuildReport(analysis)

	if !strings.Contains(report, "Nenhuma resposta válida encontrada") {
		t.Errorf("expected no-result message:\n%s", report)
	}
	if !strings.Contains(report, `"cliente", "comentario"`) {
		t.Errorf("expected considered columns listed:\n%s", report)
	}
	if strings.Contains(report, "## Score") {
		t.Errorf("did not expect a score section:\n%s", report)
	}
}
