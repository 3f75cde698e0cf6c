package app

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/davidsmarcelino/nps-dashboard/adapters/sheet"
	"github.com/davidsmarcelino/nps-dashboard/domain/core"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
	"github.com/davidsmarcelino/nps-dashboard/domain/table"
	"github.com/davidsmarcelino/nps-dashboard/internal"
	"github.com/davidsmarcelino/nps-dashboard/ports"
)

// maxConcurrentSources bounds AnalyzeAll fan-out.
const maxConcurrentSources = 4

// Analysis is one completed run of the pipeline over a single source.
type Analysis struct {
	ID          core.AnalysisID `json:"id"`
	Source      string          `json:"fonte"`
	GeneratedAt time.Time       `json:"geradoEm"`
	Summary     nps.Summary     `json:"resumo"`
}

// AnalysisService orchestrates the pipeline: resolve a source to raw text,
// tokenize, build and clean records, and compute the NPS summary. The
// pipeline itself is pure; the service only adds source IO and keeps the
// latest analysis for the dashboard.
type AnalysisService struct {
	fetcher    ports.DocumentFetcher
	calculator *nps.Calculator
	logger     *internal.Logger

	mu     sync.RWMutex
	latest *Analysis
}

// NewAnalysisService creates a service around the given fetcher and
// calculator.
func NewAnalysisService(fetcher ports.DocumentFetcher, calculator *nps.Calculator) *AnalysisService {
	return &AnalysisService{
		fetcher:    fetcher,
		calculator: calculator,
		logger:     internal.DefaultLogger,
	}
}

// AnalyzeText runs the pipeline over raw delimited text. explicitColumns,
// when non-empty, bypasses column identification. The result becomes the
// service's latest analysis.
func (s *AnalysisService) AnalyzeText(text, source string, explicitColumns []string) *Analysis {
	raw := table.Parse(text)
	cleaned := table.Clean(table.BuildRecords(raw))
	summary := s.calculator.Calculate(cleaned, explicitColumns)

	analysis := &Analysis{
		ID:          core.NewAnalysisID(),
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Summary:     summary,
	}

	if summary.TotalResponses == 0 {
		s.logger.Warn("analysis %s of %q produced no valid responses (%d invalid)",
			analysis.ID, source, summary.InvalidResponses)
	} else {
		s.logger.Info("analysis %s of %q: score %d from %d responses over columns %v",
			analysis.ID, source, summary.Score, summary.TotalResponses, summary.UsedColumns)
	}

	s.mu.Lock()
	s.latest = analysis
	s.mu.Unlock()
	return analysis
}

// AnalyzeLocation resolves a location (http(s) URL or local file path) to raw
// text and analyzes it.
func (s *AnalysisService) AnalyzeLocation(ctx context.Context, location string, explicitColumns []string) (*Analysis, error) {
	text, err := s.resolve(ctx, location)
	if err != nil {
		return nil, err
	}
	return s.AnalyzeText(text, location, explicitColumns), nil
}

// AnalyzeAll analyzes several locations concurrently, bounded fan-out,
// results in input order. The first failure cancels the remaining fetches.
func (s *AnalysisService) AnalyzeAll(ctx context.Context, locations []string, explicitColumns []string) ([]*Analysis, error) {
	results := make([]*Analysis, len(locations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSources)
	for i, location := range locations {
		i, location := i, location
		g.Go(func() error {
			analysis, err := s.AnalyzeLocation(ctx, location, explicitColumns)
			if err != nil {
				return err
			}
			results[i] = analysis
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Latest returns the most recent analysis, or nil before the first run.
func (s *AnalysisService) Latest() *Analysis {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *AnalysisService) resolve(ctx context.Context, location string) (string, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return s.fetcher.Fetch(ctx, location)
	}
	return sheet.NewReader(location).ReadText()
}
