package ui

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/davidsmarcelino/nps-dashboard/app"
	"github.com/davidsmarcelino/nps-dashboard/domain/nps"
)

//go:embed templates/*
var embeddedFiles embed.FS

// maxIgnoredDisplay caps the ignored-values diagnostic on the dashboard; the
// underlying summary keeps the full list.
const maxIgnoredDisplay = 15

// maxUploadBytes bounds pasted and uploaded documents (8 MiB).
const maxUploadBytes = 8 << 20

// App is the dashboard web application.
type App struct {
	router  *chi.Mux
	service *app.AnalysisService
	render  *template.Template
}

// NewApp creates the dashboard around an analysis service.
func NewApp(service *app.AnalysisService) (*App, error) {
	funcMap := template.FuncMap{
		"pct1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:  chi.NewRouter(),
		service: service,
		render:  templates,
	}
	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/analyze", a.handleAnalyze)
	a.router.Get("/report", a.handleReport)

	a.router.Get("/api/summary", a.handleSummaryJSON)
	a.router.Get("/healthz", a.handleHealth)
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start(addr string) error {
	log.Printf("Starting NPS dashboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// handleIndex renders the dashboard for the latest analysis.
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	a.renderIndex(w, "")
}

// handleAnalyze accepts pasted text, a document URL or an uploaded file and
// runs the pipeline over it.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		a.renderIndex(w, "Envio inválido: "+err.Error())
		return
	}

	columns := parseColumnsField(r.FormValue("colunas"))

	if file, header, err := r.FormFile("arquivo"); err == nil {
		defer file.Close()
		content, err := io.ReadAll(file)
		if err != nil {
			a.renderIndex(w, "Falha ao ler o arquivo enviado.")
			return
		}
		a.service.AnalyzeText(string(content), header.Filename, columns)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if url := strings.TrimSpace(r.FormValue("url")); url != "" {
		if _, err := a.service.AnalyzeLocation(r.Context(), url, columns); err != nil {
			log.Printf("[Analyze] fetch failed: %v", err)
			a.renderIndex(w, "Não foi possível carregar a planilha informada.")
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if content := r.FormValue("conteudo"); strings.TrimSpace(content) != "" {
		a.service.AnalyzeText(content, "colado manualmente", columns)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	a.renderIndex(w, "Informe uma URL, um arquivo ou cole o conteúdo da planilha.")
}

// handleReport renders the Markdown report of the latest analysis as HTML.
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	analysis := a.service.Latest()
	if analysis == nil {
		http.Error(w, "no analysis available yet", http.StatusNotFound)
		return
	}

	md := app.BuildReport(analysis)
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	body := markdown.ToHTML([]byte(md), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	a.renderTemplate(w, "report.html", map[string]interface{}{
		"Body": template.HTML(body),
	})
}

// handleSummaryJSON returns the latest summary for programmatic consumers.
func (a *App) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	analysis := a.service.Latest()
	if analysis == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no analysis available yet"})
		return
	}
	writeJSON(w, http.StatusOK, analysis)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Template helpers

func (a *App) renderIndex(w http.ResponseWriter, errorMessage string) {
	a.renderTemplate(w, "index.html", newIndexView(a.service.Latest(), errorMessage))
}

func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := a.render.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

func parseColumnsField(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	var columns []string
	for _, column := range strings.Split(value, ";") {
		if column = strings.TrimSpace(column); column != "" {
			columns = append(columns, column)
		}
	}
	return columns
}

var colorHex = map[string]string{
	"red":    "#dc2626",
	"orange": "#ea580c",
	"yellow": "#ca8a04",
	"green":  "#16a34a",
	"blue":   "#2563eb",
}

// histogramRow is one bar of the dashboard histogram.
type histogramRow struct {
	Grade    int
	Count    int
	Width    int // percentage of the tallest bar
	Category nps.Category
}

// indexView is everything index.html needs.
type indexView struct {
	HasAnalysis bool
	NoResult    bool
	Error       string

	Source      string
	GeneratedAt string
	Summary     nps.Summary
	ColorHex    string
	Histogram   []histogramRow
	Ignored     []string
	IgnoredMore int
}

func newIndexView(analysis *app.Analysis, errorMessage string) indexView {
	view := indexView{Error: errorMessage}
	if analysis == nil {
		return view
	}

	s := analysis.Summary
	view.HasAnalysis = true
	view.NoResult = s.TotalResponses == 0
	view.Source = analysis.Source
	view.GeneratedAt = analysis.GeneratedAt.Format("02/01/2006 15:04")
	view.Summary = s
	view.ColorHex = colorHex[s.Color]

	tallest := 0
	for grade := 0; grade <= 10; grade++ {
		if s.Histogram[grade] > tallest {
			tallest = s.Histogram[grade]
		}
	}
	for grade := 0; grade <= 10; grade++ {
		width := 0
		if tallest > 0 {
			width = s.Histogram[grade] * 100 / tallest
		}
		view.Histogram = append(view.Histogram, histogramRow{
			Grade:    grade,
			Count:    s.Histogram[grade],
			Width:    width,
			Category: s.GradeCategories[grade],
		})
	}

	view.Ignored = s.IgnoredValues
	if len(view.Ignored) > maxIgnoredDisplay {
		view.IgnoredMore = len(view.Ignored) - maxIgnoredDisplay
		view.Ignored = view.Ignored[:maxIgnoredDisplay]
	}
	return view
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}
