package ui

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"distfit/app"
	"distfit/internal"
	"distfit/internal/config"
)

//go:embed templates/*.html
var embeddedFiles embed.FS

// App is the HTML front-end: a form to analyze a sample and to download a
// generated one.
type App struct {
	router    *chi.Mux
	svc       *app.EvaluationService
	templates *template.Template
	logger    *internal.Logger
	config    config.UIConfig
}

// NewApp creates the front-end around an evaluation service
func NewApp(svc *app.EvaluationService, cfg config.UIConfig, logger *internal.Logger) (*App, error) {
	if logger == nil {
		logger = internal.NopLogger()
	}

	templates, err := template.New("").ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		svc:       svc,
		templates: templates,
		logger:    logger.WithPrefix("ui"),
		config:    cfg,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a, nil
}

func (a *App) setupMiddleware() {
	a.router.Use(middleware.RequestID)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
}

func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Post("/analyze", a.handleAnalyze)
	a.router.Post("/generate", a.handleGenerate)
}

// Handler exposes the router, mainly for tests
func (a *App) Handler() http.Handler {
	return a.router
}

// Start serves the front-end on the configured port
func (a *App) Start() error {
	addr := ":" + a.config.Port
	a.logger.Info("starting distfit UI on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) renderTemplate(w http.ResponseWriter, status int, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		a.logger.Error("template %s: %v", templateName, err)
	}
}
