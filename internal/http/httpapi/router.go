package httpapi

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandkit/internal/http/handlers"
	"brandkit/internal/infra"
	"brandkit/internal/middleware"
)

// Options configures the router's middleware stack.
type Options struct {
	Logger          infra.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	DefaultLocale   string
	CountryLookup   middleware.CountryLookup
	// PublicDir is served under /generated when non-empty.
	PublicDir string
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
			r.Post("/generate/names", app.GenerateNames)
			r.Post("/generate/logo", app.GenerateLogo)
			r.Post("/generate/slogan", app.GenerateSlogan)
			r.Post("/generate/brandbook", app.GenerateBrandbook)
		})
		r.Get("/brandbooks/{id}", app.GetBrandbook)
		r.Get("/brandbooks/{id}/archive", app.GetBrandbookArchive)
	})

	if opts.PublicDir != "" {
		dir := http.Dir(filepath.Join(opts.PublicDir, "generated"))
		r.Handle("/generated/*", http.StripPrefix("/generated/", http.FileServer(dir)))
	}

	return r
}
