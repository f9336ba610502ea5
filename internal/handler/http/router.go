package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chronora/retailops/pkg/health"
	"github.com/chronora/retailops/pkg/middleware"
)

// RouterConfig wires the handlers and cross-cutting middleware into a router.
type RouterConfig struct {
	ServiceName string
	Logger      *slog.Logger
	Health      *health.Handler
	Products    *ProductHandler
	Media       *MediaHandler
	Import      *ImportHandler
	Advisor     http.Handler
	UploadDir   string
	CORS        middleware.CORSConfig
}

// NewRouter builds the HTTP routing tree.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Uploaded media is served directly off disk under root-relative paths.
	fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get("/uploads/*", fileServer.ServeHTTP)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.List)
			r.Post("/", cfg.Products.Create)
			r.Get("/search", cfg.Products.Search)
			r.Post("/attributes", cfg.Products.AddAttributes)
			r.Post("/upload-images", cfg.Media.UploadImages)
			r.Post("/upload-videos", cfg.Media.UploadVideos)
			r.Post("/import-csv", cfg.Import.ImportCSV)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cfg.Products.Get)
				r.Put("/", cfg.Products.Update)
				r.Delete("/", cfg.Products.Delete)
			})
		})

		if cfg.Advisor != nil {
			r.Mount("/advisor", cfg.Advisor)
		}
	})

	return r
}
