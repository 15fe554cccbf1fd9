package app

import (
	"net/http"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/config"
	"github.com/Raimguzhinov/alarm-go/internal/console"
	mwLogger "github.com/Raimguzhinov/alarm-go/internal/delivery/http/middleware/logger"
	v1 "github.com/Raimguzhinov/alarm-go/internal/delivery/http/v1"
	"github.com/Raimguzhinov/alarm-go/internal/delivery/http/web"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/internal/ui"
	"github.com/Raimguzhinov/alarm-go/internal/usecase"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

// Deps is everything the router serves, plus the background parts Run
// has to stop on shutdown.
type Deps struct {
	Alarms   *usecase.Alarms
	Renderer *ui.Renderer
	Console  *console.Hub
	Notifier *device.Notifier
	Metrics  prometheus.Gatherer
	Location *time.Location
}

func SetupRouter(l *logger.Logger, cfg *config.Config, deps Deps) http.Handler {
	s := chi.NewRouter()
	s.Use(middleware.RequestID)
	s.Use(middleware.RealIP)
	s.Use(mwLogger.New(l))
	s.Use(middleware.Recoverer)
	s.Use(corsMiddleware(cfg))

	s.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if deps.Metrics != nil {
		s.Handle("/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}
	if deps.Console != nil {
		s.Handle("/ws", deps.Console)
	}

	web.NewRouter(s, deps.Alarms, deps.Renderer, http.FS(ui.Static()), l, deps.Location)
	v1.NewRouter(s, deps.Alarms, l, deps.Location)

	return s
}

func corsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cfg.HTTP.CORS
	return cors.New(cors.Options{
		AllowedOrigins:     c.AllowedOrigins,
		AllowedMethods:     c.AllowedMethods,
		AllowedHeaders:     c.AllowedHeaders,
		ExposedHeaders:     c.ExposedHeaders,
		AllowCredentials:   c.AllowCredentials,
		OptionsPassthrough: c.OptionsPassthrough,
		Debug:              c.Debug,
	}).Handler
}
