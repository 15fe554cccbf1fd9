package logger

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/fatih/color"
	"github.com/go-chi/chi/v5/middleware"
)

// quietPrefixes are polled by machines and logged at debug only.
var quietPrefixes = []string{"/metrics", "/healthz", "/static/"}

func New(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		log := log.With(
			slog.String("component", "middleware/logger"),
		)

		log.Info("logger middleware enabled")

		fn := func(w http.ResponseWriter, r *http.Request) {
			entry := log.With(
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("remote_addr", r.RemoteAddr),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			t1 := time.Now()
			defer func() {
				msg := fmt.Sprintf("%s %s - %s", r.Method, r.RequestURI, colorStatus(ww.Status()))
				attrs := []any{
					slog.Int("status", ww.Status()),
					slog.Int("bytes", ww.BytesWritten()),
					slog.String("duration", time.Since(t1).String()),
				}
				if quiet(r.URL.Path) {
					entry.Debug(msg, attrs...)
					return
				}
				entry.Info(msg, attrs...)
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

func quiet(path string) bool {
	for _, p := range quietPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func colorStatus(status int) string {
	switch {
	case status < 200:
		return color.New(color.FgBlue).Sprintf("%03d", status)
	case status < 300:
		return color.New(color.FgGreen).Sprintf("%03d", status)
	case status < 400:
		return color.New(color.FgCyan).Sprintf("%03d", status)
	case status < 500:
		return color.New(color.FgYellow).Sprintf("%03d", status)
	default:
		return color.New(color.FgRed).Sprintf("%03d", status)
	}
}
