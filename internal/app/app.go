package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
	"github.com/Raimguzhinov/alarm-go/internal/config"
	"github.com/Raimguzhinov/alarm-go/internal/console"
	"github.com/Raimguzhinov/alarm-go/internal/device"
	"github.com/Raimguzhinov/alarm-go/internal/ui"
	"github.com/Raimguzhinov/alarm-go/internal/usecase"
	"github.com/Raimguzhinov/alarm-go/pkg/httpserver"
	"github.com/Raimguzhinov/alarm-go/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Build assembles the registry, notifier, console and router.
func Build(cfg *config.Config, l *logger.Logger) (*Deps, error) {
	renderer, err := ui.NewRenderer(cfg.App.Name)
	if err != nil {
		return nil, fmt.Errorf("app - Build - ui.NewRenderer: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	hub := console.NewHub(renderer.RenderList, l)

	notifier := device.New(cfg.Device.URL, l,
		device.Timeout(cfg.Device.Timeout),
		device.MaxInFlight(cfg.Device.MaxInFlight),
		device.WithMetrics(device.NewMetrics(reg)),
		device.WithConsole(hub),
	)

	registry := alarm.NewRegistry()
	reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "alarm_registered",
		Help: "Alarms currently held in the registry.",
	}, func() float64 { return float64(registry.Len()) }))

	alarms := usecase.NewAlarms(registry, notifier, l, hub)

	return &Deps{
		Alarms:   alarms,
		Renderer: renderer,
		Console:  hub,
		Notifier: notifier,
		Metrics:  reg,
		Location: cfg.App.Location(),
	}, nil
}

func Run(cfg *config.Config) {
	l := logger.New(cfg.Log.Level, cfg.App.Env)
	l.Info("starting",
		slog.String("app", cfg.App.Name),
		slog.String("version", cfg.App.Version),
		slog.String("device", cfg.Device.URL),
	)

	deps, err := Build(cfg, l)
	if err != nil {
		l.Error("app - Run - Build", logger.Err(err))
		os.Exit(1)
	}

	httpServer := httpserver.New(
		SetupRouter(l, cfg, *deps),
		httpserver.Addr(cfg.HTTP.IP, cfg.HTTP.Port),
		httpserver.ReadTimeout(cfg.HTTP.Timeout),
		httpserver.WriteTimeout(cfg.HTTP.Timeout),
		httpserver.IdleTimeout(cfg.HTTP.IdleTimout),
		httpserver.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
	)

	// Waiting signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: " + s.String())
	case err = <-httpServer.Notify():
		l.Error("app - Run - httpServer.Notify", logger.Err(err))
	}

	// Shutdown
	deps.Console.Close()
	err = httpServer.Shutdown()
	if err != nil {
		l.Error("app - Run - httpServer.Shutdown", logger.Err(err))
	}

	drained := make(chan struct{})
	go func() {
		deps.Notifier.Wait()
		close(drained)
	}()
	select {
	case <-drained:
	case <-time.After(cfg.HTTP.ShutdownTimeout):
		l.Warn("app - Run - abandoning in-flight device notifications")
	}
}
