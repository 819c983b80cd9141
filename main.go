package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/AnjaliSharma2212/portfolio-app/internal/contact"
	"github.com/AnjaliSharma2212/portfolio-app/internal/session"
)

func newLogger() (*zap.Logger, error) {
	if gin.Mode() == gin.DebugMode {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	log, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := run(log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(log *zap.Logger) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	content, err := loadContent(cfg.ContentFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, err := session.New()
	if err != nil {
		return err
	}
	go sessions.StartCleanup(ctx, time.Hour, cfg.SessionTTL, log.Named("session"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	s := &server{
		cfg:      cfg,
		content:  content,
		flow:     contact.NewFlow(contact.NewHTTPRelay(cfg.FormEndpoint), sessions, log),
		sessions: sessions,
		registry: registry,
		admin:    newAdminAuth(cfg, log),
		log:      log,
	}

	if cfg.DatabasePath != "" {
		visitors, err := openVisitorLog(cfg.DatabasePath, log.Named("visitors"))
		if err != nil {
			return err
		}
		defer visitors.Close()
		s.visitors = visitors
		go runVisitorCleanup(ctx, visitors, log)
		log.Info("visitor tracking enabled with hashed IP addresses", zap.String("db", cfg.DatabasePath))
	}

	r, err := s.router()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr), zap.String("relay", cfg.FormEndpoint))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	// In-flight submissions get a chance to finish and record their outcome.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runVisitorCleanup(ctx context.Context, v *visitorLog, log *zap.Logger) {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		n, err := v.cleanup(time.Now())
		if err != nil {
			log.Error("cleaning up old visitor data", zap.Error(err))
		} else if n > 0 {
			log.Info("privacy cleanup removed old visitor records", zap.Int64("count", n))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
