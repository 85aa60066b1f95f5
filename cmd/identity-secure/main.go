package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/identware/identity-secure/internal/ai"
	"github.com/identware/identity-secure/internal/allowlist"
	"github.com/identware/identity-secure/internal/config"
	"github.com/identware/identity-secure/internal/extractor"
	"github.com/identware/identity-secure/internal/logger"
	"github.com/identware/identity-secure/internal/pii"
	"github.com/identware/identity-secure/internal/server"
	"github.com/identware/identity-secure/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	scanPath := flag.String("scan", "", "Scan a single document and print the report")
	serve := flag.Bool("serve", false, "Start the HTTP API server")
	port := flag.Int("port", 0, "Override the configured server port")
	noAI := flag.Bool("no-ai", false, "Skip the semantic detector (pattern matching only)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	log, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	al, err := allowlist.New(cfg.Allowlist.Path)
	if err != nil {
		log.Fatal("failed to load allowlist", zap.Error(err))
	}
	if cfg.Allowlist.Watch {
		if err := al.Watch(func() {
			log.Info("allowlist reloaded", zap.Int("entries", al.Len()))
		}); err != nil {
			log.Warn("allowlist watch unavailable", zap.Error(err))
		}
		defer al.Close()
	}

	var detector pii.SemanticDetector
	if !*noAI {
		d, err := ai.NewFallbackDetector(cfg.Providers, cfg.Scan.MaxTextChars, log.WithComponent("ai"))
		if err != nil {
			log.Fatal("failed to configure detector providers", zap.Error(err))
		}
		detector = d
	}

	pipeline := pii.NewPipeline(pii.DefaultCatalog(), detector, al, log.WithComponent("pii"))

	if *scanPath != "" {
		if err := runScan(pipeline, cfg, log, *scanPath); err != nil {
			log.Fatal("scan failed", zap.String("path", *scanPath), zap.Error(err))
		}
		if !*serve {
			return
		}
	}

	if !*serve {
		fmt.Println("No action specified.")
		fmt.Println("Use -scan <file> to scan a document from the command line.")
		fmt.Println("Use -serve to start the HTTP API.")
		flag.PrintDefaults()
		return
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		log.Fatal("failed to open report database",
			zap.String("path", cfg.Storage.Path), zap.Error(err))
	}

	srv := server.New(cfg, log, pipeline, store, al)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Fatal("server error", zap.Error(err))
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}

// runScan extracts text from one file, runs the full pipeline and prints the
// report to stdout.
func runScan(pipeline *pii.Pipeline, cfg *config.Config, log *logger.Logger, path string) error {
	factory := extractor.NewFactory()
	ex, ext, err := factory.ForFile(path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	text, err := ex.Extract(file)
	if err != nil {
		return fmt.Errorf("extracting %s text: %w", ext, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	result := pipeline.Scan(ctx, text)

	log.Info("scan complete",
		zap.String("title", result.Title),
		zap.String("risk_level", string(result.RiskLevel)),
		zap.Bool("detected_any", result.DetectedAny),
	)
	fmt.Println(result.Report)

	if cfg.Scan.PersistCLIScans {
		store, err := storage.Open(cfg.Storage.Path)
		if err != nil {
			return err
		}
		return store.SaveReport(&storage.ReportModel{
			FileName:    path,
			Title:       result.Title,
			ReportText:  result.Report,
			RiskLevel:   string(result.RiskLevel),
			RiskScore:   result.RiskScore,
			DetectedAny: result.DetectedAny,
		})
	}
	return nil
}
