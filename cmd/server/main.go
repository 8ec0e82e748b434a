// Package main - Entry point for the partquote HTTP server
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

	"partquote/adapters/imaging"
	"partquote/adapters/ocr"
	"partquote/api"
	"partquote/core/engine"
	"partquote/internal/config"
	"partquote/internal/logging"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "config file, .json or .hcl")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		fmt.Fprintf(os.Stderr, "partquote-server: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	config.Set(cfg)

	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	card, err := cfg.RateCard()
	if err != nil {
		return err
	}
	eng := engine.New(cfg.Extraction.Range(), card, engine.WithLogger(logging.Logger))

	recognizer := ocr.NewTesseract(ocr.Config{
		Tesseract:   cfg.OCR.Tesseract,
		Language:    cfg.OCR.Language,
		TessdataDir: cfg.OCR.TessdataDir,
		PSM:         cfg.OCR.PSM,
		Timeout:     time.Duration(cfg.OCR.TimeoutSeconds) * time.Second,
	}, nil, logging.Logger)

	apiServer := api.NewServer(eng, imaging.NewNormalizer(cfg.OCR.ResizeWidth), recognizer, api.Options{
		Version:     version,
		MaxUploadMB: cfg.Server.MaxUploadMB,
		Logger:      logging.Logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      apiServer,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("version", version),
			zap.String("rate_card", card.ContentHash().String()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logging.Error("server stopped", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logging.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("shutdown failed", zap.Error(err))
		return err
	}
	return nil
}
