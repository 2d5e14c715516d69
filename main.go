package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"deckgen/agent"
	"deckgen/config"
	"deckgen/images"
	"deckgen/logger"
	"deckgen/synth"
	"deckgen/template"
)

const configFile = "deckgen.json"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; the environment may be set by the host.
	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		return WrapError("Config", "Load", err)
	}

	log := logger.New(cfg.DetailedLog)
	if err := log.Init(cfg.LogDir); err != nil {
		return WrapError("Logger", "Init", err)
	}
	defer log.Close()

	tmpl, err := template.Open(cfg.TemplatePath)
	if err != nil {
		return WrapError("Template", "Open", err)
	}
	log.Infof("template catalog loaded (%d layouts)", len(tmpl.LayoutNames()))

	resolver := images.NewResolver(images.Config{
		UnsplashAccessKey: cfg.UnsplashAccessKey,
		FallbackAsset:     cfg.FallbackImage,
		SearchTimeout:     time.Duration(cfg.SearchTimeoutSec) * time.Second,
		FetchTimeout:      time.Duration(cfg.FetchTimeoutSec) * time.Second,
	}, log)
	engine := synth.New(tmpl, resolver, log)

	var gen Generator
	if cfg.APIKey != "" {
		g, err := agent.NewGenerator(context.Background(), agent.Config{
			APIKey:    cfg.APIKey,
			BaseURL:   cfg.BaseURL,
			ModelName: cfg.ModelName,
			MaxTokens: cfg.MaxTokens,
			Timeout:   2 * time.Minute,
		}, log)
		if err != nil {
			return WrapError("Agent", "NewGenerator", err)
		}
		gen = g
	} else {
		log.Warnf("OPENAI_API_KEY not set; topic generation is disabled")
	}

	server := NewServer(cfg, log, engine, gen)
	httpSrv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // deck synthesis can wait on image fetches
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", cfg.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Infof("received %s, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down cleanly: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
