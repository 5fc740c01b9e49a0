// Command stride runs a distance tracker behind an HTTP control surface.
//
// Fixes come from one of three providers, chosen by STRIDE_PROVIDER:
//
//	ingest  clients POST fixes to /fixes (default)
//	file    a newline-delimited fix log at STRIDE_FILE is tailed
//	redis   fixes are published on STRIDE_REDIS_CHANNEL
//
// Settings may also be placed in a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/stride"
	"github.com/zoobzio/stride/internal/config"
	"github.com/zoobzio/stride/pkg/httpctl"
	strideredis "github.com/zoobzio/stride/pkg/redis"
)

func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	codec, err := cfg.FixCodec()
	if err != nil {
		return err
	}

	var (
		provider stride.Provider
		ingest   *httpctl.IngestProvider
	)
	switch cfg.Provider {
	case config.ProviderFile:
		provider = stride.NewFileProvider(cfg.File).Codec(codec)
	case config.ProviderRedis:
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer client.Close()
		provider = strideredis.New(client, cfg.RedisChannel, strideredis.WithCodec(codec))
	default:
		ingest = httpctl.NewIngestProvider()
		provider = ingest
	}

	hookLogging()

	stats := &counters{}
	tracker := stride.New(provider).
		Request(cfg.Request).
		Threshold(cfg.Threshold).
		Notifier(stride.NotifierFunc(func(_ context.Context, msg string) {
			log.Printf("[NOTICE] %s", msg)
		})).
		Metrics(stats).
		ErrorHistorySize(cfg.ErrorHistory)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpctl.NewRouter(tracker, ingest),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("stride listening on %s (provider=%s)", cfg.HTTPAddr, cfg.Provider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = srv.Shutdown(shutdownCtx)

	tracker.Stop(context.Background())
	log.Printf("session %s: %s (%s)", tracker.SessionID(), tracker.Display(), stats)
	capitan.Shutdown()
	return err
}

func hookLogging() {
	capitan.Hook(stride.TrackerStateChanged, func(_ context.Context, e *capitan.Event) {
		oldState, _ := stride.KeyOldState.From(e)
		newState, _ := stride.KeyNewState.From(e)
		log.Printf("[STATE] %s -> %s", oldState, newState)
	})

	capitan.Hook(stride.TrackerSubscribeFailed, func(_ context.Context, e *capitan.Event) {
		errMsg, _ := stride.KeyError.From(e)
		log.Printf("[SUBSCRIBE] %s", errMsg)
	})

	capitan.Hook(stride.FixAccepted, func(_ context.Context, e *capitan.Event) {
		fix, _ := stride.KeyFix.From(e)
		d, _ := stride.KeyDistance.From(e)
		log.Printf("[FIX] %s +%s m", fix, d)
	})

	capitan.Hook(stride.FixRejected, func(_ context.Context, e *capitan.Event) {
		fix, _ := stride.KeyFix.From(e)
		errMsg, _ := stride.KeyError.From(e)
		log.Printf("[REJECTED] %s: %s", fix, errMsg)
	})

	capitan.Hook(stride.ProviderDecodeFailed, func(_ context.Context, e *capitan.Event) {
		provider, _ := stride.KeyProviderType.From(e)
		errMsg, _ := stride.KeyError.From(e)
		log.Printf("[DECODE] %s: %s", provider, errMsg)
	})

	capitan.Hook(stride.ProviderClosed, func(_ context.Context, e *capitan.Event) {
		provider, _ := stride.KeyProviderType.From(e)
		log.Printf("[CLOSED] %s stopped delivering fixes", provider)
	})
}
