package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"pong/config"
	"pong/network"
	"pong/room"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "", "TOML config file (defaults to $PONG_CONFIG)")
	addr := flag.String("addr", "", "listen address, overrides the config")
	flag.Parse()

	if err := config.InitConfig(); err != nil {
		slog.Error("init config", "err", err)
		os.Exit(1)
	}
	setupLogger()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	if err := run(cfg); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if v, err := config.GetEnvVariable("PONG_LOG_LEVEL"); err == nil {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			slog.Warn("bad PONG_LOG_LEVEL, using info", "value", v)
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := room.NewManager(cfg.Rules())
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           network.NewServer(manager, cfg.RepeatInterval(), cfg.KeepAlive).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("listening", "addr", cfg.Addr, "ws", "/ws", "rooms", "/rooms", "rng", cfg.RNG, "aiRatio", cfg.AIRatio)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		slog.Info("shutting down")
		manager.StopAll()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
