package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/martinsuchenak/labelinv/internal/api"
	"github.com/martinsuchenak/labelinv/internal/config"
	"github.com/martinsuchenak/labelinv/internal/inventory"
	"github.com/martinsuchenak/labelinv/internal/log"
	"github.com/martinsuchenak/labelinv/internal/scanner"
	"github.com/martinsuchenak/labelinv/internal/storage"
	"github.com/paularlott/cli"
	"golang.org/x/sync/errgroup"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "server",
		Usage:       "Start the inventory server",
		Description: "Start the HTTP API server, optionally probing device status in the background",
		Flags:       config.GetFlags(),
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cfg := config.Load()
			log.Configure(cfg.LogLevel, cfg.LogFormat)

			log.Info("Configuration loaded", "listen_addr", cfg.ListenAddr, "journal", cfg.JournalDSN)

			seed, err := inventory.LoadSeed(cfg.SeedFile)
			if err != nil {
				log.Error("Failed to load seed", "error", err, "path", cfg.SeedFile)
				return err
			}
			store, err := inventory.NewFromSeed(seed)
			if err != nil {
				log.Error("Invalid seed", "error", err, "path", cfg.SeedFile)
				return err
			}
			log.Info("Inventory initialized", "devices", len(seed.Devices), "labels", len(seed.Labels))

			journal, err := storage.Open(cfg.JournalDSN)
			if err != nil {
				log.Error("Failed to open change journal", "error", err)
				return err
			}
			defer journal.Close()
			unsubscribe := store.Subscribe(journal.Observe)
			defer unsubscribe()

			var prober *scanner.Prober
			if cfg.IsProbeEnabled() {
				prober, err = newProber(cfg, store)
				if err != nil {
					log.Error("Failed to configure status probe", "error", err)
					return err
				}
				log.Info("Status probe enabled", "mode", cfg.ProbeMode, "interval", cfg.ProbeInterval.String())
			}

			mux := http.NewServeMux()
			api.NewHandler(store, journal).RegisterRoutes(mux)

			// Apply middleware
			var handler http.Handler = mux
			if cfg.IsAPIAuthEnabled() {
				handler = api.AuthMiddleware(cfg.APIAuthToken, handler)
			}
			handler = api.SecurityHeadersMiddleware(handler)
			handler = api.RequestLogMiddleware(handler)
			handler = api.RecoveryMiddleware(handler)

			server := &http.Server{
				Addr:              cfg.ListenAddr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			g, ctx := errgroup.WithContext(ctx)

			g.Go(func() error {
				log.Info("Starting inventory server", "addr", cfg.ListenAddr)
				log.Info("API available", "url", "http://localhost"+cfg.ListenAddr+"/api/")
				if cfg.IsAPIAuthEnabled() {
					log.Info("API authentication enabled")
				}
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("Server error", "error", err)
					return err
				}
				return nil
			})

			g.Go(func() error {
				<-ctx.Done()
				log.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			})

			if prober != nil {
				g.Go(func() error {
					return prober.Run(ctx)
				})
			}

			if err := g.Wait(); err != nil {
				return err
			}
			log.Info("Server stopped")
			return nil
		},
	}
}

func newProber(cfg *config.Config, store *inventory.Store) (*scanner.Prober, error) {
	ports, err := cfg.Ports()
	if err != nil {
		return nil, err
	}
	checker, err := scanner.NewChecker(scanner.CheckerConfig{
		Mode:          cfg.ProbeMode,
		Timeout:       cfg.ProbeTimeout,
		Ports:         ports,
		SNMPCommunity: cfg.SNMPCommunity,
	})
	if err != nil {
		return nil, err
	}
	return scanner.NewProber(store, checker, cfg.ProbeInterval, cfg.ProbeConcurrency), nil
}
