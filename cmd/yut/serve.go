package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yutnori/internal/bootstrap"
	gameDelivery "yutnori/internal/delivery/game"
	"yutnori/internal/metrics"
	ownMiddleware "yutnori/internal/middleware"
	repo "yutnori/internal/repository"
	gameuc "yutnori/internal/usecase/game"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the table server",
	Long:  `Starts the yut-nori table: a JSON API and websocket state stream for a board UI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if port, _ := cmd.Flags().GetString("port"); port != "" {
			cfg.ServerPort = port
		}

		logger := NewLogger(cfg)
		defer logger.Sync()

		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		r, hub := newRouter(cfg, logger, reg)
		defer hub.Close()

		srv := &http.Server{
			Addr:    cfg.Addr(),
			Handler: r,
		}

		serverErrors := make(chan error, 1)
		go func() {
			logger.Infof("Server is running on %s", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			logger.Errorw("Server error", "error", err)
			return err

		case sig := <-shutdown:
			logger.Infof("Received shutdown signal %v", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				logger.Errorf("Graceful shutdown did not complete in %v: %v", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					logger.Errorf("Error killing server: %v", err)
				}
			}
			logger.Info("Server stopped")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "", "Port to listen on, overriding SERVER_PORT")
}

func newRouter(cfg *bootstrap.Config, logger *zap.SugaredLogger, reg *prometheus.Registry) (*chi.Mux, *gameDelivery.Hub) {
	store := repo.NewGameRepository(logger)

	var recorder gameuc.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.NewRecorder(reg)
		metrics.RegisterSessions(reg, store.Count)
	}

	uc := gameuc.NewGameUseCase(
		store,
		gameuc.NewRandomThrower(cfg.DiceSeed),
		recorder,
		gameuc.Defaults{
			BoardKind:       cfg.Kind(),
			PlayerCount:     cfg.PlayerCount,
			PiecesPerPlayer: cfg.PiecesPerPlayer,
		},
		logger,
	)
	hub := gameDelivery.NewHub(logger)

	r := chi.NewRouter()
	if cfg.IsLocalCors {
		r.Use(ownMiddleware.CORS)
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	gameDelivery.NewGameHandler(logger, uc, hub).Routes(r)
	if cfg.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	return r, hub
}
