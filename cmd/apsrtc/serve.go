package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/cors"
	"github.com/spf13/cobra"

	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/config"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/handlers"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/metrics"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/publisher"
	"github.com/Abhiram-ops/APSRTC--live-bus-tracking/sim"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	log.Printf("connected to %s storage", cfg.DBBackend)

	collector := metrics.NewCollector()
	var metricsSrv *http.Server
	if cfg.MetricsAddr != "" {
		metricsSrv = collector.Serve(cfg.MetricsAddr)
		log.Printf("metrics listening on %s", cfg.MetricsAddr)
	}

	liveHandler := handlers.NewLiveHandler(store, collector, cfg.SimEnabled)
	if cfg.NATSURL != "" {
		pub, err := publisher.NewNATSPublisher(cfg.NATSURL, collector)
		if err != nil {
			return err
		}
		defer pub.Close()
		liveHandler.SetPublisher(pub)
		log.Printf("publishing position events to %s", cfg.NATSURL)
	}

	ttls := handlers.MetaCacheTTLs{
		Routes:    cfg.RoutesCacheTTL,
		Stations:  cfg.StationsCacheTTL,
		Dashboard: cfg.DashboardCacheTTL,
	}

	router := handlers.NewRouter(
		handlers.NewSearchHandler(store, collector),
		handlers.NewLookupHandler(store),
		handlers.NewMetaHandler(store, ttls),
		liveHandler,
		store,
	)

	handler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	})(router)

	// Simulation and live ingestion are mutually exclusive: the simulator
	// advances every row blindly and would corrupt driver-reported
	// positions. The live handler rejects reports while simMode is set.
	var simulator *sim.Simulator
	if cfg.SimEnabled {
		simulator = sim.New(store, cfg.SimInterval, collector)
		simulator.Start(ctx)
		log.Printf("simulation mode: driver reports disabled")
	}

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: handler}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("API server starting on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	if simulator != nil {
		simulator.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
	return srv.Shutdown(shutdownCtx)
}
