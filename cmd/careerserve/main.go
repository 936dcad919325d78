/*
Careerserve is the backend API for the career and college exploration app.

It serves search, detail, salary, resolve and cluster data for careers, and
an opaque college list, from prepopulated files loaded once at startup. The
server runs in local-only mode: the prepopulated data is authoritative and
no upstream CareerOneStop calls happen on the serving path.

Start with defaults:

	careerserve

Point at a config file and a compiled careers snapshot:

	careerserve -config config.toml -careers data/careers.bin -d

Careers load from either the source JSON array or a snapshot compiled with
the prepop tool; the format is picked by file extension.
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shawnasapp/careerserve/internal/logger"
	"github.com/shawnasapp/careerserve/internal/metrics"
	"github.com/shawnasapp/careerserve/internal/server"
	"github.com/shawnasapp/careerserve/pkg/cache"
	"github.com/shawnasapp/careerserve/pkg/career"
	"github.com/shawnasapp/careerserve/pkg/college"
	"github.com/shawnasapp/careerserve/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.toml")
	careersPath := flag.String("careers", "", "override the careers data file")
	collegesPath := flag.String("colleges", "", "override the colleges data file")
	addr := flag.String("addr", "", "override the listen address")
	debug := flag.Bool("d", false, "enable debug logging")
	flag.Parse()

	logger.SetDebug(*debug)
	log := logger.New("careerserve")

	cfg := config.Load(*configPath)
	if *careersPath != "" {
		cfg.Data.CareersPath = *careersPath
	}
	if *collegesPath != "" {
		cfg.Data.CollegesPath = *collegesPath
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	careers := career.LoadStore(cfg.Data.CareersPath, career.Options{
		DefaultLimit: cfg.Search.DefaultLimit,
		MaxLimit:     cfg.Search.MaxLimit,
		MinQuery:     cfg.Search.MinQuery,
	})
	colleges := college.Load(cfg.Data.CollegesPath)
	clusters := career.LoadClusters(cfg.Data.ClustersPath)
	ttlCache := cache.New(time.Duration(cfg.Cache.TTLMinutes) * time.Minute)

	metrics.Init(careers, colleges, ttlCache)

	srv := server.New(cfg, careers, colleges, clusters, ttlCache)
	srv.RegisterRoutes()

	go func() {
		if err := srv.Start(); err != nil {
			log.Errorf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	if err := srv.Shutdown(); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}
	log.Info("Server exited")
}
