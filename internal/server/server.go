/*
Package server wires the career and college stores into the HTTP API.

The API runs in local-only mode: the prepopulated stores are authoritative,
upstream CareerOneStop enrichment stays disabled, and every handler is a
plain in-memory read.
*/
package server

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"

	"github.com/shawnasapp/careerserve/internal/logger"
	"github.com/shawnasapp/careerserve/pkg/cache"
	"github.com/shawnasapp/careerserve/pkg/career"
	"github.com/shawnasapp/careerserve/pkg/college"
	"github.com/shawnasapp/careerserve/pkg/config"
)

// Server wraps the Fiber app, the config and the loaded stores.
type Server struct {
	App      *fiber.App
	Cfg      *config.Config
	Careers  *career.Store
	Colleges *college.Store
	Clusters []career.Cluster
	Cache    *cache.TTL
}

// New creates the server with middleware configured.
func New(cfg *config.Config, careers *career.Store, colleges *college.Store, clusters []career.Cluster, ttlCache *cache.TTL) *Server {
	app := fiber.New(fiber.Config{
		AppName: "careerserve",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal Server Error"
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
				message = e.Message
			}
			return c.Status(code).JSON(fiber.Map{"error": message})
		},
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if cfg.Server.RequestLog {
		app.Use(fiberlogger.New())
	}
	if cfg.Server.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: strings.Split(cfg.Server.CORSOrigins, ","),
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		}))
	} else {
		app.Use(cors.New())
	}

	return &Server{
		App:      app,
		Cfg:      cfg,
		Careers:  careers,
		Colleges: colleges,
		Clusters: clusters,
		Cache:    ttlCache,
	}
}

// Start starts the server on the configured address.
func (s *Server) Start() error {
	log := logger.New("server")
	log.Infof("API server listening on %s (local-only mode, prepop is authoritative)", s.Cfg.Server.Addr)
	log.Debugf("Upstream credentials: user=%v token=%s",
		s.Cfg.Upstream.UserID != "", config.MaskToken(s.Cfg.Upstream.Token))
	return s.App.Listen(s.Cfg.Server.Addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	return s.App.Shutdown()
}
