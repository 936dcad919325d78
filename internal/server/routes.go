package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"

	"github.com/shawnasapp/careerserve/internal/metrics"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes() {
	careerHandler := newCareerHandler(s.Careers, s.Clusters, s.Cfg)
	collegeHandler := newCollegeHandler(s.Colleges)

	// Canonical career mount plus the legacy misspelled mount some older
	// frontend builds still call.
	for _, prefix := range []string{
		"/api/careers/careeronestop",
		"/api/careers/careeronestoap",
	} {
		g := s.App.Group(prefix)
		g.Get("/search/:query", careerHandler.Search)
		g.Get("/health", careerHandler.Health)
		g.Get("/local", careerHandler.LocalList)
		g.Get("/local/missing", careerHandler.LocalMissing)
		g.Get("/local/:key", careerHandler.LocalByKey)
		g.Get("/resolve/:keyword", careerHandler.Resolve)
		// the onet route must come before the keyword route
		g.Get("/details/onet/:code", careerHandler.DetailsByCode)
		g.Get("/details/:keyword", careerHandler.Details)
		g.Get("/salary/:keyword", careerHandler.Salary)
		g.Get("/clusters", careerHandler.Clusters)
		g.Post("/admin/enrich", careerHandler.AdminEnrich)
	}

	colleges := s.App.Group("/api/colleges")
	colleges.Get("/local", collegeHandler.List)
	colleges.Get("/local/:id", collegeHandler.GetByID)

	s.App.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// production SPA build, when present; registered last so API routes win
	if s.Cfg.Server.StaticDir != "" {
		s.App.Get("/*", static.New(s.Cfg.Server.StaticDir))
	}
}
