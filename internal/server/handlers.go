package server

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/shawnasapp/careerserve/internal/metrics"
	"github.com/shawnasapp/careerserve/pkg/career"
	"github.com/shawnasapp/careerserve/pkg/config"
)

// careerHandler serves every career endpoint from the in-memory store.
type careerHandler struct {
	careers  *career.Store
	clusters []career.Cluster
	cfg      *config.Config
}

func newCareerHandler(careers *career.Store, clusters []career.Cluster, cfg *config.Config) *careerHandler {
	return &careerHandler{careers: careers, clusters: clusters, cfg: cfg}
}

// pathParam returns a decoded route parameter, falling back to the raw
// value when it is not valid percent-encoding.
func pathParam(c fiber.Ctx, name string) string {
	raw := c.Params(name)
	if decoded, err := url.PathUnescape(raw); err == nil {
		return decoded
	}
	return raw
}

// Search filters the prepop store by keyword. Always 200 with an array,
// possibly empty; an empty store or empty query is not an error.
func (h *careerHandler) Search(c fiber.Ctx) error {
	query := strings.TrimSpace(pathParam(c, "query"))
	limit := h.careers.EffectiveLimit(c.Query("limit"))

	results := h.careers.Search(query, limit)
	outcome := "hit"
	if len(results) == 0 {
		outcome = "empty"
	}
	metrics.RecordSearch(outcome)
	return c.JSON(results)
}

// Health reports liveness and whether upstream credentials are configured.
func (h *careerHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"user":   h.cfg.Upstream.UserID != "",
	})
}

// LocalList serves the whole prepopulated career list.
func (h *careerHandler) LocalList(c fiber.Ctx) error {
	records := h.careers.All()
	if records == nil {
		records = []career.Record{}
	}
	return c.JSON(records)
}

// LocalMissing always reports an empty list: the prepop file is
// authoritative and the missing-fields audit is disabled.
func (h *careerHandler) LocalMissing(c fiber.Ctx) error {
	return c.JSON([]string{})
}

// LocalByKey resolves one prepop record by keyword or ONET code.
func (h *careerHandler) LocalByKey(c fiber.Ctx) error {
	rec, err := h.careers.Lookup(pathParam(c, "key"))
	if err != nil {
		metrics.RecordLookup("local", "miss")
		return notFoundError(c, err)
	}
	metrics.RecordLookup("local", "found")
	return c.JSON(rec)
}

// Resolve maps a spoken keyword to ONET suggestions.
func (h *careerHandler) Resolve(c fiber.Ctx) error {
	return c.JSON(h.careers.Resolve(pathParam(c, "keyword")))
}

// Details serves shaped occupation details by keyword.
func (h *careerHandler) Details(c fiber.Ctx) error {
	rec, err := h.careers.Lookup(pathParam(c, "keyword"))
	if err != nil {
		metrics.RecordLookup("details", "miss")
		return notFoundError(c, err)
	}
	metrics.RecordLookup("details", "found")
	return c.JSON(rec.Detail())
}

// DetailsByCode serves shaped occupation details by exact ONET code.
func (h *careerHandler) DetailsByCode(c fiber.Ctx) error {
	code := strings.TrimSpace(pathParam(c, "code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing onet code"})
	}
	rec, err := h.careers.LookupCode(code)
	if err != nil {
		metrics.RecordLookup("details_onet", "miss")
		return notFoundError(c, err)
	}
	metrics.RecordLookup("details_onet", "found")
	return c.JSON(rec.Detail())
}

// Salary serves the median wage for a record resolved by key.
func (h *careerHandler) Salary(c fiber.Ctx) error {
	info, err := h.careers.Salary(pathParam(c, "keyword"))
	if err != nil {
		metrics.RecordLookup("salary", "miss")
		return notFoundError(c, err)
	}
	metrics.RecordLookup("salary", "found")
	return c.JSON(info)
}

// Clusters serves the curated career cluster list.
func (h *careerHandler) Clusters(c fiber.Ctx) error {
	return c.JSON(h.clusters)
}

// AdminEnrich stays disabled: the prepop file is authoritative in
// local-only mode.
func (h *careerHandler) AdminEnrich(c fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"status":  "disabled",
		"message": "enrichment disabled. PREPOP is authoritative.",
	})
}

// notFoundError maps store errors onto the API's 404 bodies, keeping the
// data-unavailable case distinct from a plain miss.
func notFoundError(c fiber.Ctx, err error) error {
	if errors.Is(err, career.ErrNoData) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "no prepop available"})
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
}
