package server

import (
	"github.com/gofiber/fiber/v3"

	"github.com/shawnasapp/careerserve/internal/metrics"
	"github.com/shawnasapp/careerserve/pkg/college"
)

// collegeHandler serves the opaque college pass-through endpoints.
type collegeHandler struct {
	colleges *college.Store
}

func newCollegeHandler(colleges *college.Store) *collegeHandler {
	return &collegeHandler{colleges: colleges}
}

// List serves the full college list, empty when no data loaded.
func (h *collegeHandler) List(c fiber.Ctx) error {
	return c.JSON(h.colleges.All())
}

// GetByID serves a single college by exact id.
func (h *collegeHandler) GetByID(c fiber.Ctx) error {
	rec, err := h.colleges.Get(pathParam(c, "id"))
	if err != nil {
		metrics.RecordLookup("college", "miss")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "college not found"})
	}
	metrics.RecordLookup("college", "found")
	return c.JSON(rec)
}
