package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/service"
	"github.com/spec-kit/auth-service/pkg/response"
)

// DemoHandler exposes the placeholder resource under /api/v1/demos.
type DemoHandler struct {
	demos *service.DemoService
}

// NewDemoHandler constructs the handler.
func NewDemoHandler(demoService *service.DemoService) *DemoHandler {
	return &DemoHandler{demos: demoService}
}

// List handles GET /api/v1/demos.
func (h *DemoHandler) List(c *fiber.Ctx) error {
	demos, err := h.demos.List(c.UserContext())
	if err != nil {
		return err
	}

	results := make([]dto.DemoResponse, 0, len(demos))
	for _, demo := range demos {
		results = append(results, dto.DemoResponse{ID: demo.ID, CreatedAt: demo.CreatedAt})
	}

	return c.JSON(response.Wrap(http.StatusOK, fiber.Map{"results": results}))
}

// Create handles POST /api/v1/demos.
func (h *DemoHandler) Create(c *fiber.Ctx) error {
	demo, err := h.demos.Create(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(response.Wrap(http.StatusCreated,
		dto.DemoResponse{ID: demo.ID, CreatedAt: demo.CreatedAt}))
}
