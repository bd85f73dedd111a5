package status

import (
	"errors"

	"craftwarden/core/catalog"
	"craftwarden/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for warden status and catalog edits.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Get("/status", h.HandleGetStatus)
	group.Get("/recipes", h.HandleGetRecipes)
	group.Put("/recipes", h.HandleUpsertRecipe)
	group.Delete("/recipes", h.HandleRemoveRecipe)
	group.Post("/reload", h.HandleReload)
	group.Post("/poll", h.HandlePoll)
}

// HandleGetStatus returns the aggregate of the last full cycle.
func (h *Handler) HandleGetStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Snapshot().Status)
}

// HandleGetRecipes returns the catalog as last published.
func (h *Handler) HandleGetRecipes(c *fiber.Ctx) error {
	snap := h.service.Snapshot()
	return c.JSON(fiber.Map{"recipes": snap.Recipes})
}

// HandleUpsertRecipe creates or updates a catalog entry from the
// request body.
func (h *Handler) HandleUpsertRecipe(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req UpsertRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if err := h.service.UpsertRecipe(c.Context(), req); err != nil {
		l.Error("Recipe upsert failed", zap.String("name", req.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Recipe upserted",
		zap.String("name", req.Name),
		zap.Int("wanted", req.Wanted))
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleRemoveRecipe deletes the catalog entry named by the key query
// parameter.
func (h *Handler) HandleRemoveRecipe(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key := c.Query("key")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "key query parameter is required",
		})
	}

	err := h.service.RemoveRecipe(c.Context(), key)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	case errors.Is(err, catalog.ErrInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	case err != nil:
		l.Error("Recipe removal failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Recipe removed", zap.String("key", key))
	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleReload triggers an out-of-band full cycle. Pass learn=true to
// pick up craftable items not yet in the catalog.
func (h *Handler) HandleReload(c *fiber.Ctx) error {
	learn := c.QueryBool("learn")
	h.service.RequestCycle(learn)
	return c.JSON(fiber.Map{"status": "scheduled", "learn": learn})
}

// HandlePoll triggers an out-of-band check of all in-flight jobs.
func (h *Handler) HandlePoll(c *fiber.Ctx) error {
	h.service.RequestPoll()
	return c.JSON(fiber.Map{"status": "scheduled"})
}
