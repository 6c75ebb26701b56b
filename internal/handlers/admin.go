package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/mmoutenot/latitune/internal/config"
	"github.com/mmoutenot/latitune/internal/database"
	"github.com/mmoutenot/latitune/internal/services"
	"github.com/mmoutenot/latitune/internal/utils"
	"gorm.io/gorm"
)

// AdminHandler handles developer and operational routes
type AdminHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// TabulaRasa handles GET /api/tabularasa
// @Summary Wipe and recreate all storage (developer mode only)
// @Description Returns 404 outside LATITUNE_LOCAL so production builds behave
// @Description as if the route does not exist.
// @Tags Admin
// @Produce json
// @Success 200 {object} utils.Envelope
// @Router /tabularasa [get]
func (h *AdminHandler) TabulaRasa(c *fiber.Ctx) error {
	if !h.Cfg.Local {
		return fiber.ErrNotFound
	}

	log.Println("tabularasa: dropping and recreating all storage")
	if err := database.Reset(h.DB); err != nil {
		return err
	}
	return utils.SuccessResponse(c)
}

// GetHealth handles GET /api/health
// @Summary Service health probe
// @Tags Admin
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Router /health [get]
func (h *AdminHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Cfg, h.DB)
	status := fiber.StatusOK
	if result.Status == "unhealthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
