package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ibdiallo/transit-secure-api/internal/application/customs"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
)

// CustomsHandler estimation des droits et taxes.
type CustomsHandler struct{}

// NewCustomsHandler construit le handler.
func NewCustomsHandler() *CustomsHandler {
	return &CustomsHandler{}
}

// Estimate godoc
// @Summary      Estimer les droits et taxes à l'import
// @Tags         customs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.EstimateRequest  true  "Composantes CAF en GNF"
// @Success      200   {object}  dto.EstimateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customs/estimate [post]
func (h *CustomsHandler) Estimate(c *fiber.Ctx) error {
	var in dto.EstimateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := in.Validate().AsError(); err != nil {
		return fail(c, err)
	}
	return c.JSON(customs.Estimate(in))
}
