package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/application/team"
)

// TeamHandler registre d'équipe (directeur uniquement).
type TeamHandler struct {
	uc *team.UseCase
}

// NewTeamHandler construit le handler.
func NewTeamHandler(uc *team.UseCase) *TeamHandler {
	return &TeamHandler{uc: uc}
}

// List godoc
// @Summary      Lister les membres de l'équipe
// @Tags         team
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TeamMemberResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/team [get]
func (h *TeamHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Invite godoc
// @Summary      Inviter un collaborateur
// @Tags         team
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InviteMemberRequest  true  "Invitation"
// @Success      201   {object}  dto.TeamMemberResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/team [post]
func (h *TeamHandler) Invite(c *fiber.Ctx) error {
	var in dto.InviteMemberRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Invite(c.UserContext(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Remove godoc
// @Summary      Révoquer l'accès d'un membre
// @Tags         team
// @Security     Bearer
// @Param        id  path  string  true  "ID du membre"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/team/{id} [delete]
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	if err := h.uc.Remove(c.UserContext(), GetActor(c), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
