package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/application/shipment"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/pdf"
	"github.com/ibdiallo/transit-secure-api/internal/infrastructure/sydonia"
)

// ShipmentHandler endpoints protégés du registre des dossiers.
type ShipmentHandler struct {
	uc        *shipment.UseCase
	statement *pdf.StatementGenerator
	sydonia   *sydonia.DeclarationBuilder
}

// NewShipmentHandler construit le handler.
func NewShipmentHandler(uc *shipment.UseCase, statement *pdf.StatementGenerator, builder *sydonia.DeclarationBuilder) *ShipmentHandler {
	return &ShipmentHandler{uc: uc, statement: statement, sydonia: builder}
}

// Create godoc
// @Summary      Ouvrir un dossier
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateShipmentRequest  true  "Formulaire d'ouverture"
// @Success      201   {object}  dto.ShipmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetActor(c), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Lister / rechercher les dossiers
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Recherche (suivi, BL, client, conteneur)"
// @Param        status  query  string  false  "Filtre statut"
// @Success      200     {array}  dto.ShipmentResponse
// @Router       /api/shipments [get]
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetActor(c), c.Query("search"), c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Consulter un dossier
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du dossier"
// @Success      200  {object}  dto.ShipmentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Modifier les informations d'un dossier
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.UpdateShipmentRequest  true  "Champs à modifier"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id} [patch]
func (h *ShipmentHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateShipmentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateDetails(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// SetArrival godoc
// @Summary      Enregistrer l'arrivée au port
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.ArrivalRequest  true  "Date d'arrivée"
// @Success      200   {object}  dto.ShipmentResponse
// @Router       /api/shipments/{id}/arrival [post]
func (h *ShipmentHandler) SetArrival(c *fiber.Ctx) error {
	var in dto.ArrivalRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetArrivalDate(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AdvanceStatus godoc
// @Summary      Faire avancer le workflow
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.AdvanceStatusRequest  true  "Statut cible"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/status [post]
func (h *ShipmentHandler) AdvanceStatus(c *fiber.Ctx) error {
	var in dto.AdvanceStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AdvanceStatus(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// AddExpense godoc
// @Summary      Ajouter une écriture financière
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.AddExpenseRequest  true  "Écriture"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/expenses [post]
func (h *ShipmentHandler) AddExpense(c *fiber.Ctx) error {
	var in dto.AddExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.AddExpense(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// documentResponse réponse de l'ajout de document : le dossier mis à jour et,
// si la pièce a déclenché un règlement, son résultat.
type documentResponse struct {
	Shipment *dto.ShipmentResponse      `json:"shipment"`
	Payment  *dto.PaymentResultResponse `json:"payment,omitempty"`
}

// AddDocument godoc
// @Summary      Attacher une pièce au dossier
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.AddDocumentRequest  true  "Pièce"
// @Success      200   {object}  documentResponse
// @Router       /api/shipments/{id}/documents [post]
func (h *ShipmentHandler) AddDocument(c *fiber.Ctx) error {
	var in dto.AddDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, payment, err := h.uc.AddDocument(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(documentResponse{Shipment: out, Payment: payment})
}

// Declare godoc
// @Summary      Enregistrer la déclaration SYDONIA
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.DeclarationRequest  true  "Numéro + montant liquidé"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/declaration [post]
func (h *ShipmentHandler) Declare(c *fiber.Ctx) error {
	var in dto.DeclarationRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Declare(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// PayLiquidation godoc
// @Summary      Régler la liquidation douanière
// @Tags         shipments
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID du dossier"
// @Success      200  {object}  dto.PaymentResultResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/pay [post]
func (h *ShipmentHandler) PayLiquidation(c *fiber.Ctx) error {
	out, err := h.uc.PayLiquidation(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Deliver godoc
// @Summary      Clôturer le dossier (livraison)
// @Tags         shipments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID du dossier"
// @Param        body  body  dto.DeliveryRequest  true  "Informations de livraison"
// @Success      200   {object}  dto.ShipmentResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/delivery [post]
func (h *ShipmentHandler) Deliver(c *fiber.Ctx) error {
	var in dto.DeliveryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Deliver(c.UserContext(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Télécharger le relevé de dossier (PDF)
// @Tags         shipments
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID du dossier"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/statement.pdf [get]
func (h *ShipmentHandler) Statement(c *fiber.Ctx) error {
	s, err := h.uc.Entity(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	out, err := h.statement.GenerateStatement(c.UserContext(), s)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="releve-`+s.TrackingNumber+`.pdf"`)
	return c.Send(out)
}

// ExportDeclaration godoc
// @Summary      Exporter la déclaration SYDONIA (XML)
// @Tags         shipments
// @Security     Bearer
// @Produce      application/xml
// @Param        id   path  string  true  "ID du dossier"
// @Success      200  {string}  string
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/shipments/{id}/declaration.xml [get]
func (h *ShipmentHandler) ExportDeclaration(c *fiber.Ctx) error {
	s, err := h.uc.Entity(c.UserContext(), GetActor(c), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	out, err := h.sydonia.Build(s)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="declaration-`+s.TrackingNumber+`.xml"`)
	return c.Send(out)
}
