package dto

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// DefaultDestination destination par défaut des imports.
const DefaultDestination = "Conakry, GN"

// blNumberPattern le connaissement ne contient que majuscules et chiffres.
var blNumberPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// CreateShipmentRequest body pour POST /api/shipments.
type CreateShipmentRequest struct {
	ClientName      string `json:"client_name"`
	CommodityType   string `json:"commodity_type"`
	Description     string `json:"description"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination,omitempty"`
	ETA             string `json:"eta"`
	BLNumber        string `json:"bl_number"`
	ShippingLine    string `json:"shipping_line"`
	ContainerNumber string `json:"container_number,omitempty"`
	CustomsRegime   string `json:"customs_regime"`
}

// Validate applique les règles du formulaire d'ouverture. Tous les champs sont
// contrôlés ; la moindre violation bloque la création.
func (r *CreateShipmentRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if len(r.ClientName) < 3 {
		errs.Add("client_name", "Le nom du client doit contenir au moins 3 caractères")
	} else if len(r.ClientName) > 100 {
		errs.Add("client_name", "Le nom du client ne doit pas dépasser 100 caractères")
	}

	if !validCommodity(r.CommodityType) {
		errs.Add("commodity_type", "Type de marchandise invalide")
	}
	if len(r.Description) < 5 {
		errs.Add("description", "La description doit être détaillée (min 5 car.)")
	}
	if len(r.Origin) < 2 {
		errs.Add("origin", "L'origine est requise")
	}
	if _, err := ParseDate(r.ETA); err != nil {
		errs.Add("eta", "Date ETA invalide")
	}

	if len(r.BLNumber) < 5 {
		errs.Add("bl_number", "Numéro BL invalide")
	}
	if !blNumberPattern.MatchString(r.BLNumber) {
		errs.Add("bl_number", "Le BL ne doit contenir que des majuscules et chiffres")
	}

	if len(r.ShippingLine) < 2 {
		errs.Add("shipping_line", "Compagnie maritime requise")
	}
	if !validRegime(r.CustomsRegime) {
		errs.Add("customs_regime", "Régime douanier invalide")
	}

	return errs
}

func validCommodity(s string) bool {
	for _, c := range entity.CommodityTypes {
		if string(c) == s {
			return true
		}
	}
	return false
}

func validRegime(s string) bool {
	for _, r := range entity.CustomsRegimes {
		if r == s {
			return true
		}
	}
	return false
}

// UpdateShipmentRequest body pour PATCH /api/shipments/:id.
// Fusion superficielle : seuls les champs non nil sont appliqués, sans
// validation champ par champ (parité avec la mise à jour libre du dossier).
type UpdateShipmentRequest struct {
	Origin          *string `json:"origin,omitempty"`
	Destination     *string `json:"destination,omitempty"`
	ETA             *string `json:"eta,omitempty"`
	BLNumber        *string `json:"bl_number,omitempty"`
	ShippingLine    *string `json:"shipping_line,omitempty"`
	ContainerNumber *string `json:"container_number,omitempty"`
}

// ArrivalRequest body pour POST /api/shipments/:id/arrival.
type ArrivalRequest struct {
	ArrivalDate string `json:"arrival_date"`
}

// AdvanceStatusRequest body pour POST /api/shipments/:id/status.
type AdvanceStatusRequest struct {
	Status string `json:"status"`
}

// DeclarationRequest body pour POST /api/shipments/:id/declaration.
type DeclarationRequest struct {
	Number string          `json:"number"`
	Amount decimal.Decimal `json:"amount"`
}

// DeliveryRequest body pour POST /api/shipments/:id/delivery.
type DeliveryRequest struct {
	DriverName    string `json:"driver_name"`
	TruckPlate    string `json:"truck_plate"`
	RecipientName string `json:"recipient_name,omitempty"`
}

// PaymentResultResponse résultat du règlement de liquidation. Jamais d'erreur
// HTTP pour un refus métier : success=false et le motif lisible.
type PaymentResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DeliveryInfoResponse livraison finale d'un dossier.
type DeliveryInfoResponse struct {
	DriverName    string    `json:"driver_name"`
	TruckPlate    string    `json:"truck_plate"`
	DeliveryDate  time.Time `json:"delivery_date"`
	RecipientName string    `json:"recipient_name,omitempty"`
}

// ShipmentResponse représentation API d'un dossier.
type ShipmentResponse struct {
	ID                string                `json:"id"`
	TrackingNumber    string                `json:"tracking_number"`
	ClientName        string                `json:"client_name"`
	CommodityType     string                `json:"commodity_type"`
	Description       string                `json:"description"`
	Origin            string                `json:"origin"`
	Destination       string                `json:"destination"`
	Status            string                `json:"status"`
	StatusLabel       string                `json:"status_label"`
	ETA               time.Time             `json:"eta"`
	ArrivalDate       *time.Time            `json:"arrival_date,omitempty"`
	FreeDays          int                   `json:"free_days"`
	Documents         []entity.Document     `json:"documents"`
	Expenses          []entity.Expense      `json:"expenses"`
	Alerts            []string              `json:"alerts"`
	Blocked           bool                  `json:"blocked"`
	BLNumber          string                `json:"bl_number"`
	ShippingLine      string                `json:"shipping_line"`
	ContainerNumber   string                `json:"container_number,omitempty"`
	CustomsRegime     string                `json:"customs_regime"`
	DeclarationNumber string                `json:"declaration_number,omitempty"`
	DeclaredAmount    *decimal.Decimal      `json:"declared_amount,omitempty"`
	Balance           decimal.Decimal       `json:"balance"`
	DeliveryInfo      *DeliveryInfoResponse `json:"delivery_info,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}
