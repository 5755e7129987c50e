package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentStatus états du cycle de vie d'un dossier, dans l'ordre strict du workflow.
type ShipmentStatus string

const (
	StatusOpened             ShipmentStatus = "OPENED"
	StatusPreClearance       ShipmentStatus = "PRE_CLEARANCE"
	StatusCustomsLiquidation ShipmentStatus = "CUSTOMS_LIQUIDATION"
	StatusLiquidationPaid    ShipmentStatus = "LIQUIDATION_PAID"
	StatusBAEGranted         ShipmentStatus = "BAE_GRANTED"
	StatusPortExit           ShipmentStatus = "PORT_EXIT"
	StatusDelivered          ShipmentStatus = "DELIVERED"
)

// statusLabels libellés d'affichage (français) des statuts.
var statusLabels = map[ShipmentStatus]string{
	StatusOpened:             "Ouverture Dossier",
	StatusPreClearance:       "Pré-Dédouanement (DDI & BSC)",
	StatusCustomsLiquidation: "Liquidation Douane",
	StatusLiquidationPaid:    "Liquidation Payée",
	StatusBAEGranted:         "BAE Obtenu",
	StatusPortExit:           "Sortie Port",
	StatusDelivered:          "Livré / Archivé",
}

// Label renvoie le libellé d'affichage du statut.
func (s ShipmentStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

// Valid indique si le statut fait partie du workflow.
func (s ShipmentStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// CommodityType nature de la marchandise.
type CommodityType string

const (
	CommodityVehicle     CommodityType = "VEHICLE"
	CommodityContainer   CommodityType = "CONTAINER"
	CommodityFood        CommodityType = "FOOD"
	CommodityElectronics CommodityType = "ELECTRONICS"
	CommodityBulk        CommodityType = "BULK"
	CommodityGeneral     CommodityType = "GENERAL"
)

// CommodityTypes énumération fermée pour la validation.
var CommodityTypes = []CommodityType{
	CommodityVehicle, CommodityContainer, CommodityFood,
	CommodityElectronics, CommodityBulk, CommodityGeneral,
}

// Régimes douaniers acceptés (nomenclature SYDONIA).
const (
	RegimeIM4    = "IM4"    // mise à la consommation
	RegimeIT     = "IT"     // transit
	RegimeAT     = "AT"     // admission temporaire
	RegimeExport = "Export"
)

// CustomsRegimes énumération fermée pour la validation.
var CustomsRegimes = []string{RegimeIM4, RegimeIT, RegimeAT, RegimeExport}

// DefaultFreeDays jours de franchise avant surestaries au port de Conakry.
const DefaultFreeDays = 7

// DeliveryInfo informations de livraison finale, renseignées au passage en DELIVERED.
type DeliveryInfo struct {
	DriverName    string    `json:"driver_name"`
	TruckPlate    string    `json:"truck_plate"`
	DeliveryDate  time.Time `json:"delivery_date"`
	RecipientName string    `json:"recipient_name"`
}

// Shipment représente un dossier de dédouanement import.
type Shipment struct {
	ID             string
	TrackingNumber string // format <régime>-<4 chiffres>-GN
	ClientName     string
	CommodityType  CommodityType
	Description    string
	Origin         string
	Destination    string
	Status         ShipmentStatus
	ETA            time.Time
	ArrivalDate    *time.Time // date d'arrivée effective au port
	FreeDays       int        // jours de franchise avant surestaries
	Documents      []Document
	Expenses       []Expense
	Alerts         []string // dossier bloqué ssi non vide

	BLNumber        string // connaissement, toujours en majuscules
	ShippingLine    string
	ContainerNumber string // optionnel (RORO/vrac)
	CustomsRegime   string

	// Renseignés une seule fois par l'enregistrement de la déclaration
	DeclarationNumber string // numéro de déclaration SYDONIA
	DeclaredAmount    *decimal.Decimal

	DeliveryInfo *DeliveryInfo

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blocked indique si le dossier porte au moins une alerte.
func (s *Shipment) Blocked() bool {
	return len(s.Alerts) > 0
}

// HasDocument indique si un document du type donné existe déjà dans le dossier.
func (s *Shipment) HasDocument(t DocumentType) bool {
	for _, d := range s.Documents {
		if d.Type == t {
			return true
		}
	}
	return false
}

// DemurrageExceeded indique si la franchise portuaire est dépassée : dossier arrivé,
// pas encore sorti du port, et arrivée + FreeDays antérieure à now.
func (s *Shipment) DemurrageExceeded(now time.Time) bool {
	if s.ArrivalDate == nil {
		return false
	}
	switch s.Status {
	case StatusPortExit, StatusDelivered:
		return false
	}
	return s.ArrivalDate.AddDate(0, 0, s.FreeDays).Before(now)
}

// Clone renvoie une copie profonde du dossier. Les mutations travaillent sur une
// copie puis remplacent l'enregistrement : jamais de mutation en place du stockage.
func (s *Shipment) Clone() *Shipment {
	c := *s
	c.Documents = append([]Document(nil), s.Documents...)
	c.Expenses = append([]Expense(nil), s.Expenses...)
	c.Alerts = append([]string(nil), s.Alerts...)
	if s.ArrivalDate != nil {
		d := *s.ArrivalDate
		c.ArrivalDate = &d
	}
	if s.DeclaredAmount != nil {
		m := *s.DeclaredAmount
		c.DeclaredAmount = &m
	}
	if s.DeliveryInfo != nil {
		di := *s.DeliveryInfo
		c.DeliveryInfo = &di
	}
	return &c
}
