// Package sydonia exporte un dossier déclaré au format XML échangeable avec
// le guichet SYDONIA World. Export non signé : le visa électronique est apposé
// côté douane.
package sydonia

import (
	"time"

	"github.com/beevik/etree"
	"github.com/ibdiallo/transit-secure-api/internal/domain"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
)

// Bureau de douane de rattachement.
const (
	OfficeCode = "GNCKY"
	OfficeName = "Port Autonome de Conakry"
)

// DeclarationBuilder construit le document XML d'une déclaration.
type DeclarationBuilder struct{}

// NewDeclarationBuilder construit le générateur.
func NewDeclarationBuilder() *DeclarationBuilder {
	return &DeclarationBuilder{}
}

// Build sérialise la déclaration du dossier. ErrNoDeclaration si le dossier
// n'a pas encore de numéro SYDONIA.
func (b *DeclarationBuilder) Build(s *entity.Shipment) ([]byte, error) {
	if s.DeclarationNumber == "" || s.DeclaredAmount == nil {
		return nil, domain.ErrNoDeclaration
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("SydoniaDeclaration")
	root.CreateAttr("version", "1.0")

	ident := root.CreateElement("Identification")
	ident.CreateElement("Number").SetText(s.DeclarationNumber)
	ident.CreateElement("Regime").SetText(s.CustomsRegime)
	office := ident.CreateElement("Office")
	office.CreateAttr("code", OfficeCode)
	office.SetText(OfficeName)
	ident.CreateElement("Reference").SetText(s.TrackingNumber)
	ident.CreateElement("IssueDate").SetText(time.Now().Format("2006-01-02"))

	consignee := root.CreateElement("Consignee")
	consignee.CreateElement("Name").SetText(s.ClientName)
	consignee.CreateElement("Destination").SetText(s.Destination)

	transport := root.CreateElement("Transport")
	transport.CreateElement("BillOfLading").SetText(s.BLNumber)
	transport.CreateElement("ShippingLine").SetText(s.ShippingLine)
	if s.ContainerNumber != "" {
		transport.CreateElement("Container").SetText(s.ContainerNumber)
	}
	if s.ArrivalDate != nil {
		transport.CreateElement("ArrivalDate").SetText(s.ArrivalDate.Format("2006-01-02"))
	}

	goods := root.CreateElement("Goods")
	goods.CreateElement("Description").SetText(s.Description)
	goods.CreateElement("CommodityType").SetText(string(s.CommodityType))
	goods.CreateElement("Origin").SetText(s.Origin)

	valuation := root.CreateElement("Valuation")
	amount := valuation.CreateElement("LiquidatedAmount")
	amount.CreateAttr("currency", "GNF")
	amount.SetText(s.DeclaredAmount.String())

	doc.Indent(2)
	return doc.WriteToBytes()
}
