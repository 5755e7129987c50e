package shipment

import (
	"github.com/ibdiallo/transit-secure-api/internal/application/dto"
	"github.com/ibdiallo/transit-secure-api/internal/domain/entity"
	"github.com/ibdiallo/transit-secure-api/internal/domain/transit"
)

// toResponse projette l'entité vers sa représentation API. Le solde est
// calculé à la volée selon le mode configuré, jamais stocké.
func (uc *UseCase) toResponse(s *entity.Shipment) *dto.ShipmentResponse {
	resp := &dto.ShipmentResponse{
		ID:                s.ID,
		TrackingNumber:    s.TrackingNumber,
		ClientName:        s.ClientName,
		CommodityType:     string(s.CommodityType),
		Description:       s.Description,
		Origin:            s.Origin,
		Destination:       s.Destination,
		Status:            string(s.Status),
		StatusLabel:       s.Status.Label(),
		ETA:               s.ETA,
		ArrivalDate:       s.ArrivalDate,
		FreeDays:          s.FreeDays,
		Documents:         s.Documents,
		Expenses:          s.Expenses,
		Alerts:            s.Alerts,
		Blocked:           s.Blocked(),
		BLNumber:          s.BLNumber,
		ShippingLine:      s.ShippingLine,
		ContainerNumber:   s.ContainerNumber,
		CustomsRegime:     s.CustomsRegime,
		DeclarationNumber: s.DeclarationNumber,
		DeclaredAmount:    s.DeclaredAmount,
		Balance:           transit.ClientBalance(s, uc.balanceMode),
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if s.Documents == nil {
		resp.Documents = []entity.Document{}
	}
	if s.Expenses == nil {
		resp.Expenses = []entity.Expense{}
	}
	if s.Alerts == nil {
		resp.Alerts = []string{}
	}
	if s.DeliveryInfo != nil {
		resp.DeliveryInfo = &dto.DeliveryInfoResponse{
			DriverName:    s.DeliveryInfo.DriverName,
			TruckPlate:    s.DeliveryInfo.TruckPlate,
			DeliveryDate:  s.DeliveryInfo.DeliveryDate,
			RecipientName: s.DeliveryInfo.RecipientName,
		}
	}
	return resp
}
