package entity

import "time"

// DocumentType types de pièces d'un dossier de dédouanement.
type DocumentType string

const (
	DocBL          DocumentType = "BL"           // connaissement
	DocFacture     DocumentType = "Facture"      // facture commerciale
	DocPackingList DocumentType = "Packing List"
	DocCertificat  DocumentType = "Certificat"
	DocDDI         DocumentType = "DDI" // déclaration descriptive d'importation
	DocBSC         DocumentType = "BSC" // bordereau de suivi de cargaison
	DocQuittance   DocumentType = "Quittance"
	DocBAE         DocumentType = "BAE" // bon à enlever
	DocBAD         DocumentType = "BAD" // bon à délivrer
	DocPhotoCamion DocumentType = "Photo Camion"
	DocAutre       DocumentType = "Autre"
)

// DocumentTypes énumération fermée pour la validation.
var DocumentTypes = []DocumentType{
	DocBL, DocFacture, DocPackingList, DocCertificat, DocDDI,
	DocBSC, DocQuittance, DocBAE, DocBAD, DocPhotoCamion, DocAutre,
}

// DocumentStatus état de vérification d'une pièce.
type DocumentStatus string

const (
	DocPending  DocumentStatus = "Pending"
	DocVerified DocumentStatus = "Verified"
	DocRejected DocumentStatus = "Rejected"
)

// DocumentStatuses énumération fermée pour la validation.
var DocumentStatuses = []DocumentStatus{DocPending, DocVerified, DocRejected}

// Document une pièce scannée ou téléversée d'un dossier.
type Document struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Type       DocumentType   `json:"type"`
	Status     DocumentStatus `json:"status"`
	UploadDate time.Time      `json:"upload_date"`
	URL        string         `json:"url,omitempty"`
}
