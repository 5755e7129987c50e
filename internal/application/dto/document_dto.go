package dto

import "github.com/ibdiallo/transit-secure-api/internal/domain/entity"

// AddDocumentRequest body pour POST /api/shipments/:id/documents.
// Status vide vaut Pending.
type AddDocumentRequest struct {
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Validate contrôle le nom et les énumérations type/statut.
func (r *AddDocumentRequest) Validate() FieldErrors {
	errs := FieldErrors{}

	if r.Name == "" {
		errs.Add("name", "Nom du document requis")
	}
	if !validDocumentType(r.Type) {
		errs.Add("type", "Type de document invalide")
	}
	if r.Status != "" && !validDocumentStatus(r.Status) {
		errs.Add("status", "Statut de document invalide")
	}

	return errs
}

func validDocumentType(s string) bool {
	for _, t := range entity.DocumentTypes {
		if string(t) == s {
			return true
		}
	}
	return false
}

func validDocumentStatus(s string) bool {
	for _, st := range entity.DocumentStatuses {
		if string(st) == s {
			return true
		}
	}
	return false
}
