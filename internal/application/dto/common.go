package dto

import "time"

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"` // erreurs de validation par champ
}

// FieldErrors erreurs de validation indexées par champ. Le formulaire appelant
// réaffiche chaque message sous le champ concerné sans perdre la saisie.
type FieldErrors map[string]string

// Add enregistre le premier message d'erreur d'un champ (le premier motif prime).
func (f FieldErrors) Add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

// AsError renvoie une *ValidationError si au moins un champ est en erreur, sinon nil.
func (f FieldErrors) AsError() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: f}
}

// ValidationError erreur de validation d'entrée : aucun enregistrement n'est
// créé tant qu'un champ est invalide.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return "validation échouée"
}

// dateLayouts formats de date acceptés en entrée (formulaire puis API).
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate interprète une date saisie. Erreur si aucun format ne correspond.
func ParseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
