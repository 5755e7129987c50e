package entity

import "time"

// Rôles valides pour User.
const (
	RoleDirector      = "DIRECTOR"       // DG / Admin
	RoleCreationAgent = "CREATION_AGENT" // chargé de création
	RoleAccountant    = "ACCOUNTANT"     // comptable
	RoleFieldAgent    = "FIELD_AGENT"    // agent de terrain
	RoleClient        = "CLIENT"         // client / importateur
)

// Roles énumération fermée pour la validation.
var Roles = []string{RoleDirector, RoleCreationAgent, RoleAccountant, RoleFieldAgent, RoleClient}

// User représente un compte utilisateur du système.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, jamais en clair après persistance
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor contexte d'authentification explicite passé à chaque opération.
// Remplace l'état de session ambiant : les règles d'accès se décident ici,
// pas dans l'interface.
type Actor struct {
	UserID string
	Role   string
}

// CanManageFinances paiements, écritures et vue comptable.
func (a Actor) CanManageFinances() bool {
	return a.Role == RoleDirector || a.Role == RoleAccountant
}

// CanEditOperations actions opérationnelles sur un dossier (tout sauf le client).
func (a Actor) CanEditOperations() bool {
	return a.Role != RoleClient && a.Role != ""
}

// CanCreateShipments ouverture et modification des informations d'un dossier.
func (a Actor) CanCreateShipments() bool {
	return a.Role == RoleDirector || a.Role == RoleCreationAgent
}

// CanManageTeam gestion des accès de l'équipe.
func (a Actor) CanManageTeam() bool {
	return a.Role == RoleDirector
}
