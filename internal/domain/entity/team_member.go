package entity

import "time"

// Statuts d'un membre de l'équipe.
const (
	MemberActive  = "Active"
	MemberPending = "Pending" // invitation envoyée, compte pas encore activé
)

// TeamMember accès d'un collaborateur de l'agence. Seule entité supprimable du domaine.
type TeamMember struct {
	ID         string
	Name       string
	Email      string
	Role       string
	Status     string
	JoinedDate time.Time
}
