package dto

import "time"

// InviteMemberRequest body pour POST /api/team : envoi d'une invitation.
type InviteMemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TeamMemberResponse représentation API d'un membre de l'équipe.
type TeamMemberResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Status     string    `json:"status"`
	JoinedDate time.Time `json:"joined_date"`
}
