package dto

import "time"

// RegisterRequest body pour POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest body pour POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivateRequest body pour POST /api/auth/activate : un membre invité
// (statut Pending) choisit son mot de passe et active son compte.
type ActivateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse représentation API d'un compte.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT + compte.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
