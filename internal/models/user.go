package models

import "time"

// User is a dashboard account. Accounts are soft-deleted by flipping
// status to "inativo"; rows are never removed.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Nome         string     `json:"nome"`
	NivelAcesso  *string    `json:"nivel_acesso"`
	EquipeID     *string    `json:"equipe_id"`
	Status       string     `json:"status"`
	DataCriacao  time.Time  `json:"data_criacao"`
	UltimoAcesso *time.Time `json:"ultimo_acesso"`
}

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Email string `json:"email"`
	Nome  string `json:"nome"`
	Senha string `json:"senha"`
}

// LoginRequest is the POST /auth/login body. Older dashboard builds sent
// "password" instead of "senha"; both are accepted.
type LoginRequest struct {
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// CreateUserRequest is the POST /users body (admin-created accounts may
// have no password until first login is provisioned).
type CreateUserRequest struct {
	Email       string  `json:"email"`
	Nome        string  `json:"nome"`
	Senha       *string `json:"senha"`
	NivelAcesso *string `json:"nivel_acesso"`
	EquipeID    *string `json:"equipe_id"`
	Status      *string `json:"status"`
}

// UpdateUserRequest is the PATCH /users/:id body. A plaintext "senha" is
// hashed before it reaches the store.
type UpdateUserRequest struct {
	Email       *string `json:"email"`
	Nome        *string `json:"nome"`
	Senha       *string `json:"senha"`
	NivelAcesso *string `json:"nivel_acesso"`
	EquipeID    *string `json:"equipe_id"`
	Status      *string `json:"status"`
}

// UserListParams carries the supported user list filters.
type UserListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}
