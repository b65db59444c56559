package domain

import "encoding/json"

// User é o perfil público retornado pela API.
// O registro persistido é o payload completo; campos desconhecidos ficam em SessionRecord.Raw.
type User struct {
	ID        string `json:"_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Website   string `json:"website,omitempty"`
}

// AuthResponse é a resposta de /users/login e /users/register.
// Token vazio significa que nada deve ser persistido.
type AuthResponse struct {
	User
	Token string `json:"token,omitempty"`
}

// SessionRecord é o estado local da sessão: token opaco + usuário.
type SessionRecord struct {
	Token string          `json:"token"`
	User  User            `json:"user"`
	Raw   json.RawMessage `json:"-"` // Payload exatamente como foi persistido
}

// LoginRequest representa o payload de entrada para o login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// RegisterRequest representa o payload de entrada para o cadastro.
type RegisterRequest struct {
	Name     string `json:"name" validate:"min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6"`
}

// ProfileUpdate é a atualização parcial enviada para PUT /users/profile.
type ProfileUpdate struct {
	Name      string `json:"name,omitempty" validate:"min=2"`
	Email     string `json:"email,omitempty" validate:"required,email"`
	AvatarURL string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Bio       string `json:"bio,omitempty" validate:"max=500"`
	Website   string `json:"website,omitempty" validate:"omitempty,url"`
}
