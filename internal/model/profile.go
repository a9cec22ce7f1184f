package model

import "github.com/google/uuid"

type ProfileRole string

const (
	ProfileRoleUser  ProfileRole = "user"
	ProfileRoleAdmin ProfileRole = "admin"
)

// Profile создаётся триггером провайдера авторизации, здесь только читается
type Profile struct {
	ID       uuid.UUID   `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Phone    string      `json:"phone"`
	Role     ProfileRole `json:"role"`
}

// IsAdmin у профиля роль admin
func (p *Profile) IsAdmin() bool {
	return p.Role == ProfileRoleAdmin
}
