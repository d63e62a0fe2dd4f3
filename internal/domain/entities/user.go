package entities

import (
	"time"
)

// Papéis de usuário na plataforma
const (
	RoleParent       = "parent"
	RolePractitioner = "practitioner"
	RoleAdmin        = "admin"
)

// User representa um usuário autenticável (responsável ou profissional)
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	FullName     string    `json:"full_name" gorm:"column:full_name"`
	Role         string    `json:"role" gorm:"column:role"`
	PracticeID   *string   `json:"practice_id,omitempty" gorm:"column:practice_id;type:uuid"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`

	// Relações
	Children []Child `json:"children,omitempty" gorm:"foreignKey:ParentUserID"`
}

// IsPractitioner indica se o usuário atua por uma clínica
func (u *User) IsPractitioner() bool {
	return u.Role == RolePractitioner || u.Role == RoleAdmin
}
