package entities

import (
	"time"
)

// Child representa uma criança acompanhada por um responsável e,
// opcionalmente, vinculada a uma clínica.
type Child struct {
	ID           string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ParentUserID string    `json:"parent_user_id" gorm:"column:parent_user_id;type:uuid"`
	PracticeID   *string   `json:"practice_id,omitempty" gorm:"column:practice_id;type:uuid"`
	FirstName    string    `json:"first_name" gorm:"column:first_name"`
	LastName     string    `json:"last_name" gorm:"column:last_name"`
	BirthDate    time.Time `json:"birth_date" gorm:"column:birth_date"`
	Gender       string    `json:"gender" gorm:"column:gender"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`

	// Relações
	Assessments []Assessment `json:"assessments,omitempty" gorm:"foreignKey:ChildID"`
}

// FullName retorna o nome completo da criança para exibição
func (c *Child) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// AgeYears calcula a idade em anos na data fornecida
func (c *Child) AgeYears(at time.Time) int {
	years := at.Year() - c.BirthDate.Year()
	anniversary := c.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
