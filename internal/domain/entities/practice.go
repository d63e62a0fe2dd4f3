package entities

import (
	"time"
)

// Practice representa uma clínica cadastrada na plataforma
type Practice struct {
	ID        string    `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `json:"name" gorm:"column:name"`
	Email     string    `json:"email" gorm:"column:email"`
	Phone     string    `json:"phone" gorm:"column:phone"`
	Active    bool      `json:"active" gorm:"column:active"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// PracticeStats agrega contagens de avaliações por status para o dashboard
type PracticeStats struct {
	PracticeID           string `json:"practice_id"`
	TotalAssessments     int64  `json:"total_assessments"`
	CompletedAssessments int64  `json:"completed_assessments"`
	PendingAssessments   int64  `json:"pending_assessments"`
	TotalReports         int64  `json:"total_reports"`
}
