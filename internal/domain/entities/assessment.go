package entities

import (
	"time"
)

// Assessment status lifecycle. An assessment is created by the intake flow
// and moved to completed exactly once by the submission workflow.
const (
	AssessmentStatusCreated   = "created"
	AssessmentStatusStarted   = "started"
	AssessmentStatusCompleted = "completed"
)

// Assessment representa uma avaliação de saúde de uma criança
type Assessment struct {
	ID               string     `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	ChildID          string     `json:"child_id" gorm:"column:child_id;type:uuid"`
	PracticeID       *string    `json:"practice_id,omitempty" gorm:"column:practice_id;type:uuid"`
	Status           string     `json:"status" gorm:"column:status"`
	StartedAt        time.Time  `json:"started_at" gorm:"column:started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	BrainOMeterScore *float64   `json:"brain_o_meter_score,omitempty" gorm:"column:brain_o_meter_score"`
	CreatedAt        time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt        time.Time  `json:"updated_at" gorm:"column:updated_at"`

	// Relações
	Child     Child            `json:"child,omitempty" gorm:"foreignKey:ChildID"`
	Responses []SurveyResponse `json:"responses,omitempty" gorm:"foreignKey:AssessmentID"`
}

// IsCompleted indica se a avaliação já foi finalizada
func (a *Assessment) IsCompleted() bool {
	return a.Status == AssessmentStatusCompleted
}
