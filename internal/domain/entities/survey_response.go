package entities

import (
	"encoding/json"
	"time"
)

// SurveyResponse representa uma resposta individual do questionário de saúde.
// A chave é composta (assessment_id, question_id), o que torna o bulk write
// idempotente: reenviar a mesma submissão sobrescreve em vez de duplicar.
type SurveyResponse struct {
	AssessmentID string `json:"assessment_id" gorm:"primaryKey;column:assessment_id;type:uuid"`
	QuestionID   string `json:"question_id" gorm:"primaryKey;column:question_id"`

	// ResponseValue é opaco para este subsistema: pode ser escalar ou lista,
	// conforme o catálogo de perguntas do frontend.
	ResponseValue json.RawMessage `json:"response_value" gorm:"column:response_value;type:jsonb"`
	ResponseText  string          `json:"response_text" gorm:"column:response_text"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}
