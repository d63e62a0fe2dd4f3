package migrations

import (
	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
)

// Migrate cria o esquema da plataforma. A tabela de respostas usa chave
// primária composta (assessment_id, question_id); é ela que torna o bulk
// write da submissão um upsert idempotente.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Practice{},
		&entities.Child{},
		&entities.Assessment{},
		&entities.SurveyResponse{},
		&entities.Report{},
	)
}
