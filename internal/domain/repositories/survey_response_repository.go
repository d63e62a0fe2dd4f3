package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ISurveyResponseRepository define o contrato do armazenamento de respostas.
// O bulk write é um upsert pela chave (assessment_id, question_id): reenviar
// a mesma submissão converge para o mesmo estado final em vez de duplicar,
// o que torna o retry do cliente seguro mesmo após uma escrita parcial.
type ISurveyResponseRepository interface {
	UpsertBulk(ctx context.Context, responses []entities.SurveyResponse) error
	FindByAssessmentID(ctx context.Context, assessmentID string) ([]entities.SurveyResponse, error)
	CountByAssessmentID(ctx context.Context, assessmentID string) (int64, error)
}

type SurveyResponseRepository struct {
	db *gorm.DB
}

// NewSurveyResponseRepository cria uma nova instância de SurveyResponseRepository
func NewSurveyResponseRepository(db *gorm.DB) *SurveyResponseRepository {
	return &SurveyResponseRepository{db: db}
}

// UpsertBulk grava o conjunto completo de respostas de uma submissão.
// Conflitos na chave composta sobrescrevem valor e texto da resposta.
func (r *SurveyResponseRepository) UpsertBulk(ctx context.Context, responses []entities.SurveyResponse) error {
	if len(responses) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range responses {
		if responses[i].CreatedAt.IsZero() {
			responses[i].CreatedAt = now
		}
		responses[i].UpdatedAt = now
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "assessment_id"},
				{Name: "question_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"response_value", "response_text", "updated_at"}),
		}).
		Create(&responses).Error
	if err != nil {
		return fmt.Errorf("erro ao gravar respostas: %w", err)
	}

	return nil
}

// FindByAssessmentID retorna todas as respostas de uma avaliação, em ordem
// estável por question_id para montagem determinística do relatório.
func (r *SurveyResponseRepository) FindByAssessmentID(ctx context.Context, assessmentID string) ([]entities.SurveyResponse, error) {
	var responses []entities.SurveyResponse

	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("question_id asc").
		Find(&responses).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar respostas: %w", err)
	}

	return responses, nil
}

// CountByAssessmentID conta as respostas persistidas de uma avaliação
func (r *SurveyResponseRepository) CountByAssessmentID(ctx context.Context, assessmentID string) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).
		Model(&entities.SurveyResponse{}).
		Where("assessment_id = ?", assessmentID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("erro ao contar respostas: %w", err)
	}

	return total, nil
}
