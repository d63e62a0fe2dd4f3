package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
)

// IAssessmentRepository define o contrato de acesso a dados de avaliações.
// A transição de conclusão é um compare-and-set: é o único ponto de
// coordenação entre submissões concorrentes da mesma avaliação.
type IAssessmentRepository interface {
	Create(ctx context.Context, assessment *entities.Assessment) error
	FindByID(ctx context.Context, id string) (*entities.Assessment, error)
	FindAll(ctx context.Context, params AssessmentListParams) ([]entities.Assessment, int64, error)
	CompleteIfNotCompleted(ctx context.Context, id string, score float64, completedAt time.Time) (bool, error)
	CountByStatus(ctx context.Context, practiceID string) (map[string]int64, error)
}

// AssessmentListParams agrupa filtros e paginação da listagem
type AssessmentListParams struct {
	Page       int
	Limit      int
	ChildID    string
	PracticeID string
	Status     string
}

type AssessmentRepository struct {
	db *gorm.DB
}

// NewAssessmentRepository cria uma nova instância de AssessmentRepository
func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Create persiste uma nova avaliação
func (r *AssessmentRepository) Create(ctx context.Context, assessment *entities.Assessment) error {
	if err := r.db.WithContext(ctx).Create(assessment).Error; err != nil {
		return fmt.Errorf("erro ao criar avaliação: %w", err)
	}
	return nil
}

// FindByID busca uma avaliação pelo id. Retorna (nil, nil) quando não existe.
func (r *AssessmentRepository) FindByID(ctx context.Context, id string) (*entities.Assessment, error) {
	var assessment entities.Assessment

	err := r.db.WithContext(ctx).
		Preload("Child").
		Where("id = ?", id).
		First(&assessment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar avaliação: %w", err)
	}

	return &assessment, nil
}

// FindAll retorna avaliações com filtros e paginação
func (r *AssessmentRepository) FindAll(ctx context.Context, params AssessmentListParams) ([]entities.Assessment, int64, error) {
	var assessments []entities.Assessment
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Assessment{})

	if params.ChildID != "" {
		query = query.Where("child_id = ?", params.ChildID)
	}
	if params.PracticeID != "" {
		query = query.Where("practice_id = ?", params.PracticeID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar avaliações: %w", err)
	}

	page := params.Page
	limit := params.Limit
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	err := query.
		Order("started_at desc").
		Offset(offset).
		Limit(limit).
		Find(&assessments).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar avaliações: %w", err)
	}

	return assessments, total, nil
}

// CompleteIfNotCompleted executa a transição condicional para completed.
// O UPDATE só tem efeito se o status armazenado ainda não for completed;
// retorna false (sem erro) quando outra submissão já venceu a corrida.
func (r *AssessmentRepository) CompleteIfNotCompleted(ctx context.Context, id string, score float64, completedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Assessment{}).
		Where("id = ? AND status <> ?", id, entities.AssessmentStatusCompleted).
		Updates(map[string]interface{}{
			"status":              entities.AssessmentStatusCompleted,
			"completed_at":        completedAt,
			"brain_o_meter_score": score,
			"updated_at":          completedAt,
		})
	if result.Error != nil {
		return false, fmt.Errorf("erro ao concluir avaliação: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// CountByStatus agrega contagens de avaliações por status para uma clínica
func (r *AssessmentRepository) CountByStatus(ctx context.Context, practiceID string) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Total  int64
	}

	var rows []statusCount
	err := r.db.WithContext(ctx).
		Model(&entities.Assessment{}).
		Select("status, count(*) as total").
		Where("practice_id = ?", practiceID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("erro ao contar avaliações por status: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
