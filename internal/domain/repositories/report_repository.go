package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// IReportRepository define o contrato de persistência de relatórios.
// Relatórios são dados derivados: Save pode ser chamado de novo para a mesma
// avaliação (regeneração) sem efeito além de um novo registro mais recente.
type IReportRepository interface {
	Save(ctx context.Context, report *entities.Report) error
	FindLatestByAssessmentID(ctx context.Context, assessmentID string) (*entities.Report, error)
	CountByPracticeID(ctx context.Context, practiceID string) (int64, error)
}

type ReportRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

// NewReportRepository cria uma nova instância de ReportRepository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{
		db:    db,
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

// Save persiste um relatório gerado e invalida o cache da avaliação
func (r *ReportRepository) Save(ctx context.Context, report *entities.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return fmt.Errorf("erro ao salvar relatório: %w", err)
	}

	r.cache.Delete(reportCacheKey(report.AssessmentID))
	return nil
}

// FindLatestByAssessmentID retorna o relatório mais recente de uma avaliação.
// Retorna (nil, nil) quando a avaliação ainda não tem relatório.
func (r *ReportRepository) FindLatestByAssessmentID(ctx context.Context, assessmentID string) (*entities.Report, error) {
	cacheKey := reportCacheKey(assessmentID)

	// Tentar obter do cache
	if cached, found := r.cache.Get(cacheKey); found {
		return cached.(*entities.Report), nil
	}

	var report entities.Report
	err := r.db.WithContext(ctx).
		Where("assessment_id = ?", assessmentID).
		Order("generated_at desc").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar relatório: %w", err)
	}

	r.cache.Set(cacheKey, &report, cache.DefaultExpiration)
	return &report, nil
}

// CountByPracticeID conta os relatórios gerados para uma clínica
func (r *ReportRepository) CountByPracticeID(ctx context.Context, practiceID string) (int64, error) {
	var total int64

	err := r.db.WithContext(ctx).
		Model(&entities.Report{}).
		Where("practice_id = ?", practiceID).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("erro ao contar relatórios: %w", err)
	}

	return total, nil
}

func reportCacheKey(assessmentID string) string {
	return "report:" + assessmentID
}
