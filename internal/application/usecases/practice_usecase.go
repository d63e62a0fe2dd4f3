package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// PracticeInput agrupa os campos editáveis de uma clínica
type PracticeInput struct {
	Name  string
	Email string
	Phone string
}

// PracticeUseCase implementa o CRUD e as métricas de clínicas
type PracticeUseCase struct {
	practices   repositories.IPracticeRepository
	assessments repositories.IAssessmentRepository
	reports     repositories.IReportRepository

	now   func() time.Time
	newID func() string
}

// NewPracticeUseCase cria uma nova instância de PracticeUseCase
func NewPracticeUseCase(
	practices repositories.IPracticeRepository,
	assessments repositories.IAssessmentRepository,
	reports repositories.IReportRepository,
) *PracticeUseCase {
	return &PracticeUseCase{
		practices:   practices,
		assessments: assessments,
		reports:     reports,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// CreatePractice cadastra uma nova clínica
func (u *PracticeUseCase) CreatePractice(ctx context.Context, input PracticeInput) (*entities.Practice, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: nome da clínica é obrigatório", ErrInvalidSubmission)
	}

	now := u.now()
	practice := &entities.Practice{
		ID:        u.newID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.practices.Create(ctx, practice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return practice, nil
}

// GetPractice busca uma clínica pelo id
func (u *PracticeUseCase) GetPractice(ctx context.Context, id string) (*entities.Practice, error) {
	practice, err := u.practices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if practice == nil {
		return nil, ErrNotFound
	}
	return practice, nil
}

// ListPractices retorna clínicas com paginação
func (u *PracticeUseCase) ListPractices(ctx context.Context, page, limit int, onlyActive bool) ([]entities.Practice, int64, error) {
	practices, total, err := u.practices.FindAll(ctx, page, limit, onlyActive)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return practices, total, nil
}

// UpdatePractice atualiza os dados de uma clínica
func (u *PracticeUseCase) UpdatePractice(ctx context.Context, id string, input PracticeInput) (*entities.Practice, error) {
	practice, err := u.practices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if practice == nil {
		return nil, ErrNotFound
	}

	if input.Name != "" {
		practice.Name = input.Name
	}
	if input.Email != "" {
		practice.Email = input.Email
	}
	if input.Phone != "" {
		practice.Phone = input.Phone
	}
	practice.UpdatedAt = u.now()

	if err := u.practices.Update(ctx, practice); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return practice, nil
}

// GetPracticeStats agrega as contagens de avaliações e relatórios da clínica
func (u *PracticeUseCase) GetPracticeStats(ctx context.Context, id string) (*entities.PracticeStats, error) {
	practice, err := u.practices.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if practice == nil {
		return nil, ErrNotFound
	}

	counts, err := u.assessments.CountByStatus(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	reportTotal, err := u.reports.CountByPracticeID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	stats := &entities.PracticeStats{
		PracticeID:           id,
		CompletedAssessments: counts[entities.AssessmentStatusCompleted],
		TotalReports:         reportTotal,
	}
	for _, total := range counts {
		stats.TotalAssessments += total
	}
	stats.PendingAssessments = stats.TotalAssessments - stats.CompletedAssessments

	return stats, nil
}
