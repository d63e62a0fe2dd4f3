package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// AssessmentUseCase implementa o fluxo de intake e as consultas de avaliações
type AssessmentUseCase struct {
	assessments repositories.IAssessmentRepository
	children    repositories.IChildRepository
	responses   repositories.ISurveyResponseRepository

	now   func() time.Time
	newID func() string
}

// NewAssessmentUseCase cria uma nova instância de AssessmentUseCase
func NewAssessmentUseCase(
	assessments repositories.IAssessmentRepository,
	children repositories.IChildRepository,
	responses repositories.ISurveyResponseRepository,
) *AssessmentUseCase {
	return &AssessmentUseCase{
		assessments: assessments,
		children:    children,
		responses:   responses,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// StartAssessment cria uma avaliação no estado started para uma criança.
// A conclusão acontece exatamente uma vez, depois, pelo fluxo de submissão.
func (u *AssessmentUseCase) StartAssessment(ctx context.Context, childID string, practiceID *string) (*entities.Assessment, error) {
	child, err := u.children.FindByID(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if child == nil {
		return nil, fmt.Errorf("%w: criança não encontrada", ErrInvalidSubmission)
	}

	if practiceID == nil {
		practiceID = child.PracticeID
	}

	now := u.now()
	assessment := &entities.Assessment{
		ID:         u.newID(),
		ChildID:    childID,
		PracticeID: practiceID,
		Status:     entities.AssessmentStatusStarted,
		StartedAt:  now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.assessments.Create(ctx, assessment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return assessment, nil
}

// GetAssessment retorna uma avaliação com a contagem de respostas persistidas
func (u *AssessmentUseCase) GetAssessment(ctx context.Context, id string) (*entities.Assessment, int64, error) {
	assessment, err := u.assessments.FindByID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if assessment == nil {
		return nil, 0, ErrAssessmentNotFound
	}

	count, err := u.responses.CountByAssessmentID(ctx, id)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return assessment, count, nil
}

// ListAssessments retorna avaliações com filtros e paginação
func (u *AssessmentUseCase) ListAssessments(ctx context.Context, params repositories.AssessmentListParams) ([]entities.Assessment, int64, error) {
	assessments, total, err := u.assessments.FindAll(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return assessments, total, nil
}
