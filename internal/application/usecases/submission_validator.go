package usecases

import (
	"context"
	"fmt"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
)

// Caller identifica o usuário autenticado que está submetendo a avaliação.
// Submissões do fluxo público de intake chegam sem Caller.
type Caller struct {
	UserID     string
	Role       string
	PracticeID *string
}

// SubmissionValidator checa as pré-condições da submissão antes de qualquer
// escrita: existência, estado de conclusão e propriedade. É leitura pura.
type SubmissionValidator struct {
	assessments repositories.IAssessmentRepository
}

// NewSubmissionValidator cria uma nova instância de SubmissionValidator
func NewSubmissionValidator(assessments repositories.IAssessmentRepository) *SubmissionValidator {
	return &SubmissionValidator{assessments: assessments}
}

// Validate retorna a avaliação se ela puder ser submetida pelo chamador.
// Falhas: ErrAssessmentNotFound, ErrAlreadyCompleted, ErrNotAuthorized.
//
// O check de AlreadyCompleted aqui é a guarda de idempotência na borda da
// API; a guarda definitiva contra corridas é a escrita condicional do
// repositório, que revalida o status no momento do UPDATE.
func (v *SubmissionValidator) Validate(ctx context.Context, assessmentID string, caller *Caller) (*entities.Assessment, error) {
	assessment, err := v.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}

	if assessment.IsCompleted() {
		return nil, ErrAlreadyCompleted
	}

	if caller != nil && !callerOwnsAssessment(caller, assessment) {
		return nil, ErrNotAuthorized
	}

	return assessment, nil
}

func callerOwnsAssessment(caller *Caller, assessment *entities.Assessment) bool {
	switch caller.Role {
	case entities.RoleAdmin:
		return true
	case entities.RolePractitioner:
		if caller.PracticeID == nil || assessment.PracticeID == nil {
			return false
		}
		return *caller.PracticeID == *assessment.PracticeID
	default:
		// Responsável: a criança da avaliação precisa pertencer ao chamador
		return assessment.Child.ParentUserID == caller.UserID
	}
}
