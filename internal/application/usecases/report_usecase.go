package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// ReportUseCase implementa o caminho de leitura de relatórios com
// regeneração preguiçosa: se uma avaliação concluída não tem relatório
// (por exemplo porque a montagem falhou na submissão), ele é reconstruído
// na leitura a partir das respostas persistidas. A regeneração não muta
// Assessment nem SurveyResponse.
type ReportUseCase struct {
	assessments repositories.IAssessmentRepository
	reports     repositories.IReportRepository
	assembler   ReportAssembler

	now   func() time.Time
	newID func() string
}

// NewReportUseCase cria uma nova instância de ReportUseCase
func NewReportUseCase(
	assessments repositories.IAssessmentRepository,
	reports repositories.IReportRepository,
	assembler ReportAssembler,
) *ReportUseCase {
	return &ReportUseCase{
		assessments: assessments,
		reports:     reports,
		assembler:   assembler,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// GetReport retorna o relatório de uma avaliação concluída, gerando-o na
// hora se ainda não existir
func (u *ReportUseCase) GetReport(ctx context.Context, assessmentID string) (*entities.Report, error) {
	assessment, err := u.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}
	if !assessment.IsCompleted() {
		return nil, ErrAssessmentNotCompleted
	}

	report, err := u.reports.FindLatestByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if report != nil {
		return report, nil
	}

	return u.regenerate(ctx, assessment)
}

// RegenerateReport força a reconstrução do relatório a partir do estado
// persistido, ignorando o relatório já armazenado
func (u *ReportUseCase) RegenerateReport(ctx context.Context, assessmentID string) (*entities.Report, error) {
	assessment, err := u.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if assessment == nil {
		return nil, ErrAssessmentNotFound
	}
	if !assessment.IsCompleted() {
		return nil, ErrAssessmentNotCompleted
	}

	return u.regenerate(ctx, assessment)
}

func (u *ReportUseCase) regenerate(ctx context.Context, assessment *entities.Assessment) (*entities.Report, error) {
	content, err := u.assembler.Assemble(ctx, assessment.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportBuild, err)
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportBuild, err)
	}

	report := &entities.Report{
		ID:           u.newID(),
		AssessmentID: assessment.ID,
		PracticeID:   assessment.PracticeID,
		ReportType:   entities.ReportTypeStandard,
		Content:      payload,
		GeneratedAt:  u.now(),
	}
	if err := u.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return report, nil
}
