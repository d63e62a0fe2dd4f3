package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"regexp"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/brainometer/practice-api/internal/infrastructure/email"
	"github.com/google/uuid"
)

// ReportAssembler monta o conteúdo do relatório a partir do estado
// persistido de uma avaliação concluída. Deve ser função pura desse estado:
// chamadas repetidas com as mesmas respostas produzem o mesmo conteúdo.
type ReportAssembler interface {
	Assemble(ctx context.Context, assessmentID string) (*entities.ReportContent, error)
}

// SubmitResponseInput é uma resposta individual do payload de submissão
type SubmitResponseInput struct {
	QuestionID    string          `json:"question_id"`
	ResponseValue json.RawMessage `json:"response_value"`
	ResponseText  string          `json:"response_text"`
}

// SubmitAssessmentInput agrupa a entrada completa da submissão
type SubmitAssessmentInput struct {
	AssessmentID string
	Responses    []SubmitResponseInput
	Score        float64
	PracticeID   *string
	Caller       *Caller
}

// SubmissionResult é o resultado de uma submissão bem sucedida
type SubmissionResult struct {
	AssessmentID           string    `json:"assessment_id"`
	ReportID               string    `json:"report_id,omitempty"`
	Status                 string    `json:"status"`
	BrainOMeterScore       float64   `json:"brain_o_meter_score"`
	CompletedAt            time.Time `json:"completed_at"`
	ResponsesCount         int       `json:"responses_count"`
	ReportGenerationFailed bool      `json:"report_generation_failed,omitempty"`
}

// question_id vem do catálogo do frontend; só checamos o formato aqui
var questionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]{0,63}$`)

// SubmissionUseCase orquestra a submissão de uma avaliação como uma operação
// logicamente atômica sobre um backend sem transações multi-tabela:
//
//  1. validação (leitura pura, nenhuma escrita em caso de falha);
//  2. upsert em massa das respostas, idempotente pela chave composta:
//     uma escrita parcial converge no próximo retry do cliente;
//  3. transição condicional para completed (compare-and-set no status),
//     a única coordenação necessária entre submissões concorrentes;
//  4. montagem do relatório, desacoplada: falha aqui nunca desfaz a
//     conclusão, porque o relatório é derivado e regenerável na leitura.
//
// A ordem garante que uma avaliação completed nunca é observada sem suas
// respostas, e que o relatório sempre parte de estado finalizado.
type SubmissionUseCase struct {
	validator   *SubmissionValidator
	assessments repositories.IAssessmentRepository
	responses   repositories.ISurveyResponseRepository
	reports     repositories.IReportRepository
	practices   repositories.IPracticeRepository
	assembler   ReportAssembler
	mailer      email.Sender

	now   func() time.Time
	newID func() string
}

// NewSubmissionUseCase cria uma nova instância de SubmissionUseCase
func NewSubmissionUseCase(
	assessments repositories.IAssessmentRepository,
	responses repositories.ISurveyResponseRepository,
	reports repositories.IReportRepository,
	practices repositories.IPracticeRepository,
	assembler ReportAssembler,
	mailer email.Sender,
) *SubmissionUseCase {
	return &SubmissionUseCase{
		validator:   NewSubmissionValidator(assessments),
		assessments: assessments,
		responses:   responses,
		reports:     reports,
		practices:   practices,
		assembler:   assembler,
		mailer:      mailer,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       uuid.NewString,
	}
}

// Submit executa o fluxo completo de submissão de uma avaliação
func (u *SubmissionUseCase) Submit(ctx context.Context, input SubmitAssessmentInput) (*SubmissionResult, error) {
	if err := validateSubmitInput(input); err != nil {
		return nil, err
	}

	// 1. Pré-condições antes de qualquer escrita
	assessment, err := u.validator.Validate(ctx, input.AssessmentID, input.Caller)
	if err != nil {
		return nil, err
	}

	score := NormalizeBrainOMeter(input.Score)

	// 2. Gravar o conjunto completo de respostas (upsert idempotente)
	rows := make([]entities.SurveyResponse, len(input.Responses))
	for i, resp := range input.Responses {
		rows[i] = entities.SurveyResponse{
			AssessmentID:  input.AssessmentID,
			QuestionID:    resp.QuestionID,
			ResponseValue: resp.ResponseValue,
			ResponseText:  resp.ResponseText,
		}
	}
	if err := u.responses.UpsertBulk(ctx, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// 3. Transição condicional: só vence quem encontrar o status ainda
	// não-completed no momento do UPDATE
	completedAt := u.now()
	won, err := u.assessments.CompleteIfNotCompleted(ctx, input.AssessmentID, score, completedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if !won {
		// Corrida detectada entre a leitura do passo 1 e a escrita
		return nil, ErrAlreadyCompleted
	}

	result := &SubmissionResult{
		AssessmentID:     input.AssessmentID,
		Status:           entities.AssessmentStatusCompleted,
		BrainOMeterScore: score,
		CompletedAt:      completedAt,
		ResponsesCount:   len(input.Responses),
	}

	// 4. Relatório: melhor esforço. A conclusão é o fato durável; se a
	// montagem falhar, o relatório é regenerado na próxima leitura.
	practiceID := input.PracticeID
	if practiceID == nil {
		practiceID = assessment.PracticeID
	}
	report, err := u.buildReport(ctx, input.AssessmentID, practiceID, completedAt)
	if err != nil {
		log.Printf("⚠️ Falha ao gerar relatório da avaliação %s: %v", input.AssessmentID, err)
		result.ReportGenerationFailed = true
	} else {
		result.ReportID = report.ID
	}

	u.notifyReportReady(ctx, practiceID, result)

	return result, nil
}

func (u *SubmissionUseCase) buildReport(ctx context.Context, assessmentID string, practiceID *string, generatedAt time.Time) (*entities.Report, error) {
	content, err := u.assembler.Assemble(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportBuild, err)
	}

	payload, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportBuild, err)
	}

	report := &entities.Report{
		ID:           u.newID(),
		AssessmentID: assessmentID,
		PracticeID:   practiceID,
		ReportType:   entities.ReportTypeStandard,
		Content:      payload,
		GeneratedAt:  generatedAt,
	}
	if err := u.reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReportBuild, err)
	}

	return report, nil
}

// notifyReportReady avisa a clínica por e-mail. Melhor esforço: falha de
// entrega só gera log, nunca afeta o resultado da submissão.
func (u *SubmissionUseCase) notifyReportReady(ctx context.Context, practiceID *string, result *SubmissionResult) {
	if u.mailer == nil || u.practices == nil || practiceID == nil || result.ReportGenerationFailed {
		return
	}

	practice, err := u.practices.FindByID(ctx, *practiceID)
	if err != nil || practice == nil || practice.Email == "" {
		return
	}

	subject := "Novo relatório Brain-O-Meter disponível"
	body := fmt.Sprintf("Uma avaliação foi concluída com score %.1f. Relatório: %s", result.BrainOMeterScore, result.ReportID)
	if err := u.mailer.Send(ctx, practice.Email, subject, body); err != nil {
		log.Printf("⚠️ Falha ao notificar clínica %s: %v", practice.ID, err)
	}
}

func validateSubmitInput(input SubmitAssessmentInput) error {
	if input.AssessmentID == "" {
		return fmt.Errorf("%w: assessment_id é obrigatório", ErrInvalidSubmission)
	}
	if len(input.Responses) == 0 {
		return fmt.Errorf("%w: a submissão precisa de ao menos uma resposta", ErrInvalidSubmission)
	}
	if math.IsNaN(input.Score) || math.IsInf(input.Score, 0) {
		return fmt.Errorf("%w: score precisa ser um número finito", ErrInvalidSubmission)
	}
	seen := make(map[string]struct{}, len(input.Responses))
	for _, resp := range input.Responses {
		if !questionIDPattern.MatchString(resp.QuestionID) {
			return fmt.Errorf("%w: question_id inválido %q", ErrInvalidSubmission, resp.QuestionID)
		}
		// question_id repetido quebraria o upsert em lote no Postgres e
		// deixaria ResponsesCount maior que o número de linhas gravadas
		if _, ok := seen[resp.QuestionID]; ok {
			return fmt.Errorf("%w: question_id duplicado %q", ErrInvalidSubmission, resp.QuestionID)
		}
		seen[resp.QuestionID] = struct{}{}
	}
	return nil
}
