package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/brainometer/practice-api/internal/interfaces/http/middleware"
	"github.com/gofiber/fiber/v2"
)

// AssessmentHandler lida com requisições de avaliações, incluindo a submissão
type AssessmentHandler struct {
	assessmentUseCase *usecases.AssessmentUseCase
	submissionUseCase *usecases.SubmissionUseCase
}

// NewAssessmentHandler cria uma nova instância de AssessmentHandler
func NewAssessmentHandler(assessmentUseCase *usecases.AssessmentUseCase, submissionUseCase *usecases.SubmissionUseCase) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentUseCase: assessmentUseCase,
		submissionUseCase: submissionUseCase,
	}
}

type startAssessmentRequest struct {
	ChildID    string  `json:"child_id"`
	PracticeID *string `json:"practice_id,omitempty"`
}

// StartAssessment cria uma avaliação no estado started (fluxo de intake)
// @Router /assessments [post]
func (h *AssessmentHandler) StartAssessment(c *fiber.Ctx) error {
	var req startAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}
	if req.ChildID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'child_id' é obrigatório"})
	}

	assessment, err := h.assessmentUseCase.StartAssessment(c.Context(), req.ChildID, req.PracticeID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(assessment)
}

// GetAssessment retorna uma avaliação com a contagem de respostas
// @Router /assessments/{id} [get]
func (h *AssessmentHandler) GetAssessment(c *fiber.Ctx) error {
	id := c.Params("id")

	assessment, responsesCount, err := h.assessmentUseCase.GetAssessment(c.Context(), id)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"data":            assessment,
		"responses_count": responsesCount,
	})
}

// ListAssessments retorna avaliações com filtros e paginação
// @Router /assessments [get]
func (h *AssessmentHandler) ListAssessments(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'page' inválido"})
	}

	limit, err := strconv.Atoi(c.Query("limit", "10"))
	if err != nil || limit < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "Parâmetro 'limit' inválido"})
	}

	params := repositories.AssessmentListParams{
		Page:       page,
		Limit:      limit,
		ChildID:    c.Query("child_id"),
		PracticeID: c.Query("practice_id"),
		Status:     c.Query("status"),
	}

	assessments, total, err := h.assessmentUseCase.ListAssessments(c.Context(), params)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  assessments,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

type submitResponseRequest struct {
	QuestionID    string          `json:"question_id"`
	ResponseValue json.RawMessage `json:"response_value"`
	ResponseText  string          `json:"response_text"`
}

type submitAssessmentRequest struct {
	Responses        []submitResponseRequest `json:"responses"`
	BrainOMeterScore float64                 `json:"brain_o_meter_score"`
	PracticeID       *string                 `json:"practice_id,omitempty"`
}

// SubmitAssessment finaliza uma avaliação: persiste as respostas, conclui a
// avaliação e gera o relatório como uma operação logicamente atômica
// @Router /assessments/{id}/submit [post]
func (h *AssessmentHandler) SubmitAssessment(c *fiber.Ctx) error {
	id := c.Params("id")

	var req submitAssessmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	input := usecases.SubmitAssessmentInput{
		AssessmentID: id,
		Score:        req.BrainOMeterScore,
		PracticeID:   req.PracticeID,
		Caller:       middleware.CallerFromCtx(c),
	}
	for _, resp := range req.Responses {
		input.Responses = append(input.Responses, usecases.SubmitResponseInput{
			QuestionID:    resp.QuestionID,
			ResponseValue: resp.ResponseValue,
			ResponseText:  resp.ResponseText,
		})
	}

	result, err := h.submissionUseCase.Submit(c.Context(), input)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(result)
}
