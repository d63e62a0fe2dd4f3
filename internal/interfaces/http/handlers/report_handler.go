package handlers

import (
	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
)

// ReportHandler lida com requisições de relatórios
type ReportHandler struct {
	reportUseCase *usecases.ReportUseCase
}

// NewReportHandler cria uma nova instância de ReportHandler
func NewReportHandler(reportUseCase *usecases.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase}
}

// GetReport retorna o relatório de uma avaliação concluída, gerando-o na
// hora se a montagem falhou durante a submissão (regeneração preguiçosa)
// @Router /assessments/{id}/report [get]
func (h *ReportHandler) GetReport(c *fiber.Ctx) error {
	assessmentID := c.Params("id")

	report, err := h.reportUseCase.GetReport(c.Context(), assessmentID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(report)
}

// RegenerateReport força a reconstrução do relatório a partir das respostas
// persistidas. A regeneração é idempotente e não muta a avaliação.
// @Router /assessments/{id}/report/regenerate [post]
func (h *ReportHandler) RegenerateReport(c *fiber.Ctx) error {
	assessmentID := c.Params("id")

	report, err := h.reportUseCase.RegenerateReport(c.Context(), assessmentID)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(report)
}
