package handlers

import (
	"strconv"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/gofiber/fiber/v2"
)

// PracticeHandler lida com requisições de clínicas
type PracticeHandler struct {
	practiceUseCase *usecases.PracticeUseCase
}

// NewPracticeHandler cria uma nova instância de PracticeHandler
func NewPracticeHandler(practiceUseCase *usecases.PracticeUseCase) *PracticeHandler {
	return &PracticeHandler{practiceUseCase: practiceUseCase}
}

type practiceRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreatePractice cadastra uma nova clínica
// @Router /practices [post]
func (h *PracticeHandler) CreatePractice(c *fiber.Ctx) error {
	var req practiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	practice, err := h.practiceUseCase.CreatePractice(c.Context(), usecases.PracticeInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(practice)
}

// GetPractice retorna uma clínica pelo id
// @Router /practices/{id} [get]
func (h *PracticeHandler) GetPractice(c *fiber.Ctx) error {
	practice, err := h.practiceUseCase.GetPractice(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(practice)
}

// ListPractices retorna clínicas com paginação
// @Router /practices [get]
func (h *PracticeHandler) ListPractices(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	onlyActive := c.Query("active", "true") == "true"

	practices, total, err := h.practiceUseCase.ListPractices(c.Context(), page, limit, onlyActive)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  practices,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdatePractice atualiza os dados de uma clínica
// @Router /practices/{id} [put]
func (h *PracticeHandler) UpdatePractice(c *fiber.Ctx) error {
	var req practiceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	practice, err := h.practiceUseCase.UpdatePractice(c.Context(), c.Params("id"), usecases.PracticeInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(practice)
}

// GetPracticeStats retorna as métricas agregadas da clínica
// @Router /practices/{id}/stats [get]
func (h *PracticeHandler) GetPracticeStats(c *fiber.Ctx) error {
	stats, err := h.practiceUseCase.GetPracticeStats(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(stats)
}
