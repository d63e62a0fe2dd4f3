package handlers

import (
	"strconv"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/brainometer/practice-api/internal/interfaces/http/middleware"
	"github.com/brainometer/practice-api/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// ChildHandler lida com requisições de crianças
type ChildHandler struct {
	childUseCase *usecases.ChildUseCase
}

// NewChildHandler cria uma nova instância de ChildHandler
func NewChildHandler(childUseCase *usecases.ChildUseCase) *ChildHandler {
	return &ChildHandler{childUseCase: childUseCase}
}

type childRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	BirthDate  string  `json:"birth_date"`
	Gender     string  `json:"gender"`
	PracticeID *string `json:"practice_id,omitempty"`
}

// CreateChild cadastra uma criança para o responsável autenticado
// @Router /children [post]
func (h *ChildHandler) CreateChild(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)
	if caller == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Autenticação necessária"})
	}

	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	birthDate, err := utils.ParseDateOnly(req.BirthDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Formato de data inválido para 'birth_date' (use YYYY-MM-DD)"})
	}

	child, err := h.childUseCase.CreateChild(c.Context(), usecases.ChildInput{
		ParentUserID: caller.UserID,
		PracticeID:   req.PracticeID,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    birthDate,
		Gender:       req.Gender,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	return c.Status(201).JSON(child)
}

// GetChild retorna uma criança pelo id
// @Router /children/{id} [get]
func (h *ChildHandler) GetChild(c *fiber.Ctx) error {
	child, err := h.childUseCase.GetChild(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(child)
}

// ListChildren retorna as crianças do responsável autenticado
// @Router /children [get]
func (h *ChildHandler) ListChildren(c *fiber.Ctx) error {
	caller := middleware.CallerFromCtx(c)
	if caller == nil {
		return c.Status(401).JSON(fiber.Map{"error": "Autenticação necessária"})
	}

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))

	children, total, err := h.childUseCase.ListChildren(c.Context(), caller.UserID, page, limit)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(fiber.Map{
		"data":  children,
		"total": total,
		"page":  page,
		"limit": limit,
	})
}

// UpdateChild atualiza os dados de uma criança
// @Router /children/{id} [put]
func (h *ChildHandler) UpdateChild(c *fiber.Ctx) error {
	var req childRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	input := usecases.ChildInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Gender:     req.Gender,
		PracticeID: req.PracticeID,
	}
	if req.BirthDate != "" {
		birthDate, err := utils.ParseDateOnly(req.BirthDate)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Formato de data inválido para 'birth_date' (use YYYY-MM-DD)"})
		}
		input.BirthDate = birthDate
	}

	child, err := h.childUseCase.UpdateChild(c.Context(), c.Params("id"), input)
	if err != nil {
		return errorJSON(c, err)
	}

	return c.JSON(child)
}
