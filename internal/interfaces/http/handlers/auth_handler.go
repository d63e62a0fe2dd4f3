package handlers

import (
	"time"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/brainometer/practice-api/internal/interfaces/http/middleware"
	"github.com/gofiber/fiber/v2"
)

const tokenTTL = 24 * time.Hour

// AuthHandler lida com cadastro e login de usuários
type AuthHandler struct {
	authUseCase *usecases.AuthUseCase
}

// NewAuthHandler cria uma nova instância de AuthHandler
func NewAuthHandler(authUseCase *usecases.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type registerRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FullName   string  `json:"full_name"`
	Role       string  `json:"role"`
	PracticeID *string `json:"practice_id,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register cadastra um novo usuário e já devolve um token
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	user, err := h.authUseCase.Register(c.Context(), usecases.RegisterInput{
		Email:      req.Email,
		Password:   req.Password,
		FullName:   req.FullName,
		Role:       req.Role,
		PracticeID: req.PracticeID,
	})
	if err != nil {
		return errorJSON(c, err)
	}

	token, err := middleware.SignToken(user.ID, user.Role, user.PracticeID, tokenTTL)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao emitir token"})
	}

	return c.Status(201).JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Login valida as credenciais e devolve um token
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Corpo da requisição inválido"})
	}

	user, err := h.authUseCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return errorJSON(c, err)
	}

	token, err := middleware.SignToken(user.ID, user.Role, user.PracticeID, tokenTTL)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Erro ao emitir token"})
	}

	return c.JSON(fiber.Map{
		"user":  user,
		"token": token,
	})
}
