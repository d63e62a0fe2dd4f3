package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials indica e-mail ou senha incorretos no login
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterInput agrupa os dados de cadastro de um usuário
type RegisterInput struct {
	Email      string
	Password   string
	FullName   string
	Role       string
	PracticeID *string
}

// AuthUseCase implementa cadastro e login de usuários
type AuthUseCase struct {
	users repositories.IUserRepository

	now   func() time.Time
	newID func() string
}

// NewAuthUseCase cria uma nova instância de AuthUseCase
func NewAuthUseCase(users repositories.IUserRepository) *AuthUseCase {
	return &AuthUseCase{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Register cadastra um novo usuário com senha criptografada
func (u *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: e-mail inválido", ErrInvalidSubmission)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: senha precisa de ao menos 8 caracteres", ErrInvalidSubmission)
	}

	role := input.Role
	switch role {
	case entities.RoleParent, entities.RolePractitioner, entities.RoleAdmin:
	case "":
		role = entities.RoleParent
	default:
		return nil, fmt.Errorf("%w: papel inválido %q", ErrInvalidSubmission, role)
	}

	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: e-mail já cadastrado", ErrInvalidSubmission)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("erro ao criptografar senha: %w", err)
	}

	now := u.now()
	user := &entities.User{
		ID:           u.newID(),
		Email:        email,
		PasswordHash: string(hash),
		FullName:     input.FullName,
		Role:         role,
		PracticeID:   input.PracticeID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return user, nil
}

// Login valida as credenciais e retorna o usuário autenticado
func (u *AuthUseCase) Login(ctx context.Context, email, password string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
