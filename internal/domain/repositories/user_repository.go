package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
)

// IUserRepository define o contrato de acesso a dados de usuários
type IUserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}

type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create persiste um novo usuário
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("erro ao criar usuário: %w", err)
	}
	return nil
}

// FindByID busca um usuário pelo id. Retorna (nil, nil) quando não existe.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return &user, nil
}

// FindByEmail busca um usuário pelo e-mail. Retorna (nil, nil) quando não existe.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User

	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar usuário por e-mail: %w", err)
	}

	return &user, nil
}
