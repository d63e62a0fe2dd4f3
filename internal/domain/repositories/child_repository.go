package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
)

// IChildRepository define o contrato de acesso a dados de crianças
type IChildRepository interface {
	Create(ctx context.Context, child *entities.Child) error
	FindByID(ctx context.Context, id string) (*entities.Child, error)
	FindByParentUserID(ctx context.Context, parentUserID string, page, limit int) ([]entities.Child, int64, error)
	Update(ctx context.Context, child *entities.Child) error
}

type ChildRepository struct {
	db *gorm.DB
}

// NewChildRepository cria uma nova instância de ChildRepository
func NewChildRepository(db *gorm.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

// Create persiste uma nova criança
func (r *ChildRepository) Create(ctx context.Context, child *entities.Child) error {
	if err := r.db.WithContext(ctx).Create(child).Error; err != nil {
		return fmt.Errorf("erro ao criar criança: %w", err)
	}
	return nil
}

// FindByID busca uma criança pelo id. Retorna (nil, nil) quando não existe.
func (r *ChildRepository) FindByID(ctx context.Context, id string) (*entities.Child, error) {
	var child entities.Child

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&child).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar criança: %w", err)
	}

	return &child, nil
}

// FindByParentUserID retorna as crianças de um responsável com paginação
func (r *ChildRepository) FindByParentUserID(ctx context.Context, parentUserID string, page, limit int) ([]entities.Child, int64, error) {
	var children []entities.Child
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entities.Child{}).
		Where("parent_user_id = ?", parentUserID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar crianças: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&children).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar crianças: %w", err)
	}

	return children, total, nil
}

// Update atualiza os dados de uma criança
func (r *ChildRepository) Update(ctx context.Context, child *entities.Child) error {
	if err := r.db.WithContext(ctx).Save(child).Error; err != nil {
		return fmt.Errorf("erro ao atualizar criança: %w", err)
	}
	return nil
}
