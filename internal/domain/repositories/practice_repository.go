package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"gorm.io/gorm"
)

// IPracticeRepository define o contrato de acesso a dados de clínicas
type IPracticeRepository interface {
	Create(ctx context.Context, practice *entities.Practice) error
	FindByID(ctx context.Context, id string) (*entities.Practice, error)
	FindAll(ctx context.Context, page, limit int, onlyActive bool) ([]entities.Practice, int64, error)
	Update(ctx context.Context, practice *entities.Practice) error
}

type PracticeRepository struct {
	db *gorm.DB
}

// NewPracticeRepository cria uma nova instância de PracticeRepository
func NewPracticeRepository(db *gorm.DB) *PracticeRepository {
	return &PracticeRepository{db: db}
}

// Create persiste uma nova clínica
func (r *PracticeRepository) Create(ctx context.Context, practice *entities.Practice) error {
	if err := r.db.WithContext(ctx).Create(practice).Error; err != nil {
		return fmt.Errorf("erro ao criar clínica: %w", err)
	}
	return nil
}

// FindByID busca uma clínica pelo id. Retorna (nil, nil) quando não existe.
func (r *PracticeRepository) FindByID(ctx context.Context, id string) (*entities.Practice, error) {
	var practice entities.Practice

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&practice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar clínica: %w", err)
	}

	return &practice, nil
}

// FindAll retorna clínicas com paginação
func (r *PracticeRepository) FindAll(ctx context.Context, page, limit int, onlyActive bool) ([]entities.Practice, int64, error) {
	var practices []entities.Practice
	var total int64

	query := r.db.WithContext(ctx).Model(&entities.Practice{})
	if onlyActive {
		query = query.Where("active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("erro ao contar clínicas: %w", err)
	}

	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	err := query.
		Order("name asc").
		Offset(offset).
		Limit(limit).
		Find(&practices).Error
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao buscar clínicas: %w", err)
	}

	return practices, total, nil
}

// Update atualiza os dados de uma clínica
func (r *PracticeRepository) Update(ctx context.Context, practice *entities.Practice) error {
	if err := r.db.WithContext(ctx).Save(practice).Error; err != nil {
		return fmt.Errorf("erro ao atualizar clínica: %w", err)
	}
	return nil
}
