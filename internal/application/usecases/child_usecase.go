package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/google/uuid"
)

// ChildInput agrupa os campos editáveis de uma criança
type ChildInput struct {
	ParentUserID string
	PracticeID   *string
	FirstName    string
	LastName     string
	BirthDate    time.Time
	Gender       string
}

// ChildUseCase implementa o CRUD de crianças
type ChildUseCase struct {
	children repositories.IChildRepository

	now   func() time.Time
	newID func() string
}

// NewChildUseCase cria uma nova instância de ChildUseCase
func NewChildUseCase(children repositories.IChildRepository) *ChildUseCase {
	return &ChildUseCase{
		children: children,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// CreateChild cadastra uma criança para um responsável
func (u *ChildUseCase) CreateChild(ctx context.Context, input ChildInput) (*entities.Child, error) {
	if input.ParentUserID == "" || input.FirstName == "" {
		return nil, fmt.Errorf("%w: responsável e nome são obrigatórios", ErrInvalidSubmission)
	}
	if input.BirthDate.IsZero() || input.BirthDate.After(u.now()) {
		return nil, fmt.Errorf("%w: data de nascimento inválida", ErrInvalidSubmission)
	}

	now := u.now()
	child := &entities.Child{
		ID:           u.newID(),
		ParentUserID: input.ParentUserID,
		PracticeID:   input.PracticeID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		BirthDate:    input.BirthDate,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.children.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return child, nil
}

// GetChild busca uma criança pelo id
func (u *ChildUseCase) GetChild(ctx context.Context, id string) (*entities.Child, error) {
	child, err := u.children.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if child == nil {
		return nil, ErrNotFound
	}
	return child, nil
}

// ListChildren retorna as crianças de um responsável
func (u *ChildUseCase) ListChildren(ctx context.Context, parentUserID string, page, limit int) ([]entities.Child, int64, error) {
	children, total, err := u.children.FindByParentUserID(ctx, parentUserID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return children, total, nil
}

// UpdateChild atualiza os dados de uma criança
func (u *ChildUseCase) UpdateChild(ctx context.Context, id string, input ChildInput) (*entities.Child, error) {
	child, err := u.children.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if child == nil {
		return nil, ErrNotFound
	}

	if input.FirstName != "" {
		child.FirstName = input.FirstName
	}
	if input.LastName != "" {
		child.LastName = input.LastName
	}
	if !input.BirthDate.IsZero() {
		child.BirthDate = input.BirthDate
	}
	if input.Gender != "" {
		child.Gender = input.Gender
	}
	if input.PracticeID != nil {
		child.PracticeID = input.PracticeID
	}
	child.UpdatedAt = u.now()

	if err := u.children.Update(ctx, child); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return child, nil
}
