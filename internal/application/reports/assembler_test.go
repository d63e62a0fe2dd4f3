package reports

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
)

type fixtureStore struct {
	assessment *entities.Assessment
	child      *entities.Child
	responses  []entities.SurveyResponse
}

func (s *fixtureStore) Create(ctx context.Context, a *entities.Assessment) error { return nil }

func (s *fixtureStore) FindByID(ctx context.Context, id string) (*entities.Assessment, error) {
	if s.assessment != nil && s.assessment.ID == id {
		return s.assessment, nil
	}
	return nil, nil
}

func (s *fixtureStore) FindAll(ctx context.Context, params repositories.AssessmentListParams) ([]entities.Assessment, int64, error) {
	return nil, 0, nil
}

func (s *fixtureStore) CompleteIfNotCompleted(ctx context.Context, id string, score float64, completedAt time.Time) (bool, error) {
	return false, nil
}

func (s *fixtureStore) CountByStatus(ctx context.Context, practiceID string) (map[string]int64, error) {
	return nil, nil
}

func (s *fixtureStore) UpsertBulk(ctx context.Context, responses []entities.SurveyResponse) error {
	return nil
}

func (s *fixtureStore) FindByAssessmentID(ctx context.Context, assessmentID string) ([]entities.SurveyResponse, error) {
	return s.responses, nil
}

func (s *fixtureStore) CountByAssessmentID(ctx context.Context, assessmentID string) (int64, error) {
	return int64(len(s.responses)), nil
}

func (s *fixtureStore) FindByParentUserID(ctx context.Context, parentUserID string, page, limit int) ([]entities.Child, int64, error) {
	return nil, 0, nil
}

func (s *fixtureStore) Update(ctx context.Context, child *entities.Child) error { return nil }

func (s *fixtureStore) findChild(ctx context.Context, id string) (*entities.Child, error) {
	return s.child, nil
}

// FindByID de criança conflita com o de avaliação na mesma struct, então o
// fixtureStore expõe um wrapper específico para o contrato de crianças.
type childStore struct{ *fixtureStore }

func (s childStore) FindByID(ctx context.Context, id string) (*entities.Child, error) {
	return s.findChild(ctx, id)
}

func (s childStore) Create(ctx context.Context, child *entities.Child) error { return nil }

func newFixture() *fixtureStore {
	completedAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	score := 82.0
	return &fixtureStore{
		assessment: &entities.Assessment{
			ID:               "A1",
			ChildID:          "child-1",
			Status:           entities.AssessmentStatusCompleted,
			CompletedAt:      &completedAt,
			BrainOMeterScore: &score,
		},
		child: &entities.Child{
			ID:           "child-1",
			ParentUserID: "parent-1",
			FirstName:    "Hannah",
			LastName:     "Souza",
			BirthDate:    time.Date(2018, 6, 15, 0, 0, 0, 0, time.UTC),
		},
		responses: []entities.SurveyResponse{
			{AssessmentID: "A1", QuestionID: "sleep.q1", ResponseValue: json.RawMessage(`"8"`), ResponseText: "8 hours"},
			{AssessmentID: "A1", QuestionID: "sleep.q2", ResponseValue: json.RawMessage(`"no"`), ResponseText: "No"},
			{AssessmentID: "A1", QuestionID: "diet.q1", ResponseValue: json.RawMessage(`["fruit","veggies"]`), ResponseText: "Fruit, Veggies"},
			{AssessmentID: "A1", QuestionID: "q9", ResponseValue: json.RawMessage(`"n/a"`), ResponseText: "N/A"},
		},
	}
}

func newTestAssembler(store *fixtureStore) *Assembler {
	return NewAssembler(store, store, childStore{store})
}

func TestAssembleGroupsResponsesByCategory(t *testing.T) {
	store := newFixture()
	assembler := newTestAssembler(store)

	content, err := assembler.Assemble(context.Background(), "A1")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}

	if content.ChildSummary.Name != "Hannah Souza" {
		t.Fatalf("child name = %q, want Hannah Souza", content.ChildSummary.Name)
	}
	if content.ChildSummary.AgeYears != 6 {
		t.Fatalf("age = %d, want 6", content.ChildSummary.AgeYears)
	}

	wantCategories := []string{"diet", "general", "sleep"}
	var got []string
	for _, category := range content.Categories {
		got = append(got, category.Name)
	}
	if !reflect.DeepEqual(got, wantCategories) {
		t.Fatalf("categories = %v, want %v", got, wantCategories)
	}

	var sleep entities.ReportCategory
	for _, category := range content.Categories {
		if category.Name == "sleep" {
			sleep = category
		}
	}
	if len(sleep.Responses) != 2 {
		t.Fatalf("sleep responses = %d, want 2", len(sleep.Responses))
	}

	if content.Summary == "" {
		t.Fatal("summary is empty")
	}
	if len(content.Recommendations) == 0 {
		t.Fatal("recommendations are empty")
	}
	if len(content.Charts) != 2 {
		t.Fatalf("charts = %d, want 2 (bar + gauge)", len(content.Charts))
	}
	if content.Charts[1].Values["score"] != 82 {
		t.Fatalf("gauge score = %v, want 82", content.Charts[1].Values["score"])
	}
}

func TestAssembleIsDeterministic(t *testing.T) {
	store := newFixture()
	assembler := newTestAssembler(store)

	first, err := assembler.Assemble(context.Background(), "A1")
	if err != nil {
		t.Fatalf("Assemble returned error: %v", err)
	}
	second, err := assembler.Assemble(context.Background(), "A1")
	if err != nil {
		t.Fatalf("second Assemble returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatal("Assemble is not deterministic for identical persisted state")
	}
}

func TestAssembleRejectsIncompleteAssessment(t *testing.T) {
	store := newFixture()
	store.assessment.Status = entities.AssessmentStatusStarted
	assembler := newTestAssembler(store)

	if _, err := assembler.Assemble(context.Background(), "A1"); err == nil {
		t.Fatal("expected error for incomplete assessment")
	}
}

func TestAssembleRejectsMissingResponses(t *testing.T) {
	store := newFixture()
	store.responses = nil
	assembler := newTestAssembler(store)

	if _, err := assembler.Assemble(context.Background(), "A1"); err == nil {
		t.Fatal("expected error when no responses are persisted")
	}
}
