package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
)

// stubAssessmentRepo emula o repositório com semântica compare-and-set no
// status, igual ao UPDATE condicional do banco.
type stubAssessmentRepo struct {
	mu          sync.Mutex
	assessments map[string]*entities.Assessment

	findErr     error
	completeErr error

	// staleStatus, quando definido, faz FindByID reportar esse status em vez
	// do armazenado, simulando a janela entre a leitura e a escrita condicional.
	staleStatus string

	completeCalls int
}

func newStubAssessmentRepo(assessments ...*entities.Assessment) *stubAssessmentRepo {
	repo := &stubAssessmentRepo{assessments: make(map[string]*entities.Assessment)}
	for _, a := range assessments {
		repo.assessments[a.ID] = a
	}
	return repo
}

func (r *stubAssessmentRepo) Create(ctx context.Context, a *entities.Assessment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assessments[a.ID] = a
	return nil
}

func (r *stubAssessmentRepo) FindByID(ctx context.Context, id string) (*entities.Assessment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	if r.staleStatus != "" {
		cp.Status = r.staleStatus
	}
	return &cp, nil
}

func (r *stubAssessmentRepo) FindAll(ctx context.Context, params repositories.AssessmentListParams) ([]entities.Assessment, int64, error) {
	return nil, 0, nil
}

func (r *stubAssessmentRepo) CompleteIfNotCompleted(ctx context.Context, id string, score float64, completedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completeCalls++
	if r.completeErr != nil {
		return false, r.completeErr
	}
	a, ok := r.assessments[id]
	if !ok || a.Status == entities.AssessmentStatusCompleted {
		return false, nil
	}
	a.Status = entities.AssessmentStatusCompleted
	a.CompletedAt = &completedAt
	a.BrainOMeterScore = &score
	return true, nil
}

func (r *stubAssessmentRepo) CountByStatus(ctx context.Context, practiceID string) (map[string]int64, error) {
	return nil, nil
}

type responseKey struct {
	assessmentID string
	questionID   string
}

type stubResponseRepo struct {
	mu        sync.Mutex
	rows      map[responseKey]entities.SurveyResponse
	upsertErr error
	writes    int
}

func newStubResponseRepo() *stubResponseRepo {
	return &stubResponseRepo{rows: make(map[responseKey]entities.SurveyResponse)}
}

func (r *stubResponseRepo) UpsertBulk(ctx context.Context, responses []entities.SurveyResponse) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.writes++
	for _, resp := range responses {
		r.rows[responseKey{resp.AssessmentID, resp.QuestionID}] = resp
	}
	return nil
}

func (r *stubResponseRepo) FindByAssessmentID(ctx context.Context, assessmentID string) ([]entities.SurveyResponse, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entities.SurveyResponse
	for key, row := range r.rows {
		if key.assessmentID == assessmentID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *stubResponseRepo) CountByAssessmentID(ctx context.Context, assessmentID string) (int64, error) {
	rows, _ := r.FindByAssessmentID(ctx, assessmentID)
	return int64(len(rows)), nil
}

type stubReportRepo struct {
	mu      sync.Mutex
	saved   []*entities.Report
	saveErr error
}

func (r *stubReportRepo) Save(ctx context.Context, report *entities.Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saved = append(r.saved, report)
	return nil
}

func (r *stubReportRepo) FindLatestByAssessmentID(ctx context.Context, assessmentID string) (*entities.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].AssessmentID == assessmentID {
			return r.saved[i], nil
		}
	}
	return nil, nil
}

func (r *stubReportRepo) CountByPracticeID(ctx context.Context, practiceID string) (int64, error) {
	return int64(len(r.saved)), nil
}

type stubAssembler struct {
	err   error
	calls int
}

func (a *stubAssembler) Assemble(ctx context.Context, assessmentID string) (*entities.ReportContent, error) {
	a.calls++
	if a.err != nil {
		return nil, a.err
	}
	return &entities.ReportContent{Summary: "ok"}, nil
}

func startedAssessment(id string) *entities.Assessment {
	return &entities.Assessment{
		ID:        id,
		ChildID:   "child-1",
		Status:    entities.AssessmentStatusStarted,
		StartedAt: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Child:     entities.Child{ID: "child-1", ParentUserID: "parent-1"},
	}
}

func newTestEngine(assessments *stubAssessmentRepo, responses *stubResponseRepo, reports *stubReportRepo, assembler ReportAssembler) *SubmissionUseCase {
	u := NewSubmissionUseCase(assessments, responses, reports, nil, assembler, nil)
	u.now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }
	u.newID = func() string { return "report-1" }
	return u
}

func validInput(assessmentID string) SubmitAssessmentInput {
	return SubmitAssessmentInput{
		AssessmentID: assessmentID,
		Score:        75,
		Responses: []SubmitResponseInput{
			{QuestionID: "q1", ResponseValue: json.RawMessage(`"8"`), ResponseText: "8"},
			{QuestionID: "q2", ResponseValue: json.RawMessage(`"male"`), ResponseText: "male"},
		},
	}
}

func TestSubmitSuccess(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()
	reports := &stubReportRepo{}
	engine := newTestEngine(assessments, responses, reports, &stubAssembler{})

	result, err := engine.Submit(context.Background(), validInput("A1"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if result.Status != entities.AssessmentStatusCompleted {
		t.Fatalf("status = %q, want completed", result.Status)
	}
	if result.BrainOMeterScore != 75 {
		t.Fatalf("score = %v, want 75", result.BrainOMeterScore)
	}
	if result.ResponsesCount != 2 {
		t.Fatalf("responses count = %d, want 2", result.ResponsesCount)
	}
	if result.ReportID != "report-1" {
		t.Fatalf("report id = %q, want report-1", result.ReportID)
	}
	if result.ReportGenerationFailed {
		t.Fatal("report generation flagged as failed")
	}

	stored := assessments.assessments["A1"]
	if stored.Status != entities.AssessmentStatusCompleted || stored.CompletedAt == nil {
		t.Fatalf("stored assessment not completed: %+v", stored)
	}
	if stored.BrainOMeterScore == nil || *stored.BrainOMeterScore != 75 {
		t.Fatalf("stored score = %v, want 75", stored.BrainOMeterScore)
	}
	if len(responses.rows) != 2 {
		t.Fatalf("stored responses = %d, want 2", len(responses.rows))
	}
	if len(reports.saved) != 1 {
		t.Fatalf("saved reports = %d, want 1", len(reports.saved))
	}
}

func TestSubmitValidationPrecedesWrites(t *testing.T) {
	completed := startedAssessment("A2")
	completed.Status = entities.AssessmentStatusCompleted

	tests := []struct {
		name    string
		input   SubmitAssessmentInput
		wantErr error
	}{
		{
			name:    "avaliação inexistente",
			input:   validInput("missing"),
			wantErr: ErrAssessmentNotFound,
		},
		{
			name:    "avaliação já concluída",
			input:   validInput("A2"),
			wantErr: ErrAlreadyCompleted,
		},
		{
			name: "sem respostas",
			input: SubmitAssessmentInput{
				AssessmentID: "A1",
				Score:        50,
			},
			wantErr: ErrInvalidSubmission,
		},
		{
			name: "score não numérico",
			input: func() SubmitAssessmentInput {
				in := validInput("A1")
				in.Score = math.NaN()
				return in
			}(),
			wantErr: ErrInvalidSubmission,
		},
		{
			name: "question_id malformado",
			input: func() SubmitAssessmentInput {
				in := validInput("A1")
				in.Responses[0].QuestionID = "q 1;drop"
				return in
			}(),
			wantErr: ErrInvalidSubmission,
		},
		{
			// Duplicata na mesma submissão: além de inflar ResponsesCount,
			// duas linhas com a mesma chave no mesmo lote quebram o ON
			// CONFLICT DO UPDATE do Postgres, então rejeitamos na borda.
			name: "question_id duplicado",
			input: func() SubmitAssessmentInput {
				in := validInput("A1")
				in.Responses[1].QuestionID = in.Responses[0].QuestionID
				return in
			}(),
			wantErr: ErrInvalidSubmission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assessments := newStubAssessmentRepo(startedAssessment("A1"), completed)
			responses := newStubResponseRepo()
			reports := &stubReportRepo{}
			engine := newTestEngine(assessments, responses, reports, &stubAssembler{})

			_, err := engine.Submit(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}

			// Nenhuma escrita pode ter acontecido
			if responses.writes != 0 {
				t.Fatalf("response writes = %d, want 0", responses.writes)
			}
			if assessments.completeCalls != 0 {
				t.Fatalf("complete calls = %d, want 0", assessments.completeCalls)
			}
			if len(reports.saved) != 0 {
				t.Fatalf("reports saved = %d, want 0", len(reports.saved))
			}
		})
	}
}

func TestSubmitOwnership(t *testing.T) {
	practiceA := "practice-a"
	practiceB := "practice-b"

	assessment := startedAssessment("A1")
	assessment.PracticeID = &practiceA

	tests := []struct {
		name    string
		caller  *Caller
		wantErr error
	}{
		{name: "sem identidade (intake público)", caller: nil},
		{name: "responsável dono", caller: &Caller{UserID: "parent-1", Role: entities.RoleParent}},
		{name: "responsável de outra criança", caller: &Caller{UserID: "parent-2", Role: entities.RoleParent}, wantErr: ErrNotAuthorized},
		{name: "profissional da clínica", caller: &Caller{UserID: "prac-1", Role: entities.RolePractitioner, PracticeID: &practiceA}},
		{name: "profissional de outra clínica", caller: &Caller{UserID: "prac-2", Role: entities.RolePractitioner, PracticeID: &practiceB}, wantErr: ErrNotAuthorized},
		{name: "admin", caller: &Caller{UserID: "admin-1", Role: entities.RoleAdmin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := *assessment
			assessments := newStubAssessmentRepo(&cp)
			engine := newTestEngine(assessments, newStubResponseRepo(), &stubReportRepo{}, &stubAssembler{})

			input := validInput("A1")
			input.Caller = tt.caller

			_, err := engine.Submit(context.Background(), input)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Submit returned error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubmitResubmissionReturnsAlreadyCompleted(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()
	engine := newTestEngine(assessments, responses, &stubReportRepo{}, &stubAssembler{})

	if _, err := engine.Submit(context.Background(), validInput("A1")); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}

	_, err := engine.Submit(context.Background(), validInput("A1"))
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("second Submit err = %v, want ErrAlreadyCompleted", err)
	}

	// O estado final continua o da submissão vencedora
	if len(responses.rows) != 2 {
		t.Fatalf("stored responses = %d, want 2", len(responses.rows))
	}
}

func TestSubmitUpsertConvergesAfterPartialWrite(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()

	// Simular escrita parcial de uma tentativa anterior que falhou no meio
	responses.rows[responseKey{"A1", "q1"}] = entities.SurveyResponse{
		AssessmentID: "A1",
		QuestionID:   "q1",
		ResponseText: "valor antigo",
	}

	engine := newTestEngine(assessments, responses, &stubReportRepo{}, &stubAssembler{})

	if _, err := engine.Submit(context.Background(), validInput("A1")); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if len(responses.rows) != 2 {
		t.Fatalf("stored responses = %d, want 2", len(responses.rows))
	}
	if got := responses.rows[responseKey{"A1", "q1"}].ResponseText; got != "8" {
		t.Fatalf("q1 response text = %q, want %q (latest values win)", got, "8")
	}
}

func TestSubmitRaceDetectedByConditionalWrite(t *testing.T) {
	// Outro submitter conclui entre a leitura do validador e a escrita
	// condicional: o validador vê started (leitura defasada), mas o UPDATE
	// condicional não afeta nenhuma linha.
	winner := startedAssessment("A1")
	winner.Status = entities.AssessmentStatusCompleted
	assessments := newStubAssessmentRepo(winner)
	assessments.staleStatus = entities.AssessmentStatusStarted

	responses := newStubResponseRepo()
	engine := newTestEngine(assessments, responses, &stubReportRepo{}, &stubAssembler{})

	_, err := engine.Submit(context.Background(), validInput("A1"))
	if !errors.Is(err, ErrAlreadyCompleted) {
		t.Fatalf("err = %v, want ErrAlreadyCompleted", err)
	}
	if assessments.completeCalls != 1 {
		t.Fatalf("complete calls = %d, want 1 (race detected at write time)", assessments.completeCalls)
	}
}

func TestSubmitConcurrentAtMostOnceCompletion(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()
	reports := &stubReportRepo{}
	engine := NewSubmissionUseCase(assessments, responses, reports, nil, &stubAssembler{}, nil)

	const submitters = 16
	var wg sync.WaitGroup
	errs := make([]error, submitters)

	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = engine.Submit(context.Background(), validInput("A1"))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, ErrAlreadyCompleted):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}

	stored := assessments.assessments["A1"]
	if stored.Status != entities.AssessmentStatusCompleted {
		t.Fatalf("stored status = %q, want completed", stored.Status)
	}
	// Nunca uma avaliação completed sem suas respostas
	if len(responses.rows) != 2 {
		t.Fatalf("stored responses = %d, want 2", len(responses.rows))
	}
}

func TestSubmitReportFailureDoesNotRevertCompletion(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()
	reports := &stubReportRepo{}
	assembler := &stubAssembler{err: errors.New("chart service down")}
	engine := newTestEngine(assessments, responses, reports, assembler)

	result, err := engine.Submit(context.Background(), validInput("A1"))
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	if !result.ReportGenerationFailed {
		t.Fatal("expected report_generation_failed flag")
	}
	if result.ReportID != "" {
		t.Fatalf("report id = %q, want empty", result.ReportID)
	}
	if assessments.assessments["A1"].Status != entities.AssessmentStatusCompleted {
		t.Fatal("completion was reverted after report failure")
	}

	// O assembler volta a funcionar: regeneração independente na leitura
	assembler.err = nil
	content, err := assembler.Assemble(context.Background(), "A1")
	if err != nil || content == nil {
		t.Fatalf("later Assemble failed: %v", err)
	}
}

func TestSubmitStorageErrorIsFatalAndRetryable(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	responses := newStubResponseRepo()
	responses.upsertErr = errors.New("connection reset")
	engine := newTestEngine(assessments, responses, &stubReportRepo{}, &stubAssembler{})

	_, err := engine.Submit(context.Background(), validInput("A1"))
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("err = %v, want ErrStorage", err)
	}
	if assessments.assessments["A1"].Status != entities.AssessmentStatusStarted {
		t.Fatal("assessment must not complete after storage failure")
	}

	// Retry do cliente converge graças ao upsert idempotente
	responses.upsertErr = nil
	if _, err := engine.Submit(context.Background(), validInput("A1")); err != nil {
		t.Fatalf("retry Submit returned error: %v", err)
	}
	if len(responses.rows) != 2 {
		t.Fatalf("stored responses = %d, want 2", len(responses.rows))
	}
}

func TestSubmitNormalizesScore(t *testing.T) {
	assessments := newStubAssessmentRepo(startedAssessment("A1"))
	engine := newTestEngine(assessments, newStubResponseRepo(), &stubReportRepo{}, &stubAssembler{})

	input := validInput("A1")
	input.Score = 140.3

	result, err := engine.Submit(context.Background(), input)
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if result.BrainOMeterScore != 100 {
		t.Fatalf("score = %v, want saturated 100", result.BrainOMeterScore)
	}
}
