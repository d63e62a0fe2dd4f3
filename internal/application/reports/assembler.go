package reports

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/brainometer/practice-api/internal/application/usecases"
	"github.com/brainometer/practice-api/internal/domain/entities"
	"github.com/brainometer/practice-api/internal/domain/repositories"
	"github.com/brainometer/practice-api/internal/utils"
)

// Assembler monta o conteúdo do relatório padrão a partir do estado
// persistido de uma avaliação concluída. É função pura desse estado:
// chamadas repetidas com as mesmas respostas produzem o mesmo documento,
// o que torna a regeneração segura em qualquer momento.
type Assembler struct {
	assessments repositories.IAssessmentRepository
	responses   repositories.ISurveyResponseRepository
	children    repositories.IChildRepository
}

// NewAssembler cria uma nova instância de Assembler
func NewAssembler(
	assessments repositories.IAssessmentRepository,
	responses repositories.ISurveyResponseRepository,
	children repositories.IChildRepository,
) *Assembler {
	return &Assembler{
		assessments: assessments,
		responses:   responses,
		children:    children,
	}
}

// Assemble constrói o conteúdo do relatório de uma avaliação concluída
func (a *Assembler) Assemble(ctx context.Context, assessmentID string) (*entities.ReportContent, error) {
	assessment, err := a.assessments.FindByID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar avaliação: %w", err)
	}
	if assessment == nil {
		return nil, fmt.Errorf("avaliação %s não encontrada", assessmentID)
	}
	if !assessment.IsCompleted() {
		return nil, fmt.Errorf("avaliação %s ainda não foi concluída", assessmentID)
	}

	child, err := a.children.FindByID(ctx, assessment.ChildID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar criança: %w", err)
	}

	responses, err := a.responses.FindByAssessmentID(ctx, assessmentID)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar respostas: %w", err)
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("avaliação %s não tem respostas persistidas", assessmentID)
	}

	content := &entities.ReportContent{
		ChildSummary: buildChildSummary(assessment, child),
		Categories:   groupByCategory(responses),
	}
	content.Summary = buildSummary(content.ChildSummary)
	content.Recommendations = buildRecommendations(assessment.BrainOMeterScore)
	content.Charts = buildCharts(assessment, content.Categories)

	return content, nil
}

func buildChildSummary(assessment *entities.Assessment, child *entities.Child) entities.ChildSummary {
	summary := entities.ChildSummary{
		BrainOMeterScore: assessment.BrainOMeterScore,
	}
	if assessment.CompletedAt != nil {
		summary.CompletedAt = utils.FormatDateOnly(*assessment.CompletedAt)
		if child != nil {
			summary.AgeYears = child.AgeYears(*assessment.CompletedAt)
		}
	}
	if child != nil {
		summary.Name = child.FullName()
	}
	return summary
}

// groupByCategory agrupa as respostas pelo prefixo do question_id
// ("sleep.q1" → "sleep"). Perguntas sem prefixo caem em "general".
// A ordem das categorias é alfabética para saída determinística.
func groupByCategory(responses []entities.SurveyResponse) []entities.ReportCategory {
	grouped := make(map[string][]entities.ReportResponse)
	for _, resp := range responses {
		category := categoryOf(resp.QuestionID)
		grouped[category] = append(grouped[category], entities.ReportResponse{
			QuestionID:   resp.QuestionID,
			ResponseText: resp.ResponseText,
		})
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]entities.ReportCategory, 0, len(names))
	for _, name := range names {
		categories = append(categories, entities.ReportCategory{
			Name:      name,
			Responses: grouped[name],
		})
	}
	return categories
}

func categoryOf(questionID string) string {
	if idx := strings.IndexAny(questionID, "._"); idx > 0 {
		return questionID[:idx]
	}
	return "general"
}

func buildSummary(child entities.ChildSummary) string {
	if child.BrainOMeterScore == nil {
		return ""
	}
	score := *child.BrainOMeterScore
	name := child.Name
	if name == "" {
		name = "The child"
	}

	switch usecases.ScoreBand(score) {
	case "thriving":
		return fmt.Sprintf("%s scored %.1f on the Brain-O-Meter, indicating a thriving nervous system. Keep up the healthy habits that are supporting this development.", name, score)
	case "developing":
		return fmt.Sprintf("%s scored %.1f on the Brain-O-Meter. There is healthy development in several areas, with room to grow in others.", name, score)
	default:
		return fmt.Sprintf("%s scored %.1f on the Brain-O-Meter. Some areas may benefit from focused attention and a conversation with your practitioner.", name, score)
	}
}

func buildRecommendations(score *float64) []string {
	if score == nil {
		return nil
	}
	switch usecases.ScoreBand(*score) {
	case "thriving":
		return []string{
			"Maintain current routines for sleep, movement and nutrition.",
			"Schedule a follow-up assessment in 6 months to track progress.",
		}
	case "developing":
		return []string{
			"Review the category breakdown below with your practitioner.",
			"Focus on consistent sleep and screen-time routines.",
			"Schedule a follow-up assessment in 3 months.",
		}
	default:
		return []string{
			"Book a consultation with your practitioner to discuss these results.",
			"Prioritize the categories with the most flagged responses.",
			"Re-assess in 4 to 6 weeks to measure improvement.",
		}
	}
}

func buildCharts(assessment *entities.Assessment, categories []entities.ReportCategory) []entities.ReportChartPayload {
	perCategory := make(map[string]float64, len(categories))
	for _, category := range categories {
		perCategory[category.Name] = float64(len(category.Responses))
	}

	charts := []entities.ReportChartPayload{
		{
			ChartType: "bar",
			Title:     "Responses by category",
			Values:    perCategory,
		},
	}
	if assessment.BrainOMeterScore != nil {
		charts = append(charts, entities.ReportChartPayload{
			ChartType: "gauge",
			Title:     "Brain-O-Meter",
			Values: map[string]float64{
				"score": *assessment.BrainOMeterScore,
				"max":   usecases.BrainOMeterMax,
			},
		})
	}
	return charts
}
