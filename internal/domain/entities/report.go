package entities

import (
	"encoding/json"
	"time"
)

// Tipos de relatório suportados
const (
	ReportTypeStandard = "standard"
)

// Report representa o relatório gerado a partir de uma avaliação concluída.
// É dado derivado: pode sempre ser reconstruído a partir da avaliação e das
// respostas persistidas, então a regeneração é segura e idempotente.
type Report struct {
	ID           string          `json:"id" gorm:"primaryKey;column:id;type:uuid"`
	AssessmentID string          `json:"assessment_id" gorm:"column:assessment_id;type:uuid"`
	PracticeID   *string         `json:"practice_id,omitempty" gorm:"column:practice_id;type:uuid"`
	ReportType   string          `json:"report_type" gorm:"column:report_type"`
	Content      json.RawMessage `json:"content" gorm:"column:content;type:jsonb"`
	GeneratedAt  time.Time       `json:"generated_at" gorm:"column:generated_at"`
	CreatedAt    time.Time       `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"column:updated_at"`
}

// ReportContent é o documento estruturado armazenado em Report.Content.
type ReportContent struct {
	ChildSummary    ChildSummary         `json:"child_summary"`
	Categories      []ReportCategory     `json:"categories"`
	Summary         string               `json:"summary"`
	Recommendations []string             `json:"recommendations"`
	Charts          []ReportChartPayload `json:"charts,omitempty"`
}

// ChildSummary resume os dados da criança exibidos no topo do relatório.
type ChildSummary struct {
	Name             string   `json:"name"`
	AgeYears         int      `json:"age_years"`
	BrainOMeterScore *float64 `json:"brain_o_meter_score,omitempty"`
	CompletedAt      string   `json:"completed_at,omitempty"`
}

// ReportCategory agrupa as respostas por categoria de pergunta.
type ReportCategory struct {
	Name      string           `json:"name"`
	Responses []ReportResponse `json:"responses"`
}

// ReportResponse é a visão de exibição de uma resposta individual.
type ReportResponse struct {
	QuestionID   string `json:"question_id"`
	ResponseText string `json:"response_text"`
}

// ReportChartPayload carrega os dados prontos para o renderizador de gráficos
// do frontend; a montagem visual fica fora deste subsistema.
type ReportChartPayload struct {
	ChartType string             `json:"chart_type"`
	Title     string             `json:"title"`
	Values    map[string]float64 `json:"values"`
}
