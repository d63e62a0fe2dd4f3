package usecases

import "math"

// Limites da escala Brain-O-Meter exibida no relatório
const (
	BrainOMeterMin = 0.0
	BrainOMeterMax = 100.0
)

// NormalizeBrainOMeter normaliza um score bruto para a escala 0–100.
// Valores fora da faixa são saturados; o arredondamento é para a meia
// unidade mais próxima, igual ao medidor exibido no frontend.
func NormalizeBrainOMeter(raw float64) float64 {
	if raw < BrainOMeterMin {
		return BrainOMeterMin
	}
	if raw > BrainOMeterMax {
		return BrainOMeterMax
	}
	return math.Round(raw*2) / 2
}

// ScoreBand devolve a faixa qualitativa usada no resumo do relatório
func ScoreBand(score float64) string {
	switch {
	case score >= 70:
		return "thriving"
	case score >= 40:
		return "developing"
	default:
		return "needs_attention"
	}
}
