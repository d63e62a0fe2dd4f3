package utils

import "time"

// DateOnlyLayout é o formato de datas sem horário usado pela API
// (datas de nascimento, data de conclusão nos relatórios).
const DateOnlyLayout = "2006-01-02"

// ParseDateOnly interpreta uma data no formato YYYY-MM-DD.
// A data é ancorada em UTC para que cálculos de idade e de período
// não dependam do fuso horário do servidor.
func ParseDateOnly(value string) (time.Time, error) {
	t, err := time.Parse(DateOnlyLayout, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// FormatDateOnly formata uma data no formato YYYY-MM-DD em UTC
func FormatDateOnly(t time.Time) string {
	return t.UTC().Format(DateOnlyLayout)
}
