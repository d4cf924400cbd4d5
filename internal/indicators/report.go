package indicators

import (
	"fmt"
	"math"
	"strings"

	"finanzbot/internal/models"
)

// Report renders the plain-text summary shown after an analysis and sent by
// email.
func Report(r models.AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Análisis económico para %s (Sector: %s):\n\n", r.CompanyName, r.Sector.Label())
	fmt.Fprintf(&b, "Estado económico general: %s\n\n", r.Status.Label())

	b.WriteString("Indicadores analizados:\n")
	for _, line := range IndicatorLines(r) {
		b.WriteString("• ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecomendaciones:\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
	}
	return b.String()
}

// IndicatorLines renders each indicator with its value and verdict label.
func IndicatorLines(r models.AnalysisResult) []string {
	set, v := r.Indicators, r.Verdict
	return []string{
		fmt.Sprintf("Ratio de endeudamiento: %s (%s)", FormatRatio(set.DebtRatio), models.TierLabel(models.IndicatorDebt, v.Debt)),
		fmt.Sprintf("Rentabilidad sobre activos: %s (%s)", FormatPercent(set.ReturnOnAssets), models.TierLabel(models.IndicatorProfitability, v.Profitability)),
		fmt.Sprintf("Productividad por empleado: %s (%s)", FormatCOP(set.ProductivityPerEmployee), models.TierLabel(models.IndicatorProductivity, v.Productivity)),
		fmt.Sprintf("Rotación de cartera: %s (%s)", FormatDays(set.ReceivablesTurnoverDays), models.TierLabel(models.IndicatorTurnover, v.Turnover)),
	}
}

// ScoreCard holds each indicator scaled to [0, 1], higher is healthier.
type ScoreCard struct {
	Debt          float64 `json:"debt"`
	Profitability float64 `json:"profitability"`
	Productivity  float64 `json:"productivity"`
	Turnover      float64 `json:"turnover"`
}

// Scores normalises the indicators for charting: debt against a ratio of 1,
// ROA against 30%, productivity against the sector floor and turnover
// against 90 days.
func Scores(r models.AnalysisResult) ScoreCard {
	set := r.Indicators
	floor := ThresholdsFor(r.Sector).ProductivityFloor
	return ScoreCard{
		Debt:          1 - math.Min(1, set.DebtRatio),
		Profitability: clamp(set.ReturnOnAssets / 0.3),
		Productivity:  clamp(set.ProductivityPerEmployee / floor),
		Turnover:      1 - math.Min(1, set.ReceivablesTurnoverDays/90),
	}
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
