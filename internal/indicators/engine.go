// Package indicators computes the four financial ratios of a company and
// evaluates them against sector thresholds.
package indicators

import (
	"math"

	"finanzbot/internal/models"
)

const daysPerYear = 365

// Thresholds are the per-sector limits an indicator is judged against.
type Thresholds struct {
	DebtCeiling       float64 `json:"debtCeiling"`
	ROAFloor          float64 `json:"roaFloor"`
	ProductivityFloor float64 `json:"productivityFloor"` // COP per employee
	TurnoverCeiling   float64 `json:"turnoverCeiling"`   // days
}

var sectorThresholds = map[models.Sector]Thresholds{
	models.SectorTechnology:    {DebtCeiling: 0.6, ROAFloor: 0.15, ProductivityFloor: 100_000_000, TurnoverCeiling: 60},
	models.SectorCommerce:      {DebtCeiling: 0.5, ROAFloor: 0.08, ProductivityFloor: 50_000_000, TurnoverCeiling: 45},
	models.SectorManufacturing: {DebtCeiling: 0.55, ROAFloor: 0.1, ProductivityFloor: 70_000_000, TurnoverCeiling: 50},
	models.SectorServices:      {DebtCeiling: 0.45, ROAFloor: 0.12, ProductivityFloor: 60_000_000, TurnoverCeiling: 30},
	models.SectorOther:         {DebtCeiling: 0.5, ROAFloor: 0.1, ProductivityFloor: 60_000_000, TurnoverCeiling: 45},
}

// ThresholdsFor returns the limits of a sector; unknown sectors use Other.
func ThresholdsFor(s models.Sector) Thresholds {
	return sectorThresholds[resolveSector(s)]
}

// resolveSector accepts any spelling ParseSector knows, regardless of case.
func resolveSector(s models.Sector) models.Sector {
	if s.Valid() {
		return s
	}
	return models.ParseSector(string(s))
}

// DebtRatio is liabilities over assets. Zero assets yield +Inf, even when
// liabilities are zero too.
func DebtRatio(liabilities, assets float64) float64 {
	if assets == 0 {
		return math.Inf(1)
	}
	return liabilities / assets
}

// ReturnOnAssets is earnings over assets. Zero assets yield 0.
func ReturnOnAssets(earnings, assets float64) float64 {
	if assets == 0 {
		return 0
	}
	return earnings / assets
}

// ProductivityPerEmployee is earnings per employee. No employees yields 0.
func ProductivityPerEmployee(earnings float64, employees int) float64 {
	if employees == 0 {
		return 0
	}
	return earnings / float64(employees)
}

// ReceivablesTurnoverDays is the days needed to collect receivables at the
// current earnings rate. Zero earnings yield +Inf.
func ReceivablesTurnoverDays(receivables, earnings float64) float64 {
	if earnings == 0 {
		return math.Inf(1)
	}
	return receivables / earnings * daysPerYear
}

// Compute derives the indicator set of a profile.
func Compute(p models.CompanyProfile) models.IndicatorSet {
	return models.IndicatorSet{
		DebtRatio:               DebtRatio(p.TotalLiabilities, p.TotalAssets),
		ReturnOnAssets:          ReturnOnAssets(p.AnnualEarnings, p.TotalAssets),
		ProductivityPerEmployee: ProductivityPerEmployee(p.AnnualEarnings, p.Employees),
		ReceivablesTurnoverDays: ReceivablesTurnoverDays(p.Receivables, p.AnnualEarnings),
	}
}

// Judge compares an indicator set with the thresholds of a sector.
func Judge(set models.IndicatorSet, t Thresholds) models.Verdict {
	v := models.Verdict{
		Debt:          models.TierElevated,
		Profitability: models.TierLow,
		Productivity:  models.TierLow,
		Turnover:      models.TierElevated,
	}
	if set.DebtRatio <= t.DebtCeiling {
		v.Debt = models.TierAcceptable
	}
	if set.ReturnOnAssets >= t.ROAFloor {
		v.Profitability = models.TierAdequate
	}
	if set.ProductivityPerEmployee >= t.ProductivityFloor {
		v.Productivity = models.TierAdequate
	}
	if set.ReceivablesTurnoverDays <= t.TurnoverCeiling {
		v.Turnover = models.TierAdequate
	}
	return v
}

var recommendations = map[models.Indicator]string{
	models.IndicatorDebt:          "Reducir el nivel de endeudamiento, considerar reestructuración de deuda.",
	models.IndicatorProfitability: "Mejorar la eficiencia operativa y revisar la estructura de costos.",
	models.IndicatorProductivity:  "Optimizar procesos y/o implementar programas de capacitación para los empleados.",
	models.IndicatorTurnover:      "Mejorar las políticas de cobro y gestión de cartera.",
}

// Recommend lists one advisory per unfavorable indicator in declaration
// order. The result is empty, never nil, when everything is favorable.
func Recommend(v models.Verdict) []string {
	out := []string{}
	for _, i := range models.AllIndicators {
		if !v.Tier(i).Favorable() {
			out = append(out, recommendations[i])
		}
	}
	return out
}

// Evaluate computes, judges and summarises a profile. It has no side
// effects and returns equal results for equal profiles.
func Evaluate(p models.CompanyProfile) models.AnalysisResult {
	sector := resolveSector(p.Sector)
	set := Compute(p)
	verdict := Judge(set, ThresholdsFor(sector))

	return models.AnalysisResult{
		CompanyName:      p.Name,
		Sector:           sector,
		Receivables:      p.Receivables,
		TotalLiabilities: p.TotalLiabilities,
		Indicators:       set,
		Verdict:          verdict,
		Status:           models.StatusFromFavorable(verdict.Favorable()),
		Recommendations:  Recommend(verdict),
	}
}
