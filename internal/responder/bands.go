package responder

import (
	"fmt"
	"math"

	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

// band is one interpretation of an indicator value.
type band struct {
	Text   string
	Advice []string
}

// bandSet holds the low, middle and high interpretations of an indicator.
type bandSet [3]band

// pick returns the band for v given the two ascending breakpoints.
func (s bandSet) pick(v, low, high float64) band {
	switch {
	case v < low:
		return s[0]
	case v < high:
		return s[1]
	default:
		return s[2]
	}
}

var debtBands = bandSet{
	{
		Text: "Este valor indica un bajo nivel de endeudamiento, lo que es positivo para la estabilidad financiera, pero podría estar perdiendo oportunidades de apalancamiento para crecer más rápido.",
		Advice: []string{
			"Evalúa financiar proyectos de crecimiento con deuda a tasas competitivas.",
			"Mantén una reserva de capacidad de endeudamiento para oportunidades futuras.",
		},
	},
	{
		Text: "Este valor muestra un endeudamiento moderado y saludable, un buen balance entre capital propio y ajeno.",
		Advice: []string{
			"Conserva el equilibrio actual entre capital propio y deuda.",
			"Revisa periódicamente las tasas de interés de tus obligaciones.",
		},
	},
	{
		Text: "Este nivel de endeudamiento es elevado, lo que podría aumentar el riesgo financiero y dificultar el acceso a nuevo financiamiento.",
		Advice: []string{
			"Prioriza el pago de las deudas con mayor costo financiero.",
			"Renegocia plazos y tasas con tus acreedores.",
			"Considera aumentar el capital social o reinvertir utilidades.",
		},
	},
}

var profitabilityBands = bandSet{
	{
		Text: "Esta rentabilidad es baja. Cada $100 invertidos en activos están generando menos de $5 de beneficio, lo que sugiere revisar la eficiencia operativa y la estructura de costos.",
		Advice: []string{
			"Identifica y reduce los costos operativos que no agregan valor.",
			"Evalúa vender activos improductivos.",
			"Revisa tu estrategia de precios.",
		},
	},
	{
		Text: "Esta rentabilidad es moderada. Tus activos están produciendo un retorno razonable, aunque siempre hay espacio para mejorar.",
		Advice: []string{
			"Optimiza la rotación de inventarios.",
			"Busca líneas de negocio con mayor margen.",
		},
	},
	{
		Text: "¡Excelente rentabilidad! Tus activos están siendo muy productivos generando un alto retorno sobre la inversión.",
		Advice: []string{
			"Reinvierte parte de las utilidades para sostener el crecimiento.",
			"Documenta las prácticas que explican este desempeño.",
		},
	},
}

var productivityBands = bandSet{
	{
		Text: "Esta productividad está por debajo del estándar del sector. Podría ser conveniente revisar procesos, capacitación y tecnología disponible para los empleados.",
		Advice: []string{
			"Invierte en programas de capacitación.",
			"Automatiza tareas repetitivas.",
			"Revisa la distribución de cargas de trabajo.",
		},
	},
	{
		Text: "Esta productividad está alineada con los estándares del sector, mostrando una operación eficiente.",
		Advice: []string{
			"Implementa incentivos ligados a resultados.",
			"Mide la productividad por área para detectar oportunidades.",
		},
	},
	{
		Text: "¡Excelente productividad! Tus empleados generan un valor significativamente superior al promedio del sector.",
		Advice: []string{
			"Retén el talento clave con planes de desarrollo.",
			"Escala los procesos que mejor funcionan a otras áreas.",
		},
	},
}

var turnoverBands = bandSet{
	{
		Text: "¡Excelente gestión de cobros! Tu empresa recupera el dinero rápidamente, lo que favorece la liquidez.",
		Advice: []string{
			"Mantén tus políticas de crédito actuales.",
			"Evalúa si plazos algo mayores te permitirían ganar clientes sin afectar la liquidez.",
		},
	},
	{
		Text: "Tu gestión de cobros es adecuada. Mantiene un buen equilibrio entre política comercial y necesidades de liquidez.",
		Advice: []string{
			"Ofrece descuentos por pronto pago.",
			"Haz seguimiento semanal de las facturas vencidas.",
		},
	},
	{
		Text: "Tu periodo de cobro es extenso, lo que podría estar afectando tu flujo de caja. Considera revisar tus políticas de crédito y cobranza.",
		Advice: []string{
			"Endurece los criterios de aprobación de crédito.",
			"Implementa recordatorios de pago automáticos.",
			"Evalúa el factoring para las cuentas más antiguas.",
		},
	},
}

var liquidityBands = bandSet{
	{
		Text: "Esto podría indicar problemas de liquidez a corto plazo, ya que tu cartera no cubriría todas tus deudas.",
		Advice: []string{
			"Acelera el cobro de tu cartera.",
			"Renegocia plazos con tus proveedores.",
			"Considera una línea de crédito de capital de trabajo.",
		},
	},
	{
		Text: "Tu liquidez es ajustada pero manejable. Mantén un control cercano de tu flujo de caja.",
		Advice: []string{
			"Elabora un presupuesto de caja semanal.",
			"Evita comprometer efectivo en inversiones de largo plazo por ahora.",
		},
	},
	{
		Text: "Tu posición de liquidez parece sólida, con suficiente cartera para cubrir tus obligaciones.",
		Advice: []string{
			"Invierte los excedentes de efectivo en instrumentos de bajo riesgo.",
			"Revisa que el exceso de cartera no oculte clientes morosos.",
		},
	},
}

// liquiditySentinel describes liquidity when there are no liabilities.
const liquiditySentinel = "Alta"

// LiquidityRatio estimates liquidity as receivables over liabilities. It is
// derived on demand and never stored with the analysis. ok is false when
// there are no liabilities.
func LiquidityRatio(r models.AnalysisResult) (ratio float64, ok bool) {
	if r.TotalLiabilities == 0 {
		return 0, false
	}
	return r.Receivables / r.TotalLiabilities, true
}

// interpret builds the headline and band of a financial topic.
func interpret(topic models.Topic, r models.AnalysisResult) (string, band) {
	set, v, sector := r.Indicators, r.Verdict, r.Sector.Label()

	switch topic {
	case models.TopicDebt:
		return fmt.Sprintf("📊 **Análisis de Endeudamiento**\n\nTu ratio de endeudamiento es **%s**, lo cual es considerado **%s** para el sector %s.",
				indicators.FormatRatio(set.DebtRatio), models.TierLabel(models.IndicatorDebt, v.Debt), sector),
			debtBands.pick(set.DebtRatio, 0.4, 0.6)

	case models.TopicProfitability:
		return fmt.Sprintf("💰 **Análisis de Rentabilidad**\n\nTu rentabilidad sobre activos (ROA) es **%s**, lo cual es considerada **%s** para el sector %s.",
				indicators.FormatPercent(set.ReturnOnAssets), models.TierLabel(models.IndicatorProfitability, v.Profitability), sector),
			profitabilityBands.pick(set.ReturnOnAssets, 0.05, 0.15)

	case models.TopicProductivity:
		floor := indicators.ThresholdsFor(r.Sector).ProductivityFloor
		return fmt.Sprintf("👥 **Análisis de Productividad**\n\nLa productividad por empleado es **%s**, lo cual es considerada **%s** para el sector %s.",
				indicators.FormatCOP(set.ProductivityPerEmployee), models.TierLabel(models.IndicatorProductivity, v.Productivity), sector),
			productivityBands.pick(set.ProductivityPerEmployee, 0.7*floor, 1.2*floor)

	case models.TopicReceivables:
		return fmt.Sprintf("📅 **Análisis de Rotación de Cartera**\n\nTu rotación de cartera es de **%s**, lo cual es considerada **%s** para el sector %s.",
				indicators.FormatDays(set.ReceivablesTurnoverDays), models.TierLabel(models.IndicatorTurnover, v.Turnover), sector),
			turnoverBands.pick(set.ReceivablesTurnoverDays, 30, 60)

	default:
		ratio, ok := LiquidityRatio(r)
		if !ok {
			return fmt.Sprintf("💧 **Estimación de Liquidez**\n\nBasado en los datos proporcionados, tu empresa parece tener una liquidez **%s**, ya que tus deudas son mínimas en comparación con tu cartera.", liquiditySentinel),
				liquidityBands.pick(math.Inf(1), 1, 1.5)
		}
		return fmt.Sprintf("💧 **Estimación de Liquidez**\n\nLa relación entre tu cartera y tus deudas es de **%s**.", indicators.FormatRatio(ratio)),
			liquidityBands.pick(ratio, 1, 1.5)
	}
}
