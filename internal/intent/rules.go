// Package intent classifies chat messages into topics with a fixed priority
// cascade: off-topic pre-filter, direct keyword rules, then bag-of-words
// similarity against topic descriptors.
package intent

import (
	"strings"

	"finanzbot/internal/models"
)

// Rule maps a topic to the keywords that select it. Keywords are folded
// (lowercase, no accents) and matched as substrings.
type Rule struct {
	Topic    models.Topic
	Keywords []string
}

// Match returns the first keyword of r found in folded text.
func (r Rule) Match(folded string) (string, bool) {
	for _, kw := range r.Keywords {
		if strings.Contains(folded, kw) {
			return kw, true
		}
	}
	return "", false
}

var rules = []Rule{
	{models.TopicGreeting, []string{"hola", "buenos", "saludos", "que tal"}},
	{models.TopicThanks, []string{"gracias", "agradecido", "agradezco", "thank"}},
	{models.TopicFarewell, []string{"adios", "chao", "hasta luego", "nos vemos", "bye"}},
	{models.TopicDebt, []string{"deuda", "endeudamiento", "pasivo", "prestamo", "financiacion"}},
	{models.TopicProfitability, []string{"rentabilidad", "ganancia", "beneficio", "rendimiento", "roa", "margen"}},
	{models.TopicProductivity, []string{"productividad", "eficiencia", "empleado", "trabajador", "personal"}},
	{models.TopicReceivables, []string{"cartera", "cobrar", "credito", "rotacion", "cliente", "factura"}},
	{models.TopicLiquidity, []string{"liquidez", "efectivo", "caja", "corriente", "solvencia"}},
}

// Rules returns a copy of the keyword table in priority order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		out[i] = Rule{Topic: r.Topic, Keywords: append([]string(nil), r.Keywords...)}
	}
	return out
}

// Descriptor is the representative bag of terms of a financial topic.
type Descriptor struct {
	Topic models.Topic
	Text  string
}

var descriptors = []Descriptor{
	{models.TopicDebt, "deudas financiacion pasivos prestamos creditos obligaciones financieras"},
	{models.TopicProfitability, "beneficios ganancias rentabilidad margen utilidad rendimiento roa roi"},
	{models.TopicProductivity, "empleados trabajadores personal productividad eficiencia rendimiento laboral"},
	{models.TopicReceivables, "cartera cobros creditos clientes facturas cuentas por cobrar"},
	{models.TopicLiquidity, "liquidez efectivo caja flujo dinero solvencia corto plazo"},
}

// Descriptors returns the similarity descriptors in tie-break order.
func Descriptors() []Descriptor {
	return append([]Descriptor(nil), descriptors...)
}

func matchRules(folded string, table []Rule) (Rule, string, bool) {
	for _, r := range table {
		if kw, ok := r.Match(folded); ok {
			return r, kw, true
		}
	}
	return Rule{}, "", false
}
