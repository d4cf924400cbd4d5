package intent

import (
	"strings"

	"finanzbot/internal/models"
	"finanzbot/internal/nlp"
)

func set(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

var (
	greetingPhrases = set("hola", "buenas", "buenos dias", "buenas tardes", "buenas noches",
		"hola buenos dias", "hola buenas tardes", "hola buenas noches", "saludos", "que tal",
		"hey", "hi", "hello")

	farewellPhrases = set("adios", "chao", "bye", "hasta luego", "hasta pronto", "nos vemos", "hasta manana")

	helpPhrases = set("ayuda", "help", "ayudame", "que puedes hacer", "como funciona", "que haces",
		"necesito ayuda", "como me ayudas")

	emotionalKeywords = []string{"triste", "deprimid", "ansiedad", "ansios", "estresad", "estres",
		"me siento", "llorar", "enojad", "frustrad", "feliz", "aburrid"}

	personalKeywords = []string{"novia", "novio", "familia", "amor", "pelicula", "futbol", "partido",
		"clima", "receta", "musica", "chiste", "vacaciones", "cumpleanos", "mascota", "perro", "gato"}

	// Stems rather than words so that inflections match.
	financialKeywords = []string{"deuda", "endeud", "pasivo", "prestamo", "financ", "credito",
		"obligacion", "rentab", "ganancia", "beneficio", "utilidad", "rendimiento", "roa", "roi",
		"margen", "productiv", "eficiencia", "empleado", "trabajador", "personal", "cartera", "cobr",
		"cliente", "factura", "cuentas", "rotacion", "liquidez", "efectivo", "caja", "flujo", "dinero",
		"solvencia", "corriente", "activo", "patrimonio", "capital", "empresa", "negocio", "finanz",
		"indicador", "ingreso", "venta", "costo", "gasto", "inversion", "sector", "balance", "contab",
		"tecnologia", "comercio", "manufactura", "servicios", "analisis", "recomend"}
)

func containsAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// prefilter decides whether a message is off topic. It returns ok=false
// when the message should continue to the keyword stage.
func prefilter(msg string) (models.Classification, bool) {
	norm := nlp.Normalize(msg)
	decided := func(topic models.Topic, kind models.OffTopicKind, kw string) (models.Classification, bool) {
		return models.Classification{Topic: topic, OffTopic: kind, Stage: models.StagePrefilter, Keyword: kw}, true
	}

	if _, ok := greetingPhrases[norm]; ok {
		return decided(models.TopicGreeting, models.OffTopicNone, norm)
	}
	if _, ok := farewellPhrases[norm]; ok {
		return decided(models.TopicFarewell, models.OffTopicNone, norm)
	}
	if _, ok := helpPhrases[norm]; ok {
		return decided(models.TopicOffTopic, models.OffTopicHelp, norm)
	}

	// financial vocabulary overrides every off-topic signal below
	if _, ok := containsAny(norm, financialKeywords); ok {
		return models.Classification{}, false
	}
	if kw, ok := containsAny(norm, emotionalKeywords); ok {
		return decided(models.TopicOffTopic, models.OffTopicEmotional, kw)
	}
	if kw, ok := containsAny(norm, personalKeywords); ok {
		return decided(models.TopicOffTopic, models.OffTopicPersonal, kw)
	}
	for _, r := range rules {
		if _, ok := r.Match(norm); ok && r.Topic.IsConversational() {
			return models.Classification{}, false
		}
	}
	if nlp.WordCount(norm) < 2 {
		return decided(models.TopicOffTopic, models.OffTopicShort, "")
	}
	return decided(models.TopicOffTopic, models.OffTopicOther, "")
}
