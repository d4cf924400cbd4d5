package nlp

import (
	"strings"
	"unicode"
)

// irregularLemmas maps inflected forms whose base form cannot be derived by
// suffix rules.
var irregularLemmas = map[string]string{
	"soy": "ser", "eres": "ser", "es": "ser", "somos": "ser", "son": "ser",
	"era": "ser", "eran": "ser", "fue": "ser", "fueron": "ser", "sido": "ser", "sea": "ser",
	"estoy": "estar", "estás": "estar", "está": "estar", "estamos": "estar", "están": "estar",
	"estaba": "estar", "estuvo": "estar", "esté": "estar",
	"tengo": "tener", "tienes": "tener", "tiene": "tener", "tenemos": "tener", "tienen": "tener",
	"tenía": "tener", "tuvo": "tener", "tenga": "tener",
	"voy": "ir", "vas": "ir", "va": "ir", "vamos": "ir", "van": "ir", "iba": "ir",
	"hago": "hacer", "haces": "hacer", "hace": "hacer", "hacemos": "hacer", "hacen": "hacer", "hizo": "hacer", "haga": "hacer",
	"puedo": "poder", "puedes": "poder", "puede": "poder", "podemos": "poder", "pueden": "poder",
	"podría": "poder", "pudo": "poder",
	"quiero": "querer", "quieres": "querer", "quiere": "querer", "queremos": "querer", "quieren": "querer", "quisiera": "querer",
	"sé": "saber", "sabes": "saber", "sabe": "saber", "sabemos": "saber", "saben": "saber",
	"hay": "haber", "he": "haber", "has": "haber", "ha": "haber", "hemos": "haber", "han": "haber", "había": "haber",
	"digo": "decir", "dices": "decir", "dice": "decir", "dicen": "decir", "dime": "decir",
	"doy": "dar", "das": "dar", "da": "dar", "dan": "dar", "dame": "dar",
	"veo": "ver", "ves": "ver", "ve": "ver", "vemos": "ver", "ven": "ver",
	"debo": "deber", "debes": "deber", "debe": "deber", "debemos": "deber", "deben": "deber", "debería": "deber",
	"necesito": "necesitar", "necesitas": "necesitar", "necesita": "necesitar",
	"gustaría": "gustar", "gusta": "gustar",
	"entiendo": "entender", "entiende": "entender",
	"explícame": "explicar", "explica": "explicar",
	"cuéntame": "contar",
	"ayúdame": "ayudar",
	"el": "el", "la": "el", "los": "el", "las": "el",
	"un": "uno", "una": "uno", "unos": "uno", "unas": "uno",
	"del": "de", "al": "a",
	"mis": "mi", "tus": "tu", "sus": "su",
	"mucha": "mucho", "muchos": "mucho", "muchas": "mucho",
	"poca": "poco", "pocos": "poco", "pocas": "poco",
	"meses": "mes", "países": "país", "intereses": "interés", "leyes": "ley",
}

// invariant words end in -s without being plural.
var invariantWords = map[string]bool{
	"análisis": true, "crisis": true, "tesis": true, "mes": true, "país": true,
	"más": true, "menos": true, "tres": true, "seis": true, "pues": true,
	"después": true, "antes": true, "lunes": true, "martes": true, "viernes": true,
	"gas": true, "interés": true, "dos": true, "bus": true, "vs": true,
}

// Lemmatize returns the base form of each token of text.
func Lemmatize(text string) []string {
	tokens := Tokenize(text)
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Lemma(t)
	}
	return out
}

// Lemma reduces one lowercase token to its base form.
func Lemma(token string) string {
	if l, ok := irregularLemmas[token]; ok {
		return l
	}
	if invariantWords[token] || !isAlpha(token) || len([]rune(token)) <= 3 {
		return token
	}
	if tag, ok := closedClass[token]; ok && isFunctionTag(tag) {
		return token
	}
	if l, ok := verbLemma(token); ok {
		return l
	}
	return singular(token)
}

func isFunctionTag(t Tag) bool {
	switch t {
	case TagNoun, TagAdj, TagVerb:
		return false
	}
	return true
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

var verbSuffixes = []struct{ suffix, infinitive string }{
	{"ando", "ar"},
	{"iendo", "er"},
	{"aron", "ar"},
	{"ieron", "er"},
	{"amos", "ar"},
	{"emos", "er"},
	{"imos", "ir"},
}

func verbLemma(token string) (string, bool) {
	for _, s := range verbSuffixes {
		if stem, ok := strings.CutSuffix(token, s.suffix); ok && len([]rune(stem)) >= 2 && !hasAccent(stem) {
			return stem + s.infinitive, true
		}
	}
	return "", false
}

func hasAccent(s string) bool {
	return strings.ContainsAny(s, "áéíóú")
}

func singular(token string) string {
	switch {
	case strings.HasSuffix(token, "ciones"):
		return strings.TrimSuffix(token, "ciones") + "ción"
	case strings.HasSuffix(token, "siones"):
		return strings.TrimSuffix(token, "siones") + "sión"
	case strings.HasSuffix(token, "ces"):
		return strings.TrimSuffix(token, "ces") + "z"
	case strings.HasSuffix(token, "es"):
		stem := strings.TrimSuffix(token, "es")
		if r := []rune(stem); len(r) > 0 && strings.ContainsRune("lrndj", r[len(r)-1]) {
			return stem
		}
		return strings.TrimSuffix(token, "s")
	case strings.HasSuffix(token, "s"):
		stem := strings.TrimSuffix(token, "s")
		if r := []rune(stem); len(r) > 0 && strings.ContainsRune("aeiouáéó", r[len(r)-1]) {
			return stem
		}
	}
	return token
}
