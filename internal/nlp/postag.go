package nlp

import (
	"strings"
	"unicode"
)

// Tag is a universal part-of-speech category.
type Tag string

const (
	TagVerb  Tag = "VERB"
	TagAux   Tag = "AUX"
	TagNoun  Tag = "NOUN"
	TagPropn Tag = "PROPN"
	TagAdj   Tag = "ADJ"
	TagAdv   Tag = "ADV"
	TagDet   Tag = "DET"
	TagAdp   Tag = "ADP"
	TagPron  Tag = "PRON"
	TagCconj Tag = "CCONJ"
	TagSconj Tag = "SCONJ"
	TagNum   Tag = "NUM"
	TagPunct Tag = "PUNCT"
	TagIntj  Tag = "INTJ"
	TagX     Tag = "X"
)

// TaggedToken pairs a lowercase token with its category.
type TaggedToken struct {
	Token string `json:"token"`
	Tag   Tag    `json:"tag"`
}

func lexicon(tag Tag, words string, into map[string]Tag) {
	for _, w := range strings.Fields(words) {
		into[w] = tag
	}
}

// closedClass holds function words plus the open-class words suffix rules
// get wrong. Later entries win.
var closedClass = func() map[string]Tag {
	m := make(map[string]Tag)
	lexicon(TagDet, `el la los las lo un una unos unas este esta estos estas ese esa esos esas
		aquel aquella mi mis tu tus su sus nuestro nuestra nuestros nuestras cada todo toda todos todas
		algún alguno alguna algunos algunas otro otra otros otras poco poca pocos pocas mucho mucha
		muchos muchas cuánto cuánta cuántos cuántas varios varias ningún ninguna cualquier`, m)
	lexicon(TagAdp, `a al ante bajo con contra de del desde durante en entre hacia hasta mediante
		para por según sin sobre tras`, m)
	lexicon(TagPron, `yo tú él ella ellos ellas nosotros nosotras usted ustedes me te se nos os le les
		qué quién quiénes cuál cuáles esto eso aquello algo nada alguien nadie`, m)
	lexicon(TagCconj, `y e o u ni pero sino`, m)
	lexicon(TagSconj, `que si porque aunque cuando mientras pues como`, m)
	lexicon(TagAux, `es son soy eres somos era eran fue fueron ser sido sea está están estoy estás
		estamos estaba estar esté ha he has han hemos había haber`, m)
	lexicon(TagAdv, `no sí muy más menos bien mal ya también tampoco siempre nunca aquí allí ahora
		hoy ayer cómo dónde cuándo tan tanto solo sólo casi bastante demasiado todavía aún luego`, m)
	lexicon(TagIntj, `hola adiós chao ok vale hey ah oh uy bye gracias`, m)
	lexicon(TagNum, `uno dos tres cuatro cinco seis siete ocho nueve diez cien mil millón millones`, m)
	lexicon(TagAdj, `bueno buena buenos buenas malo mala malos malas alto alta altos altas grande grandes
		pequeño pequeña nuevo nueva mejor mejores peor peores financiero financiera financieros
		financieras económico económica disponible actual general baja bajos bajas primer`, m)
	lexicon(TagVerb, `tengo tienes tiene tenemos tienen voy vas va vamos van hago hace hacen puedo puedes
		puede podemos pueden podría quiero quieres quiere queremos quieren quisiera sé sabe saben hay
		digo dice dime doy da dame veo ve debo debe debemos debería necesito necesita necesitamos
		gustaría entiendo explica explícame cuéntame ayúdame significa recomiendas recomienda calcula
		analiza mejoro`, m)
	lexicon(TagNoun, `empresa negocio dinero efectivo caja cartera deuda deudas pasivo pasivos activo activos
		empleado empleados trabajador trabajadores personal estado resultado resultados mercado
		periodo período partido lugar hogar mujer taller alquiler patrimonio capital crédito créditos
		cliente clientes factura facturas flujo liquidez solvencia rentabilidad productividad
		endeudamiento rotación margen ganancia ganancias beneficio beneficios rendimiento ayuda
		sector indicador indicadores análisis pago pagos cobro cobros préstamo préstamos dólar dólares`, m)
	return m
}()

var adjSuffixes = []string{"ble", "bles", "oso", "osa", "osos", "osas", "ivo", "iva", "ivos", "ivas", "ico", "ica", "icos", "icas", "ante", "antes"}

var verbFormSuffixes = []string{"ar", "er", "ir", "ando", "iendo", "amos", "emos", "imos", "aron", "ieron"}

// PosTag assigns a category to every token of text. Tags come from the
// closed-class lexicon first, then suffix rules; capitalised words that do
// not open a sentence are proper nouns; remaining words are nouns.
func PosTag(text string) []TaggedToken {
	raw := split(text)
	out := make([]TaggedToken, 0, len(raw))
	sentenceStart := true
	prev := TagX
	for _, t := range raw {
		lower := strings.ToLower(t.text)
		tag := tagToken(t, lower, sentenceStart, prev)
		out = append(out, TaggedToken{Token: lower, Tag: tag})
		prev = tag
		sentenceStart = t.punct && strings.ContainsAny(t.text, ".!?¿¡:;")
	}
	return out
}

func tagToken(t rawToken, lower string, sentenceStart bool, prev Tag) Tag {
	if t.punct {
		return TagPunct
	}
	if isNumber(lower) {
		return TagNum
	}
	if !sentenceStart && startsUpper(t.text) {
		if _, known := closedClass[lower]; !known {
			return TagPropn
		}
	}
	if tag, ok := closedClass[lower]; ok {
		return tag
	}
	if strings.HasSuffix(lower, "mente") && len(lower) > 6 {
		return TagAdv
	}
	if prev == TagAux && hasAnySuffix(lower, "ado", "ada", "ido", "ida") {
		return TagVerb
	}
	if len([]rune(lower)) > 3 && hasAnySuffix(lower, verbFormSuffixes...) {
		return TagVerb
	}
	if hasAnySuffix(lower, adjSuffixes...) {
		return TagAdj
	}
	if !isAlpha(lower) {
		return TagX
	}
	return TagNoun
}

func isNumber(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '.' || r == ',':
		default:
			return false
		}
	}
	return digits > 0
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// FirstOf returns the first token carrying one of tags, or "".
func FirstOf(tagged []TaggedToken, tags ...Tag) string {
	for _, t := range tagged {
		for _, want := range tags {
			if t.Tag == want {
				return t.Token
			}
		}
	}
	return ""
}
