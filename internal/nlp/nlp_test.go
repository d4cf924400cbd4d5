package nlp

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Normalization
// ==========================

func TestFold(t *testing.T) {
	assert.Equal(t, "¿como esta mi endeudamiento?", Fold("¿Cómo está mi ENDEUDAMIENTO?"))
	assert.Equal(t, "manana", Fold("mañana"))
	assert.Equal(t, "financiacion 2024", Fold("Financiación 2024"))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hola, buenos días", "hola buenos dias"},
		{"  ¡¡Adiós!!  ", "adios"},
		{"Tengo 3 préstamos", "tengo prestamos"},
		{"Tecnología", "tecnologia"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), tt.in)
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 1, WordCount("ok"))
	assert.Equal(t, 3, WordCount("tengo  poco dinero"))
}

// ==========================
// Tokenize / Lemmatize / PosTag
// ==========================

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"¿", "cómo", "está", "mi", "endeudamiento", "?"},
		Tokenize("¿Cómo está mi endeudamiento?"))
	assert.Equal(t, []string{"el", "ratio", "es", "0.45", "."}, Tokenize("El ratio es 0.45."))
	assert.Empty(t, Tokenize(""))
}

func TestLemmatize(t *testing.T) {
	assert.Equal(t,
		[]string{"tener", "mucho", "deuda", "y", "obligación", "financiera"},
		Lemmatize("Tengo muchas deudas y obligaciones financieras"))

	tests := map[string]string{
		"clientes":     "cliente",
		"trabajadores": "trabajador",
		"empleados":    "empleado",
		"ganancias":    "ganancia",
		"análisis":     "análisis",
		"cuando":       "cuando",
		"pagando":      "pagar",
		"invertimos":   "invertir",
		"últimos":      "último",
		"veces":        "vez",
		"quiero":       "querer",
		"está":         "estar",
	}
	for in, want := range tests {
		assert.Equal(t, want, Lemma(in), in)
	}
}

func TestPosTag(t *testing.T) {
	tagged := PosTag("quiero saber sobre el patrimonio de la empresa")
	require.Len(t, tagged, 8)
	assert.Equal(t, TaggedToken{"quiero", TagVerb}, tagged[0])
	assert.Equal(t, TaggedToken{"saber", TagVerb}, tagged[1])
	assert.Equal(t, TagAdp, tagged[2].Tag)
	assert.Equal(t, TagDet, tagged[3].Tag)
	assert.Equal(t, TaggedToken{"patrimonio", TagNoun}, tagged[4])
	assert.Equal(t, TagNoun, tagged[7].Tag)

	assert.Equal(t, "quiero", FirstOf(tagged, TagVerb))
	assert.Equal(t, "patrimonio", FirstOf(tagged, TagNoun, TagPropn))
	assert.Equal(t, "", FirstOf(tagged, TagIntj))
}

func TestPosTag_ProperNounsAndPunctuation(t *testing.T) {
	tagged := PosTag("¿Cómo está Acme? Trabajamos en Bogotá.")
	tags := make([]Tag, len(tagged))
	for i, tt := range tagged {
		tags[i] = tt.Tag
	}
	assert.Equal(t, []Tag{
		TagPunct, TagAdv, TagAux, TagPropn, TagPunct,
		TagVerb, TagAdp, TagPropn, TagPunct,
	}, tags)
	assert.Equal(t, "acme", tagged[3].Token)
}

func TestPosTag_SuffixRules(t *testing.T) {
	tests := map[string]Tag{
		"rápidamente": TagAdv,
		"rentable":    TagAdj,
		"pagar":       TagVerb,
		"150":         TagNum,
		"inventario":  TagNoun,
	}
	for word, want := range tests {
		tagged := PosTag(word)
		require.Len(t, tagged, 1)
		assert.Equal(t, want, tagged[0].Tag, word)
	}
}

// ==========================
// Similarity
// ==========================

func TestSimilarity(t *testing.T) {
	liquidity := "liquidez efectivo caja flujo dinero solvencia corto plazo"

	got := Similarity("tengo poco dinero disponible para pagar", liquidity)
	assert.InDelta(t, 1/math.Sqrt(48), got, 1e-9)

	assert.InDelta(t, 1.0, Similarity("deuda deuda", "Deuda"), 1e-9)
	assert.Zero(t, Similarity("hola", liquidity))
	assert.Zero(t, Similarity("", liquidity))
	assert.Zero(t, Similarity("a y o", "a y o"), "single-character tokens are ignored")
}

func TestSimilarity_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"margen margen utilidad", "beneficios ganancias rentabilidad margen utilidad"},
		{"clientes facturas", "cartera cobros creditos clientes facturas cuentas por cobrar"},
		{"x", "y"},
	}
	for _, p := range pairs {
		s := Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
		assert.Equal(t, s, Similarity(p[1], p[0]), "similarity is symmetric")
	}
}

func TestSimilarity_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.InDelta(t, 1/math.Sqrt(48), Similarity("tengo poco dinero disponible para pagar", "liquidez efectivo caja flujo dinero solvencia corto plazo"), 1e-9)
		}()
	}
	wg.Wait()
}

// ==========================
// Keywords
// ==========================

func TestKeywords(t *testing.T) {
	got := Keywords("La deuda de la empresa crece y la deuda preocupa a la empresa", 3)
	assert.Equal(t, []string{"deuda", "empresa", "crece"}, got)
	assert.Nil(t, Keywords("deuda", 0))
	assert.Empty(t, Keywords("de la y", 5))
}
