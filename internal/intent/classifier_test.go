package intent

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/models"
)

func TestClassify_Cascade(t *testing.T) {
	c := New(DefaultOptions())

	tests := []struct {
		name    string
		message string
		topic   models.Topic
		kind    models.OffTopicKind
		stage   models.Stage
	}{
		{"exact greeting", "Hola, buenos días", models.TopicGreeting, models.OffTopicNone, models.StagePrefilter},
		{"exact farewell", "¡Adiós!", models.TopicFarewell, models.OffTopicNone, models.StagePrefilter},
		{"help request", "ayuda", models.TopicOffTopic, models.OffTopicHelp, models.StagePrefilter},
		{"emotional", "estoy muy triste hoy", models.TopicOffTopic, models.OffTopicEmotional, models.StagePrefilter},
		{"personal", "¿quién ganó el partido de fútbol?", models.TopicOffTopic, models.OffTopicPersonal, models.StagePrefilter},
		{"too short", "ok", models.TopicOffTopic, models.OffTopicShort, models.StagePrefilter},
		{"unrelated", "cuéntame un dato curioso sobre historia", models.TopicOffTopic, models.OffTopicOther, models.StagePrefilter},
		{"single financial word", "deuda", models.TopicDebt, models.OffTopicNone, models.StageKeyword},
		{"debt question", "¿Cómo está mi endeudamiento?", models.TopicDebt, models.OffTopicNone, models.StageKeyword},
		{"thanks passes the filter", "Gracias por la ayuda", models.TopicThanks, models.OffTopicNone, models.StageKeyword},
		{"financial overrides emotional", "me siento triste por las deudas", models.TopicDebt, models.OffTopicNone, models.StageKeyword},
		{"accents are ignored", "¿Qué tal la rotación?", models.TopicGreeting, models.OffTopicNone, models.StageKeyword},
		{"profitability", "quiero mejorar la rentabilidad", models.TopicProfitability, models.OffTopicNone, models.StageKeyword},
		{"productivity", "¿son productivos mis empleados?", models.TopicProductivity, models.OffTopicNone, models.StageKeyword},
		{"receivables", "mis clientes pagan tarde las facturas", models.TopicReceivables, models.OffTopicNone, models.StageKeyword},
		{"liquidity", "¿tengo suficiente efectivo?", models.TopicLiquidity, models.OffTopicNone, models.StageKeyword},
		{"similarity liquidity", "tengo poco dinero disponible para pagar", models.TopicLiquidity, models.OffTopicNone, models.StageSimilarity},
		{"similarity debt", "tengo muchas obligaciones financieras", models.TopicDebt, models.OffTopicNone, models.StageSimilarity},
		{"general fallback", "quiero saber sobre el patrimonio de la empresa", models.TopicGeneral, models.OffTopicNone, models.StageFallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.message)
			assert.Equal(t, tt.topic, got.Topic)
			assert.Equal(t, tt.kind, got.OffTopic)
			assert.Equal(t, tt.stage, got.Stage)
		})
	}
}

// Open conversational questions without any financial stem are treated as
// off topic rather than reaching the general summary.
func TestClassify_VagueQuestionsAreOffTopic(t *testing.T) {
	c := New(DefaultOptions())
	for _, msg := range []string{"¿qué opinas de mi situación?", "explícame cómo va todo"} {
		got := c.Classify(msg)
		assert.Equal(t, models.TopicOffTopic, got.Topic, msg)
		assert.Equal(t, models.OffTopicOther, got.OffTopic, msg)
		assert.Equal(t, models.StagePrefilter, got.Stage, msg)
	}

	got := c.Classify("¿qué opinas de mi empresa?")
	assert.NotEqual(t, models.TopicOffTopic, got.Topic, "a financial stem lets the message through")
}

func TestClassify_KeywordPriority(t *testing.T) {
	c := New(DefaultOptions())

	// greeting outranks every financial list when both match
	got := c.Classify("hola, tengo una deuda")
	assert.Equal(t, models.TopicGreeting, got.Topic)
	assert.Equal(t, "hola", got.Keyword)

	// debt is checked before liquidity
	got = c.Classify("la deuda afecta mi caja")
	assert.Equal(t, models.TopicDebt, got.Topic)
	assert.Equal(t, "deuda", got.Keyword)
}

func TestClassify_SimilarityScores(t *testing.T) {
	c := New(DefaultOptions())

	got := c.Classify("tengo poco dinero disponible para pagar")
	assert.InDelta(t, 1/math.Sqrt(48), got.Score, 1e-9)

	got = c.Classify("tengo muchas obligaciones financieras")
	assert.InDelta(t, 2/(2*math.Sqrt(7)), got.Score, 1e-9)
}

func TestClassify_ThresholdIsConfigurable(t *testing.T) {
	c := New(Options{SimilarityThreshold: 0.2, OffTopicFilter: true})

	got := c.Classify("tengo poco dinero disponible para pagar")
	assert.Equal(t, models.TopicGeneral, got.Topic)
	assert.Equal(t, models.StageFallback, got.Stage)
}

func TestClassify_GeneralCarriesFocus(t *testing.T) {
	c := New(DefaultOptions())

	got := c.Classify("quiero saber sobre el patrimonio de la empresa")
	require.Equal(t, models.TopicGeneral, got.Topic)
	assert.Equal(t, "saber", got.Action, "modal verbs are skipped")
	assert.Equal(t, "patrimonio", got.Subject)
}

func TestClassify_WithoutPrefilter(t *testing.T) {
	c := New(Options{SimilarityThreshold: DefaultSimilarityThreshold})

	got := c.Classify("estoy muy triste hoy")
	assert.Equal(t, models.TopicGeneral, got.Topic)

	got = c.Classify("Hola, buenos días")
	assert.Equal(t, models.TopicGreeting, got.Topic)
	assert.Equal(t, models.StageKeyword, got.Stage)

	got = c.Classify("cuéntame un dato curioso sobre historia")
	assert.Equal(t, models.TopicGeneral, got.Topic)
	assert.Equal(t, "contar", got.Action)
	assert.Equal(t, "dato", got.Subject)
}

func TestRules_OrderAndCopy(t *testing.T) {
	table := Rules()
	order := make([]models.Topic, len(table))
	for i, r := range table {
		order[i] = r.Topic
	}
	assert.Equal(t, []models.Topic{
		models.TopicGreeting, models.TopicThanks, models.TopicFarewell,
		models.TopicDebt, models.TopicProfitability, models.TopicProductivity,
		models.TopicReceivables, models.TopicLiquidity,
	}, order)

	table[0].Keywords[0] = "changed"
	assert.Equal(t, "hola", Rules()[0].Keywords[0])

	descs := Descriptors()
	require.Len(t, descs, len(models.FinancialTopics))
	for i, d := range descs {
		assert.Equal(t, models.FinancialTopics[i], d.Topic)
	}
}

func TestClassify_Concurrent(t *testing.T) {
	c := New(DefaultOptions())
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, models.TopicLiquidity, c.Classify("tengo poco dinero disponible para pagar").Topic)
		}()
	}
	wg.Wait()
}
