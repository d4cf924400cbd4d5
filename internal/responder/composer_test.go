package responder

import (
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

// fixedSource always returns the same index, clamped to the bank size.
type fixedSource int

func (f fixedSource) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func acme() *models.AnalysisResult {
	r := indicators.Evaluate(models.CompanyProfile{
		Name:             "Acme",
		Sector:           models.SectorTechnology,
		AnnualEarnings:   20_000_000,
		Employees:        10,
		Receivables:      5_000_000,
		TotalAssets:      100_000_000,
		TotalLiabilities: 70_000_000,
	})
	return &r
}

func cls(topic models.Topic) models.Classification {
	return models.Classification{Topic: topic}
}

// ==========================
// Phrase banks
// ==========================

func TestCompose_ConversationalUsesBank(t *testing.T) {
	for _, topic := range []models.Topic{models.TopicGreeting, models.TopicThanks, models.TopicFarewell} {
		bank := conversationalBank[topic]
		require.GreaterOrEqual(t, len(bank), 3)
		for i := range bank {
			got, err := New(fixedSource(i)).Compose(cls(topic), acme())
			require.NoError(t, err)
			assert.Equal(t, bank[i], got)
		}
	}
}

func TestCompose_OffTopicSubtypes(t *testing.T) {
	c := New(fixedSource(1))
	for kind, bank := range offTopicBank {
		require.GreaterOrEqual(t, len(bank), 3, kind)
		got, err := c.Compose(models.Classification{Topic: models.TopicOffTopic, OffTopic: kind}, nil)
		require.NoError(t, err)
		assert.Equal(t, bank[1], got)
	}

	got, err := c.Compose(cls(models.TopicOffTopic), nil)
	require.NoError(t, err)
	assert.Equal(t, offTopicBank[models.OffTopicOther][1], got, "missing subtype falls back to other")
}

func TestCompose_AnySelectionIsValid(t *testing.T) {
	c := New(rand.New(rand.NewSource(42)))
	for i := 0; i < 20; i++ {
		got, err := c.Compose(cls(models.TopicGreeting), nil)
		require.NoError(t, err)
		assert.Contains(t, conversationalBank[models.TopicGreeting], got)
	}
}

// ==========================
// Financial topics with a snapshot
// ==========================

func TestCompose_DebtWithSnapshot(t *testing.T) {
	got, err := New(fixedSource(0)).Compose(cls(models.TopicDebt), acme())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "📊 **Análisis de Endeudamiento**"))
	assert.Contains(t, got, "Tu ratio de endeudamiento es **0.70**, lo cual es considerado **alto** para el sector Tecnología.")
	assert.Contains(t, got, debtBands[2].Text)
	for _, a := range debtBands[2].Advice {
		assert.Contains(t, got, "• "+a)
	}
}

func TestCompose_FinancialIsDeterministic(t *testing.T) {
	for _, topic := range models.FinancialTopics {
		a, err := New(fixedSource(0)).Compose(cls(topic), acme())
		require.NoError(t, err)
		b, err := New(fixedSource(2)).Compose(cls(topic), acme())
		require.NoError(t, err)
		assert.Equal(t, a, b, topic)
	}
}

func TestCompose_FinancialValues(t *testing.T) {
	c := New(fixedSource(0))
	snap := acme()

	tests := []struct {
		topic models.Topic
		want  []string
	}{
		{models.TopicProfitability, []string{"**20.00%**", "considerada **buena**", profitabilityBands[2].Text}},
		{models.TopicProductivity, []string{"**$2,000,000 COP**", "considerada **baja**", productivityBands[0].Text}},
		{models.TopicReceivables, []string{"**91.2 días**", "considerada **alta**", turnoverBands[2].Text}},
		{models.TopicLiquidity, []string{"La relación entre tu cartera y tus deudas es de **0.07**.", liquidityBands[0].Text}},
	}
	for _, tt := range tests {
		t.Run(string(tt.topic), func(t *testing.T) {
			got, err := c.Compose(cls(tt.topic), snap)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, got, w)
			}
		})
	}
}

func TestCompose_BandBreakpoints(t *testing.T) {
	tests := []struct {
		name     string
		topic    models.Topic
		mutate   func(*models.AnalysisResult)
		wantBand band
	}{
		{"debt low", models.TopicDebt, func(r *models.AnalysisResult) { r.Indicators.DebtRatio = 0.39 }, debtBands[0]},
		{"debt middle", models.TopicDebt, func(r *models.AnalysisResult) { r.Indicators.DebtRatio = 0.4 }, debtBands[1]},
		{"debt zero", models.TopicDebt, func(r *models.AnalysisResult) { r.Indicators.DebtRatio = 0 }, debtBands[0]},
		{"roa middle", models.TopicProfitability, func(r *models.AnalysisResult) { r.Indicators.ReturnOnAssets = 0.05 }, profitabilityBands[1]},
		{"productivity aligned", models.TopicProductivity, func(r *models.AnalysisResult) { r.Indicators.ProductivityPerEmployee = 70_000_000 }, productivityBands[1]},
		{"productivity high", models.TopicProductivity, func(r *models.AnalysisResult) { r.Indicators.ProductivityPerEmployee = 120_000_000 }, productivityBands[2]},
		{"turnover fast", models.TopicReceivables, func(r *models.AnalysisResult) { r.Indicators.ReceivablesTurnoverDays = 29.9 }, turnoverBands[0]},
		{"turnover middle", models.TopicReceivables, func(r *models.AnalysisResult) { r.Indicators.ReceivablesTurnoverDays = 30 }, turnoverBands[1]},
		{"liquidity tight", models.TopicLiquidity, func(r *models.AnalysisResult) { r.Receivables = 80_000_000 }, liquidityBands[1]},
		{"liquidity solid", models.TopicLiquidity, func(r *models.AnalysisResult) { r.Receivables = 105_000_000 }, liquidityBands[2]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := acme()
			tt.mutate(snap)
			got, err := New(fixedSource(0)).Compose(cls(tt.topic), snap)
			require.NoError(t, err)
			assert.Contains(t, got, tt.wantBand.Text)
		})
	}
}

func TestCompose_InfiniteDebtRendersSymbol(t *testing.T) {
	r := indicators.Evaluate(models.CompanyProfile{Name: "Cero", Sector: models.SectorOther, Employees: 1})
	got, err := New(fixedSource(0)).Compose(cls(models.TopicDebt), &r)
	require.NoError(t, err)
	assert.Contains(t, got, "**∞**")
	assert.Contains(t, got, debtBands[2].Text)
}

func TestCompose_LiquidityWithoutDebts(t *testing.T) {
	snap := acme()
	snap.TotalLiabilities = 0
	got, err := New(fixedSource(0)).Compose(cls(models.TopicLiquidity), snap)
	require.NoError(t, err)
	assert.Contains(t, got, "liquidez **Alta**")
	assert.Contains(t, got, liquidityBands[2].Text)

	_, ok := LiquidityRatio(*snap)
	assert.False(t, ok)
}

// ==========================
// Without a snapshot
// ==========================

func TestCompose_FinancialWithoutSnapshot(t *testing.T) {
	for _, topic := range models.FinancialTopics {
		got, err := New(fixedSource(2)).Compose(cls(topic), nil)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(got, explanations[topic]), topic)
		assert.Contains(t, got, topicBank[topic][2])
		assert.True(t, strings.HasSuffix(got, registerHint))
	}
}

// ==========================
// General
// ==========================

func TestCompose_GeneralWithSnapshot(t *testing.T) {
	got, err := New(fixedSource(0)).Compose(models.Classification{
		Topic: models.TopicGeneral, Action: "saber", Subject: "patrimonio",
	}, acme())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "Entiendo que quieres saber sobre patrimonio. 📋 **Resumen Financiero de Acme**"))
	assert.Contains(t, got, "Estado económico general: **Regular**")
	assert.Contains(t, got, "• Ratio de endeudamiento: 0.70 (alto)")
	assert.Contains(t, got, "• Rotación de cartera: 91.2 días (alta)")
	assert.Contains(t, got, "3. Mejorar las políticas de cobro y gestión de cartera.")
}

func TestCompose_GeneralWithoutSnapshot(t *testing.T) {
	got, err := New(fixedSource(1)).Compose(cls(models.TopicGeneral), nil)
	require.NoError(t, err)
	assert.Equal(t, topicBank[models.TopicGeneral][1], got)

	got, err = New(fixedSource(1)).Compose(models.Classification{Topic: models.TopicGeneral, Action: "saber"}, nil)
	require.NoError(t, err)
	assert.Equal(t, topicBank[models.TopicGeneral][1], got, "prefix needs both verb and noun")
}

// ==========================
// Contract violations
// ==========================

func TestCompose_MalformedSnapshot(t *testing.T) {
	snap := acme()
	snap.Verdict.Debt = models.TierUnknown

	for _, topic := range []models.Topic{models.TopicDebt, models.TopicGreeting, models.TopicGeneral} {
		got, err := New(fixedSource(0)).Compose(cls(topic), snap)
		require.ErrorIs(t, err, ErrMalformedSnapshot)
		assert.Empty(t, got)
	}
}

func TestCompose_ConcurrentUse(t *testing.T) {
	c := New(rand.New(rand.NewSource(7)))
	snap := acme()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Compose(cls(models.TopicThanks), snap)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestWelcome(t *testing.T) {
	assert.Equal(t,
		"¡Hola! He analizado los datos de Acme. Puedes preguntarme sobre cualquier aspecto del análisis, como endeudamiento, rentabilidad, productividad o rotación de cartera.",
		Welcome(*acme()))
}
