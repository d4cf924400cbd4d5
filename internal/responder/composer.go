// Package responder turns a classified message and the session's analysis
// snapshot into a reply with lightweight markdown.
package responder

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
)

// ErrMalformedSnapshot is returned when the snapshot handed to Compose does
// not satisfy AnalysisResult.Validate.
var ErrMalformedSnapshot = errors.New("malformed analysis snapshot")

// Source picks phrase-bank entries. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Composer is stateless apart from its random source and is safe for
// concurrent use.
type Composer struct {
	mu  sync.Mutex
	src Source
}

// New returns a composer drawing from src, or from a time-seeded source
// when src is nil.
func New(src Source) *Composer {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Composer{src: src}
}

func (c *Composer) pick(bank []string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return bank[c.src.Intn(len(bank))]
}

// Compose builds the reply for one message. snapshot may be nil.
func (c *Composer) Compose(cls models.Classification, snapshot *models.AnalysisResult) (string, error) {
	if snapshot != nil {
		if err := snapshot.Validate(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
		}
	}

	switch {
	case cls.Topic == models.TopicOffTopic:
		bank, ok := offTopicBank[cls.OffTopic]
		if !ok {
			bank = offTopicBank[models.OffTopicOther]
		}
		return c.pick(bank), nil

	case cls.Topic.IsConversational():
		return c.pick(conversationalBank[cls.Topic]), nil

	case cls.Topic.IsFinancial() && snapshot != nil:
		return financialReply(cls.Topic, *snapshot), nil

	case cls.Topic.IsFinancial():
		return explanations[cls.Topic] + "\n\n" + c.pick(topicBank[cls.Topic]) + "\n\n" + registerHint, nil
	}

	prefix := ""
	if cls.Action != "" && cls.Subject != "" {
		prefix = fmt.Sprintf("Entiendo que quieres %s sobre %s. ", cls.Action, cls.Subject)
	}
	if snapshot != nil {
		return prefix + Summary(*snapshot), nil
	}
	return prefix + c.pick(topicBank[models.TopicGeneral]), nil
}

func financialReply(topic models.Topic, r models.AnalysisResult) string {
	headline, b := interpret(topic, r)

	var sb strings.Builder
	sb.WriteString(headline)
	sb.WriteString("\n\n")
	sb.WriteString(b.Text)
	sb.WriteString("\n\n**Recomendaciones:**\n")
	for _, a := range b.Advice {
		sb.WriteString("• ")
		sb.WriteString(a)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Summary renders the overall status, the four indicators and the
// recommendations of an analysis.
func Summary(r models.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 **Resumen Financiero de %s**\n\n", r.CompanyName)
	fmt.Fprintf(&sb, "Estado económico general: **%s** (sector %s)\n\n", r.Status.Label(), r.Sector.Label())
	for _, line := range indicators.IndicatorLines(r) {
		sb.WriteString("• ")
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(r.Recommendations) > 0 {
		sb.WriteString("\n**Recomendaciones:**\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, rec)
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// Welcome is the assistant turn recorded after a new analysis.
func Welcome(r models.AnalysisResult) string {
	return fmt.Sprintf("¡Hola! He analizado los datos de %s. Puedes preguntarme sobre cualquier aspecto del análisis, "+
		"como endeudamiento, rentabilidad, productividad o rotación de cartera.", r.CompanyName)
}
