package intent

import (
	"finanzbot/internal/models"
	"finanzbot/internal/nlp"
)

// DefaultSimilarityThreshold is the score a descriptor must exceed to win
// the similarity stage.
const DefaultSimilarityThreshold = 0.1

// Options tune the cascade.
type Options struct {
	SimilarityThreshold float64
	// OffTopicFilter enables the pre-filter stage.
	OffTopicFilter bool
}

// DefaultOptions returns the production settings.
func DefaultOptions() Options {
	return Options{SimilarityThreshold: DefaultSimilarityThreshold, OffTopicFilter: true}
}

// Classifier holds only immutable options and is safe for concurrent use.
type Classifier struct {
	opts Options
}

func New(opts Options) *Classifier {
	return &Classifier{opts: opts}
}

var modalVerbs = map[string]bool{
	"querer":    true,
	"poder":     true,
	"necesitar": true,
	"deber":     true,
	"gustar":    true,
}

// Classify assigns a topic to msg. The first stage that decides wins.
func (c *Classifier) Classify(msg string) models.Classification {
	if c.opts.OffTopicFilter {
		if result, ok := prefilter(msg); ok {
			return result
		}
	}

	folded := nlp.Fold(msg)
	if r, kw, ok := matchRules(folded, rules); ok {
		return models.Classification{Topic: r.Topic, Stage: models.StageKeyword, Keyword: kw}
	}

	best, bestScore := models.Topic(""), 0.0
	for _, d := range descriptors {
		if score := nlp.Similarity(folded, d.Text); score > bestScore {
			best, bestScore = d.Topic, score
		}
	}
	if bestScore > c.opts.SimilarityThreshold {
		return models.Classification{Topic: best, Stage: models.StageSimilarity, Score: bestScore}
	}

	result := models.Classification{Topic: models.TopicGeneral, Stage: models.StageFallback, Score: bestScore}
	result.Action, result.Subject = focus(msg)
	return result
}

// focus extracts the lemma of the first non-modal verb and the first noun.
func focus(msg string) (action, subject string) {
	for _, t := range nlp.PosTag(msg) {
		switch t.Tag {
		case nlp.TagVerb:
			if action == "" {
				if lemma := nlp.Lemma(t.Token); !modalVerbs[lemma] {
					action = lemma
				}
			}
		case nlp.TagNoun, nlp.TagPropn:
			if subject == "" {
				subject = t.Token
			}
		}
	}
	return action, subject
}
