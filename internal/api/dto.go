package api

import (
	"fmt"

	"finanzbot/internal/indicators"
	"finanzbot/internal/models"
	"finanzbot/internal/nlp"
)

type messageRequest struct {
	Message string `json:"message"`
}

type sessionResponse struct {
	SessionID string `json:"sessionId"`
}

type analysisResponse struct {
	Analysis models.AnalysisResult `json:"analysis"`
	Report   string                `json:"report"`
	Scores   indicators.ScoreCard  `json:"scores"`
	NLP      nlpDetails            `json:"nlp"`
}

// nlpDetails shows how the featurizer sees the submitted company.
type nlpDetails struct {
	Tokens       []string          `json:"tokens"`
	Lemmas       []string          `json:"lemmas"`
	PosTags      []nlp.TaggedToken `json:"posTags"`
	Keywords     []string          `json:"keywords"`
	EmbeddingDim int               `json:"embeddingDim"`
}

func newNLPDetails(p models.CompanyProfile) nlpDetails {
	sector := p.Sector.Label()
	description := fmt.Sprintf("Empresa %s del sector %s con %d empleados", p.Name, sector, p.Employees)
	return nlpDetails{
		Tokens:       nlp.Tokenize(p.Name),
		Lemmas:       nlp.Lemmatize(sector),
		PosTags:      nlp.PosTag(fmt.Sprintf("%s es una empresa del sector %s", p.Name, sector)),
		Keywords:     nlp.Keywords(description, 3),
		EmbeddingDim: len(nlp.Vectorize(description)),
	}
}

type replyResponse struct {
	Reply   string              `json:"reply"`
	Topic   models.Topic        `json:"topic"`
	Subtype models.OffTopicKind `json:"subtype,omitempty"`
	Stage   models.Stage        `json:"stage"`
	HTML    string              `json:"html,omitempty"`
}

type historyResponse struct {
	SessionID string                    `json:"sessionId"`
	Turns     []models.ConversationTurn `json:"turns"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}
