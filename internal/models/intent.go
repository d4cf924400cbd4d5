package models

// Topic is the classified subject of a chat message.
type Topic string

const (
	TopicGreeting      Topic = "greeting"
	TopicThanks        Topic = "thanks"
	TopicFarewell      Topic = "farewell"
	TopicDebt          Topic = "debt"
	TopicProfitability Topic = "profitability"
	TopicProductivity  Topic = "productivity"
	TopicReceivables   Topic = "receivables"
	TopicLiquidity     Topic = "liquidity"
	TopicGeneral       Topic = "general"
	TopicOffTopic      Topic = "off_topic"
)

// FinancialTopics are the topics backed by an indicator, in the order their
// descriptors are compared.
var FinancialTopics = []Topic{TopicDebt, TopicProfitability, TopicProductivity, TopicReceivables, TopicLiquidity}

// IsFinancial reports whether the topic reads the analysis snapshot.
func (t Topic) IsFinancial() bool {
	switch t {
	case TopicDebt, TopicProfitability, TopicProductivity, TopicReceivables, TopicLiquidity:
		return true
	}
	return false
}

// IsConversational reports whether the topic is small talk.
func (t Topic) IsConversational() bool {
	return t == TopicGreeting || t == TopicThanks || t == TopicFarewell
}

// OffTopicKind refines TopicOffTopic.
type OffTopicKind string

const (
	OffTopicNone      OffTopicKind = ""
	OffTopicHelp      OffTopicKind = "help"
	OffTopicEmotional OffTopicKind = "emotional"
	OffTopicPersonal  OffTopicKind = "personal"
	OffTopicShort     OffTopicKind = "short"
	OffTopicOther     OffTopicKind = "other"
)

// Stage names the cascade step that decided a classification.
type Stage string

const (
	StagePrefilter  Stage = "prefilter"
	StageKeyword    Stage = "keyword"
	StageSimilarity Stage = "similarity"
	StageFallback   Stage = "fallback"
)

// Classification is the outcome of classifying one message.
type Classification struct {
	Topic    Topic        `json:"topic"`
	OffTopic OffTopicKind `json:"offTopic,omitempty"`
	Stage    Stage        `json:"stage"`
	Score    float64      `json:"score,omitempty"`
	Keyword  string       `json:"keyword,omitempty"`
	// Action and Subject are the first verb and the first noun of the
	// message, used to personalise general replies.
	Action  string `json:"action,omitempty"`
	Subject string `json:"subject,omitempty"`
}
