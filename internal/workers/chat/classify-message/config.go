// internal/workers/chat/classify-message/config.go
package classifymessage

import (
	"time"

	"finanzbot/internal/common/config"
	"finanzbot/internal/intent"
)

type Config struct {
	Timeout    time.Duration
	Classifier intent.Options
}

func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
		Classifier: intent.Options{
			SimilarityThreshold: cfg.Classifier.SimilarityThreshold,
			OffTopicFilter:      cfg.Classifier.OffTopicFilter,
		},
	}
}
