// internal/workers/chat/compose-reply/config.go
package composereply

import (
	"time"

	"finanzbot/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// RenderHTML adds an HTML rendering of the reply to the job output.
	RenderHTML bool
}

func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout:    config.GetDuration(wcfg.Timeout),
		RenderHTML: true,
	}
}
