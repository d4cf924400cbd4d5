// internal/workers/analysis/load-company-profile/config.go
package loadcompanyprofile

import (
	"time"

	"finanzbot/internal/common/config"
)

type Config struct {
	Timeout time.Duration
}

// LoadConfig reads the worker's section of the application config.
func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	return &Config{
		Timeout: config.GetDuration(wcfg.Timeout),
	}
}
