// internal/workers/notification/send-analysis-report/config.go
package sendanalysisreport

import (
	"time"

	"finanzbot/internal/common/config"
)

type Config struct {
	EmailEnabled  bool
	AlertsEnabled bool
	FromEmail     string
	AlertTopicARN string
	AWSRegion     string
	Timeout       time.Duration
}

func LoadConfig(cfg *config.Config) *Config {
	wcfg := config.GetWorkerConfig(cfg, TaskType)
	n := cfg.Notification
	return &Config{
		EmailEnabled:  n.EmailEnabled,
		AlertsEnabled: n.AlertsEnabled,
		FromEmail:     n.SenderEmail,
		AlertTopicARN: n.AlertTopicARN,
		AWSRegion:     n.Region,
		Timeout:       config.GetDuration(wcfg.Timeout),
	}
}
