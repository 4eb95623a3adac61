// internal/workers/notifications/send-alert/config.go
package sendalert

import (
	"time"

	"procurement-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	ToEmail      string
	PhoneNumber  string
	AWSRegion    string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}

// ConfigFromNotifications builds the worker config from the shared
// notifications section.
func ConfigFromNotifications(notifications config.NotificationConfig) *Config {
	return &Config{
		EmailEnabled: notifications.Email.Enabled,
		SMSEnabled:   notifications.SMS.Enabled,
		FromEmail:    notifications.Email.FromEmail,
		ToEmail:      notifications.Email.ToEmail,
		PhoneNumber:  notifications.SMS.PhoneNumber,
		AWSRegion:    notifications.AWS.Region,
		Timeout:      30 * time.Second,
	}
}
