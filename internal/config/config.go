// Package config provides runtime configuration values for the service.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds configuration knobs for the HTTP server, checkout rules,
// receipt delivery, and the mail worker pool.
type Config struct {
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`

	AdminToken string `envconfig:"ADMIN_TOKEN"`
	AdminEmail string `envconfig:"ADMIN_EMAIL" default:"orders@sibabeauty.example"`

	DeliveryFeeCents           int64 `envconfig:"DELIVERY_FEE_CENTS" default:"8000"`
	FreeDeliveryThresholdCents int64 `envconfig:"FREE_DELIVERY_THRESHOLD_CENTS" default:"50000"`

	SendGridAPIKey string `envconfig:"SENDGRID_API_KEY"`
	MailFrom       string `envconfig:"MAIL_FROM" default:"no-reply@sibabeauty.example"`
	MailFromName   string `envconfig:"MAIL_FROM_NAME" default:"Siba Beauty"`

	InitialWorkerCount      int           `envconfig:"WORKER_COUNT" default:"2"`
	WorkerMin               int           `envconfig:"WORKER_MIN" default:"2"`
	WorkerMax               int           `envconfig:"WORKER_MAX" default:"6"`
	ScaleInterval           time.Duration `envconfig:"SCALE_INTERVAL" default:"500ms"`
	ScaleUpBacklogPerWorker int           `envconfig:"SCALE_UP_BACKLOG_PER_WORKER" default:"50"`
	ScaleDownIdleTicks      int           `envconfig:"SCALE_DOWN_IDLE_TICKS" default:"6"`
	QueueHighWatermark      int           `envconfig:"QUEUE_HIGH_WATERMARK" default:"1000"`
	MailQueueBuffer         int           `envconfig:"MAIL_QUEUE_BUFFER" default:"64"`
}

// Load collects configuration from environment with defaults.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
