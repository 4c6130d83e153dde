package config

type Scheduler struct {
	// Spec is a cron expression; the default runs a sync at the top of every hour.
	Spec    string `env:"SYNC_SCHEDULE" envDefault:"0 * * * *"`
	Enabled bool   `env:"SYNC_SCHEDULE_ENABLED" envDefault:"true"`
}
