package config

import "time"

// Feed configures the external content source. All values are opaque to the
// client; they are spliced into the entries URL as-is.
type Feed struct {
	BaseURL     string        `env:"FEED_BASE_URL" envDefault:"https://cdn.contentful.com"`
	SpaceID     string        `env:"FEED_SPACE_ID,required"`
	Environment string        `env:"FEED_ENVIRONMENT" envDefault:"master"`
	AccessToken string        `env:"FEED_ACCESS_TOKEN,required"`
	ContentType string        `env:"FEED_CONTENT_TYPE,required"`
	Timeout     time.Duration `env:"FEED_TIMEOUT" envDefault:"30s"`
}
