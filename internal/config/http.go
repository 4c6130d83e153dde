package config

type HTTP struct {
	Port uint32 `env:"HTTP_PORT" envDefault:"8000"`

	// MaxPageSize caps the limit parameter on product listings. Enforced at
	// the HTTP boundary, not in the query engine.
	MaxPageSize int `env:"HTTP_MAX_PAGE_SIZE" envDefault:"5"`
}
