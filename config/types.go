package config

// GTFSConfig points at the static schedule sources. The remote bundle is
// only attempted when the API key environment variable is set; otherwise the
// locally bundled copy is used directly.
type GTFSConfig struct {
	StaticURL     string `yaml:"staticURL" validate:"omitempty,url"`
	LocalZipPath  string `yaml:"localZipPath"`
	CacheTTLHours int    `yaml:"cacheTTLHours" validate:"gte=0"`
}

// GTFSRTConfig points at the realtime TripUpdates feed.
type GTFSRTConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ScraperConfig points at the secondary scraped delay source.
type ScraperConfig struct {
	StatusURL string `yaml:"statusURL" validate:"omitempty,url"`
}

// ResolverConfig bounds the result set.
type ResolverConfig struct {
	Limit int `yaml:"limit" validate:"gte=0"`
}

// AppConfig is the root configuration structure.
type AppConfig struct {
	GTFS     GTFSConfig     `yaml:"gtfs"`
	GTFSRT   GTFSRTConfig   `yaml:"gtfsrt"`
	Scraper  ScraperConfig  `yaml:"scraper"`
	Resolver ResolverConfig `yaml:"resolver"`
}
