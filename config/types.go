package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`
}

// SearchConfig tunes the itinerary search stopover window
type SearchConfig struct {
	MinStopoverMinutes int `yaml:"minStopoverMinutes" validate:"gte=0"`
	MaxStopoverMinutes int `yaml:"maxStopoverMinutes" validate:"gte=0"`
}

// StorageConfig points at the snapshot database
type StorageConfig struct {
	Path string `yaml:"path"`
}

// IngestConfig points at the directory of CSV record files
type IngestConfig struct {
	DataDir string `yaml:"dataDir"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server  ServerConfig  `yaml:"server" validate:"required"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	Ingest  IngestConfig  `yaml:"ingest"`
}
