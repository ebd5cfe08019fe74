package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	ServerPort      string `env:"SERVER_PORT" envDefault:"8080"`
	PayMatrixPath   string `env:"PAY_MATRIX_PATH"`
	ReportTitle     string `env:"REPORT_TITLE" envDefault:"Pension Scheme Calculator"`
	MaxRequestBytes int64  `env:"MAX_REQUEST_BYTES" envDefault:"1048576"`
	GinMode         string `env:"GIN_MODE" envDefault:"release"`
}

func defaultConfig() *Config {
	return &Config{
		ServerPort:      "8080",
		ReportTitle:     "Pension Scheme Calculator",
		MaxRequestBytes: 1 << 20, // 1 MB
		GinMode:         "release",
	}
}

func LoadConfig() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Printf("Failed to parse environment, using defaults: %v", err)
		return defaultConfig()
	}
	return cfg
}
