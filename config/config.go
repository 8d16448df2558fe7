package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Server configuration
	Server struct {
		// HTTP listen port
		Port int `env:"SERVER_PORT" envDefault:"5250"`

		// Comma-separated CORS origins allowed to call the API
		AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
	}

	// Database configuration
	Database struct {
		// Path to the sqlite database file
		Path string `env:"DATABASE_PATH" envDefault:"database/estatepulse.db"`
	}

	// Analytics engine defaults, overridable per request
	Analytics struct {
		// Number of entries in the top/underperforming lists
		RankingLimit int `env:"ANALYTICS_RANKING_LIMIT" envDefault:"5"`

		// Number of future periods projected by a forecast
		ForecastHorizon int `env:"ANALYTICS_FORECAST_HORIZON" envDefault:"12"`

		// Confidence percentage for forecast intervals (90, 95 or 99)
		ConfidenceLevel int `env:"ANALYTICS_CONFIDENCE_LEVEL" envDefault:"95"`
	}

	// BatchImport configuration
	BatchImport struct {
		// Queue buffer size in batches
		QueueSize int `env:"IMPORT_QUEUE_SIZE" envDefault:"10"`

		// Maximum number of retries for failed batches
		MaxRetries int `env:"IMPORT_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"IMPORT_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
