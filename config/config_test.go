package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 5250, cfg.Server.Port)
	assert.Equal(t, "database/estatepulse.db", cfg.Database.Path)
	assert.Equal(t, 5, cfg.Analytics.RankingLimit)
	assert.Equal(t, 12, cfg.Analytics.ForecastHorizon)
	assert.Equal(t, 95, cfg.Analytics.ConfidenceLevel)
	assert.Equal(t, 3, cfg.BatchImport.MaxRetries)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("ANALYTICS_RANKING_LIMIT", "10")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://dashboard.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Analytics.RankingLimit)
	assert.Equal(t, []string{"http://localhost:3000", "https://dashboard.example.com"}, cfg.Server.AllowedOrigins)
}
