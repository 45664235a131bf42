package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/internfinder/internfinder/internal/config"
)

func TestCORSConfigAllowsCredentialsForAllowList(t *testing.T) {
	cfg := &config.Config{}
	cfg.CORS.AllowedOrigins = []string{"https://app.internfinder.dev"}

	corsConfig := corsConfigFor(cfg)

	assert.True(t, corsConfig.AllowCredentials)
	assert.Equal(t, []string{"https://app.internfinder.dev"}, corsConfig.AllowOrigins)
	assert.Contains(t, corsConfig.AllowHeaders, "Authorization")
}
