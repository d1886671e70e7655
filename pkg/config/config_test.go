package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	cfg := fromViper(v)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.True(t, cfg.Features.Store)
	assert.True(t, cfg.Features.Quizzes)
	assert.True(t, cfg.Features.Jobs)
	assert.Equal(t, int64(5*1024*1024), cfg.Uploads.MaxImageBytes)
	assert.Equal(t, int64(10*1024*1024), cfg.Uploads.MaxResumeBytes)
	assert.Equal(t, 10, cfg.RateLimit.AuthLimit)
	assert.Empty(t, cfg.Redis.Host)
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("ENABLE_JOBS", false)
	v.Set("JWT_EXPIRATION", "not-a-duration")
	v.Set("ALLOWED_ORIGINS", " https://a.test, ,https://b.test ")
	cfg := fromViper(v)

	assert.False(t, cfg.Features.Jobs)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiration)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORS.AllowedOrigins)
}
