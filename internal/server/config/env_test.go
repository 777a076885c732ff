package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv_OverlaysSetVariables(t *testing.T) {
	t.Setenv("DATABASE_DSN", "postgres://env/booksum")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("S3_BASE_ENDPOINT", "http://minio:9000/")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, "postgres://env/booksum", c.DatabaseDSN)
	assert.Equal(t, "sk-env", c.OpenAIAPIKey)
	assert.Equal(t, "http://minio:9000/", c.S3BaseEndpoint)

	// untouched fields keep their defaults
	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "gpt-4", c.OpenAIModel)
}

func TestParseEnv_EmptyVariablesLeaveDefaults(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	t.Setenv("S3_BUCKET", "")

	var c Config
	c.LoadDefaults()
	before := c
	parseEnv(&c)

	assert.Equal(t, before.SecretKey, c.SecretKey)
	assert.Equal(t, before.S3Bucket, c.S3Bucket)
}
