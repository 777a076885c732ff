package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "production", c.Env)
	assert.Equal(t, "", c.DatabaseDSN)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, "gpt-4", c.OpenAIModel)
	assert.Equal(t, "", c.OpenAIAPIKey)
	assert.Equal(t, "admin", c.S3RootUser)
	assert.Equal(t, "secretpassword", c.S3RootPassword)
	assert.Equal(t, "booksum", c.S3Bucket)
	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "", c.S3BaseEndpoint)
	assert.Equal(t, "assets/placeholder-audio.wav", c.S3AudioObjectKey)

	assert.False(t, c.DatabaseConfigured())
	assert.False(t, c.StorageConfigured())
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	t.Setenv("ADDRESS", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("OPENAI_MODEL", "")

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "secretKey", c.SecretKey)
	assert.Equal(t, "gpt-4", c.OpenAIModel)
}

func TestConfigured_Flags(t *testing.T) {
	var c Config
	c.LoadDefaults()

	c.DatabaseDSN = "postgres://localhost/booksum"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"

	assert.True(t, c.DatabaseConfigured())
	assert.True(t, c.StorageConfigured())
}
