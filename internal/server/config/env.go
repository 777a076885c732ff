package config

import "os"

// parseEnv overlays Config fields from environment variables. Credentials
// (database DSN, JWT secret, provider API keys, object storage) are expected
// to arrive this way in deployments; unset variables leave the existing
// value untouched.
func parseEnv(config *Config) {
	overlay := []struct {
		dst *string
		env string
	}{
		{&config.EndpointAddr, "ADDRESS"},
		{&config.Env, "APP_ENV"},
		{&config.LogFile, "LOG_FILE"},
		{&config.DatabaseDSN, "DATABASE_DSN"},
		{&config.SecretKey, "SECRET_KEY"},
		{&config.OpenAIAPIKey, "OPENAI_API_KEY"},
		{&config.OpenAIModel, "OPENAI_MODEL"},
		{&config.ElevenLabsAPIKey, "ELEVENLABS_API_KEY"},
		{&config.S3RootUser, "S3_ROOT_USER"},
		{&config.S3RootPassword, "S3_ROOT_PASSWORD"},
		{&config.S3Bucket, "S3_BUCKET"},
		{&config.S3Region, "S3_REGION"},
		{&config.S3BaseEndpoint, "S3_BASE_ENDPOINT"},
		{&config.S3AudioObjectKey, "S3_AUDIO_OBJECT_KEY"},
	}
	for _, o := range overlay {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
}
