// Package config handles configuration for the server component,
// including defaults, JSON overlay, environment variables, and
// command-line flags.
package config

// Config holds runtime settings for the Booksum server.
//
// Fields:
//   - EndpointAddr: bind address for the public HTTP endpoint.
//   - Env: "production" or "development" (controls the log handler).
//   - LogFile: optional rotated log file path; empty means stdout.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Empty disables persistence and
//     flips database_available on /health.
//   - SecretKey: HMAC secret for verifying JWTs (HS256). Do not use test
//     defaults in prod.
//   - OpenAIAPIKey / OpenAIModel: text-generation provider settings. An
//     empty key disables the provider; the adapter then serves fallback text.
//   - ElevenLabsAPIKey: speech-provider credential. Reported via /health;
//     the current synthesis policy does not consult it.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     object storage for synthesized audio. Empty base endpoint disables it.
//   - S3AudioObjectKey: key of the stored placeholder audio object that
//     presigned audio URLs point at.
type Config struct {
	EndpointAddr     string
	Env              string
	LogFile          string
	DatabaseDSN      string
	SecretKey        string
	OpenAIAPIKey     string
	OpenAIModel      string
	ElevenLabsAPIKey string
	S3RootUser       string
	S3RootPassword   string
	S3Bucket         string
	S3Region         string
	S3BaseEndpoint   string
	S3AudioObjectKey string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.Env = "production"
	c.LogFile = ""
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.OpenAIAPIKey = ""
	c.OpenAIModel = "gpt-4"
	c.ElevenLabsAPIKey = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "booksum"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AudioObjectKey = "assets/placeholder-audio.wav"
}

// DatabaseConfigured reports whether a persistence backend is configured.
func (c *Config) DatabaseConfigured() bool { return c.DatabaseDSN != "" }

// StorageConfigured reports whether the audio object store is configured.
func (c *Config) StorageConfigured() bool { return c.S3BaseEndpoint != "" }

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file, environment variables, and finally
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
