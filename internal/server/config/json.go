package config

import (
	"encoding/json"
	"os"

	"github.com/boksu/booksum/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling its fields are copied into the
// runtime Config struct. Empty fields leave the existing value untouched.
type JsonConfig struct {
	EndpointAddr     string `json:"endpoint_addr"`
	Env              string `json:"env"`
	LogFile          string `json:"log_file"`
	DatabaseDSN      string `json:"database_dsn"`
	SecretKey        string `json:"secret_key"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIModel      string `json:"openai_model"`
	ElevenLabsAPIKey string `json:"elevenlabs_api_key"`
	S3RootUser       string `json:"s3_root_user"`
	S3RootPassword   string `json:"s3_root_password"`
	S3Bucket         string `json:"s3_bucket"`
	S3Region         string `json:"s3_region"`
	S3BaseEndpoint   string `json:"s3_base_endpoint"`
	S3AudioObjectKey string `json:"s3_audio_object_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The JSON file path comes from the -c or -config command-line flags; if
// neither is set, no file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlay := []struct {
		dst *string
		src string
	}{
		{&config.EndpointAddr, c.EndpointAddr},
		{&config.Env, c.Env},
		{&config.LogFile, c.LogFile},
		{&config.DatabaseDSN, c.DatabaseDSN},
		{&config.SecretKey, c.SecretKey},
		{&config.OpenAIAPIKey, c.OpenAIAPIKey},
		{&config.OpenAIModel, c.OpenAIModel},
		{&config.ElevenLabsAPIKey, c.ElevenLabsAPIKey},
		{&config.S3RootUser, c.S3RootUser},
		{&config.S3RootPassword, c.S3RootPassword},
		{&config.S3Bucket, c.S3Bucket},
		{&config.S3Region, c.S3Region},
		{&config.S3BaseEndpoint, c.S3BaseEndpoint},
		{&config.S3AudioObjectKey, c.S3AudioObjectKey},
	}
	for _, o := range overlay {
		if o.src != "" {
			*o.dst = o.src
		}
	}
}
