package config

import (
	"os"
	"time"
)

const (
	ProviderGemini   = "gemini"
	ProviderEndpoint = "endpoint"
)

// AIConfig holds the remote scorer configuration
type AIConfig struct {
	Provider    string `yaml:"provider" json:"provider"`
	APIKey      string `yaml:"api_key" json:"-"` // Never serialize
	BaseURL     string `yaml:"base_url" json:"baseUrl"`
	Model       string `yaml:"model" json:"model"`
	EndpointURL string `yaml:"endpoint_url" json:"endpointUrl"`
	TimeoutMS   int    `yaml:"timeout_ms" json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Provider:  ProviderGemini,
		APIKey:    os.Getenv("GEMINI_API_KEY"),
		BaseURL:   "https://generativelanguage.googleapis.com/v1beta/models",
		Model:     getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the remote scorer can be called without a caller credential
func (c AIConfig) IsEnabled() bool {
	if c.Provider == ProviderEndpoint {
		return c.EndpointURL != ""
	}
	return c.APIKey != ""
}

// Usable reports whether a request carrying credential can reach the remote scorer
func (c AIConfig) Usable(credential string) bool {
	if c.Provider == ProviderEndpoint {
		return c.EndpointURL != ""
	}
	return c.APIKey != "" || credential != ""
}

// ModelEndpoint returns the full endpoint for the configured model
func (c AIConfig) ModelEndpoint() string {
	return c.BaseURL + "/" + c.Model + ":generateContent"
}

// Timeout is the transport timeout for one remote call
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
