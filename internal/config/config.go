package config

import (
	"os"
	"path/filepath"
	"strconv"
)

// Config holds everything the server needs at startup.
// Values come from the environment; a .env file is loaded by cmd/api.
type Config struct {
	Port string

	// Data directories. One JSON file per restaurant lives under
	// ExtractedDir; the uploaded PDF lives under MenusDir.
	DataDir      string
	MenusDir     string
	ExtractedDir string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Generation defaults
	Temperature float64
	MaxTokens   int

	// Optional S3-compatible mirror for uploaded PDFs (Cloudflare R2).
	// All four must be set for the mirror to be enabled.
	R2Endpoint  string
	R2AccessKey string
	R2SecretKey string
	R2Bucket    string

	LogLevel  string
	LogFormat string
}

func Load() *Config {
	dataDir := getenv("DATA_DIR", "data")

	cfg := &Config{
		Port:         getenv("PORT", "3000"),
		DataDir:      dataDir,
		MenusDir:     filepath.Join(dataDir, "menus"),
		ExtractedDir: filepath.Join(dataDir, "extracted"),
		GeminiAPIKey: firstEnv("GOOGLE_API_KEY", "GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		Temperature:  getenvFloat("LLM_TEMPERATURE", 0.7),
		MaxTokens:    getenvInt("LLM_MAX_TOKENS", 1024),
		R2Endpoint:   os.Getenv("R2_ENDPOINT"),
		R2AccessKey:  os.Getenv("R2_ACCESS_KEY"),
		R2SecretKey:  os.Getenv("R2_SECRET_KEY"),
		R2Bucket:     os.Getenv("R2_BUCKET_NAME"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "console"),
	}

	return cfg
}

// HasGeminiKey reports whether an API credential is configured.
// Its absence is a startup warning, not a fatal error; the first
// LLM-dependent call fails instead.
func (c *Config) HasGeminiKey() bool {
	return c.GeminiAPIKey != "" && c.GeminiAPIKey != "your_gemini_api_key_here"
}

// R2Enabled reports whether the PDF mirror is fully configured.
func (c *Config) R2Enabled() bool {
	return c.R2Endpoint != "" && c.R2AccessKey != "" && c.R2SecretKey != "" && c.R2Bucket != ""
}

// EnsureDirs creates the data directories if missing.
func (c *Config) EnsureDirs() error {
	if err := os.MkdirAll(c.MenusDir, 0o755); err != nil {
		return err
	}
	return os.MkdirAll(c.ExtractedDir, 0o755)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getenvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
