package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	ProcessingTopic    string
	BodyLimitMB        int
}

type DatabaseConfig struct {
	Connection string
}

type ExtractionConfig struct {
	Provider      string // "gemini" or "ollama"
	GeminiApiKey  string
	GeminiModel   string
	OllamaBaseURL string
	OllamaModel   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			ProcessingTopic:    getEnv("PROCESS_DOCUMENT_TOPIC_NAME", "PROCESS_DOCUMENT"),
			BodyLimitMB:        getEnvAsInt("BODY_LIMIT_MB", 25),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Extraction: ExtractionConfig{
			Provider:      getEnv("EXTRACTION_PROVIDER", "gemini"),
			GeminiApiKey:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			GeminiModel:   getEnv("GEMINI_EXTRACTION_MODEL", "gemini-1.5-flash"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:   getEnv("OLLAMA_VISION_MODEL", "llava"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
