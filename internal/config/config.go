package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type StorageConfig struct {
	Driver  string // "local" or "http"
	BaseDir string // local driver root
	BaseURL string // http driver bucket endpoint
	Token   string // http driver bearer token
}

type APIKeys struct {
	GoogleGemini     string
	JwtSecret        string
	ProcessFileTopic string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaEmbedModel  string
	LLMProvider       string // "gemini" or "ollama"
	FastModel         string // quick/standard effort
	ReasoningModel    string // thorough/deep effort
	EmbedBatchSize    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Storage: StorageConfig{
			Driver:  getEnv("STORAGE_DRIVER", "local"),
			BaseDir: getEnv("STORAGE_BASE_DIR", "./uploads"),
			BaseURL: getEnv("STORAGE_BASE_URL", ""),
			Token:   getEnv("STORAGE_TOKEN", ""),
		},
		Keys: APIKeys{
			GoogleGemini:     getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JwtSecret:        getEnv("JWT_SECRET", ""),
			ProcessFileTopic: getEnv("PROCESS_FILE_TOPIC_NAME", "PROCESS_CASE_FILE"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbedModel:  getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "gemini"),
			FastModel:         getEnv("LLM_FAST_MODEL", "gemini-1.5-flash"),
			ReasoningModel:    getEnv("LLM_REASONING_MODEL", "gemini-1.5-pro"),
			EmbedBatchSize:    getEnvAsInt("EMBED_BATCH_SIZE", 100),
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
