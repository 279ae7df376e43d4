// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	DatabasePath string
	Environment  string

	// MediaRoot holds uploaded assets (book texts, covers, avatars) and the
	// TTS cache directory.
	MediaRoot string

	// Vector index configuration. Backend is "local" or "pinecone".
	VectorBackend     string
	VectorStoreDir    string
	PineconeAPIKey    string
	PineconeIndexHost string

	// Embedding service. The same model must be used for indexing and for
	// queries, or the vectors are not comparable.
	EmbeddingAPIKey  string
	EmbeddingBaseURL string
	EmbeddingModel   string

	// Chat completion service.
	LLMAPIKey  string
	LLMBaseURL string
	ChatModel  string

	// Speech synthesis.
	TTSAPIKey       string
	TTSDefaultVoice string

	RetrievalTopK int

	// Session cookies are signed with this secret; the admin password hash
	// protects the administrative endpoints.
	SessionSecret     string
	AdminPasswordHash string
}

// Load reads configuration from environment variables or a .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DatabasePath: getEnv("DATABASE_PATH", "literarychat.db"),
		Environment:  env,

		MediaRoot: getEnv("MEDIA_ROOT", "media"),

		VectorBackend:     getEnv("VECTOR_BACKEND", "local"),
		VectorStoreDir:    getEnv("VECTOR_STORE_DIR", "vector_stores"),
		PineconeAPIKey:    getEnv("PINECONE_API_KEY", ""),
		PineconeIndexHost: getEnv("PINECONE_INDEX_HOST", ""),

		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		LLMAPIKey:  getEnv("LLM_API_KEY", ""),
		LLMBaseURL: getEnv("LLM_BASE_URL", ""),
		ChatModel:  getEnv("CHAT_MODEL", "gpt-4o-mini"),

		TTSAPIKey:       getEnv("TTS_API_KEY", ""),
		TTSDefaultVoice: getEnv("TTS_DEFAULT_VOICE", "en-GB-Neural2-A"),

		RetrievalTopK: getEnvAsInt("RAG_TOPK", 3),

		SessionSecret:     getEnv("SESSION_SECRET", "dev-session-secret"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.EmbeddingAPIKey == "" {
			missing = append(missing, "EMBEDDING_API_KEY")
		}
		if cfg.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if cfg.SessionSecret == "" || cfg.SessionSecret == "dev-session-secret" {
			missing = append(missing, "SESSION_SECRET")
		}
		if cfg.AdminPasswordHash == "" {
			missing = append(missing, "ADMIN_PASSWORD_HASH")
		}
		if cfg.VectorBackend == "pinecone" {
			if cfg.PineconeAPIKey == "" {
				missing = append(missing, "PINECONE_API_KEY")
			}
			if cfg.PineconeIndexHost == "" {
				missing = append(missing, "PINECONE_INDEX_HOST")
			}
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an env var as an integer, with a fallback.
func getEnvAsInt(key string, defaultValue int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as integer. Using default value.", key)
		return defaultValue
	}
	return intValue
}
