package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port            string `env:"PORT,              default=8080"`
	Env             string `env:"ENV,               default=development"`
	JWTSecret       string `env:"JWT_SECRET"`
	TokenTTLMinutes int    `env:"TOKEN_TTL_MINUTES, default=30"`
	LogLevel        string `env:"LOG_LEVEL,         default=info"`
	SweepInterval   string `env:"SWEEP_INTERVAL,    default=1h"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Qdrant QdrantConfig
	OpenAI OpenAIConfig
	SMTP   SMTPConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=document_review_db"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type QdrantConfig struct {
	Host       string `env:"QDRANT_HOST,       default=localhost"`
	Port       int    `env:"QDRANT_PORT,       default=6334"`
	APIKey     string `env:"QDRANT_API_KEY"`
	UseTLS     bool   `env:"QDRANT_USE_TLS,    default=false"`
	Collection string `env:"QDRANT_COLLECTION, default=contract-openai"`
}

type OpenAIConfig struct {
	APIKey         string `env:"OPENAI_API_KEY"`
	EmbeddingModel string `env:"OPENAI_EMBEDDING_MODEL, default=text-embedding-3-small"`
	ChatModel      string `env:"OPENAI_CHAT_MODEL,      default=gpt-4o"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST, default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT, default=465"`
	Email    string `env:"SMTP_EMAIL"`
	Password string `env:"SMTP_PASSWORD"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
