// Package config loads application configuration from a TOML file with
// environment variable overrides for secrets.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Default configuration values.
const (
	DefaultAddr         = ":8000"
	DefaultUploadDir    = "uploaded_docs"
	DefaultDataDir      = "data"
	DefaultVectorStore  = "pinecone"
	DefaultTopK         = 3
	DefaultChunkSize    = 500
	DefaultChunkOverlap = 100
	DefaultConcurrency  = 4
)

// Config is the full application configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Ingestion IngestionConfig `toml:"ingestion"`
	Retrieval RetrievalConfig `toml:"retrieval"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Vector    VectorConfig    `toml:"vector"`
	LogMode   string          `toml:"log_mode"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `toml:"addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// IngestionConfig configures the document ingestion pipeline.
type IngestionConfig struct {
	UploadDir    string `toml:"upload_dir"`
	ChunkSize    int    `toml:"chunk_size"`
	ChunkOverlap int    `toml:"chunk_overlap"`
	Concurrency  int    `toml:"concurrency"`
}

// RetrievalConfig configures question answering.
type RetrievalConfig struct {
	TopK int `toml:"top_k"`
}

// EmbeddingConfig configures the embedding provider. The API key comes
// from the GOOGLE_API_KEY environment variable, never from the file.
type EmbeddingConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"-"`
}

// LLMConfig configures the generative model. The API key comes from
// the GROQ_API_KEY environment variable.
type LLMConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"-"`
}

// VectorConfig selects and configures the vector store backend.
// Backend is one of "pinecone", "sqlite" or "memory". Pinecone
// credentials come from PINECONE_API_KEY and PINECONE_INDEX_HOST.
type VectorConfig struct {
	Backend   string `toml:"backend"`
	DataDir   string `toml:"data_dir"`
	IndexHost string `toml:"-"`
	APIKey    string `toml:"-"`
}

// Default returns a configuration with all defaults applied and
// secrets read from the environment.
func Default() Config {
	cfg := Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ShutdownTimeout: 10 * time.Second,
		},
		Ingestion: IngestionConfig{
			UploadDir:    DefaultUploadDir,
			ChunkSize:    DefaultChunkSize,
			ChunkOverlap: DefaultChunkOverlap,
			Concurrency:  DefaultConcurrency,
		},
		Retrieval: RetrievalConfig{TopK: DefaultTopK},
		Vector: VectorConfig{
			Backend: DefaultVectorStore,
			DataDir: DefaultDataDir,
		},
		LogMode: "development",
	}
	cfg.loadSecrets()
	return cfg
}

// Load reads the TOML file at path on top of the defaults. A missing
// file is not an error: the defaults plus environment secrets apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	// Re-apply: file contents never carry secrets.
	cfg.loadSecrets()

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadSecrets() {
	c.Embedding.APIKey = os.Getenv("GOOGLE_API_KEY")
	c.LLM.APIKey = os.Getenv("GROQ_API_KEY")
	c.Vector.APIKey = os.Getenv("PINECONE_API_KEY")
	c.Vector.IndexHost = os.Getenv("PINECONE_INDEX_HOST")
}

func (c *Config) validate() error {
	switch c.Vector.Backend {
	case "pinecone", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown vector backend %q", c.Vector.Backend)
	}
	if c.Ingestion.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.Ingestion.ChunkSize)
	}
	if c.Ingestion.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_overlap must not be negative, got %d", c.Ingestion.ChunkOverlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.Retrieval.TopK)
	}
	return nil
}
