package config

import (
	"fmt"

	"github.com/go-playground/validator"

	"github.com/Paco-Danes/NeurodevKnowledgeGraph/internal/util"
)

// Config carries everything the entrypoints read from the environment,
// validated once at startup.
type Config struct {
	HumanTablePath string `validate:"required"`
	MouseTablePath string `validate:"required"`
	TableFormat    string `validate:"oneof=csv parquet"`
	TableSource    string `validate:"oneof=io s3"`

	SkipNullEndpoints bool
	Debug             bool

	OutputDir string `validate:"required"`

	AWSRegion    string
	AWSEndpoint  string
	AWSAccessKey string
	AWSSecretKey string
	AWSBucket    string

	Neo4jURI       string
	Neo4jUser      string
	Neo4jPassword  string
	Neo4jDatabase  string
	Neo4jBatchSize int
	Neo4jReset     bool
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		HumanTablePath: util.GetEnv("HUMAN_TABLE_PATH"),
		MouseTablePath: util.GetEnv("MOUSE_TABLE_PATH"),
		TableFormat:    util.GetEnvString("TABLE_FORMAT", "csv"),
		TableSource:    util.GetEnvString("TABLE_SOURCE", "io"),

		SkipNullEndpoints: util.GetEnvBool("SKIP_NULL_ENDPOINTS", false),
		Debug:             util.GetEnvBool("DEBUG", false),

		OutputDir: util.GetEnvString("OUTPUT_DIR", "graph-out"),

		AWSRegion:    util.GetEnv("AWS_REGION"),
		AWSEndpoint:  util.GetEnv("AWS_ENDPOINT"),
		AWSAccessKey: util.GetEnv("AWS_ACCESS_KEY"),
		AWSSecretKey: util.GetEnv("AWS_SECRET_KEY"),
		AWSBucket:    util.GetEnv("AWS_BUCKET"),

		Neo4jURI:       util.GetEnvString("NEO4J_URI", "bolt://localhost:7687"),
		Neo4jUser:      util.GetEnvString("NEO4J_USER", "neo4j"),
		Neo4jPassword:  util.GetEnv("NEO4J_PASSWORD"),
		Neo4jDatabase:  util.GetEnvString("NEO4J_DATABASE", "neo4j"),
		Neo4jBatchSize: int(util.GetEnvNumeric("NEO4J_BATCH_SIZE", 500)),
		Neo4jReset:     util.GetEnvBool("NEO4J_RESET", false),
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
