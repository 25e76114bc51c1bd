package app

import (
	"github.com/techgov/catalog-backend/internal/platform/envutil"
	"github.com/techgov/catalog-backend/internal/platform/logger"
	"github.com/techgov/catalog-backend/internal/platform/neo4jdb"
)

type Config struct {
	Port        string
	LogMode     string
	ServiceName string
	Environment string
	Version     string
	CORSOrigins []string

	Neo4j neo4jdb.Config

	RedisAddr    string
	RedisChannel string
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		ServiceName: envutil.String("SERVICE_NAME", "catalog-backend"),
		Environment: envutil.String("ENVIRONMENT", "development"),
		Version:     envutil.String("SERVICE_VERSION", "dev"),
		CORSOrigins: envutil.List("CORS_ORIGINS", []string{"http://localhost:3000"}),
		Neo4j: neo4jdb.Config{
			URI:            envutil.String("NEO4J_URI", ""),
			User:           envutil.String("NEO4J_USER", "neo4j"),
			Password:       envutil.String("NEO4J_PASSWORD", ""),
			Database:       envutil.String("NEO4J_DATABASE", ""),
			TimeoutSeconds: envutil.Int("NEO4J_TIMEOUT_SECONDS", 10),
			MaxPoolSize:    envutil.Int("NEO4J_MAX_POOL_SIZE", 50),
		},
		RedisAddr:    envutil.String("REDIS_ADDR", ""),
		RedisChannel: envutil.String("REDIS_CHANNEL", "catalog-events"),
	}
	log.Info("configuration loaded",
		"port", cfg.Port,
		"neo4j_uri", cfg.Neo4j.URI,
		"redis_addr", cfg.RedisAddr,
		"environment", cfg.Environment,
	)
	return cfg
}
