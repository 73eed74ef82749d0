package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	JWTSecret       string
	TokenTTLMinutes int

	OracleURL                string
	OracleProbeIntervalSecs  int
	OracleProbeTimeoutSecs   int
	OracleRequestTimeoutSecs int
	OracleTargetDifficulty   float64

	MCQPassPercent    int
	CandidatePoolSize int
	ShortlistSize     int

	ForwardWorkerCount int
	ForwardQueueSize   int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:capstone.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		JWTSecret:       envOr("JWT_SECRET", "dev-only-secret"),
		TokenTTLMinutes: envIntOr("TOKEN_TTL_MINUTES", 60),

		OracleURL:                envOr("ORACLE_URL", "http://localhost:5002"),
		OracleProbeIntervalSecs:  envIntOr("ORACLE_PROBE_INTERVAL_SECONDS", 60),
		OracleProbeTimeoutSecs:   envIntOr("ORACLE_PROBE_TIMEOUT_SECONDS", 2),
		OracleRequestTimeoutSecs: envIntOr("ORACLE_REQUEST_TIMEOUT_SECONDS", 5),
		OracleTargetDifficulty:   envFloatOr("ORACLE_TARGET_DIFFICULTY", 0.7),

		MCQPassPercent:    envIntOr("MCQ_PASS_PERCENT", 80),
		CandidatePoolSize: envIntOr("CANDIDATE_POOL_SIZE", 20),
		ShortlistSize:     envIntOr("SHORTLIST_SIZE", 5),

		ForwardWorkerCount: envIntOr("FORWARD_WORKER_COUNT", 2),
		ForwardQueueSize:   envIntOr("FORWARD_QUEUE_SIZE", 64),
	}
}

// Validate checks that the configuration is usable, aggregating every problem
// found so misconfiguration is reported in one pass.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.TokenTTLMinutes <= 0 {
		problems = append(problems, "TOKEN_TTL_MINUTES must be positive")
	}
	if c.OracleURL == "" {
		problems = append(problems, "ORACLE_URL cannot be empty")
	}
	if c.OracleProbeIntervalSecs <= 0 {
		problems = append(problems, "ORACLE_PROBE_INTERVAL_SECONDS must be positive")
	}
	if c.OracleProbeTimeoutSecs <= 0 {
		problems = append(problems, "ORACLE_PROBE_TIMEOUT_SECONDS must be positive")
	}
	if c.OracleRequestTimeoutSecs <= 0 {
		problems = append(problems, "ORACLE_REQUEST_TIMEOUT_SECONDS must be positive")
	}
	if c.OracleTargetDifficulty < 0 || c.OracleTargetDifficulty > 1 {
		problems = append(problems, "ORACLE_TARGET_DIFFICULTY must be between 0 and 1")
	}
	if c.MCQPassPercent < 0 || c.MCQPassPercent > 100 {
		problems = append(problems, "MCQ_PASS_PERCENT must be between 0 and 100")
	}
	if c.CandidatePoolSize <= 0 {
		problems = append(problems, "CANDIDATE_POOL_SIZE must be positive")
	}
	if c.ShortlistSize <= 0 {
		problems = append(problems, "SHORTLIST_SIZE must be positive")
	}
	if c.ForwardWorkerCount <= 0 {
		problems = append(problems, "FORWARD_WORKER_COUNT must be positive")
	}
	if c.ForwardQueueSize <= 0 {
		problems = append(problems, "FORWARD_QUEUE_SIZE must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}
