package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvbhalode/capstone/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                     ":8080",
		DBPath:                   "test.db",
		LogLevel:                 "INFO",
		JWTSecret:                "secret",
		TokenTTLMinutes:          60,
		OracleURL:                "http://localhost:5002",
		OracleProbeIntervalSecs:  60,
		OracleProbeTimeoutSecs:   2,
		OracleRequestTimeoutSecs: 5,
		OracleTargetDifficulty:   0.7,
		MCQPassPercent:           80,
		CandidatePoolSize:        20,
		ShortlistSize:            5,
		ForwardWorkerCount:       2,
		ForwardQueueSize:         64,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		wantErr bool
	}{
		{name: "invalid level", level: "INVALID", wantErr: true},
		{name: "empty level", level: "", wantErr: true},
		{name: "lowercase valid level", level: "debug", wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_InvalidTargetDifficulty(t *testing.T) {
	tests := []struct {
		name       string
		difficulty float64
	}{
		{name: "negative", difficulty: -0.1},
		{name: "above one", difficulty: 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.OracleTargetDifficulty = tt.difficulty

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "ORACLE_TARGET_DIFFICULTY")
		})
	}
}

func TestValidate_InvalidMCQPassPercent(t *testing.T) {
	tests := []struct {
		name    string
		percent int
	}{
		{name: "negative", percent: -1},
		{name: "above hundred", percent: 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.MCQPassPercent = tt.percent

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "MCQ_PASS_PERCENT")
		})
	}
}

func TestValidate_InvalidWorkerSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero forward workers",
			mutate:        func(c *config.Config) { c.ForwardWorkerCount = 0 },
			expectedError: "FORWARD_WORKER_COUNT",
		},
		{
			name:          "negative forward workers",
			mutate:        func(c *config.Config) { c.ForwardWorkerCount = -1 },
			expectedError: "FORWARD_WORKER_COUNT",
		},
		{
			name:          "zero forward queue",
			mutate:        func(c *config.Config) { c.ForwardQueueSize = 0 },
			expectedError: "FORWARD_QUEUE_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_InvalidOracleSettings(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "empty oracle url",
			mutate:        func(c *config.Config) { c.OracleURL = "" },
			expectedError: "ORACLE_URL",
		},
		{
			name:          "zero probe interval",
			mutate:        func(c *config.Config) { c.OracleProbeIntervalSecs = 0 },
			expectedError: "ORACLE_PROBE_INTERVAL_SECONDS",
		},
		{
			name:          "zero probe timeout",
			mutate:        func(c *config.Config) { c.OracleProbeTimeoutSecs = 0 },
			expectedError: "ORACLE_PROBE_TIMEOUT_SECONDS",
		},
		{
			name:          "zero request timeout",
			mutate:        func(c *config.Config) { c.OracleRequestTimeoutSecs = 0 },
			expectedError: "ORACLE_REQUEST_TIMEOUT_SECONDS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "JWT_SECRET cannot be empty")
	assert.Contains(t, errStr, "ORACLE_URL cannot be empty")
	assert.Contains(t, errStr, "CANDIDATE_POOL_SIZE")
	assert.Contains(t, errStr, "SHORTLIST_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("ORACLE_URL", "http://oracle:5002")
	t.Setenv("MCQ_PASS_PERCENT", "90")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "http://oracle:5002", cfg.OracleURL)
	assert.Equal(t, 90, cfg.MCQPassPercent)
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"ADDR", "DB_PATH", "ORACLE_URL", "MCQ_PASS_PERCENT",
		"ORACLE_TARGET_DIFFICULTY", "CANDIDATE_POOL_SIZE", "SHORTLIST_SIZE",
	} {
		if v := os.Getenv(key); v != "" {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}

	cfg := config.Load()

	assert.Equal(t, 80, cfg.MCQPassPercent)
	assert.Equal(t, 0.7, cfg.OracleTargetDifficulty)
	assert.Equal(t, 20, cfg.CandidatePoolSize)
	assert.Equal(t, 5, cfg.ShortlistSize)
	assert.Equal(t, 60, cfg.OracleProbeIntervalSecs)
}
