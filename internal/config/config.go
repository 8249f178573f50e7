package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kamchettysadhika/GdocsforCoding/internal/domain"
)

// Config holds all application configuration. It is constructed once at
// startup and passed by handle; there is no package-level instance so tests
// can build isolated configs.
type Config struct {
	// Server
	Host string
	Port string

	// Security
	AllowedOrigins []string

	// Rate Limiting
	RateLimitAPI rate.Limit
	RateLimitWS  rate.Limit

	// Logging
	LogLevel string

	// Session limits
	MaxDocumentSize int
	MaxChatLength   int
	ChatHistorySize int
	JoinChatReplay  int

	// WebSocket
	MaxInboundFrame int64

	// Lifecycle
	SweepInterval     time.Duration
	SessionInactivity time.Duration
	MemberIdleLimit   time.Duration

	// Code execution
	ExecTimeout time.Duration
}

// Default returns configuration with default values.
func Default() *Config {
	return &Config{
		Host:              "localhost",
		Port:              "8000",
		AllowedOrigins:    []string{"*"},
		RateLimitAPI:      domain.DefaultRateLimitAPI,
		RateLimitWS:       domain.DefaultRateLimitWS,
		LogLevel:          "info", // Options: debug, info, silent
		MaxDocumentSize:   domain.MaxDocumentSize,
		MaxChatLength:     domain.MaxChatLength,
		ChatHistorySize:   domain.ChatHistorySize,
		JoinChatReplay:    domain.JoinChatReplay,
		MaxInboundFrame:   domain.MaxInboundFrame,
		SweepInterval:     domain.SweepInterval,
		SessionInactivity: domain.SessionInactivity,
		MemberIdleLimit:   domain.MemberIdleLimit,
		ExecTimeout:       domain.ExecTimeout,
	}
}

// LoadFromEnv loads configuration from environment variables on top of the
// defaults.
func LoadFromEnv() *Config {
	cfg := Default()

	if host := os.Getenv("HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		cfg.AllowedOrigins = parseOrigins(origins)
	}
	if rl := os.Getenv("RATE_LIMIT_API"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitAPI = rate.Limit(val)
		}
	}
	if rl := os.Getenv("RATE_LIMIT_WS"); rl != "" {
		if val, err := strconv.Atoi(rl); err == nil && val > 0 {
			cfg.RateLimitWS = rate.Limit(val)
		}
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if size := os.Getenv("MAX_DOCUMENT_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.MaxDocumentSize = val
		}
	}
	if size := os.Getenv("MAX_INBOUND_FRAME"); size != "" {
		if val, err := strconv.ParseInt(size, 10, 64); err == nil && val > 0 {
			cfg.MaxInboundFrame = val
		}
	}
	if size := os.Getenv("CHAT_HISTORY_SIZE"); size != "" {
		if val, err := strconv.Atoi(size); err == nil && val > 0 {
			cfg.ChatHistorySize = val
		}
	}
	if d := os.Getenv("SWEEP_INTERVAL_MINUTES"); d != "" {
		if val, err := strconv.Atoi(d); err == nil && val > 0 {
			cfg.SweepInterval = time.Duration(val) * time.Minute
		}
	}
	if d := os.Getenv("EXEC_TIMEOUT_SECONDS"); d != "" {
		if val, err := strconv.Atoi(d); err == nil && val > 0 {
			cfg.ExecTimeout = time.Duration(val) * time.Second
		}
	}

	return cfg
}

// parseOrigins parses comma-separated origins.
func parseOrigins(origins string) []string {
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
