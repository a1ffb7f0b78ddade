package config

import "time"

// ServerConfig holds configuration for the long-running route service
type ServerConfig struct {
	// gRPC listen address (host:port)
	GRPCAddress string `mapstructure:"grpc_address" validate:"required"`

	// HTTP listen address (host:port)
	HTTPAddress string `mapstructure:"http_address" validate:"required"`

	// PID file location, empty to skip
	PIDFile string `mapstructure:"pid_file"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Allowed CORS origins for the HTTP API, empty allows any origin
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Rate limiting applied to gRPC and HTTP route requests
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
