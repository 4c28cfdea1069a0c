package internal

import (
	"fmt"
	"time"

	"soapstone/services"
)

type Config struct {
	Host            string        `env:"HTTP_HOST,default=localhost"`
	Port            int           `env:"HTTP_PORT,default=8080"`
	GrpcPort        int           `env:"GRPC_PORT,default=9090"`
	BadgerFilepath  string        `env:"BADGER_FILEPATH,required=true"`
	BlugeFilepath   string        `env:"BLUGE_FILEPATH,required=true"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	AuthEnabled     bool          `env:"AUTH_ENABLED,default=false"`
	JWTSigningKey   string        `env:"JWT_SIGNING_KEY"`
	FallbackOwnerID string        `env:"FALLBACK_OWNER_ID,default=TestUser"`
	RetentionWindow int           `env:"RETENTION_WINDOW,default=30"`
	OwnerLimit      int           `env:"OWNER_LIMIT,default=30"`
	RadiusDistance  string        `env:"RADIUS_DISTANCE,default=100m"`
	RadiusLimit     int           `env:"RADIUS_LIMIT,default=20"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT,default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=15s"`
}

func (c Config) Validate() error {
	if c.RetentionWindow <= 0 {
		return fmt.Errorf("RETENTION_WINDOW must be positive, got %d", c.RetentionWindow)
	}
	if c.OwnerLimit <= 0 {
		return fmt.Errorf("OWNER_LIMIT must be positive, got %d", c.OwnerLimit)
	}
	if c.RadiusLimit <= 0 {
		return fmt.Errorf("RADIUS_LIMIT must be positive, got %d", c.RadiusLimit)
	}
	if c.RadiusDistance == "" {
		return fmt.Errorf("RADIUS_DISTANCE must not be empty")
	}
	if c.AuthEnabled && c.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required when AUTH_ENABLED is true")
	}
	return nil
}

func (c Config) Limits() services.Limits {
	return services.Limits{
		RetentionWindow: c.RetentionWindow,
		OwnerLimit:      c.OwnerLimit,
		RadiusDistance:  c.RadiusDistance,
		RadiusLimit:     c.RadiusLimit,
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) GrpcAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GrpcPort)
}
