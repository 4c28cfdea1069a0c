package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIAddr  string `envconfig:"E2E_API_ADDR"`
	GrpcAddr string `envconfig:"E2E_GRPC_ADDR"`
	// E2E_TOKEN is sent as a bearer token when the API runs with AUTH_ENABLED
	Token string `envconfig:"E2E_TOKEN"`
	// E2E_DEBUG_JSON allows dumping full HTTP response bodies
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
