package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_API_URL points at a running chat service. Empty runs against the in-process fake.
	APIURL   string `envconfig:"E2E_API_URL"`
	Username string `envconfig:"E2E_USERNAME" default:"alice"`
	Password string `envconfig:"E2E_PASSWORD" default:"wonderland"`
	// E2E_PEER_USERNAME is the account the scenario talks to
	PeerUsername string `envconfig:"E2E_PEER_USERNAME" default:"bob"`
	// E2E_DEBUG_BODIES dumps every response body in the test log
	DebugBodies bool `envconfig:"E2E_DEBUG_BODIES" default:"false"`
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
