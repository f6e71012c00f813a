package audictl

import (
	"fmt"
	"os"

	"github.com/openiov/audictl/internal/auth"
	"github.com/openiov/audictl/internal/command"
	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/options"
)

// Config carries everything needed to construct a CLI instance.
type Config struct {
	Audi *options.AudiOptions
	Auth *auth.Options

	// ConfigFile is an explicit credentials file path, empty for the
	// default search locations.
	ConfigFile string

	// APILevelExplicit records whether --api-level was set on the command
	// line, so a config-file value does not override it.
	APILevelExplicit bool
}

// NewCLI resolves credentials, builds the service client and wires the
// session, gate and account around it.
func (cfg *Config) NewCLI() (*CLI, error) {
	creds, err := ResolveCredentials(cfg.Audi.ToCredentials(), cfg.APILevelExplicit, cfg.ConfigFile)
	if err != nil {
		return nil, err
	}

	clientCfg := cfg.Audi.ToClientConfig()
	clientCfg.Country = creds.Country
	clientCfg.APILevel = creds.APILevel

	client, err := audi.NewClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating service client: %w", err)
	}

	return NewCLI(client, creds, cfg.Auth), nil
}

// NewCLI wires a CLI around an existing service client. Split out from
// Config.NewCLI for tests.
func NewCLI(client audi.Client, creds audi.Credentials, authOpts *auth.Options) *CLI {
	return &CLI{
		client:  client,
		creds:   creds,
		account: audi.NewAccount(client),
		session: auth.NewSession(client, creds, authOpts),
		gate:    command.NewGate(creds),
		out:     os.Stdout,
	}
}
