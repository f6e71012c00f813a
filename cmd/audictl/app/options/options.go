package options

import (
	"errors"

	"github.com/spf13/pflag"

	"github.com/openiov/audictl/internal/audictl"
	"github.com/openiov/audictl/internal/auth"
	"github.com/openiov/audictl/pkg/log"
	"github.com/openiov/audictl/pkg/options"
)

// CLIOptions aggregates every option group of the audictl command.
type CLIOptions struct {
	Audi *options.AudiOptions `json:"audi" mapstructure:"audi"`
	Auth *auth.Options        `json:"auth" mapstructure:"auth"`
	Log  *log.Options         `json:"log" mapstructure:"log"`

	// ConfigFile is an explicit credentials file path; empty means the
	// default search locations.
	ConfigFile string `json:"config" mapstructure:"config"`
}

// NewCLIOptions creates CLIOptions with default values.
func NewCLIOptions() *CLIOptions {
	return &CLIOptions{
		Audi: options.NewAudiOptions(),
		Auth: auth.NewOptions(),
		Log:  log.NewOptions(),
	}
}

// AddFlags binds every option group to the given flag set.
func (o *CLIOptions) AddFlags(fs *pflag.FlagSet) {
	o.Audi.AddFlags(fs)
	o.Auth.AddFlags(fs)
	o.Log.AddFlags(fs)

	fs.StringVar(&o.ConfigFile, "config", o.ConfigFile, "Path to the credentials config file (default: ./config.{yaml,json} or ~/.audictl/).")
}

// Complete fills in any fields not set explicitly. Currently a no-op.
func (o *CLIOptions) Complete() error {
	return nil
}

// Validate checks all option groups and aggregates their errors.
func (o *CLIOptions) Validate() error {
	errs := []error{}
	errs = append(errs, o.Audi.Validate()...)
	errs = append(errs, o.Auth.Validate()...)
	errs = append(errs, o.Log.Validate()...)
	return errors.Join(errs...)
}

// Config converts the options into the invoker configuration.
// apiLevelExplicit records whether --api-level was set on the command line.
func (o *CLIOptions) Config(apiLevelExplicit bool) *audictl.Config {
	return &audictl.Config{
		Audi:             o.Audi,
		Auth:             o.Auth,
		ConfigFile:       o.ConfigFile,
		APILevelExplicit: apiLevelExplicit,
	}
}
