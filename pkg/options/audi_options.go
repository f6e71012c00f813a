package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	"github.com/openiov/audictl/pkg/audi"
)

var _ IOptions = (*AudiOptions)(nil)

// countries accepted by the vehicle cloud service.
var supportedCountries = map[string]bool{
	"":   true, // resolved later from the config file
	"DE": true,
	"US": true,
	"CA": true,
	"CN": true,
}

// AudiOptions contains account credentials and client behavior for the
// vehicle cloud service.
type AudiOptions struct {
	Username string `json:"username" mapstructure:"username"`
	Password string `json:"password" mapstructure:"password"`
	Country  string `json:"country" mapstructure:"country"`

	// SPIN is the security PIN required for physically consequential
	// actions (lock/unlock, pre-heater).
	SPIN string `json:"spin" mapstructure:"spin"`

	// APILevel selects between service API generations (0 or 1).
	APILevel int `json:"api-level" mapstructure:"api-level"`

	// Client behavior
	BaseURL string        `json:"base-url" mapstructure:"base-url"`
	Timeout time.Duration `json:"timeout" mapstructure:"timeout"`
}

// NewAudiOptions creates a new AudiOptions with default values.
func NewAudiOptions() *AudiOptions {
	return &AudiOptions{
		APILevel: 0,
		Timeout:  30 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *AudiOptions) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if !supportedCountries[o.Country] {
		errors = append(errors, fmt.Errorf("unsupported country code %q (supported: DE, US, CA, CN)", o.Country))
	}

	if o.APILevel != 0 && o.APILevel != 1 {
		errors = append(errors, fmt.Errorf("api-level must be 0 or 1, got %d", o.APILevel))
	}

	return errors
}

// AddFlags adds flags for AudiOptions to the specified FlagSet.
func (o *AudiOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVarP(&o.Username, "username", "u", o.Username, "Vehicle cloud account username (email). Falls back to the config file.")
	fs.StringVarP(&o.Password, "password", "p", o.Password, "Vehicle cloud account password. Falls back to the config file.")
	fs.StringVarP(&o.Country, "country", "c", o.Country, "Country code (DE, US, CA, CN). Falls back to the config file.")
	fs.StringVar(&o.SPIN, "spin", o.SPIN, "Security PIN for consequential vehicle actions.")
	fs.IntVar(&o.APILevel, "api-level", o.APILevel, "Service API level (0 or 1).")

	fs.StringVar(&o.BaseURL, "base-url", o.BaseURL, "Override the service base URL (defaults to the regional endpoint).")
	fs.DurationVar(&o.Timeout, "timeout", o.Timeout, "Per-request timeout for service calls.")
}

// ToClientConfig converts the options into a service client configuration.
func (o *AudiOptions) ToClientConfig() *audi.ClientConfig {
	return &audi.ClientConfig{
		BaseURL:  o.BaseURL,
		Country:  o.Country,
		APILevel: o.APILevel,
		Timeout:  o.Timeout,
	}
}

// ToCredentials converts the options into a resolved credential bundle.
// Call after config-file merging; the result is treated as immutable.
func (o *AudiOptions) ToCredentials() audi.Credentials {
	return audi.Credentials{
		Username: o.Username,
		Password: o.Password,
		Country:  o.Country,
		SPIN:     o.SPIN,
		APILevel: o.APILevel,
	}
}
