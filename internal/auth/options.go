package auth

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// Options configures the login retry policy.
type Options struct {
	// MaxAttempts bounds the number of login attempts per session.
	MaxAttempts int `json:"max-attempts" mapstructure:"max-attempts"`

	// RetryDelay is the pause between attempts.
	RetryDelay time.Duration `json:"retry-delay" mapstructure:"retry-delay"`
}

// NewOptions creates Options with default values.
func NewOptions() *Options {
	return &Options{
		MaxAttempts: 3,
		RetryDelay:  10 * time.Second,
	}
}

// Validate is used to parse and validate the parameters entered by the user
// at the command line when the program starts.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	errors := []error{}

	if o.MaxAttempts < 1 {
		errors = append(errors, fmt.Errorf("auth.max-attempts must be at least 1, got %d", o.MaxAttempts))
	}
	if o.RetryDelay < 0 {
		errors = append(errors, fmt.Errorf("auth.retry-delay must not be negative, got %s", o.RetryDelay))
	}

	return errors
}

// AddFlags adds flags for Options to the specified FlagSet.
func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.MaxAttempts, "auth.max-attempts", o.MaxAttempts, "Maximum number of login attempts.")
	fs.DurationVar(&o.RetryDelay, "auth.retry-delay", o.RetryDelay, "Delay between login attempts.")
}
