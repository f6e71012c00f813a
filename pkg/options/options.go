package options

import (
	"github.com/spf13/pflag"
)

// IOptions defines the contract every reusable option struct satisfies:
// it can validate itself and bind its fields to a flag set.
type IOptions interface {
	// Validate is used to parse and validate the parameters entered by the
	// user at the command line when the program starts.
	Validate() []error

	// AddFlags adds flags to the specified FlagSet object.
	AddFlags(fs *pflag.FlagSet, prefixes ...string)
}
