package audictl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/openiov/audictl/pkg/audi"
	"github.com/openiov/audictl/pkg/log"
)

// MissingCredentialsError reports which required credential fields were
// provided by neither flags nor the config file.
type MissingCredentialsError struct {
	Missing []string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf("missing required credentials: %s (pass flags or add them to the config file)",
		strings.Join(e.Missing, ", "))
}

// ResolveCredentials merges explicit invocation values over a persisted
// config file, explicit wins. configFile overrides the default search
// (./config.{yaml,json,toml} then ~/.audictl/). A missing file is not an
// error; missing username/password/country after the merge is.
//
// apiLevelExplicit distinguishes "--api-level 0" from the flag's default,
// since 0 is a valid level.
func ResolveCredentials(explicit audi.Credentials, apiLevelExplicit bool, configFile string) (audi.Credentials, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".audictl"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound), os.IsNotExist(err):
			log.Debug("no config file found, using flags only")
		default:
			return audi.Credentials{}, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		log.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	creds := explicit
	if creds.Username == "" {
		creds.Username = v.GetString("username")
	}
	if creds.Password == "" {
		creds.Password = v.GetString("password")
	}
	if creds.Country == "" {
		creds.Country = v.GetString("country")
	}
	if creds.SPIN == "" {
		creds.SPIN = v.GetString("spin")
	}
	if !apiLevelExplicit && v.IsSet("api_level") {
		creds.APILevel = v.GetInt("api_level")
	}

	var missing []string
	if creds.Username == "" {
		missing = append(missing, "username")
	}
	if creds.Password == "" {
		missing = append(missing, "password")
	}
	if creds.Country == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return audi.Credentials{}, &MissingCredentialsError{Missing: missing}
	}

	return creds, nil
}
