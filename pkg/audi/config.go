package audi

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Regional API entry points. The service routes accounts by market.
var regionEndpoints = map[string]string{
	"DE": "https://msg.audi.de/fs-car",
	"US": "https://msg.audi.us/fs-car",
	"CA": "https://msg.audi.ca/fs-car",
	"CN": "https://msg.audi.cn/fs-car",
}

// ClientConfig holds the configuration for creating a new service Client.
type ClientConfig struct {
	// BaseURL overrides the regional endpoint. Usually empty.
	BaseURL string

	// Country selects the regional endpoint when BaseURL is empty.
	Country string

	// APILevel selects between service API generations (0 or 1).
	APILevel int

	// Timeout bounds each HTTP request. Default is 30s.
	Timeout time.Duration

	// UserAgent sent with every request.
	UserAgent string
}

// setDefaultConfig applies safe default values to the configuration.
func setDefaultConfig(cfg *ClientConfig) {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = "audictl"
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = regionEndpoints[cfg.Country]
	}
}

// Validate checks if the configuration is valid.
func (c *ClientConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("no base URL and no endpoint for country %q", c.Country)
	}
	if _, err := url.Parse(c.BaseURL); err != nil {
		return err
	}
	if c.APILevel != 0 && c.APILevel != 1 {
		return errors.New("api level must be 0 or 1")
	}
	return nil
}
