package audictl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/openiov/audictl/pkg/audi"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveCredentialsFromFile(t *testing.T) {
	path := writeConfig(t, `
username: file-user@example.com
password: file-secret
country: DE
spin: "1234"
api_level: 1
`)

	creds, err := ResolveCredentials(audi.Credentials{}, false, path)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}

	if creds.Username != "file-user@example.com" {
		t.Errorf("username = %q", creds.Username)
	}
	if creds.SPIN != "1234" {
		t.Errorf("spin = %q", creds.SPIN)
	}
	if creds.APILevel != 1 {
		t.Errorf("api level = %d, want 1", creds.APILevel)
	}
}

func TestResolveCredentialsExplicitWins(t *testing.T) {
	path := writeConfig(t, `
username: file-user@example.com
password: file-secret
country: DE
api_level: 1
`)

	explicit := audi.Credentials{
		Username: "flag-user@example.com",
		Password: "flag-secret",
		Country:  "US",
		APILevel: 0,
	}

	creds, err := ResolveCredentials(explicit, true, path)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}

	if creds.Username != "flag-user@example.com" {
		t.Errorf("username = %q, explicit value should win", creds.Username)
	}
	if creds.Country != "US" {
		t.Errorf("country = %q, explicit value should win", creds.Country)
	}
	if creds.APILevel != 0 {
		t.Errorf("api level = %d, explicit value should win", creds.APILevel)
	}
}

func TestResolveCredentialsPartialMerge(t *testing.T) {
	path := writeConfig(t, `
username: file-user@example.com
password: file-secret
country: DE
`)

	// Only the password is explicit; the rest fills in from the file.
	creds, err := ResolveCredentials(audi.Credentials{Password: "flag-secret"}, false, path)
	if err != nil {
		t.Fatalf("ResolveCredentials: %v", err)
	}

	if creds.Password != "flag-secret" {
		t.Errorf("password = %q, explicit value should win", creds.Password)
	}
	if creds.Username != "file-user@example.com" {
		t.Errorf("username = %q, should come from the file", creds.Username)
	}
}

func TestResolveCredentialsMissingFields(t *testing.T) {
	path := writeConfig(t, `
username: file-user@example.com
`)

	_, err := ResolveCredentials(audi.Credentials{}, false, path)

	var mce *MissingCredentialsError
	if !errors.As(err, &mce) {
		t.Fatalf("error is %T, want *MissingCredentialsError", err)
	}
	if len(mce.Missing) != 2 {
		t.Errorf("missing = %v, want password and country", mce.Missing)
	}
}

func TestResolveCredentialsNoFileIsNotAnError(t *testing.T) {
	creds, err := ResolveCredentials(audi.Credentials{
		Username: "u@example.com",
		Password: "s",
		Country:  "CA",
	}, false, filepath.Join(t.TempDir(), "absent.yaml"))

	if err != nil {
		t.Fatalf("a missing config file should not fail resolution: %v", err)
	}
	if creds.Country != "CA" {
		t.Errorf("country = %q", creds.Country)
	}
}
