package sheet

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// ErrNoCredentials is returned when none of the credential sources matched.
var ErrNoCredentials = fmt.Errorf("no Google service account credentials found")

const (
	DEFAULT_SECRET_FILE = "/etc/secrets/gcp-key.pem"
	DEFAULT_CREDENTIALS = "credentials.json"

	ENV_CREDENTIALS_JSON = "SLEEPDASH_CREDENTIALS_JSON"
	ENV_PREFIX           = "SLEEPDASH"

	KEYRING_SERVICE = "sleepdash"
	KEYRING_KEY     = "sleepdash.credentials"
)

var scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

// Source locates raw service account credential JSON. Resolve returns nil
// (without an error) when the source is simply not present, so that the
// resolver can move on to the next source in the list.
type Source interface {
	Name() string
	Resolve() ([]byte, error)
}

// DefaultSources is the standard resolution order: mounted secret file, local
// credentials file, environment variable with the full JSON blob, discrete
// environment variables, OS keyring.
func DefaultSources(credentials string) []Source {
	if strings.TrimSpace(credentials) == "" {
		credentials = DEFAULT_CREDENTIALS
	}

	return []Source{
		&FileSource{Path: DEFAULT_SECRET_FILE},
		&FileSource{Path: credentials},
		&EnvSource{Variable: ENV_CREDENTIALS_JSON},
		&EnvFieldsSource{Prefix: ENV_PREFIX},
		&KeyringSource{Service: KEYRING_SERVICE, Key: KEYRING_KEY},
	}
}

// Credentials walks the sources in order and builds a service account JWT
// configuration from the first one that matches. Literal '\n' escape
// sequences in the private key are converted to real line breaks before the
// key is used - credentials pasted into environment variables or copied
// between files routinely arrive double-escaped.
func Credentials(sources ...Source) (*jwt.Config, error) {
	for _, source := range sources {
		blob, err := source.Resolve()
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials from %s (%w)", source.Name(), err)
		}

		if blob == nil {
			continue
		}

		fixed, err := fixPrivateKey(blob)
		if err != nil {
			return nil, fmt.Errorf("malformed credentials from %s (%w)", source.Name(), err)
		}

		config, err := google.JWTConfigFromJSON(fixed, scopes...)
		if err != nil {
			return nil, fmt.Errorf("invalid credentials from %s (%w)", source.Name(), err)
		}

		return config, nil
	}

	return nil, ErrNoCredentials
}

// FileSource reads credential JSON from a file on disk e.g. a mounted secret
// or a local 'credentials.json'.
type FileSource struct {
	Path string
}

func (s *FileSource) Name() string {
	return fmt.Sprintf("file %s", s.Path)
}

func (s *FileSource) Resolve() ([]byte, error) {
	if _, err := os.Stat(s.Path); err != nil {
		return nil, nil
	}

	return os.ReadFile(s.Path)
}

// EnvSource reads the full credential JSON blob from a single environment
// variable.
type EnvSource struct {
	Variable string
}

func (s *EnvSource) Name() string {
	return fmt.Sprintf("environment variable %s", s.Variable)
}

func (s *EnvSource) Resolve() ([]byte, error) {
	if v := strings.TrimSpace(os.Getenv(s.Variable)); v != "" {
		return []byte(v), nil
	}

	return nil, nil
}

// EnvFieldsSource assembles a service account document from individually
// named environment variables (<PREFIX>_PROJECT_ID, <PREFIX>_PRIVATE_KEY,
// <PREFIX>_CLIENT_EMAIL, etc).
type EnvFieldsSource struct {
	Prefix string
}

func (s *EnvFieldsSource) Name() string {
	return fmt.Sprintf("environment variables %s_*", s.Prefix)
}

func (s *EnvFieldsSource) Resolve() ([]byte, error) {
	get := func(field string) string {
		return strings.TrimSpace(os.Getenv(fmt.Sprintf("%s_%s", s.Prefix, field)))
	}

	key := get("PRIVATE_KEY")
	email := get("CLIENT_EMAIL")

	if key == "" || email == "" {
		return nil, nil
	}

	account := map[string]string{
		"type":           "service_account",
		"project_id":     get("PROJECT_ID"),
		"private_key_id": get("PRIVATE_KEY_ID"),
		"private_key":    key,
		"client_email":   email,
		"client_id":      get("CLIENT_ID"),
		"token_uri":      "https://oauth2.googleapis.com/token",
	}

	return json.Marshal(account)
}

// KeyringSource reads credential JSON from the OS keyring. An unavailable
// keyring backend (e.g. a headless host without a secret service) counts as
// the source not being present, not as an error.
type KeyringSource struct {
	Service string
	Key     string
}

func (s *KeyringSource) Name() string {
	return fmt.Sprintf("keyring %s/%s", s.Service, s.Key)
}

func (s *KeyringSource) Resolve() ([]byte, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: s.Service,
	})
	if err != nil {
		return nil, nil
	}

	item, err := ring.Get(s.Key)
	if err == keyring.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	return item.Data, nil
}

// fixPrivateKey replaces literal two-character '\n' escape sequences in the
// 'private_key' field with real line breaks.
func fixPrivateKey(blob []byte) ([]byte, error) {
	document := map[string]interface{}{}
	if err := json.Unmarshal(blob, &document); err != nil {
		return nil, err
	}

	if key, ok := document["private_key"].(string); ok {
		document["private_key"] = strings.ReplaceAll(key, `\n`, "\n")
	}

	return json.Marshal(document)
}
