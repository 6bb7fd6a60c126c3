package dovecotpw

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/crampw/cram"
)

// DefaultFormat renders the bare credential string.
const DefaultFormat = "{hash}"

// DefaultEncoding is used when no encoding is configured.
const DefaultEncoding = "UTF-8"

// ErrUnsupportedScheme is returned for a scheme other than
// CRAM-MD5 or HMAC-MD5.
var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Config holds the generation and output settings. Fields
// map one to one to the YAML configuration file and to the
// command line flags.
type Config struct {
	Scheme   string `yaml:"scheme"`
	Encoding string `yaml:"encoding"`
	Format   string `yaml:"format"`
	JSON     bool   `yaml:"json"`
	User     string `yaml:"user"`
}

// DefaultConfig returns the settings used when no file is
// given.
func DefaultConfig() Config {
	return Config{
		Scheme:   cram.Scheme,
		Encoding: DefaultEncoding,
		Format:   DefaultFormat,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig. An
// empty path returns the defaults. Unknown keys are
// rejected.
func LoadConfig(path string) (Config, error) {
	const errCtx = "loading config"

	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := yaml.UnmarshalWithOptions(
		content, &cfg, yaml.Strict(),
	); err != nil {
		return Config{}, fmt.Errorf(
			"%s: decoding %s: %w", errCtx, path, err,
		)
	}

	return cfg, nil
}

// Validate normalizes the scheme name and checks it is one
// the cram package produces.
func (cfg *Config) Validate() error {
	const errCtx = "validating config"

	scheme := strings.ToUpper(strings.TrimSpace(cfg.Scheme))

	switch scheme {
	case cram.Scheme, cram.LegacyScheme:
		cfg.Scheme = scheme
	default:
		return fmt.Errorf(
			"%s: %q: %w", errCtx, cfg.Scheme, ErrUnsupportedScheme,
		)
	}

	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}

	if cfg.Format == "" {
		cfg.Format = DefaultFormat
	}

	return nil
}
