package dovecotpw_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/crampw/dovecotpw"
)

// writeTemp creates a temporary file with content and
// returns its path.
func writeTemp(
	tb testing.TB,
	name string,
	content string,
) string {
	tb.Helper()

	pa := filepath.Join(tb.TempDir(), name)
	require.NoError(
		tb,
		os.WriteFile(pa, []byte(content), 0o600),
	)

	return pa
}

func TestLoadConfig_empty_path_returns_defaults(t *testing.T) {
	t.Parallel()

	cfg, err := dovecotpw.LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, dovecotpw.DefaultConfig(), cfg)
	assert.Equal(t, "CRAM-MD5", cfg.Scheme)
	assert.Equal(t, "UTF-8", cfg.Encoding)
	assert.Equal(t, "{hash}", cfg.Format)
}

func TestLoadConfig_overrides_defaults(t *testing.T) {
	t.Parallel()

	pa := writeTemp(
		t, "dovecotpw.yaml",
		"scheme: HMAC-MD5\n"+
			"encoding: ISO-8859-1\n"+
			"format: \"{user}:{hash}\"\n"+
			"json: true\n",
	)

	cfg, err := dovecotpw.LoadConfig(pa)

	require.NoError(t, err)
	assert.Equal(
		t,
		dovecotpw.Config{
			Scheme:   "HMAC-MD5",
			Encoding: "ISO-8859-1",
			Format:   "{user}:{hash}",
			JSON:     true,
		},
		cfg,
	)
}

func TestLoadConfig_partial_file_keeps_other_defaults(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "dovecotpw.yaml", "user: alice\n")

	cfg, err := dovecotpw.LoadConfig(pa)

	require.NoError(t, err)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, "CRAM-MD5", cfg.Scheme)
	assert.Equal(t, "{hash}", cfg.Format)
}

func TestLoadConfig_unknown_key(t *testing.T) {
	t.Parallel()

	pa := writeTemp(t, "dovecotpw.yaml", "rounds: 5000\n")

	_, err := dovecotpw.LoadConfig(pa)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestLoadConfig_missing_file(t *testing.T) {
	t.Parallel()

	_, err := dovecotpw.LoadConfig("/nonexistent/dovecotpw.yaml")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestConfig_Validate_normalizes_scheme(t *testing.T) {
	t.Parallel()

	cfg := dovecotpw.Config{Scheme: " cram-md5 "}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "CRAM-MD5", cfg.Scheme)
	assert.Equal(t, dovecotpw.DefaultEncoding, cfg.Encoding)
	assert.Equal(t, dovecotpw.DefaultFormat, cfg.Format)
}

func TestConfig_Validate_rejects_other_schemes(t *testing.T) {
	t.Parallel()

	for _, scheme := range []string{"", "PLAIN", "SHA512-CRYPT"} {
		cfg := dovecotpw.Config{Scheme: scheme}

		err := cfg.Validate()

		require.ErrorIs(t, err, dovecotpw.ErrUnsupportedScheme)
	}
}
