package dovecotpw

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/valyala/fasttemplate"

	"github.com/byte4ever/crampw/cram"
)

// Result is one generated credential.
type Result struct {
	User   string `json:"user,omitempty"`
	Scheme string `json:"scheme"`
	Hash   string `json:"hash"`
	Digest string `json:"digest"`
}

// Generate validates cfg and derives the credential for the
// already encoded password.
func Generate(cfg Config, password []byte) (Result, error) {
	const errCtx = "generating credential"

	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", errCtx, err)
	}

	cr := cram.Compute(password)

	return Result{
		User:   cfg.User,
		Scheme: cfg.Scheme,
		Hash:   cr.Format(cfg.Scheme),
		Digest: cr.Hex(),
	}, nil
}

// Render writes res as a JSON object when cfg.JSON is set,
// and through the cfg.Format template otherwise. Template
// tags are {user}, {scheme}, {hash} and {digest}; unknown
// tags are kept as-is. Output ends with a newline.
func Render(w io.Writer, cfg Config, res Result) error {
	const errCtx = "rendering credential"

	if cfg.JSON {
		if err := json.NewEncoder(w).Encode(res); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	format := cfg.Format
	if format == "" {
		format = DefaultFormat
	}

	if _, err := fasttemplate.ExecuteStd(
		format, "{", "}", w,
		map[string]interface{}{
			"user":   res.User,
			"scheme": res.Scheme,
			"hash":   res.Hash,
			"digest": res.Digest,
		},
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
