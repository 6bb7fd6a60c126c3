package dovecotpw

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnsupportedEncoding is returned for a character set
// name with no known encoder.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// EncodePassword converts password text to the bytes that
// get hashed. UTF-8 passes the text through unchanged; any
// other IANA character set name is looked up and characters
// it cannot represent are an error, never replaced.
func EncodePassword(text string, charset string) ([]byte, error) {
	const errCtx = "encoding password"

	if charset == "" || isUTF8(charset) {
		return []byte(text), nil
	}

	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %q: %w: %w",
			errCtx, charset, ErrUnsupportedEncoding, err,
		)
	}

	if enc == nil {
		return nil, fmt.Errorf(
			"%s: %q: %w", errCtx, charset, ErrUnsupportedEncoding,
		)
	}

	out, err := enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf(
			"%s: text not representable in %s: %w",
			errCtx, charset, err,
		)
	}

	return out, nil
}

func isUTF8(charset string) bool {
	return strings.EqualFold(charset, "UTF-8") ||
		strings.EqualFold(charset, "UTF8")
}
