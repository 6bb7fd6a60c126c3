package cram

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/byte4ever/crampw/md5engine"
)

const (
	// Scheme is the password scheme tag Dovecot expects.
	Scheme = "CRAM-MD5"

	// LegacyScheme is the tag older Dovecot releases used for
	// the same value.
	LegacyScheme = "HMAC-MD5"

	// PadSize is the HMAC pad length, one MD5 block.
	PadSize = md5engine.BlockSize

	// Size is the length of a raw credential: two 16-byte
	// chaining states.
	Size = 2 * 16

	ipadByte = 0x36
	opadByte = 0x5C
)

var (
	// ErrMalformed is returned by Parse for input that is not a
	// tagged 64-character hex credential.
	ErrMalformed = errors.New("malformed credential")

	// ErrUnknownScheme is returned for a scheme tag other than
	// Scheme or LegacyScheme.
	ErrUnknownScheme = errors.New("unknown scheme")
)

// Pads holds the two key-derived HMAC blocks.
type Pads struct {
	Inner [PadSize]byte
	Outer [PadSize]byte
}

// Credential is the raw 32-byte credential: the opad state
// followed by the ipad state, each as four little-endian
// words.
type Credential [Size]byte

// ShortenKey returns key unchanged when it fits in one pad,
// and its finalized 16-byte MD5 digest otherwise.
func ShortenKey(key []byte) []byte {
	if len(key) <= PadSize {
		return key
	}

	sum := md5engine.Sum(key)

	return sum[:]
}

// NewPads shortens key if needed and XORs it into the ipad
// and opad fill patterns. Bytes past the key keep their fill
// value.
func NewPads(key []byte) Pads {
	key = ShortenKey(key)

	var pa Pads
	for i := range PadSize {
		pa.Inner[i] = ipadByte
		pa.Outer[i] = opadByte
	}

	for i, kb := range key {
		pa.Inner[i] ^= kb
		pa.Outer[i] ^= kb
	}

	return pa
}

// Compute derives the credential for password. Each call
// uses its own pads and engines, so it is safe for
// concurrent use.
func Compute(password []byte) Credential {
	pa := NewPads(password)

	// Separate engines; the states are read without
	// finalization on purpose.
	outer := md5engine.New()
	outer.Write(pa.Outer[:]) //nolint:errcheck // never fails

	inner := md5engine.New()
	inner.Write(pa.Inner[:]) //nolint:errcheck // never fails

	var cr Credential

	copy(cr[:Size/2], outer.AppendState(nil))
	copy(cr[Size/2:], inner.AppendState(nil))

	return cr
}

// DovecotPW returns the "{CRAM-MD5}<hex>" credential string
// for password. Text must already be encoded to bytes by the
// caller.
func DovecotPW(password []byte) string {
	return Compute(password).String()
}

// Outer returns the opad chaining state.
func (cr Credential) Outer() [4]uint32 {
	return words(cr[:Size/2])
}

// Inner returns the ipad chaining state.
func (cr Credential) Inner() [4]uint32 {
	return words(cr[Size/2:])
}

// Hex returns the 64 lowercase hex characters without the
// scheme tag.
func (cr Credential) Hex() string {
	return hex.EncodeToString(cr[:])
}

// Format returns the credential tagged with scheme.
func (cr Credential) Format(scheme string) string {
	return "{" + scheme + "}" + cr.Hex()
}

// String returns the credential tagged with Scheme.
func (cr Credential) String() string {
	return cr.Format(Scheme)
}

// Parse splits a tagged credential into its raw bytes and
// scheme. Both Scheme and LegacyScheme are accepted.
func Parse(s string) (Credential, string, error) {
	const errCtx = "parsing credential"

	var cr Credential

	if !strings.HasPrefix(s, "{") {
		return cr, "", fmt.Errorf(
			"%s: missing scheme tag: %w", errCtx, ErrMalformed,
		)
	}

	end := strings.IndexByte(s, '}')
	if end < 0 {
		return cr, "", fmt.Errorf(
			"%s: unterminated scheme tag: %w", errCtx, ErrMalformed,
		)
	}

	scheme := s[1:end]
	if scheme != Scheme && scheme != LegacyScheme {
		return cr, "", fmt.Errorf(
			"%s: %q: %w", errCtx, scheme, ErrUnknownScheme,
		)
	}

	payload := s[end+1:]
	if len(payload) != hex.EncodedLen(Size) {
		return cr, "", fmt.Errorf(
			"%s: payload length %d: %w",
			errCtx, len(payload), ErrMalformed,
		)
	}

	if _, err := hex.Decode(cr[:], []byte(payload)); err != nil {
		return cr, "", fmt.Errorf(
			"%s: %w: %w", errCtx, ErrMalformed, err,
		)
	}

	return cr, scheme, nil
}

func words(b []byte) [4]uint32 {
	var ws [4]uint32
	for i := range ws {
		ws[i] = binary.LittleEndian.Uint32(b[4*i:])
	}

	return ws
}
