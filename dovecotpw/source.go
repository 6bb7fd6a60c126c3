package dovecotpw

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

var (
	// ErrPasswordMismatch is returned when the two prompted
	// entries differ.
	ErrPasswordMismatch = errors.New("passwords don't match")

	// ErrNoPassword is returned when a Source has nothing to
	// read from.
	ErrNoPassword = errors.New("no password source")
)

// Prompter asks for a secret without echoing it.
type Prompter interface {
	Prompt(label string) ([]byte, error)
}

// Source describes where password text comes from. The
// first configured field wins, in declaration order.
type Source struct {
	// Password is an explicit value; nil means unset, an
	// empty string is a valid empty password.
	Password *string

	// File names a file whose first line is the password.
	File string

	// Prompter is used when stdin is a terminal.
	Prompter Prompter

	// Stdin is read up to the first newline otherwise.
	Stdin io.Reader
}

// Read returns the password text.
func (src Source) Read() (string, error) {
	const errCtx = "reading password"

	switch {
	case src.Password != nil:
		return *src.Password, nil

	case src.File != "":
		fi, err := os.Open(src.File) //nolint:gosec // path from CLI flag
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		defer fi.Close() //nolint:errcheck // read-only

		line, err := firstLine(fi)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return line, nil

	case src.Prompter != nil:
		pw, err := src.prompt()
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return pw, nil

	case src.Stdin != nil:
		line, err := firstLine(src.Stdin)
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}

		return line, nil
	}

	return "", fmt.Errorf("%s: %w", errCtx, ErrNoPassword)
}

func (src Source) prompt() (string, error) {
	first, err := src.Prompter.Prompt("Enter new password: ")
	if err != nil {
		return "", err
	}

	second, err := src.Prompter.Prompt("Retype new password: ")
	if err != nil {
		return "", err
	}

	if !bytes.Equal(first, second) {
		return "", ErrPasswordMismatch
	}

	return string(first), nil
}

// firstLine returns r's content up to the first newline,
// without the line terminator.
func firstLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}

	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	return line, nil
}

type terminalPrompter struct {
	fd  int
	out io.Writer
}

// NewTerminalPrompter returns a Prompter reading from the
// terminal on fd and writing labels to out.
func NewTerminalPrompter(fd int, out io.Writer) Prompter {
	return &terminalPrompter{fd: fd, out: out}
}

// IsTerminal reports whether fd is a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

func (tp *terminalPrompter) Prompt(label string) ([]byte, error) {
	if _, err := io.WriteString(tp.out, label); err != nil {
		return nil, err
	}

	pw, err := term.ReadPassword(tp.fd)

	// ReadPassword swallows the newline.
	_, _ = io.WriteString(tp.out, "\n") //nolint:errcheck // cosmetic

	if err != nil {
		return nil, err
	}

	return pw, nil
}
