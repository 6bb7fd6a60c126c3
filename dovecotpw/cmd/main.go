// Command dovecotpw prints a Dovecot CRAM-MD5 credential for
// a password given on the command line, in a file, typed at
// a terminal prompt or piped on stdin.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/crampw/dovecotpw"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	const errCtx = "dovecotpw"

	var (
		configPath   string
		scheme       string
		password     string
		passwordFile string
		encoding     string
		user         string
		format       string
		asJSON       bool
		output       string
	)

	flag.StringVar(
		&configPath, "config", "",
		"YAML file with default settings",
	)

	flag.StringVar(
		&scheme, "s", "",
		"password scheme: CRAM-MD5 or HMAC-MD5",
	)

	flag.StringVar(
		&password, "p", "",
		"password (prompted or read from stdin if unset)",
	)

	flag.StringVar(
		&passwordFile, "password_file", "",
		"file whose first line is the password",
	)

	flag.StringVar(
		&encoding, "encoding", "",
		"character set used to encode the password"+
			" (default UTF-8)",
	)

	flag.StringVar(
		&user, "user", "",
		"user name available as {user} in the format",
	)

	flag.StringVar(
		&format, "format", "",
		"output template with {user}, {scheme}, {hash}"+
			" and {digest} tags (default {hash})",
	)

	flag.BoolVar(
		&asJSON, "json", false,
		"print a JSON object instead of the template",
	)

	flag.StringVar(
		&output, "output", "",
		"output file path (default: stdout)",
	)

	flag.Parse()

	cfg, err := dovecotpw.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	src := dovecotpw.Source{}

	// Explicit flags override the config file.
	flag.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "s":
			cfg.Scheme = scheme
		case "p":
			src.Password = &password
		case "encoding":
			cfg.Encoding = encoding
		case "user":
			cfg.User = user
		case "format":
			cfg.Format = format
		case "json":
			cfg.JSON = asJSON
		}
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	src.File = passwordFile

	if fd := int(os.Stdin.Fd()); dovecotpw.IsTerminal(fd) {
		src.Prompter = dovecotpw.NewTerminalPrompter(fd, os.Stderr)
	} else {
		src.Stdin = os.Stdin
	}

	text, err := src.Read()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	pw, err := dovecotpw.EncodePassword(text, cfg.Encoding)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	res, err := dovecotpw.Generate(cfg, pw)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug(
		"generated credential",
		"scheme", res.Scheme,
		"user", res.User,
	)

	outWriter := os.Stdout

	if output != "" {
		fo, err := os.Create(output) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: creating output: %w",
				errCtx, err,
			)
		}

		defer fo.Close() //nolint:errcheck // best-effort close

		outWriter = fo
	}

	if err := dovecotpw.Render(outWriter, cfg, res); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
