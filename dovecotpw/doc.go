// Package dovecotpw is the glue between a user and the cram package: it
// loads defaults from a YAML file, obtains the password text from a flag, a
// file, a terminal prompt or piped stdin, encodes that text to bytes with an
// explicit character set, and renders the resulting credential either
// through a {tag} template or as JSON.
package dovecotpw
