// Package cram builds Dovecot CRAM-MD5 credentials. A credential is the HMAC
// precomputation of a password: the MD5 chaining state after absorbing the
// opad block, followed by the state after absorbing the ipad block, rendered
// as "{CRAM-MD5}" and 64 lowercase hex characters.
//
// The two pad states are read without MD5 finalization. The server resumes
// from them when it answers a challenge, so finalizing them would produce a
// value Dovecot cannot use. The only finalized digest in this package is the
// one that shortens keys longer than one block.
package cram
