// Package md5engine is a restartable RFC 1321 MD5 state machine. Besides the
// usual hash.Hash surface it exposes the raw chaining state (A, B, C, D) so
// callers can read the "digest so far" after absorbing whole blocks without
// applying the final padding, which is what the CRAM-MD5 credential format
// stores.
package md5engine
