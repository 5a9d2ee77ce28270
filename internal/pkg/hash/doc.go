// Package hash provides helpers for hashing and verifying secrets.
//
// Store only the hash, then verify user input by comparing the plaintext
// against the stored value. Implementations live behind a small interface so
// the algorithm can differ per secret kind (passwords vs tokens vs codes).
package hash
