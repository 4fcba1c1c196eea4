package utils

import (
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/sha3"
)

// DomainArtifact separates artifact fingerprints from any other SHA3 use.
const DomainArtifact = "kembench-artifact-v1"

// SHA3256 computes the SHA3-256 cryptographic hash of the input.
// It returns a 32-byte hash.
func SHA3256(input []byte) []byte {
	h := sha3.New256()
	h.Write(input)
	return h.Sum(nil)
}

// NewDomainHash returns a SHA3-256 hash already primed with a length-prefixed
// domain string, so that streamed input is domain separated the same way as
// HashWithDomain.
// Panics if domain is longer than 255 bytes.
func NewDomainHash(domain string) hash.Hash {
	domainBytes := []byte(domain)
	if len(domainBytes) > 255 {
		panic("domain string must be at most 255 bytes")
	}
	h := sha3.New256()
	h.Write([]byte{byte(len(domainBytes))})
	h.Write(domainBytes)
	return h
}

// HashWithDomain computes a domain-separated SHA3-256 hash.
// Panics if domain is longer than 255 bytes.
func HashWithDomain(domain string, data []byte) []byte {
	h := NewDomainHash(domain)
	h.Write(data)
	return h.Sum(nil)
}

// UpperHex encodes b as upper-case hexadecimal, two digits per byte.
func UpperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
