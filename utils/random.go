package utils

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/subtle"
	"errors"
	"fmt"
	"runtime"
)

const (
	// DRBGSeedSize is the entropy length the CTR_DRBG consumes (key + V).
	DRBGSeedSize = 48

	// MaxSecurityStrength is the strength provided by AES-256.
	MaxSecurityStrength = 256
)

// DRBG is the AES-256 CTR_DRBG used to generate the NIST PQC known-answer
// tests (randombytes_init / randombytes). It is deterministic: the same
// entropy always yields the same stream. It is not a source of real
// randomness.
type DRBG struct {
	block   cipher.Block
	key     [32]byte
	v       [16]byte
	reseeds uint64
}

// NewDRBG instantiates the generator from a 48-byte entropy input.
// personalization may be nil; otherwise it must also be 48 bytes and is
// XORed into the entropy. securityBits must be in (0, 256].
func NewDRBG(entropy [DRBGSeedSize]byte, personalization []byte, securityBits int) (*DRBG, error) {
	if securityBits <= 0 || securityBits > MaxSecurityStrength {
		return nil, fmt.Errorf("security strength %d not in (0, %d]", securityBits, MaxSecurityStrength)
	}
	if personalization != nil && len(personalization) != DRBGSeedSize {
		return nil, fmt.Errorf("personalization must be %d bytes, got %d", DRBGSeedSize, len(personalization))
	}

	material := entropy
	for i := range personalization {
		material[i] ^= personalization[i]
	}

	d := &DRBG{}
	if err := d.update(material[:]); err != nil {
		return nil, err
	}
	d.reseeds = 1
	Zeroize(material[:])
	return d, nil
}

// Read fills p with the next len(p) bytes. Each call is one generate
// request followed by a state update, so splitting a read into two calls
// yields a different stream than one call of the combined length.
func (d *DRBG) Read(p []byte) (int, error) {
	var block [aes.BlockSize]byte
	for off := 0; off < len(p); off += aes.BlockSize {
		d.incrementV()
		d.block.Encrypt(block[:], d.v[:])
		copy(p[off:], block[:])
	}
	Zeroize(block[:])
	if err := d.update(nil); err != nil {
		return 0, err
	}
	d.reseeds++
	return len(p), nil
}

// Requests returns how many generate requests have been served plus one,
// matching the reference reseed counter.
func (d *DRBG) Requests() uint64 {
	return d.reseeds
}

func (d *DRBG) update(provided []byte) error {
	if d.block == nil {
		if err := d.rekey(); err != nil {
			return err
		}
	}
	var temp [DRBGSeedSize]byte
	for i := 0; i < 3; i++ {
		d.incrementV()
		d.block.Encrypt(temp[16*i:], d.v[:])
	}
	for i := range provided {
		temp[i] ^= provided[i]
	}
	copy(d.key[:], temp[:32])
	copy(d.v[:], temp[32:])
	Zeroize(temp[:])
	return d.rekey()
}

func (d *DRBG) rekey() error {
	block, err := aes.NewCipher(d.key[:])
	if err != nil {
		return err
	}
	d.block = block
	return nil
}

// incrementV adds one to V as a 128-bit big-endian integer.
func (d *DRBG) incrementV() {
	for j := len(d.v) - 1; j >= 0; j-- {
		d.v[j]++
		if d.v[j] != 0 {
			return
		}
	}
}

// ReadChunked fills p with successive generate requests of at most chunk
// bytes, reproducing callers that draw a long seed in several pieces.
func ReadChunked(d *DRBG, p []byte, chunk int) error {
	if chunk <= 0 {
		return errors.New("chunk size must be positive")
	}
	for off := 0; off < len(p); off += chunk {
		end := off + chunk
		if end > len(p) {
			end = len(p)
		}
		if _, err := d.Read(p[off:end]); err != nil {
			return err
		}
	}
	return nil
}

// ConstantTimeEqual compares two byte slices in constant time.
// It returns true if the slices are equal, false otherwise.
// This function leaks only the length of the slices.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// FirstDifference returns the index of the first byte at which a and b
// differ, or -1 if they are equal. A length mismatch reports the shorter
// length.
func FirstDifference(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// Zeroize overwrites a byte slice with zeros.
// Uses runtime.KeepAlive to prevent compiler optimization from eliminating the stores.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
