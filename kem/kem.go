// Package kem binds a KEM backend to the harness's seeded randomness source.
//
// Every call draws its randomness from one AES-256 CTR_DRBG, so a run seeded
// with the same entropy produces the same keys, ciphertexts and secrets.
// Keys and ciphertexts cross this boundary as exact-length byte buffers.
package kem

import (
	"errors"
	"fmt"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/core"
	"github.com/BackendStack21/kembench/utils"
)

// ErrNotSeeded is returned by any phase called before Seed.
var ErrNotSeeded = errors.New("kem: randomness source not seeded")

// Scheme is a seedable KEM over serialized keys.
type Scheme struct {
	params core.Params
	rng    *utils.DRBG
}

// New validates params and returns an unseeded Scheme.
func New(params core.Params) (*Scheme, error) {
	if err := core.ValidateParams(params); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kembench.ErrConfiguration, params.Variant, err)
	}
	return &Scheme{params: params}, nil
}

// Variant returns the variant this Scheme runs.
func (s *Scheme) Variant() kembench.Variant { return s.params.Variant }

// Sizes returns the variant's size parameters.
func (s *Scheme) Sizes() kembench.SizeParameters { return s.params.Sizes }

// Seed (re)initializes the randomness source. Calling it again restarts the
// stream from the new entropy.
func (s *Scheme) Seed(entropy [kembench.EntropySize]byte, personalization []byte, securityBits int) error {
	rng, err := utils.NewDRBG(entropy, personalization, securityBits)
	if err != nil {
		return fmt.Errorf("kem: seed: %w", err)
	}
	s.rng = rng
	return nil
}

// Keypair generates a key pair from the next keypair seed.
func (s *Scheme) Keypair() (*kembench.KeyPair, error) {
	seed, err := s.draw(s.params.Scheme.SeedSize(), s.params.SeedChunk)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(seed)

	pk, sk := s.params.Scheme.DeriveKeyPair(seed)
	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("kem: marshal public key: %w", err)
	}
	skBytes, err := sk.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("kem: marshal secret key: %w", err)
	}
	if err := utils.CheckExactLength("public key", pkBytes, s.params.Sizes.PublicKey); err != nil {
		return nil, err
	}
	if err := utils.CheckExactLength("secret key", skBytes, s.params.Sizes.SecretKey); err != nil {
		return nil, err
	}
	return &kembench.KeyPair{PublicKey: pkBytes, SecretKey: skBytes}, nil
}

// Encapsulate derives a ciphertext and the sender's shared secret for
// publicKey using the next encapsulation seed.
func (s *Scheme) Encapsulate(publicKey []byte) (*kembench.EncapsulationResult, error) {
	if err := utils.CheckExactLength("public key", publicKey, s.params.Sizes.PublicKey); err != nil {
		return nil, err
	}
	pk, err := s.params.Scheme.UnmarshalBinaryPublicKey(publicKey)
	if err != nil {
		return nil, fmt.Errorf("kem: unmarshal public key: %w", err)
	}

	seed, err := s.draw(s.params.Scheme.EncapsulationSeedSize(), 0)
	if err != nil {
		return nil, err
	}
	defer utils.Zeroize(seed)

	ct, ss, err := s.params.Scheme.EncapsulateDeterministically(pk, seed)
	if err != nil {
		return nil, fmt.Errorf("kem: encapsulate: %w", err)
	}
	if err := utils.CheckExactLength("ciphertext", ct, s.params.Sizes.Ciphertext); err != nil {
		return nil, err
	}
	if err := utils.CheckExactLength("shared secret", ss, s.params.Sizes.SharedSecret); err != nil {
		return nil, err
	}
	return &kembench.EncapsulationResult{Ciphertext: ct, SharedSecret: ss}, nil
}

// Decapsulate recovers the receiver's shared secret. It consumes no
// randomness. A tampered ciphertext is not an error: the backend returns an
// implicit-rejection secret that will not match the sender's.
func (s *Scheme) Decapsulate(secretKey, ciphertext []byte) ([]byte, error) {
	if s.rng == nil {
		return nil, ErrNotSeeded
	}
	if err := utils.CheckExactLength("secret key", secretKey, s.params.Sizes.SecretKey); err != nil {
		return nil, err
	}
	if err := utils.CheckExactLength("ciphertext", ciphertext, s.params.Sizes.Ciphertext); err != nil {
		return nil, err
	}
	sk, err := s.params.Scheme.UnmarshalBinaryPrivateKey(secretKey)
	if err != nil {
		return nil, fmt.Errorf("kem: unmarshal secret key: %w", err)
	}
	ss, err := s.params.Scheme.Decapsulate(sk, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("kem: decapsulate: %w", err)
	}
	return ss, nil
}

// draw reads n bytes from the DRBG in requests of at most chunk bytes.
func (s *Scheme) draw(n, chunk int) ([]byte, error) {
	if s.rng == nil {
		return nil, ErrNotSeeded
	}
	if chunk == 0 {
		chunk = n
	}
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if err := utils.ReadChunked(s.rng, buf, chunk); err != nil {
		return nil, fmt.Errorf("kem: draw randomness: %w", err)
	}
	return buf, nil
}
