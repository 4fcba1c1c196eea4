package kem

import (
	"bytes"
	"errors"
	"testing"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/core"
	"github.com/BackendStack21/kembench/utils"
)

func newSeeded(t testing.TB, params core.Params) *Scheme {
	t.Helper()
	s, err := New(params)
	if err != nil {
		t.Fatalf("New(%s) failed: %v", params.Variant, err)
	}
	if err := s.Seed(core.EntropyRamp(), nil, core.SecurityBits); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	return s
}

func roundTrip(t testing.TB, s *Scheme) (*kembench.KeyPair, *kembench.EncapsulationResult, []byte) {
	t.Helper()
	kp, err := s.Keypair()
	if err != nil {
		t.Fatalf("Keypair failed: %v", err)
	}
	enc, err := s.Encapsulate(kp.PublicKey)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}
	ss, err := s.Decapsulate(kp.SecretKey, enc.Ciphertext)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	return kp, enc, ss
}

func TestKEM_RoundTripAllVariants(t *testing.T) {
	for _, v := range core.Variants() {
		params, _ := core.GetParams(v)
		t.Run(string(v), func(t *testing.T) {
			s := newSeeded(t, params)
			for i := 0; i < 3; i++ {
				kp, enc, ss := roundTrip(t, s)
				if len(kp.PublicKey) != params.Sizes.PublicKey || len(kp.SecretKey) != params.Sizes.SecretKey {
					t.Errorf("key sizes %d/%d, want %d/%d", len(kp.PublicKey), len(kp.SecretKey), params.Sizes.PublicKey, params.Sizes.SecretKey)
				}
				if len(enc.Ciphertext) != params.Sizes.Ciphertext {
					t.Errorf("ciphertext size %d, want %d", len(enc.Ciphertext), params.Sizes.Ciphertext)
				}
				if !bytes.Equal(enc.SharedSecret, ss) {
					t.Fatalf("trial %d: shared secrets do not match", i)
				}
			}
		})
	}
}

func TestKEM_Deterministic(t *testing.T) {
	s1 := newSeeded(t, core.Kyber768Params)
	s2 := newSeeded(t, core.Kyber768Params)

	kp1, enc1, _ := roundTrip(t, s1)
	kp2, enc2, _ := roundTrip(t, s2)

	if !bytes.Equal(kp1.PublicKey, kp2.PublicKey) || !bytes.Equal(kp1.SecretKey, kp2.SecretKey) {
		t.Error("same seed produced different key pairs")
	}
	if !bytes.Equal(enc1.Ciphertext, enc2.Ciphertext) || !bytes.Equal(enc1.SharedSecret, enc2.SharedSecret) {
		t.Error("same seed produced different encapsulations")
	}

	// The stream advances between trials.
	kp3, _, _ := roundTrip(t, s1)
	if bytes.Equal(kp1.PublicKey, kp3.PublicKey) {
		t.Error("consecutive key pairs should differ")
	}

	// Reseeding restarts the stream.
	if err := s1.Seed(core.EntropyRamp(), nil, core.SecurityBits); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	kp4, _, _ := roundTrip(t, s1)
	if !bytes.Equal(kp1.PublicKey, kp4.PublicKey) {
		t.Error("reseeding did not restart the stream")
	}
}

func TestKEM_SeedMatchesDRBG(t *testing.T) {
	// The keypair seed is drawn as two 32-byte requests.
	s := newSeeded(t, core.Kyber512Params)
	kp, err := s.Keypair()
	if err != nil {
		t.Fatalf("Keypair failed: %v", err)
	}

	rng, _ := utils.NewDRBG(core.EntropyRamp(), nil, core.SecurityBits)
	seed := make([]byte, 64)
	if err := utils.ReadChunked(rng, seed, 32); err != nil {
		t.Fatalf("ReadChunked failed: %v", err)
	}
	pk, _ := core.Kyber512Params.Scheme.DeriveKeyPair(seed)
	want, _ := pk.MarshalBinary()
	if !bytes.Equal(kp.PublicKey, want) {
		t.Error("keypair seed is not drawn from the DRBG in 32-byte requests")
	}
}

func TestKEM_TamperedCiphertext(t *testing.T) {
	s := newSeeded(t, core.Kyber512Params)
	kp, err := s.Keypair()
	if err != nil {
		t.Fatalf("Keypair failed: %v", err)
	}
	enc, err := s.Encapsulate(kp.PublicKey)
	if err != nil {
		t.Fatalf("Encapsulate failed: %v", err)
	}

	bad := append([]byte{}, enc.Ciphertext...)
	bad[0] ^= 1
	ss, err := s.Decapsulate(kp.SecretKey, bad)
	if err != nil {
		t.Fatalf("Decapsulate failed: %v", err)
	}
	if bytes.Equal(ss, enc.SharedSecret) {
		t.Error("Decapsulate should return a different shared secret for a modified ciphertext")
	}
}

func TestKEM_Failures(t *testing.T) {
	s, err := New(core.Kyber512Params)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.Keypair(); !errors.Is(err, ErrNotSeeded) {
		t.Errorf("Keypair before Seed = %v, want ErrNotSeeded", err)
	}
	if _, err := s.Decapsulate(make([]byte, 1632), make([]byte, 768)); !errors.Is(err, ErrNotSeeded) {
		t.Errorf("Decapsulate before Seed = %v, want ErrNotSeeded", err)
	}

	if err := s.Seed(core.EntropyRamp(), []byte{1}, core.SecurityBits); err == nil {
		t.Error("Seed should reject short personalization")
	}

	s = newSeeded(t, core.Kyber512Params)
	if _, err := s.Encapsulate(make([]byte, 10)); !errors.Is(err, utils.ErrInvalidLength) {
		t.Errorf("Encapsulate(short pk) = %v, want ErrInvalidLength", err)
	}
	if _, err := s.Decapsulate(make([]byte, 10), make([]byte, 768)); !errors.Is(err, utils.ErrInvalidLength) {
		t.Errorf("Decapsulate(short sk) = %v, want ErrInvalidLength", err)
	}
	if _, err := s.Decapsulate(make([]byte, 1632), make([]byte, 10)); !errors.Is(err, utils.ErrInvalidLength) {
		t.Errorf("Decapsulate(short ct) = %v, want ErrInvalidLength", err)
	}

	broken := core.Kyber512Params
	broken.Sizes.Ciphertext++
	if _, err := New(broken); !errors.Is(err, kembench.ErrConfiguration) {
		t.Errorf("New(broken) = %v, want ErrConfiguration", err)
	}
}

func BenchmarkKEM_RoundTrip_Kyber768(b *testing.B) {
	s := newSeeded(b, core.Kyber768Params)
	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		roundTrip(b, s)
	}
}
