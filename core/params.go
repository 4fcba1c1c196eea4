// Package core provides the KEM variant table and the fixed harness constants.
package core

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"

	circlkem "github.com/cloudflare/circl/kem"
	"github.com/cloudflare/circl/kem/frodo/frodo640shake"
	"github.com/cloudflare/circl/kem/kyber/kyber1024"
	"github.com/cloudflare/circl/kem/kyber/kyber512"
	"github.com/cloudflare/circl/kem/kyber/kyber768"
	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/BackendStack21/kembench"
)

// Harness constants. The run has no flags; these are the configuration.
const (
	// DefaultRepeat is the number of trials per run.
	DefaultRepeat uint64 = 1000

	// CPUFreqHz is the assumed processor clock used to turn cycles into
	// seconds. It is not measured; reported seconds are cycles / CPUFreqHz.
	CPUFreqHz uint64 = 2_900_000_000

	// SecurityBits is the strength requested from the randomness source.
	SecurityBits = 256

	// DefaultVariant runs when no variant is named.
	DefaultVariant = kembench.Kyber768
)

// Params describes one KEM variant.
type Params struct {
	Variant kembench.Variant
	Sizes   kembench.SizeParameters
	Scheme  circlkem.Scheme

	// SeedChunk is the size of each randomness request used to assemble the
	// keypair seed, matching how the reference implementation draws it.
	// Zero means the whole seed in one request.
	SeedChunk int
}

// Kyber512Params is round 3 Kyber at NIST level 1.
var Kyber512Params = Params{
	Variant:   kembench.Kyber512,
	Sizes:     kembench.SizeParameters{PublicKey: 800, SecretKey: 1632, Ciphertext: 768, SharedSecret: 32, Hash: 32},
	Scheme:    kyber512.Scheme(),
	SeedChunk: 32,
}

// Kyber768Params is round 3 Kyber at NIST level 3.
var Kyber768Params = Params{
	Variant:   kembench.Kyber768,
	Sizes:     kembench.SizeParameters{PublicKey: 1184, SecretKey: 2400, Ciphertext: 1088, SharedSecret: 32, Hash: 32},
	Scheme:    kyber768.Scheme(),
	SeedChunk: 32,
}

// Kyber1024Params is round 3 Kyber at NIST level 5.
var Kyber1024Params = Params{
	Variant:   kembench.Kyber1024,
	Sizes:     kembench.SizeParameters{PublicKey: 1568, SecretKey: 3168, Ciphertext: 1568, SharedSecret: 32, Hash: 32},
	Scheme:    kyber1024.Scheme(),
	SeedChunk: 32,
}

// MLKEM512Params is FIPS 203 ML-KEM-512.
var MLKEM512Params = Params{
	Variant:   kembench.MLKEM512,
	Sizes:     kembench.SizeParameters{PublicKey: 800, SecretKey: 1632, Ciphertext: 768, SharedSecret: 32, Hash: 32},
	Scheme:    mlkem512.Scheme(),
	SeedChunk: 32,
}

// MLKEM768Params is FIPS 203 ML-KEM-768.
var MLKEM768Params = Params{
	Variant:   kembench.MLKEM768,
	Sizes:     kembench.SizeParameters{PublicKey: 1184, SecretKey: 2400, Ciphertext: 1088, SharedSecret: 32, Hash: 32},
	Scheme:    mlkem768.Scheme(),
	SeedChunk: 32,
}

// MLKEM1024Params is FIPS 203 ML-KEM-1024.
var MLKEM1024Params = Params{
	Variant:   kembench.MLKEM1024,
	Sizes:     kembench.SizeParameters{PublicKey: 1568, SecretKey: 3168, Ciphertext: 1568, SharedSecret: 32, Hash: 32},
	Scheme:    mlkem1024.Scheme(),
	SeedChunk: 32,
}

// FrodoKEM640SHAKEParams is FrodoKEM-640 with SHAKE128 matrix generation.
var FrodoKEM640SHAKEParams = Params{
	Variant: kembench.FrodoKEM640SHAKE,
	Sizes:   kembench.SizeParameters{PublicKey: 9616, SecretKey: 19888, Ciphertext: 9720, SharedSecret: 16, Hash: 16},
	Scheme:  frodo640shake.Scheme(),
}

var registry = map[kembench.Variant]Params{
	kembench.Kyber512:         Kyber512Params,
	kembench.Kyber768:         Kyber768Params,
	kembench.Kyber1024:        Kyber1024Params,
	kembench.MLKEM512:         MLKEM512Params,
	kembench.MLKEM768:         MLKEM768Params,
	kembench.MLKEM1024:        MLKEM1024Params,
	kembench.FrodoKEM640SHAKE: FrodoKEM640SHAKEParams,
}

// GetParams returns the parameter set for the given variant.
func GetParams(variant kembench.Variant) (Params, error) {
	params, ok := registry[variant]
	if !ok {
		return Params{}, fmt.Errorf("%w: unknown KEM variant: %s", kembench.ErrConfiguration, variant)
	}
	return params, nil
}

// Variants lists every supported variant in name order.
func Variants() []kembench.Variant {
	out := make([]kembench.Variant, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ValidateParams checks the table entry against the sizes its backend reports.
func ValidateParams(params Params) error {
	if params.Scheme == nil {
		return errors.New("no KEM backend")
	}
	s := params.Sizes
	if s.PublicKey <= 0 || s.SecretKey <= 0 || s.Ciphertext <= 0 || s.SharedSecret <= 0 || s.Hash <= 0 {
		return errors.New("sizes must be positive")
	}
	if params.SeedChunk < 0 {
		return errors.New("seed chunk must not be negative")
	}
	checks := []struct {
		name       string
		want, have int
	}{
		{"public key", s.PublicKey, params.Scheme.PublicKeySize()},
		{"secret key", s.SecretKey, params.Scheme.PrivateKeySize()},
		{"ciphertext", s.Ciphertext, params.Scheme.CiphertextSize()},
		{"shared secret", s.SharedSecret, params.Scheme.SharedKeySize()},
	}
	for _, c := range checks {
		if c.want != c.have {
			return fmt.Errorf("%s size %d does not match backend size %d", c.name, c.want, c.have)
		}
	}
	return nil
}

// EntropyRamp returns the fixed seed for every run: byte i is i.
// Runs are reproducible by construction; this is not real entropy.
func EntropyRamp() [kembench.EntropySize]byte {
	var e [kembench.EntropySize]byte
	for i := range e {
		e[i] = byte(i)
	}
	return e
}

// MacroPrefix turns a variant name into the prefix used in the size dump,
// e.g. "ML-KEM-768" becomes "ML_KEM_768".
func MacroPrefix(variant kembench.Variant) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, string(variant))
}

// ResultsFile is the results sink for a variant, e.g. kyber768_benchmark_output.txt.
func ResultsFile(variant kembench.Variant) string {
	return strings.ToLower(MacroPrefix(variant)) + "_benchmark_output.txt"
}

// ArtifactFile is the first-trial artifact sink for a variant, e.g. _Kyber768_output.txt.
func ArtifactFile(variant kembench.Variant) string {
	return "_" + string(variant) + "_output.txt"
}
