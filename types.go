// Package kembench measures key-encapsulation mechanisms.
//
// A run seeds a deterministic randomness source once, then repeats
// keypair generation, encapsulation and decapsulation, checking that both
// sides derive the same shared secret and accumulating processor cycles for
// each phase.
package kembench

import "errors"

// Variant names a KEM parameter set, e.g. "Kyber768".
type Variant string

const (
	Kyber512         Variant = "Kyber512"
	Kyber768         Variant = "Kyber768"
	Kyber1024        Variant = "Kyber1024"
	MLKEM512         Variant = "ML-KEM-512"
	MLKEM768         Variant = "ML-KEM-768"
	MLKEM1024        Variant = "ML-KEM-1024"
	FrodoKEM640SHAKE Variant = "FrodoKEM-640-SHAKE"
)

// EntropySize is the length of the seed handed to the randomness source.
const EntropySize = 48

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrConfiguration means the run could not be set up or its report
	// could not be written. Fatal.
	ErrConfiguration = errors.New("configuration failure")

	// ErrArtifactCapture means the first-trial artifact file could not be
	// opened or written. The run continues without artifacts.
	ErrArtifactCapture = errors.New("artifact capture failure")

	// ErrCorrectness means decapsulation recovered a shared secret different
	// from the one produced by encapsulation. Fatal to the run.
	ErrCorrectness = errors.New("correctness failure")

	// ErrPhase means the KEM itself reported an error.
	ErrPhase = errors.New("kem phase failure")

	// ErrNoTrials is returned when averages are requested for an empty run.
	ErrNoTrials = errors.New("no trials executed")
)

// =============================================================================
// Parameter Types
// =============================================================================

// SizeParameters holds the byte lengths a KEM variant uses on the wire.
type SizeParameters struct {
	PublicKey    int `json:"public_key"`
	SecretKey    int `json:"secret_key"`
	Ciphertext   int `json:"ciphertext"`
	SharedSecret int `json:"shared_secret"`
	Hash         int `json:"hash"` // Length of the public-key hash kept in the secret key
}

// =============================================================================
// Per-trial Types
// =============================================================================

// KeyPair is a serialized public/secret key pair.
type KeyPair struct {
	PublicKey []byte
	SecretKey []byte
}

// EncapsulationResult is the sender side of one exchange.
type EncapsulationResult struct {
	Ciphertext   []byte
	SharedSecret []byte
}

// ArtifactRecord is the snapshot persisted for the first trial.
type ArtifactRecord struct {
	PublicKey    []byte
	SecretKey    []byte
	Ciphertext   []byte
	SharedSecret []byte
}

// =============================================================================
// Timing Types
// =============================================================================

// Accumulator holds running cycle totals for each phase.
type Accumulator struct {
	Keypair     uint64
	Encapsulate uint64
	Decapsulate uint64
	Trials      uint64
}

// PhaseStats is the average cost of one phase.
type PhaseStats struct {
	Cycles  uint64
	Seconds float64
}

// Summary is the averaged result of a completed run.
type Summary struct {
	Repeat      uint64
	FreqHz      uint64
	Keypair     PhaseStats
	Encapsulate PhaseStats
	Decapsulate PhaseStats
}

// Summarize averages the accumulated cycles over the completed trials and
// converts them to seconds with the assumed clock frequency freqHz.
// Averages use integer division, and seconds are derived from the truncated
// average. It returns ErrNoTrials when no trial completed.
func (a Accumulator) Summarize(freqHz uint64) (Summary, error) {
	if a.Trials == 0 {
		return Summary{}, ErrNoTrials
	}
	if freqHz == 0 {
		return Summary{}, errors.New("clock frequency must be positive")
	}
	return Summary{
		Repeat:      a.Trials,
		FreqHz:      freqHz,
		Keypair:     phaseStats(a.Keypair, a.Trials, freqHz),
		Encapsulate: phaseStats(a.Encapsulate, a.Trials, freqHz),
		Decapsulate: phaseStats(a.Decapsulate, a.Trials, freqHz),
	}, nil
}

func phaseStats(total, trials, freqHz uint64) PhaseStats {
	avg := total / trials
	return PhaseStats{
		Cycles:  avg,
		Seconds: float64(avg) / float64(freqHz),
	}
}
