// Package bench runs the repeated-trial KEM measurement loop.
package bench

import (
	"fmt"
	"io"
	"os"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/core"
	"github.com/BackendStack21/kembench/cycles"
	"github.com/BackendStack21/kembench/report"
	"github.com/BackendStack21/kembench/utils"
)

// KEM is the capability set the harness drives.
type KEM interface {
	Seed(entropy [kembench.EntropySize]byte, personalization []byte, securityBits int) error
	Keypair() (*kembench.KeyPair, error)
	Encapsulate(publicKey []byte) (*kembench.EncapsulationResult, error)
	Decapsulate(secretKey, ciphertext []byte) ([]byte, error)
}

// ArtifactOpener opens the first-trial artifact sink. It is called at most
// once per run.
type ArtifactOpener func() (io.WriteCloser, error)

// Harness holds everything one run needs. Runs are strictly sequential; a
// Harness must not be shared between goroutines.
type Harness struct {
	kem      KEM
	counter  cycles.Counter
	reporter *report.Reporter

	openArtifacts ArtifactOpener
	log           io.Writer
	freqHz        uint64
}

// Option configures a Harness.
type Option func(*Harness)

// WithArtifacts sets the first-trial artifact sink.
func WithArtifacts(open ArtifactOpener) Option {
	return func(h *Harness) { h.openArtifacts = open }
}

// WithArtifactFile writes first-trial artifacts to path, truncating it.
func WithArtifactFile(path string) Option {
	return WithArtifacts(func() (io.WriteCloser, error) {
		return os.Create(path)
	})
}

// WithLog sets where diagnostics go. They never reach the report sinks.
func WithLog(w io.Writer) Option {
	return func(h *Harness) { h.log = w }
}

// WithFrequency overrides the assumed clock frequency used for seconds.
func WithFrequency(hz uint64) Option {
	return func(h *Harness) { h.freqHz = hz }
}

// New returns a Harness. Without options it captures no artifacts, discards
// diagnostics and converts cycles with core.CPUFreqHz.
func New(k KEM, counter cycles.Counter, reporter *report.Reporter, opts ...Option) *Harness {
	h := &Harness{
		kem:      k,
		counter:  counter,
		reporter: reporter,
		log:      io.Discard,
		freqHz:   core.CPUFreqHz,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run seeds the KEM once with the fixed entropy ramp and executes repeat
// trials. It stops at the first shared-secret mismatch with ErrCorrectness,
// after writing the error marker to every report sink; no averages are
// printed in that case. The returned Accumulator covers the trials that
// completed.
func (h *Harness) Run(repeat uint64) (kembench.Accumulator, error) {
	var acc kembench.Accumulator

	if err := h.kem.Seed(core.EntropyRamp(), nil, core.SecurityBits); err != nil {
		return acc, fmt.Errorf("%w: seed: %v", kembench.ErrPhase, err)
	}

	for i := uint64(0); i < repeat; i++ {
		if err := h.trial(i, &acc); err != nil {
			return acc, err
		}
	}

	if acc.Trials == 0 {
		if err := h.reporter.NoTrials(); err != nil {
			return acc, fmt.Errorf("%w: write report: %v", kembench.ErrConfiguration, err)
		}
		return acc, nil
	}

	summary, err := acc.Summarize(h.freqHz)
	if err != nil {
		return acc, fmt.Errorf("%w: %v", kembench.ErrConfiguration, err)
	}
	if err := h.reporter.Summary(summary); err != nil {
		return acc, fmt.Errorf("%w: write report: %v", kembench.ErrConfiguration, err)
	}
	return acc, nil
}

// trial runs one keypair/encapsulate/decapsulate exchange. For trial 0 the
// artifact sink is opened, written and closed within this call.
func (h *Harness) trial(i uint64, acc *kembench.Accumulator) error {
	var artifacts *artifactSink
	if i == 0 {
		defer func() { artifacts.close() }()
	}

	start := h.counter.Sample()
	kp, err := h.kem.Keypair()
	end := h.counter.Sample()
	if err != nil {
		return h.phaseError("keypair", i, err)
	}
	if acc.Keypair, err = utils.SafeAddUint64(acc.Keypair, cycles.Elapsed(start, end)); err != nil {
		return fmt.Errorf("%w: trial %d keypair cycles: %v", kembench.ErrConfiguration, i, err)
	}

	if i == 0 {
		artifacts = h.newArtifactSink()
		artifacts.field(report.LabelPublicKey, kp.PublicKey)
		artifacts.field(report.LabelSecretKey, kp.SecretKey)
	}

	start = h.counter.Sample()
	enc, err := h.kem.Encapsulate(kp.PublicKey)
	end = h.counter.Sample()
	if err != nil {
		return h.phaseError("encapsulate", i, err)
	}
	if acc.Encapsulate, err = utils.SafeAddUint64(acc.Encapsulate, cycles.Elapsed(start, end)); err != nil {
		return fmt.Errorf("%w: trial %d encapsulate cycles: %v", kembench.ErrConfiguration, i, err)
	}

	if i == 0 {
		artifacts.field(report.LabelCiphertext, enc.Ciphertext)
		artifacts.field(report.LabelSharedSecret, enc.SharedSecret)
	}

	start = h.counter.Sample()
	ss, err := h.kem.Decapsulate(kp.SecretKey, enc.Ciphertext)
	end = h.counter.Sample()
	if err != nil {
		return h.phaseError("decapsulate", i, err)
	}
	if acc.Decapsulate, err = utils.SafeAddUint64(acc.Decapsulate, cycles.Elapsed(start, end)); err != nil {
		return fmt.Errorf("%w: trial %d decapsulate cycles: %v", kembench.ErrConfiguration, i, err)
	}

	if !utils.ConstantTimeEqual(enc.SharedSecret, ss) {
		at := utils.FirstDifference(enc.SharedSecret, ss)
		fmt.Fprintf(h.log, "trial %d: shared secrets differ at byte %d\n", i, at)
		if err := h.reporter.CorrectnessError(); err != nil {
			fmt.Fprintf(h.log, "write error marker: %v\n", err)
		}
		return fmt.Errorf("%w: trial %d: shared secrets differ at byte %d", kembench.ErrCorrectness, i, at)
	}

	acc.Trials++
	return nil
}

func (h *Harness) phaseError(phase string, i uint64, err error) error {
	fmt.Fprintf(h.log, "trial %d: %s error: %v\n", i, phase, err)
	return fmt.Errorf("%w: trial %d %s: %v", kembench.ErrPhase, i, phase, err)
}
