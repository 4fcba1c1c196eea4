// Package report writes the harness's textual output.
//
// Every message is formatted once and the same bytes are written to every
// sink in order, so the console and the results file cannot drift apart.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/core"
)

// CorrectnessMarker is printed when the two shared secrets differ.
const CorrectnessMarker = "----- ERR CCA KEM ------"

// Reporter fans each formatted message out to a fixed list of sinks.
type Reporter struct {
	sinks []io.Writer
}

// New returns a Reporter writing to sinks in the given order.
func New(sinks ...io.Writer) *Reporter {
	return &Reporter{sinks: append([]io.Writer(nil), sinks...)}
}

// Printf formats a message once and writes it to every sink. A failing sink
// does not stop the others; all write errors are returned joined.
func (r *Reporter) Printf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	var errs []error
	for i, w := range r.sinks {
		if _, err := io.WriteString(w, msg); err != nil {
			errs = append(errs, fmt.Errorf("sink %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Parameters prints the variant name and its size parameters.
func (r *Reporter) Parameters(variant kembench.Variant, sizes kembench.SizeParameters) error {
	prefix := core.MacroPrefix(variant)
	lines := []struct {
		name  string
		value int
	}{
		{"PUBLICKEYBYTES", sizes.PublicKey},
		{"SECRETKEYBYTES", sizes.SecretKey},
		{"CIPHERTEXTBYTES", sizes.Ciphertext},
		{"KEYBYTES", sizes.SharedSecret},
		{"HASHBYTES", sizes.Hash},
	}

	if err := r.Printf("Variant: %s\n", variant); err != nil {
		return err
	}
	for _, l := range lines {
		if err := r.Printf("%s_%s=%d\n", prefix, l.name, l.value); err != nil {
			return err
		}
	}
	return r.Printf("\n")
}

// CorrectnessError prints the mismatch marker.
func (r *Reporter) CorrectnessError() error {
	return r.Printf("%s\n", CorrectnessMarker)
}

// NoTrials reports a run that completed zero trials. No average is computed.
func (r *Reporter) NoTrials() error {
	if err := r.Printf("Repeat is : %d\n", 0); err != nil {
		return err
	}
	return r.Printf("No trials executed, averages not computed\n")
}

// Summary prints the averaged cycles and seconds for each phase. Every
// seconds figure in one summary uses the same clock frequency.
func (r *Reporter) Summary(s kembench.Summary) error {
	phases := []struct {
		name  string
		stats kembench.PhaseStats
	}{
		{"key_pair", s.Keypair},
		{"enc", s.Encapsulate},
		{"dec", s.Decapsulate},
	}

	if err := r.Printf("Repeat is : %d\n", s.Repeat); err != nil {
		return err
	}
	for _, p := range phases {
		if err := r.Printf("Average times %s (cycles): \t %d \n", p.name, p.stats.Cycles); err != nil {
			return err
		}
	}
	for _, p := range phases {
		if err := r.Printf("Average times %s (seconds): \t %.9f \n", p.name, p.stats.Seconds); err != nil {
			return err
		}
	}
	return nil
}
