package report

import (
	"fmt"
	"hash"
	"io"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/utils"
)

// Artifact labels, in the order they are written.
const (
	LabelPublicKey    = "Public Key"
	LabelSecretKey    = "Secret Key"
	LabelCiphertext   = "Ciphertext"
	LabelSharedSecret = "Shared Secret"
)

// ArtifactWriter writes "<Label>: <HEXUPPER>" lines and keeps a running
// SHA3-256 fingerprint of everything written.
type ArtifactWriter struct {
	w      io.Writer
	digest hash.Hash
}

// NewArtifactWriter wraps w.
func NewArtifactWriter(w io.Writer) *ArtifactWriter {
	d := utils.NewDomainHash(utils.DomainArtifact)
	return &ArtifactWriter{w: io.MultiWriter(w, d), digest: d}
}

// Field writes one labelled buffer.
func (a *ArtifactWriter) Field(label string, data []byte) error {
	if _, err := fmt.Fprintf(a.w, "%s: %s\n", label, utils.UpperHex(data)); err != nil {
		return fmt.Errorf("write %s: %w", label, err)
	}
	return nil
}

// Record writes a complete artifact record.
func (a *ArtifactWriter) Record(rec kembench.ArtifactRecord) error {
	fields := []struct {
		label string
		data  []byte
	}{
		{LabelPublicKey, rec.PublicKey},
		{LabelSecretKey, rec.SecretKey},
		{LabelCiphertext, rec.Ciphertext},
		{LabelSharedSecret, rec.SharedSecret},
	}
	for _, f := range fields {
		if err := a.Field(f.label, f.data); err != nil {
			return err
		}
	}
	return nil
}

// Fingerprint returns the SHA3-256 digest of the lines written so far.
func (a *ArtifactWriter) Fingerprint() []byte {
	return a.digest.Sum(nil)
}
