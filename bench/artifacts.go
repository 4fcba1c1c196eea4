package bench

import (
	"fmt"
	"io"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/report"
	"github.com/BackendStack21/kembench/utils"
)

// artifactSink is the best-effort trial-0 artifact file. Any failure is
// logged and turns the sink off; the run itself is never affected. A nil
// *artifactSink is a valid, disabled sink.
type artifactSink struct {
	wc  io.WriteCloser
	w   *report.ArtifactWriter
	log io.Writer
}

func (h *Harness) newArtifactSink() *artifactSink {
	if h.openArtifacts == nil {
		return nil
	}
	wc, err := h.openArtifacts()
	if err != nil {
		fmt.Fprintf(h.log, "%v: open: %v\n", kembench.ErrArtifactCapture, err)
		return nil
	}
	return &artifactSink{wc: wc, w: report.NewArtifactWriter(wc), log: h.log}
}

func (a *artifactSink) field(label string, data []byte) {
	if a == nil || a.w == nil {
		return
	}
	if err := a.w.Field(label, data); err != nil {
		fmt.Fprintf(a.log, "%v: %v\n", kembench.ErrArtifactCapture, err)
		a.w = nil
	}
}

func (a *artifactSink) close() {
	if a == nil {
		return
	}
	if a.w != nil {
		fmt.Fprintf(a.log, "artifact fingerprint (sha3-256): %s\n", utils.UpperHex(a.w.Fingerprint()))
	}
	if err := a.wc.Close(); err != nil {
		fmt.Fprintf(a.log, "%v: close: %v\n", kembench.ErrArtifactCapture, err)
	}
}
