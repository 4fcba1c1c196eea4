// Package main provides the kembench command, which measures and verifies a
// KEM over a fixed number of seeded trials.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BackendStack21/kembench"
	"github.com/BackendStack21/kembench/bench"
	"github.com/BackendStack21/kembench/core"
	"github.com/BackendStack21/kembench/cycles"
	"github.com/BackendStack21/kembench/kem"
	"github.com/BackendStack21/kembench/report"
)

const (
	version = "1.0.0"
	appName = "kembench"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitCorrectness = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	variant := core.DefaultVariant
	if len(args) > 0 {
		switch args[0] {
		case "help", "--help", "-h":
			printUsage(stdout)
			return exitOK
		case "version", "--version", "-v":
			fmt.Fprintf(stdout, "%s version %s\n", appName, version)
			fmt.Fprintf(stdout, "kembench library version %s\n", kembench.Version)
			return exitOK
		case "list":
			for _, v := range core.Variants() {
				fmt.Fprintln(stdout, v)
			}
			return exitOK
		default:
			variant = kembench.Variant(args[0])
		}
	}
	if len(args) > 1 {
		fmt.Fprintf(stderr, "Unexpected arguments: %v\n", args[1:])
		printUsage(stderr)
		return exitFailure
	}

	params, err := core.GetParams(variant)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	timer, err := cycles.New()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v: %v\n", kembench.ErrConfiguration, err)
		return exitFailure
	}
	release, err := cycles.PinThread()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	} else {
		defer release()
	}

	scheme, err := kem.New(params)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	out, err := os.Create(core.ResultsFile(variant))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v: open results file: %v\n", kembench.ErrConfiguration, err)
		return exitFailure
	}
	defer out.Close()

	reporter := report.New(stdout, out)
	if err := reporter.Parameters(params.Variant, params.Sizes); err != nil {
		fmt.Fprintf(stderr, "Error: %v: %v\n", kembench.ErrConfiguration, err)
		return exitFailure
	}

	harness := bench.New(scheme, timer, reporter,
		bench.WithArtifactFile(core.ArtifactFile(variant)),
		bench.WithLog(stderr),
		bench.WithFrequency(core.CPUFreqHz),
	)
	_, err = harness.Run(core.DefaultRepeat)
	switch {
	case errors.Is(err, kembench.ErrCorrectness):
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCorrectness
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `%s - KEM correctness and cycle-count benchmark

USAGE:
    %s [VARIANT]
    %s <COMMAND>

Runs %d seeded trials of keypair, encapsulate and decapsulate for VARIANT
(default %s), stops at the first shared-secret mismatch, and prints average
cycles and seconds at an assumed %d Hz clock.

Output goes to the console and to <variant>_benchmark_output.txt. The first
trial's keys, ciphertext and shared secret are written to _<Variant>_output.txt.

COMMANDS:
    list        List supported variants
    version     Show version information
    help        Show this help message

EXIT STATUS:
    0  all trials passed
    1  configuration or KEM error
    2  shared secrets did not match
`, appName, appName, appName, core.DefaultRepeat, core.DefaultVariant, core.CPUFreqHz)
}
