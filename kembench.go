package kembench

// Version of the kembench harness.
const Version = "1.0.0"

// API summary:
//
// Harness:
//   - core.GetParams(variant) - Size parameters and KEM backend for a variant
//   - kem.New(params) - Seedable KEM over byte buffers
//   - cycles.New() - Time-stamp counter, fails where none exists
//   - report.New(sinks...) - Identical output to every sink
//   - bench.New(kem, counter, reporter, opts...).Run(repeat) - The trial loop
//
// Variants:
//   - Kyber512, Kyber768, Kyber1024 (round 3 Kyber)
//   - ML-KEM-512, ML-KEM-768, ML-KEM-1024 (FIPS 203)
//   - FrodoKEM-640-SHAKE
