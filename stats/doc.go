// Package stats implements the information-theoretic statistics used to score
// features: Shannon entropy, joint entropy and mutual information over
// discrete data, all measured in bits.
//
// Discrete data are integer codes stored in float64 (see IsDiscrete); symbols
// are compared by exact equality. Every function is pure and allocates a fresh
// result.
package stats
