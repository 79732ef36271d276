package core

// RandSource abstracts the randomness used for outcome draws. Draws happen
// server-side only, after the stake has been validated, so a client can
// never predict or replay an outcome. Tests substitute a fixed source.
type RandSource interface {
	// Intn returns a uniformly distributed int in [0, n)
	Intn(n int) int
}
