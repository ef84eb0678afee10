package entity

import "time"

// Result is whatever the provider returned for a task. The runner hands it
// to the caller exactly as the provider produced it.
type Result struct {
	// Final is the provider's answer as plain text.
	Final string
	// Steps holds the provider's itemized output when it produced one
	// (e.g. a numbered plan or a list of findings). May be empty.
	Steps []string
	// Raw is the verbatim provider payload, kept for logging.
	Raw string
	// Provider names the adapter that produced this result.
	Provider string
	// Elapsed is the provider-side round-trip time.
	Elapsed time.Duration
}
