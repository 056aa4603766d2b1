// Hyperion is a hyperbolic governance decision engine.
//
// It evaluates agent requests by embedding their context vectors into the
// Poincaré ball, classifying them against configured trust realms, running a
// bank of behavioral watchers, and gating the result through a five-factor
// multiplicative Omega score. Every decision is recorded in a hash-chained
// audit ledger.
//
// Usage:
//
//	# Evaluate JSONL requests from stdin with default configuration
//	hyperion run
//
//	# Evaluate with a custom configuration file
//	hyperion run --config /etc/hyperion/config.yaml
//
//	# Check a configuration file without evaluating anything
//	hyperion validate
//
//	# Verify the audit ledger chain
//	hyperion ledger verify
//
//	# Export the ledger as JSONL
//	hyperion ledger export --output ledger.jsonl
//
//	# Lift an entity's exile
//	hyperion reinstate agent-1
//
//	# Show version information
//	hyperion version
package main

func main() {
	Execute()
}
