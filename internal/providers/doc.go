// Package providers abstracts the AI tools that produce debate perspectives.
//
// A Provider exposes exactly three capabilities: Invoke sends a prompt and
// returns the tool's response with an extracted 0-100 score, IsAvailable
// reports whether the tool can currently be used, and Name identifies it for
// event attribution. Transport details never leak past this interface.
//
// Two transports are implemented: CLI (subprocess invocation of a locally
// installed tool) and Bridge (HTTP to a localhost companion process). Score
// extraction is best-effort pattern matching over the response text with a
// documented default of 75 when no score is found; it makes no attempt to be
// robust against adversarial output.
//
// Timeouts and retry policy live here, not in the orchestrator.
package providers
