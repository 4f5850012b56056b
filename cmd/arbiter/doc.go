// Arbiter is a CLI for two-perspective AI debates over code changes and
// plans.
//
// It sends a request plus a focused file excerpt to two independent AI
// reviewers, streams their progress, and combines the verdicts into a
// consensus score (0-100) with a recommendation.
//
// Usage:
//
//	arbiter run "Review the auth refactor" --file auth.py
//	arbiter run "Evaluate this migration plan" --file plan.md --json
//	arbiter history --stats             # aggregate past verdicts
//	arbiter providers                   # check reviewer availability
//	arbiter serve                       # expose the tools over MCP (stdio)
//	arbiter serve --http localhost:8123 # or over streamable HTTP
//
// See https://github.com/dshills/arbiter for full documentation.
package main
