// Package debate runs two-perspective reviews. An Orchestrator invokes a
// primary and a counter provider concurrently, streams progress as events,
// and combines the two verdicts through the consensus moderator. Sessions
// support iterative re-runs toward a target score.
package debate
