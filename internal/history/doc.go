// Package history persists completed debate records as JSON files so past
// verdicts can be listed and aggregated from the CLI and the MCP tools.
package history
