// Package mcptools exposes debates as MCP tools so editor-embedded agents
// can request reviews, iterate toward a target consensus, and read past
// verdicts.
package mcptools
