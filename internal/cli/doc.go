// Package cli implements the arbiter command-line interface.
package cli
