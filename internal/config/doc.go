// Package config loads arbiter configuration by merging defaults, the JSON
// config file, ARBITER_* environment variables, and CLI overrides, in that
// order.
package config
