// Package output renders debate stream events and final outcomes as
// terminal text or JSON lines. Writers are pure consumers: they never
// influence the debate, only display it.
package output
