// Package state keeps per-user conversation state in memory.
// Entries are lost on restart.
package state
