//go:build swgldebug

package debug

// Enabled reports whether assertions are compiled in.
const Enabled = true
