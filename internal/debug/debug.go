// Package debug holds precondition checks that compile to nothing unless the
// module is built with the swgldebug tag.
package debug

import "fmt"

// Assert panics with the formatted message when cond is false and assertions
// are enabled. In release builds the call inlines to nothing.
func Assert(cond bool, format string, args ...any) {
	if Enabled && !cond {
		panic(fmt.Sprintf("swgl: assertion failed: "+format, args...))
	}
}
