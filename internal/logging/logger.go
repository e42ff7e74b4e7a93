// Package logging holds the module-wide diagnostic logger.
package logging

import "log"

// Logf is the diagnostic logger. It defaults to log.Printf and may be
// replaced with SetLogger; tests use it to capture or mute output.
var Logf func(format string, v ...any) = log.Printf

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
