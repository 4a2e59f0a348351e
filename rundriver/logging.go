package rundriver

import "github.com/rs/zerolog"

// defaultLogger discards all output until WithLogger overrides it, the
// standard zerolog idiom for an optional logging dependency.
func defaultLogger() zerolog.Logger {
	return zerolog.Nop()
}
