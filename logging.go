/*

Logging handle used across subkit.

The teacher (srtgears) prints debug messages through a package-level Debug
bool and a debugf() helper built on the standard log package. Here that
becomes a zerolog.Logger handle that callers construct and pass in (or accept
the lazily-built default), never a logger acquired as an import side effect.

*/

package subkit

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	defaultLogger     zerolog.Logger
	defaultLoggerOnce sync.Once
)

// Default returns a process-wide logger, built on first use. Components
// that aren't handed a logger explicitly fall back to this one; it is never
// constructed at package init time.
func Default() zerolog.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: false}).
			With().Timestamp().Logger().
			Level(zerolog.InfoLevel)
	})
	return defaultLogger
}

// SetDefaultLevel adjusts the level of the logger returned by Default. It is
// the moral equivalent of the teacher's package-level Debug flag
// ("Debug bool tells whether to print debug messages").
func SetDefaultLevel(level zerolog.Level) {
	Default()
	defaultLogger = defaultLogger.Level(level)
}

// loggerOrDefault returns l if it is non-nil (i.e. was explicitly wired by
// the caller), otherwise the package default. Functions take *zerolog.Logger
// so "not wired" is representable as nil, distinguishing it from a logger
// deliberately set to a silent level.
func loggerOrDefault(l *zerolog.Logger) zerolog.Logger {
	if l != nil {
		return *l
	}
	return Default()
}
