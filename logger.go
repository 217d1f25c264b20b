package aclhelper

import "github.com/sirupsen/logrus"

// Log is the package-wide logger. cmd/aclhelper configures its level
// and output (file or syslog) from the configuration file before any
// other component initializes.
var Log = logrus.New()

// debugLevel maps the config file's `debug = 0..10` scale onto
// logrus's smaller set of levels.
func debugLevel(n int) logrus.Level {
	switch {
	case n <= 2:
		return logrus.ErrorLevel
	case n <= 4:
		return logrus.WarnLevel
	case n <= 6:
		return logrus.InfoLevel
	case n <= 8:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}

// SetDebugLevel configures Log's verbosity from the config file's
// 0..10 debug scale. A level of 0 silences all output.
func SetDebugLevel(n int) {
	if n <= 0 {
		Log.SetOutput(discardWriter{})
		return
	}
	Log.SetLevel(debugLevel(n))
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
