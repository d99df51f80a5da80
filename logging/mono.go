package logging

import (
	"strings"

	"github.com/go-monolith/mono"
	"github.com/sirupsen/logrus"
)

// MonoLevel maps a logrus level name onto the framework's coarser scale.
// Unknown or empty names map to info; trace maps to debug and fatal/panic to
// error.
func MonoLevel(level string) mono.LogLevel {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return mono.LogLevelInfo
	}
	switch parsed {
	case logrus.TraceLevel, logrus.DebugLevel:
		return mono.LogLevelDebug
	case logrus.WarnLevel:
		return mono.LogLevelWarn
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return mono.LogLevelError
	default:
		return mono.LogLevelInfo
	}
}

// MonoFormat maps a format accepted by New onto the framework's formats.
func MonoFormat(format string) mono.LogFormat {
	if strings.ToLower(format) == FormatJSON {
		return mono.LogFormatJSON
	}
	return mono.LogFormatText
}
