package logger

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var (
	log = logrus.New()

	// path of the log file sink, empty when logging to stderr only
	loggingFilePath string
)

func init() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&prefixed.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  "2006-01-02 15:04:05",
		ForceFormatting:  true,
		QuoteEmptyFields: true,
	})
	log.SetLevel(logrus.InfoLevel)
}

// Init configures the verbosity level and an optional rotating log file.
// Diagnostics always go to stderr so result output on stdout stays clean
// for scripting.
func Init(logLevel int, logFilePath string) error {
	switch {
	case logLevel == 1:
		log.SetLevel(logrus.DebugLevel)
	case logLevel > 1:
		log.SetLevel(logrus.TraceLevel)
	}

	if logFilePath != "" {
		loggingFilePath = logFilePath
		rotator := &lumberjack.Logger{
			Filename:   logFilePath,
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     30,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, rotator))
	}

	return nil
}

// GetLogger returns a logger entry carrying the given prefix.
func GetLogger(prefix string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"prefix": prefix})
}

// ShowUsing logs where diagnostics are being written.
func ShowUsing() {
	if loggingFilePath != "" {
		GetLogger("logger").Infof("Using %q", loggingFilePath)
	}
}
