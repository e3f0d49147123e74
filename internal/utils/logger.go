package utils

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is the package-wide logger. Call InitLogger before use.
var Logger = logrus.New()

// prefixHook tags every entry with the service name so mixed log
// streams stay attributable.
type prefixHook struct {
	name string
}

func (h *prefixHook) Levels() []logrus.Level { return logrus.AllLevels }

func (h *prefixHook) Fire(entry *logrus.Entry) error {
	entry.Message = "[" + h.name + "] " + entry.Message
	return nil
}

// InitLogger configures Logger for stdout with full timestamps. The
// level comes from LOG_LEVEL and falls back to info.
func InitLogger(appName string) {
	Logger.SetOutput(os.Stdout)
	Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	raw := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if raw == "" {
		raw = "info"
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		Logger.Warnf("Unknown LOG_LEVEL %q, using info", raw)
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)

	Logger.AddHook(&prefixHook{name: appName})
}
