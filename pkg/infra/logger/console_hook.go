package logger

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// consoleHook mirrors every entry to stdout when the logger's primary output
// is a file.
type consoleHook struct{}

func newConsoleHook() *consoleHook {
	return &consoleHook{}
}

func (h *consoleHook) Fire(entry *logrus.Entry) error {
	line, err := entry.Logger.Formatter.Format(entry)
	if err != nil {
		return err
	}
	fmt.Print(string(line))
	return nil
}

func (h *consoleHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
