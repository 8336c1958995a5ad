package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// ConfigureLogging replaces the default logger with a timestamped stderr logger at the
// named level (debug, info, warn, error, fatal).
func ConfigureLogging(level, prefix string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("config: log level: %w", err)
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}))
	return nil
}
