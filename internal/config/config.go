package config

import (
	"os"

	"devtree/internal/application"
	"devtree/internal/domain"
)

// Environment variables read by the binaries
const (
	EnvSnapshot   = "DEVTREE_SNAPSHOT"
	EnvLogLevel   = "DEVTREE_LOG_LEVEL"
	EnvIDCapacity = "DEVTREE_ID_CAPACITY"
)

const DefaultLogLevel = "warn"

// SnapshotPath returns the snapshot file from DEVTREE_SNAPSHOT. Empty means
// the live platform service is used.
func SnapshotPath() string {
	return os.Getenv(EnvSnapshot)
}

// LogLevel returns the log level from DEVTREE_LOG_LEVEL env var,
// falling back to DefaultLogLevel.
func LogLevel() string {
	if env := os.Getenv(EnvLogLevel); env != "" {
		return env
	}
	return DefaultLogLevel
}

// IDCapacity returns the identifier buffer capacity from
// DEVTREE_ID_CAPACITY, falling back to domain.DefaultIDCapacity. An invalid
// value is reported and the default returned.
func IDCapacity() (int, error) {
	env := os.Getenv(EnvIDCapacity)
	if env == "" {
		return domain.DefaultIDCapacity, nil
	}
	capacity, err := application.ParseIDCapacity(EnvIDCapacity, env)
	if err != nil {
		return domain.DefaultIDCapacity, err
	}
	return capacity, nil
}
