package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrEmptyStoreDir indicates the content store directory is empty.
	ErrEmptyStoreDir = errors.New("config: store directory must not be empty")

	// ErrEmptyLedgerPath indicates the ledger database path is empty.
	ErrEmptyLedgerPath = errors.New("config: ledger path must not be empty")

	// ErrInvalidLogLevel indicates the log level is not recognized.
	ErrInvalidLogLevel = errors.New("config: invalid log level (must be \"debug\", \"info\", \"warn\", or \"error\")")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")

	// ErrInvalidConfig indicates the config file could not be parsed.
	ErrInvalidConfig = errors.New("config: invalid configuration file")
)
