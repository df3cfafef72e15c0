package config

import (
	"path/filepath"
	"time"
)

// StructuredConfig is the top-level configuration container for the drive
// mirror. It aggregates all sub-configurations and is populated by merging
// values from defaults, environment variables, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Mirror holds the on-disk locations of the mirror state.
	Mirror Mirror `envPrefix:"MIRROR_" json:"mirror"`

	// Transfer holds streaming parameters for downloads and uploads.
	Transfer Transfer `envPrefix:"TRANSFER_" json:"transfer"`

	// Workers holds configuration for background worker processes.
	Workers Workers `envPrefix:"WORKERS_" json:"workers"`

	// Log holds structured-log output settings.
	Log Log `envPrefix:"LOG_" json:"log"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged beneath the values
	// already loaded from environment variables.
	// Populated via the CONFIG environment variable.
	JSONFilePath string `env:"CONFIG" json:"-"`
}

// Mirror holds the filesystem layout of the local mirror.
type Mirror struct {
	// DataDir is the directory holding the mirror database and any
	// auxiliary state. Created on first use.
	// Env: MIRROR_DATA_DIR
	DataDir string `env:"DATA_DIR" json:"data_dir"`

	// DatabasePath is the SQLite file holding the mirrored tree. A
	// relative path is resolved against DataDir.
	// Env: MIRROR_DATABASE_PATH
	DatabasePath string `env:"DATABASE_PATH" json:"database_path"`
}

// Transfer holds byte-stream transfer tuning.
type Transfer struct {
	// ChunkSize is the read/write unit for downloads and uploads, in
	// bytes.
	// Env: TRANSFER_CHUNK_SIZE
	ChunkSize int `env:"CHUNK_SIZE" json:"chunk_size"`
}

// Workers holds background worker settings.
type Workers struct {
	// SyncInterval is the period of the background sync worker.
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval Duration `env:"SYNC_INTERVAL" json:"sync_interval"`
}

// Log holds log output settings. An empty Path means stdout.
type Log struct {
	// Path is the log file location. Rotated by size when set.
	// Env: LOG_PATH
	Path string `env:"PATH" json:"path"`

	// MaxSizeMB is the rotation threshold in megabytes.
	// Env: LOG_MAX_SIZE_MB
	MaxSizeMB int `env:"MAX_SIZE_MB" json:"max_size_mb"`

	// MaxBackups is the number of rotated files to keep.
	// Env: LOG_MAX_BACKUPS
	MaxBackups int `env:"MAX_BACKUPS" json:"max_backups"`

	// MaxAgeDays is the age limit for rotated files.
	// Env: LOG_MAX_AGE_DAYS
	MaxAgeDays int `env:"MAX_AGE_DAYS" json:"max_age_days"`
}

// defaults returns the built-in configuration used as the base layer of the
// merge.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Mirror: Mirror{
			DataDir:      filepath.Join("~", ".local", "share", "drivemirror"),
			DatabasePath: "mirror.db",
		},
		Transfer: Transfer{
			ChunkSize: 64 * 1024,
		},
		Workers: Workers{
			SyncInterval: Duration(5 * time.Minute),
		},
	}
}

// DatabaseFile returns the absolute database location, resolving a relative
// DatabasePath against DataDir.
func (c *StructuredConfig) DatabaseFile() string {
	if filepath.IsAbs(c.Mirror.DatabasePath) {
		return c.Mirror.DatabasePath
	}
	return filepath.Join(c.Mirror.DataDir, c.Mirror.DatabasePath)
}

// validate checks the assembled configuration for values the mirror cannot
// run with.
func (c *StructuredConfig) validate() error {
	if c.Mirror.DataDir == "" || c.Mirror.DatabasePath == "" {
		return ErrInvalidMirrorConfigs
	}
	if c.Transfer.ChunkSize <= 0 {
		return ErrInvalidTransferConfigs
	}
	if time.Duration(c.Workers.SyncInterval) < 0 {
		return ErrInvalidWorkerConfigs
	}
	return nil
}

// GetConfig assembles the configuration from environment variables, the
// optional JSON file named by CONFIG, and built-in defaults.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		withDefaults().
		build()
}
