// Package config provides configuration loading, merging, and validation
// facilities for the drive mirror.
//
// Configuration is assembled from multiple sources in the following priority
// order (earlier sources win for any field they set):
//  1. Environment variables
//  2. JSON config file
//  3. Built-in defaults
//
// The main entry point is [GetConfig]. Command-line parsing is deliberately
// absent: the embedding application owns its own CLI surface and passes a
// JSON path through the CONFIG environment variable instead.
package config
