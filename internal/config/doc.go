// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources; earlier sources take
// precedence over later ones for non-zero fields:
//  1. Command-line flags
//  2. Environment variables (optionally seeded from a .env file)
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the command-line client.
package config
