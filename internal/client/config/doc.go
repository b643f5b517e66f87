// Package config loads runtime configuration for the ChatFlow CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, with an optional .env file loaded first
//     (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST endpoint
//	-t int      request timeout (seconds)
//	-d string   local session database path
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "300ms" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:3046",
//	  "request_timeout": "10s",
//	  "database_path": "chatflow.db",
//	  "search_debounce": "300ms"
//	}
package config
