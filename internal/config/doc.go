// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads, merges and validates the server configuration.
//
// Sources are consulted in the following order and merged with mergo; a
// field set by an earlier source is never overwritten by a later one:
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file (path from CONFIG or -c/-config)
//  4. Built-in defaults
//
// The entry point is [GetStructuredConfig].
package config
