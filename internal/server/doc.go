// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package server runs the HTTP transport.
//
// It covers startup, signal handling, and graceful shutdown: the server stops
// accepting connections when its context is cancelled and drains in-flight
// requests for at most the configured shutdown timeout.
package server
