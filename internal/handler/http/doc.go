// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the HTTP transport layer of the authentication core.
//
// It exposes route wiring, request handlers, and middleware used by the REST
// API. Request tracing, access logging, bearer authentication and role checks
// are handled in this package before requests are delegated to the service
// layer.
package http
