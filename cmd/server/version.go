// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import "runtime/debug"

const unknownVersion = "dev"

// resolveVersion picks the reported app version: configuration first, then
// the -ldflags value, then the module version recorded by the toolchain.
func resolveVersion(configured, linked string) string {
	if configured != "" {
		return configured
	}
	if linked != "" {
		return linked
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return unknownVersion
}
