// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Injected via ldflags at build time, e.g.
//
//	go build -ldflags "-X github.com/msgdepot/msgdepot-go/internal/version.Version=v1.2.3"
var (
	Version   = "dev"     // Semantic version from git tags (e.g., "v1.2.3")
	GitCommit = "unknown" // Short git commit hash (e.g., "abc1234")
	BuildTime = "unknown" // Build timestamp in RFC3339 format
)

// Info contains build-time version information.
type Info struct {
	Version   string
	GitCommit string
	BuildTime string
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}
