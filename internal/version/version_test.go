// Copyright (c) 2026 Msgdepot Authors
// SPDX-License-Identifier: GPL-3.0-or-later

package version

import "testing"

func TestGetReflectsPackageVars(t *testing.T) {
	info := Get()

	if info.Version != Version {
		t.Errorf("Version = %q, want %q", info.Version, Version)
	}
	if info.GitCommit != GitCommit {
		t.Errorf("GitCommit = %q, want %q", info.GitCommit, GitCommit)
	}
	if info.BuildTime != BuildTime {
		t.Errorf("BuildTime = %q, want %q", info.BuildTime, BuildTime)
	}
}

func TestDefaultsBeforeInjection(t *testing.T) {
	if Version == "" || GitCommit == "" || BuildTime == "" {
		t.Error("build info defaults must be non-empty")
	}
}
