// ============================================================================
// etds - Predictive Expression Translator
// ============================================================================
//
// Package:     version
// Description: Build and release version information
// Author:      msto63
// Created:     2026-10-19
// License:     MIT
// ============================================================================

package version

import (
	"fmt"
	"runtime"
)

// Application version
const Version = "0.1.0"

// Set via -ldflags at build time
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info describes the running binary
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the version information of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders the version on one line
func (i Info) String() string {
	return fmt.Sprintf("etds %s (commit %s, built %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}
