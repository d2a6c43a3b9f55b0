package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Release builds inject these with -ldflags. When they are empty the
// values fall back to what the Go toolchain embedded in the binary.
var (
	version = ""
	commit  = ""
	date    = ""
)

// getVersion reports the release version, the module version from the
// build info when no release version was injected, or "(devel)" for a
// plain go build.
func getVersion() string {
	if version != "" {
		return version
	}
	if buildInfo, ok := debug.ReadBuildInfo(); ok && buildInfo.Main.Version != "" {
		return buildInfo.Main.Version
	}
	return "(devel)"
}

// getCommit reports the short commit hash, preferring the injected
// value over the embedded vcs.revision.
func getCommit() string {
	if commit != "" {
		return commit
	}
	if revision := buildSetting("vcs.revision"); revision != "" {
		if len(revision) > 7 {
			return revision[:7]
		}
		return revision
	}
	return "unknown"
}

// getDate reports the build timestamp, preferring the injected value
// over the embedded vcs.time.
func getDate() string {
	if date != "" {
		return date
	}
	if stamp := buildSetting("vcs.time"); stamp != "" {
		return stamp
	}
	return "unknown"
}

// buildSetting looks up a key in the binary's embedded build settings.
// It returns "" when the key is absent or no build info is available.
func buildSetting(key string) string {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, setting := range buildInfo.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of websearch.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "websearch version %s\n", getVersion())
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", getCommit())
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", getDate())
		},
	}
}
