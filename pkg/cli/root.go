// Package cli wires the promptforge commands: init scaffolds a project, run
// serves one, version prints build information.
package cli

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var cliVersion string

var rootCmd = &cobra.Command{
	Use:           "promptforge",
	Short:         "promptforge scaffolds and runs prompt-serving MCP servers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. The returned error has already been chosen
// for display; the caller only decides the exit code.
func Execute(version string) error {
	if version == "" {
		cliVersion = getDevVersion().String()
	} else {
		cliVersion = version
	}

	return rootCmd.Execute()
}

type devVersion struct {
	commit               string
	hasUncommitedChanges bool
}

func (dv devVersion) String() string {
	if dv.hasUncommitedChanges {
		return fmt.Sprintf("development@%s+uncommitedChanges", dv.commit)
	}
	return fmt.Sprintf("development@%s", dv.commit)
}

func getDevVersion() devVersion {
	dv := devVersion{}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "vcs.revision":
				if len(setting.Value) >= 7 {
					dv.commit = setting.Value[:7]
				} else {
					dv.commit = setting.Value
				}
			case "vcs.modified":
				dv.hasUncommitedChanges = setting.Value == "true"
			}
		}
	}

	return dv
}
