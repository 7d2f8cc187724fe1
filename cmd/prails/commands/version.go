package commands

import (
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo describes the build.
type VersionInfo struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	Built     string `json:"built"      yaml:"built"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Long:  "Display detailed version information about the prails CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Version:   version,
				Commit:    commit,
				Built:     date,
				GoVersion: runtime.Version(),
			}

			out := cmd.OutOrStdout()

			if ok, err := renderStructured(out, info); ok || err != nil {
				return err
			}

			return renderDetails(out, [][2]string{
				{"Version", info.Version},
				{"Commit", info.Commit},
				{"Built", info.Built},
				{"Go", info.GoVersion},
			})
		},
	}
}
