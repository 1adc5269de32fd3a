package cli

import (
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the seedmerge version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := currentBuild()
		if wantJSON(cmd) {
			return printJSON(cmd, info)
		}
		cmd.Printf("seedmerge version %s\n", info.Version)
		if verbose {
			cmd.Printf("  go:     %s\n", info.GoVersion)
			cmd.Printf("  commit: %s\n", orNone(info.Commit))
		}
		return nil
	},
}

type buildInfo struct {
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Commit    string `json:"commit,omitempty"`
}

// currentBuild reports the ldflags version, plus the VCS revision the
// toolchain stamped into the binary when there is one.
func currentBuild() buildInfo {
	info := buildInfo{Version: version, GoVersion: runtime.Version()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" {
			info.Commit = s.Value
		}
	}
	return info
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
