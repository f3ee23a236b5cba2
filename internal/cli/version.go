package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"

	"github.com/example/tabdeck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Example: `
tabdeck version
tabdeck version --short
tabdeck version -o yaml
`,
	Run: func(cmd *cobra.Command, _ []string) {
		shortened, _ := cmd.Flags().GetBool("short")
		output, _ := cmd.Flags().GetString("output")
		resp := goversion.FuncWithOutput(shortened, version.Version, version.Commit, version.BuildTime, output)
		fmt.Print(resp)
	},
}

func init() {
	versionCmd.Flags().BoolP("short", "s", false, "Print just the version number.")
	versionCmd.Flags().StringP("output", "o", "json", "Output format. One of 'yaml' or 'json'.")
}

// VersionCmd returns the version command
func VersionCmd() *cobra.Command {
	return versionCmd
}
