package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/predef/version"
)

var versionJSON bool

// VersionCmd prints build information.
var VersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.Get()

		if versionJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				fmt.Printf("Error marshaling version info: %v\n", err)
				return
			}
			fmt.Println(string(data))
			return
		}

		fmt.Println(info.String())
		fmt.Printf("Platform: %s\n", info.Platform)
		fmt.Printf("Go version: %s\n", info.GoVersion)
	},
}

func init() {
	VersionCmd.Flags().BoolVarP(&versionJSON, "json", "j", false, "Output version information as JSON")
}
