package flood

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/nodemetrics/statsd-go/flooder/pkg/flood"
)

// floodCmd represents the base command when called without any subcommands
var floodCmd = &cobra.Command{
	Use:          "flood",
	Short:        "Sends a lot of statsd points.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return flood.Flood(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := floodCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	flood.AddFlags(floodCmd.Flags())
}
