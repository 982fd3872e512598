package cli

import "github.com/spf13/cobra"

// globalOptions holds the values of the persistent flags shared by
// every subcommand.
type globalOptions struct {
	ConfigFile string
	Verbose    bool
	Quiet      bool
}

var global globalOptions

// addGlobalFlags registers the persistent flag set on the root command.
func addGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&global.ConfigFile, "config", "", "config file (default is $HOME/.config/dirsync/config.yaml)")
	flags.BoolVarP(&global.Verbose, "verbose", "v", false, "per-file console output")
	flags.BoolVarP(&global.Quiet, "quiet", "q", false, "suppress non-error output")
}
