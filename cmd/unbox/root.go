package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/unbox/internal/version"
	"github.com/arthur-debert/unbox/pkg/config"
	"github.com/arthur-debert/unbox/pkg/logging"
)

var (
	verbosity int
	dryRun    bool

	rootCmd = &cobra.Command{
		Use:   "unbox",
		Short: "A declarative archive reconciler",
		Long: `unbox makes sure an archive's contents exist, extracted, under a target
path. It downloads the archive only if necessary, extracts it only when the
target is missing, and reports exactly what changed. Desired states are
declared in a YAML manifest and applied with "unbox apply".`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Verbosity flag for logging
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	// Dry-run flag
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Preview changes without executing them")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(genconfigCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("unbox version %s\n", version.Version)
		fmt.Printf("  commit: %s\n", version.Commit)
		fmt.Printf("  built:  %s\n", version.Date)
	},
}

var genconfigCmd = &cobra.Command{
	Use:   "genconfig",
	Short: "Print a starter configuration file",
	Long:  `Print the default configuration as TOML, suitable for saving to the config dir (usually ~/.config/unbox/unbox.toml).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := config.GenerateDefault()
		if err != nil {
			return err
		}
		cmd.Print(out)
		return nil
	},
}
