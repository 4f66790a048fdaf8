package cli

import (
	"github.com/corral-labs/corral/internal/branding"
	"github.com/corral-labs/corral/internal/config"
	"github.com/corral-labs/corral/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` manages a catalog of registered types, live instances, and
templates contributed by installed plugin packages. It installs declared
plugins, discovers what they provide, and answers queries against the
resulting registry.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetDefaultStructuredLogger(branding.CLIName(), buildVersion)
		config.Load()
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
