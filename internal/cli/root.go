package cli

import (
	"os"

	"github.com/skelgen-labs/skelgen/internal/branding"
	"github.com/skelgen-labs/skelgen/internal/config"
	"github.com/skelgen-labs/skelgen/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose bool
	logJSON bool

	logger = logging.Nop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates projects from templates. A template asks questions, keeps or
drops files according to the answers, resolves conditional blocks inside
the files it keeps, and finishes with optional install and lint steps.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return stageError(StageConfig, err)
		}

		level := config.LogLevel()
		if verbose {
			level = "debug"
		}
		l, err := logging.New(os.Stderr, logging.Options{Level: level, JSON: logJSON})
		if err != nil {
			return stageError(StageConfig, err)
		}
		logger = l.With(zap.String("cmd", cmd.Name()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Log as JSON")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
