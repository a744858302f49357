package cli

import (
	"fmt"
	"time"

	"github.com/skelgen-labs/skelgen/internal/config"
	"github.com/skelgen-labs/skelgen/internal/source"
	"github.com/spf13/cobra"
)

func init() {
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesUpdateCmd)
	rootCmd.AddCommand(templatesCmd)
}

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage builtin and cached templates",
	Long: `List the builtin templates and the git templates cached locally, and
refresh cached clones.

Git templates are cloned on first use into the templates directory
(config key templates_dir) and refreshed when older than 7 days.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Builtin:")
		for _, name := range source.Builtins() {
			fmt.Fprintf(out, "  %s\n", name)
		}

		cached, err := source.List(config.TemplatesDir())
		if err != nil {
			return stageError(StageConfig, fmt.Errorf("listing template cache: %w", err))
		}
		fmt.Fprintf(out, "\nCached (%s):\n", config.TemplatesDir())
		if len(cached) == 0 {
			fmt.Fprintln(out, "  (none)")
		}
		for _, c := range cached {
			fmt.Fprintf(out, "  %-40s %s\n", c.Name, formatUpdated(c.Updated))
		}
		return nil
	},
}

var templatesUpdateCmd = &cobra.Command{
	Use:   "update [template]",
	Short: "Refresh cached git templates",
	Long: `Pull the latest changes of one git template, cloning it if needed, or of
every cached template when no reference is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		r := defaultResolver(false)

		if len(args) == 0 {
			updated, err := r.UpdateAll(cmd.Context())
			for _, c := range updated {
				fmt.Fprintf(out, "%-40s %s\n", c.Name, formatUpdated(c.Updated))
			}
			if err != nil {
				return stageError(StageConfig, err)
			}
			return nil
		}

		ref, err := r.Parse(args[0])
		if err != nil {
			return stageError(StageConfig, err)
		}
		if ref.Kind != source.KindGit {
			return stageError(StageConfig, fmt.Errorf("%s is a %s template; only git templates are cached", args[0], ref.Kind))
		}
		fmt.Fprintf(out, "Updating %s...\n", ref.URL)
		if err := r.Update(cmd.Context(), ref); err != nil {
			return stageError(StageConfig, err)
		}
		fmt.Fprintf(out, "Updated %s at %s\n", ref.Name, r.CachePath(ref))
		return nil
	},
}

func formatUpdated(t time.Time) string {
	if t.IsZero() {
		return "never updated"
	}
	return "updated " + t.Format("2006-01-02 15:04")
}
