package cli

import (
	"fmt"

	"github.com/skelgen-labs/skelgen/internal/config"
	"github.com/skelgen-labs/skelgen/internal/scaffold"
	"github.com/skelgen-labs/skelgen/internal/source"
	"github.com/spf13/cobra"
)

var validateOffline bool

func init() {
	validateCmd.Flags().BoolVar(&validateOffline, "offline", false, "Use cached git templates only")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate [template]",
	Short: "Check a template configuration and its files",
	Long: `Load a template, validate its configuration against the schema, check
that every predicate references declared keys, and parse every file for
unbalanced conditional blocks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref := config.Template()
		if len(args) == 1 {
			ref = args[0]
		}
		src, err := defaultResolver(validateOffline).Resolve(cmd.Context(), ref)
		if err != nil {
			return stageError(StageConfig, err)
		}
		if err := validateSource(src); err != nil {
			return err
		}
		tmpl := src.Template
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid: %d questions, %d filter rules, %d scenarios\n",
			summaryStyle.Render("✓"), tmpl.Name, len(tmpl.Questions), len(tmpl.Rules), len(tmpl.Scenarios))
		return nil
	},
}

// validateSource parses every file of a loaded template.
func validateSource(src *source.Source) error {
	fsys, err := src.Tree()
	if err != nil {
		return stageError(StageConfig, err)
	}
	gen, err := scaffold.New(fsys, src.Template, scaffold.Options{Logger: logger})
	if err != nil {
		return stageError(StageConfig, err)
	}
	if err := gen.Check(); err != nil {
		return stageError(StageDirective, err)
	}
	return nil
}
