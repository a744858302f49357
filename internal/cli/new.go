package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/branding"
	"github.com/skelgen-labs/skelgen/internal/compat"
	"github.com/skelgen-labs/skelgen/internal/config"
	"github.com/skelgen-labs/skelgen/internal/pipeline"
	"github.com/skelgen-labs/skelgen/internal/prompt"
	"github.com/skelgen-labs/skelgen/internal/runtime"
	"github.com/skelgen-labs/skelgen/internal/scaffold"
	"github.com/skelgen-labs/skelgen/internal/source"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	newTemplate     string
	newAnswersFile  string
	newOffline      bool
	newForce        bool
	newSkipComplete bool
	newConcurrency  int
)

func init() {
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "", "Template reference (default from config)")
	newCmd.Flags().StringVar(&newAnswersFile, "answers", "", "YAML or JSON file with answers; skips interactive prompts")
	newCmd.Flags().BoolVar(&newOffline, "offline", false, "Use cached git templates only")
	newCmd.Flags().BoolVar(&newForce, "force", false, "Write into a non-empty destination")
	newCmd.Flags().BoolVar(&newSkipComplete, "skip-complete", false, "Skip install, lint, and the final message")
	newCmd.Flags().IntVar(&newConcurrency, "concurrency", 0, "Files transformed in parallel (default from config)")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <dest>",
	Short: "Generate a project from a template",
	Long: fmt.Sprintf(`Generate a project into <dest> from a template. Use "." to generate into
the current directory.

Templates are referenced by builtin name (%s), local directory, GitHub-style
"owner/repo", or git URL.

Setting %s=<scenario> answers every question from a scenario declared by the
template, for template tests.

Examples:
  %[3]s new my-app
  %[3]s new my-app --template ./templates/vue --answers answers.yaml
  %[3]s new . --template acme/vue-starter --skip-complete`,
		branding.DefaultTemplate(), branding.EnvVar("TEST"), branding.CLIName()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := newOptions{
			Dest:          args[0],
			Template:      newTemplate,
			AnswersFile:   newAnswersFile,
			Scenario:      os.Getenv(branding.EnvVar("TEST")),
			Force:         newForce,
			SkipComplete:  newSkipComplete,
			Concurrency:   newConcurrency,
			GlobalManager: config.GlobalManager(),
			In:            cmd.InOrStdin(),
			Out:           cmd.OutOrStdout(),
		}
		if opts.Template == "" {
			opts.Template = config.Template()
		}
		if opts.Concurrency <= 0 {
			opts.Concurrency = config.Concurrency()
		}
		opts.Resolver = defaultResolver(newOffline)
		opts.Runner = &runtime.ExecRunner{Stdout: cmd.OutOrStdout(), Stderr: cmd.ErrOrStderr(), Log: logger}

		_, err := runNew(cmd.Context(), opts)
		return err
	},
}

// defaultResolver builds a template resolver from the user configuration.
func defaultResolver(offline bool) *source.Resolver {
	return &source.Resolver{
		CacheDir: config.TemplatesDir(),
		RepoBase: config.TemplateRepoBase(),
		Offline:  offline,
		Fetcher:  source.NewGitFetcher(),
		Log:      logger,
	}
}

// newOptions carries everything one generation needs.
type newOptions struct {
	Dest        string
	Template    string
	AnswersFile string
	Scenario    string

	Force        bool
	SkipComplete bool
	Concurrency  int

	// GlobalManager is used when the template does not name one.
	GlobalManager string

	In  io.Reader
	Out io.Writer

	Resolver *source.Resolver
	Runner   runtime.Runner
}

type newResult struct {
	Files  *scaffold.Result
	Report *pipeline.Report
}

var summaryStyle = lipgloss.NewStyle().Bold(true)

// runNew resolves the template, collects answers, materializes the tree,
// and runs the completion pipeline.
func runNew(ctx context.Context, opts newOptions) (*newResult, error) {
	out := opts.Out
	if out == nil {
		out = io.Discard
	}
	log := logger.With(zap.String("dest", opts.Dest))

	src, err := opts.Resolver.Resolve(ctx, opts.Template)
	if err != nil {
		return nil, stageError(StageConfig, err)
	}
	tmpl := src.Template
	if err := compat.Check(buildVersion, tmpl.Requires); err != nil {
		return nil, stageError(StageConfig, fmt.Errorf("template %s: %w", tmpl.Name, err))
	}
	log.Info("template loaded", zap.String("template", tmpl.Name), zap.String("version", tmpl.Version))

	ans, err := collectAnswers(ctx, opts, tmpl.Questions, tmpl.Derived, src)
	if err != nil {
		return nil, err
	}

	fsys, err := src.Tree()
	if err != nil {
		return nil, stageError(StageConfig, err)
	}
	gen, err := scaffold.New(fsys, tmpl, scaffold.Options{
		Dest:        opts.Dest,
		Force:       opts.Force,
		Concurrency: opts.Concurrency,
		Logger:      log,
	})
	if err != nil {
		return nil, stageError(StageConfig, err)
	}
	files, err := gen.Generate(ctx, ans)
	if err != nil {
		return nil, stageError(StageWrite, err)
	}
	fmt.Fprintf(out, "%s %d files in %s (%d skipped)\n",
		summaryStyle.Render("Generated"), len(files.Files), files.OutputDir, len(files.Skipped))

	result := &newResult{Files: files}
	if opts.SkipComplete {
		return result, nil
	}

	cfg := tmpl.Complete
	if cfg.Global.Manager == "" {
		cfg.Global.Manager = opts.GlobalManager
	}
	if cfg.DocsURL == "" {
		cfg.DocsURL = branding.DocsURL()
	}
	p, err := pipeline.New(pipeline.Standard(cfg), pipeline.WithNotifier(pipeline.WriterNotifier{W: out}))
	if err != nil {
		return result, stageError(StagePipeline, err)
	}
	report, err := p.Run(ctx, &pipeline.Env{
		Dir:     files.OutputDir,
		Answers: ans,
		Runner:  opts.Runner,
		Out:     out,
		Log:     log,
	})
	result.Report = report
	if err != nil {
		return result, stageError(StagePipeline, err)
	}
	return result, nil
}

// collectAnswers picks the answer source: a test scenario, an answers
// file, or the terminal.
func collectAnswers(ctx context.Context, opts newOptions, qs []prompt.Question, derived []prompt.Derivation, src *source.Source) (*answers.Context, error) {
	var (
		seed      *answers.Context
		collector prompt.Collector
	)
	switch {
	case opts.Scenario != "":
		sc, err := src.Template.Scenario(opts.Scenario)
		if err != nil {
			return nil, stageError(StageConfig, err)
		}
		seed = prompt.Seed(opts.Dest, sc)
		collector = prompt.NewStubCollector(sc)
	case opts.AnswersFile != "":
		vals, err := answers.LoadFile(opts.AnswersFile)
		if err != nil {
			return nil, stageError(StagePrompt, err)
		}
		seed = prompt.Seed(opts.Dest, nil)
		collector = prompt.NewStubCollector(vals)
	default:
		in := opts.In
		if in == nil {
			in = os.Stdin
		}
		out := opts.Out
		if out == nil {
			out = io.Discard
		}
		if f, ok := in.(*os.File); ok && !prompt.IsTerminal(f) {
			logger.Warn("stdin is not a terminal, reading answers line by line; consider --answers")
		}
		seed = prompt.Seed(opts.Dest, nil)
		collector = prompt.NewTerminalCollector(in, out)
	}

	ans, err := prompt.NewResolver(qs, derived, logger).Resolve(ctx, seed, collector)
	if err != nil {
		return nil, stageError(StagePrompt, err)
	}
	return ans, nil
}
