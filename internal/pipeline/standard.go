package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"github.com/skelgen-labs/skelgen/internal/runtime"
	"go.uber.org/zap"
)

// Standard step names, in run order.
const (
	StepSortDependencies    = "sort-dependencies"
	StepInstallGlobal       = "install-global"
	StepInstallDependencies = "install-dependencies"
	StepLintFix             = "lint-fix"
	StepPrintMessage        = "print-message"
)

// Config declares how a template completes.
type Config struct {
	Global GlobalConfig

	// InstallKey is the answer naming the package manager for the project
	// install ("npm", "yarn", or false). Empty disables the install.
	InstallKey string

	// LintFix enables the lint fix; nil disables it.
	LintFix *expr.Program

	// DevScript is the script suggested to start the project.
	DevScript string

	DocsURL string
}

// GlobalConfig selects tools installed into the global prefix.
type GlobalConfig struct {
	When     *expr.Program // nil disables the step
	Manager  string        // defaults to npm
	Packages []GlobalPackage
}

// GlobalPackage is one globally installed tool and the answer that
// selects it.
type GlobalPackage struct {
	Name string
	When *expr.Program // nil means always selected
}

// Selected returns the package names whose predicate holds.
func (g GlobalConfig) Selected(ctx answers.Lookup) []string {
	var out []string
	for _, p := range g.Packages {
		if p.When == nil || p.When.Eval(ctx) {
			out = append(out, p.Name)
		}
	}
	return out
}

func (g GlobalConfig) manager() string {
	if g.Manager == "" {
		return runtime.ManagerNPM
	}
	return g.Manager
}

// Standard returns the five completion steps for cfg.
func Standard(cfg Config) []Step {
	steps := []Step{
		{
			Name:   StepSortDependencies,
			Action: sortDependenciesAction,
		},
		{
			Name:   StepInstallGlobal,
			Gate:   cfg.Global.When,
			Action: cfg.installGlobalAction,
		},
		{
			Name:   StepInstallDependencies,
			Action: cfg.installAction,
		},
		{
			Name:     StepLintFix,
			Gate:     cfg.LintFix,
			Requires: []string{StepInstallDependencies},
			Action:   cfg.lintFixAction,
		},
		{
			Name:   StepPrintMessage,
			Action: cfg.printMessageAction,
		},
	}

	if cfg.Global.When == nil || len(cfg.Global.Packages) == 0 {
		steps[1].Disabled = "no global tools configured"
	}
	if cfg.InstallKey == "" {
		steps[2].Disabled = "no install configured"
	} else {
		steps[2].Gate = expr.MustCompile(cfg.InstallKey)
	}
	if cfg.LintFix == nil {
		steps[3].Disabled = "no lint fix configured"
	}
	return steps
}

func sortDependenciesAction(_ context.Context, env *Env) error {
	changed, err := SortDependencies(filepath.Join(env.Dir, "package.json"))
	if err != nil {
		return err
	}
	env.Log.Debug("package.json dependencies sorted", zap.Bool("changed", changed))
	return nil
}

func (cfg Config) installGlobalAction(ctx context.Context, env *Env) error {
	pkgs := cfg.Global.Selected(env.Answers)
	if len(pkgs) == 0 {
		env.Log.Debug("no global tools selected")
		return nil
	}
	m, err := runtime.DispatchManager(cfg.Global.manager())
	if err != nil {
		return err
	}
	return run(ctx, env, m.GlobalInstall(pkgs...))
}

func (cfg Config) installAction(ctx context.Context, env *Env) error {
	m, err := cfg.projectManager(env.Answers)
	if err != nil {
		return err
	}
	return run(ctx, env, m.Install(env.Dir))
}

func (cfg Config) lintFixAction(ctx context.Context, env *Env) error {
	m, err := cfg.projectManager(env.Answers)
	if err != nil {
		return err
	}
	return run(ctx, env, m.RunScript(env.Dir, "lint", "--fix"))
}

func (cfg Config) printMessageAction(_ context.Context, env *Env) error {
	_, err := fmt.Fprint(env.Out, cfg.Message(env))
	return err
}

// projectManager resolves the package manager named by the install answer.
func (cfg Config) projectManager(ctx answers.Lookup) (runtime.Manager, error) {
	v, ok := ctx.Lookup(cfg.InstallKey)
	if !ok {
		return nil, fmt.Errorf("answer %q is not set", cfg.InstallKey)
	}
	return runtime.DispatchManager(v.String())
}

func run(ctx context.Context, env *Env, cmd runtime.Command) error {
	fmt.Fprintf(env.Out, "\n# Running %s ...\n\n", cmd)
	if _, err := env.Runner.Run(ctx, cmd); err != nil {
		return err
	}
	return nil
}
