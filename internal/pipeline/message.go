package pipeline

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/skelgen-labs/skelgen/internal/runtime"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Message renders the closing summary. It lists the commands the user
// still has to run by hand for every step that did not execute.
func (cfg Config) Message(env *Env) string {
	var cmds []string

	if !env.Answers.Truthy("inPlace") {
		if name := env.Answers.Get("destDirName").String(); name != "" {
			cmds = append(cmds, "cd "+name)
		}
	}
	if cfg.Global.When != nil && cfg.Global.When.Eval(env.Answers) && !env.Report.Executed(StepInstallGlobal) {
		pkgs := cfg.Global.Selected(env.Answers)
		if m, err := runtime.DispatchManager(cfg.Global.manager()); err == nil && len(pkgs) > 0 {
			cmds = append(cmds, m.GlobalInstall(pkgs...).String())
		}
	}
	if !env.Report.Executed(StepInstallDependencies) {
		cmds = append(cmds, "npm install (or if using yarn: yarn)")
	}
	if cfg.LintFix != nil && cfg.LintFix.Eval(env.Answers) && !env.Report.Executed(StepLintFix) {
		cmds = append(cmds, "npm run lint -- --fix (or for yarn: yarn run lint --fix)")
	}

	script := cfg.DevScript
	if script == "" {
		script = "dev"
	}
	dev, err := cfg.projectManager(env.Answers)
	if err != nil {
		dev, _ = runtime.DispatchManager(runtime.ManagerNPM)
	}
	cmds = append(cmds, dev.RunScript("", script).String())

	var b strings.Builder
	b.WriteString("\n# " + titleStyle.Render("Project initialization finished!") + "\n")
	b.WriteString("# ========================\n\n")
	b.WriteString("To get started:\n\n")
	for _, c := range cmds {
		b.WriteString("  " + commandStyle.Render(c) + "\n")
	}
	if cfg.DocsURL != "" {
		b.WriteString("\nDocumentation can be found at " + cfg.DocsURL + "\n")
	}
	return b.String()
}
