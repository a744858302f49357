package runtime

import "fmt"

// Supported package managers.
const (
	ManagerNPM  = "npm"
	ManagerYarn = "yarn"
)

// Manager builds the commands of one package manager.
type Manager interface {
	Name() string
	// Install installs the project dependencies in dir.
	Install(dir string) Command
	// GlobalInstall installs packages into the user's global prefix.
	GlobalInstall(pkgs ...string) Command
	// RunScript runs a package.json script with extra arguments.
	RunScript(dir, script string, args ...string) Command
}

// DispatchManager returns the Manager for name.
func DispatchManager(name string) (Manager, error) {
	switch name {
	case ManagerNPM:
		return npm{}, nil
	case ManagerYarn:
		return yarn{}, nil
	default:
		return nil, fmt.Errorf("unknown package manager %q: supported managers are %q and %q", name, ManagerNPM, ManagerYarn)
	}
}

type npm struct{}

func (npm) Name() string { return ManagerNPM }

func (npm) Install(dir string) Command {
	return Command{Name: "npm", Args: []string{"install"}, Dir: dir}
}

func (npm) GlobalInstall(pkgs ...string) Command {
	return Command{Name: "npm", Args: append([]string{"install", "-g"}, pkgs...)}
}

// RunScript separates script arguments with "--" as npm requires.
func (npm) RunScript(dir, script string, args ...string) Command {
	a := []string{"run", script}
	if len(args) > 0 {
		a = append(append(a, "--"), args...)
	}
	return Command{Name: "npm", Args: a, Dir: dir}
}

type yarn struct{}

func (yarn) Name() string { return ManagerYarn }

func (yarn) Install(dir string) Command {
	return Command{Name: "yarn", Dir: dir}
}

func (yarn) GlobalInstall(pkgs ...string) Command {
	return Command{Name: "yarn", Args: append([]string{"global", "add"}, pkgs...)}
}

func (yarn) RunScript(dir, script string, args ...string) Command {
	return Command{Name: "yarn", Args: append([]string{"run", script}, args...), Dir: dir}
}
