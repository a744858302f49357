package meta

// rawMeta mirrors the configuration file. It is compiled into a Template.
type rawMeta struct {
	Name              string                    `yaml:"name"`
	Version           string                    `yaml:"version"`
	Description       string                    `yaml:"description"`
	Requires          string                    `yaml:"requires"`
	Questions         []rawQuestion             `yaml:"questions"`
	Derived           []rawDerived              `yaml:"derived"`
	Filters           []rawFilter               `yaml:"filters"`
	SkipInterpolation []string                  `yaml:"skipInterpolation"`
	Scenarios         map[string]map[string]any `yaml:"scenarios"`
	Complete          rawComplete               `yaml:"complete"`
}

type rawQuestion struct {
	Key      string      `yaml:"key"`
	Type     string      `yaml:"type"`
	When     string      `yaml:"when"`
	Message  string      `yaml:"message"`
	Required bool        `yaml:"required"`
	Default  any         `yaml:"default"`
	Choices  []rawChoice `yaml:"choices"`
}

type rawChoice struct {
	Name  string `yaml:"name"`
	Value any    `yaml:"value"`
	Short string `yaml:"short"`
}

type rawDerived struct {
	Key  string `yaml:"key"`
	When string `yaml:"when"`
}

type rawFilter struct {
	Pattern string `yaml:"pattern"`
	When    string `yaml:"when"`
}

type rawComplete struct {
	Global    *rawGlobal `yaml:"global"`
	Install   string     `yaml:"install"`
	LintFix   string     `yaml:"lintFix"`
	DevScript string     `yaml:"devScript"`
	Docs      string     `yaml:"docs"`
}

type rawGlobal struct {
	When     string       `yaml:"when"`
	Manager  string       `yaml:"manager"`
	Packages []rawPackage `yaml:"packages"`
}

type rawPackage struct {
	Name string `yaml:"name"`
	When string `yaml:"when"`
}
