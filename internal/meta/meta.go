package meta

import (
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/compat"
	"github.com/skelgen-labs/skelgen/internal/expr"
	"github.com/skelgen-labs/skelgen/internal/filter"
	"github.com/skelgen-labs/skelgen/internal/pipeline"
	"github.com/skelgen-labs/skelgen/internal/prompt"
	"go.yaml.in/yaml/v3"
)

// FileNames are the configuration file names looked up at the root of a
// template, in order of preference.
var FileNames = []string{"meta.yaml", "meta.yml", "meta.json"}

// TreeDir is the directory, relative to the template root, holding the
// files to materialize.
const TreeDir = "template"

// Template is a compiled template configuration. It is immutable.
type Template struct {
	Name        string
	Version     string
	Description string
	Requires    string

	// Source is the configuration file the template was loaded from.
	Source string

	Questions         []prompt.Question
	Derived           []prompt.Derivation
	Rules             []filter.Rule
	SkipInterpolation []string
	Scenarios         map[string]map[string]answers.Value
	Complete          pipeline.Config
}

// ScenarioNames returns the declared scenario names, sorted.
func (t *Template) ScenarioNames() []string {
	return slices.Sorted(maps.Keys(t.Scenarios))
}

// Scenario returns the answers of the named scenario.
func (t *Template) Scenario(name string) (map[string]answers.Value, error) {
	s, ok := t.Scenarios[name]
	if !ok {
		return nil, fmt.Errorf("template %s has no scenario %q (available: %v)", t.Name, name, t.ScenarioNames())
	}
	return s, nil
}

// Find returns the name of the configuration file at the root of fsys.
func Find(fsys fs.FS) (string, error) {
	for _, name := range FileNames {
		if _, err := fs.Stat(fsys, name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no %s found", FileNames[0])
}

// Load reads and compiles the configuration at the root of fsys.
func Load(fsys fs.FS) (*Template, error) {
	name, err := Find(fsys)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return Parse(name, data)
}

// Parse validates data against the schema and compiles it. source names
// the file in errors. Invalid configurations return a *ConfigError.
func Parse(source string, data []byte) (*Template, error) {
	schemaIssues, err := Validate(data)
	if err != nil {
		return nil, &ConfigError{Source: source, Issues: []Issue{{Message: err.Error()}}, Err: err}
	}
	if len(schemaIssues) > 0 {
		return nil, &ConfigError{Source: source, Issues: schemaIssues}
	}

	var raw rawMeta
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}

	c := &compiler{}
	t := c.compile(&raw)
	if err := c.issues.err(source); err != nil {
		return nil, err
	}
	t.Source = source
	return t, nil
}

type compiler struct {
	issues issues
}

func (c *compiler) compile(raw *rawMeta) *Template {
	t := &Template{
		Name:              raw.Name,
		Version:           raw.Version,
		Description:       raw.Description,
		Requires:          raw.Requires,
		SkipInterpolation: raw.SkipInterpolation,
	}

	if raw.Requires != "" {
		if _, err := compat.ParseConstraint(raw.Requires); err != nil {
			c.issues.add("/requires", err)
		}
	}

	// Keys visible to each predicate grow as declarations are read.
	defined := map[string]bool{}
	for _, k := range prompt.SyntheticKeys {
		defined[k] = true
	}

	// declared keeps questions that failed to compile so scenario values
	// can still be checked against them.
	var declared []prompt.Question
	for i, rq := range raw.Questions {
		at := fmt.Sprintf("/questions/%d", i)
		q, ok := c.question(at, rq, defined)
		declared = append(declared, q)
		if defined[rq.Key] {
			c.issues.addf(at+"/key", "key %q is already defined", rq.Key)
			ok = false
		}
		defined[rq.Key] = true
		if ok {
			t.Questions = append(t.Questions, q)
		}
	}

	for i, rd := range raw.Derived {
		at := fmt.Sprintf("/derived/%d", i)
		prog := c.predicate(at+"/when", rd.When, defined)
		if defined[rd.Key] {
			c.issues.addf(at+"/key", "key %q is already defined", rd.Key)
		}
		defined[rd.Key] = true
		if prog != nil {
			t.Derived = append(t.Derived, prompt.Derivation{Key: rd.Key, When: prog})
		}
	}

	for i, rf := range raw.Filters {
		at := fmt.Sprintf("/filters/%d", i)
		pat, err := filter.CompilePattern(rf.Pattern)
		if err != nil {
			c.issues.add(at+"/pattern", err)
			continue
		}
		prog := c.predicate(at+"/when", rf.When, defined)
		if prog == nil {
			continue
		}
		t.Rules = append(t.Rules, filter.Rule{Pattern: pat, When: prog})
	}

	for i, s := range raw.SkipInterpolation {
		if _, err := filter.CompilePattern(s); err != nil {
			c.issues.add(fmt.Sprintf("/skipInterpolation/%d", i), err)
		}
	}

	t.Scenarios = c.scenarios(raw.Scenarios, declared, defined)
	t.Complete = c.complete(raw.Complete, defined)
	return t
}

func (c *compiler) question(at string, rq rawQuestion, defined map[string]bool) (prompt.Question, bool) {
	typ, err := prompt.ParseType(rq.Type)
	if err != nil {
		c.issues.add(at+"/type", err)
		return prompt.Question{Key: rq.Key}, false
	}

	q := prompt.Question{
		Key:      rq.Key,
		Type:     typ,
		Message:  rq.Message,
		Required: rq.Required,
	}
	if q.Message == "" {
		q.Message = rq.Key
	}

	ok := true
	if rq.When != "" {
		q.When = c.predicate(at+"/when", rq.When, defined)
		ok = q.When != nil
	}

	hasChoices := typ == prompt.TypeList || typ == prompt.TypeCheckbox
	switch {
	case hasChoices && len(rq.Choices) == 0:
		c.issues.addf(at+"/choices", "%s question needs choices", typ)
		ok = false
	case !hasChoices && len(rq.Choices) > 0:
		c.issues.addf(at+"/choices", "%s question cannot have choices", typ)
		ok = false
	}
	for j, rc := range rq.Choices {
		v := answers.String(rc.Name)
		if rc.Value != nil {
			if v, err = answers.FromInterface(rc.Value); err != nil {
				c.issues.add(fmt.Sprintf("%s/choices/%d/value", at, j), err)
				ok = false
				continue
			}
		}
		if typ == prompt.TypeCheckbox && v.Kind() != answers.KindString {
			c.issues.addf(fmt.Sprintf("%s/choices/%d/value", at, j), "checkbox choice values must be strings")
			ok = false
		}
		q.Choices = append(q.Choices, prompt.Choice{Name: rc.Name, Value: v, Short: rc.Short})
	}

	if rq.Default != nil && ok {
		v, err := answers.FromInterface(rq.Default)
		if err != nil {
			c.issues.add(at+"/default", err)
			return q, false
		}
		if typ == prompt.TypeList {
			if ch, found := q.ChoiceFor(v.String()); found {
				v = ch.Value
			}
		}
		check := q
		check.Required = false
		if err := check.Validate(v); err != nil {
			c.issues.add(at+"/default", err)
			return q, false
		}
		q.Default = &v
	}
	return q, ok
}

// predicate compiles src and checks that every key it references is
// defined. It returns nil after recording an issue.
func (c *compiler) predicate(at, src string, defined map[string]bool) *expr.Program {
	prog, err := expr.Compile(src)
	if err != nil {
		c.issues.add(at, err)
		return nil
	}
	for _, id := range prog.Identifiers() {
		if !defined[id] {
			c.issues.add(at, fmt.Errorf("%w %q in %q", expr.ErrUnknownKey, id, src))
			return nil
		}
	}
	return prog
}

func (c *compiler) scenarios(raw map[string]map[string]any, qs []prompt.Question, defined map[string]bool) map[string]map[string]answers.Value {
	byKey := make(map[string]prompt.Question, len(qs))
	for _, q := range qs {
		byKey[q.Key] = q
	}

	out := make(map[string]map[string]answers.Value, len(raw))
	for _, name := range slices.Sorted(maps.Keys(raw)) {
		vals := make(map[string]answers.Value, len(raw[name]))
		for _, key := range slices.Sorted(maps.Keys(raw[name])) {
			at := fmt.Sprintf("/scenarios/%s/%s", name, key)
			if !defined[key] {
				c.issues.add(at, fmt.Errorf("%w %q", expr.ErrUnknownKey, key))
				continue
			}
			v, err := answers.FromInterface(raw[name][key])
			if err != nil {
				c.issues.add(at, err)
				continue
			}
			if q, ok := byKey[key]; ok {
				if q.Type == prompt.TypeList {
					if ch, found := q.ChoiceFor(v.String()); found {
						v = ch.Value
					}
				}
				if err := q.Validate(v); err != nil {
					c.issues.add(at, err)
					continue
				}
			}
			vals[key] = v
		}
		out[name] = vals
	}
	return out
}

func (c *compiler) complete(raw rawComplete, defined map[string]bool) pipeline.Config {
	cfg := pipeline.Config{
		DevScript: raw.DevScript,
		DocsURL:   raw.Docs,
	}

	if raw.Global != nil {
		cfg.Global.Manager = raw.Global.Manager
		cfg.Global.When = c.predicate("/complete/global/when", raw.Global.When, defined)
		for i, p := range raw.Global.Packages {
			pkg := pipeline.GlobalPackage{Name: p.Name}
			if p.When != "" {
				pkg.When = c.predicate(fmt.Sprintf("/complete/global/packages/%d/when", i), p.When, defined)
			}
			cfg.Global.Packages = append(cfg.Global.Packages, pkg)
		}
	}

	if raw.Install != "" {
		if !defined[raw.Install] {
			c.issues.add("/complete/install", fmt.Errorf("%w %q", expr.ErrUnknownKey, raw.Install))
		} else {
			cfg.InstallKey = raw.Install
		}
	}
	if raw.LintFix != "" {
		cfg.LintFix = c.predicate("/complete/lintFix", raw.LintFix, defined)
	}
	return cfg
}
