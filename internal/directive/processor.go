package directive

import (
	"github.com/skelgen-labs/skelgen/internal/answers"
	"github.com/skelgen-labs/skelgen/internal/filter"
	"github.com/skelgen-labs/skelgen/internal/tree"
	"go.uber.org/zap"
)

// HelperTemplateVersion interpolates the version of the template itself.
const HelperTemplateVersion = "template_version"

// Options configures a Processor.
type Options struct {
	// TemplateVersion is the value of {{template_version}}.
	TemplateVersion string

	// SkipInterpolation lists patterns of files copied without processing.
	SkipInterpolation []string

	Logger *zap.Logger
}

// Processor resolves directives file by file. It holds no per-file state
// and may be shared between goroutines.
type Processor struct {
	helpers map[string]string
	skip    []filter.Pattern
	log     *zap.Logger
}

// New compiles the skip patterns in opts. A bad pattern is reported as
// filter.ErrBadPattern.
func New(opts Options) (*Processor, error) {
	p := &Processor{
		helpers: map[string]string{},
		log:     opts.Logger,
	}
	if p.log == nil {
		p.log = zap.NewNop()
	}
	if opts.TemplateVersion != "" {
		p.helpers[HelperTemplateVersion] = opts.TemplateVersion
	}
	for _, s := range opts.SkipInterpolation {
		pat, err := filter.CompilePattern(s)
		if err != nil {
			return nil, err
		}
		p.skip = append(p.skip, pat)
	}
	return p, nil
}

// Skips reports whether path is excluded from processing by a
// skipInterpolation pattern.
func (p *Processor) Skips(path string) bool {
	for _, pat := range p.skip {
		if pat.Match(path) {
			return true
		}
	}
	return false
}

// Process resolves the directives of one file. Binary files and files
// matching a skip pattern are returned as is.
func (p *Processor) Process(path string, src []byte, ctx answers.Lookup) ([]byte, error) {
	if p.Skips(path) {
		p.log.Debug("interpolation skipped", zap.String("path", path))
		return src, nil
	}
	if tree.IsBinary(src) {
		return src, nil
	}
	t, err := Parse(path, src)
	if err != nil {
		return nil, err
	}
	return t.Render(ctx, p.helpers), nil
}

// Check parses a file without rendering it. Files Process would pass
// through are never reported.
func (p *Processor) Check(path string, src []byte) error {
	if p.Skips(path) || tree.IsBinary(src) {
		return nil
	}
	_, err := Parse(path, src)
	return err
}
