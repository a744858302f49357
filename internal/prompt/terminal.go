package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

// TerminalCollector asks questions over a line-oriented reader and writer,
// using numbered menus for choices.
type TerminalCollector struct {
	reader *bufio.Reader
	w      io.Writer
}

// NewTerminalCollector returns a collector reading answers from r and
// writing prompts to w.
func NewTerminalCollector(r io.Reader, w io.Writer) *TerminalCollector {
	return &TerminalCollector{reader: bufio.NewReader(r), w: w}
}

// Ask implements Collector.
func (t *TerminalCollector) Ask(_ context.Context, q Question) (answers.Value, error) {
	switch q.Type {
	case TypeConfirm:
		return t.askConfirm(q)
	case TypeList:
		return t.askList(q)
	case TypeCheckbox:
		return t.askCheckbox(q)
	default:
		return t.askString(q)
	}
}

func (t *TerminalCollector) askString(q Question) (answers.Value, error) {
	def := q.EffectiveDefault().String()
	if def != "" {
		fmt.Fprintf(t.w, "? %s (%s) ", q.Message, def)
	} else {
		fmt.Fprintf(t.w, "? %s ", q.Message)
	}

	line, err := t.readLine()
	if err != nil {
		return answers.Value{}, err
	}
	if line == "" {
		return answers.String(def), nil
	}
	return answers.String(line), nil
}

func (t *TerminalCollector) askConfirm(q Question) (answers.Value, error) {
	def := q.EffectiveDefault().Truthy()
	hint := "(Y/n)"
	if !def {
		hint = "(y/N)"
	}
	fmt.Fprintf(t.w, "? %s %s ", q.Message, hint)

	line, err := t.readLine()
	if err != nil {
		return answers.Value{}, err
	}
	switch strings.ToLower(line) {
	case "":
		return answers.Bool(def), nil
	case "y", "yes":
		return answers.Bool(true), nil
	case "n", "no":
		return answers.Bool(false), nil
	default:
		return answers.Value{}, &ValidationError{Key: q.Key, Reason: fmt.Sprintf("invalid answer %q: expected y or n", line)}
	}
}

func (t *TerminalCollector) askList(q Question) (answers.Value, error) {
	def := 1
	dv := q.EffectiveDefault()
	for i, c := range q.Choices {
		if c.Value.Kind() == dv.Kind() && c.Value.Equal(dv) {
			def = i + 1
			break
		}
	}

	t.printMenu(q)
	fmt.Fprintf(t.w, "Enter number [1-%d] (%d): ", len(q.Choices), def)

	line, err := t.readLine()
	if err != nil {
		return answers.Value{}, err
	}
	if line == "" {
		return q.Choices[def-1].Value, nil
	}
	idx, err := t.parseIndex(q, line)
	if err != nil {
		return answers.Value{}, err
	}
	return q.Choices[idx].Value, nil
}

func (t *TerminalCollector) askCheckbox(q Question) (answers.Value, error) {
	t.printMenu(q)
	fmt.Fprintf(t.w, "Enter numbers separated by commas [1-%d]: ", len(q.Choices))

	line, err := t.readLine()
	if err != nil {
		return answers.Value{}, err
	}
	if line == "" {
		return q.EffectiveDefault(), nil
	}

	var picked []string
	for _, part := range strings.Split(line, ",") {
		idx, err := t.parseIndex(q, part)
		if err != nil {
			return answers.Value{}, err
		}
		picked = append(picked, q.Choices[idx].Value.String())
	}
	return answers.List(picked...), nil
}

func (t *TerminalCollector) printMenu(q Question) {
	fmt.Fprintf(t.w, "\n? %s\n", q.Message)
	for i, c := range q.Choices {
		fmt.Fprintf(t.w, "  %d) %s\n", i+1, c.Name)
	}
}

// parseIndex converts a 1-based menu selection into an index of q.Choices.
func (t *TerminalCollector) parseIndex(q Question, s string) (int, error) {
	s = strings.TrimSpace(s)
	n := len(q.Choices)
	num, err := strconv.Atoi(s)
	if err != nil || num < 1 || num > n {
		return 0, &ValidationError{Key: q.Key, Reason: fmt.Sprintf("invalid selection %q: choose 1-%d", s, n)}
	}
	return num - 1, nil
}

func (t *TerminalCollector) readLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// IsTerminal reports whether f is attached to a character device, which is
// how an interactive run is detected.
func IsTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
