package prompt

import (
	"path/filepath"

	"github.com/skelgen-labs/skelgen/internal/answers"
)

// Synthetic keys available to every predicate before the first question.
const (
	KeyIsNotTest   = "isNotTest"
	KeyDestDirName = "destDirName"
	KeyInPlace     = "inPlace"
)

// SyntheticKeys lists the keys Seed always defines.
var SyntheticKeys = []string{KeyIsNotTest, KeyDestDirName, KeyInPlace}

// Seed builds the context the Resolver starts from. dest is the destination
// path as given by the user. A non-nil scenario marks the run as a test run
// (isNotTest is false) and pre-fills its answers.
func Seed(dest string, scenario map[string]answers.Value) *answers.Context {
	b := answers.NewBuilder()

	inPlace := dest == "" || dest == "."
	name := filepath.Base(filepath.Clean(dest))
	if inPlace {
		if abs, err := filepath.Abs("."); err == nil {
			name = filepath.Base(abs)
		}
	}
	b.Set(KeyDestDirName, answers.String(name))
	b.Set(KeyInPlace, answers.Bool(inPlace))
	b.Set(KeyIsNotTest, answers.Bool(scenario == nil))

	for k, v := range scenario {
		b.Set(k, v)
	}
	return b.Freeze()
}
