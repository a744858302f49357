package source

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// freshnessFile is the name of the timestamp marker file.
	freshnessFile = ".skelgen-updated"

	// DefaultMaxAge is the default staleness threshold (7 days).
	DefaultMaxAge = 7 * 24 * time.Hour

	// tmpSuffix is appended to the target dir during atomic clone.
	tmpSuffix = ".tmp"

	dirPerm os.FileMode = 0755
)

// WriteFreshnessMarker writes the current Unix timestamp to the freshness file.
func WriteFreshnessMarker(dir string) error {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	return os.WriteFile(filepath.Join(dir, freshnessFile), []byte(ts), 0644)
}

// ReadFreshnessMarker reads the timestamp from the freshness file.
// Returns zero time if the file doesn't exist or can't be parsed.
func ReadFreshnessMarker(dir string) time.Time {
	data, err := os.ReadFile(filepath.Join(dir, freshnessFile))
	if err != nil {
		return time.Time{}
	}
	ts, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(ts, 0)
}

// IsStale returns true if dir was last fetched more than maxAge ago.
// Returns true if the freshness marker doesn't exist.
func IsStale(dir string, maxAge time.Duration) bool {
	lastUpdated := ReadFreshnessMarker(dir)
	if lastUpdated.IsZero() {
		return true
	}
	return time.Since(lastUpdated) > maxAge
}

// Cached is one entry of the template cache.
type Cached struct {
	Name    string
	Dir     string
	Updated time.Time
}

// List returns the cached templates under cacheDir, sorted by name.
// A missing cache directory yields no entries.
func List(cacheDir string) ([]Cached, error) {
	entries, err := os.ReadDir(cacheDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Cached
	for _, e := range entries {
		if !e.IsDir() || strings.HasSuffix(e.Name(), tmpSuffix) {
			continue
		}
		dir := filepath.Join(cacheDir, e.Name())
		out = append(out, Cached{Name: e.Name(), Dir: dir, Updated: ReadFreshnessMarker(dir)})
	}
	return out, nil
}
