package listing

import "strings"

// DefaultExcludeNames are hidden from listings and never walked.
var DefaultExcludeNames = []string{
	".git", "node_modules", ".DS_Store", "__pycache__", ".env",
	"index.html",
	"style.css", "template.html",
	"new-page.sh", "new-page.py",
	".gitignore", "README.md",
}

// Exclusions decides which names are left out of a listing.
// The zero value excludes nothing.
type Exclusions struct {
	names        map[string]struct{}
	hiddenPrefix string
}

// NewExclusions returns a filter for the given literal names. Any name starting
// with hiddenPrefix is excluded as well; an empty prefix disables that rule.
func NewExclusions(names []string, hiddenPrefix string) Exclusions {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return Exclusions{names: set, hiddenPrefix: hiddenPrefix}
}

// DefaultExclusions returns the stock filter.
func DefaultExclusions() Exclusions {
	return NewExclusions(DefaultExcludeNames, ".")
}

// ShouldExclude reports whether name is filtered out.
func (x Exclusions) ShouldExclude(name string) bool {
	if _, ok := x.names[name]; ok {
		return true
	}
	return x.hiddenPrefix != "" && strings.HasPrefix(name, x.hiddenPrefix)
}
