package archive

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/afero"

	"github.com/teranos/sdlppx/errors"
)

// Matcher decides whether an entry's base name is selected
type Matcher func(name string) bool

// Suffix matches base names ending in s
func Suffix(s string) Matcher {
	return func(name string) bool {
		return strings.HasSuffix(name, s)
	}
}

// Glob matches base names against a shell pattern such as "*.sdlxliff"
func Glob(pattern string) (Matcher, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid pattern %q", pattern)
	}
	return g.Match, nil
}

// Find returns file entries below root whose base name matches, searching at
// most maxDepth levels deep (1 = direct children of root). Results are sorted.
// A root folder that does not exist yields no matches.
func (a *Archive) Find(root string, maxDepth int, match Matcher) ([]string, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}

	root = strings.Trim(path.Clean("/"+root), "/")
	start := memPath(root)
	if _, err := a.mem.Stat(start); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to stat folder %s", root)
	}

	var found []string
	err := afero.Walk(a.mem, start, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel := strings.Trim(strings.TrimPrefix(filepath.ToSlash(p), start), "/")
		if rel == "" {
			return nil
		}
		depth := strings.Count(rel, "/") + 1
		if info.IsDir() {
			if depth >= maxDepth {
				return filepath.SkipDir
			}
			return nil
		}
		if depth <= maxDepth && match(info.Name()) {
			found = append(found, path.Join(root, rel))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to search %s", a.path)
	}

	sort.Strings(found)
	return found, nil
}
