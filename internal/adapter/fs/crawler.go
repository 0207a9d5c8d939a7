package fs

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"localsearch/internal/domain"
)

// Crawler walks root directories and extracts text from every accepted file.
// File acceptance is driven by doublestar include/exclude patterns matched
// against the path relative to its root. Directories are tracked by canonical
// path so symlink cycles terminate instead of recursing forever.
type Crawler struct {
	includes []string
	excludes []string
	workers  int
}

// NewCrawler creates a Crawler. With no include patterns every file under the
// roots is a candidate.
func NewCrawler(includes, excludes []string) *Crawler {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Crawler{
		includes: includes,
		excludes: excludes,
		workers:  runtime.NumCPU(),
	}
}

// Crawl walks the given roots and returns the extracted documents plus every
// per-file warning collected on the way. A missing root is a warning, not an
// error; the only hard failure is context cancellation.
func (c *Crawler) Crawl(ctx context.Context, roots []string) ([]domain.RawDocument, []domain.Warning, error) {
	var warnings []domain.Warning
	visited := make(map[string]struct{})
	seen := make(map[string]struct{})
	var candidates []string

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			warnings = append(warnings, domain.Warning{Path: root, Err: err})
			continue
		}
		canonical, err := filepath.EvalSymlinks(abs)
		if err != nil {
			warnings = append(warnings, domain.Warning{Path: root, Err: err})
			continue
		}
		info, err := os.Stat(canonical)
		if err != nil || !info.IsDir() {
			warnings = append(warnings, domain.Warning{Path: root, Err: errNotADirectory(canonical, err)})
			continue
		}
		if _, ok := visited[canonical]; ok {
			continue
		}
		visited[canonical] = struct{}{}
		c.walk(canonical, canonical, visited, seen, &candidates, &warnings)
	}

	sort.Strings(candidates)

	docs := make([]domain.RawDocument, 0, len(candidates))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for _, path := range candidates {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text, err := ExtractText(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				warnings = append(warnings, domain.Warning{Path: path, Err: err})
				return nil
			}
			docs = append(docs, domain.RawDocument{Path: path, Text: text})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, warnings, err
	}

	return docs, warnings, nil
}

// walk recurses below dir, collecting accepted file paths. visited holds
// canonical directory paths; re-entering one means a symlink cycle.
func (c *Crawler) walk(root, dir string, visited, seen map[string]struct{}, candidates *[]string, warnings *[]domain.Warning) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		*warnings = append(*warnings, domain.Warning{Path: dir, Err: err})
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		info, err := os.Stat(path)
		if err != nil {
			// Broken symlink or file removed mid-scan.
			*warnings = append(*warnings, domain.Warning{Path: path, Err: err})
			continue
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			*warnings = append(*warnings, domain.Warning{Path: path, Err: err})
			continue
		}

		if info.IsDir() {
			if c.matchesAny(c.excludes, rel+"/") {
				continue
			}
			canonical, err := filepath.EvalSymlinks(path)
			if err != nil {
				*warnings = append(*warnings, domain.Warning{Path: path, Err: err})
				continue
			}
			if _, ok := visited[canonical]; ok {
				*warnings = append(*warnings, domain.Warning{Path: path, Err: errSymlinkCycle(canonical)})
				continue
			}
			visited[canonical] = struct{}{}
			c.walk(root, path, visited, seen, candidates, warnings)
			continue
		}

		if !info.Mode().IsRegular() {
			continue
		}
		if !c.matchesAny(c.includes, rel) || c.matchesAny(c.excludes, rel) {
			continue
		}

		canonical, err := filepath.EvalSymlinks(path)
		if err != nil {
			*warnings = append(*warnings, domain.Warning{Path: path, Err: err})
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		*candidates = append(*candidates, canonical)
	}
}

func (c *Crawler) matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, filepath.ToSlash(path))
		if err == nil && matched {
			return true
		}
	}
	return false
}
